package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

const statusCountTimeout = 10 * time.Second

// Scheduler фоновые задачи сервиса поверх robfig/cron
type Scheduler struct {
	cron   *cron.Cron
	logger Logger
}

func NewScheduler(logger Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithChain(cron.Recover(cronLogger{logger}))),
		logger: logger,
	}
}

// Add регистрирует задачу; пустое расписание отключает ее
func (s *Scheduler) Add(name, spec string, job func()) error {
	if spec == "" {
		s.logger.Info("Jobs: %s disabled", name)
		return nil
	}
	if _, err := s.cron.AddFunc(spec, job); err != nil {
		return fmt.Errorf("jobs: invalid schedule for %s %q: %w", name, spec, err)
	}
	s.logger.Info("Jobs: %s scheduled (%s)", name, spec)
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop останавливает планировщик и ждет завершения запущенных задач
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.logger.Warn("Jobs: stop timed out, running jobs abandoned")
	}
}

// RefreshStatusGauge пересчитывает gauge бронирований по статусам
// Статусы без бронирований выставляются в 0
func RefreshStatusGauge(counter StatusCounter, gauge StatusGauge, logger Logger) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), statusCountTimeout)
		defer cancel()

		counts, err := counter.CountByStatus(ctx)
		if err != nil {
			logger.Error("Jobs: failed to count bookings by status: %v", err)
			return
		}

		values := make(map[string]int, len(domain.AllStatuses))
		for _, status := range domain.AllStatuses {
			values[string(status)] = counts[status]
		}
		gauge.SetBookingsByStatus(values)
	}
}

// EvictWizardSessions удаляет сессии мастера записи, простаивающие дольше TTL
func EvictWizardSessions(evictor SessionEvictor, logger Logger) func() {
	return func() {
		if n := evictor.EvictIdle(); n > 0 {
			logger.Info("Jobs: evicted %d idle wizard sessions", n)
		}
	}
}

// SweepRateLimiter освобождает лимитеры клиентов, не обращавшихся дольше idle
func SweepRateLimiter(sweeper LimiterSweeper, idle time.Duration, logger Logger) func() {
	return func() {
		if n := sweeper.Cleanup(idle); n > 0 {
			logger.Info("Jobs: removed %d idle rate limiter clients", n)
		}
	}
}

// cronLogger адаптер Logger к cron.Logger
type cronLogger struct {
	logger Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info("Jobs: %s %v", msg, keysAndValues)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("Jobs: %s: %v %v", msg, err, keysAndValues)
}
