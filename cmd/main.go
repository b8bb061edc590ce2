package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	bookingWizardHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/booking_wizard"
	checkAvailabilityHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/check_availability"
	createBookingHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/create_booking"
	getBookingHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/get_booking"
	getCustomerHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/get_customer"
	getDaySlotsHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/get_day_slots"
	listBookingsHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/list_bookings"
	listServicesHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/list_services"
	listStylistsHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/list_stylists"
	resolveCustomerHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/resolve_customer"
	updateBookingStatusHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/update_booking_status"
	"github.com/m04kA/SMC-SalonBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBookingService/internal/config"
	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/events"
	"github.com/m04kA/SMC-SalonBookingService/internal/infra/migrator"
	bookingRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/catalog"
	customerRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/customer"
	"github.com/m04kA/SMC-SalonBookingService/internal/jobs"
	bookingsService "github.com/m04kA/SMC-SalonBookingService/internal/service/bookings"
	catalogService "github.com/m04kA/SMC-SalonBookingService/internal/service/catalog"
	checkAvailabilityUC "github.com/m04kA/SMC-SalonBookingService/internal/usecase/check_availability"
	createBookingUC "github.com/m04kA/SMC-SalonBookingService/internal/usecase/create_booking"
	resolveCustomerUC "github.com/m04kA/SMC-SalonBookingService/internal/usecase/resolve_customer"
	updateBookingStatusUC "github.com/m04kA/SMC-SalonBookingService/internal/usecase/update_booking_status"
	"github.com/m04kA/SMC-SalonBookingService/internal/wizard"
	"github.com/m04kA/SMC-SalonBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBookingService/pkg/logger"
	"github.com/m04kA/SMC-SalonBookingService/pkg/metrics"
	"github.com/m04kA/SMC-SalonBookingService/pkg/txmanager"
)

// publisher события смены статуса: kafka или noop
type publisher interface {
	PublishStatusChanged(ctx context.Context, change domain.StatusChange) error
	Close() error
}

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-SalonBookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	// nil *metrics.Metrics безопасен: методы и обёртка БД его проверяют
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(config.Duration(cfg.Database.ConnMaxLifetime))

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Применяем миграции
	mg, err := migrator.NewMigrator(db, log)
	if err != nil {
		log.Fatal("Failed to initialize migrator: %v", err)
	}
	if err := mg.Run(context.Background()); err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	customerRepository := customerRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)

	// Публикация событий
	var eventPublisher publisher = events.NoopPublisher{}
	if cfg.Kafka.Enabled {
		eventPublisher = events.NewKafkaPublisher(
			cfg.Kafka.Brokers,
			cfg.Kafka.Topic,
			cfg.Metrics.ServiceName,
			config.Duration(cfg.Kafka.Timeout),
		)
		log.Info("Kafka publisher enabled (brokers=%v, topic=%s)", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}
	defer func() {
		if err := eventPublisher.Close(); err != nil {
			log.Error("Failed to close event publisher: %v", err)
		}
	}()

	// Инициализируем сервисы
	catalogSvc := catalogService.NewService(catalogRepository, log)
	bookingSvc := bookingsService.NewService(bookingRepository, log)

	// Инициализируем use cases
	machine := domain.NewStatusMachine(domain.TransitionPolicy{
		AllowCancelConfirmed: cfg.Booking.AllowCancelConfirmed,
	})

	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(bookingRepository, catalogSvc, log)
	resolveCustomerUseCase := resolveCustomerUC.NewUseCase(customerRepository, log)
	salonLocation, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Failed to load salon timezone: %v", err)
	}
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		customerRepository,
		catalogSvc,
		txMgr,
		metricsCollector,
		log,
	).WithLocation(salonLocation)
	updateBookingStatusUseCase := updateBookingStatusUC.NewUseCase(
		bookingRepository,
		machine,
		eventPublisher,
		metricsCollector,
		log,
	)

	// Сессии мастера записи
	wizardStore := wizard.NewStore(
		wizard.Dependencies{
			Catalog:      catalogSvc,
			Availability: checkAvailabilityUseCase,
			Customers:    resolveCustomerUseCase,
			Bookings:     createBookingUseCase,
		},
		config.Duration(cfg.Wizard.SessionTTL),
		cfg.Wizard.MaxSessions,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	listStylists := listStylistsHandler.NewHandler(catalogSvc, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	getDaySlots := getDaySlotsHandler.NewHandler(checkAvailabilityUseCase, log)
	resolveCustomer := resolveCustomerHandler.NewHandler(resolveCustomerUseCase, log)
	getCustomer := getCustomerHandler.NewHandler(resolveCustomerUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(updateBookingStatusUseCase, log)
	bookingWizard := bookingWizardHandler.NewHandler(wizardStore, log)

	// Middleware
	authMW := middleware.Auth(middleware.AuthConfig{
		Secret:    cfg.Auth.JWTSecret,
		Issuer:    cfg.Auth.Issuer,
		AdminRole: cfg.Auth.AdminRole,
	}, log)
	admin := func(h http.HandlerFunc) http.Handler { return authMW(h) }

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	if err := rateLimiter.TrustProxies(cfg.RateLimit.TrustedProxies); err != nil {
		log.Fatal("Failed to configure rate limiter: %v", err)
	}
	limited := func(h http.HandlerFunc) http.Handler { return h }
	if cfg.RateLimit.Enabled {
		rateLimitMW := middleware.RateLimit(rateLimiter, log)
		limited = func(h http.HandlerFunc) http.Handler { return rateLimitMW(h) }
		log.Info("Rate limit enabled: rps=%.1f, burst=%d", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// Настраиваем роутер
	r := mux.NewRouter()
	r.MethodNotAllowedHandler = handlers.MethodNotAllowed()
	r.NotFoundHandler = handlers.NotFound()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// --- Каталог ---
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/stylists", listStylists.Handle).Methods(http.MethodGet)

	// --- Доступность ---
	api.HandleFunc("/availability", checkAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/slots", getDaySlots.Handle).Methods(http.MethodGet)

	// --- Клиенты ---
	api.HandleFunc("/customers", getCustomer.Handle).Methods(http.MethodGet)
	api.Handle("/customers", limited(resolveCustomer.Handle)).Methods(http.MethodPost)

	// --- Создание бронирования ---
	api.Handle("/bookings", limited(createBooking.Handle)).Methods(http.MethodPost)

	// --- Мастер записи ---
	api.Handle("/wizard/sessions", limited(bookingWizard.Create)).Methods(http.MethodPost)
	api.HandleFunc("/wizard/sessions/{sessionId}", bookingWizard.Get).Methods(http.MethodGet)
	api.HandleFunc("/wizard/sessions/{sessionId}", bookingWizard.Delete).Methods(http.MethodDelete)
	api.Handle("/wizard/sessions/{sessionId}/service", limited(bookingWizard.SelectService)).Methods(http.MethodPut)
	api.Handle("/wizard/sessions/{sessionId}/stylist", limited(bookingWizard.SelectStylist)).Methods(http.MethodPut)
	api.Handle("/wizard/sessions/{sessionId}/slot", limited(bookingWizard.SelectSlot)).Methods(http.MethodPut)
	api.Handle("/wizard/sessions/{sessionId}/details", limited(bookingWizard.SubmitDetails)).Methods(http.MethodPut)
	api.Handle("/wizard/sessions/{sessionId}/next", limited(bookingWizard.Next)).Methods(http.MethodPost)
	api.Handle("/wizard/sessions/{sessionId}/previous", limited(bookingWizard.Previous)).Methods(http.MethodPost)
	api.Handle("/wizard/sessions/{sessionId}/complete", limited(bookingWizard.Complete)).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (Bearer JWT с ролью администратора)
	// ============================================================

	// Список бронирований с поиском, фильтром и пагинацией
	api.Handle("/bookings", admin(listBookings.Handle)).Methods(http.MethodGet)

	// Получение бронирования по ID
	api.Handle("/bookings/{bookingId}", admin(getBooking.Handle)).Methods(http.MethodGet)

	// Смена статуса бронирования
	api.Handle("/bookings/{bookingId}", admin(updateBookingStatus.Handle)).Methods(http.MethodPut)

	// ============================================================
	// BACKGROUND JOBS
	// ============================================================

	scheduler := jobs.NewScheduler(log)
	if cfg.Metrics.Enabled {
		if err := scheduler.Add("bookings_by_status",
			cfg.Jobs.StatusGaugeSpec,
			jobs.RefreshStatusGauge(bookingRepository, metricsCollector, log),
		); err != nil {
			log.Fatal("Failed to schedule job: %v", err)
		}
	}
	if err := scheduler.Add("wizard_evict",
		cfg.Jobs.WizardEvictSpec,
		jobs.EvictWizardSessions(wizardStore, log),
	); err != nil {
		log.Fatal("Failed to schedule job: %v", err)
	}
	if cfg.RateLimit.Enabled {
		if err := scheduler.Add("ratelimit_sweep",
			cfg.Jobs.RateLimitSweepSpec,
			jobs.SweepRateLimiter(rateLimiter, config.Duration(cfg.Jobs.RateLimitIdle), log),
		); err != nil {
			log.Fatal("Failed to schedule job: %v", err)
		}
	}
	scheduler.Start()

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  config.Duration(cfg.Server.ReadTimeout),
		WriteTimeout: config.Duration(cfg.Server.WriteTimeout),
		IdleTimeout:  config.Duration(cfg.Server.IdleTimeout),
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	scheduler.Stop(shutdownCtx)

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
