package wizard

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type session struct {
	controller *Controller
	lastSeen   time.Time
}

// Store хранит сессии мастера записи в памяти процесса
// Сессия живет, пока к ней обращаются чаще, чем раз в ttl
type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*session

	deps        Dependencies
	ttl         time.Duration
	maxSessions int
	metrics     Metrics
	logger      Logger
	now         func() time.Time
}

// NewStore создает хранилище сессий
func NewStore(deps Dependencies, ttl time.Duration, maxSessions int, metrics Metrics, logger Logger) *Store {
	return &Store{
		sessions:    make(map[uuid.UUID]*session),
		deps:        deps,
		ttl:         ttl,
		maxSessions: maxSessions,
		metrics:     metrics,
		logger:      logger,
		now:         time.Now,
	}
}

// Create создает новую сессию и возвращает ее идентификатор
func (s *Store) Create() (uuid.UUID, *Controller, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.maxSessions > 0 && len(s.sessions) >= s.maxSessions {
		// Пробуем освободить место за счет истекших сессий
		s.evictLocked(s.now())
		if len(s.sessions) >= s.maxSessions {
			return uuid.Nil, nil, ErrTooManySessions
		}
	}

	id := uuid.New()
	ctrl := NewController(s.deps, s.logger)
	s.sessions[id] = &session{controller: ctrl, lastSeen: s.now()}
	s.reportLocked()

	return id, ctrl, nil
}

// Get возвращает контроллер сессии и продлевает ее жизнь
func (s *Store) Get(id uuid.UUID) (*Controller, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}

	now := s.now()
	if s.expired(sess, now) {
		delete(s.sessions, id)
		s.reportLocked()
		return nil, ErrSessionNotFound
	}
	sess.lastSeen = now

	return sess.controller, nil
}

// Delete удаляет сессию; удаление несуществующей сессии не ошибка
func (s *Store) Delete(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	s.reportLocked()
}

// EvictIdle удаляет все истекшие сессии и возвращает их количество
func (s *Store) EvictIdle() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.evictLocked(s.now())
}

// Len количество активных сессий
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}

func (s *Store) evictLocked(now time.Time) int {
	evicted := 0
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, id)
			evicted++
		}
	}
	if evicted > 0 {
		s.logger.Info("Wizard: evicted %d idle sessions", evicted)
		s.reportLocked()
	}
	return evicted
}

func (s *Store) expired(sess *session, now time.Time) bool {
	return s.ttl > 0 && now.Sub(sess.lastSeen) > s.ttl
}

func (s *Store) reportLocked() {
	if s.metrics != nil {
		s.metrics.SetWizardSessions(len(s.sessions))
	}
}
