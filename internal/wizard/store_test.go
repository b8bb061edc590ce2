package wizard

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gaugeRecorder struct {
	values []int
}

func (g *gaugeRecorder) SetWizardSessions(n int) {
	g.values = append(g.values, n)
}

func (g *gaugeRecorder) last() int {
	if len(g.values) == 0 {
		return -1
	}
	return g.values[len(g.values)-1]
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newTestStore(ttl time.Duration, max int) (*Store, *fakeClock, *gaugeRecorder) {
	clock := &fakeClock{now: time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)}
	gauge := &gaugeRecorder{}
	s := NewStore(newTestDeps().dependencies(), ttl, max, gauge, nopLogger{})
	s.now = clock.Now
	return s, clock, gauge
}

func (d *testDeps) dependencies() Dependencies {
	return Dependencies{
		Catalog:      d.catalog,
		Availability: d.availability,
		Customers:    d.customers,
		Bookings:     d.bookings,
	}
}

func TestStore_CreateGetDelete(t *testing.T) {
	s, _, gauge := newTestStore(time.Minute, 10)

	id, ctrl, err := s.Create()
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, id)
	assert.Equal(t, StepService, ctrl.Snapshot().Step)
	assert.Equal(t, 1, gauge.last())

	got, err := s.Get(id)
	require.NoError(t, err)
	assert.Same(t, ctrl, got)

	s.Delete(id)
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 0, gauge.last())

	_, err = s.Get(id)
	require.ErrorIs(t, err, ErrSessionNotFound)

	// повторное удаление не ошибка
	s.Delete(id)
}

func TestStore_GetUnknown(t *testing.T) {
	s, _, _ := newTestStore(time.Minute, 10)

	_, err := s.Get(uuid.New())
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStore_SessionExpiresWhenIdle(t *testing.T) {
	s, clock, gauge := newTestStore(time.Minute, 10)

	id, _, err := s.Create()
	require.NoError(t, err)

	// обращение продлевает сессию
	clock.now = clock.now.Add(50 * time.Second)
	_, err = s.Get(id)
	require.NoError(t, err)

	clock.now = clock.now.Add(50 * time.Second)
	_, err = s.Get(id)
	require.NoError(t, err)

	clock.now = clock.now.Add(61 * time.Second)
	_, err = s.Get(id)
	require.ErrorIs(t, err, ErrSessionNotFound)
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 0, gauge.last())
}

func TestStore_EvictIdle(t *testing.T) {
	s, clock, gauge := newTestStore(time.Minute, 10)

	oldID, _, err := s.Create()
	require.NoError(t, err)

	clock.now = clock.now.Add(45 * time.Second)
	freshID, _, err := s.Create()
	require.NoError(t, err)

	clock.now = clock.now.Add(30 * time.Second)
	assert.Equal(t, 1, s.EvictIdle())
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 1, gauge.last())

	_, err = s.Get(oldID)
	require.ErrorIs(t, err, ErrSessionNotFound)
	_, err = s.Get(freshID)
	require.NoError(t, err)

	assert.Equal(t, 0, s.EvictIdle())
}

func TestStore_MaxSessions(t *testing.T) {
	s, clock, _ := newTestStore(time.Minute, 2)

	_, _, err := s.Create()
	require.NoError(t, err)
	_, _, err = s.Create()
	require.NoError(t, err)

	_, _, err = s.Create()
	require.ErrorIs(t, err, ErrTooManySessions)

	// истекшие сессии освобождают место
	clock.now = clock.now.Add(2 * time.Minute)
	_, _, err = s.Create()
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())
}

func TestStore_ZeroTTLNeverExpires(t *testing.T) {
	s, clock, _ := newTestStore(0, 0)

	id, _, err := s.Create()
	require.NoError(t, err)

	clock.now = clock.now.Add(24 * time.Hour)
	_, err = s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, 0, s.EvictIdle())
}
