package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusMachine_Transitions(t *testing.T) {
	m := NewStatusMachine(DefaultTransitionPolicy())

	allowed := map[[2]BookingStatus]bool{
		{StatusPending, StatusConfirmed}:   true,
		{StatusPending, StatusCancelled}:   true,
		{StatusConfirmed, StatusCompleted}: true,
		{StatusConfirmed, StatusCancelled}: true,
	}

	for _, from := range AllStatuses {
		for _, to := range AllStatuses {
			from, to := from, to
			t.Run(string(from)+"->"+string(to), func(t *testing.T) {
				assert.Equal(t, allowed[[2]BookingStatus{from, to}], m.CanTransition(from, to))
			})
		}
	}
}

func TestStatusMachine_CancelConfirmedDisabled(t *testing.T) {
	m := NewStatusMachine(TransitionPolicy{AllowCancelConfirmed: false})

	assert.False(t, m.CanTransition(StatusConfirmed, StatusCancelled))
	assert.True(t, m.CanTransition(StatusConfirmed, StatusCompleted))
	assert.Equal(t, []BookingStatus{StatusCompleted}, m.Allowed(StatusConfirmed))
}

func TestStatusMachine_TransitionStampsUpdatedAt(t *testing.T) {
	m := NewStatusMachine(DefaultTransitionPolicy())
	now := time.Date(2025, 2, 10, 12, 0, 0, 0, time.UTC)
	b := &Booking{ID: 1, Status: StatusPending}

	require.NoError(t, m.Transition(b, StatusConfirmed, now))

	assert.Equal(t, StatusConfirmed, b.Status)
	assert.Equal(t, now, b.UpdatedAt)
}

func TestStatusMachine_RejectsSameStatus(t *testing.T) {
	m := NewStatusMachine(DefaultTransitionPolicy())
	before := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	b := &Booking{ID: 1, Status: StatusConfirmed, UpdatedAt: before}

	err := m.Transition(b, StatusConfirmed, time.Now())

	var transitionErr *TransitionError
	require.True(t, errors.As(err, &transitionErr))
	assert.Equal(t, StatusConfirmed, transitionErr.From)
	assert.Equal(t, StatusConfirmed, transitionErr.To)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, before, b.UpdatedAt)
}

func TestStatusMachine_TerminalStates(t *testing.T) {
	m := NewStatusMachine(DefaultTransitionPolicy())

	for _, terminal := range []BookingStatus{StatusCancelled, StatusCompleted} {
		assert.True(t, terminal.IsTerminal())
		assert.Empty(t, m.Allowed(terminal))

		b := &Booking{Status: terminal}
		err := m.Transition(b, StatusPending, time.Now())
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Equal(t, terminal, b.Status)
	}
}

func TestParseBookingStatus(t *testing.T) {
	status, err := ParseBookingStatus("confirmed")
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, status)

	_, err = ParseBookingStatus("archived")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = ParseBookingStatus("")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
