package domain

import "time"

// TransitionPolicy product-level switches of the status machine
type TransitionPolicy struct {
	// AllowCancelConfirmed permits confirmed -> cancelled
	AllowCancelConfirmed bool
}

// DefaultTransitionPolicy allows every structurally valid transition
func DefaultTransitionPolicy() TransitionPolicy {
	return TransitionPolicy{AllowCancelConfirmed: true}
}

// StatusMachine enforces the booking status lifecycle:
//
//	pending   -> confirmed | cancelled
//	confirmed -> completed | cancelled (policy)
//	completed, cancelled: terminal
//
// Re-applying the current status is rejected rather than treated as a no-op.
type StatusMachine struct {
	transitions map[BookingStatus][]BookingStatus
}

// NewStatusMachine builds the transition table for the given policy
func NewStatusMachine(policy TransitionPolicy) *StatusMachine {
	confirmed := []BookingStatus{StatusCompleted}
	if policy.AllowCancelConfirmed {
		confirmed = append(confirmed, StatusCancelled)
	}

	return &StatusMachine{
		transitions: map[BookingStatus][]BookingStatus{
			StatusPending:   {StatusConfirmed, StatusCancelled},
			StatusConfirmed: confirmed,
			StatusCompleted: {},
			StatusCancelled: {},
		},
	}
}

// CanTransition reports whether from -> to is allowed
func (m *StatusMachine) CanTransition(from, to BookingStatus) bool {
	for _, allowed := range m.transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Allowed returns the statuses reachable from the given one
func (m *StatusMachine) Allowed(from BookingStatus) []BookingStatus {
	allowed := m.transitions[from]
	out := make([]BookingStatus, len(allowed))
	copy(out, allowed)
	return out
}

// Transition moves the booking to the requested status and stamps UpdatedAt.
// Slot occupancy is not re-checked here.
func (m *StatusMachine) Transition(b *Booking, to BookingStatus, now time.Time) error {
	if !m.CanTransition(b.Status, to) {
		return &TransitionError{From: b.Status, To: to}
	}
	b.Status = to
	b.UpdatedAt = now
	return nil
}
