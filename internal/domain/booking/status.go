package booking

import "github.com/cleanproservices/cleanpro-api/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusConfirmed  Status = "CONFIRMED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
)

func Valid(s Status) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CanCancel guards the customer-facing cancel path: only bookings that have
// not been confirmed yet may be cancelled by their owner. Admin status
// updates are not routed through this guard.
func CanCancel(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}
