package booking

import (
	"time"

	"github.com/cleanproservices/cleanpro-api/internal/models"
)

func Cancel(b *models.Booking, now time.Time) error {
	if err := CanCancel(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusCancelled)
	b.CancelledAt = &now
	return nil
}
