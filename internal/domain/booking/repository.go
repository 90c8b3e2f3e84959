package booking

import (
	"context"

	"github.com/cleanproservices/cleanpro-api/internal/models"
)

type Repository interface {
	// -------- Service --------
	GetActiveService(
		ctx context.Context,
		serviceID uint,
	) (*models.Service, error)

	// -------- Booking --------
	CreateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	GetBookingForUser(
		ctx context.Context,
		bookingID uint,
		userID uint,
	) (*models.Booking, error)

	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	ListBookingsForUser(
		ctx context.Context,
		userID uint,
	) ([]models.Booking, error)
}
