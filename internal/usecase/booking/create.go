package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cleanproservices/cleanpro-api/internal/audit"
	domain "github.com/cleanproservices/cleanpro-api/internal/domain/booking"
	"github.com/cleanproservices/cleanpro-api/internal/httperr"
	"github.com/cleanproservices/cleanpro-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	UserID    uint
	ServiceID uint

	ScheduledDate time.Time
	ScheduledTime string

	Address string
	Notes   string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateBooking {
	return &CreateBooking{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	// the service must exist and be active at booking time
	service, err := uc.repo.GetActiveService(ctx, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_unavailable")
	}

	// price is captured here; later service edits never touch this booking
	b := &models.Booking{
		Reference:     uuid.NewString(),
		UserID:        in.UserID,
		ServiceID:     service.ID,
		ScheduledDate: in.ScheduledDate,
		ScheduledTime: in.ScheduledTime,
		Address:       in.Address,
		Notes:         in.Notes,
		TotalPrice:    service.Price,
		Status:        string(domain.InitialStatus()),
	}

	if err := uc.repo.CreateBooking(ctx, b); err != nil {
		return nil, err
	}

	b.Service = *service

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
