package booking

import (
	"context"

	domain "github.com/cleanproservices/cleanpro-api/internal/domain/booking"
	"github.com/cleanproservices/cleanpro-api/internal/dto"
)

type ListBookings struct {
	repo domain.Repository
}

func NewListBookings(
	repo domain.Repository,
) *ListBookings {
	return &ListBookings{
		repo: repo,
	}
}

func (uc *ListBookings) Execute(
	ctx context.Context,
	userID uint,
) ([]dto.BookingListDTO, error) {

	bookings, err := uc.repo.ListBookingsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.BookingListDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, dto.BookingListDTO{
			ID:            b.ID,
			Reference:     b.Reference,
			ScheduledDate: b.ScheduledDate,
			ScheduledTime: b.ScheduledTime,
			Address:       b.Address,
			Notes:         b.Notes,
			TotalPrice:    b.TotalPrice,
			Status:        b.Status,
			ServiceName:   b.Service.Name,
			ServiceSlug:   b.Service.Slug,
		})
	}

	return out, nil
}
