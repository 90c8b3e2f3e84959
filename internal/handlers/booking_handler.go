package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cleanproservices/cleanpro-api/internal/httperr"
	"github.com/cleanproservices/cleanpro-api/internal/middleware"
	ucBooking "github.com/cleanproservices/cleanpro-api/internal/usecase/booking"
	"github.com/cleanproservices/cleanpro-api/internal/validate"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	createUC *ucBooking.CreateBooking
	cancelUC *ucBooking.CancelBooking
	listUC   *ucBooking.ListBookings
}

func NewBookingHandler(
	createUC *ucBooking.CreateBooking,
	cancelUC *ucBooking.CancelBooking,
	listUC *ucBooking.ListBookings,
) *BookingHandler {
	return &BookingHandler{
		createUC: createUC,
		cancelUC: cancelUC,
		listUC:   listUC,
	}
}

// ======================================================
// HANDLERS
// ======================================================

func (h *BookingHandler) List(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	bookings, err := h.listUC.Execute(c.Request.Context(), sess.UserID)
	if err != nil {
		httperr.Internal(c, "internal_error", "Failed to fetch bookings")
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

func (h *BookingHandler) Create(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	var req validate.BookingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	in, errs := validate.Booking(req, time.Now())
	if len(errs) > 0 {
		httperr.Validation(c, errs)
		return
	}

	// validated above
	date, _ := time.Parse("2006-01-02", in.ScheduledDate)

	booking, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		UserID:        sess.UserID,
		ServiceID:     in.ServiceID,
		ScheduledDate: date,
		ScheduledTime: in.ScheduledTime,
		Address:       in.Address,
		Notes:         in.Notes,
	})
	if err != nil {
		if httperr.IsBusiness(err, "service_unavailable") {
			httperr.BadRequest(c, "service_unavailable", "Selected service is not available")
			return
		}
		httperr.Internal(c, "internal_error", "Failed to create booking")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Booking created successfully",
		"booking": booking,
	})
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Invalid booking id")
		return
	}

	booking, err := h.cancelUC.Execute(c.Request.Context(), sess.UserID, uint(id))
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "booking_not_found"):
			httperr.NotFound(c, "booking_not_found", "Booking not found")
		case httperr.IsBusiness(err, "invalid_state"):
			httperr.Conflict(c, "invalid_state", "Only pending bookings can be cancelled")
		default:
			httperr.Internal(c, "internal_error", "Failed to cancel booking")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Booking cancelled",
		"booking": booking,
	})
}
