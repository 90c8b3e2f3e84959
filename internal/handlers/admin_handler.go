package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cleanproservices/cleanpro-api/internal/audit"
	domain "github.com/cleanproservices/cleanpro-api/internal/domain/booking"
	"github.com/cleanproservices/cleanpro-api/internal/httperr"
	"github.com/cleanproservices/cleanpro-api/internal/httpresp"
	"github.com/cleanproservices/cleanpro-api/internal/middleware"
	"github.com/cleanproservices/cleanpro-api/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

// AdminHandler backs the admin area: all bookings, the customer list, the
// contact inbox and the dashboard stats. The gate has already checked the
// ADMIN role by the time these run.
type AdminHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewAdminHandler(db *gorm.DB, auditDispatcher *audit.Dispatcher) *AdminHandler {
	return &AdminHandler{db: db, audit: auditDispatcher}
}

// ======================================================
// BOOKINGS
// ======================================================

func (h *AdminHandler) ListBookings(c *gin.Context) {
	status := c.Query("status")

	q := h.db.Preload("Service").Preload("User")
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var bookings []models.Booking
	if err := q.Order("scheduled_date DESC").Find(&bookings).Error; err != nil {
		httperr.Internal(c, "internal_error", "Failed to list bookings")
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateBookingStatus lets an admin set any valid status value. There is no
// transition machine here; PENDING -> COMPLETED is as legal as any other
// write.
func (h *AdminHandler) UpdateBookingStatus(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Invalid booking id")
		return
	}

	var req UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if !domain.Valid(domain.Status(req.Status)) {
		httperr.BadRequest(c, "invalid_status", "Unknown booking status")
		return
	}

	var booking models.Booking
	if err := h.db.First(&booking, uint(id)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "booking_not_found", "Booking not found")
			return
		}
		httperr.Internal(c, "internal_error", "Failed to get booking")
		return
	}

	previous := booking.Status
	booking.Status = req.Status
	if req.Status == string(domain.StatusCancelled) && booking.CancelledAt == nil {
		now := time.Now()
		booking.CancelledAt = &now
	}

	if err := h.db.Save(&booking).Error; err != nil {
		httperr.Internal(c, "internal_error", "Failed to update booking")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &sess.UserID,
		Action:   "booking_status_changed",
		Entity:   "booking",
		EntityID: &booking.ID,
		Metadata: gin.H{"from": previous, "to": booking.Status},
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Booking updated",
		"booking": booking,
	})
}

// ======================================================
// USERS
// ======================================================

func (h *AdminHandler) ListUsers(c *gin.Context) {
	var users []models.User
	if err := h.db.
		Where("deleted_at IS NULL").
		Order("id ASC").
		Find(&users).Error; err != nil {
		httperr.Internal(c, "internal_error", "Failed to list users")
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// DeactivateUser soft-deletes an account. The row stays for booking history;
// the user drops out of listings and can no longer log in.
func (h *AdminHandler) DeactivateUser(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_user_id", "Invalid user id")
		return
	}

	if uint(id) == sess.UserID {
		httperr.BadRequest(c, "cannot_deactivate_self", "You cannot deactivate your own account")
		return
	}

	var user models.User
	if err := h.db.
		Where("id = ? AND deleted_at IS NULL", uint(id)).
		First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "user_not_found", "User not found")
			return
		}
		httperr.Internal(c, "internal_error", "Failed to get user")
		return
	}

	now := time.Now()
	user.DeletedAt = &now

	if err := h.db.Save(&user).Error; err != nil {
		httperr.Internal(c, "internal_error", "Failed to deactivate user")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &sess.UserID,
		Action:   "user_deactivated",
		Entity:   "user",
		EntityID: &user.ID,
	})

	c.JSON(http.StatusOK, gin.H{"message": "User deactivated"})
}

// ======================================================
// CONTACT REQUESTS
// ======================================================

func (h *AdminHandler) ListContactRequests(c *gin.Context) {
	var requests []models.ContactRequest
	if err := h.db.
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		httperr.Internal(c, "internal_error", "Failed to list contact requests")
		return
	}

	httpresp.List(c, requests)
}

// ======================================================
// STATS
// ======================================================

func (h *AdminHandler) Stats(c *gin.Context) {
	var (
		userCount    int64
		bookingCount int64
		pendingCount int64
		revenue      float64
	)

	if err := h.db.Model(&models.User{}).
		Where("deleted_at IS NULL").
		Count(&userCount).Error; err != nil {
		httperr.Internal(c, "internal_error", "Failed to load stats")
		return
	}

	if err := h.db.Model(&models.Booking{}).Count(&bookingCount).Error; err != nil {
		httperr.Internal(c, "internal_error", "Failed to load stats")
		return
	}

	if err := h.db.Model(&models.Booking{}).
		Where("status = ?", string(domain.StatusPending)).
		Count(&pendingCount).Error; err != nil {
		httperr.Internal(c, "internal_error", "Failed to load stats")
		return
	}

	if err := h.db.Model(&models.Booking{}).
		Where("status = ?", string(domain.StatusCompleted)).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&revenue).Error; err != nil {
		httperr.Internal(c, "internal_error", "Failed to load stats")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users":            userCount,
		"bookings":         bookingCount,
		"pending_bookings": pendingCount,
		"revenue":          revenue,
	})
}
