package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/cleanproservices/cleanpro-api/internal/domain/booking"
	"github.com/cleanproservices/cleanpro-api/internal/middleware"
	"github.com/cleanproservices/cleanpro-api/internal/models"
)

// AppWebHandler renders the customer dashboard and the admin back office.
// The gate guarantees a session (and the ADMIN role for /admin pages) before
// any of these run.
type AppWebHandler struct {
	db *gorm.DB
}

func NewAppWebHandler(db *gorm.DB) *AppWebHandler {
	return &AppWebHandler{db: db}
}

// --------- Dashboard (customer area) ---------

func (h *AppWebHandler) Dashboard(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	var user models.User
	if err := h.db.First(&user, sess.UserID).Error; err != nil {
		c.String(http.StatusInternalServerError, "Failed to load account.")
		return
	}

	var bookingCount int64
	h.db.Model(&models.Booking{}).Where("user_id = ?", sess.UserID).Count(&bookingCount)

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"User":         user,
		"BookingCount": bookingCount,
	})
}

func (h *AppWebHandler) DashboardBookings(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	var bookings []models.Booking
	if err := h.db.
		Preload("Service").
		Where("user_id = ?", sess.UserID).
		Order("scheduled_date DESC").
		Find(&bookings).Error; err != nil {
		c.String(http.StatusInternalServerError, "Failed to load bookings.")
		return
	}

	var services []models.Service
	h.db.Where("active = true").Order("id ASC").Find(&services)

	c.HTML(http.StatusOK, "dashboard_bookings.html", gin.H{
		"Bookings": bookings,
		"Services": services,
	})
}

func (h *AppWebHandler) DashboardProfile(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	var user models.User
	if err := h.db.First(&user, sess.UserID).Error; err != nil {
		c.String(http.StatusInternalServerError, "Failed to load profile.")
		return
	}

	c.HTML(http.StatusOK, "dashboard_profile.html", gin.H{
		"User": user,
	})
}

// --------- Admin area ---------

func (h *AppWebHandler) Admin(c *gin.Context) {
	var (
		userCount    int64
		bookingCount int64
		pendingCount int64
	)

	h.db.Model(&models.User{}).Where("deleted_at IS NULL").Count(&userCount)
	h.db.Model(&models.Booking{}).Count(&bookingCount)
	h.db.Model(&models.Booking{}).
		Where("status = ?", string(domain.StatusPending)).
		Count(&pendingCount)

	var recent []models.Booking
	h.db.Preload("Service").Preload("User").
		Order("created_at DESC").
		Limit(10).
		Find(&recent)

	c.HTML(http.StatusOK, "admin.html", gin.H{
		"UserCount":    userCount,
		"BookingCount": bookingCount,
		"PendingCount": pendingCount,
		"Recent":       recent,
	})
}

func (h *AppWebHandler) AdminBookings(c *gin.Context) {
	var bookings []models.Booking
	if err := h.db.
		Preload("Service").
		Preload("User").
		Order("scheduled_date DESC").
		Find(&bookings).Error; err != nil {
		c.String(http.StatusInternalServerError, "Failed to load bookings.")
		return
	}

	c.HTML(http.StatusOK, "admin_bookings.html", gin.H{
		"Bookings": bookings,
	})
}

func (h *AppWebHandler) AdminServices(c *gin.Context) {
	var services []models.Service
	if err := h.db.Order("id ASC").Find(&services).Error; err != nil {
		c.String(http.StatusInternalServerError, "Failed to load services.")
		return
	}

	c.HTML(http.StatusOK, "admin_services.html", gin.H{
		"Services": services,
	})
}

func (h *AppWebHandler) AdminUsers(c *gin.Context) {
	var users []models.User
	if err := h.db.
		Where("deleted_at IS NULL").
		Order("id ASC").
		Find(&users).Error; err != nil {
		c.String(http.StatusInternalServerError, "Failed to load users.")
		return
	}

	c.HTML(http.StatusOK, "admin_users.html", gin.H{
		"Users": users,
	})
}
