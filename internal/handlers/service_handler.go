package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cleanproservices/cleanpro-api/internal/audit"
	"github.com/cleanproservices/cleanpro-api/internal/httperr"
	"github.com/cleanproservices/cleanpro-api/internal/middleware"
	"github.com/cleanproservices/cleanpro-api/internal/models"
	"github.com/cleanproservices/cleanpro-api/internal/validate"
)

// ServiceHandler manages the bookable offerings. The authorization gate only
// lets ADMIN sessions through to /api/services.
type ServiceHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewServiceHandler(db *gorm.DB, auditDispatcher *audit.Dispatcher) *ServiceHandler {
	return &ServiceHandler{db: db, audit: auditDispatcher}
}

// --------- Requests ---------

type UpdateServiceRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	ShortDesc   *string  `json:"short_desc,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	PriceUnit   *string  `json:"price_unit,omitempty"`
	DurationMin *int     `json:"duration_min,omitempty"`
	ImageURL    *string  `json:"image_url,omitempty"`
	Active      *bool    `json:"active,omitempty"`
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	activeStr := strings.TrimSpace(c.Query("active"))
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Model(&models.Service{})

	if activeStr == "true" {
		q = q.Where("active = ?", true)
	} else if activeStr == "false" {
		q = q.Where("active = ?", false)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "internal_error", "Failed to list services")
		return
	}

	c.JSON(http.StatusOK, gin.H{"services": services})
}

func (h *ServiceHandler) Create(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	var req validate.ServiceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	in, errs := validate.Service(req)
	if len(errs) > 0 {
		httperr.Validation(c, errs)
		return
	}

	var count int64
	if err := h.db.Model(&models.Service{}).
		Where("slug = ?", in.Slug).
		Count(&count).Error; err != nil {
		httperr.Internal(c, "internal_error", "Failed to create service")
		return
	}
	if count > 0 {
		httperr.Conflict(c, "slug_already_exists", "A service with this slug already exists")
		return
	}

	active := true
	if in.Active != nil {
		active = *in.Active
	}

	service := models.Service{
		Name:        in.Name,
		Slug:        in.Slug,
		Description: in.Description,
		ShortDesc:   in.ShortDesc,
		Price:       in.Price,
		PriceUnit:   in.PriceUnit,
		DurationMin: in.DurationMin,
		ImageURL:    in.ImageURL,
		Active:      active,
	}

	if err := h.db.Create(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httperr.Conflict(c, "slug_already_exists", "A service with this slug already exists")
			return
		}
		httperr.Internal(c, "internal_error", "Failed to create service")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &sess.UserID,
		Action:   "service_created",
		Entity:   "service",
		EntityID: &service.ID,
	})

	c.JSON(http.StatusCreated, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	id := c.Param("id")

	var service models.Service
	if err := h.db.First(&service, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "service_not_found", "Service not found")
			return
		}
		httperr.Internal(c, "internal_error", "Failed to get service")
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	// merge the present fields onto the stored row, then hold the result to
	// the same rules the create path enforces
	merged := validate.ServiceInput{
		Name:        service.Name,
		Slug:        service.Slug,
		Description: service.Description,
		ShortDesc:   service.ShortDesc,
		Price:       service.Price,
		PriceUnit:   service.PriceUnit,
		DurationMin: service.DurationMin,
		ImageURL:    service.ImageURL,
	}
	if req.Name != nil {
		merged.Name = *req.Name
	}
	if req.Description != nil {
		merged.Description = *req.Description
	}
	if req.ShortDesc != nil {
		merged.ShortDesc = *req.ShortDesc
	}
	if req.Price != nil {
		merged.Price = *req.Price
	}
	if req.PriceUnit != nil {
		merged.PriceUnit = *req.PriceUnit
	}
	if req.DurationMin != nil {
		merged.DurationMin = *req.DurationMin
	}
	if req.ImageURL != nil {
		merged.ImageURL = *req.ImageURL
	}

	in, errs := validate.Service(merged)
	if len(errs) > 0 {
		httperr.Validation(c, errs)
		return
	}

	service.Name = in.Name
	service.Description = in.Description
	service.ShortDesc = in.ShortDesc
	service.Price = in.Price
	service.PriceUnit = in.PriceUnit
	service.DurationMin = in.DurationMin
	service.ImageURL = in.ImageURL
	if req.Active != nil {
		service.Active = *req.Active
	}

	if err := h.db.Save(&service).Error; err != nil {
		httperr.Internal(c, "internal_error", "Failed to update service")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &sess.UserID,
		Action:   "service_updated",
		Entity:   "service",
		EntityID: &service.ID,
	})

	c.JSON(http.StatusOK, service)
}
