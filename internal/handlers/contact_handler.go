package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cleanproservices/cleanpro-api/internal/httperr"
	"github.com/cleanproservices/cleanpro-api/internal/httpresp"
	"github.com/cleanproservices/cleanpro-api/internal/models"
	"github.com/cleanproservices/cleanpro-api/internal/validate"
)

type ContactHandler struct {
	db *gorm.DB
}

func NewContactHandler(db *gorm.DB) *ContactHandler {
	return &ContactHandler{db: db}
}

func (h *ContactHandler) Create(c *gin.Context) {
	var req validate.ContactInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	in, errs := validate.Contact(req)
	if len(errs) > 0 {
		httperr.Validation(c, errs)
		return
	}

	request := models.ContactRequest{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Service: in.Service,
		Message: in.Message,
	}

	if err := h.db.Create(&request).Error; err != nil {
		httperr.Internal(c, "internal_error", "An error occurred. Please try again later.")
		return
	}

	httpresp.Created(c, gin.H{
		"message": "Thank you! We will get back to you soon.",
		"id":      request.ID,
	})
}
