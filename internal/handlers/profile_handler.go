package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cleanproservices/cleanpro-api/internal/httperr"
	"github.com/cleanproservices/cleanpro-api/internal/httpresp"
	"github.com/cleanproservices/cleanpro-api/internal/middleware"
	"github.com/cleanproservices/cleanpro-api/internal/models"
	"github.com/cleanproservices/cleanpro-api/internal/validate"
)

type ProfileHandler struct {
	db *gorm.DB
}

func NewProfileHandler(db *gorm.DB) *ProfileHandler {
	return &ProfileHandler{db: db}
}

func (h *ProfileHandler) GetMe(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	var user models.User
	if err := h.db.First(&user, sess.UserID).Error; err != nil {
		httperr.Internal(c, "internal_error", "Failed to load profile")
		return
	}

	httpresp.OK(c, gin.H{
		"user": gin.H{
			"id":      user.ID,
			"name":    user.Name,
			"email":   user.Email,
			"phone":   user.Phone,
			"address": user.Address,
			"role":    user.Role,
		},
	})
}

func (h *ProfileHandler) Update(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	var req validate.ProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	in, errs := validate.Profile(req)
	if len(errs) > 0 {
		httperr.Validation(c, errs)
		return
	}

	var user models.User
	if err := h.db.First(&user, sess.UserID).Error; err != nil {
		httperr.Internal(c, "internal_error", "Failed to update profile")
		return
	}

	user.Name = in.Name
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if in.Address != nil {
		user.Address = *in.Address
	}

	if err := h.db.Save(&user).Error; err != nil {
		httperr.Internal(c, "internal_error", "Failed to update profile")
		return
	}

	httpresp.OK(c, gin.H{
		"message": "Profile updated successfully",
		"user": gin.H{
			"id":      user.ID,
			"name":    user.Name,
			"email":   user.Email,
			"phone":   user.Phone,
			"address": user.Address,
		},
	})
}
