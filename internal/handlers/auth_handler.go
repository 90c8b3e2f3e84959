package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/cleanproservices/cleanpro-api/internal/config"
	"github.com/cleanproservices/cleanpro-api/internal/httperr"
	"github.com/cleanproservices/cleanpro-api/internal/models"
	"github.com/cleanproservices/cleanpro-api/internal/session"
	"github.com/cleanproservices/cleanpro-api/internal/validate"
)

const bcryptCost = 12

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, config: cfg}
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req validate.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	in, errs := validate.Register(req)
	if len(errs) > 0 {
		httperr.Validation(c, errs)
		return
	}

	var count int64
	if err := h.db.Model(&models.User{}).
		Where("email = ?", in.Email).
		Count(&count).Error; err != nil {
		httperr.Internal(c, "internal_error", "An error occurred during registration")
		return
	}
	if count > 0 {
		httperr.Conflict(c, "email_already_exists", "An account with this email already exists")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		httperr.Internal(c, "internal_error", "An error occurred during registration")
		return
	}

	user := models.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hashed),
		Role:         models.RoleUser,
	}

	if err := h.db.Create(&user).Error; err != nil {
		// the count above races with concurrent registrations; the unique
		// index on email is the authority
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httperr.Conflict(c, "email_already_exists", "An account with this email already exists")
			return
		}
		httperr.Internal(c, "internal_error", "An error occurred during registration")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created successfully",
		"user": gin.H{
			"id":         user.ID,
			"name":       user.Name,
			"email":      user.Email,
			"role":       user.Role,
			"created_at": user.CreatedAt,
		},
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req validate.LoginInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	in, errs := validate.Login(req)
	if len(errs) > 0 {
		httperr.Validation(c, errs)
		return
	}

	// one generic message for absent, deactivated and mismatched accounts
	// so the response never says which condition failed
	var user models.User
	err := h.db.
		Where("email = ? AND deleted_at IS NULL", in.Email).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "Invalid email or password")
			return
		}
		httperr.Internal(c, "internal_error", "An error occurred during login")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid email or password")
		return
	}

	token, err := session.IssueToken(&user, h.config.JWTSecret)
	if err != nil {
		httperr.Internal(c, "internal_error", "An error occurred during login")
		return
	}

	c.SetCookie(session.CookieName, token, int(session.TTL.Seconds()), "/", "", false, true)

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
		"token": token,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(session.CookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
