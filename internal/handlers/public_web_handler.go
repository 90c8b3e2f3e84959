package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cleanproservices/cleanpro-api/internal/models"
)

// PublicWebHandler renders the marketing pages. Presentation is a thin skin
// over the same queries the API uses.
type PublicWebHandler struct {
	db *gorm.DB
}

func NewPublicWebHandler(db *gorm.DB) *PublicWebHandler {
	return &PublicWebHandler{db: db}
}

func (h *PublicWebHandler) Home(c *gin.Context) {
	var services []models.Service
	if err := h.db.
		Where("active = true").
		Order("id ASC").
		Find(&services).Error; err != nil {
		c.String(http.StatusInternalServerError, "Failed to load services.")
		return
	}

	c.HTML(http.StatusOK, "home.html", gin.H{
		"Services": services,
	})
}

// ServicePage renders one marketing page per service slug
// (/carpet-cleaning, /sofa-cleaning, /upholstery-cleaning).
func (h *PublicWebHandler) ServicePage(slug string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var service models.Service
		if err := h.db.
			Where("slug = ? AND active = true", slug).
			First(&service).Error; err != nil {
			c.String(http.StatusNotFound, "Service not found.")
			return
		}

		c.HTML(http.StatusOK, "service.html", gin.H{
			"Service": service,
		})
	}
}

func (h *PublicWebHandler) About(c *gin.Context) {
	c.HTML(http.StatusOK, "about.html", gin.H{})
}

func (h *PublicWebHandler) Contact(c *gin.Context) {
	var services []models.Service
	h.db.Where("active = true").Order("id ASC").Find(&services)

	c.HTML(http.StatusOK, "contact.html", gin.H{
		"Services": services,
	})
}

func (h *PublicWebHandler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"CallbackURL": c.Query("callbackUrl"),
	})
}

func (h *PublicWebHandler) RegisterPage(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{})
}
