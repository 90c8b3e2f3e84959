package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cleanproservices/cleanpro-api/internal/audit"
	"github.com/cleanproservices/cleanpro-api/internal/config"
	"github.com/cleanproservices/cleanpro-api/internal/handlers"
	infraRepo "github.com/cleanproservices/cleanpro-api/internal/infra/repository"
	"github.com/cleanproservices/cleanpro-api/internal/middleware"
	"github.com/cleanproservices/cleanpro-api/internal/ratelimit"
	ucBooking "github.com/cleanproservices/cleanpro-api/internal/usecase/booking"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, limiter ratelimit.Store) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.Gate(cfg))

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES - BOOKINGS
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(
		bookingRepo,
		auditDispatcher,
	)

	cancelBookingUC := ucBooking.NewCancelBooking(
		bookingRepo,
		auditDispatcher,
	)

	listBookingsUC := ucBooking.NewListBookings(
		bookingRepo,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	contactHandler := handlers.NewContactHandler(db)
	profileHandler := handlers.NewProfileHandler(db)
	serviceHandler := handlers.NewServiceHandler(db, auditDispatcher)
	adminHandler := handlers.NewAdminHandler(db, auditDispatcher)

	bookingHandler := handlers.NewBookingHandler(
		createBookingUC,
		cancelBookingUC,
		listBookingsUC,
	)

	publicWebHandler := handlers.NewPublicWebHandler(db)
	appWebHandler := handlers.NewAppWebHandler(db)

	// rate limit quotas for the mutation surfaces
	authLimit := middleware.RateLimit(limiter, ratelimit.Auth)
	formLimit := middleware.RateLimit(limiter, ratelimit.Form)
	apiLimit := middleware.RateLimit(limiter, ratelimit.API)

	// ======================================================
	// WEB PAGES (HTML)
	// ======================================================
	r.GET("/", publicWebHandler.Home)
	r.GET("/carpet-cleaning", publicWebHandler.ServicePage("carpet-cleaning"))
	r.GET("/sofa-cleaning", publicWebHandler.ServicePage("sofa-cleaning"))
	r.GET("/upholstery-cleaning", publicWebHandler.ServicePage("upholstery-cleaning"))
	r.GET("/about", publicWebHandler.About)
	r.GET("/contact", publicWebHandler.Contact)
	r.GET("/login", publicWebHandler.LoginPage)
	r.GET("/register", publicWebHandler.RegisterPage)

	dashboard := r.Group("/dashboard")
	{
		dashboard.GET("", appWebHandler.Dashboard)
		dashboard.GET("/bookings", appWebHandler.DashboardBookings)
		dashboard.GET("/profile", appWebHandler.DashboardProfile)
	}

	admin := r.Group("/admin")
	{
		admin.GET("", appWebHandler.Admin)
		admin.GET("/bookings", appWebHandler.AdminBookings)
		admin.GET("/services", appWebHandler.AdminServices)
		admin.GET("/users", appWebHandler.AdminUsers)
	}

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH (public, tight quota)
		// ------------------------------
		api.POST("/auth/register", authLimit, authHandler.Register)
		api.POST("/auth/login", authLimit, authHandler.Login)
		api.POST("/auth/logout", authHandler.Logout)

		// ------------------------------
		// CONTACT (public form)
		// ------------------------------
		api.POST("/contact", formLimit, contactHandler.Create)

		// ------------------------------
		// USER AREA (gate requires a session)
		// ------------------------------
		api.GET("/me", apiLimit, profileHandler.GetMe)
		api.PATCH("/profile", formLimit, profileHandler.Update)

		api.GET("/bookings", apiLimit, bookingHandler.List)
		api.POST("/bookings", formLimit, bookingHandler.Create)
		api.PATCH("/bookings/:id/cancel", formLimit, bookingHandler.Cancel)

		// ------------------------------
		// ADMIN (gate requires the ADMIN role)
		// ------------------------------
		api.GET("/services", apiLimit, serviceHandler.List)
		api.POST("/services", formLimit, serviceHandler.Create)
		api.PATCH("/services/:id", formLimit, serviceHandler.Update)

		adminAPI := api.Group("/admin")
		{
			adminAPI.GET("/bookings", apiLimit, adminHandler.ListBookings)
			adminAPI.PATCH("/bookings/:id/status", formLimit, adminHandler.UpdateBookingStatus)

			adminAPI.GET("/users", apiLimit, adminHandler.ListUsers)
			adminAPI.DELETE("/users/:id", formLimit, adminHandler.DeactivateUser)

			adminAPI.GET("/contact-requests", apiLimit, adminHandler.ListContactRequests)
			adminAPI.GET("/stats", apiLimit, adminHandler.Stats)
		}
	}
}
