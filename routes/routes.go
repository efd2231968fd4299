package routes

import (
	"net/http"

	"bookwell/handlers"
	"bookwell/middleware"

	"github.com/gin-gonic/gin"
)

// Handlers bundles everything the router needs.
type Handlers struct {
	Auth    *handlers.AuthHandler
	Booking *handlers.BookingHandler
	Catalog *handlers.CatalogHandler
	Tenant  *handlers.TenantHandler
	Chat    *handlers.ChatHandler
	Public  *handlers.PublicHandler
}

// RegisterRoutes wires all endpoint groups onto the router.
func RegisterRoutes(r *gin.Engine, h *Handlers) {
	RegisterHealthRoute(r)
	RegisterAuthRoutes(r, h)
	RegisterConsoleRoutes(r, h)
	RegisterChatRoutes(r, h)
	RegisterPublicRoutes(r, h)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Bookwell"})
	})
}

// RegisterAuthRoutes registers the staff login endpoint.
func RegisterAuthRoutes(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/auth")
	{
		api.POST("/login", h.Auth.Login)
	}
}

// RegisterConsoleRoutes registers the authenticated staff console endpoints.
func RegisterConsoleRoutes(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/console")
	api.Use(middleware.StaffAuthMiddleware())
	{
		api.POST("/bookings", h.Booking.CreateBooking)
		api.GET("/bookings", h.Booking.ListBookingsByDay)
		api.GET("/bookings/:id", h.Booking.GetBooking)
		api.PATCH("/bookings/:id", h.Booking.UpdateBooking)
		api.DELETE("/bookings/:id", h.Booking.DeleteBooking)
		api.POST("/bookings/:id/confirm", h.Booking.Confirm)
		api.POST("/bookings/:id/start", h.Booking.StartService)
		api.POST("/bookings/:id/complete", h.Booking.Complete)
		api.POST("/bookings/:id/cancel", h.Booking.Cancel)
		api.POST("/bookings/:id/no-show", h.Booking.MarkNoShow)

		api.GET("/services", h.Catalog.ListServices)
		api.GET("/staff", h.Catalog.ListStaff)

		api.GET("/settings/reminders", h.Tenant.GetReminderSettings)
		api.PUT("/settings/reminders", h.Tenant.UpdateReminderSettings)
	}
}

// RegisterChatRoutes registers the chat webhook.
func RegisterChatRoutes(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/chat")
	{
		api.POST("/message", h.Chat.HandleMessage)
	}
}

// RegisterPublicRoutes registers the unauthenticated customer endpoints.
// The cancel token is the only capability, so the group is rate limited.
func RegisterPublicRoutes(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/public")
	api.Use(middleware.RateLimitMiddleware())
	{
		api.POST("/bookings/cancel/:token", h.Public.CancelByToken)
	}
}
