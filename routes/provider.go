package routes

import (
	"lavellh/handlers"
	"lavellh/middleware"
	"lavellh/models"

	"github.com/gin-gonic/gin"
)

// RegisterProviderRoutes registers the provider-side lifecycle endpoints.
func RegisterProviderRoutes(r *gin.Engine, h *handlers.ProviderReservationHandler) {
	provider := r.Group("/api/provider/reservations")
	provider.Use(middleware.JWTAuthMiddleware(models.ActorProvider))
	{
		provider.GET("", h.List)
		provider.PATCH("/:id/confirm", h.Confirm)
		provider.PATCH("/:id/reject", h.Reject)
		provider.PATCH("/:id/start", h.Start)
		provider.PATCH("/:id/complete", h.Complete)
		provider.POST("/:id/due", h.RequestDue)
		provider.PATCH("/:id/offline-paid", h.MarkOfflinePaid)
	}
}

// RegisterAdminRoutes registers the administrative endpoints.
func RegisterAdminRoutes(r *gin.Engine, h *handlers.AdminHandler) {
	admin := r.Group("/api/admin/reservations")
	admin.Use(middleware.JWTAuthMiddleware(models.ActorAdmin))
	{
		admin.PATCH("/:id/cancel", h.CancelReservation)
	}
}
