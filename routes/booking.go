package routes

import (
	"lavellh/handlers"
	"lavellh/middleware"
	"lavellh/models"

	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers the consumer booking endpoints.
func RegisterBookingRoutes(r *gin.Engine, h *handlers.BookingHandler) {
	bookings := r.Group("/api/bookings")
	bookings.Use(middleware.JWTAuthMiddleware(models.ActorUser))
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("/my-bookings", h.MyBookings)
		bookings.GET("/:id", h.GetBooking)
		bookings.PATCH("/:id/cancel", h.CancelBooking)
		bookings.POST("/:id/review", h.ReviewBooking)
		bookings.GET("/:id/checkout-session", h.CheckoutSession)
		bookings.GET("/:id/due/intent", h.DueIntent)
		bookings.POST("/:id/due/confirm", h.ConfirmDue)
		bookings.GET("/:id/payment-status", h.PaymentStatus)
	}
}
