package routes

import (
	"lavellh/handlers"
	"lavellh/middleware"
	"lavellh/models"

	"github.com/gin-gonic/gin"
)

// RegisterAppointmentRoutes registers the consumer appointment endpoints.
// The available-slots query is public; everything else requires a user token.
func RegisterAppointmentRoutes(r *gin.Engine, h *handlers.AppointmentHandler) {
	r.GET("/api/appointments/available-slots/:serviceId", h.AvailableSlots)

	appointments := r.Group("/api/appointments")
	appointments.Use(middleware.JWTAuthMiddleware(models.ActorUser))
	{
		appointments.POST("", h.CreateAppointment)
		appointments.GET("/my-appointments", h.MyAppointments)
		appointments.GET("/:id", h.GetAppointment)
		appointments.PATCH("/:id/cancel", h.CancelAppointment)
		appointments.PATCH("/:id/reschedule", h.Reschedule)
		appointments.GET("/:id/checkout-session", h.CheckoutSession)
		appointments.POST("/:id/review", h.ReviewAppointment)
		appointments.GET("/:id/payment-status", h.PaymentStatus)
	}
}
