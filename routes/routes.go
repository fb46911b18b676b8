package routes

import (
	"lavellh/handlers"

	"github.com/gin-gonic/gin"
)

// HandlerBundle aggregates the engine's route handlers.
type HandlerBundle struct {
	Booking     *handlers.BookingHandler
	Appointment *handlers.AppointmentHandler
	Provider    *handlers.ProviderReservationHandler
	Admin       *handlers.AdminHandler
}

// RegisterRoutes registers every engine endpoint on the router.
func RegisterRoutes(r *gin.Engine, h *HandlerBundle) {
	RegisterBookingRoutes(r, h.Booking)
	RegisterAppointmentRoutes(r, h.Appointment)
	RegisterProviderRoutes(r, h.Provider)
	RegisterAdminRoutes(r, h.Admin)
}
