package handlers

import (
	"net/http"

	"lavellh/models"
	"lavellh/services/booking"
	"lavellh/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AppointmentHandler serves the consumer routes for appointment reservations.
type AppointmentHandler struct {
	Svc    booking.ReservationService
	Logger *zap.Logger
}

// NewAppointmentHandler creates an AppointmentHandler.
func NewAppointmentHandler(svc booking.ReservationService, logger *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{Svc: svc, Logger: logger}
}

// CreateAppointment handles POST /appointments. Responds 409 on slot conflict.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var in models.CreateAppointmentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, booking.CodeInvalidArgument, err.Error())
		return
	}
	res, err := h.Svc.CreateAppointment(c.Request.Context(), actorID(c), in)
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, "appointment created", res)
}

// MyAppointments handles GET /appointments/my-appointments.
func (h *AppointmentHandler) MyAppointments(c *gin.Context) {
	page, limit := pageParams(c)
	filter := models.ListFilter{
		Kind:   models.KindAppointment,
		Status: models.ReservationStatus(c.Query("status")),
		Page:   page,
		Limit:  limit,
	}
	results, total, err := h.Svc.ListUserReservations(c.Request.Context(), actorID(c), filter)
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "", pagedData("appointments", results, page, limit, total))
}

// AvailableSlots handles GET /appointments/available-slots/:serviceId (public).
func (h *AppointmentHandler) AvailableSlots(c *gin.Context) {
	slots, err := h.Svc.AvailableSlots(c.Request.Context(), c.Param("serviceId"), c.Query("date"))
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "", slots)
}

// GetAppointment handles GET /appointments/:id.
func (h *AppointmentHandler) GetAppointment(c *gin.Context) {
	res := h.getOwnedAppointment(c)
	if res == nil {
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "", res)
}

// CancelAppointment handles PATCH /appointments/:id/cancel.
func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	var in models.CancelInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, booking.CodeInvalidArgument, err.Error())
		return
	}
	res, err := h.Svc.Cancel(c.Request.Context(), actorID(c), models.ActorUser, c.Param("id"), in.CancellationReason)
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "appointment cancelled", res)
}

// Reschedule handles PATCH /appointments/:id/reschedule. Responds 409 on
// conflict; a successful move resets the status to pending.
func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	var in models.RescheduleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, booking.CodeInvalidArgument, err.Error())
		return
	}
	res, err := h.Svc.Reschedule(c.Request.Context(), actorID(c), c.Param("id"), in)
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "appointment rescheduled", res)
}

// CheckoutSession handles GET /appointments/:id/checkout-session.
func (h *AppointmentHandler) CheckoutSession(c *gin.Context) {
	session, err := h.Svc.CheckoutSession(c.Request.Context(), actorID(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "", session)
}

// ReviewAppointment handles POST /appointments/:id/review.
func (h *AppointmentHandler) ReviewAppointment(c *gin.Context) {
	var in models.ReviewInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, booking.CodeInvalidArgument, err.Error())
		return
	}
	res, err := h.Svc.Review(c.Request.Context(), actorID(c), c.Param("id"), in)
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, "review recorded", res)
}

// PaymentStatus handles GET /appointments/:id/payment-status.
func (h *AppointmentHandler) PaymentStatus(c *gin.Context) {
	view, err := h.Svc.PaymentStatus(c.Request.Context(), actorID(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "", view)
}

func (h *AppointmentHandler) getOwnedAppointment(c *gin.Context) *models.Reservation {
	res, err := h.Svc.GetReservation(c.Request.Context(), actorID(c), models.ActorUser, c.Param("id"))
	if err != nil {
		fail(c, err)
		return nil
	}
	if res.Kind != models.KindAppointment {
		utils.JSONError(c, http.StatusBadRequest, booking.CodeWrongKind, "reservation is a booking; use the bookings routes")
		return nil
	}
	return res
}
