package handlers

import (
	"net/http"

	"lavellh/models"
	"lavellh/services/booking"
	"lavellh/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves the consumer routes for non-appointment bookings.
type BookingHandler struct {
	Svc    booking.ReservationService
	Logger *zap.Logger
}

// NewBookingHandler creates a BookingHandler.
func NewBookingHandler(svc booking.ReservationService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Svc: svc, Logger: logger}
}

// CreateBooking handles POST /bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var in models.CreateBookingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, booking.CodeInvalidArgument, err.Error())
		return
	}
	res, err := h.Svc.CreateBooking(c.Request.Context(), actorID(c), in)
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, "booking created", res)
}

// MyBookings handles GET /bookings/my-bookings.
func (h *BookingHandler) MyBookings(c *gin.Context) {
	page, limit := pageParams(c)
	filter := models.ListFilter{
		Kind:   models.KindBooking,
		Status: models.ReservationStatus(c.Query("status")),
		Page:   page,
		Limit:  limit,
	}
	results, total, err := h.Svc.ListUserReservations(c.Request.Context(), actorID(c), filter)
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "", pagedData("bookings", results, page, limit, total))
}

// GetBooking handles GET /bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	res := h.getOwnedBooking(c)
	if res == nil {
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "", res)
}

// CancelBooking handles PATCH /bookings/:id/cancel.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
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
	utils.JSONSuccess(c, http.StatusOK, "booking cancelled", res)
}

// ReviewBooking handles POST /bookings/:id/review.
func (h *BookingHandler) ReviewBooking(c *gin.Context) {
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

// CheckoutSession handles GET /bookings/:id/checkout-session.
func (h *BookingHandler) CheckoutSession(c *gin.Context) {
	session, err := h.Svc.CheckoutSession(c.Request.Context(), actorID(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "", session)
}

// DueIntent handles GET /bookings/:id/due/intent.
func (h *BookingHandler) DueIntent(c *gin.Context) {
	session, err := h.Svc.DueSession(c.Request.Context(), actorID(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "", session)
}

// ConfirmDue handles POST /bookings/:id/due/confirm.
func (h *BookingHandler) ConfirmDue(c *gin.Context) {
	view, err := h.Svc.ConfirmDue(c.Request.Context(), actorID(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "", view)
}

// PaymentStatus handles GET /bookings/:id/payment-status.
func (h *BookingHandler) PaymentStatus(c *gin.Context) {
	view, err := h.Svc.PaymentStatus(c.Request.Context(), actorID(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "", view)
}

// getOwnedBooking loads the caller's booking or writes the error response
// and returns nil.
func (h *BookingHandler) getOwnedBooking(c *gin.Context) *models.Reservation {
	res, err := h.Svc.GetReservation(c.Request.Context(), actorID(c), models.ActorUser, c.Param("id"))
	if err != nil {
		fail(c, err)
		return nil
	}
	if res.Kind != models.KindBooking {
		utils.JSONError(c, http.StatusBadRequest, booking.CodeWrongKind, "reservation is an appointment; use the appointments routes")
		return nil
	}
	return res
}
