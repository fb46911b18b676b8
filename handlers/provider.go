package handlers

import (
	"net/http"

	"lavellh/models"
	"lavellh/services/booking"
	"lavellh/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProviderReservationHandler serves the provider-side lifecycle routes. The
// service layer verifies the acting provider owns each reservation's listing.
type ProviderReservationHandler struct {
	Svc    booking.ReservationService
	Logger *zap.Logger
}

// NewProviderReservationHandler creates a ProviderReservationHandler.
func NewProviderReservationHandler(svc booking.ReservationService, logger *zap.Logger) *ProviderReservationHandler {
	return &ProviderReservationHandler{Svc: svc, Logger: logger}
}

// List handles GET /provider/reservations.
func (h *ProviderReservationHandler) List(c *gin.Context) {
	page, limit := pageParams(c)
	filter := models.ListFilter{
		Kind:   models.ReservationKind(c.Query("kind")),
		Status: models.ReservationStatus(c.Query("status")),
		Page:   page,
		Limit:  limit,
	}
	results, total, err := h.Svc.ListProviderReservations(c.Request.Context(), actorID(c), filter)
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "", pagedData("reservations", results, page, limit, total))
}

// Confirm handles PATCH /provider/reservations/:id/confirm.
func (h *ProviderReservationHandler) Confirm(c *gin.Context) {
	res, err := h.Svc.Confirm(c.Request.Context(), actorID(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "reservation confirmed", res)
}

// Reject handles PATCH /provider/reservations/:id/reject.
func (h *ProviderReservationHandler) Reject(c *gin.Context) {
	var in models.RejectInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, booking.CodeInvalidArgument, err.Error())
		return
	}
	res, err := h.Svc.Reject(c.Request.Context(), actorID(c), c.Param("id"), in.Reason)
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "reservation rejected", res)
}

// Start handles PATCH /provider/reservations/:id/start.
func (h *ProviderReservationHandler) Start(c *gin.Context) {
	res, err := h.Svc.Start(c.Request.Context(), actorID(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "reservation started", res)
}

// Complete handles PATCH /provider/reservations/:id/complete.
func (h *ProviderReservationHandler) Complete(c *gin.Context) {
	res, err := h.Svc.Complete(c.Request.Context(), actorID(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "reservation completed", res)
}

// RequestDue handles POST /provider/reservations/:id/due.
func (h *ProviderReservationHandler) RequestDue(c *gin.Context) {
	session, err := h.Svc.RequestDue(c.Request.Context(), actorID(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, "due payment requested", session)
}

// MarkOfflinePaid handles PATCH /provider/reservations/:id/offline-paid.
func (h *ProviderReservationHandler) MarkOfflinePaid(c *gin.Context) {
	res, err := h.Svc.MarkOfflinePaid(c.Request.Context(), actorID(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "reservation marked offline paid", res)
}
