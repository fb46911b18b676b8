package handlers

import (
	"net/http"

	"lavellh/models"
	"lavellh/services/booking"
	"lavellh/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler serves the administrative reservation routes.
type AdminHandler struct {
	Svc    booking.ReservationService
	Logger *zap.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(svc booking.ReservationService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{Svc: svc, Logger: logger}
}

// CancelReservation handles PATCH /admin/reservations/:id/cancel.
func (h *AdminHandler) CancelReservation(c *gin.Context) {
	var in models.CancelInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, booking.CodeInvalidArgument, err.Error())
		return
	}
	res, err := h.Svc.Cancel(c.Request.Context(), actorID(c), models.ActorAdmin, c.Param("id"), in.CancellationReason)
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "reservation cancelled", res)
}
