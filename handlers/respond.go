package handlers

import (
	"net/http"
	"strconv"

	"lavellh/services/booking"
	"lavellh/utils"

	"github.com/gin-gonic/gin"
)

// statusForError maps the engine's stable error codes onto HTTP statuses.
func statusForError(err error) int {
	switch booking.CodeOf(err) {
	case booking.CodeNotFound:
		return http.StatusNotFound
	case booking.CodeUnauthorized:
		return http.StatusForbidden
	case booking.CodeWrongKind, booking.CodeInvalidArgument,
		booking.CodeStateInvalid, booking.CodePaymentIncomplete:
		return http.StatusBadRequest
	case booking.CodeConflict:
		return http.StatusConflict
	case booking.CodeGone:
		return http.StatusGone
	case booking.CodeProcessorError:
		return http.StatusPaymentRequired
	case booking.CodeTransient:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, err error) {
	if e, ok := booking.AsError(err); ok {
		utils.JSONError(c, statusForError(err), e.Code, e.Message)
		return
	}
	utils.JSONError(c, http.StatusInternalServerError, "Internal", "An unexpected error occurred. Please try again later.")
}

// actorID returns the authenticated subject set by the auth middleware.
func actorID(c *gin.Context) string {
	v, _ := c.Get("actorID")
	id, _ := v.(string)
	return id
}

func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	return page, limit
}

// pagedData is the uniform list payload.
func pagedData(key string, items any, page, limit int, total int64) gin.H {
	return gin.H{
		key: items,
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	}
}
