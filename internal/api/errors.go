package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pathakanu/healthAI/internal/doctor"
	"github.com/pathakanu/healthAI/internal/openai"
	"github.com/pathakanu/healthAI/internal/reminder"
)

// statusFor maps a domain error to an HTTP status.
func statusFor(err error) int {
	var upstream *openai.UpstreamError
	switch {
	case errors.Is(err, reminder.ErrValidation),
		errors.Is(err, openai.ErrEmptySymptoms),
		errors.Is(err, doctor.ErrInvalidCriteria):
		return http.StatusBadRequest
	case errors.Is(err, doctor.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, openai.ErrClientNotInitialised):
		return http.StatusServiceUnavailable
	case errors.As(err, &upstream),
		errors.Is(err, openai.ErrNoResponse),
		errors.Is(err, openai.ErrInvalidResponse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// handleError logs err and writes {"success":false,"error":...}. extra fields
// are merged into the body.
func (h *handler) handleError(c *gin.Context, msg string, err error, extra gin.H) {
	status := statusFor(err)
	logFn := h.Logger.Warn
	if status >= http.StatusInternalServerError {
		logFn = h.Logger.Error
	}
	logFn("api: "+msg, "request_id", c.GetString(requestIDKey), "status", status, "err", err)

	body := gin.H{"success": false, "error": err.Error()}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(status, body)
}
