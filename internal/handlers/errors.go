package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/exchange_rates_app/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// handleServiceError maps a service error onto a status code and writes the
// response. Client errors log at warn, everything else at error with the cause.
func handleServiceError(c *gin.Context, logger *slog.Logger, err error, notFoundMsg string) {
	var status int
	msg := err.Error()
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		status, msg = http.StatusNotFound, notFoundMsg
	case errors.Is(err, apperrors.ErrDuplicate):
		status = http.StatusConflict
	case errors.Is(err, apperrors.ErrUnauthorized):
		status, msg = http.StatusUnauthorized, "Invalid username or password"
	default:
		logger.Error("Request failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		return
	}
	logger.Warn("Request rejected", slog.Int("status", status), slog.String("error", err.Error()))
	c.JSON(status, ErrorResponse{Error: msg})
}
