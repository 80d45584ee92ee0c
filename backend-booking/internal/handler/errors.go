package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prohmpiriya/hotel-booking-saga/backend-booking/internal/domain"
	"github.com/prohmpiriya/hotel-booking-saga/pkg/logger"
	"github.com/prohmpiriya/hotel-booking-saga/pkg/response"
	"github.com/prohmpiriya/hotel-booking-saga/pkg/telemetry"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// handleError maps domain errors to HTTP responses
func handleError(c *gin.Context, span trace.Span, err error) {
	telemetry.SetSpanError(span, err)

	switch {
	case domain.IsValidationError(err):
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, response.Unauthorized("Invalid credentials"))
	case domain.IsForbiddenError(err):
		c.JSON(http.StatusForbidden, response.Forbidden(err.Error()))
	case domain.IsNotFoundError(err):
		c.JSON(http.StatusNotFound, response.NotFound(err.Error()))
	case errors.Is(err, domain.ErrUserAlreadyExists):
		c.JSON(http.StatusConflict, response.Error("ALREADY_EXISTS", err.Error()))
	case domain.IsConflictError(err):
		c.JSON(http.StatusConflict, response.Error("INVALID_STATE", err.Error()))
	default:
		logger.Get().WithContext(c.Request.Context()).Error("handler.error",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, response.InternalError())
	}
}
