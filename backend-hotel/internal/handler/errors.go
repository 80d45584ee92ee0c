package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prohmpiriya/hotel-booking-saga/backend-hotel/internal/domain"
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
	case domain.IsNotFoundError(err):
		c.JSON(http.StatusNotFound, response.NotFound(err.Error()))
	case domain.IsConflictError(err):
		c.JSON(http.StatusConflict, response.Error("ROOM_UNAVAILABLE", err.Error()))
	default:
		logger.Get().WithContext(c.Request.Context()).Error("handler.error",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, response.InternalError())
	}
}
