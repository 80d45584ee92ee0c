package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prohmpiriya/hotel-booking-saga/backend-booking/internal/dto"
	"github.com/prohmpiriya/hotel-booking-saga/backend-booking/internal/service"
	"github.com/prohmpiriya/hotel-booking-saga/pkg/response"
	"github.com/prohmpiriya/hotel-booking-saga/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

// BookingHandler handles booking HTTP requests
type BookingHandler struct {
	bookingService service.BookingService
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(bookingService service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// Create handles POST /booking.
// A booking the room ledger never confirmed still answers 201 with status CANCELLED.
func (h *BookingHandler) Create(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.booking.Create")
	defer span.End()

	username, ok := currentUsername(c)
	if !ok {
		return
	}

	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid request body"))
		return
	}
	bookingReq, valid, msg := req.ToBookingRequest()
	if !valid {
		c.JSON(http.StatusBadRequest, response.BadRequest(msg))
		return
	}

	booking, err := h.bookingService.Create(ctx, username, bookingReq)
	if err != nil {
		handleError(c, span, err)
		return
	}

	span.SetAttributes(
		attribute.String("booking_id", booking.ID),
		attribute.String("status", string(booking.Status)),
	)
	c.JSON(http.StatusCreated, response.Success(dto.ToBookingResponse(booking)))
}

// List handles GET /bookings
func (h *BookingHandler) List(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.booking.List")
	defer span.End()

	username, ok := currentUsername(c)
	if !ok {
		return
	}

	bookings, err := h.bookingService.FindAll(ctx, username)
	if err != nil {
		handleError(c, span, err)
		return
	}
	c.JSON(http.StatusOK, response.List(dto.ToBookingResponses(bookings), len(bookings)))
}

// Get handles GET /booking/:id
func (h *BookingHandler) Get(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.booking.Get")
	defer span.End()

	username, ok := currentUsername(c)
	if !ok {
		return
	}
	id, ok := bookingID(c)
	if !ok {
		return
	}

	booking, err := h.bookingService.FindByID(ctx, username, id)
	if err != nil {
		handleError(c, span, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(dto.ToBookingResponse(booking)))
}

// Cancel handles DELETE /booking/:id
func (h *BookingHandler) Cancel(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.booking.Cancel")
	defer span.End()

	username, ok := currentUsername(c)
	if !ok {
		return
	}
	id, ok := bookingID(c)
	if !ok {
		return
	}

	if err := h.bookingService.Cancel(ctx, username, id); err != nil {
		handleError(c, span, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func bookingID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("booking id must be a valid UUID"))
		return "", false
	}
	return id, true
}
