package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prohmpiriya/hotel-booking-saga/backend-hotel/internal/dto"
	"github.com/prohmpiriya/hotel-booking-saga/backend-hotel/internal/service"
	"github.com/prohmpiriya/hotel-booking-saga/pkg/response"
	"github.com/prohmpiriya/hotel-booking-saga/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

// RoomHandler handles room and ledger HTTP requests
type RoomHandler struct {
	roomService service.RoomService
}

// NewRoomHandler creates a new RoomHandler
func NewRoomHandler(roomService service.RoomService) *RoomHandler {
	return &RoomHandler{roomService: roomService}
}

// Create handles POST /rooms
func (h *RoomHandler) Create(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.room.Create")
	defer span.End()

	var req dto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid request body"))
		return
	}
	if valid, msg := req.Validate(); !valid {
		c.JSON(http.StatusBadRequest, response.BadRequest(msg))
		return
	}

	room, err := h.roomService.CreateRoom(ctx, &req)
	if err != nil {
		handleError(c, span, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(dto.ToRoomResponse(room)))
}

// List handles GET /rooms
func (h *RoomHandler) List(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.room.List")
	defer span.End()

	rooms, err := h.roomService.ListAvailable(ctx)
	if err != nil {
		handleError(c, span, err)
		return
	}
	c.JSON(http.StatusOK, response.List(dto.ToRoomResponses(rooms), len(rooms)))
}

// Recommend handles GET /rooms/recommend
func (h *RoomHandler) Recommend(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.room.Recommend")
	defer span.End()

	rooms, err := h.roomService.ListRecommended(ctx)
	if err != nil {
		handleError(c, span, err)
		return
	}
	c.JSON(http.StatusOK, response.List(dto.ToRoomResponses(rooms), len(rooms)))
}

// ConfirmAvailability handles POST /rooms/:id/confirm-availability
func (h *RoomHandler) ConfirmAvailability(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.room.ConfirmAvailability")
	defer span.End()

	roomID := c.Param("id")
	span.SetAttributes(attribute.String("room_id", roomID))
	if _, err := uuid.Parse(roomID); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("room id must be a valid UUID"))
		return
	}

	var req dto.ConfirmAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid request body"))
		return
	}
	stay, valid, msg := req.Validate()
	if !valid {
		c.JSON(http.StatusBadRequest, response.BadRequest(msg))
		return
	}

	if err := h.roomService.Confirm(ctx, roomID, req.RequestID, stay); err != nil {
		handleError(c, span, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Release handles POST /rooms/:id/release?requestId=
func (h *RoomHandler) Release(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.room.Release")
	defer span.End()

	roomID := c.Param("id")
	requestID := c.Query("requestId")
	span.SetAttributes(attribute.String("room_id", roomID), attribute.String("request_id", requestID))

	if _, err := uuid.Parse(roomID); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("room id must be a valid UUID"))
		return
	}
	if _, err := uuid.Parse(requestID); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("requestId must be a valid UUID"))
		return
	}

	if err := h.roomService.Release(ctx, roomID, requestID); err != nil {
		handleError(c, span, err)
		return
	}
	c.Status(http.StatusNoContent)
}
