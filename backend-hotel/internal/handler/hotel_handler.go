package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prohmpiriya/hotel-booking-saga/backend-hotel/internal/dto"
	"github.com/prohmpiriya/hotel-booking-saga/backend-hotel/internal/service"
	"github.com/prohmpiriya/hotel-booking-saga/pkg/response"
	"github.com/prohmpiriya/hotel-booking-saga/pkg/telemetry"
)

// HotelHandler handles hotel HTTP requests
type HotelHandler struct {
	hotelService service.HotelService
}

// NewHotelHandler creates a new HotelHandler
func NewHotelHandler(hotelService service.HotelService) *HotelHandler {
	return &HotelHandler{hotelService: hotelService}
}

// Create handles POST /hotels
func (h *HotelHandler) Create(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.hotel.Create")
	defer span.End()

	var req dto.CreateHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid request body"))
		return
	}
	if valid, msg := req.Validate(); !valid {
		c.JSON(http.StatusBadRequest, response.BadRequest(msg))
		return
	}

	hotel, err := h.hotelService.CreateHotel(ctx, &req)
	if err != nil {
		handleError(c, span, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(dto.ToHotelResponse(hotel)))
}

// List handles GET /hotels
func (h *HotelHandler) List(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.hotel.List")
	defer span.End()

	hotels, err := h.hotelService.ListHotels(ctx)
	if err != nil {
		handleError(c, span, err)
		return
	}

	out := make([]*dto.HotelResponse, len(hotels))
	for i, hotel := range hotels {
		out[i] = dto.ToHotelResponse(hotel)
	}
	c.JSON(http.StatusOK, response.List(out, len(out)))
}
