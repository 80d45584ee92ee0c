package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prohmpiriya/hotel-booking-saga/backend-hotel/internal/domain"
	"github.com/prohmpiriya/hotel-booking-saga/backend-hotel/internal/dto"
	"github.com/stretchr/testify/assert"
)

// MockHotelService is a mock implementation of HotelService
type MockHotelService struct {
	hotels []*domain.Hotel
}

func (m *MockHotelService) CreateHotel(ctx context.Context, req *dto.CreateHotelRequest) (*domain.Hotel, error) {
	hotel := &domain.Hotel{ID: testHotelID, Name: req.Name, Address: req.Address}
	m.hotels = append(m.hotels, hotel)
	return hotel, nil
}

func (m *MockHotelService) ListHotels(ctx context.Context) ([]*domain.Hotel, error) {
	return m.hotels, nil
}

func setupHotelRouter(svc *MockHotelService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewHotelHandler(svc)
	router.POST("/api/hotels", h.Create)
	router.GET("/api/hotels", h.List)
	return router
}

func TestHotelHandler_CreateAndList(t *testing.T) {
	router := setupHotelRouter(&MockHotelService{})

	w := doJSON(router, http.MethodPost, "/api/hotels", dto.CreateHotelRequest{Name: "citizenM London Shoreditch", Address: "6 Holywell Ln"})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, http.MethodPost, "/api/hotels", dto.CreateHotelRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "name is required")

	w = doJSON(router, http.MethodGet, "/api/hotels", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "citizenM London Shoreditch")
	assert.Contains(t, w.Body.String(), `"total":1`)
}
