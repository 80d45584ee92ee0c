package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prohmpiriya/hotel-booking-saga/backend-hotel/internal/domain"
	"github.com/prohmpiriya/hotel-booking-saga/backend-hotel/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testRoomID    = "0d5e4bb8-8a8f-4a43-8f0f-3e7b6f3a2c10"
	testRequestID = "7b0f8a8e-5f57-4a55-9e4c-3c3b2f0b8e11"
	testHotelID   = "6f1c5b86-2f8e-4c43-9d2b-1f7a1c7c9a01"
)

// MockRoomService is a mock implementation of RoomService
type MockRoomService struct {
	CreateRoomFunc      func(ctx context.Context, req *dto.CreateRoomRequest) (*domain.Room, error)
	ListAvailableFunc   func(ctx context.Context) ([]*domain.Room, error)
	ListRecommendedFunc func(ctx context.Context) ([]*domain.Room, error)
	ConfirmFunc         func(ctx context.Context, roomID, requestID string, stay domain.DateRange) error
	ReleaseFunc         func(ctx context.Context, roomID, requestID string) error
}

func (m *MockRoomService) CreateRoom(ctx context.Context, req *dto.CreateRoomRequest) (*domain.Room, error) {
	if m.CreateRoomFunc != nil {
		return m.CreateRoomFunc(ctx, req)
	}
	return &domain.Room{ID: testRoomID, HotelID: req.HotelID, Number: req.Number, Available: req.IsAvailable()}, nil
}

func (m *MockRoomService) ListAvailable(ctx context.Context) ([]*domain.Room, error) {
	if m.ListAvailableFunc != nil {
		return m.ListAvailableFunc(ctx)
	}
	return nil, nil
}

func (m *MockRoomService) ListRecommended(ctx context.Context) ([]*domain.Room, error) {
	if m.ListRecommendedFunc != nil {
		return m.ListRecommendedFunc(ctx)
	}
	return nil, nil
}

func (m *MockRoomService) Confirm(ctx context.Context, roomID, requestID string, stay domain.DateRange) error {
	if m.ConfirmFunc != nil {
		return m.ConfirmFunc(ctx, roomID, requestID, stay)
	}
	return nil
}

func (m *MockRoomService) Release(ctx context.Context, roomID, requestID string) error {
	if m.ReleaseFunc != nil {
		return m.ReleaseFunc(ctx, roomID, requestID)
	}
	return nil
}

func setupRoomRouter(svc *MockRoomService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewRoomHandler(svc)
	rooms := router.Group("/api/rooms")
	rooms.POST("", h.Create)
	rooms.GET("", h.List)
	rooms.GET("/recommend", h.Recommend)
	rooms.POST("/:id/confirm-availability", h.ConfirmAvailability)
	rooms.POST("/:id/release", h.Release)
	return router
}

func doJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRoomHandler_ConfirmAvailability(t *testing.T) {
	validBody := dto.ConfirmAvailabilityRequest{RequestID: testRequestID, StartDate: "2025-06-01", EndDate: "2025-06-03"}

	tests := []struct {
		name       string
		roomID     string
		body       interface{}
		confirmErr error
		wantStatus int
	}{
		{"confirmed", testRoomID, validBody, nil, http.StatusNoContent},
		{"room not found", testRoomID, validBody, domain.ErrRoomNotFound, http.StatusNotFound},
		{"room unavailable", testRoomID, validBody, domain.ErrRoomUnavailable, http.StatusConflict},
		{"storage failure", testRoomID, validBody, errors.New("connection reset"), http.StatusInternalServerError},
		{"bad room id", "abc", validBody, nil, http.StatusBadRequest},
		{"bad dates", testRoomID, dto.ConfirmAvailabilityRequest{RequestID: testRequestID, StartDate: "2025-06-05", EndDate: "2025-06-03"}, nil, http.StatusBadRequest},
		{"not json", testRoomID, "nope", nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotRoom, gotRequest string
			svc := &MockRoomService{
				ConfirmFunc: func(ctx context.Context, roomID, requestID string, stay domain.DateRange) error {
					gotRoom, gotRequest = roomID, requestID
					return tt.confirmErr
				},
			}
			w := doJSON(setupRoomRouter(svc), http.MethodPost, "/api/rooms/"+tt.roomID+"/confirm-availability", tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusNoContent {
				assert.Equal(t, testRoomID, gotRoom)
				assert.Equal(t, testRequestID, gotRequest)
				assert.Empty(t, w.Body.String())
			}
			if tt.wantStatus == http.StatusInternalServerError {
				assert.NotContains(t, w.Body.String(), "connection reset")
			}
		})
	}
}

func TestRoomHandler_Release(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		releaseErr error
		wantStatus int
	}{
		{"released", "?requestId=" + testRequestID, nil, http.StatusNoContent},
		{"missing room", "?requestId=" + testRequestID, domain.ErrRoomNotFound, http.StatusNotFound},
		{"missing request id", "", nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockRoomService{
				ReleaseFunc: func(ctx context.Context, roomID, requestID string) error { return tt.releaseErr },
			}
			w := doJSON(setupRoomRouter(svc), http.MethodPost, "/api/rooms/"+testRoomID+"/release"+tt.query, nil)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestRoomHandler_Recommend(t *testing.T) {
	svc := &MockRoomService{
		ListRecommendedFunc: func(ctx context.Context) ([]*domain.Room, error) {
			return []*domain.Room{
				{ID: "r1", HotelID: testHotelID, Number: "C-201", Available: true, TimesBooked: 0},
				{ID: "r2", HotelID: testHotelID, Number: "H-104", Available: true, TimesBooked: 1},
			}, nil
		},
	}

	w := doJSON(setupRoomRouter(svc), http.MethodGet, "/api/rooms/recommend", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool                `json:"success"`
		Data    []*dto.RoomResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.Len(t, body.Data, 2)
	assert.Equal(t, "r1", body.Data[0].ID)
	assert.Equal(t, 1, body.Data[1].TimesBooked)
}

func TestRoomHandler_ListEmpty(t *testing.T) {
	w := doJSON(setupRoomRouter(&MockRoomService{}), http.MethodGet, "/api/rooms", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"data":[]`)
}

func TestRoomHandler_Create(t *testing.T) {
	router := setupRoomRouter(&MockRoomService{})

	w := doJSON(router, http.MethodPost, "/api/rooms", dto.CreateRoomRequest{HotelID: testHotelID, Number: "H-105"})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"available":true`)

	w = doJSON(router, http.MethodPost, "/api/rooms", dto.CreateRoomRequest{Number: "H-105"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	missingHotel := setupRoomRouter(&MockRoomService{
		CreateRoomFunc: func(ctx context.Context, req *dto.CreateRoomRequest) (*domain.Room, error) {
			return nil, domain.ErrHotelNotFound
		},
	})
	w = doJSON(missingHotel, http.MethodPost, "/api/rooms", dto.CreateRoomRequest{HotelID: testHotelID, Number: "H-105"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
