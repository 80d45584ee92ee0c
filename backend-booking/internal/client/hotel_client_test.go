package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prohmpiriya/hotel-booking-saga/backend-booking/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *HTTPHotelClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewHTTPHotelClient(&HTTPHotelClientConfig{BaseURL: server.URL, Timeout: 2 * time.Second})
}

func TestHTTPHotelClient_GetRecommendedRooms(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/rooms/recommend", r.URL.Path)
		assert.Equal(t, "Bearer user-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":[
			{"id":"r-2","hotelId":"h-1","number":"102","available":true,"timesBooked":0},
			{"id":"r-1","hotelId":"h-1","number":"101","available":true,"timesBooked":3}
		],"meta":{"total":2}}`))
	})

	rooms, err := c.GetRecommendedRooms(WithBearerToken(context.Background(), "user-token"))
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, "r-2", rooms[0].ID)
	assert.Equal(t, 3, rooms[1].TimesBooked)
}

func TestHTTPHotelClient_GetRecommendedRooms_Empty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":[],"meta":{"total":0}}`))
	})

	rooms, err := c.GetRecommendedRooms(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, rooms)
	assert.Empty(t, rooms)
}

func TestHTTPHotelClient_GetRecommendedRooms_SharesInFlightRequest(t *testing.T) {
	var calls int32
	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		<-release
		_, _ = w.Write([]byte(`{"success":true,"data":[]}`))
	})

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.GetRecommendedRooms(context.Background())
			assert.NoError(t, err)
		}()
	}
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestHTTPHotelClient_GetRecommendedRooms_CancelledCallerDoesNotFailOthers(t *testing.T) {
	var calls int32
	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		<-release
		_, _ = w.Write([]byte(`{"success":true,"data":[{"id":"r-1","hotelId":"h-1","number":"101","available":true}]}`))
	})

	firstCtx, cancelFirst := context.WithCancel(WithBearerToken(context.Background(), "user-token"))
	firstErr := make(chan error, 1)
	go func() {
		_, err := c.GetRecommendedRooms(firstCtx)
		firstErr <- err
	}()
	require.Eventually(t, func() bool { return atomic.LoadInt32(&calls) == 1 }, time.Second, 5*time.Millisecond)

	type result struct {
		rooms []domain.RoomSnapshot
		err   error
	}
	second := make(chan result, 1)
	go func() {
		rooms, err := c.GetRecommendedRooms(WithBearerToken(context.Background(), "user-token"))
		second <- result{rooms, err}
	}()

	cancelFirst()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	close(release)
	got := <-second
	require.NoError(t, got.err)
	require.Len(t, got.rooms, 1)
	assert.Equal(t, "r-1", got.rooms[0].ID)
}

func TestHTTPHotelClient_GetRecommendedRooms_SeparateFlightPerToken(t *testing.T) {
	var mu sync.Mutex
	seen := make(map[string]int)
	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen[r.Header.Get("Authorization")]++
		mu.Unlock()
		<-release
		_, _ = w.Write([]byte(`{"success":true,"data":[]}`))
	})

	var wg sync.WaitGroup
	for _, token := range []string{"alex-token", "katya-token", "alex-token"} {
		wg.Add(1)
		go func(token string) {
			defer wg.Done()
			_, err := c.GetRecommendedRooms(WithBearerToken(context.Background(), token))
			assert.NoError(t, err)
		}(token)
	}
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) == 2
	}, time.Second, 5*time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, 1, seen["Bearer katya-token"])
	assert.GreaterOrEqual(t, seen["Bearer alex-token"], 1)
}

func TestHTTPHotelClient_ResponseTooLarge(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		padding := strings.Repeat("x", maxResponseBytes)
		_, _ = w.Write([]byte(`{"success":true,"data":[{"id":"` + padding + `"}]}`))
	})

	rooms, err := c.GetRecommendedRooms(context.Background())
	assert.ErrorIs(t, err, ErrResponseTooLarge)
	assert.Nil(t, rooms)
}

func TestHTTPHotelClient_ConfirmRoom(t *testing.T) {
	var got confirmRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/rooms/room-1/confirm-availability", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	})

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	err := c.ConfirmRoom(context.Background(), "room-1", "req-1", start, start.AddDate(0, 0, 2))
	require.NoError(t, err)
	assert.Equal(t, confirmRequest{RequestID: "req-1", StartDate: "2025-06-01", EndDate: "2025-06-03"}, got)
}

func TestHTTPHotelClient_ReleaseRoom(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/rooms/room-1/release", r.URL.Path)
		assert.Equal(t, "req-1", r.URL.Query().Get("requestId"))
		w.WriteHeader(http.StatusNoContent)
	})

	assert.NoError(t, c.ReleaseRoom(context.Background(), "room-1", "req-1"))
}

func TestHTTPHotelClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"not found", http.StatusNotFound, `{"success":false,"error":{"code":"NOT_FOUND","message":"room not found"}}`, domain.ErrRoomNotFound},
		{"conflict", http.StatusConflict, `{"success":false,"error":{"code":"ROOM_UNAVAILABLE","message":"room is not available"}}`, domain.ErrRoomUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			err := c.ConfirmRoom(context.Background(), "room-1", "req-1", time.Now(), time.Now())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestHTTPHotelClient_UnexpectedStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	})

	err := c.ReleaseRoom(context.Background(), "room-1", "req-1")
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
}

func TestHTTPHotelClient_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	c := NewHTTPHotelClient(&HTTPHotelClientConfig{BaseURL: server.URL, Timeout: time.Second})
	err := c.ConfirmRoom(context.Background(), "room-1", "req-1", time.Now(), time.Now())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrRoomNotFound)
}
