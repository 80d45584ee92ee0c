package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/prohmpiriya/hotel-booking-saga/backend-booking/internal/domain"
	"github.com/prohmpiriya/hotel-booking-saga/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/singleflight"
)

// HotelClient is the booking service's view of the hotel service's room ledger
type HotelClient interface {
	// GetRecommendedRooms returns the hotel service's recommended room snapshot
	GetRecommendedRooms(ctx context.Context) ([]domain.RoomSnapshot, error)
	// ConfirmRoom asks the room ledger to count a booking against roomID.
	// Replays with the same requestID succeed without a second effect.
	ConfirmRoom(ctx context.Context, roomID, requestID string, start, end time.Time) error
	// ReleaseRoom undoes a confirm. Safe to call repeatedly.
	ReleaseRoom(ctx context.Context, roomID, requestID string) error
}

// StatusError is an unexpected hotel service response
type StatusError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("hotel service returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("hotel service returned status %d: %s", e.StatusCode, e.Message)
}

type bearerKey struct{}

// WithBearerToken attaches the caller's access token to ctx so outgoing calls carry it
func WithBearerToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, bearerKey{}, token)
}

func bearerToken(ctx context.Context) string {
	token, _ := ctx.Value(bearerKey{}).(string)
	return token
}

// maxResponseBytes caps how much of a hotel service response is read
const maxResponseBytes = 1 << 20

// ErrResponseTooLarge is returned when a response body exceeds maxResponseBytes
var ErrResponseTooLarge = errors.New("hotel service response too large")

// HTTPHotelClientConfig configures HTTPHotelClient
type HTTPHotelClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

// HTTPHotelClient calls the hotel service over HTTP
type HTTPHotelClient struct {
	baseURL    string
	httpClient *http.Client
	sfGroup    singleflight.Group
}

// NewHTTPHotelClient creates a new hotel service client
func NewHTTPHotelClient(cfg *HTTPHotelClientConfig) *HTTPHotelClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPHotelClient{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type confirmRequest struct {
	RequestID string `json:"requestId"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// envelope is the hotel service's response body
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// GetRecommendedRooms fetches GET /api/rooms/recommend.
// Concurrent callers with the same bearer token share a single in-flight request.
func (c *HTTPHotelClient) GetRecommendedRooms(ctx context.Context) ([]domain.RoomSnapshot, error) {
	// the shared fetch must not die with whichever caller started it
	flightCtx := context.WithoutCancel(ctx)
	ch := c.sfGroup.DoChan("recommend:"+bearerToken(ctx), func() (interface{}, error) {
		return c.fetchRecommended(flightCtx)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]domain.RoomSnapshot), nil
	}
}

func (c *HTTPHotelClient) fetchRecommended(ctx context.Context) ([]domain.RoomSnapshot, error) {
	ctx, span := telemetry.StartSpan(ctx, "client.hotel.get_recommended_rooms")
	defer span.End()

	resp, err := c.do(ctx, http.MethodGet, "/api/rooms/recommend", nil)
	if err != nil {
		telemetry.SetSpanError(span, err)
		return nil, err
	}

	rooms := make([]domain.RoomSnapshot, 0)
	if len(resp.Data) > 0 && string(resp.Data) != "null" {
		if err := json.Unmarshal(resp.Data, &rooms); err != nil {
			telemetry.SetSpanError(span, err)
			return nil, fmt.Errorf("failed to decode rooms: %w", err)
		}
	}

	span.SetAttributes(attribute.Int("count", len(rooms)))
	return rooms, nil
}

// ConfirmRoom calls POST /api/rooms/:id/confirm-availability
func (c *HTTPHotelClient) ConfirmRoom(ctx context.Context, roomID, requestID string, start, end time.Time) error {
	ctx, span := telemetry.StartSpan(ctx, "client.hotel.confirm_room")
	defer span.End()

	span.SetAttributes(
		attribute.String("room_id", roomID),
		attribute.String("request_id", requestID),
	)

	body := confirmRequest{
		RequestID: requestID,
		StartDate: start.Format(domain.DateLayout),
		EndDate:   end.Format(domain.DateLayout),
	}
	path := "/api/rooms/" + url.PathEscape(roomID) + "/confirm-availability"
	if _, err := c.do(ctx, http.MethodPost, path, body); err != nil {
		telemetry.SetSpanError(span, err)
		return err
	}
	return nil
}

// ReleaseRoom calls POST /api/rooms/:id/release?requestId=
func (c *HTTPHotelClient) ReleaseRoom(ctx context.Context, roomID, requestID string) error {
	ctx, span := telemetry.StartSpan(ctx, "client.hotel.release_room")
	defer span.End()

	span.SetAttributes(
		attribute.String("room_id", roomID),
		attribute.String("request_id", requestID),
	)

	path := "/api/rooms/" + url.PathEscape(roomID) + "/release?requestId=" + url.QueryEscape(requestID)
	if _, err := c.do(ctx, http.MethodPost, path, nil); err != nil {
		telemetry.SetSpanError(span, err)
		return err
	}
	return nil
}

func (c *HTTPHotelClient) do(ctx context.Context, method, path string, body interface{}) (*envelope, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token := bearerToken(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	telemetry.InjectHTTPHeaders(ctx, req.Header)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("hotel service request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if len(raw) > maxResponseBytes {
		return nil, ErrResponseTooLarge
	}

	env := &envelope{}
	if len(raw) > 0 {
		// error bodies from proxies may not be JSON; the status code still decides
		_ = json.Unmarshal(raw, env)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return env, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.ErrRoomNotFound
	case resp.StatusCode == http.StatusConflict:
		return nil, domain.ErrRoomUnavailable
	default:
		statusErr := &StatusError{StatusCode: resp.StatusCode}
		if env.Error != nil {
			statusErr.Code = env.Error.Code
			statusErr.Message = env.Error.Message
		}
		return nil, statusErr
	}
}
