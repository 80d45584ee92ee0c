package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/prohmpiriya/hotel-booking-saga/backend-booking/internal/domain"
)

const (
	testRoomID  = "0d5e4bb8-8a8f-4a43-8f0f-3e7b6f3a2c10"
	otherRoomID = "1a2b3c4d-0000-4000-8000-000000000001"
)

var errHotelDown = errors.New("hotel service unavailable")

func newTestBooking(status domain.BookingStatus) *domain.Booking {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	return &domain.Booking{
		ID:        "b-1",
		RequestID: "req-1",
		UserID:    "u-1",
		Username:  "alex.petrov",
		RoomID:    testRoomID,
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 2),
		Status:    status,
		CreatedAt: time.Now(),
	}
}

// MockBookingRepository is an in-memory BookingRepository that keeps a status history.
// Like pgx, it refuses to run on a done context.
type MockBookingRepository struct {
	mu       sync.Mutex
	bookings map[string]domain.Booking
	history  map[string][]domain.BookingStatus
	failNext error

	// UpdateFailures makes the next n Update calls fail with UpdateErr
	UpdateFailures int
	UpdateErr      error
}

func NewMockBookingRepository() *MockBookingRepository {
	return &MockBookingRepository{
		bookings: make(map[string]domain.Booking),
		history:  make(map[string][]domain.BookingStatus),
	}
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.failNext != nil {
		err := m.failNext
		m.failNext = nil
		return err
	}
	m.bookings[booking.ID] = *booking
	m.history[booking.ID] = append(m.history[booking.ID], booking.Status)
	return nil
}

func (m *MockBookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.UpdateFailures > 0 {
		m.UpdateFailures--
		return m.UpdateErr
	}
	if _, ok := m.bookings[booking.ID]; !ok {
		return domain.ErrBookingNotFound
	}
	m.bookings[booking.ID] = *booking
	m.history[booking.ID] = append(m.history[booking.ID], booking.Status)
	return nil
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (m *MockBookingRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Booking, 0)
	for _, b := range m.bookings {
		if b.UserID == userID {
			b := b
			out = append(out, &b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MockBookingRepository) Add(b *domain.Booking) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings[b.ID] = *b
}

func (m *MockBookingRepository) Stored(id string) domain.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bookings[id]
}

func (m *MockBookingRepository) History(id string) []domain.BookingStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.BookingStatus(nil), m.history[id]...)
}

// MockUserRepository is an in-memory UserRepository
type MockUserRepository struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[string]*domain.User)}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == user.Username {
			return domain.ErrUserAlreadyExists
		}
	}
	u := *user
	m.users[user.ID] = &u
	return nil
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	for id, u := range m.users {
		if id != user.ID && u.Username == user.Username {
			return domain.ErrUserAlreadyExists
		}
	}
	u := *user
	m.users[user.ID] = &u
	return nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return false, nil
	}
	delete(m.users, id)
	return true, nil
}

func (m *MockUserRepository) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users), nil
}

// FakeHotelClient models the hotel service's room ledger: confirm is
// idempotent on requestId and release never drives a counter negative.
// ConfirmFailures makes the first n confirm calls fail before reaching the ledger.
// Like an HTTP client, every call fails on a done context.
type FakeHotelClient struct {
	mu              sync.Mutex
	rooms           []domain.RoomSnapshot
	timesBooked     map[string]int
	requests        map[string]string
	ConfirmFailures int
	ConfirmErr      error
	ReleaseErr      error
	RecommendErr    error
	confirmCalls    int
	releaseCalls    int
}

func NewFakeHotelClient(rooms ...domain.RoomSnapshot) *FakeHotelClient {
	f := &FakeHotelClient{
		rooms:       rooms,
		timesBooked: make(map[string]int),
		requests:    make(map[string]string),
	}
	for _, r := range rooms {
		f.timesBooked[r.ID] = r.TimesBooked
	}
	return f
}

func (f *FakeHotelClient) GetRecommendedRooms(ctx context.Context) ([]domain.RoomSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.RecommendErr != nil {
		return nil, f.RecommendErr
	}
	return append([]domain.RoomSnapshot{}, f.rooms...), nil
}

func (f *FakeHotelClient) ConfirmRoom(ctx context.Context, roomID, requestID string, start, end time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.confirmCalls++
	if err := ctx.Err(); err != nil {
		return err
	}
	if f.ConfirmErr != nil {
		return f.ConfirmErr
	}
	if f.ConfirmFailures > 0 {
		f.ConfirmFailures--
		return errHotelDown
	}
	if _, seen := f.requests[requestID]; seen {
		return nil
	}
	if _, ok := f.timesBooked[roomID]; !ok {
		f.requests[requestID] = roomID
		return domain.ErrRoomNotFound
	}
	f.requests[requestID] = roomID
	f.timesBooked[roomID]++
	return nil
}

func (f *FakeHotelClient) ReleaseRoom(ctx context.Context, roomID, requestID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.releaseCalls++
	if err := ctx.Err(); err != nil {
		return err
	}
	if f.ReleaseErr != nil {
		return f.ReleaseErr
	}
	if _, seen := f.requests[requestID]; !seen {
		return nil
	}
	delete(f.requests, requestID)
	if f.timesBooked[roomID] > 0 {
		f.timesBooked[roomID]--
	}
	return nil
}

func (f *FakeHotelClient) TimesBooked(roomID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.timesBooked[roomID]
}

func (f *FakeHotelClient) ConfirmCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.confirmCalls
}

func (f *FakeHotelClient) ReleaseCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.releaseCalls
}

// MockEventPublisher records published events
type MockEventPublisher struct {
	mu        sync.Mutex
	confirmed []*domain.Booking
	cancelled []string
	err       error
}

func (m *MockEventPublisher) PublishBookingConfirmed(ctx context.Context, booking *domain.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.confirmed = append(m.confirmed, booking)
	return nil
}

func (m *MockEventPublisher) PublishBookingCancelled(ctx context.Context, booking *domain.Booking, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.cancelled = append(m.cancelled, reason)
	return nil
}

func (m *MockEventPublisher) Close() error {
	return nil
}
