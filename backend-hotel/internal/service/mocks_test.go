package service

import (
	"context"
	"sort"
	"sync"

	"github.com/prohmpiriya/hotel-booking-saga/backend-hotel/internal/domain"
	"github.com/prohmpiriya/hotel-booking-saga/backend-hotel/internal/repository"
)

// MockHotelRepository is an in-memory HotelRepository
type MockHotelRepository struct {
	mu     sync.Mutex
	hotels map[string]*domain.Hotel
}

func NewMockHotelRepository() *MockHotelRepository {
	return &MockHotelRepository{hotels: make(map[string]*domain.Hotel)}
}

func (m *MockHotelRepository) Create(ctx context.Context, hotel *domain.Hotel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hotels[hotel.ID] = hotel
	return nil
}

func (m *MockHotelRepository) GetByID(ctx context.Context, id string) (*domain.Hotel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hotels[id], nil
}

func (m *MockHotelRepository) List(ctx context.Context) ([]*domain.Hotel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var hotels []*domain.Hotel
	for _, h := range m.hotels {
		hotels = append(hotels, h)
	}
	sort.Slice(hotels, func(i, j int) bool { return hotels[i].Name < hotels[j].Name })
	return hotels, nil
}

func (m *MockHotelRepository) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.hotels), nil
}

// MockRoomLedger is an in-memory RoomRepository and LedgerRepository sharing one room table.
// WithinTx works on copies and only publishes them when fn returns nil.
type MockRoomLedger struct {
	mu         sync.Mutex
	rooms      map[string]*domain.Room
	requests   map[string]*domain.IdempotencyRecord
	failUpdate error
	txCount    int
}

func NewMockRoomLedger() *MockRoomLedger {
	return &MockRoomLedger{
		rooms:    make(map[string]*domain.Room),
		requests: make(map[string]*domain.IdempotencyRecord),
	}
}

func (m *MockRoomLedger) AddRoom(room *domain.Room) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rooms[room.ID] = room
}

func (m *MockRoomLedger) AddRequest(record *domain.IdempotencyRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests[record.RequestID] = record
}

func (m *MockRoomLedger) TimesBooked(roomID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rooms[roomID].TimesBooked
}

func (m *MockRoomLedger) HasRequest(requestID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.requests[requestID]
	return ok
}

func (m *MockRoomLedger) Create(ctx context.Context, room *domain.Room) error {
	m.AddRoom(room)
	return nil
}

func (m *MockRoomLedger) CreateBatch(ctx context.Context, rooms []*domain.Room) error {
	for _, r := range rooms {
		m.AddRoom(r)
	}
	return nil
}

func (m *MockRoomLedger) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	room, ok := m.rooms[id]
	if !ok {
		return nil, nil
	}
	cp := *room
	return &cp, nil
}

func (m *MockRoomLedger) ListAvailable(ctx context.Context) ([]*domain.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var rooms []*domain.Room
	for _, r := range m.rooms {
		if r.Available {
			cp := *r
			rooms = append(rooms, &cp)
		}
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].ID < rooms[j].ID })
	return rooms, nil
}

func (m *MockRoomLedger) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rooms), nil
}

func (m *MockRoomLedger) WithinTx(ctx context.Context, fn func(tx repository.LedgerTx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txCount++

	tx := &mockLedgerTx{
		rooms:      make(map[string]*domain.Room, len(m.rooms)),
		requests:   make(map[string]*domain.IdempotencyRecord, len(m.requests)),
		failUpdate: m.failUpdate,
	}
	for id, r := range m.rooms {
		cp := *r
		tx.rooms[id] = &cp
	}
	for id, rec := range m.requests {
		cp := *rec
		tx.requests[id] = &cp
	}

	if err := fn(tx); err != nil {
		return err
	}
	m.rooms = tx.rooms
	m.requests = tx.requests
	return nil
}

type mockLedgerTx struct {
	rooms      map[string]*domain.Room
	requests   map[string]*domain.IdempotencyRecord
	failUpdate error
}

func (t *mockLedgerTx) InsertRequest(ctx context.Context, record *domain.IdempotencyRecord) (bool, error) {
	if _, ok := t.requests[record.RequestID]; ok {
		return false, nil
	}
	cp := *record
	t.requests[record.RequestID] = &cp
	return true, nil
}

func (t *mockLedgerTx) FindRequestForUpdate(ctx context.Context, requestID string) (*domain.IdempotencyRecord, error) {
	return t.requests[requestID], nil
}

func (t *mockLedgerTx) DeleteRequest(ctx context.Context, requestID string) error {
	delete(t.requests, requestID)
	return nil
}

func (t *mockLedgerTx) GetRoomForUpdate(ctx context.Context, roomID string) (*domain.Room, error) {
	return t.rooms[roomID], nil
}

func (t *mockLedgerTx) UpdateTimesBooked(ctx context.Context, roomID string, timesBooked int) error {
	if t.failUpdate != nil {
		return t.failUpdate
	}
	room, ok := t.rooms[roomID]
	if !ok {
		return domain.ErrRoomNotFound
	}
	room.TimesBooked = timesBooked
	return nil
}
