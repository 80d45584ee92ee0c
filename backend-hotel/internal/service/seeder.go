package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/prohmpiriya/hotel-booking-saga/backend-hotel/internal/domain"
	"github.com/prohmpiriya/hotel-booking-saga/backend-hotel/internal/repository"
	"github.com/prohmpiriya/hotel-booking-saga/pkg/logger"
	"go.uber.org/zap"
)

type seedRoom struct {
	number      string
	available   bool
	timesBooked int
}

type seedHotel struct {
	name    string
	address string
	rooms   []seedRoom
}

var demoHotels = []seedHotel{
	{"The Hoxton, Holborn", "199-206 High Holborn, London WC1V 7BD", []seedRoom{
		{"H-101", true, 12}, {"H-102", true, 4}, {"H-103", false, 18}, {"H-104", true, 1},
	}},
	{"citizenM London Shoreditch", "6 Holywell Ln, London EC2A 3ET", []seedRoom{
		{"C-201", true, 0}, {"C-202", true, 7}, {"C-203", false, 22},
	}},
	{"Premier Inn London City (Aldgate)", "66 Alie St, London E1 8PX", []seedRoom{
		{"P-301", true, 3}, {"P-302", true, 9}, {"P-303", true, 2}, {"P-304", false, 15},
	}},
	{"Point A Hotel London Kings Cross", "324 Gray's Inn Rd, London WC1X 8BU", []seedRoom{
		{"KX-401", true, 5}, {"KX-402", true, 0}, {"KX-403", false, 11},
	}},
}

// Seeder loads demo hotels and rooms into an empty database
type Seeder struct {
	hotelRepo repository.HotelRepository
	roomRepo  repository.RoomRepository
	log       *logger.Logger
}

// NewSeeder creates a new Seeder
func NewSeeder(hotelRepo repository.HotelRepository, roomRepo repository.RoomRepository, log *logger.Logger) *Seeder {
	if log == nil {
		log = logger.Get()
	}
	return &Seeder{hotelRepo: hotelRepo, roomRepo: roomRepo, log: log}
}

// Seed does nothing when any hotel or room already exists
func (s *Seeder) Seed(ctx context.Context) error {
	hotelCount, err := s.hotelRepo.Count(ctx)
	if err != nil {
		return err
	}
	roomCount, err := s.roomRepo.Count(ctx)
	if err != nil {
		return err
	}
	if hotelCount > 0 || roomCount > 0 {
		s.log.Info("seed.skip", zap.Int("hotels", hotelCount), zap.Int("rooms", roomCount))
		return nil
	}

	s.log.Info("seed.start")
	now := time.Now()
	var rooms []*domain.Room
	for _, h := range demoHotels {
		hotel := &domain.Hotel{
			ID:        uuid.New().String(),
			Name:      h.name,
			Address:   h.address,
			CreatedAt: now,
		}
		if err := s.hotelRepo.Create(ctx, hotel); err != nil {
			return err
		}
		for _, r := range h.rooms {
			rooms = append(rooms, &domain.Room{
				ID:          uuid.New().String(),
				HotelID:     hotel.ID,
				Number:      r.number,
				Available:   r.available,
				TimesBooked: r.timesBooked,
				CreatedAt:   now,
			})
		}
	}

	if err := s.roomRepo.CreateBatch(ctx, rooms); err != nil {
		return err
	}
	s.log.Info("seed.done", zap.Int("hotels", len(demoHotels)), zap.Int("rooms", len(rooms)))
	return nil
}
