package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/prohmpiriya/hotel-booking-saga/backend-hotel/internal/domain"
	"github.com/prohmpiriya/hotel-booking-saga/backend-hotel/internal/dto"
	"github.com/prohmpiriya/hotel-booking-saga/backend-hotel/internal/repository"
	"github.com/prohmpiriya/hotel-booking-saga/pkg/logger"
	"github.com/prohmpiriya/hotel-booking-saga/pkg/telemetry"
	"go.uber.org/zap"
)

// hotelService implements HotelService
type hotelService struct {
	hotelRepo repository.HotelRepository
	log       *logger.Logger
}

// NewHotelService creates a new HotelService
func NewHotelService(hotelRepo repository.HotelRepository, log *logger.Logger) HotelService {
	if log == nil {
		log = logger.Get()
	}
	return &hotelService{hotelRepo: hotelRepo, log: log}
}

// CreateHotel creates a new hotel
func (s *hotelService) CreateHotel(ctx context.Context, req *dto.CreateHotelRequest) (*domain.Hotel, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.hotel.CreateHotel")
	defer span.End()

	hotel := &domain.Hotel{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Address:   req.Address,
		CreatedAt: time.Now(),
	}
	if err := hotel.Validate(); err != nil {
		return nil, err
	}

	if err := s.hotelRepo.Create(ctx, hotel); err != nil {
		telemetry.SetSpanError(span, err)
		return nil, err
	}

	s.log.Info("hotel.create", zap.String("hotel_id", hotel.ID), zap.String("name", hotel.Name))
	return hotel, nil
}

// ListHotels returns all hotels
func (s *hotelService) ListHotels(ctx context.Context) ([]*domain.Hotel, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.hotel.ListHotels")
	defer span.End()

	hotels, err := s.hotelRepo.List(ctx)
	if err != nil {
		telemetry.SetSpanError(span, err)
		return nil, err
	}
	return hotels, nil
}
