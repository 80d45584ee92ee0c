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
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// roomService implements RoomService
type roomService struct {
	roomRepo  repository.RoomRepository
	hotelRepo repository.HotelRepository
	ledger    repository.LedgerRepository
	log       *logger.Logger
	now       func() time.Time
}

// NewRoomService creates a new RoomService. A nil log uses the global logger.
func NewRoomService(roomRepo repository.RoomRepository, hotelRepo repository.HotelRepository, ledger repository.LedgerRepository, log *logger.Logger) RoomService {
	if log == nil {
		log = logger.Get()
	}
	return &roomService{
		roomRepo:  roomRepo,
		hotelRepo: hotelRepo,
		ledger:    ledger,
		log:       log,
		now:       time.Now,
	}
}

// CreateRoom adds a room to an existing hotel
func (s *roomService) CreateRoom(ctx context.Context, req *dto.CreateRoomRequest) (*domain.Room, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.room.CreateRoom")
	defer span.End()

	if valid, _ := req.Validate(); !valid {
		return nil, domain.ErrInvalidRoom
	}

	hotel, err := s.hotelRepo.GetByID(ctx, req.HotelID)
	if err != nil {
		telemetry.SetSpanError(span, err)
		return nil, err
	}
	if hotel == nil {
		return nil, domain.ErrHotelNotFound
	}

	room := &domain.Room{
		ID:        uuid.New().String(),
		HotelID:   hotel.ID,
		Number:    req.Number,
		Available: req.IsAvailable(),
		CreatedAt: s.now(),
	}
	if err := s.roomRepo.Create(ctx, room); err != nil {
		telemetry.SetSpanError(span, err)
		return nil, err
	}

	s.log.Info("room.create",
		zap.String("room_id", room.ID),
		zap.String("hotel_id", hotel.ID),
		zap.String("number", room.Number),
	)
	return room, nil
}

// ListAvailable returns the available rooms
func (s *roomService) ListAvailable(ctx context.Context) ([]*domain.Room, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.room.ListAvailable")
	defer span.End()

	rooms, err := s.roomRepo.ListAvailable(ctx)
	if err != nil {
		telemetry.SetSpanError(span, err)
		return nil, err
	}
	return rooms, nil
}

// ListRecommended returns the available rooms, least booked first
func (s *roomService) ListRecommended(ctx context.Context) ([]*domain.Room, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.room.ListRecommended")
	defer span.End()

	rooms, err := s.roomRepo.ListAvailable(ctx)
	if err != nil {
		telemetry.SetSpanError(span, err)
		return nil, err
	}
	return domain.RecommendRooms(rooms), nil
}

// Confirm records requestID and increments the room's counter in one transaction.
// A requestID that was already recorded succeeds without touching the room.
// An unknown room keeps the record, so retries short-circuit.
// An unavailable room drops the record, so a later retry or release of the same requestID stays clean.
func (s *roomService) Confirm(ctx context.Context, roomID, requestID string, stay domain.DateRange) error {
	ctx, span := telemetry.StartSpan(ctx, "service.room.Confirm")
	defer span.End()
	span.SetAttributes(
		attribute.String("room_id", roomID),
		attribute.String("request_id", requestID),
	)

	log := s.log.WithContext(ctx).With(zap.String("room_id", roomID), zap.String("request_id", requestID))
	log.Info("room.confirm.start",
		zap.String("start_date", stay.Start.Format(dto.DateLayout)),
		zap.String("end_date", stay.End.Format(dto.DateLayout)),
	)

	var rejected error
	err := s.ledger.WithinTx(ctx, func(tx repository.LedgerTx) error {
		inserted, err := tx.InsertRequest(ctx, &domain.IdempotencyRecord{
			RequestID: requestID,
			RoomID:    roomID,
			CreatedAt: s.now(),
		})
		if err != nil {
			return err
		}
		if !inserted {
			log.Debug("room.confirm.skip", zap.String("reason", "already_processed"))
			return nil
		}

		room, err := tx.GetRoomForUpdate(ctx, roomID)
		if err != nil {
			return err
		}
		if room == nil {
			log.Warn("room.confirm.fail", zap.String("reason", "room_not_found"))
			rejected = domain.ErrRoomNotFound
			return nil
		}

		if !room.Available {
			if err := tx.DeleteRequest(ctx, requestID); err != nil {
				return err
			}
			log.Warn("room.confirm.fail", zap.String("reason", "not_available"))
			rejected = domain.ErrRoomUnavailable
			return nil
		}

		before := room.TimesBooked
		if err := tx.UpdateTimesBooked(ctx, roomID, before+1); err != nil {
			return err
		}
		log.Info("room.confirm.success",
			zap.Int("times_booked_before", before),
			zap.Int("times_booked_after", before+1),
		)
		return nil
	})
	if err != nil {
		telemetry.SetSpanError(span, err)
		log.Error("room.confirm.error", zap.Error(err))
		return err
	}
	if rejected != nil {
		telemetry.SetSpanError(span, rejected)
		return rejected
	}
	return nil
}

// Release removes requestID's record and decrements the room's counter, never below zero.
// A missing room still drops the record and then reports ErrRoomNotFound.
func (s *roomService) Release(ctx context.Context, roomID, requestID string) error {
	ctx, span := telemetry.StartSpan(ctx, "service.room.Release")
	defer span.End()
	span.SetAttributes(
		attribute.String("room_id", roomID),
		attribute.String("request_id", requestID),
	)

	log := s.log.WithContext(ctx).With(zap.String("room_id", roomID), zap.String("request_id", requestID))
	log.Info("room.release.start")

	var missingRoom error
	err := s.ledger.WithinTx(ctx, func(tx repository.LedgerTx) error {
		record, err := tx.FindRequestForUpdate(ctx, requestID)
		if err != nil {
			return err
		}
		if record == nil {
			log.Debug("room.release.skip", zap.String("reason", "request_not_found"))
			return nil
		}
		if record.RoomID != roomID {
			log.Warn("room.release.mismatch", zap.String("recorded_room_id", record.RoomID))
		}

		room, err := tx.GetRoomForUpdate(ctx, roomID)
		if err != nil {
			return err
		}
		switch {
		case room == nil:
			log.Warn("room.release.fail", zap.String("reason", "room_not_found"))
			missingRoom = domain.ErrRoomNotFound
		case room.TimesBooked > 0:
			before := room.TimesBooked
			if err := tx.UpdateTimesBooked(ctx, roomID, before-1); err != nil {
				return err
			}
			log.Info("room.release.success",
				zap.Int("times_booked_before", before),
				zap.Int("times_booked_after", before-1),
			)
		default:
			log.Debug("room.release.skip", zap.String("reason", "times_booked_already_zero"))
		}

		return tx.DeleteRequest(ctx, requestID)
	})
	if err != nil {
		telemetry.SetSpanError(span, err)
		log.Error("room.release.error", zap.Error(err))
		return err
	}
	if missingRoom != nil {
		telemetry.SetSpanError(span, missingRoom)
		return missingRoom
	}
	return nil
}
