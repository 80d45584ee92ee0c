package service

import (
	"context"
	"errors"
	"time"

	"github.com/prohmpiriya/hotel-booking-saga/backend-booking/internal/client"
	"github.com/prohmpiriya/hotel-booking-saga/backend-booking/internal/domain"
	"github.com/prohmpiriya/hotel-booking-saga/backend-booking/internal/metrics"
	"github.com/prohmpiriya/hotel-booking-saga/backend-booking/internal/repository"
	"github.com/prohmpiriya/hotel-booking-saga/pkg/logger"
	"github.com/prohmpiriya/hotel-booking-saga/pkg/retry"
	"github.com/prohmpiriya/hotel-booking-saga/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// SagaConfig is the retry policy for confirming a booking with the room ledger
type SagaConfig struct {
	MaxAttempts  int
	InitialDelay time.Duration
	Multiplier   float64
}

// DefaultSagaConfig makes three attempts, waiting 500ms then 1s
func DefaultSagaConfig() *SagaConfig {
	return &SagaConfig{
		MaxAttempts:  3,
		InitialDelay: 500 * time.Millisecond,
		Multiplier:   2,
	}
}

// bookingService implements BookingService
type bookingService struct {
	bookingRepo    repository.BookingRepository
	userRepo       repository.UserRepository
	hotel          client.HotelClient
	eventPublisher EventPublisher
	retrier        *retry.Retrier
	log            *logger.Logger
	now            func() time.Time
}

// BookingServiceConfig contains the collaborators of the booking service
type BookingServiceConfig struct {
	BookingRepo    repository.BookingRepository
	UserRepo       repository.UserRepository
	HotelClient    client.HotelClient
	EventPublisher EventPublisher
	Saga           *SagaConfig
	Logger         *logger.Logger
}

// NewBookingService creates a new booking service
func NewBookingService(cfg *BookingServiceConfig) BookingService {
	saga := cfg.Saga
	if saga == nil {
		saga = DefaultSagaConfig()
	}
	// Use NoOpEventPublisher if none provided
	publisher := cfg.EventPublisher
	if publisher == nil {
		publisher = NewNoOpEventPublisher()
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Get()
	}

	return &bookingService{
		bookingRepo:    cfg.BookingRepo,
		userRepo:       cfg.UserRepo,
		hotel:          cfg.HotelClient,
		eventPublisher: publisher,
		retrier: retry.New(&retry.Config{
			MaxAttempts:     saga.MaxAttempts,
			InitialInterval: saga.InitialDelay,
			Multiplier:      saga.Multiplier,
		}),
		log: log,
		now: time.Now,
	}
}

// Create runs the booking saga. A booking that could not be confirmed is
// returned CANCELLED with a nil error.
func (s *bookingService) Create(ctx context.Context, username string, req *domain.BookingRequest) (*domain.Booking, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.booking.Create")
	defer span.End()

	if req == nil {
		s.log.Warn("booking.create.fail", zap.String("user", username), zap.String("reason", "null_request"))
		span.SetStatus(codes.Error, "null request")
		return nil, domain.ErrInvalidInput
	}
	if err := domain.ValidateStay(req.StartDate, req.EndDate); err != nil {
		s.log.Warn("booking.create.fail",
			zap.String("user", username),
			zap.String("reason", "invalid_dates"),
			zap.Time("start_date", req.StartDate),
			zap.Time("end_date", req.EndDate),
		)
		span.SetStatus(codes.Error, "invalid dates")
		return nil, err
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		telemetry.SetSpanError(span, err)
		return nil, err
	}
	if user == nil {
		s.log.Warn("booking.create.fail", zap.String("user", username), zap.String("reason", "user_not_found"))
		span.SetStatus(codes.Error, "user not found")
		return nil, domain.ErrUserNotFound
	}

	roomID, err := s.resolveRoom(ctx, req)
	if err != nil {
		reason := "snapshot_fetch_failed"
		if errors.Is(err, domain.ErrNoRoomsAvailable) {
			reason = "no_available_rooms"
		}
		s.log.Info("booking.create.fail", zap.String("user", username), zap.String("reason", reason), zap.Error(err))
		telemetry.SetSpanError(span, err)
		return nil, err
	}

	booking := domain.NewPendingBooking(user, roomID, req.StartDate, req.EndDate, s.now())
	span.SetAttributes(
		attribute.String("booking_id", booking.ID),
		attribute.String("request_id", booking.RequestID),
		attribute.String("room_id", roomID),
	)

	// the local record exists before any remote side effect
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		telemetry.SetSpanError(span, err)
		return nil, err
	}
	metrics.RecordCreated(ctx)
	s.log.Info("booking.create.success", bookingFields(booking)...)

	// From here on the saga runs to a terminal state even if the caller goes away.
	// Trace and bearer token values are kept.
	sagaCtx := context.WithoutCancel(ctx)

	started := time.Now()
	attempts, err := s.confirm(sagaCtx, booking)
	if err != nil {
		s.log.Error("booking.confirm.fail", append(bookingFields(booking), zap.Int("attempts", attempts), zap.Error(err))...)
		span.AddEvent("confirm_failed", trace.WithAttributes(attribute.Int("attempts", attempts)))

		s.release(sagaCtx, booking)

		if err := booking.Reject(); err != nil {
			telemetry.SetSpanError(span, err)
			return nil, err
		}
		if err := s.bookingRepo.Update(sagaCtx, booking); err != nil {
			telemetry.SetSpanError(span, err)
			return nil, err
		}

		s.finishAutoCancel(sagaCtx, booking, "confirm_failed", started)
		span.SetAttributes(attribute.String("status", string(booking.Status)))
		return booking, nil
	}

	if err := booking.Confirm(); err != nil {
		telemetry.SetSpanError(span, err)
		return nil, err
	}
	if err := s.bookingRepo.Update(sagaCtx, booking); err != nil {
		// the room is counted but the booking row still says PENDING
		s.log.Error("booking.confirm.persist.fail", append(bookingFields(booking), zap.Error(err))...)
		s.release(sagaCtx, booking)

		if cerr := booking.Cancel(); cerr == nil {
			if uerr := s.bookingRepo.Update(sagaCtx, booking); uerr == nil {
				s.finishAutoCancel(sagaCtx, booking, "persist_failed", started)
				span.SetAttributes(attribute.String("status", string(booking.Status)))
				return booking, nil
			}
		}
		telemetry.SetSpanError(span, err)
		return nil, err
	}

	metrics.RecordConfirmation(sagaCtx, attempts, time.Since(started).Seconds())
	s.log.Info("booking.confirm.success", append(bookingFields(booking), zap.Int("attempts", attempts))...)
	if err := s.eventPublisher.PublishBookingConfirmed(sagaCtx, booking); err != nil {
		s.log.Warn("booking.event.publish.fail", append(bookingFields(booking), zap.Error(err))...)
	}

	span.SetAttributes(attribute.String("status", string(booking.Status)))
	span.SetStatus(codes.Ok, "")
	return booking, nil
}

func (s *bookingService) finishAutoCancel(ctx context.Context, booking *domain.Booking, reason string, started time.Time) {
	metrics.RecordAutoCancellation(ctx, reason, time.Since(started).Seconds())
	s.log.Info("booking.cancel.auto", append(bookingFields(booking), zap.String("reason", reason))...)
	s.publishCancelled(ctx, booking, reason)
}

// resolveRoom returns the requested room, or the head of the hotel service's
// recommended snapshot when auto-select is on
func (s *bookingService) resolveRoom(ctx context.Context, req *domain.BookingRequest) (string, error) {
	if !req.AutoSelect {
		if req.RoomID == "" {
			return "", domain.ErrNoRoomsAvailable
		}
		return req.RoomID, nil
	}

	rooms, err := s.hotel.GetRecommendedRooms(ctx)
	if err != nil {
		return "", err
	}
	if len(rooms) == 0 {
		s.log.Info("booking.autoSelect.fail", zap.String("reason", "no_rooms"))
		return "", domain.ErrNoRoomsAvailable
	}

	selected := rooms[0].ID
	s.log.Debug("booking.autoSelect", zap.String("room_id", selected), zap.String("strategy", "first_available"))
	return selected, nil
}

// confirm calls the room ledger until it succeeds or the attempt budget runs out.
// Every attempt carries the booking's requestId, so a retry after a lost response
// cannot count the booking twice.
func (s *bookingService) confirm(ctx context.Context, booking *domain.Booking) (int, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.booking.confirm")
	defer span.End()

	result := s.retrier.DoWithCallback(ctx, func(ctx context.Context, attempt int) error {
		s.log.Info("booking.confirm.start", append(bookingFields(booking), zap.Int("attempt", attempt))...)
		return s.hotel.ConfirmRoom(ctx, booking.RoomID, booking.RequestID, booking.StartDate, booking.EndDate)
	}, func(attempt int, err error, next time.Duration) {
		metrics.RecordConfirmRetry(ctx, attempt)
		s.log.Warn("booking.confirm.retry",
			zap.String("booking_id", booking.ID),
			zap.String("request_id", booking.RequestID),
			zap.Int("attempt", attempt),
			zap.Duration("next_delay", next),
			zap.Error(err),
		)
	})

	span.SetAttributes(attribute.Int("attempts", result.Attempts))
	if result.Err != nil {
		err := result.LastError
		if err == nil {
			err = result.Err
		}
		telemetry.SetSpanError(span, err)
		return result.Attempts, err
	}
	return result.Attempts, nil
}

// release is the compensating action: one call, failures logged and swallowed.
// A record left behind on the hotel side is reconciled administratively.
func (s *bookingService) release(ctx context.Context, booking *domain.Booking) {
	ctx, span := telemetry.StartSpan(ctx, "service.booking.release")
	defer span.End()

	if err := s.hotel.ReleaseRoom(ctx, booking.RoomID, booking.RequestID); err != nil {
		telemetry.SetSpanError(span, err)
		metrics.RecordReleaseFailure(ctx, releaseFailureReason(err))
		s.log.Error("booking.release.fail", append(bookingFields(booking), zap.Error(err))...)
		return
	}
	s.log.Info("booking.release.success", bookingFields(booking)...)
}

// Cancel cancels a confirmed booking. The local state is written first and is
// authoritative, so a failed release does not revert it.
func (s *bookingService) Cancel(ctx context.Context, username, bookingID string) error {
	ctx, span := telemetry.StartSpan(ctx, "service.booking.Cancel")
	defer span.End()

	span.SetAttributes(attribute.String("booking_id", bookingID))

	booking, err := s.ownedBooking(ctx, username, bookingID, "booking.cancel.fail")
	if err != nil {
		telemetry.SetSpanError(span, err)
		return err
	}

	if err := booking.Cancel(); err != nil {
		s.log.Warn("booking.cancel.fail",
			zap.String("booking_id", bookingID),
			zap.String("user", username),
			zap.String("reason", "invalid_status"),
			zap.String("status", string(booking.Status)),
		)
		telemetry.SetSpanError(span, err)
		return err
	}
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		telemetry.SetSpanError(span, err)
		return err
	}

	// the cancellation is already stored, so the release runs even if the caller goes away
	s.release(context.WithoutCancel(ctx), booking)

	metrics.RecordUserCancellation(ctx)
	s.log.Info("booking.cancel.user", bookingFields(booking)...)
	s.publishCancelled(ctx, booking, "user")
	span.SetStatus(codes.Ok, "")
	return nil
}

// FindAll returns the caller's bookings ordered by creation time, newest first
func (s *bookingService) FindAll(ctx context.Context, username string) ([]*domain.Booking, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.booking.FindAll")
	defer span.End()

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		telemetry.SetSpanError(span, err)
		return nil, err
	}
	if user == nil {
		s.log.Warn("booking.list.fail", zap.String("user", username), zap.String("reason", "user_not_found"))
		return nil, domain.ErrUserNotFound
	}

	bookings, err := s.bookingRepo.ListByUser(ctx, user.ID)
	if err != nil {
		telemetry.SetSpanError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("count", len(bookings)))
	return bookings, nil
}

// FindByID returns a single booking owned by the caller
func (s *bookingService) FindByID(ctx context.Context, username, bookingID string) (*domain.Booking, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.booking.FindByID")
	defer span.End()

	booking, err := s.ownedBooking(ctx, username, bookingID, "booking.get.fail")
	if err != nil {
		telemetry.SetSpanError(span, err)
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) ownedBooking(ctx context.Context, username, bookingID, failTag string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		s.log.Info(failTag, zap.String("booking_id", bookingID), zap.String("user", username), zap.String("reason", "not_found"))
		return nil, domain.ErrBookingNotFound
	}
	if !booking.IsOwnedBy(username) {
		s.log.Warn(failTag,
			zap.String("booking_id", bookingID),
			zap.String("user", username),
			zap.String("reason", "access_denied"),
			zap.String("owner", booking.Username),
		)
		return nil, domain.ErrAccessDenied
	}
	return booking, nil
}

func (s *bookingService) publishCancelled(ctx context.Context, booking *domain.Booking, reason string) {
	if err := s.eventPublisher.PublishBookingCancelled(ctx, booking, reason); err != nil {
		s.log.Warn("booking.event.publish.fail", append(bookingFields(booking), zap.Error(err))...)
	}
}

func bookingFields(b *domain.Booking) []zap.Field {
	return []zap.Field{
		zap.String("booking_id", b.ID),
		zap.String("request_id", b.RequestID),
		zap.String("user", b.Username),
		zap.String("room_id", b.RoomID),
		zap.String("status", string(b.Status)),
	}
}

func releaseFailureReason(err error) string {
	switch {
	case domain.IsNotFoundError(err):
		return "room_not_found"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "timeout"
	default:
		return "remote_error"
	}
}
