package metrics

import (
	"context"
	"sync"

	"github.com/prohmpiriya/hotel-booking-saga/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

var (
	// Saga outcome counters
	BookingsCreated   *telemetry.Counter
	BookingsConfirmed *telemetry.Counter
	BookingsCancelled *telemetry.Counter

	// Room ledger call counters
	ConfirmRetries  *telemetry.Counter
	ReleaseFailures *telemetry.Counter

	// Histograms
	SagaDuration *telemetry.Histogram

	initOnce sync.Once
	initErr  error
)

// Init registers all booking metrics. Instruments stay nil until it succeeds,
// and every Record helper tolerates that.
func Init() error {
	initOnce.Do(func() {
		initErr = initMetrics()
	})
	return initErr
}

func initMetrics() error {
	var err error

	BookingsCreated, err = telemetry.NewCounter(telemetry.MetricOpts{
		Name:        "booking_created_total",
		Description: "Total number of bookings persisted as PENDING",
		Unit:        "1",
	})
	if err != nil {
		return err
	}

	BookingsConfirmed, err = telemetry.NewCounter(telemetry.MetricOpts{
		Name:        "booking_confirmations_total",
		Description: "Total number of bookings confirmed by the room ledger",
		Unit:        "1",
	})
	if err != nil {
		return err
	}

	BookingsCancelled, err = telemetry.NewCounter(telemetry.MetricOpts{
		Name:        "booking_cancellations_total",
		Description: "Total number of cancelled bookings by reason",
		Unit:        "1",
	})
	if err != nil {
		return err
	}

	ConfirmRetries, err = telemetry.NewCounter(telemetry.MetricOpts{
		Name:        "booking_confirm_retries_total",
		Description: "Total number of retried room confirmations",
		Unit:        "1",
	})
	if err != nil {
		return err
	}

	ReleaseFailures, err = telemetry.NewCounter(telemetry.MetricOpts{
		Name:        "booking_release_failures_total",
		Description: "Total number of room releases that failed and were left for reconciliation",
		Unit:        "1",
	})
	if err != nil {
		return err
	}

	SagaDuration, err = telemetry.NewHistogram(telemetry.MetricOpts{
		Name:        "booking_saga_duration_seconds",
		Description: "Duration of booking creation including confirmation retries",
		Unit:        "s",
	})
	return err
}

// RecordCreated records a booking persisted as PENDING
func RecordCreated(ctx context.Context) {
	BookingsCreated.Inc(ctx)
}

// RecordConfirmation records a confirmed booking and the saga duration
func RecordConfirmation(ctx context.Context, attempts int, durationSeconds float64) {
	BookingsConfirmed.Inc(ctx, attribute.Int("attempts", attempts))
	SagaDuration.Record(ctx, durationSeconds, attribute.String("outcome", "confirmed"))
}

// RecordAutoCancellation records a booking the saga cancelled, either because the
// room ledger never confirmed it or because the confirmed state could not be stored
func RecordAutoCancellation(ctx context.Context, reason string, durationSeconds float64) {
	BookingsCancelled.Inc(ctx, attribute.String("reason", reason))
	SagaDuration.Record(ctx, durationSeconds, attribute.String("outcome", "cancelled"))
}

// RecordUserCancellation records a cancellation requested by the booking owner
func RecordUserCancellation(ctx context.Context) {
	BookingsCancelled.Inc(ctx, attribute.String("reason", "user"))
}

// RecordConfirmRetry records a failed confirm attempt that will be retried
func RecordConfirmRetry(ctx context.Context, attempt int) {
	ConfirmRetries.Inc(ctx, attribute.Int("attempt", attempt))
}

// RecordReleaseFailure records a release that could not be delivered
func RecordReleaseFailure(ctx context.Context, reason string) {
	ReleaseFailures.Inc(ctx, attribute.String("reason", reason))
}
