package kafka

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducer_RequiresBrokers(t *testing.T) {
	_, err := NewProducer(context.Background(), nil)
	assert.Error(t, err)

	_, err = NewProducer(context.Background(), &ProducerConfig{})
	assert.Error(t, err)
}

func TestProducer_ProduceJSON_Integration(t *testing.T) {
	brokers := os.Getenv("TEST_KAFKA_BROKERS")
	if os.Getenv("INTEGRATION_TEST") != "1" || brokers == "" {
		t.Skip("set INTEGRATION_TEST=1 and TEST_KAFKA_BROKERS to run kafka tests")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	producer, err := NewProducer(ctx, &ProducerConfig{
		Brokers:  strings.Split(brokers, ","),
		ClientID: "producer-test",
	})
	require.NoError(t, err)
	defer producer.Close()

	err = producer.ProduceJSON(ctx, "booking-events-test", "b-1", map[string]string{"status": "CONFIRMED"}, map[string]string{"event_type": "booking.confirmed"})
	assert.NoError(t, err)
}
