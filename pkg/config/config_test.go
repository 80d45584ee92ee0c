package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWithPath_Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("APP_NAME=booking-service\nSERVER_PORT=8083\n"), 0o600))

	cfg, err := LoadWithPath(path)
	require.NoError(t, err)

	assert.Equal(t, "booking-service", cfg.App.Name)
	assert.Equal(t, 8083, cfg.Server.Port)
	assert.Equal(t, 3, cfg.Saga.ConfirmMaxAttempts)
	assert.Equal(t, 500*time.Millisecond, cfg.Saga.ConfirmInitialDelay)
	assert.Equal(t, 2.0, cfg.Saga.ConfirmMultiplier)
	assert.Equal(t, "booking_db", cfg.BookingDatabase.DBName)
	assert.Equal(t, "hotel_db", cfg.HotelDatabase.DBName)
	assert.False(t, cfg.Kafka.Enabled())
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadWithPath_Overrides(t *testing.T) {
	content := "HOTEL_SERVICE_URL=http://hotel:8082/\n" +
		"KAFKA_BROKERS=k1:9092,k2:9092\n" +
		"SAGA_CONFIRM_MAX_ATTEMPTS=5\n" +
		"SAGA_CONFIRM_INITIAL_DELAY=1s\n"
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadWithPath(path)
	require.NoError(t, err)

	assert.Equal(t, "http://hotel:8082", cfg.Services.HotelServiceURL)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Kafka.Enabled())
	assert.Equal(t, 5, cfg.Saga.ConfirmMaxAttempts)
	assert.Equal(t, time.Second, cfg.Saga.ConfirmInitialDelay)
}

func TestLoadWithPath_MissingFile(t *testing.T) {
	_, err := LoadWithPath(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func validConfig() *Config {
	return &Config{
		App:    AppConfig{Name: "test", Environment: "development"},
		Server: ServerConfig{Port: 8080},
		JWT:    JWTConfig{Secret: "secret"},
		Saga: SagaConfig{
			ConfirmMaxAttempts:  3,
			ConfirmInitialDelay: 500 * time.Millisecond,
			ConfirmMultiplier:   2,
		},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing app name", mutate: func(c *Config) { c.App.Name = "" }, wantErr: true},
		{name: "bad port", mutate: func(c *Config) { c.Server.Port = 70000 }, wantErr: true},
		{name: "missing jwt secret", mutate: func(c *Config) { c.JWT.Secret = "" }, wantErr: true},
		{
			name: "default secret in production",
			mutate: func(c *Config) {
				c.App.Environment = "production"
				c.JWT.Secret = defaultJWTSecret
			},
			wantErr: true,
		},
		{name: "zero attempts", mutate: func(c *Config) { c.Saga.ConfirmMaxAttempts = 0 }, wantErr: true},
		{name: "negative delay", mutate: func(c *Config) { c.Saga.ConfirmInitialDelay = -time.Second }, wantErr: true},
		{name: "shrinking multiplier", mutate: func(c *Config) { c.Saga.ConfirmMultiplier = 0.5 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_ValidateDatabases(t *testing.T) {
	cfg := validConfig()
	assert.Error(t, cfg.ValidateBookingDatabase())

	cfg.BookingDatabase = DatabaseConfig{Host: "localhost", DBName: "booking_db"}
	assert.NoError(t, cfg.ValidateBookingDatabase())

	cfg.HotelDatabase = DatabaseConfig{Host: "localhost"}
	assert.Error(t, cfg.ValidateHotelDatabase())
}
