package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

// Config holds all application configuration
type Config struct {
	App             AppConfig      `mapstructure:"app"`
	Server          ServerConfig   `mapstructure:"server"`
	BookingDatabase DatabaseConfig `mapstructure:"booking_database"` // booking-service: users, bookings
	HotelDatabase   DatabaseConfig `mapstructure:"hotel_database"`   // hotel-service: hotels, rooms, idempotency records
	Redis           RedisConfig    `mapstructure:"redis"`
	Kafka           KafkaConfig    `mapstructure:"kafka"`
	JWT             JWTConfig      `mapstructure:"jwt"`
	OTel            OTelConfig     `mapstructure:"otel"`
	Services        ServicesConfig `mapstructure:"services"`
	Saga            SagaConfig     `mapstructure:"saga"`
	Seed            SeedConfig     `mapstructure:"seed"`
}

// ServicesConfig holds URLs of other microservices
type ServicesConfig struct {
	HotelServiceURL string        `mapstructure:"hotel_service_url"`
	HotelTimeout    time.Duration `mapstructure:"hotel_timeout"`
}

// AppConfig holds application-level settings
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"` // development, staging, production
	Debug       bool   `mapstructure:"debug"`
	Version     string `mapstructure:"version"`
	LogLevel    string `mapstructure:"log_level"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
	CORSOrigins  []string      `mapstructure:"cors_origins"`
}

// DatabaseConfig holds PostgreSQL connection settings
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// DSN returns the PostgreSQL connection string
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// Addr returns the Redis address
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// KafkaConfig holds Kafka/Redpanda connection settings.
// An empty broker list disables event publishing.
type KafkaConfig struct {
	Brokers      []string `mapstructure:"brokers"`
	ClientID     string   `mapstructure:"client_id"`
	BookingTopic string   `mapstructure:"booking_topic"`
}

// Enabled reports whether at least one broker is configured
func (k *KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

// JWTConfig holds JWT settings
type JWTConfig struct {
	Secret         string        `mapstructure:"secret"`
	AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`
	Issuer         string        `mapstructure:"issuer"`
}

// OTelConfig holds OpenTelemetry settings
type OTelConfig struct {
	Enabled       bool    `mapstructure:"enabled"`
	ServiceName   string  `mapstructure:"service_name"`
	CollectorAddr string  `mapstructure:"collector_addr"`
	SampleRatio   float64 `mapstructure:"sample_ratio"`
}

// SagaConfig holds the booking confirmation retry policy
type SagaConfig struct {
	ConfirmMaxAttempts  int           `mapstructure:"confirm_max_attempts"`
	ConfirmInitialDelay time.Duration `mapstructure:"confirm_initial_delay"`
	ConfirmMultiplier   float64       `mapstructure:"confirm_multiplier"`
}

// SeedConfig controls startup data seeding
type SeedConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")

	// .env is optional, environment variables are enough
	_ = v.ReadInConfig()

	return load(v)
}

// LoadWithPath loads configuration from a specific path
func LoadWithPath(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	cfg := &Config{}
	bindConfig(v, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("APP_NAME", "hotel-booking")
	v.SetDefault("APP_ENVIRONMENT", "development")
	v.SetDefault("APP_DEBUG", true)
	v.SetDefault("APP_VERSION", "1.0.0")
	v.SetDefault("APP_LOG_LEVEL", "info")

	// Server defaults
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_READ_TIMEOUT", "10s")
	v.SetDefault("SERVER_WRITE_TIMEOUT", "30s")
	v.SetDefault("SERVER_IDLE_TIMEOUT", "120s")
	v.SetDefault("SERVER_CORS_ORIGINS", "")

	// Each service owns its database
	setDatabaseDefaults(v, "BOOKING_DATABASE", "booking_db")
	setDatabaseDefaults(v, "HOTEL_DATABASE", "hotel_db")

	// Redis defaults
	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_POOL_SIZE", 50)
	v.SetDefault("REDIS_MIN_IDLE_CONNS", 5)
	v.SetDefault("REDIS_DIAL_TIMEOUT", "5s")
	v.SetDefault("REDIS_READ_TIMEOUT", "3s")
	v.SetDefault("REDIS_WRITE_TIMEOUT", "3s")

	// Kafka defaults (empty brokers = publishing disabled)
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_CLIENT_ID", "hotel-booking")
	v.SetDefault("KAFKA_BOOKING_TOPIC", "booking-events")

	// JWT defaults
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_ACCESS_TOKEN_TTL", "24h")
	v.SetDefault("JWT_ISSUER", "hotel-booking")

	// OTel defaults
	v.SetDefault("OTEL_ENABLED", false)
	v.SetDefault("OTEL_SERVICE_NAME", "hotel-booking")
	v.SetDefault("OTEL_COLLECTOR_ADDR", "localhost:4317")
	v.SetDefault("OTEL_SAMPLE_RATIO", 1.0)

	// Downstream services
	v.SetDefault("HOTEL_SERVICE_URL", "http://localhost:8082")
	v.SetDefault("HOTEL_SERVICE_TIMEOUT", "5s")

	// Booking confirmation retry: 3 attempts, 500ms then 1s between them
	v.SetDefault("SAGA_CONFIRM_MAX_ATTEMPTS", 3)
	v.SetDefault("SAGA_CONFIRM_INITIAL_DELAY", "500ms")
	v.SetDefault("SAGA_CONFIRM_MULTIPLIER", 2.0)

	v.SetDefault("SEED_DATA", true)
}

func setDatabaseDefaults(v *viper.Viper, prefix, dbName string) {
	v.SetDefault(prefix+"_HOST", "localhost")
	v.SetDefault(prefix+"_PORT", 5432)
	v.SetDefault(prefix+"_USER", "postgres")
	v.SetDefault(prefix+"_PASSWORD", "postgres")
	v.SetDefault(prefix+"_DBNAME", dbName)
	v.SetDefault(prefix+"_SSLMODE", "disable")
	v.SetDefault(prefix+"_MAX_OPEN_CONNS", 20)
	v.SetDefault(prefix+"_MAX_IDLE_CONNS", 2)
	v.SetDefault(prefix+"_CONN_MAX_LIFETIME", "1h")
	v.SetDefault(prefix+"_CONN_MAX_IDLE_TIME", "30m")
}

func bindDatabase(v *viper.Viper, prefix string) DatabaseConfig {
	return DatabaseConfig{
		Host:            v.GetString(prefix + "_HOST"),
		Port:            v.GetInt(prefix + "_PORT"),
		User:            v.GetString(prefix + "_USER"),
		Password:        v.GetString(prefix + "_PASSWORD"),
		DBName:          v.GetString(prefix + "_DBNAME"),
		SSLMode:         v.GetString(prefix + "_SSLMODE"),
		MaxOpenConns:    v.GetInt(prefix + "_MAX_OPEN_CONNS"),
		MaxIdleConns:    v.GetInt(prefix + "_MAX_IDLE_CONNS"),
		ConnMaxLifetime: v.GetDuration(prefix + "_CONN_MAX_LIFETIME"),
		ConnMaxIdleTime: v.GetDuration(prefix + "_CONN_MAX_IDLE_TIME"),
	}
}

func bindConfig(v *viper.Viper, cfg *Config) {
	// App
	cfg.App.Name = v.GetString("APP_NAME")
	cfg.App.Environment = v.GetString("APP_ENVIRONMENT")
	cfg.App.Debug = v.GetBool("APP_DEBUG")
	cfg.App.Version = v.GetString("APP_VERSION")
	cfg.App.LogLevel = v.GetString("APP_LOG_LEVEL")

	// Server
	cfg.Server.Host = v.GetString("SERVER_HOST")
	cfg.Server.Port = v.GetInt("SERVER_PORT")
	cfg.Server.ReadTimeout = v.GetDuration("SERVER_READ_TIMEOUT")
	cfg.Server.WriteTimeout = v.GetDuration("SERVER_WRITE_TIMEOUT")
	cfg.Server.IdleTimeout = v.GetDuration("SERVER_IDLE_TIMEOUT")
	cfg.Server.CORSOrigins = splitList(v.GetString("SERVER_CORS_ORIGINS"))

	cfg.BookingDatabase = bindDatabase(v, "BOOKING_DATABASE")
	cfg.HotelDatabase = bindDatabase(v, "HOTEL_DATABASE")

	// Redis
	cfg.Redis.Enabled = v.GetBool("REDIS_ENABLED")
	cfg.Redis.Host = v.GetString("REDIS_HOST")
	cfg.Redis.Port = v.GetInt("REDIS_PORT")
	cfg.Redis.Password = v.GetString("REDIS_PASSWORD")
	cfg.Redis.DB = v.GetInt("REDIS_DB")
	cfg.Redis.PoolSize = v.GetInt("REDIS_POOL_SIZE")
	cfg.Redis.MinIdleConns = v.GetInt("REDIS_MIN_IDLE_CONNS")
	cfg.Redis.DialTimeout = v.GetDuration("REDIS_DIAL_TIMEOUT")
	cfg.Redis.ReadTimeout = v.GetDuration("REDIS_READ_TIMEOUT")
	cfg.Redis.WriteTimeout = v.GetDuration("REDIS_WRITE_TIMEOUT")

	// Kafka
	cfg.Kafka.Brokers = splitList(v.GetString("KAFKA_BROKERS"))
	cfg.Kafka.ClientID = v.GetString("KAFKA_CLIENT_ID")
	cfg.Kafka.BookingTopic = v.GetString("KAFKA_BOOKING_TOPIC")

	// JWT
	cfg.JWT.Secret = v.GetString("JWT_SECRET")
	cfg.JWT.AccessTokenTTL = v.GetDuration("JWT_ACCESS_TOKEN_TTL")
	cfg.JWT.Issuer = v.GetString("JWT_ISSUER")

	// OTel
	cfg.OTel.Enabled = v.GetBool("OTEL_ENABLED")
	cfg.OTel.ServiceName = v.GetString("OTEL_SERVICE_NAME")
	cfg.OTel.CollectorAddr = v.GetString("OTEL_COLLECTOR_ADDR")
	cfg.OTel.SampleRatio = v.GetFloat64("OTEL_SAMPLE_RATIO")

	// Services
	cfg.Services.HotelServiceURL = strings.TrimRight(v.GetString("HOTEL_SERVICE_URL"), "/")
	cfg.Services.HotelTimeout = v.GetDuration("HOTEL_SERVICE_TIMEOUT")

	// Saga
	cfg.Saga.ConfirmMaxAttempts = v.GetInt("SAGA_CONFIRM_MAX_ATTEMPTS")
	cfg.Saga.ConfirmInitialDelay = v.GetDuration("SAGA_CONFIRM_INITIAL_DELAY")
	cfg.Saga.ConfirmMultiplier = v.GetFloat64("SAGA_CONFIRM_MULTIPLIER")

	cfg.Seed.Enabled = v.GetBool("SEED_DATA")
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.App.Name == "" {
		return errors.New("app name is required")
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.JWT.Secret == "" {
		return errors.New("JWT secret is required")
	}

	if c.IsProduction() && c.JWT.Secret == defaultJWTSecret {
		return errors.New("JWT secret must be changed in production")
	}

	if c.Saga.ConfirmMaxAttempts < 1 {
		return fmt.Errorf("SAGA_CONFIRM_MAX_ATTEMPTS must be at least 1, got %d", c.Saga.ConfirmMaxAttempts)
	}
	if c.Saga.ConfirmInitialDelay < 0 {
		return fmt.Errorf("SAGA_CONFIRM_INITIAL_DELAY must not be negative, got %s", c.Saga.ConfirmInitialDelay)
	}
	if c.Saga.ConfirmMultiplier < 1 {
		return fmt.Errorf("SAGA_CONFIRM_MULTIPLIER must be at least 1, got %v", c.Saga.ConfirmMultiplier)
	}

	return nil
}

// ValidateBookingDatabase validates booking database configuration
func (c *Config) ValidateBookingDatabase() error {
	return validateDatabase("BOOKING_DATABASE", &c.BookingDatabase)
}

// ValidateHotelDatabase validates hotel database configuration
func (c *Config) ValidateHotelDatabase() error {
	return validateDatabase("HOTEL_DATABASE", &c.HotelDatabase)
}

func validateDatabase(prefix string, db *DatabaseConfig) error {
	if db.Host == "" {
		return fmt.Errorf("%s_HOST is required", prefix)
	}
	if db.DBName == "" {
		return fmt.Errorf("%s_DBNAME is required", prefix)
	}
	return nil
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}
