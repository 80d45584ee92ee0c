package di

import (
	"github.com/prohmpiriya/hotel-booking-saga/backend-booking/internal/client"
	"github.com/prohmpiriya/hotel-booking-saga/backend-booking/internal/handler"
	"github.com/prohmpiriya/hotel-booking-saga/backend-booking/internal/repository"
	"github.com/prohmpiriya/hotel-booking-saga/backend-booking/internal/service"
	"github.com/prohmpiriya/hotel-booking-saga/pkg/database"
	"github.com/prohmpiriya/hotel-booking-saga/pkg/health"
	"github.com/prohmpiriya/hotel-booking-saga/pkg/logger"
	"github.com/prohmpiriya/hotel-booking-saga/pkg/middleware"
	"github.com/prohmpiriya/hotel-booking-saga/pkg/redis"
)

// Container holds all dependencies for the booking service
type Container struct {
	// Infrastructure
	DB    *database.PostgresDB
	Redis *redis.Client

	// Repositories
	BookingRepo repository.BookingRepository
	UserRepo    repository.UserRepository

	// Clients and publishers
	HotelClient    client.HotelClient
	EventPublisher service.EventPublisher

	// Services
	BookingService service.BookingService
	UserService    service.UserService
	Seeder         *service.Seeder

	// Handlers
	HealthHandler  *health.Handler
	BookingHandler *handler.BookingHandler
	UserHandler    *handler.UserHandler
}

// ContainerConfig contains configuration for building the container.
// Redis is optional, a nil EventPublisher falls back to the no-op publisher.
type ContainerConfig struct {
	DB             *database.PostgresDB
	Redis          *redis.Client
	HotelClient    client.HotelClient
	EventPublisher service.EventPublisher
	Saga           *service.SagaConfig
	JWT            *middleware.JWTConfig
	Logger         *logger.Logger
	ServiceName    string
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *ContainerConfig) *Container {
	c := &Container{
		DB:             cfg.DB,
		Redis:          cfg.Redis,
		HotelClient:    cfg.HotelClient,
		EventPublisher: cfg.EventPublisher,
	}
	if c.EventPublisher == nil {
		c.EventPublisher = service.NewNoOpEventPublisher()
	}

	// Initialize repositories
	c.BookingRepo = repository.NewPostgresBookingRepository(c.DB.Pool())
	c.UserRepo = repository.NewPostgresUserRepository(c.DB.Pool())

	// Initialize services
	c.BookingService = service.NewBookingService(&service.BookingServiceConfig{
		BookingRepo:    c.BookingRepo,
		UserRepo:       c.UserRepo,
		HotelClient:    c.HotelClient,
		EventPublisher: c.EventPublisher,
		Saga:           cfg.Saga,
		Logger:         cfg.Logger,
	})
	c.UserService = service.NewUserService(c.UserRepo, &service.UserServiceConfig{
		JWT:    cfg.JWT,
		Logger: cfg.Logger,
	})
	c.Seeder = service.NewSeeder(c.UserRepo, cfg.Logger)

	// Initialize handlers
	checks := map[string]health.Checker{"database": c.DB}
	if c.Redis != nil {
		checks["redis"] = c.Redis
	}
	c.HealthHandler = health.NewHandler(cfg.ServiceName, checks)
	c.BookingHandler = handler.NewBookingHandler(c.BookingService)
	c.UserHandler = handler.NewUserHandler(c.UserService)

	return c
}
