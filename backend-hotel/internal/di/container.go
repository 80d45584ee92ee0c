package di

import (
	"github.com/prohmpiriya/hotel-booking-saga/backend-hotel/internal/handler"
	"github.com/prohmpiriya/hotel-booking-saga/backend-hotel/internal/repository"
	"github.com/prohmpiriya/hotel-booking-saga/backend-hotel/internal/service"
	"github.com/prohmpiriya/hotel-booking-saga/pkg/database"
	"github.com/prohmpiriya/hotel-booking-saga/pkg/health"
	"github.com/prohmpiriya/hotel-booking-saga/pkg/logger"
)

// Container holds all dependencies for the hotel service
type Container struct {
	// Infrastructure
	DB *database.PostgresDB

	// Repositories
	HotelRepo  repository.HotelRepository
	RoomRepo   repository.RoomRepository
	LedgerRepo repository.LedgerRepository

	// Services
	HotelService service.HotelService
	RoomService  service.RoomService
	Seeder       *service.Seeder

	// Handlers
	HealthHandler *health.Handler
	HotelHandler  *handler.HotelHandler
	RoomHandler   *handler.RoomHandler
}

// ContainerConfig contains configuration for building the container
type ContainerConfig struct {
	DB          *database.PostgresDB
	Logger      *logger.Logger
	ServiceName string
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *ContainerConfig) *Container {
	c := &Container{DB: cfg.DB}

	// Initialize repositories
	c.HotelRepo = repository.NewPostgresHotelRepository(c.DB.Pool())
	c.RoomRepo = repository.NewPostgresRoomRepository(c.DB.Pool())
	c.LedgerRepo = repository.NewPostgresLedgerRepository(c.DB.Pool())

	// Initialize services
	c.HotelService = service.NewHotelService(c.HotelRepo, cfg.Logger)
	c.RoomService = service.NewRoomService(c.RoomRepo, c.HotelRepo, c.LedgerRepo, cfg.Logger)
	c.Seeder = service.NewSeeder(c.HotelRepo, c.RoomRepo, cfg.Logger)

	// Initialize handlers
	c.HealthHandler = health.NewHandler(cfg.ServiceName, map[string]health.Checker{"database": c.DB})
	c.HotelHandler = handler.NewHotelHandler(c.HotelService)
	c.RoomHandler = handler.NewRoomHandler(c.RoomService)

	return c
}
