package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prohmpiriya/hotel-booking-saga/backend-booking/internal/client"
	"github.com/prohmpiriya/hotel-booking-saga/backend-booking/internal/di"
	"github.com/prohmpiriya/hotel-booking-saga/backend-booking/internal/handler"
	"github.com/prohmpiriya/hotel-booking-saga/backend-booking/internal/metrics"
	"github.com/prohmpiriya/hotel-booking-saga/backend-booking/internal/service"
	"github.com/prohmpiriya/hotel-booking-saga/backend-booking/migrations"
	"github.com/prohmpiriya/hotel-booking-saga/pkg/config"
	"github.com/prohmpiriya/hotel-booking-saga/pkg/database"
	"github.com/prohmpiriya/hotel-booking-saga/pkg/logger"
	"github.com/prohmpiriya/hotel-booking-saga/pkg/middleware"
	pkgredis "github.com/prohmpiriya/hotel-booking-saga/pkg/redis"
	"github.com/prohmpiriya/hotel-booking-saga/pkg/telemetry"
	"go.uber.org/zap"
)

const serviceName = "booking-service"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.ValidateBookingDatabase(); err != nil {
		log.Fatalf("Invalid database config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(&logger.Config{
		Level:       cfg.App.LogLevel,
		ServiceName: serviceName,
		Development: cfg.IsDevelopment(),
	}); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	appLog := logger.Get()
	appLog.Info("Starting Booking Service...")

	ctx := context.Background()

	// Initialize OpenTelemetry
	telemetryCfg := &telemetry.Config{
		Enabled:        cfg.OTel.Enabled,
		ServiceName:    serviceName,
		ServiceVersion: cfg.App.Version,
		Environment:    cfg.App.Environment,
		CollectorAddr:  cfg.OTel.CollectorAddr,
		SampleRatio:    cfg.OTel.SampleRatio,
	}
	if _, err := telemetry.Init(ctx, telemetryCfg); err != nil {
		appLog.Warn("Failed to initialize telemetry", zap.Error(err))
	} else if telemetryCfg.Enabled {
		appLog.Info("Telemetry initialized", zap.String("collector", telemetryCfg.CollectorAddr))
	}
	defer telemetry.Shutdown(ctx)

	// Instruments are created against the global meter provider set above
	if err := metrics.Init(); err != nil {
		appLog.Warn("Failed to initialize booking metrics", zap.Error(err))
	}

	// Initialize database connection (uses BookingDatabase config)
	dbCfg := database.PostgresConfigFrom(cfg.BookingDatabase, serviceName, cfg.OTel.Enabled)
	db, err := database.NewPostgres(ctx, dbCfg)
	if err != nil {
		appLog.Fatal(fmt.Sprintf("Database connection failed: %v", err))
	}
	defer db.Close()
	appLog.Info(fmt.Sprintf("Database connected (pool: min=%d, max=%d)", dbCfg.MinConns, dbCfg.MaxConns))

	if err := db.ExecScript(ctx, migrations.Schema); err != nil {
		appLog.Fatal(fmt.Sprintf("Schema bootstrap failed: %v", err))
	}

	// Redis backs the idempotency keys of POST /api/booking
	var redisClient *pkgredis.Client
	if cfg.Redis.Enabled {
		redisCfg := pkgredis.ConfigFrom(cfg.Redis)
		redisClient, err = pkgredis.NewClient(ctx, redisCfg)
		if err != nil {
			appLog.Warn(fmt.Sprintf("Redis connection failed, idempotency keys disabled: %v", err))
			redisClient = nil
		} else {
			defer redisClient.Close()
			appLog.Info(fmt.Sprintf("Redis connected (pool: %d, minIdle: %d)", redisCfg.PoolSize, redisCfg.MinIdleConns))
		}
	}

	// Initialize Kafka event publisher
	var eventPublisher service.EventPublisher = service.NewNoOpEventPublisher()
	if cfg.Kafka.Enabled() {
		kafkaPublisher, err := service.NewKafkaEventPublisher(ctx, &service.EventPublisherConfig{
			Brokers:     cfg.Kafka.Brokers,
			Topic:       cfg.Kafka.BookingTopic,
			ServiceName: serviceName,
			ClientID:    cfg.Kafka.ClientID,
		})
		if err != nil {
			appLog.Warn(fmt.Sprintf("Kafka connection failed, using no-op publisher: %v", err))
		} else {
			eventPublisher = kafkaPublisher
			appLog.Info("Kafka event publisher connected", zap.String("topic", cfg.Kafka.BookingTopic))
		}
	}
	defer eventPublisher.Close()

	jwtCfg := &middleware.JWTConfig{
		Secret: cfg.JWT.Secret,
		Issuer: cfg.JWT.Issuer,
		TTL:    cfg.JWT.AccessTokenTTL,
	}

	// Build dependency injection container
	container := di.NewContainer(&di.ContainerConfig{
		DB:    db,
		Redis: redisClient,
		HotelClient: client.NewHTTPHotelClient(&client.HTTPHotelClientConfig{
			BaseURL: cfg.Services.HotelServiceURL,
			Timeout: cfg.Services.HotelTimeout,
		}),
		EventPublisher: eventPublisher,
		Saga: &service.SagaConfig{
			MaxAttempts:  cfg.Saga.ConfirmMaxAttempts,
			InitialDelay: cfg.Saga.ConfirmInitialDelay,
			Multiplier:   cfg.Saga.ConfirmMultiplier,
		},
		JWT:         jwtCfg,
		Logger:      appLog,
		ServiceName: serviceName,
	})

	if cfg.Seed.Enabled {
		if err := container.Seeder.Seed(ctx); err != nil {
			appLog.Fatal(fmt.Sprintf("Seeding failed: %v", err))
		}
	}

	// Setup Gin
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSOrigins))
	router.Use(middleware.RequestLogger(appLog))

	// Add OpenTelemetry tracing middleware if enabled
	if cfg.OTel.Enabled {
		router.Use(telemetry.TracingMiddleware(serviceName))
		router.Use(telemetry.TraceHeaderMiddleware())
	}

	// Health check endpoints
	router.GET("/health", container.HealthHandler.Health)
	router.GET("/ready", container.HealthHandler.Ready)

	// Pool statistics for monitoring
	router.GET("/metrics", func(c *gin.Context) {
		stats := db.Stats()
		c.JSON(http.StatusOK, gin.H{
			"db_pool": gin.H{
				"total_conns":    stats.TotalConns(),
				"acquired_conns": stats.AcquiredConns(),
				"idle_conns":     stats.IdleConns(),
				"max_conns":      stats.MaxConns(),
			},
		})
	})

	api := router.Group("/api")
	{
		// Public authentication routes
		api.POST("/user/register", container.UserHandler.Register)
		api.POST("/user/auth", container.UserHandler.Auth)

		protected := api.Group("")
		protected.Use(middleware.JWTMiddleware(jwtCfg), handler.ForwardBearerToken())
		{
			createHandlers := []gin.HandlerFunc{}
			if redisClient != nil {
				createHandlers = append(createHandlers, middleware.IdempotencyMiddleware(&middleware.IdempotencyConfig{
					Store: redisClient,
				}))
			}
			createHandlers = append(createHandlers, container.BookingHandler.Create)

			protected.POST("/booking", createHandlers...)
			protected.GET("/bookings", container.BookingHandler.List)
			protected.GET("/booking/:id", container.BookingHandler.Get)
			protected.DELETE("/booking/:id", container.BookingHandler.Cancel)

			admin := protected.Group("/user")
			admin.Use(middleware.RequireRole("ADMIN"))
			{
				admin.POST("", container.UserHandler.Create)
				admin.PATCH("/:id", container.UserHandler.Update)
				admin.DELETE("/:id", container.UserHandler.Delete)
			}
		}
	}

	// Create HTTP server
	port := cfg.Server.Port
	if port == 0 {
		port = 8081 // Default port for booking-service
	}
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 2 * time.Second,
	}

	// Start server in goroutine
	go func() {
		appLog.Info(fmt.Sprintf("Booking Service listening on %s", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal(fmt.Sprintf("Failed to start server: %v", err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Fatal(fmt.Sprintf("Server forced to shutdown: %v", err))
	}

	appLog.Info("Server exited gracefully")
}
