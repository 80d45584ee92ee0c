package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/prohmpiriya/hotel-booking-saga/backend-booking/internal/domain"
	"github.com/prohmpiriya/hotel-booking-saga/backend-booking/internal/repository"
	"github.com/prohmpiriya/hotel-booking-saga/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type seedUser struct {
	username string
	password string
	role     domain.Role
}

var demoUsers = []seedUser{
	{"platform.admin", "Admin123!", domain.RoleAdmin},
	{"hotel.manager", "Manager123!", domain.RoleAdmin},
	{"alex.petrov", "Pass123!", domain.RoleUser},
	{"katya.smirnova", "Pass123!", domain.RoleUser},
	{"dima.volkov", "Pass123!", domain.RoleUser},
}

// Seeder loads demo users into an empty database
type Seeder struct {
	userRepo repository.UserRepository
	hashCost int
	log      *logger.Logger
}

// NewSeeder creates a new Seeder
func NewSeeder(userRepo repository.UserRepository, log *logger.Logger) *Seeder {
	if log == nil {
		log = logger.Get()
	}
	return &Seeder{userRepo: userRepo, hashCost: bcrypt.DefaultCost, log: log}
}

// Seed does nothing when any user already exists
func (s *Seeder) Seed(ctx context.Context) error {
	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		s.log.Info("seed.skip", zap.Int("users", count))
		return nil
	}

	s.log.Info("seed.start")
	now := time.Now()
	for _, u := range demoUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), s.hashCost)
		if err != nil {
			return err
		}
		user := &domain.User{
			ID:           uuid.New().String(),
			Username:     u.username,
			PasswordHash: string(hash),
			Role:         u.role,
			CreatedAt:    now,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return err
		}
	}
	s.log.Info("seed.done", zap.Int("users", len(demoUsers)))
	return nil
}
