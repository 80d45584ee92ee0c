package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prohmpiriya/hotel-booking-saga/backend-booking/internal/domain"
	"github.com/prohmpiriya/hotel-booking-saga/backend-booking/internal/dto"
	"github.com/prohmpiriya/hotel-booking-saga/backend-booking/internal/repository"
	"github.com/prohmpiriya/hotel-booking-saga/pkg/logger"
	"github.com/prohmpiriya/hotel-booking-saga/pkg/middleware"
	"github.com/prohmpiriya/hotel-booking-saga/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// userService implements UserService
type userService struct {
	userRepo repository.UserRepository
	jwt      *middleware.JWTConfig
	hashCost int
	log      *logger.Logger
	now      func() time.Time
}

// UserServiceConfig contains configuration for the user service
type UserServiceConfig struct {
	JWT *middleware.JWTConfig
	// HashCost is the bcrypt cost, bcrypt.DefaultCost when zero
	HashCost int
	Logger   *logger.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository, cfg *UserServiceConfig) UserService {
	cost := cfg.HashCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Get()
	}
	return &userService{
		userRepo: userRepo,
		jwt:      cfg.JWT,
		hashCost: cost,
		log:      log,
		now:      time.Now,
	}
}

// Register creates a USER account and returns its token
func (s *userService) Register(ctx context.Context, req *dto.AuthRequest) (*dto.TokenResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.user.Register")
	defer span.End()

	if req == nil {
		return nil, domain.ErrInvalidInput
	}
	if ok, msg := req.Validate(); !ok {
		s.log.Warn("auth.register.fail", zap.String("user", req.Username), zap.String("reason", msg))
		return nil, domain.ErrInvalidInput
	}

	user, err := s.createUser(ctx, req.Username, req.Password, domain.RoleUser)
	if err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			s.log.Info("auth.register.fail", zap.String("user", req.Username), zap.String("reason", "already_exists"))
		} else {
			telemetry.SetSpanError(span, err)
		}
		return nil, err
	}

	s.log.Info("auth.register.success", zap.String("user_id", user.ID), zap.String("user", user.Username), zap.String("role", string(user.Role)))
	return s.issueToken(user)
}

// Login verifies credentials. Unknown users and wrong passwords are indistinguishable.
func (s *userService) Login(ctx context.Context, req *dto.AuthRequest) (*dto.TokenResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.user.Login")
	defer span.End()

	if req == nil {
		return nil, domain.ErrInvalidInput
	}

	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		telemetry.SetSpanError(span, err)
		return nil, err
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		s.log.Info("auth.login.fail", zap.String("user", req.Username), zap.String("reason", "invalid_credentials"))
		return nil, domain.ErrInvalidCredentials
	}

	s.log.Info("auth.login.success", zap.String("user_id", user.ID), zap.String("user", user.Username), zap.String("role", string(user.Role)))
	return s.issueToken(user)
}

// CreateUser creates a user with an explicit role
func (s *userService) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*domain.User, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.user.CreateUser")
	defer span.End()

	if req == nil {
		return nil, domain.ErrInvalidInput
	}
	if ok, _ := req.Validate(); !ok {
		return nil, domain.ErrInvalidInput
	}
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}

	user, err := s.createUser(ctx, req.Username, req.Password, role)
	if err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			s.log.Info("user.create.fail", zap.String("user", req.Username), zap.String("reason", "already_exists"))
		}
		return nil, err
	}

	s.log.Info("user.create.success", zap.String("user_id", user.ID), zap.String("user", user.Username), zap.String("role", string(user.Role)))
	return user, nil
}

// UpdateUser applies the provided fields. A blank password leaves the hash unchanged.
func (s *userService) UpdateUser(ctx context.Context, id string, req *dto.UpdateUserRequest) (*domain.User, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.user.UpdateUser")
	defer span.End()

	span.SetAttributes(attribute.String("user_id", id))

	if id == "" || req == nil {
		s.log.Warn("user.update.fail", zap.String("reason", "null_id"))
		return nil, domain.ErrInvalidInput
	}
	if ok, _ := req.Validate(); !ok {
		return nil, domain.ErrInvalidInput
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		telemetry.SetSpanError(span, err)
		return nil, err
	}
	if user == nil {
		s.log.Info("user.update.fail", zap.String("user_id", id), zap.String("reason", "not_found"))
		return nil, domain.ErrUserNotFound
	}

	if req.Username != nil {
		user.Username = strings.TrimSpace(*req.Username)
	}
	if req.Role != nil {
		role, err := domain.ParseRole(*req.Role)
		if err != nil {
			return nil, err
		}
		user.Role = role
	}
	passwordChanged := req.Password != nil && strings.TrimSpace(*req.Password) != ""
	if passwordChanged {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), s.hashCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	s.log.Debug("user.update.password", zap.String("user_id", id), zap.Bool("updated", passwordChanged))

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("user.update.success", zap.String("user_id", user.ID), zap.String("user", user.Username), zap.String("role", string(user.Role)))
	return user, nil
}

// DeleteUser removes a user
func (s *userService) DeleteUser(ctx context.Context, id string) error {
	ctx, span := telemetry.StartSpan(ctx, "service.user.DeleteUser")
	defer span.End()

	if id == "" {
		s.log.Warn("user.delete.fail", zap.String("reason", "null_id"))
		return domain.ErrInvalidInput
	}

	deleted, err := s.userRepo.Delete(ctx, id)
	if err != nil {
		telemetry.SetSpanError(span, err)
		return err
	}
	if !deleted {
		s.log.Info("user.delete.fail", zap.String("user_id", id), zap.String("reason", "not_found"))
		return domain.ErrUserNotFound
	}

	s.log.Info("user.delete.success", zap.String("user_id", id))
	return nil
}

func (s *userService) createUser(ctx context.Context, username, password string, role domain.Role) (*domain.User, error) {
	existing, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrUserAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    s.now(),
	}
	// the unique index still catches a concurrent registration
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) issueToken(user *domain.User) (*dto.TokenResponse, error) {
	token, expiresAt, err := middleware.SignToken(s.jwt, user.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, err
	}
	s.log.Debug("auth.token.issued", zap.String("user", user.Username))
	return &dto.TokenResponse{Token: token, TokenType: "Bearer", ExpiresAt: expiresAt}, nil
}
