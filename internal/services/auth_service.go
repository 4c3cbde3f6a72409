package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/yukikurage/task-tracker-api/internal/auth"
	"github.com/yukikurage/task-tracker-api/internal/cache"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"github.com/yukikurage/task-tracker-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrAccountLocked      = errors.New("account is locked")
	ErrSessionUserInvalid = errors.New("session user no longer exists or is disabled")
)

// AuthService handles authentication related business logic.
type AuthService struct {
	userRepo  repository.UserRepository
	passwords auth.PasswordVerifier
	cache     *cache.Cache
	logger    *slog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, passwords auth.PasswordVerifier, c *cache.Cache, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		userRepo:  userRepo,
		passwords: passwords,
		cache:     c,
		logger:    logger.With("component", "auth_service"),
	}
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and returns the authenticated user.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := s.passwords.Verify(user.PasswordHash, input.Password); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.Enabled {
		return nil, ErrAccountDisabled
	}
	if user.AccountLocked {
		return nil, ErrAccountLocked
	}

	return user, nil
}

// ResolveActingUser turns a session user id into the identity passed to the services.
func (s *AuthService) ResolveActingUser(ctx context.Context, userID uint64) (auth.ActingUser, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return auth.ActingUser{}, ErrSessionUserInvalid
		}
		return auth.ActingUser{}, fmt.Errorf("failed to find user: %w", err)
	}
	if !user.Enabled || user.AccountLocked {
		return auth.ActingUser{}, ErrSessionUserInvalid
	}
	return auth.FromUser(user), nil
}

// AdminInput describes the bootstrap administrator account.
type AdminInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// EnsureAdmin creates the administrator account, or grants the ADMIN role to
// an existing account with the same email.
func (s *AuthService) EnsureAdmin(ctx context.Context, input AdminInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, errors.New("admin email is required")
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if user.Roles.Has(models.RoleAdmin) {
			return user, nil
		}
		user.Roles = append(user.Roles, models.RoleAdmin)
		if err := s.userRepo.Save(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to grant admin role: %w", err)
		}
		s.logger.Info("granted admin role", "user_id", user.ID)
	case errors.Is(err, gorm.ErrRecordNotFound):
		hash, err := s.passwords.Hash(input.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash admin password: %w", err)
		}
		user = &models.User{
			FirstName:    input.FirstName,
			LastName:     input.LastName,
			Email:        email,
			PasswordHash: hash,
			Enabled:      true,
			Roles:        models.Roles{models.RoleUser, models.RoleAdmin},
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to create admin: %w", err)
		}
		s.logger.Info("created admin account", "user_id", user.ID)
	default:
		return nil, fmt.Errorf("failed to find admin: %w", err)
	}

	if err := s.cache.Invalidate(ctx, cache.NamespaceUser); err != nil {
		return nil, err
	}
	return user, nil
}
