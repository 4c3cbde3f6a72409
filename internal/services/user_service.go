package services

import (
	"context"
	"errors"

	"github.com/yukikurage/task-tracker-api/internal/audit"
	"github.com/yukikurage/task-tracker-api/internal/auth"
	"github.com/yukikurage/task-tracker-api/internal/cache"
	"github.com/yukikurage/task-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"github.com/yukikurage/task-tracker-api/internal/policy"
	"github.com/yukikurage/task-tracker-api/internal/repository"
	"github.com/yukikurage/task-tracker-api/internal/utils"
)

// UserService handles user profile business logic
type UserService struct {
	userRepo  repository.UserRepository
	passwords auth.PasswordVerifier
	cache     *cache.Cache
	audit     recorder
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository, passwords auth.PasswordVerifier, c *cache.Cache, sink audit.Sink) *UserService {
	return &UserService{
		userRepo:  userRepo,
		passwords: passwords,
		cache:     c,
		audit:     newRecorder(sink, "user"),
	}
}

// UpdateUserInput represents input for updating a profile. Nil fields are left unchanged.
type UpdateUserInput struct {
	FirstName *string
	LastName  *string
	Gender    *models.Gender
}

// UpdatePasswordInput carries the current password for re-authentication and its replacement.
type UpdatePasswordInput struct {
	OldPassword string
	NewPassword string
}

// GetUser returns a user to themselves or to an administrator
func (s *UserService) GetUser(ctx context.Context, actor auth.ActingUser, userID uint64) (result dto.UserDTO, err error) {
	defer func() { s.audit.recordFailure(ctx, "read", userID, actor, err) }()

	user, err := cache.Fetch(ctx, s.cache, cache.NewKey(cache.NamespaceUser, "get", userID), func(ctx context.Context) (dto.UserDTO, error) {
		u, err := resolveUser(ctx, s.userRepo, "user", userID)
		if err != nil {
			return dto.UserDTO{}, err
		}
		return dto.ToUserDTO(*u), nil
	})
	if err != nil {
		return dto.UserDTO{}, err
	}
	if err := policy.UserRead(actor, userID); err != nil {
		return dto.UserDTO{}, err
	}
	return user, nil
}

// ListUsers lists every live user. Administrators only.
func (s *UserService) ListUsers(ctx context.Context, actor auth.ActingUser, page, size int) (result utils.Page[dto.UserDTO], err error) {
	defer func() { s.audit.recordFailure(ctx, "list", 0, actor, err) }()

	req, err := utils.NewPageRequest(page, size)
	if err != nil {
		return utils.Page[dto.UserDTO]{}, err
	}
	if err := policy.UserListAll(actor); err != nil {
		return utils.Page[dto.UserDTO]{}, err
	}

	key := cache.NewKey(cache.NamespaceUser, "list", req.Page, req.Size)
	return cache.Fetch(ctx, s.cache, key, func(ctx context.Context) (utils.Page[dto.UserDTO], error) {
		users, total, err := s.userRepo.FindPage(ctx, req)
		if err != nil {
			return utils.Page[dto.UserDTO]{}, apierrors.Internal(err, "failed to list users")
		}
		return utils.NewPage(dto.ToUserDTOs(users), req, total), nil
	})
}

// UpdateUser updates the name and gender of a user
func (s *UserService) UpdateUser(ctx context.Context, actor auth.ActingUser, userID uint64, input UpdateUserInput) (result dto.UserDTO, err error) {
	defer func() { s.audit.record(ctx, "update", userID, actor, err) }()

	if input.Gender != nil && !input.Gender.IsValid() {
		return dto.UserDTO{}, apierrors.InvalidArgumentf("invalid gender %q", *input.Gender)
	}

	user, err := resolveUser(ctx, s.userRepo, "user", userID)
	if err != nil {
		return dto.UserDTO{}, err
	}
	if err := policy.UserUpdate(actor, userID); err != nil {
		return dto.UserDTO{}, err
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Gender != nil {
		user.Gender = *input.Gender
	}
	user.ModifiedBy = actor.ID

	if err := s.userRepo.Save(ctx, user); err != nil {
		return dto.UserDTO{}, writeError(err, "update", "user", userID)
	}
	if err := s.cache.Invalidate(ctx, cache.NamespaceUser); err != nil {
		return dto.UserDTO{}, err
	}
	return dto.ToUserDTO(*user), nil
}

// DeleteUser soft-deletes and disables a user
func (s *UserService) DeleteUser(ctx context.Context, actor auth.ActingUser, userID uint64) (err error) {
	defer func() { s.audit.record(ctx, "delete", userID, actor, err) }()

	if _, err := resolveUser(ctx, s.userRepo, "user", userID); err != nil {
		return err
	}
	if err := policy.UserDelete(actor, userID); err != nil {
		return err
	}

	if err := s.userRepo.SoftDelete(ctx, userID, actor.ID); err != nil {
		return writeError(err, "delete", "user", userID)
	}
	return s.cache.Invalidate(ctx, cache.NamespaceUser)
}

// UpdatePassword replaces the acting user's password after re-checking the old one.
// A wrong old password is Forbidden and leaves the stored hash unchanged.
func (s *UserService) UpdatePassword(ctx context.Context, actor auth.ActingUser, userID uint64, input UpdatePasswordInput) (err error) {
	defer func() { s.audit.record(ctx, "updatePassword", userID, actor, err) }()

	user, err := resolveUser(ctx, s.userRepo, "user", userID)
	if err != nil {
		return err
	}
	if err := policy.PasswordUpdate(actor, userID); err != nil {
		return err
	}
	if err := s.passwords.Verify(user.PasswordHash, input.OldPassword); err != nil {
		return apierrors.Forbiddenf("old password is incorrect")
	}

	hash, err := s.passwords.Hash(input.NewPassword)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooShort) {
			return apierrors.InvalidArgumentf("%s", err.Error())
		}
		return apierrors.Internal(err, "failed to hash password")
	}

	user.PasswordHash = hash
	user.ModifiedBy = actor.ID
	if err := s.userRepo.Save(ctx, user); err != nil {
		return writeError(err, "update password of", "user", userID)
	}
	return s.cache.Invalidate(ctx, cache.NamespaceUser)
}
