package dto

import (
	"time"

	"github.com/yukikurage/task-tracker-api/internal/models"
)

// UserDTO represents a user in API responses. The password hash is never included.
type UserDTO struct {
	ID            uint64        `json:"id"`
	FirstName     string        `json:"first_name"`
	LastName      string        `json:"last_name"`
	Email         string        `json:"email"`
	Gender        models.Gender `json:"gender,omitempty"`
	Enabled       bool          `json:"enabled"`
	AccountLocked bool          `json:"account_locked"`
	Roles         []models.Role `json:"roles"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
	CreatedBy     uint64        `json:"created_by"`
	ModifiedBy    uint64        `json:"modified_by"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	roles := make([]models.Role, len(user.Roles))
	copy(roles, user.Roles)
	return UserDTO{
		ID:            user.ID,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		Email:         user.Email,
		Gender:        user.Gender,
		Enabled:       user.Enabled,
		AccountLocked: user.AccountLocked,
		Roles:         roles,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
		CreatedBy:     user.CreatedBy,
		ModifiedBy:    user.ModifiedBy,
	}
}

func ToUserDTOs(users []models.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, user := range users {
		dtos[i] = ToUserDTO(user)
	}
	return dtos
}
