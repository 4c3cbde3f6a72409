package models

import (
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

// IsValid reports whether g is one of the supported genders.
func (g Gender) IsValid() bool {
	return g == GenderMale || g == GenderFemale
}

// Roles is the set of roles granted to a user, stored as a JSON array.
type Roles []Role

// Has reports whether r is present in the set.
func (rs Roles) Has(r Role) bool {
	for _, role := range rs {
		if role == r {
			return true
		}
	}
	return false
}

type User struct {
	ID            uint64         `gorm:"primarykey" json:"id"`
	FirstName     string         `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName      string         `gorm:"type:varchar(100);not null" json:"last_name"`
	Email         string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash  string         `gorm:"type:varchar(255);not null" json:"-"`
	Gender        Gender         `gorm:"type:varchar(10)" json:"gender"`
	Enabled       bool           `gorm:"not null;default:true" json:"enabled"`
	AccountLocked bool           `gorm:"not null;default:false" json:"account_locked"`
	Roles         Roles          `gorm:"type:text;serializer:json" json:"roles"`
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	CreatedBy     uint64         `gorm:"not null;default:0;<-:create" json:"created_by"`
	ModifiedBy    uint64         `gorm:"not null;default:0" json:"modified_by"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	AuthoredTasks []Task    `gorm:"foreignKey:AuthorID" json:"-"`
	AssignedTasks []Task    `gorm:"foreignKey:AssigneeID" json:"-"`
	Comments      []Comment `gorm:"foreignKey:AuthorID" json:"-"`
}

// IsDeleted reports whether the user has been soft-deleted.
func (u *User) IsDeleted() bool {
	return u.DeletedAt.Valid
}
