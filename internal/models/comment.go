package models

import (
	"time"

	"gorm.io/gorm"
)

type Comment struct {
	ID         uint64         `gorm:"primarykey" json:"id"`
	Content    string         `gorm:"type:text;not null" json:"content"`
	TaskID     uint64         `gorm:"not null;index;<-:create" json:"task_id"`
	AuthorID   uint64         `gorm:"not null;index;<-:create" json:"author_id"`
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	CreatedBy  uint64         `gorm:"not null;default:0;<-:create" json:"created_by"`
	ModifiedBy uint64         `gorm:"not null;default:0" json:"modified_by"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Task   Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	Author User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

// IsDeleted reports whether the comment has been soft-deleted.
func (c *Comment) IsDeleted() bool {
	return c.DeletedAt.Valid
}
