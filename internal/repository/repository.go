package repository

import (
	"context"

	"github.com/yukikurage/task-tracker-api/internal/models"
	"github.com/yukikurage/task-tracker-api/internal/utils"
)

// Every repository excludes soft-deleted rows unless a method says otherwise.
// Missing rows are reported as gorm.ErrRecordNotFound.

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a live user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByIDUnscoped finds a user by ID including soft-deleted ones
	FindByIDUnscoped(ctx context.Context, id uint64) (*models.User, error)

	// FindByEmail finds a live user by email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// FindPage lists live users, newest first
	FindPage(ctx context.Context, req utils.PageRequest) ([]models.User, int64, error)

	// Save persists the mutable fields of an existing user
	Save(ctx context.Context, user *models.User) error

	// SoftDelete marks a user deleted and disabled
	SoftDelete(ctx context.Context, id, actorID uint64) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(ctx context.Context, task *models.Task) error

	// FindByID finds a live task by ID
	FindByID(ctx context.Context, id uint64) (*models.Task, error)

	// FindPage lists live tasks matching filter, newest first
	FindPage(ctx context.Context, filter TaskFilter, req utils.PageRequest) ([]models.Task, int64, error)

	// Save persists the mutable fields of an existing task
	Save(ctx context.Context, task *models.Task) error

	// SoftDelete marks a task deleted
	SoftDelete(ctx context.Context, id, actorID uint64) error
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	AuthorID   *uint64
	AssigneeID *uint64
	Status     *models.TaskStatus
	Priority   *models.TaskPriority
	// ParticipantID matches tasks authored by or assigned to the user.
	ParticipantID *uint64
}

// CommentRepository defines the interface for comment data access.
// Comments whose task is soft-deleted are treated as missing.
type CommentRepository interface {
	// Create creates a new comment
	Create(ctx context.Context, comment *models.Comment) error

	// FindByID finds a live comment on a live task
	FindByID(ctx context.Context, id uint64) (*models.Comment, error)

	// FindPage lists live comments matching filter, newest first
	FindPage(ctx context.Context, filter CommentFilter, req utils.PageRequest) ([]models.Comment, int64, error)

	// Save persists the mutable fields of an existing comment
	Save(ctx context.Context, comment *models.Comment) error

	// SoftDelete marks a comment deleted
	SoftDelete(ctx context.Context, id, actorID uint64) error
}

// CommentFilter holds filtering options for listing comments
type CommentFilter struct {
	TaskID   *uint64
	AuthorID *uint64
}
