// Package services holds the task, comment and user operations. Every method
// resolves the referenced entities, applies the ownership policy, and then
// either writes (persist, evict the cache namespace, audit) or reads through
// the cache.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/task-tracker-api/internal/audit"
	"github.com/yukikurage/task-tracker-api/internal/auth"
	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"github.com/yukikurage/task-tracker-api/internal/repository"
	"gorm.io/gorm"
)

// lookupError turns a repository lookup failure into NotFound naming the entity, or Internal.
func lookupError(err error, entity string, id uint64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apierrors.NotFoundf("%s with id %d not found", entity, id)
	}
	return apierrors.Internal(err, fmt.Sprintf("failed to load %s %d", entity, id))
}

// writeError is lookupError for writes: a row that vanished mid-write is NotFound.
func writeError(err error, action, entity string, id uint64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apierrors.NotFoundf("%s with id %d not found", entity, id)
	}
	return apierrors.Internal(err, fmt.Sprintf("failed to %s %s", action, entity))
}

// resolveUser loads a live user referenced by a request; role names the reference in NotFound.
func resolveUser(ctx context.Context, users repository.UserRepository, role string, id uint64) (*models.User, error) {
	user, err := users.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, role, id)
	}
	return user, nil
}

func resolveTask(ctx context.Context, tasks repository.TaskRepository, id uint64) (*models.Task, error) {
	task, err := tasks.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "task", id)
	}
	return task, nil
}

// recorder emits audit events for one entity kind.
type recorder struct {
	sink   audit.Sink
	entity string
}

func newRecorder(sink audit.Sink, entity string) recorder {
	if sink == nil {
		sink = audit.Nop{}
	}
	return recorder{sink: sink, entity: entity}
}

func (r recorder) record(ctx context.Context, action string, entityID uint64, actor auth.ActingUser, err error) {
	r.sink.Record(ctx, audit.Event{
		Action:   r.entity + "." + action,
		Entity:   r.entity,
		EntityID: entityID,
		ActorID:  actor.ID,
		Err:      err,
	})
}

// recordFailure audits reads only when they fail.
func (r recorder) recordFailure(ctx context.Context, action string, entityID uint64, actor auth.ActingUser, err error) {
	if err != nil {
		r.record(ctx, action, entityID, actor, err)
	}
}
