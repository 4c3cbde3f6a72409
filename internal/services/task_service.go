package services

import (
	"context"

	"github.com/yukikurage/task-tracker-api/internal/audit"
	"github.com/yukikurage/task-tracker-api/internal/auth"
	"github.com/yukikurage/task-tracker-api/internal/cache"
	"github.com/yukikurage/task-tracker-api/internal/config"
	"github.com/yukikurage/task-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"github.com/yukikurage/task-tracker-api/internal/policy"
	"github.com/yukikurage/task-tracker-api/internal/repository"
	"github.com/yukikurage/task-tracker-api/internal/utils"
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo  repository.TaskRepository
	userRepo  repository.UserRepository
	cache     *cache.Cache
	audit     recorder
	listScope string
}

// NewTaskService creates a new TaskService. A nil cache disables caching.
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository, c *cache.Cache, sink audit.Sink) *TaskService {
	return &TaskService{
		taskRepo:  taskRepo,
		userRepo:  userRepo,
		cache:     c,
		audit:     newRecorder(sink, "task"),
		listScope: config.TaskListScopeAll,
	}
}

// WithListScope restricts the unfiltered listings (all, by priority, by
// status) to tasks the acting user authored or is assigned to when scope is
// config.TaskListScopeParticipant.
func (s *TaskService) WithListScope(scope string) *TaskService {
	s.listScope = scope
	return s
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
	Status      models.TaskStatus
	Priority    models.TaskPriority
	AuthorID    uint64
	AssigneeID  uint64
}

// UpdateTaskInput represents input for updating a task. Nil fields are left unchanged.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *models.TaskStatus
	Priority    *models.TaskPriority
}

// CreateTask creates a task authored by the acting user for another assignee
func (s *TaskService) CreateTask(ctx context.Context, actor auth.ActingUser, input CreateTaskInput) (result dto.TaskDTO, err error) {
	defer func() { s.audit.record(ctx, "create", result.ID, actor, err) }()

	if input.Status == "" {
		input.Status = models.TaskStatusTodo
	}
	if input.Priority == "" {
		input.Priority = models.TaskPriorityMedium
	}
	if err := validateStatus(input.Status); err != nil {
		return dto.TaskDTO{}, err
	}
	if err := validatePriority(input.Priority); err != nil {
		return dto.TaskDTO{}, err
	}
	if err := policy.TaskCreate(actor, input.AuthorID, input.AssigneeID); err != nil {
		return dto.TaskDTO{}, err
	}

	if _, err := resolveUser(ctx, s.userRepo, "author", input.AuthorID); err != nil {
		return dto.TaskDTO{}, err
	}
	if _, err := resolveUser(ctx, s.userRepo, "assignee", input.AssigneeID); err != nil {
		return dto.TaskDTO{}, err
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		AuthorID:    input.AuthorID,
		AssigneeID:  input.AssigneeID,
		CreatedBy:   actor.ID,
		ModifiedBy:  actor.ID,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return dto.TaskDTO{}, apierrors.Internal(err, "failed to create task")
	}
	if err := s.cache.Invalidate(ctx, cache.NamespaceTask); err != nil {
		return dto.TaskDTO{}, err
	}

	return dto.ToTaskDTO(*task), nil
}

// UpdateTask updates title, description, status and priority. Only the author may update.
func (s *TaskService) UpdateTask(ctx context.Context, actor auth.ActingUser, taskID uint64, input UpdateTaskInput) (result dto.TaskDTO, err error) {
	defer func() { s.audit.record(ctx, "update", taskID, actor, err) }()

	if input.Status != nil {
		if err := validateStatus(*input.Status); err != nil {
			return dto.TaskDTO{}, err
		}
	}
	if input.Priority != nil {
		if err := validatePriority(*input.Priority); err != nil {
			return dto.TaskDTO{}, err
		}
	}

	task, err := resolveTask(ctx, s.taskRepo, taskID)
	if err != nil {
		return dto.TaskDTO{}, err
	}
	if err := policy.TaskUpdate(actor, task.AuthorID); err != nil {
		return dto.TaskDTO{}, err
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		task.Status = *input.Status
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	task.ModifiedBy = actor.ID

	if err := s.taskRepo.Save(ctx, task); err != nil {
		return dto.TaskDTO{}, writeError(err, "update", "task", taskID)
	}
	if err := s.cache.Invalidate(ctx, cache.NamespaceTask); err != nil {
		return dto.TaskDTO{}, err
	}

	return dto.ToTaskDTO(*task), nil
}

// DeleteTask soft-deletes a task. Its comments become unreachable, so the
// comment namespace is evicted too.
func (s *TaskService) DeleteTask(ctx context.Context, actor auth.ActingUser, taskID uint64) (err error) {
	defer func() { s.audit.record(ctx, "delete", taskID, actor, err) }()

	task, err := resolveTask(ctx, s.taskRepo, taskID)
	if err != nil {
		return err
	}
	if err := policy.TaskDelete(actor, task.AuthorID); err != nil {
		return err
	}

	if err := s.taskRepo.SoftDelete(ctx, taskID, actor.ID); err != nil {
		return writeError(err, "delete", "task", taskID)
	}
	return s.cache.Invalidate(ctx, cache.NamespaceTask, cache.NamespaceComment)
}

// GetTask returns a task visible to its author or assignee
func (s *TaskService) GetTask(ctx context.Context, actor auth.ActingUser, taskID uint64) (result dto.TaskDTO, err error) {
	defer func() { s.audit.recordFailure(ctx, "read", taskID, actor, err) }()

	task, err := cache.Fetch(ctx, s.cache, cache.NewKey(cache.NamespaceTask, "get", taskID), func(ctx context.Context) (dto.TaskDTO, error) {
		t, err := resolveTask(ctx, s.taskRepo, taskID)
		if err != nil {
			return dto.TaskDTO{}, err
		}
		return dto.ToTaskDTO(*t), nil
	})
	if err != nil {
		return dto.TaskDTO{}, err
	}
	if err := policy.TaskRead(actor, task.AuthorID, task.AssigneeID); err != nil {
		return dto.TaskDTO{}, err
	}
	return task, nil
}

// ListTasks lists every live task
func (s *TaskService) ListTasks(ctx context.Context, actor auth.ActingUser, page, size int) (result utils.Page[dto.TaskDTO], err error) {
	defer func() { s.audit.recordFailure(ctx, "list", 0, actor, err) }()

	return s.listUnfiltered(ctx, actor, "list", repository.TaskFilter{}, page, size)
}

// ListTasksByPriority lists live tasks with the given priority
func (s *TaskService) ListTasksByPriority(ctx context.Context, actor auth.ActingUser, priority models.TaskPriority, page, size int) (result utils.Page[dto.TaskDTO], err error) {
	defer func() { s.audit.recordFailure(ctx, "listByPriority", 0, actor, err) }()

	if err := validatePriority(priority); err != nil {
		return utils.Page[dto.TaskDTO]{}, err
	}
	return s.listUnfiltered(ctx, actor, "byPriority", repository.TaskFilter{Priority: &priority}, page, size, priority)
}

// ListTasksByStatus lists live tasks with the given status
func (s *TaskService) ListTasksByStatus(ctx context.Context, actor auth.ActingUser, status models.TaskStatus, page, size int) (result utils.Page[dto.TaskDTO], err error) {
	defer func() { s.audit.recordFailure(ctx, "listByStatus", 0, actor, err) }()

	if err := validateStatus(status); err != nil {
		return utils.Page[dto.TaskDTO]{}, err
	}
	return s.listUnfiltered(ctx, actor, "byStatus", repository.TaskFilter{Status: &status}, page, size, status)
}

// ListTasksByAssignee lists the tasks assigned to the acting user
func (s *TaskService) ListTasksByAssignee(ctx context.Context, actor auth.ActingUser, assigneeID uint64, page, size int) (result utils.Page[dto.TaskDTO], err error) {
	defer func() { s.audit.recordFailure(ctx, "listByAssignee", assigneeID, actor, err) }()

	req, err := utils.NewPageRequest(page, size)
	if err != nil {
		return utils.Page[dto.TaskDTO]{}, err
	}
	if err := policy.TaskListByAssignee(actor, assigneeID); err != nil {
		return utils.Page[dto.TaskDTO]{}, err
	}
	return s.fetchPage(ctx, "byAssignee", repository.TaskFilter{AssigneeID: &assigneeID}, req, assigneeID)
}

// ListTasksByAuthor lists the tasks authored by the acting user
func (s *TaskService) ListTasksByAuthor(ctx context.Context, actor auth.ActingUser, authorID uint64, page, size int) (result utils.Page[dto.TaskDTO], err error) {
	defer func() { s.audit.recordFailure(ctx, "listByAuthor", authorID, actor, err) }()

	req, err := utils.NewPageRequest(page, size)
	if err != nil {
		return utils.Page[dto.TaskDTO]{}, err
	}
	if err := policy.TaskListByAuthor(actor, authorID); err != nil {
		return utils.Page[dto.TaskDTO]{}, err
	}
	return s.fetchPage(ctx, "byAuthor", repository.TaskFilter{AuthorID: &authorID}, req, authorID)
}

func (s *TaskService) listUnfiltered(ctx context.Context, actor auth.ActingUser, op string, filter repository.TaskFilter, page, size int, args ...any) (utils.Page[dto.TaskDTO], error) {
	req, err := utils.NewPageRequest(page, size)
	if err != nil {
		return utils.Page[dto.TaskDTO]{}, err
	}
	if err := policy.TaskListAll(actor); err != nil {
		return utils.Page[dto.TaskDTO]{}, err
	}
	if s.listScope == config.TaskListScopeParticipant {
		filter.ParticipantID = &actor.ID
		args = append(args, "participant", actor.ID)
	}
	return s.fetchPage(ctx, op, filter, req, args...)
}

func (s *TaskService) fetchPage(ctx context.Context, op string, filter repository.TaskFilter, req utils.PageRequest, args ...any) (utils.Page[dto.TaskDTO], error) {
	key := cache.NewKey(cache.NamespaceTask, op, append(args, req.Page, req.Size)...)
	return cache.Fetch(ctx, s.cache, key, func(ctx context.Context) (utils.Page[dto.TaskDTO], error) {
		tasks, total, err := s.taskRepo.FindPage(ctx, filter, req)
		if err != nil {
			return utils.Page[dto.TaskDTO]{}, apierrors.Internal(err, "failed to list tasks")
		}
		return utils.NewPage(dto.ToTaskDTOs(tasks), req, total), nil
	})
}

func validateStatus(status models.TaskStatus) error {
	if !status.IsValid() {
		return apierrors.InvalidArgumentf("invalid task status %q", status)
	}
	return nil
}

func validatePriority(priority models.TaskPriority) error {
	if !priority.IsValid() {
		return apierrors.InvalidArgumentf("invalid task priority %q", priority)
	}
	return nil
}
