package services

import (
	"context"

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

// CommentService handles comment business logic
type CommentService struct {
	commentRepo repository.CommentRepository
	taskRepo    repository.TaskRepository
	userRepo    repository.UserRepository
	cache       *cache.Cache
	audit       recorder
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repository.CommentRepository, taskRepo repository.TaskRepository, userRepo repository.UserRepository, c *cache.Cache, sink audit.Sink) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		taskRepo:    taskRepo,
		userRepo:    userRepo,
		cache:       c,
		audit:       newRecorder(sink, "comment"),
	}
}

// CreateCommentInput represents input for creating a comment
type CreateCommentInput struct {
	TaskID   uint64
	AuthorID uint64
	Content  string
}

// UpdateCommentInput represents input for updating a comment
type UpdateCommentInput struct {
	Content string
}

// CreateComment posts a comment as the acting user. Posting on behalf of
// someone else is rejected before the task is looked up.
func (s *CommentService) CreateComment(ctx context.Context, actor auth.ActingUser, input CreateCommentInput) (result dto.CommentDTO, err error) {
	defer func() { s.audit.record(ctx, "create", result.ID, actor, err) }()

	if err := policy.CommentCreate(actor, input.AuthorID); err != nil {
		return dto.CommentDTO{}, err
	}
	if _, err := resolveTask(ctx, s.taskRepo, input.TaskID); err != nil {
		return dto.CommentDTO{}, err
	}
	if _, err := resolveUser(ctx, s.userRepo, "author", input.AuthorID); err != nil {
		return dto.CommentDTO{}, err
	}

	comment := &models.Comment{
		Content:    input.Content,
		TaskID:     input.TaskID,
		AuthorID:   input.AuthorID,
		CreatedBy:  actor.ID,
		ModifiedBy: actor.ID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return dto.CommentDTO{}, apierrors.Internal(err, "failed to create comment")
	}
	if err := s.cache.Invalidate(ctx, cache.NamespaceComment); err != nil {
		return dto.CommentDTO{}, err
	}

	return dto.ToCommentDTO(*comment), nil
}

// UpdateComment changes the content of a comment. Only its author may update.
func (s *CommentService) UpdateComment(ctx context.Context, actor auth.ActingUser, commentID uint64, input UpdateCommentInput) (result dto.CommentDTO, err error) {
	defer func() { s.audit.record(ctx, "update", commentID, actor, err) }()

	comment, err := s.resolveComment(ctx, commentID)
	if err != nil {
		return dto.CommentDTO{}, err
	}
	if err := policy.CommentUpdate(actor, comment.AuthorID); err != nil {
		return dto.CommentDTO{}, err
	}

	comment.Content = input.Content
	comment.ModifiedBy = actor.ID
	if err := s.commentRepo.Save(ctx, comment); err != nil {
		return dto.CommentDTO{}, writeError(err, "update", "comment", commentID)
	}
	if err := s.cache.Invalidate(ctx, cache.NamespaceComment); err != nil {
		return dto.CommentDTO{}, err
	}

	return dto.ToCommentDTO(*comment), nil
}

// DeleteComment soft-deletes a comment. Only its author may delete.
func (s *CommentService) DeleteComment(ctx context.Context, actor auth.ActingUser, commentID uint64) (err error) {
	defer func() { s.audit.record(ctx, "delete", commentID, actor, err) }()

	comment, err := s.resolveComment(ctx, commentID)
	if err != nil {
		return err
	}
	if err := policy.CommentDelete(actor, comment.AuthorID); err != nil {
		return err
	}

	if err := s.commentRepo.SoftDelete(ctx, commentID, actor.ID); err != nil {
		return writeError(err, "delete", "comment", commentID)
	}
	return s.cache.Invalidate(ctx, cache.NamespaceComment)
}

// GetComment returns a single comment
func (s *CommentService) GetComment(ctx context.Context, actor auth.ActingUser, commentID uint64) (result dto.CommentDTO, err error) {
	defer func() { s.audit.recordFailure(ctx, "read", commentID, actor, err) }()

	if err := policy.CommentRead(actor); err != nil {
		return dto.CommentDTO{}, err
	}
	return cache.Fetch(ctx, s.cache, cache.NewKey(cache.NamespaceComment, "get", commentID), func(ctx context.Context) (dto.CommentDTO, error) {
		comment, err := s.resolveComment(ctx, commentID)
		if err != nil {
			return dto.CommentDTO{}, err
		}
		return dto.ToCommentDTO(*comment), nil
	})
}

// ListComments lists every live comment on a live task
func (s *CommentService) ListComments(ctx context.Context, actor auth.ActingUser, page, size int) (result utils.Page[dto.CommentDTO], err error) {
	defer func() { s.audit.recordFailure(ctx, "list", 0, actor, err) }()

	req, err := utils.NewPageRequest(page, size)
	if err != nil {
		return utils.Page[dto.CommentDTO]{}, err
	}
	if err := policy.CommentRead(actor); err != nil {
		return utils.Page[dto.CommentDTO]{}, err
	}
	return s.fetchPage(ctx, "list", repository.CommentFilter{}, req)
}

// ListCommentsByTask lists the comments of a live task
func (s *CommentService) ListCommentsByTask(ctx context.Context, actor auth.ActingUser, taskID uint64, page, size int) (result utils.Page[dto.CommentDTO], err error) {
	defer func() { s.audit.recordFailure(ctx, "listByTask", taskID, actor, err) }()

	req, err := utils.NewPageRequest(page, size)
	if err != nil {
		return utils.Page[dto.CommentDTO]{}, err
	}
	if _, err := resolveTask(ctx, s.taskRepo, taskID); err != nil {
		return utils.Page[dto.CommentDTO]{}, err
	}
	if err := policy.CommentRead(actor); err != nil {
		return utils.Page[dto.CommentDTO]{}, err
	}
	return s.fetchPage(ctx, "byTask", repository.CommentFilter{TaskID: &taskID}, req, taskID)
}

// ListCommentsByAuthor lists the live comments written by a user
func (s *CommentService) ListCommentsByAuthor(ctx context.Context, actor auth.ActingUser, authorID uint64, page, size int) (result utils.Page[dto.CommentDTO], err error) {
	defer func() { s.audit.recordFailure(ctx, "listByAuthor", authorID, actor, err) }()

	req, err := utils.NewPageRequest(page, size)
	if err != nil {
		return utils.Page[dto.CommentDTO]{}, err
	}
	if err := policy.CommentRead(actor); err != nil {
		return utils.Page[dto.CommentDTO]{}, err
	}
	return s.fetchPage(ctx, "byAuthor", repository.CommentFilter{AuthorID: &authorID}, req, authorID)
}

// ListCommentsByTaskAndAuthor lists one user's comments on a live task
func (s *CommentService) ListCommentsByTaskAndAuthor(ctx context.Context, actor auth.ActingUser, taskID, authorID uint64, page, size int) (result utils.Page[dto.CommentDTO], err error) {
	defer func() { s.audit.recordFailure(ctx, "listByTaskAndAuthor", taskID, actor, err) }()

	req, err := utils.NewPageRequest(page, size)
	if err != nil {
		return utils.Page[dto.CommentDTO]{}, err
	}
	if _, err := resolveTask(ctx, s.taskRepo, taskID); err != nil {
		return utils.Page[dto.CommentDTO]{}, err
	}
	if err := policy.CommentRead(actor); err != nil {
		return utils.Page[dto.CommentDTO]{}, err
	}
	filter := repository.CommentFilter{TaskID: &taskID, AuthorID: &authorID}
	return s.fetchPage(ctx, "byTaskAndAuthor", filter, req, taskID, authorID)
}

func (s *CommentService) resolveComment(ctx context.Context, id uint64) (*models.Comment, error) {
	comment, err := s.commentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "comment", id)
	}
	return comment, nil
}

func (s *CommentService) fetchPage(ctx context.Context, op string, filter repository.CommentFilter, req utils.PageRequest, args ...any) (utils.Page[dto.CommentDTO], error) {
	key := cache.NewKey(cache.NamespaceComment, op, append(args, req.Page, req.Size)...)
	return cache.Fetch(ctx, s.cache, key, func(ctx context.Context) (utils.Page[dto.CommentDTO], error) {
		comments, total, err := s.commentRepo.FindPage(ctx, filter, req)
		if err != nil {
			return utils.Page[dto.CommentDTO]{}, apierrors.Internal(err, "failed to list comments")
		}
		return utils.NewPage(dto.ToCommentDTOs(comments), req, total), nil
	})
}
