package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
	"github.com/yukikurage/task-tracker-api/internal/middleware"
	"github.com/yukikurage/task-tracker-api/internal/services"
)

type CommentHandler struct {
	commentService *services.CommentService
}

func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

func (h *CommentHandler) ListComments(c *gin.Context) {
	actor, ok := actingUser(c)
	if !ok {
		return
	}
	req, ok := pageParams(c)
	if !ok {
		return
	}

	page, err := h.commentService.ListComments(c.Request.Context(), actor, req.Page, req.Size)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *CommentHandler) ListCommentsByTask(c *gin.Context) {
	actor, ok := actingUser(c)
	if !ok {
		return
	}
	req, ok := pageParams(c)
	if !ok {
		return
	}

	page, err := h.commentService.ListCommentsByTask(c.Request.Context(), actor, middleware.GetIDParam(c, "taskId"), req.Page, req.Size)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *CommentHandler) ListCommentsByAuthor(c *gin.Context) {
	actor, ok := actingUser(c)
	if !ok {
		return
	}
	req, ok := pageParams(c)
	if !ok {
		return
	}

	page, err := h.commentService.ListCommentsByAuthor(c.Request.Context(), actor, middleware.GetIDParam(c, "authorId"), req.Page, req.Size)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *CommentHandler) ListCommentsByTaskAndAuthor(c *gin.Context) {
	actor, ok := actingUser(c)
	if !ok {
		return
	}
	req, ok := pageParams(c)
	if !ok {
		return
	}

	page, err := h.commentService.ListCommentsByTaskAndAuthor(
		c.Request.Context(),
		actor,
		middleware.GetIDParam(c, "taskId"),
		middleware.GetIDParam(c, "authorId"),
		req.Page,
		req.Size,
	)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *CommentHandler) GetComment(c *gin.Context) {
	actor, ok := actingUser(c)
	if !ok {
		return
	}

	comment, err := h.commentService.GetComment(c.Request.Context(), actor, middleware.GetIDParam(c, "id"))
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
	actor, ok := actingUser(c)
	if !ok {
		return
	}

	type CreateCommentRequest struct {
		TaskID   uint64 `json:"task_id" binding:"required"`
		AuthorID uint64 `json:"author_id" binding:"required"`
		Content  string `json:"content" binding:"required,min=1,max=1000"`
	}

	var req CreateCommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := h.commentService.CreateComment(c.Request.Context(), actor, services.CreateCommentInput{
		TaskID:   req.TaskID,
		AuthorID: req.AuthorID,
		Content:  req.Content,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (h *CommentHandler) UpdateComment(c *gin.Context) {
	actor, ok := actingUser(c)
	if !ok {
		return
	}

	type UpdateCommentRequest struct {
		Content string `json:"content" binding:"required,min=1,max=1000"`
	}

	var req UpdateCommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := h.commentService.UpdateComment(c.Request.Context(), actor, middleware.GetIDParam(c, "id"), services.UpdateCommentInput{
		Content: req.Content,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	actor, ok := actingUser(c)
	if !ok {
		return
	}

	if err := h.commentService.DeleteComment(c.Request.Context(), actor, middleware.GetIDParam(c, "id")); err != nil {
		apierrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}
