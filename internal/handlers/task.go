package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
	"github.com/yukikurage/task-tracker-api/internal/middleware"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"github.com/yukikurage/task-tracker-api/internal/services"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns a page of tasks. Optional priority or status query
// parameters narrow the listing; priority wins when both are given.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	actor, ok := actingUser(c)
	if !ok {
		return
	}
	req, ok := pageParams(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	var (
		page interface{}
		err  error
	)
	switch {
	case c.Query("priority") != "":
		page, err = h.taskService.ListTasksByPriority(ctx, actor, models.TaskPriority(c.Query("priority")), req.Page, req.Size)
	case c.Query("status") != "":
		page, err = h.taskService.ListTasksByStatus(ctx, actor, models.TaskStatus(c.Query("status")), req.Page, req.Size)
	default:
		page, err = h.taskService.ListTasks(ctx, actor, req.Page, req.Size)
	}
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// ListTasksByAssignee returns the tasks assigned to the current user
func (h *TaskHandler) ListTasksByAssignee(c *gin.Context) {
	actor, ok := actingUser(c)
	if !ok {
		return
	}
	req, ok := pageParams(c)
	if !ok {
		return
	}

	page, err := h.taskService.ListTasksByAssignee(c.Request.Context(), actor, middleware.GetIDParam(c, "userId"), req.Page, req.Size)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// ListTasksByAuthor returns the tasks authored by the current user
func (h *TaskHandler) ListTasksByAuthor(c *gin.Context) {
	actor, ok := actingUser(c)
	if !ok {
		return
	}
	req, ok := pageParams(c)
	if !ok {
		return
	}

	page, err := h.taskService.ListTasksByAuthor(c.Request.Context(), actor, middleware.GetIDParam(c, "userId"), req.Page, req.Size)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetTask returns a specific task by ID
func (h *TaskHandler) GetTask(c *gin.Context) {
	actor, ok := actingUser(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), actor, middleware.GetIDParam(c, "id"))
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	actor, ok := actingUser(c)
	if !ok {
		return
	}

	type CreateTaskRequest struct {
		Title       string `json:"title" binding:"required,min=3,max=255"`
		Description string `json:"description" binding:"required,min=3"`
		Status      string `json:"status" binding:"omitempty,oneof=TODO IN_PROGRESS DONE"`
		Priority    string `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
		AuthorID    uint64 `json:"author_id" binding:"required"`
		AssigneeID  uint64 `json:"assignee_id" binding:"required"`
	}

	var req CreateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), actor, services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      models.TaskStatus(req.Status),
		Priority:    models.TaskPriority(req.Priority),
		AuthorID:    req.AuthorID,
		AssigneeID:  req.AssigneeID,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// UpdateTask updates title, description, status or priority of a task
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	actor, ok := actingUser(c)
	if !ok {
		return
	}

	type UpdateTaskRequest struct {
		Title       *string `json:"title" binding:"omitempty,min=3,max=255"`
		Description *string `json:"description" binding:"omitempty,min=3"`
		Status      *string `json:"status" binding:"omitempty,oneof=TODO IN_PROGRESS DONE"`
		Priority    *string `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
	}

	var req UpdateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	input := services.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Status != nil {
		status := models.TaskStatus(*req.Status)
		input.Status = &status
	}
	if req.Priority != nil {
		priority := models.TaskPriority(*req.Priority)
		input.Priority = &priority
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), actor, middleware.GetIDParam(c, "id"), input)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// DeleteTask soft-deletes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	actor, ok := actingUser(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), actor, middleware.GetIDParam(c, "id")); err != nil {
		apierrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}
