package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
	"github.com/yukikurage/task-tracker-api/internal/middleware"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"github.com/yukikurage/task-tracker-api/internal/services"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// ListUsers returns a page of users (administrators only)
func (h *UserHandler) ListUsers(c *gin.Context) {
	actor, ok := actingUser(c)
	if !ok {
		return
	}
	req, ok := pageParams(c)
	if !ok {
		return
	}

	page, err := h.userService.ListUsers(c.Request.Context(), actor, req.Page, req.Size)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	actor, ok := actingUser(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), actor, middleware.GetIDParam(c, "id"))
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	actor, ok := actingUser(c)
	if !ok {
		return
	}

	type UpdateUserRequest struct {
		FirstName *string `json:"first_name" binding:"omitempty,min=1,max=100"`
		LastName  *string `json:"last_name" binding:"omitempty,min=1,max=100"`
		Gender    *string `json:"gender" binding:"omitempty,oneof=MALE FEMALE"`
	}

	var req UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	input := services.UpdateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	if req.Gender != nil {
		gender := models.Gender(*req.Gender)
		input.Gender = &gender
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), actor, middleware.GetIDParam(c, "id"), input)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	actor, ok := actingUser(c)
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), actor, middleware.GetIDParam(c, "id")); err != nil {
		apierrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// UpdatePassword changes the current user's password after checking the old one
func (h *UserHandler) UpdatePassword(c *gin.Context) {
	actor, ok := actingUser(c)
	if !ok {
		return
	}

	type UpdatePasswordRequest struct {
		OldPassword string `json:"old_password" binding:"required"`
		NewPassword string `json:"new_password" binding:"required,min=8"`
	}

	var req UpdatePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	err := h.userService.UpdatePassword(c.Request.Context(), actor, middleware.GetIDParam(c, "id"), services.UpdatePasswordInput{
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}
