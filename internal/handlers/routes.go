package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-tracker-api/internal/middleware"
)

// Handlers groups every HTTP handler mounted under /api.
type Handlers struct {
	Auth     *AuthHandler
	Tasks    *TaskHandler
	Comments *CommentHandler
	Users    *UserHandler
}

// RegisterRoutes mounts the API. requireAuth guards every route except login and logout.
func RegisterRoutes(r gin.IRouter, h Handlers, requireAuth gin.HandlerFunc) {
	useJSONFieldNames()

	id := middleware.RequireIDParams("id")

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/logout", h.Auth.Logout)
			auth.GET("/me", requireAuth, h.Auth.GetCurrentUser)
		}

		tasks := api.Group("/tasks")
		tasks.Use(requireAuth)
		{
			tasks.GET("", h.Tasks.ListTasks)
			tasks.POST("", h.Tasks.CreateTask)
			tasks.GET("/by-assignee/:userId", middleware.RequireIDParams("userId"), h.Tasks.ListTasksByAssignee)
			tasks.GET("/by-author/:userId", middleware.RequireIDParams("userId"), h.Tasks.ListTasksByAuthor)
			tasks.GET("/:id", id, h.Tasks.GetTask)
			tasks.PATCH("/:id", id, h.Tasks.UpdateTask)
			tasks.PUT("/:id", id, h.Tasks.UpdateTask)
			tasks.DELETE("/:id", id, h.Tasks.DeleteTask)
		}

		comments := api.Group("/comments")
		comments.Use(requireAuth)
		{
			comments.GET("", h.Comments.ListComments)
			comments.POST("", h.Comments.CreateComment)
			comments.GET("/by-task/:taskId", middleware.RequireIDParams("taskId"), h.Comments.ListCommentsByTask)
			comments.GET("/by-task/:taskId/author/:authorId", middleware.RequireIDParams("taskId", "authorId"), h.Comments.ListCommentsByTaskAndAuthor)
			comments.GET("/by-author/:authorId", middleware.RequireIDParams("authorId"), h.Comments.ListCommentsByAuthor)
			comments.GET("/:id", id, h.Comments.GetComment)
			comments.PATCH("/:id", id, h.Comments.UpdateComment)
			comments.PUT("/:id", id, h.Comments.UpdateComment)
			comments.DELETE("/:id", id, h.Comments.DeleteComment)
		}

		users := api.Group("/users")
		users.Use(requireAuth)
		{
			users.GET("", h.Users.ListUsers)
			users.GET("/:id", id, h.Users.GetUser)
			users.PATCH("/:id", id, h.Users.UpdateUser)
			users.DELETE("/:id", id, h.Users.DeleteUser)
			users.PUT("/:id/password", id, h.Users.UpdatePassword)
		}
	}
}
