package dto

import (
	"time"

	"github.com/yukikurage/task-tracker-api/internal/models"
)

// CommentDTO represents a comment in API responses
type CommentDTO struct {
	ID         uint64    `json:"id"`
	Content    string    `json:"content"`
	TaskID     uint64    `json:"task_id"`
	AuthorID   uint64    `json:"author_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	CreatedBy  uint64    `json:"created_by"`
	ModifiedBy uint64    `json:"modified_by"`
}

func ToCommentDTO(comment models.Comment) CommentDTO {
	return CommentDTO{
		ID:         comment.ID,
		Content:    comment.Content,
		TaskID:     comment.TaskID,
		AuthorID:   comment.AuthorID,
		CreatedAt:  comment.CreatedAt,
		UpdatedAt:  comment.UpdatedAt,
		CreatedBy:  comment.CreatedBy,
		ModifiedBy: comment.ModifiedBy,
	}
}

func ToCommentDTOs(comments []models.Comment) []CommentDTO {
	dtos := make([]CommentDTO, len(comments))
	for i, comment := range comments {
		dtos[i] = ToCommentDTO(comment)
	}
	return dtos
}
