package dto

import (
	"time"

	"prompthub/internal/api/models"
)

// CreateCommentDTO for creating a comment
type CreateCommentDTO struct {
	Content  string `json:"content" binding:"required,min=1,max=5000"`
	ParentID *int64 `json:"parent_id,omitempty"`
}

// CreateCommentDirectDTO for creating a comment with the prompt id in the body
type CreateCommentDirectDTO struct {
	PromptID int64  `json:"prompt_id" binding:"required"`
	Content  string `json:"content" binding:"required,min=1,max=5000"`
	ParentID *int64 `json:"parent_id,omitempty"`
}

// UpdateCommentDTO for updating a comment
type UpdateCommentDTO struct {
	Content string `json:"content" binding:"required,min=1,max=5000"`
}

// CommentResponse for returning a comment, with its replies nested
type CommentResponse struct {
	ID        int64             `json:"id"`
	UserID    string            `json:"user_id"`
	Username  string            `json:"username,omitempty"`
	PromptID  int64             `json:"prompt_id"`
	ParentID  *int64            `json:"parent_id,omitempty"`
	Content   string            `json:"content"`
	IsDeleted bool              `json:"is_deleted"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
	Replies   []CommentResponse `json:"replies"`
}

// FromModelToCommentResponse converts a Comment model to CommentResponse DTO
func FromModelToCommentResponse(comment *models.Comment) CommentResponse {
	resp := CommentResponse{
		ID:        comment.ID,
		UserID:    comment.UserID,
		PromptID:  comment.PromptID,
		ParentID:  comment.ParentID,
		Content:   comment.Content,
		IsDeleted: comment.IsDeleted,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
		Replies:   []CommentResponse{},
	}
	if comment.User.ID != "" {
		resp.Username = comment.User.Username
	}
	return resp
}

// BuildCommentTree nests replies under their parents. Comments must be ordered
// oldest first so sibling order is preserved.
func BuildCommentTree(comments []models.Comment) []CommentResponse {
	known := make(map[int64]bool, len(comments))
	for i := range comments {
		known[comments[i].ID] = true
	}

	children := make(map[int64][]*models.Comment)
	rootIDs := make([]*models.Comment, 0)
	for i := range comments {
		c := &comments[i]
		// an orphaned reply is promoted to a root rather than dropped
		if c.ParentID != nil && known[*c.ParentID] {
			children[*c.ParentID] = append(children[*c.ParentID], c)
		} else {
			rootIDs = append(rootIDs, c)
		}
	}

	var build func(c *models.Comment) CommentResponse
	build = func(c *models.Comment) CommentResponse {
		resp := FromModelToCommentResponse(c)
		for _, child := range children[c.ID] {
			resp.Replies = append(resp.Replies, build(child))
		}
		return resp
	}

	roots := make([]CommentResponse, 0, len(rootIDs))
	for _, c := range rootIDs {
		roots = append(roots, build(c))
	}
	return roots
}

// PaginatedCommentResponse for returning paginated comments (flat, for a
// user's comment history)
type PaginatedCommentResponse struct {
	Data  []CommentResponse `json:"data"`
	Total int64             `json:"total"`
	Skip  int               `json:"skip"`
	Limit int               `json:"limit"`
}

// NewPaginatedCommentResponse creates a paginated comment response
func NewPaginatedCommentResponse(comments []models.Comment, total int64, skip, limit int) *PaginatedCommentResponse {
	data := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		data = append(data, FromModelToCommentResponse(&comments[i]))
	}
	return &PaginatedCommentResponse{
		Data:  data,
		Total: total,
		Skip:  skip,
		Limit: limit,
	}
}
