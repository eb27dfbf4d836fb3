package dto

import (
	"time"

	"prompthub/internal/api/models"
)

// CreatePromptDTO used for POST /api/v1/prompts
type CreatePromptDTO struct {
	Title       string   `json:"title" binding:"required,min=1,max=200"`
	Content     string   `json:"content" binding:"required,min=1"`
	Description string   `json:"description,omitempty" binding:"max=1000"`
	Category    string   `json:"category,omitempty" binding:"max=50"`
	Tags        []string `json:"tags,omitempty"`
	IsPublic    *bool    `json:"is_public,omitempty"`
}

// UpdatePromptDTO used for PUT /api/v1/prompts/:id (partial updates allowed)
type UpdatePromptDTO struct {
	Title       *string  `json:"title,omitempty" binding:"omitempty,min=1,max=200"`
	Content     *string  `json:"content,omitempty" binding:"omitempty,min=1"`
	Description *string  `json:"description,omitempty" binding:"omitempty,max=1000"`
	Category    *string  `json:"category,omitempty" binding:"omitempty,max=50"`
	Tags        []string `json:"tags,omitempty"`
	IsPublic    *bool    `json:"is_public,omitempty"`
}

// PromptResponse DTO for responses
type PromptResponse struct {
	ID            int64     `json:"id"`
	Slug          string    `json:"slug"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	Description   string    `json:"description,omitempty"`
	Category      string    `json:"category,omitempty"`
	Tags          []string  `json:"tags"`
	ViewCount     int64     `json:"view_count"`
	LikeCount     int64     `json:"like_count"`
	AverageRating float64   `json:"average_rating"`
	IsPublic      bool      `json:"is_public"`
	IsFeatured    bool      `json:"is_featured"`
	LikedByMe     bool      `json:"liked_by_me"`
	UserID        string    `json:"user_id"`
	Username      string    `json:"username,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Converters
func (d CreatePromptDTO) ToModel() models.Prompt {
	prompt := models.Prompt{
		Title:       d.Title,
		Content:     d.Content,
		Description: d.Description,
		Category:    d.Category,
		IsPublic:    true,
	}
	prompt.SetTagList(d.Tags)
	if d.IsPublic != nil {
		prompt.IsPublic = *d.IsPublic
	}
	return prompt
}

func FromModelToPromptResponse(p *models.Prompt) PromptResponse {
	resp := PromptResponse{
		ID:            p.ID,
		Slug:          p.Slug,
		Title:         p.Title,
		Content:       p.Content,
		Description:   p.Description,
		Category:      p.Category,
		Tags:          p.TagList(),
		ViewCount:     p.ViewCount,
		LikeCount:     p.LikeCount,
		AverageRating: p.AverageRating,
		IsPublic:      p.IsPublic,
		IsFeatured:    p.IsFeatured,
		UserID:        p.UserID,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if p.User.ID != "" {
		resp.Username = p.User.Username
	}
	return resp
}

// PaginatedPromptResponse for returning paginated prompts
type PaginatedPromptResponse struct {
	Data  []PromptResponse `json:"data"`
	Total int64            `json:"total"`
	Skip  int              `json:"skip"`
	Limit int              `json:"limit"`
}

// NewPaginatedPromptResponse creates a paginated prompt response
func NewPaginatedPromptResponse(prompts []models.Prompt, total int64, skip, limit int) *PaginatedPromptResponse {
	data := make([]PromptResponse, 0, len(prompts))
	for i := range prompts {
		data = append(data, FromModelToPromptResponse(&prompts[i]))
	}
	return &PaginatedPromptResponse{
		Data:  data,
		Total: total,
		Skip:  skip,
		Limit: limit,
	}
}
