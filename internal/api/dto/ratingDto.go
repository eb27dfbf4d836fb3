package dto

import (
	"time"

	"prompthub/internal/api/models"
)

// RateDTO for creating or replacing the caller's rating on a prompt
type RateDTO struct {
	Score int `json:"score" binding:"required,min=1,max=5"`
}

// RatingResponse for returning rating information
type RatingResponse struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	PromptID  int64     `json:"prompt_id"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FromModelToRatingResponse converts a Rating model to RatingResponse DTO
func FromModelToRatingResponse(rating *models.Rating) RatingResponse {
	resp := RatingResponse{
		ID:        rating.ID,
		UserID:    rating.UserID,
		PromptID:  rating.PromptID,
		Score:     rating.Score,
		CreatedAt: rating.CreatedAt,
		UpdatedAt: rating.UpdatedAt,
	}
	if rating.User.ID != "" {
		resp.Username = rating.User.Username
	}
	return resp
}

// PaginatedRatingResponse for returning paginated ratings
type PaginatedRatingResponse struct {
	Data  []RatingResponse `json:"data"`
	Total int64            `json:"total"`
	Skip  int              `json:"skip"`
	Limit int              `json:"limit"`
}

// NewPaginatedRatingResponse creates a paginated rating response
func NewPaginatedRatingResponse(ratings []models.Rating, total int64, skip, limit int) *PaginatedRatingResponse {
	data := make([]RatingResponse, 0, len(ratings))
	for i := range ratings {
		data = append(data, FromModelToRatingResponse(&ratings[i]))
	}
	return &PaginatedRatingResponse{
		Data:  data,
		Total: total,
		Skip:  skip,
		Limit: limit,
	}
}
