package dto

import (
	"prompthub/internal/api/models"
)

// UpdateProfileDTO for PUT /api/v1/users/me (partial updates allowed)
type UpdateProfileDTO struct {
	DisplayName *string `json:"display_name,omitempty" binding:"omitempty,max=100"`
	Bio         *string `json:"bio,omitempty" binding:"omitempty,max=500"`
	AvatarURL   *string `json:"avatar_url,omitempty" binding:"omitempty,max=255,url"`
}

// PaginatedUserResponse for returning paginated user lists (followers,
// following, admin user search)
type PaginatedUserResponse struct {
	Data  []UserResponse `json:"data"`
	Total int64          `json:"total"`
	Skip  int            `json:"skip"`
	Limit int            `json:"limit"`
}

// NewPaginatedUserResponse creates a paginated user response
func NewPaginatedUserResponse(users []models.User, total int64, skip, limit int, includeEmail bool) *PaginatedUserResponse {
	data := make([]UserResponse, 0, len(users))
	for i := range users {
		data = append(data, FromModelToUserResponse(&users[i], includeEmail))
	}
	return &PaginatedUserResponse{
		Data:  data,
		Total: total,
		Skip:  skip,
		Limit: limit,
	}
}

// AdminUpdateUserDTO for PATCH /api/v1/admin/users/:id
type AdminUpdateUserDTO struct {
	IsActive *bool `json:"is_active,omitempty"`
	IsAdmin  *bool `json:"is_admin,omitempty"`
}

// ModeratePromptDTO for PATCH /api/v1/admin/prompts/:id
type ModeratePromptDTO struct {
	IsApproved *bool `json:"is_approved,omitempty"`
	IsFeatured *bool `json:"is_featured,omitempty"`
}
