package dto

import (
	"time"

	"prompthub/internal/api/models"
)

// CreateNotificationDTO for sending a notification to another user
type CreateNotificationDTO struct {
	UserID  string `json:"user_id" binding:"required,uuid"`
	Type    string `json:"type" binding:"required,oneof=comment like follow mention system prompt_share"`
	Content string `json:"content" binding:"required,max=500"`
	Link    string `json:"link" binding:"omitempty,max=500"`
}

// NotificationResponse for returning a single notification
type NotificationResponse struct {
	ID             int64     `json:"id"`
	Type           string    `json:"type"`
	Content        string    `json:"content"`
	Link           string    `json:"link,omitempty"`
	IsRead         bool      `json:"is_read"`
	SenderID       *string   `json:"sender_id,omitempty"`
	SenderUsername string    `json:"sender_username,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// FromModelToNotificationResponse converts a Notification model to its DTO
func FromModelToNotificationResponse(n *models.Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Content:   n.Content,
		Link:      n.Link,
		IsRead:    n.IsRead,
		SenderID:  n.SenderID,
		CreatedAt: n.CreatedAt,
	}
	if n.Sender != nil {
		resp.SenderUsername = n.Sender.Username
	}
	return resp
}

// PaginatedNotificationResponse for returning a page of notifications
type PaginatedNotificationResponse struct {
	Data  []NotificationResponse `json:"data"`
	Skip  int                    `json:"skip"`
	Limit int                    `json:"limit"`
}

// NewPaginatedNotificationResponse creates a paginated notification response
func NewPaginatedNotificationResponse(notifications []models.Notification, skip, limit int) *PaginatedNotificationResponse {
	data := make([]NotificationResponse, 0, len(notifications))
	for i := range notifications {
		data = append(data, FromModelToNotificationResponse(&notifications[i]))
	}
	return &PaginatedNotificationResponse{
		Data:  data,
		Skip:  skip,
		Limit: limit,
	}
}

// UnreadCountResponse for GET /api/v1/notifications/unread-count
type UnreadCountResponse struct {
	UnreadCount int64 `json:"unread_count"`
}
