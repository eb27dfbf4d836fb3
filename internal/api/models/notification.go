package models

import "time"

// Notification types, one per triggering action.
const (
	NotificationTypeComment     = "comment"
	NotificationTypeLike        = "like"
	NotificationTypeFollow      = "follow"
	NotificationTypeMention     = "mention"
	NotificationTypeSystem      = "system"
	NotificationTypePromptShare = "prompt_share"
)

type Notification struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"` // recipient
	SenderID  *string   `gorm:"type:uuid" json:"sender_id,omitempty"`    // nil for system notifications
	Type      string    `gorm:"not null" json:"type"`
	Content   string    `gorm:"size:500;not null" json:"content"`
	Link      string    `gorm:"size:255" json:"link,omitempty"`
	IsRead    bool      `gorm:"default:false;not null" json:"is_read"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	// Associations
	User   *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Sender *User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
}

func (Notification) TableName() string {
	return "notifications"
}
