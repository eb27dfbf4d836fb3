package models

import "time"

// DeletedCommentContent replaces the body of a soft-deleted comment so reply
// threads stay intact without exposing the removed text.
const DeletedCommentContent = "[deleted]"

type Comment struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;index"`
	PromptID  int64     `json:"prompt_id" gorm:"not null;index"`
	ParentID  *int64    `json:"parent_id,omitempty" gorm:"index"`
	Content   string    `json:"content" gorm:"not null;type:text"`
	IsDeleted bool      `json:"is_deleted" gorm:"default:false;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	User   User    `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Prompt Prompt  `json:"prompt,omitempty" gorm:"foreignKey:PromptID;constraint:OnDelete:CASCADE;"`
	Parent *Comment `json:"-" gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE;"`
}

func (Comment) TableName() string {
	return "comments"
}
