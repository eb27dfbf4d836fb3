package models

import "time"

// PromptLike models likes as a (user, prompt) set. The unique index makes
// like/unlike idempotent; prompts.like_count is adjusted only when a row is
// actually inserted or removed.
type PromptLike struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_prompt_likes_user_prompt"`
	PromptID  int64     `json:"prompt_id" gorm:"not null;uniqueIndex:idx_prompt_likes_user_prompt"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Associations
	User   User   `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Prompt Prompt `json:"prompt,omitempty" gorm:"foreignKey:PromptID;constraint:OnDelete:CASCADE;"`
}

func (PromptLike) TableName() string {
	return "prompt_likes"
}
