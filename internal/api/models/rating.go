package models

import "time"

type Rating struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_ratings_user_prompt"`
	PromptID  int64     `json:"prompt_id" gorm:"not null;uniqueIndex:idx_ratings_user_prompt"`
	Score     int       `json:"score" gorm:"not null;check:score >= 1 AND score <= 5"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	User   User   `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Prompt Prompt `json:"prompt,omitempty" gorm:"foreignKey:PromptID;constraint:OnDelete:CASCADE;"`
}

func (Rating) TableName() string {
	return "ratings"
}
