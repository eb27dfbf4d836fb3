package models

import "time"

type Follow struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	FollowerID string    `json:"follower_id" gorm:"type:uuid;not null;uniqueIndex:idx_follows_pair"`
	FolloweeID string    `json:"followee_id" gorm:"type:uuid;not null;uniqueIndex:idx_follows_pair"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Associations
	Follower User `json:"follower,omitempty" gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE;"`
	Followee User `json:"followee,omitempty" gorm:"foreignKey:FolloweeID;constraint:OnDelete:CASCADE;"`
}

func (Follow) TableName() string {
	return "follows"
}
