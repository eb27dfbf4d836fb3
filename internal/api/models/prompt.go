package models

import (
	"strings"
	"time"
)

type Prompt struct {
	ID          int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string `json:"title" gorm:"not null;index"`
	Slug        string `json:"slug" gorm:"uniqueIndex"`
	Content     string `json:"content" gorm:"not null;type:text"`
	Description string `json:"description" gorm:"type:text"`
	Category    string `json:"category" gorm:"index"`
	Tags        string `json:"-" gorm:"size:500"` // comma-joined, order preserving

	ViewCount     int64   `json:"view_count" gorm:"default:0;not null"`
	LikeCount     int64   `json:"like_count" gorm:"default:0;not null"`
	AverageRating float64 `json:"average_rating" gorm:"default:0;not null"`
	ReportCount   int64   `json:"report_count" gorm:"default:0;not null"`

	IsPublic   bool `json:"is_public" gorm:"default:true;not null"`
	IsFeatured bool `json:"is_featured" gorm:"default:false;not null"`
	IsApproved bool `json:"is_approved" gorm:"default:true;not null"`

	UserID    string    `json:"user_id" gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	User User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
}

func (Prompt) TableName() string {
	return "prompts"
}

// TagList splits the stored tags back into a slice, preserving insertion order.
func (p *Prompt) TagList() []string {
	if p.Tags == "" {
		return []string{}
	}
	return strings.Split(p.Tags, ",")
}

// SetTagList stores the given tags as a comma-joined string.
func (p *Prompt) SetTagList(tags []string) {
	cleaned := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t != "" {
			cleaned = append(cleaned, t)
		}
	}
	p.Tags = strings.Join(cleaned, ",")
}
