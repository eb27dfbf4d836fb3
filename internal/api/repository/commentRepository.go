package repository

import (
	"prompthub/internal/api/models"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(comment *models.Comment) error
	Update(comment *models.Comment) error
	SoftDelete(commentID int64) error
	GetByID(commentID int64) (*models.Comment, error)
	GetByPrompt(promptID int64) ([]models.Comment, error)
	GetByUser(userID string, offset, limit int) ([]models.Comment, int64, error)
	Count() (int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create a new comment
func (r *commentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// Update an existing comment
func (r *commentRepository) Update(comment *models.Comment) error {
	return r.db.Save(comment).Error
}

// SoftDelete flags the comment and redacts its content; replies stay attached.
func (r *commentRepository) SoftDelete(commentID int64) error {
	result := r.db.Model(&models.Comment{}).
		Where("id = ?", commentID).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"content":    models.DeletedCommentContent,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetByID retrieves a comment by its ID
func (r *commentRepository) GetByID(commentID int64) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.Where("id = ?", commentID).
		Preload("User").
		First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetByPrompt retrieves every comment on a prompt, oldest first, so the
// service can materialize the reply tree from the adjacency list.
func (r *commentRepository) GetByPrompt(promptID int64) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Where("prompt_id = ?", promptID).
		Preload("User").
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

// GetByUser retrieves all comments by a specific user with pagination
func (r *commentRepository) GetByUser(userID string, offset, limit int) ([]models.Comment, int64, error) {
	var comments []models.Comment
	var total int64

	if err := r.db.Model(&models.Comment{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Where("user_id = ?", userID).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}

func (r *commentRepository) Count() (int64, error) {
	var total int64
	err := r.db.Model(&models.Comment{}).Count(&total).Error
	return total, err
}
