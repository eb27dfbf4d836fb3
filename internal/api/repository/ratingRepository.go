package repository

import (
	"prompthub/internal/api/models"

	"gorm.io/gorm"
)

type RatingRepository interface {
	Create(rating *models.Rating) error
	Update(rating *models.Rating) error
	Delete(userID string, promptID int64) error
	GetByUserAndPrompt(userID string, promptID int64) (*models.Rating, error)
	GetByPrompt(promptID int64, offset, limit int) ([]models.Rating, int64, error)
	CalculateAverage(promptID int64) (float64, int64, error)
	SetPromptAverage(promptID int64, average float64) error
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// Create a new rating
func (r *ratingRepository) Create(rating *models.Rating) error {
	return r.db.Create(rating).Error
}

// Update an existing rating
func (r *ratingRepository) Update(rating *models.Rating) error {
	return r.db.Save(rating).Error
}

// Delete a rating by user and prompt
func (r *ratingRepository) Delete(userID string, promptID int64) error {
	result := r.db.Where("user_id = ? AND prompt_id = ?", userID, promptID).Delete(&models.Rating{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetByUserAndPrompt retrieves a user's rating for a specific prompt
func (r *ratingRepository) GetByUserAndPrompt(userID string, promptID int64) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.Where("user_id = ? AND prompt_id = ?", userID, promptID).
		First(&rating).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// GetByPrompt retrieves all ratings for a specific prompt with pagination
func (r *ratingRepository) GetByPrompt(promptID int64, offset, limit int) ([]models.Rating, int64, error) {
	var ratings []models.Rating
	var total int64

	if err := r.db.Model(&models.Rating{}).Where("prompt_id = ?", promptID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Where("prompt_id = ?", promptID).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&ratings).Error
	if err != nil {
		return nil, 0, err
	}

	return ratings, total, nil
}

// CalculateAverage computes the mean score and count of live ratings.
func (r *ratingRepository) CalculateAverage(promptID int64) (float64, int64, error) {
	var result struct {
		Average float64
		Total   int64
	}

	err := r.db.Model(&models.Rating{}).
		Select("COALESCE(AVG(score), 0) as average, COUNT(*) as total").
		Where("prompt_id = ?", promptID).
		Scan(&result).Error
	if err != nil {
		return 0, 0, err
	}

	return result.Average, result.Total, nil
}

// SetPromptAverage writes the recomputed average back onto the prompt row.
func (r *ratingRepository) SetPromptAverage(promptID int64, average float64) error {
	return r.db.Model(&models.Prompt{}).
		Where("id = ?", promptID).
		UpdateColumn("average_rating", average).Error
}
