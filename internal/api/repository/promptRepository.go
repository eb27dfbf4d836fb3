package repository

import (
	"prompthub/internal/api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PromptFilter narrows List results. Zero values mean "no filter".
type PromptFilter struct {
	Category   string
	Tag        string
	UserID     string
	PublicOnly bool
}

type PromptRepository interface {
	Create(prompt *models.Prompt) error
	GetByID(promptID int64) (*models.Prompt, error)
	Update(prompt *models.Prompt) error
	Delete(promptID int64) error
	List(filter PromptFilter, offset, limit int) ([]models.Prompt, int64, error)
	Search(keyword string, offset, limit int) ([]models.Prompt, int64, error)
	Trending(limit int) ([]models.Prompt, error)
	IncrementViewCount(promptID int64) error

	AddLike(userID string, promptID int64) (bool, error)
	RemoveLike(userID string, promptID int64) (bool, error)
	HasLiked(userID string, promptID int64) (bool, error)

	IncrementReportCount(promptID int64) error
	ListReported(offset, limit int) ([]models.Prompt, int64, error)
	Count() (int64, error)
}

type promptRepository struct {
	db *gorm.DB
}

func NewPromptRepository(db *gorm.DB) PromptRepository {
	return &promptRepository{db: db}
}

func (r *promptRepository) Create(prompt *models.Prompt) error {
	return r.db.Create(prompt).Error
}

func (r *promptRepository) GetByID(promptID int64) (*models.Prompt, error) {
	var prompt models.Prompt
	err := r.db.Where("id = ?", promptID).
		Preload("User").
		First(&prompt).Error
	if err != nil {
		return nil, err
	}
	return &prompt, nil
}

func (r *promptRepository) Update(prompt *models.Prompt) error {
	return r.db.Save(prompt).Error
}

// Delete removes a prompt; comments, ratings and likes cascade via FKs.
func (r *promptRepository) Delete(promptID int64) error {
	result := r.db.Where("id = ?", promptID).Delete(&models.Prompt{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *promptRepository) List(filter PromptFilter, offset, limit int) ([]models.Prompt, int64, error) {
	var prompts []models.Prompt
	var total int64

	query := r.db.Model(&models.Prompt{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Tag != "" {
		query = query.Where("tags LIKE ?", "%"+filter.Tag+"%")
	}
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.PublicOnly {
		query = query.Where("is_public = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&prompts).Error
	if err != nil {
		return nil, 0, err
	}

	return prompts, total, nil
}

// Search does a case-insensitive substring match over title, content and tags,
// restricted to public prompts.
func (r *promptRepository) Search(keyword string, offset, limit int) ([]models.Prompt, int64, error) {
	var prompts []models.Prompt
	var total int64

	pattern := "%" + keyword + "%"
	query := r.db.Model(&models.Prompt{}).
		Where("is_public = ?", true).
		Where("LOWER(title) LIKE LOWER(?) OR LOWER(content) LIKE LOWER(?) OR LOWER(tags) LIKE LOWER(?)",
			pattern, pattern, pattern)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&prompts).Error
	if err != nil {
		return nil, 0, err
	}

	return prompts, total, nil
}

func (r *promptRepository) Trending(limit int) ([]models.Prompt, error) {
	var prompts []models.Prompt
	err := r.db.Where("is_public = ?", true).
		Preload("User").
		Order("like_count DESC").
		Limit(limit).
		Find(&prompts).Error
	return prompts, err
}

// IncrementViewCount bumps the counter in SQL so concurrent reads cannot lose
// updates.
func (r *promptRepository) IncrementViewCount(promptID int64) error {
	return r.db.Model(&models.Prompt{}).
		Where("id = ?", promptID).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

// AddLike inserts the (user, prompt) pair and bumps like_count only when the
// pair was actually new. Returns whether anything changed.
func (r *promptRepository) AddLike(userID string, promptID int64) (bool, error) {
	var changed bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.PromptLike{UserID: userID, PromptID: promptID})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil // already liked
		}
		changed = true
		return tx.Model(&models.Prompt{}).
			Where("id = ?", promptID).
			UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error
	})
	return changed, err
}

// RemoveLike deletes the pair and decrements like_count only on a real delete.
func (r *promptRepository) RemoveLike(userID string, promptID int64) (bool, error) {
	var changed bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND prompt_id = ?", userID, promptID).
			Delete(&models.PromptLike{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil // was not liked
		}
		changed = true
		return tx.Model(&models.Prompt{}).
			Where("id = ? AND like_count > 0", promptID).
			UpdateColumn("like_count", gorm.Expr("like_count - 1")).Error
	})
	return changed, err
}

func (r *promptRepository) HasLiked(userID string, promptID int64) (bool, error) {
	var count int64
	err := r.db.Model(&models.PromptLike{}).
		Where("user_id = ? AND prompt_id = ?", userID, promptID).
		Count(&count).Error
	return count > 0, err
}

func (r *promptRepository) IncrementReportCount(promptID int64) error {
	result := r.db.Model(&models.Prompt{}).
		Where("id = ?", promptID).
		UpdateColumn("report_count", gorm.Expr("report_count + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *promptRepository) ListReported(offset, limit int) ([]models.Prompt, int64, error) {
	var prompts []models.Prompt
	var total int64

	query := r.db.Model(&models.Prompt{}).Where("report_count > 0")
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("User").
		Order("report_count DESC").
		Limit(limit).
		Offset(offset).
		Find(&prompts).Error
	if err != nil {
		return nil, 0, err
	}

	return prompts, total, nil
}

func (r *promptRepository) Count() (int64, error) {
	var total int64
	err := r.db.Model(&models.Prompt{}).Count(&total).Error
	return total, err
}
