package repository

import (
	"prompthub/internal/api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FollowRepository interface {
	Create(followerID, followeeID string) (bool, error)
	Delete(followerID, followeeID string) (bool, error)
	Exists(followerID, followeeID string) (bool, error)
	Followers(userID string, offset, limit int) ([]models.User, int64, error)
	Following(userID string, offset, limit int) ([]models.User, int64, error)
}

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// Create inserts the follow edge; a duplicate is a no-op.
func (r *followRepository) Create(followerID, followeeID string) (bool, error) {
	result := r.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Follow{FollowerID: followerID, FolloweeID: followeeID})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Delete removes the edge; removing a missing edge is a no-op.
func (r *followRepository) Delete(followerID, followeeID string) (bool, error) {
	result := r.db.Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&models.Follow{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *followRepository) Exists(followerID, followeeID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error
	return count > 0, err
}

func (r *followRepository) Followers(userID string, offset, limit int) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	base := r.db.Model(&models.Follow{}).Where("followee_id = ?", userID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Model(&models.User{}).
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.followee_id = ?", userID).
		Order("follows.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *followRepository) Following(userID string, offset, limit int) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	base := r.db.Model(&models.Follow{}).Where("follower_id = ?", userID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Model(&models.User{}).
		Joins("JOIN follows ON follows.followee_id = users.id").
		Where("follows.follower_id = ?", userID).
		Order("follows.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}
