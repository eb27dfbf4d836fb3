package service

import (
	"errors"

	"prompthub/internal/api/models"
	"prompthub/internal/api/repository"
	"prompthub/pkg/logger"

	"gorm.io/gorm"
)

var ErrRatingNotFound = errors.New("rating not found")

type RatingService interface {
	CreateOrUpdate(userID string, promptID int64, score int) (*models.Rating, error)
	Delete(userID string, promptID int64) error
	GetUserRating(userID string, promptID int64) (*models.Rating, error)
	GetPromptRatings(promptID int64, offset, limit int) ([]models.Rating, int64, error)
}

type ratingService struct {
	ratingRepo repository.RatingRepository
	promptRepo repository.PromptRepository
}

func NewRatingService(ratingRepo repository.RatingRepository, promptRepo repository.PromptRepository) RatingService {
	return &ratingService{
		ratingRepo: ratingRepo,
		promptRepo: promptRepo,
	}
}

// CreateOrUpdate upserts the user's rating and recomputes the prompt average.
func (s *ratingService) CreateOrUpdate(userID string, promptID int64, score int) (*models.Rating, error) {
	if _, err := s.promptRepo.GetByID(promptID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPromptNotFound
		}
		return nil, err
	}

	existing, err := s.ratingRepo.GetByUserAndPrompt(userID, promptID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var rating *models.Rating
	if existing != nil {
		existing.Score = score
		if err := s.ratingRepo.Update(existing); err != nil {
			return nil, err
		}
		rating = existing
	} else {
		rating = &models.Rating{
			UserID:   userID,
			PromptID: promptID,
			Score:    score,
		}
		if err := s.ratingRepo.Create(rating); err != nil {
			return nil, err
		}
	}

	s.refreshAverage(promptID)
	return rating, nil
}

// Delete removes the rating and recomputes the average.
func (s *ratingService) Delete(userID string, promptID int64) error {
	err := s.ratingRepo.Delete(userID, promptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRatingNotFound
		}
		return err
	}

	s.refreshAverage(promptID)
	return nil
}

func (s *ratingService) GetUserRating(userID string, promptID int64) (*models.Rating, error) {
	rating, err := s.ratingRepo.GetByUserAndPrompt(userID, promptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRatingNotFound
		}
		return nil, err
	}
	return rating, nil
}

func (s *ratingService) GetPromptRatings(promptID int64, offset, limit int) ([]models.Rating, int64, error) {
	if _, err := s.promptRepo.GetByID(promptID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrPromptNotFound
		}
		return nil, 0, err
	}
	return s.ratingRepo.GetByPrompt(promptID, offset, limit)
}

// refreshAverage recomputes the derived average; a failure leaves a stale
// value behind, which the next mutation repairs.
func (s *ratingService) refreshAverage(promptID int64) {
	average, _, err := s.ratingRepo.CalculateAverage(promptID)
	if err != nil {
		logger.Warn().Err(err).Int64("prompt_id", promptID).Msg("average rating recompute failed")
		return
	}
	if err := s.ratingRepo.SetPromptAverage(promptID, average); err != nil {
		logger.Warn().Err(err).Int64("prompt_id", promptID).Msg("average rating write failed")
	}
}
