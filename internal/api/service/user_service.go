package service

import (
	"errors"

	"prompthub/internal/api/models"
	"prompthub/internal/api/repository"

	"gorm.io/gorm"
)

// ProfileUpdate carries the mutable profile fields; nil means "leave as is".
type ProfileUpdate struct {
	DisplayName *string
	Bio         *string
	AvatarURL   *string
}

type UserService interface {
	GetProfile(userID string) (*models.User, error)
	UpdateProfile(userID string, update ProfileUpdate) (*models.User, error)
	GetUserPrompts(userID, viewerID string, viewerIsAdmin bool, offset, limit int) ([]models.Prompt, int64, error)
}

type userService struct {
	userRepo   repository.UserRepository
	promptRepo repository.PromptRepository
}

func NewUserService(userRepo repository.UserRepository, promptRepo repository.PromptRepository) UserService {
	return &userService{
		userRepo:   userRepo,
		promptRepo: promptRepo,
	}
}

func (s *userService) GetProfile(userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateProfile(userID string, update ProfileUpdate) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if update.DisplayName != nil {
		user.DisplayName = *update.DisplayName
	}
	if update.Bio != nil {
		user.Bio = *update.Bio
	}
	if update.AvatarURL != nil {
		user.AvatarURL = *update.AvatarURL
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserPrompts lists a user's prompts. Owners and admins see everything,
// everyone else only public prompts.
func (s *userService) GetUserPrompts(userID, viewerID string, viewerIsAdmin bool, offset, limit int) ([]models.Prompt, int64, error) {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrUserNotFound
		}
		return nil, 0, err
	}

	filter := repository.PromptFilter{
		UserID:     userID,
		PublicOnly: viewerID != userID && !viewerIsAdmin,
	}
	return s.promptRepo.List(filter, offset, limit)
}
