package service

import (
	"errors"

	"prompthub/internal/api/models"
	"prompthub/internal/api/repository"
	"prompthub/pkg/logger"

	"gorm.io/gorm"
)

// Stats is a snapshot of platform counters for the admin dashboard.
type Stats struct {
	Users         int64 `json:"users"`
	Prompts       int64 `json:"prompts"`
	Comments      int64 `json:"comments"`
	Notifications int64 `json:"notifications"`
}

// UserModeration carries the admin-mutable flags; nil means "leave as is".
type UserModeration struct {
	IsActive *bool
	IsAdmin  *bool
}

// PromptModeration carries the admin-mutable prompt flags.
type PromptModeration struct {
	IsApproved *bool
	IsFeatured *bool
}

type AdminService interface {
	GetStats() (*Stats, error)
	ListUsers(search string, offset, limit int) ([]models.User, int64, error)
	UpdateUser(userID string, mod UserModeration) (*models.User, error)
	DeleteUser(userID string) error
	ListReportedPrompts(offset, limit int) ([]models.Prompt, int64, error)
	ModeratePrompt(promptID int64, mod PromptModeration) (*models.Prompt, error)
}

type adminService struct {
	userRepo         repository.UserRepository
	promptRepo       repository.PromptRepository
	commentRepo      repository.CommentRepository
	notificationRepo repository.NotificationRepository
	refreshTokenRepo repository.RefreshTokenRepository
}

func NewAdminService(
	userRepo repository.UserRepository,
	promptRepo repository.PromptRepository,
	commentRepo repository.CommentRepository,
	notificationRepo repository.NotificationRepository,
	refreshTokenRepo repository.RefreshTokenRepository,
) AdminService {
	return &adminService{
		userRepo:         userRepo,
		promptRepo:       promptRepo,
		commentRepo:      commentRepo,
		notificationRepo: notificationRepo,
		refreshTokenRepo: refreshTokenRepo,
	}
}

func (s *adminService) GetStats() (*Stats, error) {
	stats := &Stats{}
	var err error

	if stats.Users, err = s.userRepo.Count(); err != nil {
		return nil, err
	}
	if stats.Prompts, err = s.promptRepo.Count(); err != nil {
		return nil, err
	}
	if stats.Comments, err = s.commentRepo.Count(); err != nil {
		return nil, err
	}
	if stats.Notifications, err = s.notificationRepo.Count(); err != nil {
		return nil, err
	}

	return stats, nil
}

func (s *adminService) ListUsers(search string, offset, limit int) ([]models.User, int64, error) {
	return s.userRepo.List(search, offset, limit)
}

// UpdateUser flips moderation flags. Deactivating a user also revokes their
// refresh tokens so existing sessions cannot be renewed.
func (s *adminService) UpdateUser(userID string, mod UserModeration) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	deactivated := false
	if mod.IsActive != nil {
		deactivated = user.IsActive && !*mod.IsActive
		user.IsActive = *mod.IsActive
	}
	if mod.IsAdmin != nil {
		user.IsAdmin = *mod.IsAdmin
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	if deactivated {
		if err := s.refreshTokenRepo.RevokeAllForUser(userID); err != nil {
			logger.Error().Err(err).Str("user_id", userID).Msg("failed to revoke tokens for deactivated user")
		}
	}

	return user, nil
}

func (s *adminService) DeleteUser(userID string) error {
	if err := s.refreshTokenRepo.RevokeAllForUser(userID); err != nil {
		logger.Error().Err(err).Str("user_id", userID).Msg("failed to revoke tokens for deleted user")
	}

	err := s.userRepo.Delete(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUserNotFound
	}
	return err
}

func (s *adminService) ListReportedPrompts(offset, limit int) ([]models.Prompt, int64, error) {
	return s.promptRepo.ListReported(offset, limit)
}

func (s *adminService) ModeratePrompt(promptID int64, mod PromptModeration) (*models.Prompt, error) {
	prompt, err := s.promptRepo.GetByID(promptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPromptNotFound
		}
		return nil, err
	}

	if mod.IsApproved != nil {
		prompt.IsApproved = *mod.IsApproved
	}
	if mod.IsFeatured != nil {
		prompt.IsFeatured = *mod.IsFeatured
	}

	if err := s.promptRepo.Update(prompt); err != nil {
		return nil, err
	}
	return prompt, nil
}
