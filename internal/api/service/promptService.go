package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"prompthub/internal/api/models"
	"prompthub/internal/api/repository"
	"prompthub/internal/cache"
	"prompthub/internal/config"
	"prompthub/internal/events"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrPromptNotFound = errors.New("prompt not found")
	ErrNotPromptOwner = errors.New("you don't have permission to modify this prompt")
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9-]`)

// PromptUpdate carries the fields of a partial update; nil means "leave as is".
type PromptUpdate struct {
	Title       *string
	Content     *string
	Description *string
	Category    *string
	Tags        []string
	IsPublic    *bool
}

type PromptService interface {
	Create(userID string, prompt *models.Prompt) error
	Get(promptID int64, viewerID string, viewerIsAdmin bool) (*models.Prompt, error)
	HasLiked(promptID int64, userID string) (bool, error)
	List(filter repository.PromptFilter, offset, limit int) ([]models.Prompt, int64, error)
	Update(promptID int64, userID string, update PromptUpdate) (*models.Prompt, error)
	Delete(promptID int64, userID string, isAdmin bool) error
	Like(promptID int64, userID string) error
	Unlike(promptID int64, userID string) error
	Search(keyword string, offset, limit int) ([]models.Prompt, int64, error)
	Trending(ctx context.Context, limit int) ([]models.Prompt, error)
	Report(promptID int64, userID string) error
}

type promptService struct {
	promptRepo repository.PromptRepository
	bus        *events.Bus
	cache      *cache.Cache
	cfg        *config.Config
}

func NewPromptService(promptRepo repository.PromptRepository, bus *events.Bus, c *cache.Cache, cfg *config.Config) PromptService {
	return &promptService{
		promptRepo: promptRepo,
		bus:        bus,
		cache:      c,
		cfg:        cfg,
	}
}

// Create validates the prompt and assigns a unique slug from the title.
func (s *promptService) Create(userID string, prompt *models.Prompt) error {
	if strings.TrimSpace(prompt.Title) == "" {
		return errors.New("title is required")
	}
	if strings.TrimSpace(prompt.Content) == "" {
		return errors.New("content is required")
	}

	prompt.UserID = userID
	if prompt.Slug == "" {
		// short uuid suffix to avoid collisions
		prompt.Slug = fmt.Sprintf("%s-%s", generateSlug(prompt.Title), uuid.New().String()[:8])
	}

	return s.promptRepo.Create(prompt)
}

// Get fetches a prompt and bumps its view counter. Private prompts read as
// not-found to everyone but the owner and admins, without touching the
// counter, so probing for them leaks nothing.
func (s *promptService) Get(promptID int64, viewerID string, viewerIsAdmin bool) (*models.Prompt, error) {
	prompt, err := s.promptRepo.GetByID(promptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPromptNotFound
		}
		return nil, err
	}

	if !prompt.IsPublic && prompt.UserID != viewerID && !viewerIsAdmin {
		return nil, ErrPromptNotFound
	}

	if err := s.promptRepo.IncrementViewCount(promptID); err == nil {
		prompt.ViewCount++
	}

	return prompt, nil
}

func (s *promptService) HasLiked(promptID int64, userID string) (bool, error) {
	return s.promptRepo.HasLiked(userID, promptID)
}

func (s *promptService) List(filter repository.PromptFilter, offset, limit int) ([]models.Prompt, int64, error) {
	return s.promptRepo.List(filter, offset, limit)
}

// Update applies a partial field merge, owner only.
func (s *promptService) Update(promptID int64, userID string, update PromptUpdate) (*models.Prompt, error) {
	prompt, err := s.promptRepo.GetByID(promptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPromptNotFound
		}
		return nil, err
	}

	if prompt.UserID != userID {
		return nil, ErrNotPromptOwner
	}

	if update.Title != nil && strings.TrimSpace(*update.Title) != "" {
		prompt.Title = *update.Title
	}
	if update.Content != nil && strings.TrimSpace(*update.Content) != "" {
		prompt.Content = *update.Content
	}
	if update.Description != nil {
		prompt.Description = *update.Description
	}
	if update.Category != nil {
		prompt.Category = *update.Category
	}
	if update.Tags != nil {
		prompt.SetTagList(update.Tags)
	}
	if update.IsPublic != nil {
		prompt.IsPublic = *update.IsPublic
	}

	if err := s.promptRepo.Update(prompt); err != nil {
		return nil, err
	}

	return prompt, nil
}

func (s *promptService) Delete(promptID int64, userID string, isAdmin bool) error {
	prompt, err := s.promptRepo.GetByID(promptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPromptNotFound
		}
		return err
	}

	if prompt.UserID != userID && !isAdmin {
		return ErrNotPromptOwner
	}

	return s.promptRepo.Delete(promptID)
}

// Like is idempotent; only a first-time like notifies the prompt owner.
func (s *promptService) Like(promptID int64, userID string) error {
	prompt, err := s.promptRepo.GetByID(promptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPromptNotFound
		}
		return err
	}

	changed, err := s.promptRepo.AddLike(userID, promptID)
	if err != nil {
		return err
	}

	if changed && prompt.UserID != userID {
		s.bus.Publish(events.Event{
			Type:        events.TypePromptLiked,
			ActorID:     userID,
			RecipientID: prompt.UserID,
			PromptID:    promptID,
			Content:     fmt.Sprintf("Someone liked your prompt %q", prompt.Title),
			Link:        fmt.Sprintf("/prompts/%d", promptID),
		})
	}

	return nil
}

func (s *promptService) Unlike(promptID int64, userID string) error {
	if _, err := s.promptRepo.GetByID(promptID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPromptNotFound
		}
		return err
	}

	_, err := s.promptRepo.RemoveLike(userID, promptID)
	return err
}

func (s *promptService) Search(keyword string, offset, limit int) ([]models.Prompt, int64, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return []models.Prompt{}, 0, nil
	}
	return s.promptRepo.Search(keyword, offset, limit)
}

// Trending returns the top public prompts by like count, cached briefly.
func (s *promptService) Trending(ctx context.Context, limit int) ([]models.Prompt, error) {
	var cached []models.Prompt
	if s.cache.GetTrending(ctx, &cached) && len(cached) >= limit {
		return cached[:limit], nil
	}

	prompts, err := s.promptRepo.Trending(limit)
	if err != nil {
		return nil, err
	}

	s.cache.SetTrending(ctx, prompts, s.cfg.TrendingTTL)
	return prompts, nil
}

func (s *promptService) Report(promptID int64, userID string) error {
	err := s.promptRepo.IncrementReportCount(promptID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrPromptNotFound
	}
	return err
}

func generateSlug(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	// replace spaces with dash
	s = strings.ReplaceAll(s, " ", "-")
	// remove non-alnum/dash
	s = nonAlnum.ReplaceAllString(s, "")
	// collapse dashes
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	s = strings.Trim(s, "-")
	if s == "" {
		return "prompt"
	}
	// limit length
	if len(s) > 50 {
		s = s[:50]
	}
	return s
}
