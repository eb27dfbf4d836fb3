package service

import (
	"errors"
	"fmt"

	"prompthub/internal/api/models"
	"prompthub/internal/api/repository"
	"prompthub/internal/events"

	"gorm.io/gorm"
)

var (
	ErrCommentNotFound  = errors.New("comment not found")
	ErrNotCommentOwner  = errors.New("you don't have permission to modify this comment")
	ErrParentMismatch   = errors.New("parent comment belongs to a different prompt")
	ErrCommentIsDeleted = errors.New("comment has been deleted")
)

type CommentService interface {
	Create(userID string, promptID int64, parentID *int64, content string) (*models.Comment, error)
	Update(commentID int64, userID string, content string) (*models.Comment, error)
	Delete(commentID int64, userID string, isAdmin bool) error
	GetByID(commentID int64) (*models.Comment, error)
	GetPromptComments(promptID int64) ([]models.Comment, error)
	GetUserComments(userID string, offset, limit int) ([]models.Comment, int64, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	promptRepo  repository.PromptRepository
	bus         *events.Bus
}

func NewCommentService(commentRepo repository.CommentRepository, promptRepo repository.PromptRepository, bus *events.Bus) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		promptRepo:  promptRepo,
		bus:         bus,
	}
}

// Create inserts a comment and notifies the prompt owner through the event
// bus. The notification is a best-effort side effect: once the comment row is
// written the operation has succeeded.
func (s *commentService) Create(userID string, promptID int64, parentID *int64, content string) (*models.Comment, error) {
	prompt, err := s.promptRepo.GetByID(promptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPromptNotFound
		}
		return nil, err
	}

	// A reply's parent must be a comment on the same prompt.
	if parentID != nil {
		parent, err := s.commentRepo.GetByID(*parentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCommentNotFound
			}
			return nil, err
		}
		if parent.PromptID != promptID {
			return nil, ErrParentMismatch
		}
	}

	comment := &models.Comment{
		UserID:   userID,
		PromptID: promptID,
		ParentID: parentID,
		Content:  content,
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}

	if prompt.UserID != userID {
		s.bus.Publish(events.Event{
			Type:        events.TypeCommentCreated,
			ActorID:     userID,
			RecipientID: prompt.UserID,
			PromptID:    promptID,
			CommentID:   comment.ID,
			Content:     fmt.Sprintf("New comment on your prompt %q", prompt.Title),
			Link:        fmt.Sprintf("/prompts/%d", promptID),
		})
	}

	// Reload with user data
	return s.commentRepo.GetByID(comment.ID)
}

// Update edits the content, owner only.
func (s *commentService) Update(commentID int64, userID string, content string) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	if comment.IsDeleted {
		return nil, ErrCommentIsDeleted
	}

	if comment.UserID != userID {
		return nil, ErrNotCommentOwner
	}

	comment.Content = content
	if err := s.commentRepo.Update(comment); err != nil {
		return nil, err
	}

	return s.commentRepo.GetByID(commentID)
}

// Delete soft-deletes the comment. The missing case is checked before the
// ownership case so callers can distinguish 404 from 403.
func (s *commentService) Delete(commentID int64, userID string, isAdmin bool) error {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}

	if comment.UserID != userID && !isAdmin {
		return ErrNotCommentOwner
	}

	return s.commentRepo.SoftDelete(commentID)
}

func (s *commentService) GetByID(commentID int64) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return comment, nil
}

// GetPromptComments returns every comment on the prompt, oldest first. The
// handler materializes the reply tree from parent ids.
func (s *commentService) GetPromptComments(promptID int64) ([]models.Comment, error) {
	if _, err := s.promptRepo.GetByID(promptID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPromptNotFound
		}
		return nil, err
	}
	return s.commentRepo.GetByPrompt(promptID)
}

func (s *commentService) GetUserComments(userID string, offset, limit int) ([]models.Comment, int64, error) {
	return s.commentRepo.GetByUser(userID, offset, limit)
}
