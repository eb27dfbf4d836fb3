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
	ErrUserNotFound = errors.New("user not found")
	ErrSelfFollow   = errors.New("cannot follow yourself")
)

type FollowService interface {
	Follow(followerID, followeeID string) error
	Unfollow(followerID, followeeID string) error
	IsFollowing(followerID, followeeID string) (bool, error)
	Followers(userID string, offset, limit int) ([]models.User, int64, error)
	Following(userID string, offset, limit int) ([]models.User, int64, error)
}

type followService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
	bus        *events.Bus
}

func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository, bus *events.Bus) FollowService {
	return &followService{
		followRepo: followRepo,
		userRepo:   userRepo,
		bus:        bus,
	}
}

// Follow creates the edge; repeated follows are no-ops and only a new edge
// notifies the followee.
func (s *followService) Follow(followerID, followeeID string) error {
	if followerID == followeeID {
		return ErrSelfFollow
	}

	follower, err := s.userRepo.FindByID(followerID)
	if err != nil {
		return err
	}
	if _, err := s.userRepo.FindByID(followeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	changed, err := s.followRepo.Create(followerID, followeeID)
	if err != nil {
		return err
	}

	if changed {
		s.bus.Publish(events.Event{
			Type:        events.TypeUserFollowed,
			ActorID:     followerID,
			RecipientID: followeeID,
			Content:     fmt.Sprintf("%s started following you", follower.Username),
			Link:        fmt.Sprintf("/users/%s", followerID),
		})
	}

	return nil
}

func (s *followService) Unfollow(followerID, followeeID string) error {
	if _, err := s.userRepo.FindByID(followeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	_, err := s.followRepo.Delete(followerID, followeeID)
	return err
}

func (s *followService) IsFollowing(followerID, followeeID string) (bool, error) {
	return s.followRepo.Exists(followerID, followeeID)
}

func (s *followService) Followers(userID string, offset, limit int) ([]models.User, int64, error) {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrUserNotFound
		}
		return nil, 0, err
	}
	return s.followRepo.Followers(userID, offset, limit)
}

func (s *followService) Following(userID string, offset, limit int) ([]models.User, int64, error) {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrUserNotFound
		}
		return nil, 0, err
	}
	return s.followRepo.Following(userID, offset, limit)
}
