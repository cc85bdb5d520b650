// internal/services/social_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/swellapp/swell-backend/internal/models"
)

type SocialService struct {
	db *gorm.DB
}

func NewSocialService(db *gorm.DB) *SocialService {
	return &SocialService{db: db}
}

func (s *SocialService) Followers(userID int64) ([]models.User, error) {
	var users []models.User
	if err := s.db.
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.followee_id = ?", userID).
		Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to load followers: %w", err)
	}
	return users, nil
}

func (s *SocialService) Followees(userID int64) ([]models.User, error) {
	var users []models.User
	if err := s.db.
		Joins("JOIN follows ON follows.followee_id = users.id").
		Where("follows.follower_id = ?", userID).
		Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to load followees: %w", err)
	}
	return users, nil
}

func (s *SocialService) Follow(followeeID, followerID int64) error {
	edge := &models.Follow{
		FollowerID: followerID,
		FolloweeID: followeeID,
	}
	if err := s.db.Create(edge).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Edge already exists; treat a repeated follow as success.
			return nil
		}
		return fmt.Errorf("failed to follow: %w", err)
	}
	return nil
}

// Unfollow removes the edge; deleting a non-existent edge is a no-op success.
func (s *SocialService) Unfollow(followeeID, followerID int64) error {
	if err := s.db.
		Where("followee_id = ? AND follower_id = ?", followeeID, followerID).
		Delete(&models.Follow{}).Error; err != nil {
		return fmt.Errorf("failed to unfollow: %w", err)
	}
	return nil
}
