// internal/services/user_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/swellapp/swell-backend/internal/models"
	"github.com/swellapp/swell-backend/internal/utils"
)

type UserService struct {
	db *gorm.DB
}

type RegisterRequest struct {
	Username   string `json:"username" validate:"required,username"`
	EthAddress string `json:"eth_address" validate:"required,eth_address"`
}

type SearchRequest struct {
	Pattern string `json:"pattern" validate:"required"`
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) GetUserByID(id int64) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &user, nil
}

func (s *UserService) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &user, nil
}

func (s *UserService) GetUserByEthAddress(ethAddress string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("eth_address = ?", ethAddress).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &user, nil
}

func (s *UserService) Register(req *RegisterRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	user := &models.User{
		Username:   req.Username,
		EthAddress: req.EthAddress,
	}

	if err := s.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// SearchByPrefix returns users whose usernames start with pattern
// (case-insensitive), excluding the requesting user, ordered by username.
func (s *UserService) SearchByPrefix(excludeID int64, pattern string) ([]models.User, error) {
	var users []models.User
	if err := s.db.
		Where("LOWER(username) LIKE LOWER(?) AND id <> ?", pattern+"%", excludeID).
		Order("username ASC").
		Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	return users, nil
}

func (s *UserService) UpdateProfile(id int64, bio, avatarPath string) error {
	res := s.db.Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"bio":    bio,
		"avatar": avatarPath,
	})
	if res.Error != nil {
		return fmt.Errorf("failed to update profile: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
