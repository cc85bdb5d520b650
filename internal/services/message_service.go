// internal/services/message_service.go
package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/swellapp/swell-backend/internal/models"
	"github.com/swellapp/swell-backend/internal/utils"
)

type MessageService struct {
	db *gorm.DB
}

type SendMessageRequest struct {
	Receiver int64  `json:"receiver" validate:"required"`
	Content  string `json:"content" validate:"required"`
}

type AllMessagesRequest struct {
	User1 int64 `json:"user1" validate:"required"`
	User2 int64 `json:"user2" validate:"required"`
}

func NewMessageService(db *gorm.DB) *MessageService {
	return &MessageService{db: db}
}

func (s *MessageService) Send(senderID int64, req *SendMessageRequest) (*models.Message, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	message := &models.Message{
		Sender:   senderID,
		Receiver: req.Receiver,
		Content:  req.Content,
	}
	if err := s.db.Create(message).Error; err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}
	return message, nil
}

// Conversation returns every message between the unordered pair, oldest first.
func (s *MessageService) Conversation(userA, userB int64) ([]models.Message, error) {
	var messages []models.Message
	if err := s.db.
		Where("(sender = ? AND receiver = ?) OR (sender = ? AND receiver = ?)",
			userA, userB, userB, userA).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}
	return messages, nil
}

// Threads returns one row per distinct conversation partner of userID,
// carrying the most recent message of that pair, newest first. Conversation
// identity is the unordered participant pair, so the per-pair maximum is
// computed over both message directions.
func (s *MessageService) Threads(userID int64) ([]models.Thread, error) {
	var threads []models.Thread
	query := `
		SELECT users.id, users.username, users.avatar, m.content, m.created_at
		FROM messages m
		INNER JOIN users ON users.id = CASE WHEN m.sender = ? THEN m.receiver ELSE m.sender END
		WHERE ? IN (m.sender, m.receiver)
		AND m.created_at = (
			SELECT MAX(m2.created_at) FROM messages m2
			WHERE (m2.sender = m.sender AND m2.receiver = m.receiver)
			   OR (m2.sender = m.receiver AND m2.receiver = m.sender)
		)
		ORDER BY m.created_at DESC`
	if err := s.db.Raw(query, userID, userID).Scan(&threads).Error; err != nil {
		return nil, fmt.Errorf("failed to load threads: %w", err)
	}
	return threads, nil
}
