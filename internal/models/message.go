// internal/models/message.go
package models

import (
	"time"
)

// Message rows are append-only; a conversation is identified by the
// unordered (Sender, Receiver) pair.
type Message struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Sender    int64     `json:"sender" gorm:"index;not null"`
	Receiver  int64     `json:"receiver" gorm:"index;not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
}
