// internal/models/user.go
package models

import (
	"time"
)

type User struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	Username   string    `json:"username" gorm:"uniqueIndex;size:50;not null"`
	EthAddress string    `json:"eth_address" gorm:"size:64;not null"`
	Bio        string    `json:"bio" gorm:"type:text;not null;default:''"`
	Quadreum   int64     `json:"quadreum" gorm:"not null;default:0"`
	Avatar     string    `json:"avatar" gorm:"size:255;not null;default:''"`
	CreatedAt  time.Time `json:"created_at"`
}

type Follow struct {
	ID         int64 `json:"-" gorm:"primaryKey"`
	FollowerID int64 `json:"follower_id" gorm:"uniqueIndex:idx_follows_edge;not null"`
	FolloweeID int64 `json:"followee_id" gorm:"uniqueIndex:idx_follows_edge;not null"`
}
