// internal/models/feed.go
package models

import (
	"time"
)

// Feed and Thread are read-only projections computed by joins; they are
// never migrated or written.

type Feed struct {
	ID            int64     `json:"id"`
	SellerID      int64     `json:"seller_id"`
	Username      string    `json:"username"`
	Avatar        string    `json:"avatar"`
	ProductType   string    `json:"product_type"`
	Description   string    `json:"description"`
	Price         int64     `json:"price"`
	Views         int64     `json:"views"`
	Likes         int64     `json:"likes"`
	Path          string    `json:"path"`
	ThumbnailPath string    `json:"thumbnail_path"`
	MediaType     MediaType `json:"media_type"`
	CreatedAt     time.Time `json:"created_at"`
}

// Thread carries the conversation partner and the latest message
// exchanged with them.
type Thread struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Avatar    string    `json:"avatar"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
