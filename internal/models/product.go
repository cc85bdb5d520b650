// internal/models/product.go
package models

import (
	"time"
)

type Media struct {
	ID            int64     `json:"id" gorm:"primaryKey"`
	Path          string    `json:"path" gorm:"size:255;not null"`
	ThumbnailPath string    `json:"thumbnail_path" gorm:"size:255;not null;default:''"`
	MediaType     MediaType `json:"media_type" gorm:"type:varchar(10);not null"`
	CreatedAt     time.Time `json:"created_at"`
}

func (Media) TableName() string { return "medias" }

type Product struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	ProductType string    `json:"product_type" gorm:"size:50;not null"`
	SellerID    int64     `json:"seller_id" gorm:"index;not null"`
	BuyersID    int64     `json:"buyers_id" gorm:"index;not null;default:0"`
	Description string    `json:"description" gorm:"type:text;not null;default:''"`
	Price       int64     `json:"price" gorm:"not null"`
	MediaID     int64     `json:"media_id" gorm:"not null"`
	Views       int64     `json:"views" gorm:"not null;default:0"`
	Likes       int64     `json:"likes" gorm:"not null;default:0"`
	CreatedAt   time.Time `json:"created_at"`

	// Relationships
	Seller *User  `json:"seller,omitempty" gorm:"foreignKey:SellerID"`
	Media  *Media `json:"media,omitempty" gorm:"foreignKey:MediaID"`
}
