// internal/services/product_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/swellapp/swell-backend/internal/models"
)

type ProductService struct {
	db *gorm.DB
}

type AddProductInput struct {
	SellerID      int64
	Description   string
	Price         int64
	ProductType   string
	MediaType     models.MediaType
	Path          string
	ThumbnailPath string
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

const feedColumns = "products.id, products.seller_id, users.username, users.avatar, " +
	"products.product_type, products.description, products.price, products.views, products.likes, " +
	"medias.path, medias.thumbnail_path, medias.media_type, medias.created_at"

// AddProduct inserts the Media row and the Product referencing it in one
// transaction; a failure of either insert rolls back both.
func (s *ProductService) AddProduct(input *AddProductInput) (*models.Product, error) {
	if !input.MediaType.Valid() {
		return nil, fmt.Errorf("unknown media type %q", input.MediaType)
	}

	var product *models.Product
	err := s.db.Transaction(func(tx *gorm.DB) error {
		media := &models.Media{
			Path:          input.Path,
			ThumbnailPath: input.ThumbnailPath,
			MediaType:     input.MediaType,
		}
		if err := tx.Create(media).Error; err != nil {
			return fmt.Errorf("failed to create media: %w", err)
		}

		product = &models.Product{
			ProductType: input.ProductType,
			SellerID:    input.SellerID,
			Description: input.Description,
			Price:       input.Price,
			MediaID:     media.ID,
		}
		if err := tx.Create(product).Error; err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return product, nil
}

func (s *ProductService) GetProductByID(id int64) (*models.Product, error) {
	var product models.Product
	if err := s.db.Preload("Media").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	go s.incrementViews(id)

	return &product, nil
}

// Feed lists all unsold products, newest first, joined with seller and media.
func (s *ProductService) Feed() ([]models.Feed, error) {
	var feed []models.Feed
	if err := s.db.Table("products").
		Select(feedColumns).
		Joins("INNER JOIN users ON products.seller_id = users.id").
		Joins("INNER JOIN medias ON products.media_id = medias.id").
		Where("products.buyers_id = ?", models.UnsoldBuyerID).
		Order("products.created_at DESC").
		Scan(&feed).Error; err != nil {
		return nil, fmt.Errorf("failed to load feed: %w", err)
	}
	return feed, nil
}

// FeedBySeller lists every product of one seller regardless of sold state.
func (s *ProductService) FeedBySeller(sellerID int64) ([]models.Feed, error) {
	var feed []models.Feed
	if err := s.db.Table("products").
		Select(feedColumns).
		Joins("INNER JOIN users ON products.seller_id = users.id").
		Joins("INNER JOIN medias ON products.media_id = medias.id").
		Where("users.id = ?", sellerID).
		Order("products.created_at DESC").
		Scan(&feed).Error; err != nil {
		return nil, fmt.Errorf("failed to load seller feed: %w", err)
	}
	return feed, nil
}

func (s *ProductService) incrementViews(productID int64) {
	s.db.Model(&models.Product{}).Where("id = ?", productID).
		UpdateColumn("views", gorm.Expr("views + 1"))
}
