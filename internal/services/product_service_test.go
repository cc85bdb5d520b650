// internal/services/product_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swellapp/swell-backend/internal/models"
)

func TestAddProduct(t *testing.T) {
	db := setupTestDB(t)
	service := NewProductService(db)

	seller := createTestUser(t, db, "seller", 0)

	product, err := service.AddProduct(&AddProductInput{
		SellerID:    seller.ID,
		Description: "a rare sticker",
		Price:       50,
		ProductType: "sticker",
		MediaType:   models.MediaTypeImage,
		Path:        "files/abc.jpg",
	})
	require.NoError(t, err)
	assert.NotZero(t, product.ID)
	assert.Equal(t, models.UnsoldBuyerID, product.BuyersID)

	var media models.Media
	require.NoError(t, db.First(&media, product.MediaID).Error)
	assert.Equal(t, "files/abc.jpg", media.Path)
}

func TestAddProductRejectsUnknownMediaType(t *testing.T) {
	db := setupTestDB(t)
	service := NewProductService(db)

	_, err := service.AddProduct(&AddProductInput{
		SellerID:  1,
		Price:     10,
		MediaType: "GIF",
		Path:      "files/abc.gif",
	})
	assert.Error(t, err)

	var count int64
	db.Model(&models.Media{}).Count(&count)
	assert.Zero(t, count)
}

func TestFeedExcludesSoldProducts(t *testing.T) {
	db := setupTestDB(t)
	service := NewProductService(db)

	seller := createTestUser(t, db, "seller", 0)
	buyer := createTestUser(t, db, "buyer", 0)

	base := time.Now().Add(-time.Hour)
	oldest := createTestProduct(t, db, seller.ID, 10, base)
	sold := createTestProduct(t, db, seller.ID, 20, base.Add(time.Minute))
	newest := createTestProduct(t, db, seller.ID, 30, base.Add(2*time.Minute))

	require.NoError(t, db.Model(sold).UpdateColumn("buyers_id", buyer.ID).Error)

	feed, err := service.Feed()
	require.NoError(t, err)

	require.Len(t, feed, 2)
	assert.Equal(t, newest.ID, feed[0].ID)
	assert.Equal(t, oldest.ID, feed[1].ID)
	assert.Equal(t, "seller", feed[0].Username)
}

func TestFeedBySellerIncludesSoldProducts(t *testing.T) {
	db := setupTestDB(t)
	service := NewProductService(db)

	seller := createTestUser(t, db, "seller", 0)
	other := createTestUser(t, db, "other", 0)
	buyer := createTestUser(t, db, "buyer", 0)

	base := time.Now().Add(-time.Hour)
	sold := createTestProduct(t, db, seller.ID, 10, base)
	createTestProduct(t, db, seller.ID, 20, base.Add(time.Minute))
	createTestProduct(t, db, other.ID, 30, base.Add(2*time.Minute))

	require.NoError(t, db.Model(sold).UpdateColumn("buyers_id", buyer.ID).Error)

	feed, err := service.FeedBySeller(seller.ID)
	require.NoError(t, err)

	require.Len(t, feed, 2)
	for _, row := range feed {
		assert.Equal(t, seller.ID, row.SellerID)
	}
}

func TestGetProductByID(t *testing.T) {
	db := setupTestDB(t)
	service := NewProductService(db)

	seller := createTestUser(t, db, "seller", 0)
	product := createTestProduct(t, db, seller.ID, 10, time.Now())

	loaded, err := service.GetProductByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, product.ID, loaded.ID)
	require.NotNil(t, loaded.Media)
	assert.Equal(t, models.MediaTypeImage, loaded.Media.MediaType)
}

func TestGetProductByIDAbsent(t *testing.T) {
	db := setupTestDB(t)
	service := NewProductService(db)

	_, err := service.GetProductByID(999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}
