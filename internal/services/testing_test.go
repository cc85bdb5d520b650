// internal/services/testing_test.go
package services

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/swellapp/swell-backend/internal/models"
)

// setupTestDB opens a fresh in-memory database per test. The random name
// keeps cache=shared handles from leaking between tests.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Media{},
		&models.Product{},
		&models.Message{},
	)
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	return db
}

var ethAddrCounter int64

func createTestUser(t *testing.T, db *gorm.DB, username string, quadreum int64) *models.User {
	t.Helper()

	user := &models.User{
		Username:   username,
		EthAddress: fmt.Sprintf("0x%040x", atomic.AddInt64(&ethAddrCounter, 1)),
		Quadreum:   quadreum,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return user
}

func createTestProduct(t *testing.T, db *gorm.DB, sellerID, price int64, createdAt time.Time) *models.Product {
	t.Helper()

	media := &models.Media{
		Path:      "files/" + uuid.New().String() + ".jpg",
		MediaType: models.MediaTypeImage,
		CreatedAt: createdAt,
	}
	if err := db.Create(media).Error; err != nil {
		t.Fatalf("failed to create media: %v", err)
	}

	product := &models.Product{
		ProductType: "art",
		SellerID:    sellerID,
		Price:       price,
		MediaID:     media.ID,
		CreatedAt:   createdAt,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("failed to create product: %v", err)
	}
	return product
}
