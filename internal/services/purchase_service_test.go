// internal/services/purchase_service_test.go
package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swellapp/swell-backend/internal/models"
)

func TestBuySingleProduct(t *testing.T) {
	db := setupTestDB(t)
	service := NewPurchaseService(db)

	seller := createTestUser(t, db, "seller", 100)
	buyer := createTestUser(t, db, "buyer", 100)
	product := createTestProduct(t, db, seller.ID, 30, time.Now())

	success, err := service.Buy(buyer.ID, []int64{product.ID})
	require.NoError(t, err)
	assert.True(t, success)

	var buyerAfter, sellerAfter models.User
	require.NoError(t, db.First(&buyerAfter, buyer.ID).Error)
	require.NoError(t, db.First(&sellerAfter, seller.ID).Error)
	assert.Equal(t, int64(70), buyerAfter.Quadreum)
	assert.Equal(t, int64(130), sellerAfter.Quadreum)

	var productAfter models.Product
	require.NoError(t, db.First(&productAfter, product.ID).Error)
	assert.Equal(t, buyer.ID, productAfter.BuyersID)
}

func TestBuyMultipleSellers(t *testing.T) {
	db := setupTestDB(t)
	service := NewPurchaseService(db)

	sellerA := createTestUser(t, db, "sellerA", 0)
	sellerB := createTestUser(t, db, "sellerB", 0)
	buyer := createTestUser(t, db, "buyer", 100)

	productA := createTestProduct(t, db, sellerA.ID, 40, time.Now())
	productB := createTestProduct(t, db, sellerB.ID, 60, time.Now())

	success, err := service.Buy(buyer.ID, []int64{productA.ID, productB.ID})
	require.NoError(t, err)
	assert.True(t, success)

	var buyerAfter, aAfter, bAfter models.User
	require.NoError(t, db.First(&buyerAfter, buyer.ID).Error)
	require.NoError(t, db.First(&aAfter, sellerA.ID).Error)
	require.NoError(t, db.First(&bAfter, sellerB.ID).Error)

	// Quadreum is conserved: debit equals the sum of credits.
	assert.Equal(t, int64(0), buyerAfter.Quadreum)
	assert.Equal(t, int64(40), aAfter.Quadreum)
	assert.Equal(t, int64(60), bAfter.Quadreum)
}

func TestBuyInsufficientBalance(t *testing.T) {
	db := setupTestDB(t)
	service := NewPurchaseService(db)

	seller := createTestUser(t, db, "seller", 0)
	buyer := createTestUser(t, db, "buyer", 10)
	product := createTestProduct(t, db, seller.ID, 30, time.Now())

	success, err := service.Buy(buyer.ID, []int64{product.ID})
	require.NoError(t, err)
	assert.False(t, success)

	// A decline leaves no writes behind.
	var buyerAfter models.User
	require.NoError(t, db.First(&buyerAfter, buyer.ID).Error)
	assert.Equal(t, int64(10), buyerAfter.Quadreum)

	var productAfter models.Product
	require.NoError(t, db.First(&productAfter, product.ID).Error)
	assert.Equal(t, models.UnsoldBuyerID, productAfter.BuyersID)
}

func TestBuyAlreadySoldProduct(t *testing.T) {
	db := setupTestDB(t)
	service := NewPurchaseService(db)

	seller := createTestUser(t, db, "seller", 0)
	first := createTestUser(t, db, "first", 100)
	second := createTestUser(t, db, "second", 100)
	product := createTestProduct(t, db, seller.ID, 30, time.Now())

	success, err := service.Buy(first.ID, []int64{product.ID})
	require.NoError(t, err)
	require.True(t, success)

	success, err = service.Buy(second.ID, []int64{product.ID})
	require.NoError(t, err)
	assert.False(t, success)

	var secondAfter models.User
	require.NoError(t, db.First(&secondAfter, second.ID).Error)
	assert.Equal(t, int64(100), secondAfter.Quadreum)

	var productAfter models.Product
	require.NoError(t, db.First(&productAfter, product.ID).Error)
	assert.Equal(t, first.ID, productAfter.BuyersID)
}

func TestBuyMissingProduct(t *testing.T) {
	db := setupTestDB(t)
	service := NewPurchaseService(db)

	buyer := createTestUser(t, db, "buyer", 100)

	_, err := service.Buy(buyer.ID, []int64{999})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestBuyAbsentBuyer(t *testing.T) {
	db := setupTestDB(t)
	service := NewPurchaseService(db)

	seller := createTestUser(t, db, "seller", 0)
	product := createTestProduct(t, db, seller.ID, 30, time.Now())

	_, err := service.Buy(999, []int64{product.ID})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestBuyConcurrentSingleWinner(t *testing.T) {
	db := setupTestDB(t)
	service := NewPurchaseService(db)

	seller := createTestUser(t, db, "seller", 0)
	first := createTestUser(t, db, "first", 100)
	second := createTestUser(t, db, "second", 100)
	product := createTestProduct(t, db, seller.ID, 30, time.Now())

	// Two simultaneous purchases of the same unsold product: exactly one
	// may win. The loser either sees a decline or aborts on the guarded
	// buyers_id claim.
	start := make(chan struct{})
	results := make(chan bool, 2)

	var wg sync.WaitGroup
	for _, buyerID := range []int64{first.ID, second.ID} {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			<-start
			success, err := service.Buy(id, []int64{product.ID})
			results <- err == nil && success
		}(buyerID)
	}
	close(start)
	wg.Wait()
	close(results)

	wins := 0
	for won := range results {
		if won {
			wins++
		}
	}
	assert.Equal(t, 1, wins)

	var productAfter models.Product
	require.NoError(t, db.First(&productAfter, product.ID).Error)
	assert.Contains(t, []int64{first.ID, second.ID}, productAfter.BuyersID)

	// The quadreum supply is conserved regardless of who won.
	var total int64
	require.NoError(t, db.Model(&models.User{}).
		Select("COALESCE(SUM(quadreum), 0)").Scan(&total).Error)
	assert.Equal(t, int64(200), total)

	var sellerAfter models.User
	require.NoError(t, db.First(&sellerAfter, seller.ID).Error)
	assert.Equal(t, int64(30), sellerAfter.Quadreum)
}

func TestBuyDuplicateIDsPricedPerEntry(t *testing.T) {
	db := setupTestDB(t)
	service := NewPurchaseService(db)

	seller := createTestUser(t, db, "seller", 0)
	buyer := createTestUser(t, db, "buyer", 100)
	product := createTestProduct(t, db, seller.ID, 30, time.Now())

	// A repeated id contributes its price once per list entry.
	success, err := service.Buy(buyer.ID, []int64{product.ID, product.ID})
	require.NoError(t, err)
	assert.True(t, success)

	var buyerAfter, sellerAfter models.User
	require.NoError(t, db.First(&buyerAfter, buyer.ID).Error)
	require.NoError(t, db.First(&sellerAfter, seller.ID).Error)
	assert.Equal(t, int64(40), buyerAfter.Quadreum)
	assert.Equal(t, int64(60), sellerAfter.Quadreum)
}

func TestBuyEmptyList(t *testing.T) {
	db := setupTestDB(t)
	service := NewPurchaseService(db)

	_, err := service.Buy(1, nil)
	assert.Error(t, err)
}
