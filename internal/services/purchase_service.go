// internal/services/purchase_service.go
package services

import (
	"errors"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/swellapp/swell-backend/internal/models"
)

type PurchaseService struct {
	db *gorm.DB
}

type BuyProductsRequest struct {
	Products []int64 `json:"products" validate:"required,min=1"`
}

func NewPurchaseService(db *gorm.DB) *PurchaseService {
	return &PurchaseService{db: db}
}

// Buy settles a purchase of the listed products by one buyer inside a single
// transaction: the buyer's balance drops by the summed prices, each seller is
// credited their product's price, and each product's buyers_id flips from the
// unsold sentinel to the buyer's id. The whole quadreum supply is conserved.
//
// The returned bool is false for a business decline (insufficient balance or
// a product already claimed by a concurrent buyer); no writes happen in that
// case. Duplicate ids in the request are priced once per list entry, matching
// the historical summing behavior.
func (s *PurchaseService) Buy(buyerID int64, productIDs []int64) (bool, error) {
	if len(productIDs) == 0 {
		return false, errors.New("empty product list")
	}

	declined := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var buyer models.User
		if err := forUpdate(tx).First(&buyer, buyerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("failed to load buyer: %w", err)
		}

		// Distinct ids in ascending order. Row-lock order for the IN scan
		// is plan-dependent, so a concurrent purchase may still deadlock;
		// detection aborts one transaction and the guarded claim below
		// keeps the outcome correct either way.
		distinct := distinctSorted(productIDs)

		var rows []models.Product
		if err := forUpdate(tx).Where("id IN ?", distinct).Find(&rows).Error; err != nil {
			return fmt.Errorf("failed to load products: %w", err)
		}
		if len(rows) != len(distinct) {
			return ErrProductNotFound
		}

		byID := make(map[int64]*models.Product, len(rows))
		for i := range rows {
			byID[rows[i].ID] = &rows[i]
		}

		var total int64
		for _, id := range productIDs {
			product := byID[id]
			if product.BuyersID != models.UnsoldBuyerID {
				logrus.WithFields(logrus.Fields{
					"buyer_id":   buyerID,
					"product_id": id,
				}).Info("Purchase declined: product already sold")
				declined = true
				return nil
			}
			total += product.Price
		}

		if buyer.Quadreum < total {
			logrus.WithFields(logrus.Fields{
				"buyer_id": buyerID,
				"balance":  buyer.Quadreum,
				"total":    total,
			}).Info("Purchase declined: insufficient balance")
			declined = true
			return nil
		}

		if err := tx.Model(&models.User{}).Where("id = ?", buyerID).
			UpdateColumn("quadreum", gorm.Expr("quadreum - ?", total)).Error; err != nil {
			return fmt.Errorf("failed to debit buyer: %w", err)
		}

		for _, id := range productIDs {
			product := byID[id]
			if err := tx.Model(&models.User{}).Where("id = ?", product.SellerID).
				UpdateColumn("quadreum", gorm.Expr("quadreum + ?", product.Price)).Error; err != nil {
				return fmt.Errorf("failed to credit seller: %w", err)
			}
		}

		for _, id := range distinct {
			// Guarded update: if another committed transaction claimed the
			// product first, zero rows match and the purchase aborts.
			res := tx.Model(&models.Product{}).
				Where("id = ? AND buyers_id = ?", id, models.UnsoldBuyerID).
				UpdateColumn("buyers_id", buyerID)
			if res.Error != nil {
				return fmt.Errorf("failed to claim product: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("product %d already claimed", id)
			}
		}

		return nil
	})
	if err != nil {
		return false, err
	}

	return !declined, nil
}

func distinctSorted(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// forUpdate takes row locks on Postgres; SQLite (used in tests) has a single
// writer and rejects the FOR UPDATE syntax.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
