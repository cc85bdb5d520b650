// internal/handlers/purchase.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/swellapp/swell-backend/internal/middleware"
	"github.com/swellapp/swell-backend/internal/services"
)

type PurchaseHandler struct {
	purchaseService *services.PurchaseService
}

func NewPurchaseHandler(purchaseService *services.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

// POST /buy_products
//
// The response reports a business decline (insufficient balance, product
// already sold) as {"success": false} with HTTP 200; only malformed requests
// and storage failures produce error statuses.
func (h *PurchaseHandler) BuyProducts(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		c.Status(http.StatusForbidden)
		return
	}

	var req services.BuyProductsRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Products) == 0 {
		c.Status(http.StatusForbidden)
		return
	}

	success, err := h.purchaseService.Buy(callerID, req.Products)
	if err != nil {
		logrus.WithError(err).Error("Purchase failed")
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": success})
}
