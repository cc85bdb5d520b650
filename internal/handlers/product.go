// internal/handlers/product.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/swellapp/swell-backend/internal/middleware"
	"github.com/swellapp/swell-backend/internal/models"
	"github.com/swellapp/swell-backend/internal/services"
	"github.com/swellapp/swell-backend/internal/utils"
)

type ProductHandler struct {
	productService   *services.ProductService
	storageService   *services.StorageService
	thumbnailService *services.ThumbnailService
}

func NewProductHandler(
	productService *services.ProductService,
	storageService *services.StorageService,
	thumbnailService *services.ThumbnailService,
) *ProductHandler {
	return &ProductHandler{
		productService:   productService,
		storageService:   storageService,
		thumbnailService: thumbnailService,
	}
}

// POST /upload_product
//
// Multipart form with the media payload in the "content" part and scalar
// metadata alongside it. The file is written first; if the database insert
// fails afterwards the stored file is removed again. For videos a thumbnail
// is generated in the background once the product has been committed.
func (h *ProductHandler) UploadProduct(c *gin.Context) {
	if _, ok := middleware.CallerID(c); !ok {
		c.Status(http.StatusForbidden)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		logrus.WithError(err).Error("Failed to parse upload form")
		c.Status(http.StatusInternalServerError)
		return
	}

	upload, err := DecodeProductUploadForm(form)
	if err != nil {
		logrus.WithError(err).Error("Malformed upload form")
		c.Status(http.StatusInternalServerError)
		return
	}

	if !upload.MediaType.Valid() {
		logrus.WithField("media_type", upload.MediaType).Error("Unknown media type")
		c.Status(http.StatusInternalServerError)
		return
	}

	saved, err := h.storageService.SaveUpload(upload.File, upload.MediaType)
	if err != nil {
		logrus.WithError(err).Error("Product upload failed")
		c.Status(http.StatusInternalServerError)
		return
	}

	thumbnailPath := ""
	if upload.MediaType == models.MediaTypeVideo {
		thumbnailPath = h.storageService.ThumbnailPathFor(saved.Path)
	}

	_, err = h.productService.AddProduct(&services.AddProductInput{
		SellerID:      upload.SellerID,
		Description:   upload.Description,
		Price:         upload.Price,
		ProductType:   upload.ProductType,
		MediaType:     upload.MediaType,
		Path:          saved.Path,
		ThumbnailPath: thumbnailPath,
	})
	if err != nil {
		h.storageService.Remove(saved.Path)
		logrus.WithError(err).Error("Failed to store product")
		c.Status(http.StatusInternalServerError)
		return
	}

	if thumbnailPath != "" {
		h.thumbnailService.CreateThumbnailAsync(saved.Path, thumbnailPath)
	}

	c.Status(http.StatusCreated)
}

// GET /get_products_feed
func (h *ProductHandler) Feed(c *gin.Context) {
	if _, ok := middleware.CallerID(c); !ok {
		utils.EnvelopeBadToken(c)
		return
	}

	feed, err := h.productService.Feed()
	if err != nil {
		utils.EnvelopeStorageError(c, err)
		return
	}

	utils.EnvelopeData(c, feed)
}

// GET /get_my_products_feed
func (h *ProductHandler) MyFeed(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		utils.EnvelopeBadToken(c)
		return
	}

	h.replySellerFeed(c, callerID)
}

// GET /get_products_feed_by_user/:id
func (h *ProductHandler) FeedByUser(c *gin.Context) {
	if _, ok := middleware.CallerID(c); !ok {
		utils.EnvelopeBadToken(c)
		return
	}

	sellerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.EnvelopeError(c, http.StatusBadRequest, "invalid user id")
		return
	}

	h.replySellerFeed(c, sellerID)
}

// GET /get_product_by_id/:id
func (h *ProductHandler) GetProductByID(c *gin.Context) {
	if _, ok := middleware.CallerID(c); !ok {
		utils.EnvelopeBadToken(c)
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.EnvelopeError(c, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := h.productService.GetProductByID(id)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			utils.EnvelopeNotFound(c, "Product not found")
			return
		}
		utils.EnvelopeStorageError(c, err)
		return
	}

	utils.EnvelopeData(c, product)
}

func (h *ProductHandler) replySellerFeed(c *gin.Context, sellerID int64) {
	feed, err := h.productService.FeedBySeller(sellerID)
	if err != nil {
		utils.EnvelopeStorageError(c, err)
		return
	}

	utils.EnvelopeData(c, feed)
}
