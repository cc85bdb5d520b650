// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/swellapp/swell-backend/internal/config"
	"github.com/swellapp/swell-backend/internal/handlers"
	"github.com/swellapp/swell-backend/internal/middleware"
	"github.com/swellapp/swell-backend/internal/services"
)

// Initialize wires services, handlers, and routes. The route table keeps the
// historical flat layout: no version prefix, snake_case paths, path
// parameters for ids.
func Initialize(db *gorm.DB, cfg *config.Config) (*gin.Engine, error) {
	// Initialize services
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}
	thumbnailService := services.NewThumbnailService(cfg)

	userService := services.NewUserService(db)
	socialService := services.NewSocialService(db)
	productService := services.NewProductService(db)
	purchaseService := services.NewPurchaseService(db)
	messageService := services.NewMessageService(db)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService, storageService, cfg.Storage.DefaultBio)
	socialHandler := handlers.NewSocialHandler(socialService)
	productHandler := handlers.NewProductHandler(productService, storageService, thumbnailService)
	purchaseHandler := handlers.NewPurchaseHandler(purchaseService)
	messageHandler := handlers.NewMessageHandler(messageService)

	// Initialize Gin router
	r := gin.New()
	r.MaxMultipartMemory = cfg.Storage.MaxUploadBytes

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.Identity(middleware.VerifierFor(cfg)))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// Stored media
	r.Static("/files", cfg.Storage.FilesDir)

	// Users
	r.POST("/register", userHandler.Register)
	r.GET("/get_my_profile", userHandler.GetMyProfile)
	r.GET("/get_user_by_id/:id", userHandler.GetUserByID)
	r.GET("/get_user_by_username/:username", userHandler.GetUserByUsername)
	r.GET("/get_user_by_eth/:eth_address", userHandler.GetUserByEthAddress)
	r.GET("/is_registered/:eth_address", userHandler.IsRegistered)
	r.POST("/search", userHandler.Search)
	r.POST("/upload_profile", userHandler.UploadProfile)

	// Social graph
	r.GET("/followers/:id", socialHandler.Followers)
	r.GET("/followees/:id", socialHandler.Followees)
	r.GET("/follow/:id", socialHandler.Follow)
	r.GET("/unfollow/:id", socialHandler.Unfollow)

	// Products
	r.POST("/upload_product", productHandler.UploadProduct)
	r.GET("/get_products_feed", productHandler.Feed)
	r.GET("/get_my_products_feed", productHandler.MyFeed)
	r.GET("/get_products_feed_by_user/:id", productHandler.FeedByUser)
	r.GET("/get_product_by_id/:id", productHandler.GetProductByID)

	// Purchases
	r.POST("/buy_products", purchaseHandler.BuyProducts)

	// Messaging
	r.POST("/send_message", messageHandler.SendMessage)
	r.POST("/get_all_messages", messageHandler.GetAllMessages)
	r.GET("/get_my_threads", messageHandler.GetMyThreads)

	return r, nil
}
