// internal/router/router.go
package router

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gadaelectronics/storefront/internal/cart"
	"github.com/gadaelectronics/storefront/internal/checkout"
	"github.com/gadaelectronics/storefront/internal/config"
	"github.com/gadaelectronics/storefront/internal/handlers"
	"github.com/gadaelectronics/storefront/internal/middleware"
	"github.com/gadaelectronics/storefront/internal/payment"
	"github.com/gadaelectronics/storefront/internal/services"
	"github.com/gadaelectronics/storefront/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) (*gin.Engine, error) {
	// Initialize services
	notificationService := services.NewNotificationService(db, cfg)
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage service: %w", err)
	}
	gateway := payment.NewClient(cfg.Payment.KeyID, cfg.Payment.KeySecret, cfg.Payment.BaseURL, nil)

	authService := services.NewAuthService(db, cfg)
	productService := services.NewProductService(db)
	orderService := services.NewOrderService(db, gateway, cfg, notificationService)

	cartStore := cart.NewStore()
	policy := checkout.Policy{
		ShippingFee:       cfg.Checkout.ShippingFee,
		FreeShippingAbove: cfg.Checkout.FreeShippingAbove,
		TaxRate:           cfg.Checkout.TaxRate,
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService)
	cartHandler := handlers.NewCartHandler(cartStore, productService, policy)
	orderHandler := handlers.NewOrderHandler(orderService, cartStore)
	adminHandler := handlers.NewAdminHandler(productService, orderService, storageService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Frontend.BaseURL))
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.POST("/logout", middleware.AuthRequired(), authHandler.Logout)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
		}

		// Catalog routes; a token is not required to browse, but when one is
		// present the request log carries the user id.
		products := v1.Group("/products")
		products.Use(middleware.OptionalAuth())
		{
			products.GET("", productHandler.GetProducts)
			products.GET("/featured", productHandler.GetFeaturedProducts)
			products.GET("/new", productHandler.GetNewProducts)
			products.GET("/:id", productHandler.GetProduct)
		}
		v1.GET("/categories", middleware.OptionalAuth(), productHandler.GetCategories)

		// Cart routes
		cartRoutes := v1.Group("/cart")
		cartRoutes.Use(middleware.AuthRequired())
		{
			cartRoutes.GET("", cartHandler.GetCart)
			cartRoutes.POST("/items", cartHandler.AddItem)
			cartRoutes.PUT("/items/:productId", cartHandler.UpdateItem)
			cartRoutes.DELETE("/items/:productId", cartHandler.RemoveItem)
			cartRoutes.DELETE("", cartHandler.ClearCart)
		}

		// Checkout and order routes
		checkoutRoutes := v1.Group("/checkout")
		checkoutRoutes.Use(middleware.AuthRequired())
		{
			checkoutRoutes.POST("", middleware.CheckoutRateLimit(), orderHandler.InitiateCheckout)
			checkoutRoutes.POST("/verify", orderHandler.VerifyPayment)
		}

		orders := v1.Group("/orders")
		orders.Use(middleware.AuthRequired())
		{
			orders.GET("", orderHandler.GetOrders)
			orders.GET("/:id", orderHandler.GetOrder)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			admin.POST("/products", adminHandler.CreateProduct)
			admin.PUT("/products/:id", adminHandler.UpdateProduct)
			admin.POST("/products/:id/images", middleware.UploadRateLimit(), adminHandler.UploadProductImage)
			admin.GET("/orders", adminHandler.GetAllOrders)
		}
	}

	return r, nil
}
