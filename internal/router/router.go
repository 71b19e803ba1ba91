// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/phonemarket/backend/internal/config"
	"github.com/phonemarket/backend/internal/handlers"
	"github.com/phonemarket/backend/internal/i18n"
	"github.com/phonemarket/backend/internal/markup"
	"github.com/phonemarket/backend/internal/metrics"
	"github.com/phonemarket/backend/internal/middleware"
	"github.com/phonemarket/backend/internal/pricelist"
	"github.com/phonemarket/backend/internal/repository"
	"github.com/phonemarket/backend/internal/services"
	"github.com/phonemarket/backend/internal/session"
)

const version = "1.0.0"

// Dependencies are the long-lived objects the HTTP layer is built from.
type Dependencies struct {
	DB       *gorm.DB
	Config   *config.Config
	Sessions session.Store
	Archive  *services.ArchiveService
}

func Initialize(deps Dependencies) (*gin.Engine, error) {
	db, cfg := deps.DB, deps.Config

	policy, err := markup.NewPolicy(cfg.Markup)
	if err != nil {
		return nil, err
	}

	// Initialize services
	store := repository.NewGormStore(db)
	resolver := markup.NewResolver(store, policy)
	loader := pricelist.NewLoader(store)

	archive := deps.Archive
	if archive == nil {
		if archive, err = services.NewArchiveService(cfg); err != nil {
			return nil, err
		}
	}

	catalogService := services.NewCatalogService(store, resolver)
	pricingService := services.NewPricingService(store, resolver)
	cartService := services.NewCartService(db, resolver)
	notificationService := services.NewNotificationService(db, cfg)
	orderService := services.NewOrderService(db, resolver)
	orderService.SetNotifier(notificationService)
	navigationService := services.NewNavigationService(deps.Sessions, catalogService)
	adminService := services.NewAdminService(db, loader, archive, cfg)
	adminConsole := services.NewAdminConsole(deps.Sessions, pricingService)

	// Initialize handlers
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService)
	navigationHandler := handlers.NewNavigationHandler(navigationService)
	adminHandler := handlers.NewAdminHandler(adminService, pricingService, adminConsole)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Server.CORSOrigins))
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.UserIdentity(cfg))

	orderLimit, uploadLimit := pass, pass
	if cfg.Server.RateLimit {
		r.Use(middleware.GeneralRateLimit())
		orderLimit, uploadLimit = middleware.OrderRateLimit(), middleware.UploadRateLimit()
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		status, code := "healthy", http.StatusOK
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			status, code = "degraded", http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":    status,
			"version":   version,
			"policy":    policy.Name(),
			"languages": i18n.GetSupportedLanguages(),
		})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Catalog routes
		catalog := v1.Group("/catalog")
		{
			catalog.POST("/classify", catalogHandler.Classify)
			catalog.GET("/:source/tree", catalogHandler.GetTree)
			catalog.GET("/:source/parents/:parent/categories", catalogHandler.GetCategories)
			catalog.GET("/:source/categories/:category/products", catalogHandler.GetProducts)
			catalog.GET("/:source/categories/:category/groups", catalogHandler.GetGroups)
		}

		// Cart routes
		cart := v1.Group("/cart")
		cart.Use(middleware.UserRequired())
		{
			cart.GET("", cartHandler.GetCart)
			cart.DELETE("", cartHandler.ClearCart)
			cart.POST("/items", cartHandler.AddItem)
			cart.PUT("/items/:product_id", cartHandler.UpdateItem)
			cart.DELETE("/items/:product_id", cartHandler.RemoveItem)
		}

		// Order routes
		orders := v1.Group("/orders")
		orders.Use(middleware.UserRequired())
		{
			orders.POST("", orderLimit, orderHandler.CreateOrder)
			orders.GET("", orderHandler.GetOrders)
			orders.GET("/:id", orderHandler.GetOrder)
		}

		// Navigation routes
		navigation := v1.Group("/navigation")
		navigation.Use(middleware.UserRequired())
		{
			navigation.GET("", navigationHandler.Current)
			navigation.POST("/open", navigationHandler.Open)
			navigation.POST("/back", navigationHandler.Back)
			navigation.DELETE("", navigationHandler.Reset)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AdminRequired())
		admin.Use(middleware.AuditLogMiddleware(db))
		{
			admin.POST("/pricelists", uploadLimit, adminHandler.UploadPriceList)
			admin.DELETE("/products", adminHandler.ClearProducts)
			admin.GET("/stats", adminHandler.GetStats)
			admin.GET("/help", adminHandler.GetHelp)
			admin.POST("/commands", adminHandler.RunCommand)
			admin.GET("/prompts", adminHandler.GetPrompt)
			admin.POST("/prompts", adminHandler.CreatePrompt)
			admin.DELETE("/prompts", adminHandler.CancelPrompt)
			admin.GET("/notifications", notificationHandler.GetNotifications)
			admin.POST("/notifications/:id/read", notificationHandler.MarkRead)

			markupRoutes := admin.Group("/markup")
			{
				markupRoutes.GET("", adminHandler.GetMarkup)
				markupRoutes.PUT("", adminHandler.SetMarkup)
				markupRoutes.PUT("/preorder", adminHandler.SetPreorderMarkup)
				markupRoutes.GET("/users", adminHandler.ListUserMarkups)
				markupRoutes.GET("/users/:user_id", adminHandler.GetUserMarkup)
				markupRoutes.PUT("/users/:user_id", adminHandler.SetUserMarkup)
				markupRoutes.DELETE("/users/:user_id", adminHandler.DeleteUserMarkup)
			}
		}
	}

	return r, nil
}

func pass(c *gin.Context) {
	c.Next()
}
