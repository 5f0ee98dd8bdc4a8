// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/franchise-backend/internal/config"
	"github.com/your-org/franchise-backend/internal/interfaces/http/handlers"
	"github.com/your-org/franchise-backend/internal/interfaces/http/middleware"
	"github.com/your-org/franchise-backend/internal/pkg/roles"
	"gorm.io/gorm"
)

// SetupRoutes wires every API group onto the versioned router
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	setupAuthRoutes(rg, db, cfg)
	setupUserRoutes(rg, db, cfg)
	setupProductRoutes(rg, db, cfg)
	setupCartRoutes(rg, db, redisClient, cfg)
	setupOrderRoutes(rg, db, redisClient, cfg)
	setupLoyaltyRoutes(rg, db, cfg)
	setupInvoiceRoutes(rg, db, cfg)
	setupStaffRoutes(rg, db, cfg)
}

func setupAuthRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(db, cfg)

	auth := rg.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)

		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.POST("/change-password", authHandler.ChangePassword)
		}
	}
}

func setupUserRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	userHandler := handlers.NewUserHandler(db, cfg)

	users := rg.Group("/users")
	users.Use(middleware.AuthMiddleware(cfg))
	{
		users.GET("/profile", userHandler.GetProfile)
		users.PUT("/profile", userHandler.UpdateProfile)

		users.GET("/addresses", userHandler.ListAddresses)
		users.POST("/addresses", userHandler.CreateAddress)
		users.PUT("/addresses/:id", userHandler.UpdateAddress)
		users.DELETE("/addresses/:id", userHandler.DeleteAddress)
		users.PUT("/addresses/:id/default", userHandler.SetDefaultAddress)
	}
}

func setupProductRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	productHandler := handlers.NewProductHandler(db, cfg)

	products := rg.Group("/products")
	{
		// Catalog browsing is public
		products.GET("", productHandler.GetProducts)
		products.GET("/categories", productHandler.GetCategories)
		products.GET("/:id", productHandler.GetProduct)

		// Catalog management is staff only
		managed := products.Group("")
		managed.Use(middleware.AuthMiddleware(cfg))
		managed.Use(middleware.RequireStaff())
		{
			managed.POST("", productHandler.CreateProduct)
			managed.PUT("/:id", productHandler.UpdateProduct)
			managed.DELETE("/:id", productHandler.DeleteProduct)
			managed.POST("/categories", productHandler.CreateCategory)
		}
	}
}

func setupCartRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	cartHandler := handlers.NewCartHandler(db, redisClient, cfg)

	cart := rg.Group("/cart")
	cart.Use(middleware.AuthMiddleware(cfg))
	{
		cart.GET("", cartHandler.GetCart)
		cart.POST("/items", cartHandler.AddToCart)
		cart.PUT("/items/:id", cartHandler.UpdateCartItem)
		cart.DELETE("/items/:id", cartHandler.RemoveCartItem)
		cart.DELETE("", cartHandler.ClearCart)
	}
}

func setupOrderRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	orderHandler := handlers.NewOrderHandler(db, redisClient, cfg)
	invoiceHandler := handlers.NewInvoiceHandler(db, cfg)

	orders := rg.Group("/orders")
	orders.Use(middleware.AuthMiddleware(cfg))
	{
		orders.POST("", orderHandler.CreateOrder)
		orders.GET("/my", orderHandler.GetMyOrders)
		orders.GET("/number/:number", orderHandler.GetOrderByNumber)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.POST("/:id/cancel", orderHandler.CancelOrder)
		orders.POST("/:id/deliver", middleware.RequirePermission(roles.PermConfirmDelivery), orderHandler.ConfirmDelivery)

		// Invoices hang off the order they settle
		orders.POST("/:id/invoice", middleware.RequireStaff(), invoiceHandler.GenerateInvoice)
		orders.GET("/:id/invoice", invoiceHandler.GetInvoice)
		orders.GET("/:id/invoice/pdf", middleware.RequirePermission(roles.PermDownloadInvoice), invoiceHandler.DownloadInvoicePDF)

		// Workflow moves are permission gated per operation
		staff := orders.Group("")
		{
			staff.GET("", middleware.RequirePermission(roles.PermViewAllOrders), orderHandler.GetOrders)
			staff.PUT("/:id/status", middleware.RequirePermission(roles.PermConfirmOrder), orderHandler.UpdateOrderStatus)
			staff.POST("/:id/payment/confirm", middleware.RequirePermission(roles.PermConfirmOrder), orderHandler.ConfirmPayment)
			staff.POST("/:id/packing/:item_id", middleware.RequirePermission(roles.PermStartPacking), orderHandler.MarkItemPacked)
			staff.POST("/:id/ship", middleware.RequirePermission(roles.PermRecordShipment), orderHandler.RecordShipment)
			staff.PUT("/:id/delivery-fee", middleware.RequirePermission(roles.PermSetDeliveryFee), orderHandler.SetDeliveryFee)
		}
	}
}

func setupLoyaltyRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	loyaltyHandler := handlers.NewLoyaltyHandler(db, cfg)

	loyalty := rg.Group("/loyalty")
	loyalty.Use(middleware.AuthMiddleware(cfg))
	{
		loyalty.GET("/account", loyaltyHandler.GetAccount)
		loyalty.GET("/transactions", loyaltyHandler.GetTransactions)
		loyalty.GET("/rewards", loyaltyHandler.GetRewards)
	}
}

func setupInvoiceRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	invoiceHandler := handlers.NewInvoiceHandler(db, cfg)

	invoices := rg.Group("/invoices")
	invoices.Use(middleware.AuthMiddleware(cfg))
	{
		invoices.GET("/my", invoiceHandler.GetMyInvoices)
		invoices.GET("/number/:number", invoiceHandler.GetInvoiceByNumber)
	}
}

func setupStaffRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	userHandler := handlers.NewUserHandler(db, cfg)
	loyaltyHandler := handlers.NewLoyaltyHandler(db, cfg)

	staff := rg.Group("/staff")
	staff.Use(middleware.AuthMiddleware(cfg))
	staff.Use(middleware.RequireStaff())
	{
		staff.GET("/users", userHandler.ListUsers)
		staff.PUT("/users/:id/role", middleware.RequireRole(roles.RoleOwner, roles.RoleAdmin), userHandler.SetUserRole)
		staff.PUT("/users/:id/active", middleware.RequireRole(roles.RoleOwner, roles.RoleAdmin), userHandler.SetUserActive)
		staff.POST("/loyalty/:user_id/adjust", middleware.RequirePermission(roles.PermAdjustLoyalty), loyaltyHandler.AdjustPoints)
	}
}
