// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/ambassador-platform/internal/config"
	"github.com/your-org/ambassador-platform/internal/domain/analytics"
	"github.com/your-org/ambassador-platform/internal/domain/cart"
	"github.com/your-org/ambassador-platform/internal/domain/catalog"
	"github.com/your-org/ambassador-platform/internal/domain/checkout"
	"github.com/your-org/ambassador-platform/internal/domain/client"
	"github.com/your-org/ambassador-platform/internal/domain/order"
	"github.com/your-org/ambassador-platform/internal/domain/payment"
	"github.com/your-org/ambassador-platform/internal/domain/referral"
	"github.com/your-org/ambassador-platform/internal/domain/wallet"
	"github.com/your-org/ambassador-platform/internal/interfaces/http/handlers"
	"github.com/your-org/ambassador-platform/internal/interfaces/http/middleware"
	"github.com/your-org/ambassador-platform/internal/pkg/auth"
	"github.com/your-org/ambassador-platform/internal/pkg/pdf"
)

// Services bundles the wired domain services for route registration.
type Services struct {
	Catalog   *catalog.Service
	Referral  *referral.Service
	Cart      *cart.Service
	Checkout  *checkout.Service
	Orders    *order.Service
	Clients   *client.Service
	Wallet    *wallet.Service
	Analytics *analytics.Service
	Gateway   *payment.Client
	Webhook   *payment.Processor
	JWT       *auth.JWTManager
	PDF       *pdf.Service
}

// SetupRoutes registers all API routes
func SetupRoutes(router *gin.Engine, services *Services, cfg *config.Config, log *logrus.Logger) {
	authHandler := handlers.NewAuthHandler(services.Referral, services.JWT, cfg)
	referralHandler := handlers.NewReferralHandler(services.Referral)
	catalogHandler := handlers.NewCatalogHandler(services.Catalog, services.Referral)
	cartHandler := handlers.NewCartHandler(services.Cart, cfg)
	checkoutHandler := handlers.NewCheckoutHandler(services.Checkout)
	webhookHandler := handlers.NewWebhookHandler(services.Webhook, log)
	ambassadorHandler := handlers.NewAmbassadorHandler(services.Referral)
	distributorHandler := handlers.NewDistributorHandler(services.Referral)
	clientHandler := handlers.NewClientHandler(services.Clients, services.Analytics)
	orderHandler := handlers.NewOrderHandler(services.Orders, services.Referral, services.PDF)
	walletHandler := handlers.NewWalletHandler(services.Wallet)
	analyticsHandler := handlers.NewAnalyticsHandler(services.Analytics)
	paymentHandler := handlers.NewPaymentHandler(services.Gateway, services.Referral)

	// Public storefront endpoints. Paths are the wire contract of the
	// deployed storefront and the gateway webhook configuration.
	router.GET("/api/pais", referralHandler.ResolveCountry)
	router.POST("/create-preference", checkoutHandler.CreatePreference)
	router.POST("/webhook", webhookHandler.HandleNotification)

	api := router.Group("/api/v1")

	// Authentication
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/register", authHandler.RegisterBusiness)
		authGroup.POST("/refresh", authHandler.RefreshToken)
		authGroup.GET("/profile", middleware.AuthMiddleware(services.JWT), authHandler.Profile)
	}

	// Public catalog
	api.GET("/products", catalogHandler.ListProducts)
	api.GET("/products/:id", catalogHandler.GetProduct)

	// Session cart
	cartGroup := api.Group("/cart")
	{
		cartGroup.GET("", cartHandler.GetCart)
		cartGroup.GET("/count", cartHandler.GetCartCount)
		cartGroup.POST("/items", cartHandler.AddItem)
		cartGroup.PUT("/items/:id", cartHandler.UpdateItem)
		cartGroup.DELETE("/items/:id", cartHandler.RemoveItem)
		cartGroup.DELETE("", cartHandler.ClearCart)
	}

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(services.JWT))

	// Ambassador management (distributor-owned)
	ambassadors := protected.Group("/ambassadors")
	ambassadors.Use(middleware.RequireRoles(referral.RoleDistributor))
	{
		ambassadors.POST("", ambassadorHandler.Create)
		ambassadors.GET("", ambassadorHandler.List)
		ambassadors.PUT("/:id", ambassadorHandler.Update)
		ambassadors.DELETE("/:id", ambassadorHandler.Delete)
	}

	// Distributor management (business-owned)
	distributors := protected.Group("/distributors")
	distributors.Use(middleware.RequireRoles(referral.RoleBusiness))
	{
		distributors.POST("", distributorHandler.Create)
		distributors.GET("", distributorHandler.List)
		distributors.PUT("/:id", distributorHandler.Update)
		distributors.DELETE("/:id", distributorHandler.Delete)
	}

	// Clients
	clients := protected.Group("/clients")
	{
		clients.POST("", middleware.RequireRoles(referral.RoleAmbassador), clientHandler.Create)
		clients.GET("", middleware.RequireRoles(referral.RoleAmbassador), clientHandler.List)
		clients.GET("/network", clientHandler.Network)
	}

	// Orders
	orders := protected.Group("/orders")
	{
		orders.GET("", middleware.RequireRoles(referral.RoleAmbassador), orderHandler.ListMine)
		orders.GET("/approved", middleware.RequireRoles(referral.RoleAmbassador), orderHandler.ListApproved)
		orders.GET("/client/:email", middleware.RequireRoles(referral.RoleAmbassador), orderHandler.ListByClient)
		orders.GET("/network", middleware.RequireRoles(referral.RoleBusiness, referral.RoleDistributor), orderHandler.Network)
		orders.GET("/receipt/:id", middleware.RequireRoles(referral.RoleAmbassador), orderHandler.Receipt)
	}

	// Wallet
	walletGroup := protected.Group("/wallet")
	walletGroup.Use(middleware.RequireRoles(referral.RoleAmbassador))
	{
		walletGroup.GET("", walletHandler.Get)
		walletGroup.POST("/recalculate", walletHandler.Recalculate)
	}

	// Dashboard
	protected.GET("/dashboard/metrics", analyticsHandler.Dashboard)

	// Gateway payments (business-owned credentials)
	protected.GET("/payments", middleware.RequireRoles(referral.RoleBusiness), paymentHandler.Search)
}
