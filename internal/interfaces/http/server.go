// internal/interfaces/http/server.go
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

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
	"github.com/your-org/ambassador-platform/internal/infrastructure/database/redis"
	"github.com/your-org/ambassador-platform/internal/interfaces/http/middleware"
	"github.com/your-org/ambassador-platform/internal/interfaces/http/routes"
	"github.com/your-org/ambassador-platform/internal/pkg/auth"
	"github.com/your-org/ambassador-platform/internal/pkg/pdf"
	"gorm.io/gorm"
)

// Server wraps the HTTP server and its dependencies
type Server struct {
	config     *config.Config
	db         *gorm.DB
	redis      *redis.Client
	log        *logrus.Logger
	router     *gin.Engine
	httpServer *http.Server
}

// NewServer creates a new HTTP server
func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, log *logrus.Logger) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	server := &Server{
		config: cfg,
		db:     db,
		redis:  redisClient,
		log:    log,
		router: gin.New(),
	}

	server.setupMiddleware()
	server.setupRoutes()

	server.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      server.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return server
}

func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(middleware.RequestID())
	s.router.Use(middleware.Logger(s.log))
	s.router.Use(middleware.CORS(s.config.Security.AllowedOrigins))
	s.router.Use(middleware.SecurityHeaders())
	s.router.Use(middleware.RequestSizeLimit(s.config.Server.MaxRequestSize))
	s.router.Use(middleware.RateLimit(s.redis, s.config))
	s.router.Use(middleware.Timeout(s.config.Server.RequestTimeout))
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.healthCheck)
	s.router.GET("/ready", s.readyCheck)

	jwtManager := auth.NewJWTManager(s.config)
	gateway := payment.NewClient(s.config)

	catalogService := catalog.NewService(s.db)
	referralService := referral.NewService(s.db, s.redis, s.config, s.log)
	cartService := cart.NewService(cart.NewRedisStore(s.redis, s.config), catalogService, referralService, s.log)
	clientService := client.NewService(s.db)
	orderService := order.NewService(s.db, clientService, s.log)
	checkoutService := checkout.NewService(orderService, referralService, gateway, s.config, s.log)
	walletService := wallet.NewService(s.db, s.config, s.log)
	analyticsService := analytics.NewService(s.db, referralService)
	webhookProcessor := payment.NewProcessor(referralService, gateway, orderService, s.log)
	pdfService := pdf.NewService(s.config)

	routes.SetupRoutes(s.router, &routes.Services{
		Catalog:   catalogService,
		Referral:  referralService,
		Cart:      cartService,
		Checkout:  checkoutService,
		Orders:    orderService,
		Clients:   clientService,
		Wallet:    walletService,
		Analytics: analyticsService,
		Gateway:   gateway,
		Webhook:   webhookProcessor,
		JWT:       jwtManager,
		PDF:       pdfService,
	}, s.config, s.log)
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.WithField("addr", s.httpServer.Addr).Info("starting HTTP server")
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// healthCheck reports process liveness
func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": s.config.App.Name,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// readyCheck reports dependency readiness
func (s *Server) readyCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	checks := gin.H{}
	healthy := true

	if sqlDB, err := s.db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		checks["database"] = "unavailable"
		healthy = false
	} else {
		checks["database"] = "ok"
	}

	if err := s.redis.HealthCheck(ctx); err != nil {
		checks["redis"] = "unavailable"
		healthy = false
	} else {
		checks["redis"] = "ok"
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"checks": checks})
}
