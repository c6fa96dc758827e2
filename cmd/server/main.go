package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"motora/internal/config"
	"motora/internal/fees"
	"motora/internal/handlers"
	"motora/internal/middleware"
	"motora/internal/models"
	"motora/internal/repositories/mongodb"
	"motora/internal/services"
	"motora/internal/utils"
	"motora/pkg/cache"
	"motora/pkg/database"
	"motora/pkg/logger"
	"motora/pkg/payout"
	"motora/pkg/websocket"
	"motora/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:  logger.LogLevel(cfg.App.LogLevel),
		Format: cfg.App.LogFormat,
		Output: "stdout",
		Colors: config.IsDevelopment(),
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		appLogger.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.Close()

	if err := database.NewMigrator(db.Database).Up(); err != nil {
		appLogger.Fatalf("Failed to run migrations: %v", err)
	}

	redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		appLogger.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisCache.Close()

	cacheService := services.NewCacheService(redisCache, appLogger)

	hub := websocket.NewHub(appLogger)
	go hub.Run()

	pricingRepo := mongodb.NewPricingRepository(db.Database, cacheService)
	availabilityRepo := mongodb.NewAvailabilityRepository(db.Database, cacheService)
	rideRepo := mongodb.NewRideRepository(db.Database)
	payoutRepo := mongodb.NewPayoutRepository(db.Database)
	feeRepo := mongodb.NewFeePaymentRepository(db.Database)

	defaultFee := fees.Config{
		Type:  models.ServiceFeeType(cfg.Business.WithdrawalFeeType),
		Value: cfg.Business.WithdrawalFeeValue,
	}

	gateway := payout.NewStripeGateway(cfg.Payout.StripeKey)

	pricingService := services.NewPricingService(pricingRepo, availabilityRepo, cacheService, hub, appLogger)
	balanceService := services.NewBalanceService(rideRepo, payoutRepo, feeRepo, appLogger)
	payoutService := services.NewPayoutService(payoutRepo, pricingRepo, balanceService, gateway, hub, defaultFee, appLogger)
	feeService := services.NewFeeService(feeRepo, balanceService, hub, defaultFee, cfg.Business.FeeDeadlineDays, appLogger)
	rideService := services.NewRideService(rideRepo, hub, appLogger)

	quoteHandler := handlers.NewQuoteHandler(pricingService)
	pricingHandler := handlers.NewPricingHandler(pricingService)
	driverHandler := handlers.NewDriverHandler(balanceService, payoutService, feeService, rideService)
	settlementHandler := handlers.NewSettlementHandler(payoutService, feeService)
	rideHandler := handlers.NewRideHandler(rideService)
	wsHandler := websocket.NewHandler(hub)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware(appLogger))

	secretKey := cfg.Security.JWTSecret
	v1 := router.Group("/api/v1")
	{
		routes.SetupPricingRoutes(v1, secretKey, quoteHandler, pricingHandler)
		routes.SetupDriverRoutes(v1, secretKey, driverHandler)
		routes.SetupSettlementRoutes(v1, secretKey, settlementHandler, rideHandler)
	}

	ws := router.Group("/ws")
	ws.Use(middleware.AuthRequired(secretKey))
	ws.GET("", wsHandler.HandleWebSocket)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": cfg.App.Version,
			"time":    utils.FormatTimeISO(time.Now()),
		})
	})

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	appLogger.WithField("addr", addr).Info("Starting server")
	if err := router.Run(addr); err != nil {
		appLogger.Fatalf("Server stopped: %v", err)
	}
}
