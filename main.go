// File: carebook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"carebook/config"
	"carebook/cron"
	"carebook/database"
	bookingRepoPkg "carebook/database/repository/booking"
	proposalRepoPkg "carebook/database/repository/proposal"
	"carebook/handlers"
	"carebook/middleware"
	"carebook/routes"
	"carebook/services/booking"
	"carebook/services/notification"
	"carebook/services/pricing"
	"carebook/services/proposal"
	"carebook/services/schedule"
	"carebook/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitEventsClient()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(cors.Default())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	propRepo := proposalRepoPkg.NewMongoProposalRepo()
	bookRepo := bookingRepoPkg.NewMongoBookingRepo()

	// The pricing snapshot is resolved once here; the engine never reads
	// ambient configuration.
	phases := make(map[string]pricing.PhaseFees, len(config.AppConfig.PricingPhases))
	for id, fees := range config.AppConfig.PricingPhases {
		phases[id] = pricing.PhaseFees{ClientFeePct: fees.ClientFeePct, CarerFeePct: fees.CarerFeePct}
	}
	pricingEngine := pricing.NewEngine(pricing.Config{
		MinimumRate:       config.AppConfig.MinimumRate,
		DefaultRate:       config.AppConfig.DefaultRate,
		PromoWindowMonths: config.AppConfig.PromoWindowMonths,
		Phases:            phases,
	})

	// services.
	notificationService, err := notification.NewStreamNotificationService(utils.GetEventsClient())
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}

	proposalService := &proposal.DefaultProposalService{
		Repo:        propRepo,
		MinimumRate: config.AppConfig.MinimumRate,
		Logger:      logger,
	}

	assemblerService := &booking.DefaultAssemblerService{
		Pricing:   pricingEngine,
		Expander:  schedule.Expander{MaxOccurrences: config.AppConfig.MaxOccurrences},
		Proposals: proposalService,
		Repo:      bookRepo,
		Notifier:  notificationService,
		Logger:    logger,
	}

	quoteHandler := handlers.NewQuoteHandler(pricingEngine, logger)
	proposalHandler := handlers.NewProposalHandler(proposalService, logger)
	bookingHandler := handlers.NewBookingHandler(assemblerService, bookRepo, logger)

	routes.RegisterRoutes(router, quoteHandler, proposalHandler, bookingHandler)

	// Background sweep for stale pending proposals.
	cron.InitExpirySweeper(proposalService, logger)

	utils.StartHealthMonitor(map[string]*redis.Client{
		"cache":  utils.GetCacheClient(),
		"events": utils.GetEventsClient(),
	}, database.MongoClient)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Sugar().Infof("main: listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: forced shutdown: %v", err)
	}
	if err := database.MongoClient.Disconnect(ctx); err != nil {
		logger.Sugar().Errorf("main: mongo disconnect: %v", err)
	}
}
