// File: lavellh/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lavellh/config"
	"lavellh/cron"
	"lavellh/database"
	catalogRepo "lavellh/database/repository/catalog"
	reservationRepo "lavellh/database/repository/reservation"
	"lavellh/handlers"
	"lavellh/middleware"
	"lavellh/routes"
	"lavellh/services/booking"
	"lavellh/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()
	utils.InitLockClient()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(cors.Default())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	resRepo := reservationRepo.NewMongoReservationRepo()
	catRepo := catalogRepo.NewMongoCatalogRepo()

	indexCtx, indexCancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := resRepo.EnsureIndexes(indexCtx); err != nil {
		logger.Sugar().Fatalf("main: failed to create reservation indexes: %v", err)
	}
	indexCancel()

	// services.
	paymentCoordinator := booking.NewPaymentCoordinator(logger, booking.StripeProcessor{}, config.AppConfig.Currency)
	taskScheduler := cron.NewAsynqScheduler()

	reservationService := &booking.DefaultReservationService{
		Repo:     resRepo,
		Catalog:  catRepo,
		Payments: paymentCoordinator,
		Detector: &booking.ConflictDetector{Repo: resRepo},
		Locks:    &booking.RedisLockManager{Client: utils.GetLockClient()},
		Tasks:    taskScheduler,
		Logger:   logger,
	}

	cron.InitReservationWorker(reservationService)

	// Assemble the handler bundle and register routes.
	handlerBundle := &routes.HandlerBundle{
		Booking:     handlers.NewBookingHandler(reservationService, logger),
		Appointment: handlers.NewAppointmentHandler(reservationService, logger),
		Provider:    handlers.NewProviderReservationHandler(reservationService, logger),
		Admin:       handlers.NewAdminHandler(reservationService, logger),
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
