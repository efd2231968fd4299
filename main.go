// File: bookwell/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookwell/config"
	"bookwell/cron"
	"bookwell/database"
	bookingRepoPkg "bookwell/database/repository/booking"
	catalogRepoPkg "bookwell/database/repository/catalog"
	tenantRepoPkg "bookwell/database/repository/tenant"
	"bookwell/handlers"
	"bookwell/routes"
	"bookwell/services/booking"
	"bookwell/services/conversation"
	"bookwell/services/notification"
	"bookwell/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitSessionCache()
	config.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(cors.Default())

	// repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	tenantRepo := tenantRepoPkg.NewMongoTenantRepo()
	catalogRepo := catalogRepoPkg.NewMongoCatalogRepo()

	// services.
	bookingService := &booking.DefaultBookingService{
		Repo: bookingRepo,
	}

	smsClient := notification.NewHTTPSMSClient(config.AppConfig.SMSAPIKey, config.AppConfig.SMSAPIURL)
	notificationService, err := notification.NewDefaultNotificationService(catalogRepo, config.FCMClient, smsClient)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}

	sessionStore := conversation.NewRedisSessionStore(utils.GetSessionCacheClient())
	machine := &conversation.Machine{
		Store:    sessionStore,
		Catalog:  catalogRepo,
		Bookings: bookingService,
	}

	// Reminder pipeline: hourly scheduler enqueues, async worker delivers.
	queueClient := cron.NewReminderQueueClient()
	defer queueClient.Close()

	scheduler := &cron.ReminderScheduler{
		Tenants:  tenantRepo,
		Bookings: bookingRepo,
		Dispatch: &cron.AsynqDispatcher{Client: queueClient},
	}
	schedulerCtx, stopScheduler := context.WithCancel(context.Background())
	defer stopScheduler()
	go scheduler.Start(schedulerCtx, time.Duration(config.AppConfig.ReminderIntervalMinutes)*time.Minute)

	cron.InitReminderWorker(notificationService, tenantRepo, bookingRepo)

	// handlers.
	handlerBundle := &routes.Handlers{
		Auth:    handlers.NewAuthHandler(catalogRepo),
		Booking: handlers.NewBookingHandler(bookingService, logger),
		Catalog: handlers.NewCatalogHandler(catalogRepo),
		Tenant:  handlers.NewTenantHandler(tenantRepo),
		Chat:    handlers.NewChatHandler(machine),
		Public:  handlers.NewPublicHandler(bookingService),
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

	stopScheduler()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
