package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"targ/internal/adapter/api"
	"targ/internal/adapter/api/handler"
	apimiddleware "targ/internal/adapter/api/middleware"
	"targ/internal/adapter/api/router"
	"targ/internal/adapter/repository"
	"targ/internal/domain/service"
	"targ/internal/infrastructure/cache"
	"targ/internal/infrastructure/events"
	"targ/internal/infrastructure/firebase"
	"targ/internal/infrastructure/mail"
	"targ/internal/infrastructure/metrics"
	"targ/internal/infrastructure/ratelimit"
	"targ/internal/infrastructure/storage"
	"targ/internal/infrastructure/websocket"
	"targ/internal/usecase"
	"targ/pkg/config"
	"targ/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Init(cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	firebaseApp, err := firebase.NewApp(ctx, cfg.FirebaseProject, cfg.FirebaseServiceAccountJSON, cfg.FirebaseServiceAccountPath, cfg.StorageBucket)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firebaseApp.Firestore(ctx)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	storageClient, err := storage.NewCloudStorageClient(
		ctx,
		cfg.StorageBucket,
		firebase.ClientOptions(cfg.FirebaseServiceAccountJSON, cfg.FirebaseServiceAccountPath)...,
	)
	if err != nil {
		log.Fatalf("Failed to initialize Cloud Storage: %v", err)
	}
	defer storageClient.Close()

	checks := map[string]handler.HealthCheck{
		"firestore": func(ctx context.Context) error {
			_, err := firestoreClient.Collection("users").Limit(1).Documents(ctx).GetAll()
			return err
		},
	}

	var listingCache service.ListingCache = cache.NoopListingCache{}
	if cfg.RedisAddr != "" {
		redisClient, err := cache.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		listingCache = cache.NewRedisListingCache(redisClient, cfg.ListingCacheTTL)
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
		logger.Info("Listing cache enabled at %s", cfg.RedisAddr)
	}

	var publisher service.EventPublisher = events.NoopPublisher{}
	if cfg.NatsURL != "" {
		natsPublisher, err := events.NewNatsPublisher(cfg.NatsURL)
		if err != nil {
			log.Fatalf("Failed to connect to NATS: %v", err)
		}
		defer natsPublisher.Close()
		publisher = natsPublisher
		checks["nats"] = natsPublisher.Check
		logger.Info("Publishing domain events to %s", cfg.NatsURL)
	}

	var mailer service.Mailer = mail.NoopMailer{}
	if cfg.SMTPHost != "" {
		mailer = mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
	}

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	listingRepo := repository.NewFirestoreListingRepository(firestoreClient)
	favoriteRepo := repository.NewFirestoreFavoriteRepository(firestoreClient)
	conversationRepo := repository.NewFirestoreConversationRepository(firestoreClient)
	notificationRepo := repository.NewFirestoreNotificationRepository(firestoreClient)
	reportRepo := repository.NewFirestoreReportRepository(firestoreClient)
	invoiceRepo := repository.NewFirestoreInvoiceRepository(firestoreClient)
	reviewRepo := repository.NewFirestoreReviewRepository(firestoreClient)
	uploadRepo := repository.NewFirestoreUploadRepository(firestoreClient)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient)
	recorder := metrics.New()

	limiter := ratelimit.NewRateLimiter(ratelimit.DefaultPolicies)
	limiter.StartCleanupRoutine(ctx)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	notificationUseCase := usecase.NewNotificationUseCase(notificationRepo, wsManager)
	userUseCase := usecase.NewUserUseCase(userRepo, wsManager)
	reviewUseCase := usecase.NewReviewUseCase(reviewRepo, userRepo, recorder)
	invoiceUseCase := usecase.NewInvoiceUseCase(invoiceRepo, mailer, notificationUseCase, publisher, recorder, usecase.InvoiceConfig{
		VATRate: cfg.VATRate,
		DueDays: cfg.InvoiceDueDays,
	})
	promotionUseCase := usecase.NewPromotionUseCase(listingRepo, userRepo, invoiceUseCase, listingCache, publisher, wsManager, recorder)
	favoriteUseCase := usecase.NewFavoriteUseCase(favoriteRepo, listingRepo, recorder)
	conversationUseCase := usecase.NewConversationUseCase(conversationRepo, listingRepo, userRepo, notificationUseCase, wsManager, limiter, recorder)
	reportUseCase := usecase.NewReportUseCase(reportRepo, listingRepo, notificationUseCase, publisher, limiter, recorder)
	listingUseCase := usecase.NewListingUseCase(
		listingRepo,
		userRepo,
		favoriteRepo,
		conversationRepo,
		invoiceRepo,
		uploadRepo,
		reviewUseCase,
		notificationUseCase,
		promotionUseCase,
		storageClient,
		listingCache,
		publisher,
		recorder,
	)

	handler.Setup(
		listingUseCase,
		promotionUseCase,
		favoriteUseCase,
		conversationUseCase,
		notificationUseCase,
		reportUseCase,
		invoiceUseCase,
		userUseCase,
		reviewUseCase,
	)
	handler.SetupFileHandler(listingUseCase, cfg.MaxUploadSize)
	handler.SetupAdminHandler(listingUseCase)
	handler.SetupHealthHandler(checks)
	handler.SetupWebSocketHandler(wsManager, cfg.CORSAllowedOrigins)
	handler.SetupDevTokenHandler(firebaseAuthClient, userRepo)

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSAllowedOrigins,
	}))
	e.Use(recorder.Middleware())
	e.Use(apimiddleware.RateLimit(limiter))

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(firebaseAuthClient)
	adminMiddleware := apimiddleware.NewAdminMiddleware(userRepo)

	router.Setup(e, authMiddleware, adminMiddleware)
	router.SetupMetricsRouter(e, recorder.Handler())
	router.SetupDevRouter(e, cfg.Environment)

	go func() {
		logger.Info("Starting server on port %s...", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server stopped: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed: %v", err)
	}
}
