package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/danieljproctor94-cmd/Fitness-App-sub001/internal/config"
	"github.com/danieljproctor94-cmd/Fitness-App-sub001/internal/database"
	"github.com/danieljproctor94-cmd/Fitness-App-sub001/internal/handlers"
	"github.com/danieljproctor94-cmd/Fitness-App-sub001/internal/ledger"
	"github.com/danieljproctor94-cmd/Fitness-App-sub001/internal/notify"
	"github.com/danieljproctor94-cmd/Fitness-App-sub001/internal/prompt"
	"github.com/danieljproctor94-cmd/Fitness-App-sub001/internal/repository"
	"github.com/danieljproctor94-cmd/Fitness-App-sub001/internal/routes"
	"github.com/danieljproctor94-cmd/Fitness-App-sub001/internal/scheduler"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.DatabaseURI == "" {
		log.Fatal("DATABASE_URI is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.New(ctx, cfg.DatabaseURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Connected to database")

	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	taskRepo := repository.NewTaskRepository(db)
	markerRepo := repository.NewMarkerRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	journalRepo := repository.NewJournalRepository(db)

	lg := ledger.New(markerRepo)

	var fanout notify.PushFanout
	if cfg.VAPIDPublicKey != "" && cfg.VAPIDPrivateKey != "" {
		transport := notify.NewWebPushTransport(cfg.VAPIDPublicKey, cfg.VAPIDPrivateKey, cfg.VAPIDSubscriber)
		fanout = notify.NewFanout(subscriptionRepo, transport)
	} else {
		log.Println("VAPID keys not configured, push delivery disabled")
	}

	var telegram notify.TelegramSender
	if cfg.TelegramToken != "" {
		channel, err := notify.NewTelegramChannel(cfg.TelegramToken)
		if err != nil {
			log.Printf("Failed to create Telegram channel, continuing without: %v", err)
		} else {
			telegram = channel
		}
	}

	prompts := prompt.New(cfg.AIAPIKey, cfg.AIBaseURL, cfg.AIModel)

	// Server context: no native notifier, delivery is push fan-out.
	dispatcher := notify.NewDispatcher(lg, notificationRepo, nil, fanout, telegram, settingsRepo)

	poller := scheduler.NewPoller(taskRepo, lg, dispatcher, cfg.PollInterval, cfg.CatchUpWindow)
	poller.Start()
	defer poller.Stop()

	sweep := scheduler.NewSweep(taskRepo, settingsRepo, journalRepo, prompts, lg, dispatcher)

	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()
	router.Use(cors.Default())
	routes.SetupRoutes(
		router,
		handlers.NewSweepHandler(sweep),
		handlers.NewSubscriptionHandler(subscriptionRepo),
		handlers.NewNotificationHandler(notificationRepo),
		handlers.NewTaskHandler(taskRepo),
	)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("Shutting down...")
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("HTTP server shutdown: %v", err)
		}
	}()

	log.Printf("Starting server on :%s", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server error: %v", err)
	}
}
