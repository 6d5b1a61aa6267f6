package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"focus-backend/internal/config"
	"focus-backend/internal/database"
	"focus-backend/internal/events"
	"focus-backend/internal/gamification"
	"focus-backend/internal/handlers"
	"focus-backend/internal/middleware"
	"focus-backend/internal/repository"
	"focus-backend/internal/router"
	"focus-backend/internal/services"
	"focus-backend/internal/websocket"
	"focus-backend/internal/worker"
)

func main() {
	log.Println("🚀 Starting Focus Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("✗ Invalid configuration: %v", err)
	}
	log.Printf("✓ Environment variables loaded (timezone %s)", cfg.Timezone)

	// ──── Step 2: Initialize PostgreSQL Connection Pool ────
	pool, err := database.NewPostgresPool(cfg.DatabaseURL, database.PoolOptions{MaxConns: int32(cfg.DBMaxConns)})
	if err != nil {
		log.Fatalf("✗ PostgreSQL connection failed: %v", err)
	}
	defer pool.Close()
	log.Println("✓ PostgreSQL connected")

	// ──── Step 3: Initialize Redis Clients ────
	redisClients, err := database.NewRedisClients(cfg.RedisURL)
	if err != nil {
		log.Fatalf("✗ Redis connection failed: %v", err)
	}
	defer redisClients.Close()
	log.Println("✓ Redis connected")

	// ──── Step 4: Run Database Migrations ────
	if err := database.RunMigrations(pool, cfg.MigrationsDir); err != nil {
		log.Fatalf("✗ Database migration failed: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// ──── Step 5: Event Publishers ────
	publishers := events.Fanout{events.NewRedisPublisher(redisClients.Main)}
	if cfg.AMQPURL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.EventsQueue)
		if err != nil {
			log.Fatalf("✗ RabbitMQ connection failed: %v", err)
		}
		defer amqpPublisher.Close()
		publishers = append(publishers, amqpPublisher)
		log.Printf("✓ RabbitMQ connected (queue %s)", cfg.EventsQueue)
	} else {
		log.Println("⚠ AMQP_URL not set, domain events go to Redis only")
	}

	// ──── Initialize Repositories ────
	userRepo := repository.NewUserRepo(pool)
	profileRepo := repository.NewProfileRepo(pool)
	inventoryRepo := repository.NewInventoryRepo(pool)
	studySessionRepo := repository.NewStudySessionRepo(pool)
	goalRepo := repository.NewGoalRepo(pool)
	ledger := repository.NewLedger(pool, cfg.DBTxMaxAttempts)

	// ──── Initialize Services ────
	wheel, err := gamification.NewWheel(cfg.WheelSpinCost, gamification.DefaultPrizes)
	if err != nil {
		log.Fatalf("✗ Wheel configuration invalid: %v", err)
	}
	if !cfg.ShopEnforceCatalog {
		log.Println("⚠ SHOP_ENFORCE_CATALOG=false: purchases trust client-declared prices")
	}

	clock := gamification.SystemClock{}
	jwtAuth := middleware.NewJWTAuth(cfg.JWTSecret, cfg.AccessTokenTTL)
	emailService := services.NewEmailService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.FrontendURL)
	authService := services.NewAuthService(userRepo, redisClients.Main, jwtAuth, cfg.RefreshTokenTTL)
	gameService := services.NewGamificationService(ledger, studySessionRepo, inventoryRepo, services.GamificationOptions{
		Clock:          clock,
		Random:         gamification.DefaultRandom(),
		Location:       cfg.Location,
		Wheel:          wheel,
		Catalog:        gamification.DefaultCatalog(),
		EnforceCatalog: cfg.ShopEnforceCatalog,
		Publisher:      publishers,
	})
	profileService := services.NewProfileService(ledger, userRepo, profileRepo, clock, publishers)
	goalService := services.NewGoalService(goalRepo)

	// ──── Initialize Handlers ────
	authHandler := handlers.NewAuthHandler(authService)
	studySessionHandler := handlers.NewStudySessionHandler(gameService)
	gamificationHandler := handlers.NewGamificationHandler(gameService)
	userHandler := handlers.NewUserHandler(profileService)
	goalHandler := handlers.NewGoalHandler(goalService)

	// ──── Step 6: Start Reminder Worker Pool ────
	workerPool := worker.NewPool(redisClients.Main, emailService, cfg.WorkerCount)
	workerPool.Start()
	log.Printf("✓ Worker pool started (%d goroutines)", cfg.WorkerCount)

	notificationScheduler := services.NewNotificationScheduler(userRepo, services.NewRedisJobQueue(redisClients.Main), clock, cfg.Location, cfg.ReminderHour)
	if err := notificationScheduler.Start(); err != nil {
		log.Fatalf("✗ Notification scheduler failed: %v", err)
	}
	log.Println("✓ Notification scheduler started")

	// ──── Step 7: Start WebSocket Hub ────
	wsHub := websocket.NewHub(redisClients.PubSub, jwtAuth)
	log.Println("✓ WebSocket hub started")

	// ──── Step 8: Start HTTP Server ────
	r, stopRouter := router.New(
		jwtAuth,
		authHandler,
		studySessionHandler,
		gamificationHandler,
		userHandler,
		goalHandler,
		wsHub.HandleWebSocket,
		cfg.FrontendURL,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		notificationScheduler.Stop()
		workerPool.Stop()
		wsHub.Close()
		stopRouter()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ Focus Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  WS:  ws://localhost:%s/ws", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
