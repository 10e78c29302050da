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

	"github.com/redis/go-redis/v9"

	"autoparts-storefront-api/internal/cache"
	"autoparts-storefront-api/internal/cms"
	"autoparts-storefront-api/internal/config"
	"autoparts-storefront-api/internal/handler"
	"autoparts-storefront-api/internal/middleware"
	"autoparts-storefront-api/internal/repository"
	"autoparts-storefront-api/internal/router"
	"autoparts-storefront-api/internal/service"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting Autoparts Storefront API...")

	// Load configuration
	cfg := config.MustLoad()
	log.Printf("Environment: %s", cfg.App.Environment)

	// Initialize snapshot repository based on config
	var snapshotRepo repository.SnapshotRepository
	switch cfg.Snapshot.Type {
	case "postgres", "postgresql":
		pgRepo, err := repository.NewPostgresSnapshotRepository(cfg.Snapshot.PostgresDSN())
		if err != nil {
			log.Fatalf("Failed to initialize PostgreSQL: %v", err)
		}
		defer pgRepo.Close()
		snapshotRepo = pgRepo
		log.Println("PostgreSQL snapshot repository initialized")
	case "mysql":
		myRepo, err := repository.NewMySQLSnapshotRepository(cfg.Snapshot.MySQLDSN())
		if err != nil {
			log.Fatalf("Failed to initialize MySQL: %v", err)
		}
		defer myRepo.Close()
		snapshotRepo = myRepo
		log.Println("MySQL snapshot repository initialized")
	default: // sqlite
		sqliteRepo, err := repository.NewSQLiteSnapshotRepository(cfg.Snapshot.Path)
		if err != nil {
			log.Fatalf("Failed to initialize SQLite: %v", err)
		}
		defer sqliteRepo.Close()
		snapshotRepo = sqliteRepo
		log.Println("SQLite snapshot repository initialized")
	}

	// Initialize the cache: Redis when reachable, in-process memory cache
	// otherwise.
	var appCache cache.Cache
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Cache.RedisAddress(),
		Password: cfg.Cache.RedisPassword,
		DB:       cfg.Cache.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Printf("Warning: Redis connection failed, using in-memory cache: %v", err)
		redisClient.Close()
		memCache := cache.NewMemoryCache()
		defer memCache.Close()
		appCache = memCache
	} else {
		appCache = cache.NewRedisCache(redisClient, "storefront")
		defer redisClient.Close()
		log.Println("Redis cache initialized")
	}
	cancel()

	// Initialize the CMS client. The token comes from the environment only.
	if cfg.CMS.Token == "" {
		log.Println("Warning: CMS_API_TOKEN is empty, CMS requests will be unauthenticated")
	}
	cmsClient := cms.New(cms.Config{
		BaseURL: cfg.CMS.BaseURL,
		Token:   cfg.CMS.Token,
		Timeout: cfg.CMS.Timeout,
	})
	log.Printf("CMS client initialized for %s", cfg.CMS.BaseURL)

	// Initialize services
	inventoryService := service.NewInventoryService(cmsClient, appCache, snapshotRepo, cfg.Cache.TTL)
	productsService := service.NewProductsService(cmsClient)
	providersService := service.NewProvidersService(cmsClient)
	cartService := service.NewCartService(appCache, cfg.Cart.TTL)
	captchaService := service.NewCaptchaService(appCache, cfg.Captcha.Length, cfg.Captcha.Charset, cfg.Captcha.TTL)
	sessionService := service.NewSessionService(cmsClient, appCache, cfg.Session.TTL)

	// Background snapshot refresher keeps a fallback available when the CMS
	// goes down.
	refresher := service.NewSnapshotRefresher(inventoryService, snapshotRepo, cfg.Snapshot.RefreshInterval, cfg.Snapshot.Retention)
	refresher.Start()

	// Initialize handlers
	healthHandler := handler.New(cfg.App.Version, snapshotRepo)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)
	productsHandler := handler.NewProductsHandler(productsService)
	providersHandler := handler.NewProvidersHandler(providersService)
	cartHandler := handler.NewCartHandler(cartService)
	captchaHandler := handler.NewCaptchaHandler(captchaService)
	authHandler := handler.NewAuthHandler(sessionService, captchaService)
	adminHandler := handler.NewAdminHandler(snapshotRepo, refresher, cfg.Snapshot.Type)

	// Create auth middleware with injected dependencies (NO GLOBALS!)
	authMiddleware := middleware.NewAuthMiddleware(middleware.AuthConfig{
		Sessions: sessionService,
		APIKeys:  cfg.Auth.APIKeys,
	})

	// Create router
	r := router.New(router.Config{
		Handler:          healthHandler,
		InventoryHandler: inventoryHandler,
		ProductsHandler:  productsHandler,
		ProvidersHandler: providersHandler,
		CartHandler:      cartHandler,
		CaptchaHandler:   captchaHandler,
		AuthHandler:      authHandler,
		AdminHandler:     adminHandler,
		AuthMiddleware:   authMiddleware,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server listening on %s", cfg.Server.Address())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	// Stop the refresher first so no snapshot write races the close.
	refresher.Stop()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
	fmt.Println("Goodbye!")
}
