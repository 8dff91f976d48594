package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"partyline/internal/aggregate"
	"partyline/internal/cache"
	"partyline/internal/catalog"
	"partyline/internal/config"
	"partyline/internal/repository"
	"partyline/internal/service"
	"partyline/internal/transport/rest"
	"partyline/internal/transport/ws"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Question catalog (fixed configuration)
	cat := catalog.AboutYou()

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Initialize repositories
	partyRepo := repository.NewPartyRepo(db)
	gameRepo := repository.NewGameRepo(db)
	profileRepo := repository.NewProfileRepo(db)

	// Initialize caches
	reportCache := cache.NewReportCache(rdb)
	geoCache := cache.NewGeoCache(rdb)

	// Initialize services
	authSvc := service.NewAuthService(cfg.HostUsername, cfg.HostPassword, cfg.JWTSecret)
	geocoder := service.NewGeocoderService(cfg.GeocoderBaseURL, geoCache)
	if cfg.GeocoderBaseURL == "" {
		log.Println("Warning: GEOCODER_URL not set, location answers keep no coordinates")
	}
	profileSvc := service.NewProfileService(profileRepo, cat, geocoder, reportCache)
	profileSvc.SetBroadcaster(wsHub)
	partySvc := service.NewPartyService(partyRepo, authSvc, profileSvc)
	gameSvc := service.NewGameService(gameRepo)
	gameSvc.SetBroadcaster(wsHub)
	reportSvc := service.NewReportService(profileRepo, aggregate.NewEngine(cat), reportCache)
	uploader := service.NewBlobStoreClient(cfg.BlobStoreURL)

	// Create router with container
	container := &rest.Container{
		AuthService:    authSvc,
		PartyService:   partySvc,
		GameService:    gameSvc,
		ProfileService: profileSvc,
		ReportService:  reportSvc,
		Uploader:       uploader,
		WSHub:          wsHub,
	}

	router := rest.NewRouter(container)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
