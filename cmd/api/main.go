package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/pratamawijaya/menu-catalog-api/config"
	"github.com/pratamawijaya/menu-catalog-api/internal/api"
	"github.com/pratamawijaya/menu-catalog-api/internal/database"
	"github.com/pratamawijaya/menu-catalog-api/internal/router"
	"github.com/pratamawijaya/menu-catalog-api/internal/server"
	"github.com/pratamawijaya/menu-catalog-api/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.RunMigrations(db, "migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Redis only guards the recommendation endpoint; boot without it
	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Warning: Redis unavailable, recommendations run unlimited: %v", err)
		redisClient = nil
	}

	geminiService, err := service.NewGeminiService(cfg.GeminiAPIKey)
	if err != nil {
		log.Fatalf("Failed to create gemini service: %v", err)
	}

	menuService := service.NewMenuService(db)
	menuHandler := api.NewMenuHandler(menuService, geminiService)

	r := router.SetupRouter(menuHandler, redisClient)
	srv := server.New(r, cfg.ServerHost+":"+cfg.ServerPort)

	errChan := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s:%s", cfg.ServerHost, cfg.ServerPort)
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
