package main

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/pratamawijaya/menu-catalog-api/internal/database"
)

func main() {
	migrationsDir := flag.String("dir", "migrations", "Directory containing migration files")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.RunMigrations(db, *migrationsDir); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	log.Println("Migrations applied successfully")
}
