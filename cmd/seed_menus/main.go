package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/pratamawijaya/menu-catalog-api/config"
	"github.com/pratamawijaya/menu-catalog-api/internal/database"
	"github.com/pratamawijaya/menu-catalog-api/internal/models"
	"github.com/pratamawijaya/menu-catalog-api/internal/service"
)

// Sample catalog for local development. Items without a description get one
// synthesized, exercising the same path the create endpoint uses.
var seedItems = []models.MenuItem{
	{
		Name:        "Nasi Goreng Spesial",
		Category:    "food",
		Calories:    650,
		Price:       25000,
		Ingredients: models.StringArray{"rice", "chicken", "egg", "sweet soy sauce", "shallots"},
	},
	{
		Name:        "Ayam Bakar Madu",
		Category:    "food",
		Calories:    550,
		Price:       30000,
		Ingredients: models.StringArray{"chicken", "honey", "garlic", "sweet soy sauce"},
	},
	{
		Name:        "Gado-Gado",
		Category:    "food",
		Calories:    420,
		Price:       18000,
		Ingredients: models.StringArray{"vegetables", "tofu", "tempeh", "peanut sauce", "rice cake"},
	},
	{
		Name:        "Sate Ayam",
		Category:    "food",
		Calories:    480,
		Price:       22000,
		Ingredients: models.StringArray{"chicken", "peanut sauce", "sweet soy sauce"},
	},
	{
		Name:        "Kopi Susu Gula Aren",
		Category:    "drinks",
		Calories:    180,
		Price:       15000,
		Ingredients: models.StringArray{"espresso", "milk", "palm sugar"},
	},
	{
		Name:        "Es Teh Manis",
		Category:    "drinks",
		Calories:    120,
		Price:       8000,
		Ingredients: models.StringArray{"black tea", "sugar", "ice"},
	},
	{
		Name:        "Es Jeruk",
		Category:    "drinks",
		Calories:    110,
		Price:       10000,
		Ingredients: models.StringArray{"orange", "sugar", "ice"},
	},
}

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

	geminiService, err := service.NewGeminiService(cfg.GeminiAPIKey)
	if err != nil {
		log.Fatalf("Failed to create gemini service: %v", err)
	}

	menuService := service.NewMenuService(db)
	ctx := context.Background()

	for i := range seedItems {
		item := seedItems[i]
		if item.Description == "" {
			item.Description = geminiService.GenerateMenuDescription(
				ctx, item.Name, item.Category, []string(item.Ingredients), item.Calories)
		}
		created, err := menuService.Create(ctx, &item)
		if err != nil {
			log.Fatalf("Failed to seed %q: %v", item.Name, err)
		}
		log.Printf("Seeded menu %d: %s", created.ID, created.Name)
	}

	log.Printf("Seeded %d menu items", len(seedItems))
}
