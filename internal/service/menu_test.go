package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pratamawijaya/menu-catalog-api/internal/database"
	"github.com/pratamawijaya/menu-catalog-api/internal/models"
	"github.com/pratamawijaya/menu-catalog-api/internal/types"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// A named in-memory database keeps all pooled connections on the same
	// store while isolating tests from each other.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db, ""))
	return db
}

func seedMenu(t *testing.T, s *MenuService, name, category string, calories int, price float64) *models.MenuItem {
	item := &models.MenuItem{
		Name:        name,
		Category:    category,
		Calories:    calories,
		Price:       models.Price(price),
		Ingredients: models.StringArray{"ingredient1", "ingredient2"},
		Description: "test description",
	}
	created, err := s.Create(context.Background(), item)
	require.NoError(t, err)
	return created
}

func TestFindAllDefaults(t *testing.T) {
	s := NewMenuService(setupTestDB(t))

	prices := []float64{30000, 8000, 25000, 15000, 10000, 22000, 18000, 12000, 9000, 27000, 11000, 16000}
	for i, p := range prices {
		seedMenu(t, s, fmt.Sprintf("Item %d", i+1), "food", 400, p)
	}

	items, err := s.FindAll(context.Background(), types.ListMenuQuery{})
	require.NoError(t, err)

	// Default pagination: page 1, 10 per page
	assert.Len(t, items, 10)

	// Default sort: price ascending
	for i := 1; i < len(items); i++ {
		assert.LessOrEqual(t, float64(items[i-1].Price), float64(items[i].Price))
	}
	assert.Equal(t, 8000.0, float64(items[0].Price))
}

func TestFindAllFilters(t *testing.T) {
	s := NewMenuService(setupTestDB(t))

	seedMenu(t, s, "Nasi Goreng", "food", 650, 25000)
	seedMenu(t, s, "Ayam Bakar", "food", 550, 30000)
	seedMenu(t, s, "Kopi Susu", "drinks", 180, 15000)
	seedMenu(t, s, "Es Teh Manis", "drinks", 120, 8000)

	ctx := context.Background()

	t.Run("name filter is case-insensitive substring", func(t *testing.T) {
		items, err := s.FindAll(ctx, types.ListMenuQuery{Q: "KOPI"})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Kopi Susu", items[0].Name)
	})

	t.Run("category filter is exact", func(t *testing.T) {
		items, err := s.FindAll(ctx, types.ListMenuQuery{Category: "drinks"})
		require.NoError(t, err)
		assert.Len(t, items, 2)

		items, err = s.FindAll(ctx, types.ListMenuQuery{Category: "drink"})
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("price bounds are inclusive", func(t *testing.T) {
		items, err := s.FindAll(ctx, types.ListMenuQuery{MinPrice: "15000", MaxPrice: "25000"})
		require.NoError(t, err)
		assert.Len(t, items, 2)
	})

	t.Run("inverted price range yields empty set, not an error", func(t *testing.T) {
		items, err := s.FindAll(ctx, types.ListMenuQuery{MinPrice: "15000", MaxPrice: "10000"})
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("max calories is an inclusive upper bound", func(t *testing.T) {
		items, err := s.FindAll(ctx, types.ListMenuQuery{MaxCal: "180"})
		require.NoError(t, err)
		assert.Len(t, items, 2)
	})

	t.Run("filters combine with AND", func(t *testing.T) {
		items, err := s.FindAll(ctx, types.ListMenuQuery{Category: "drinks", MaxCal: "150"})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Es Teh Manis", items[0].Name)
	})
}

func TestFindAllSort(t *testing.T) {
	s := NewMenuService(setupTestDB(t))

	seedMenu(t, s, "Banana Split", "food", 450, 20000)
	seedMenu(t, s, "Apple Pie", "food", 350, 25000)
	seedMenu(t, s, "Cheesecake", "food", 500, 22000)

	ctx := context.Background()

	t.Run("sort by name ascending", func(t *testing.T) {
		items, err := s.FindAll(ctx, types.ListMenuQuery{Sort: "name:asc"})
		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.Equal(t, "Apple Pie", items[0].Name)
		assert.Equal(t, "Cheesecake", items[2].Name)
	})

	t.Run("anything but asc sorts descending", func(t *testing.T) {
		items, err := s.FindAll(ctx, types.ListMenuQuery{Sort: "calories:descending"})
		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.Equal(t, 500, items[0].Calories)
		assert.Equal(t, 350, items[2].Calories)
	})

	t.Run("bare field sorts descending", func(t *testing.T) {
		items, err := s.FindAll(ctx, types.ListMenuQuery{Sort: "price"})
		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.Equal(t, 25000.0, float64(items[0].Price))
	})

	t.Run("unknown sort field is rejected", func(t *testing.T) {
		_, err := s.FindAll(ctx, types.ListMenuQuery{Sort: "id:asc"})
		assert.ErrorIs(t, err, ErrInvalidSort)
	})
}

func TestFindAllPaginationClamping(t *testing.T) {
	s := NewMenuService(setupTestDB(t))

	for i := 0; i < 12; i++ {
		seedMenu(t, s, fmt.Sprintf("Item %d", i+1), "food", 400, float64(1000*(i+1)))
	}

	ctx := context.Background()

	t.Run("second page", func(t *testing.T) {
		items, err := s.FindAll(ctx, types.ListMenuQuery{Page: "2"})
		require.NoError(t, err)
		assert.Len(t, items, 2)
	})

	t.Run("non-positive page clamps to first page", func(t *testing.T) {
		items, err := s.FindAll(ctx, types.ListMenuQuery{Page: "0", PerPage: "3"})
		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.Equal(t, 1000.0, float64(items[0].Price))
	})

	t.Run("non-positive per_page clamps to default", func(t *testing.T) {
		items, err := s.FindAll(ctx, types.ListMenuQuery{PerPage: "-5"})
		require.NoError(t, err)
		assert.Len(t, items, 10)
	})
}

func TestCountByCategory(t *testing.T) {
	s := NewMenuService(setupTestDB(t))

	seedMenu(t, s, "Nasi Goreng", "food", 650, 25000)
	seedMenu(t, s, "Ayam Bakar", "food", 550, 30000)
	seedMenu(t, s, "Sate Ayam", "food", 480, 22000)
	seedMenu(t, s, "Kopi Susu", "drinks", 180, 15000)
	seedMenu(t, s, "Es Teh Manis", "drinks", 120, 8000)

	counts, err := s.CountByCategory(context.Background())
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"food": 3, "drinks": 2}, counts)

	total := 0
	for _, n := range counts {
		total += n
	}
	assert.Equal(t, 5, total)
}

func TestListByCategoryCapsInIterationOrder(t *testing.T) {
	s := NewMenuService(setupTestDB(t))

	for i := 1; i <= 5; i++ {
		seedMenu(t, s, fmt.Sprintf("Food %d", i), "food", 400, float64(6000-1000*i))
	}
	seedMenu(t, s, "Kopi Susu", "drinks", 180, 15000)

	groups, err := s.ListByCategory(context.Background(), 2)
	require.NoError(t, err)

	// The cap keeps the first items in store order, not the cheapest or any
	// other ranking.
	require.Len(t, groups["food"], 2)
	assert.Equal(t, "Food 1", groups["food"][0].Name)
	assert.Equal(t, "Food 2", groups["food"][1].Name)
	assert.Len(t, groups["drinks"], 1)
}

func TestListByCategoryDefaultCap(t *testing.T) {
	s := NewMenuService(setupTestDB(t))

	for i := 1; i <= 7; i++ {
		seedMenu(t, s, fmt.Sprintf("Food %d", i), "food", 400, float64(1000*i))
	}

	groups, err := s.ListByCategory(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, groups["food"], 5)
}

func TestSearch(t *testing.T) {
	s := NewMenuService(setupTestDB(t))

	seedMenu(t, s, "Kopi Susu", "drinks", 180, 15000)
	seedMenu(t, s, "Kopi Tubruk", "drinks", 90, 12000)
	seedMenu(t, s, "Es Teh Manis", "drinks", 120, 8000)

	result, err := s.Search(context.Background(), types.SearchMenuQuery{Q: "kopi", Page: "1", PerPage: "1"})
	require.NoError(t, err)

	// Total reflects every match, not the returned page
	assert.Len(t, result.Items, 1)
	assert.Equal(t, int64(2), result.Total)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 1, result.PerPage)
}

func TestUpdate(t *testing.T) {
	s := NewMenuService(setupTestDB(t))
	ctx := context.Background()

	created := seedMenu(t, s, "Nasi Goreng", "food", 650, 25000)

	t.Run("partial update leaves other fields untouched", func(t *testing.T) {
		newPrice := 27000.0
		updated, err := s.Update(ctx, created.ID, types.UpdateMenuRequest{Price: &newPrice})
		require.NoError(t, err)
		assert.Equal(t, 27000.0, float64(updated.Price))
		assert.Equal(t, "Nasi Goreng", updated.Name)
		assert.Equal(t, 650, updated.Calories)
	})

	t.Run("updating a missing id is a not-found error", func(t *testing.T) {
		name := "Ghost"
		_, err := s.Update(ctx, 9999, types.UpdateMenuRequest{Name: &name})
		assert.ErrorIs(t, err, ErrMenuNotFound)
	})
}

func TestDelete(t *testing.T) {
	s := NewMenuService(setupTestDB(t))
	ctx := context.Background()

	created := seedMenu(t, s, "Nasi Goreng", "food", 650, 25000)

	require.NoError(t, s.Delete(ctx, created.ID))

	_, err := s.FindOne(ctx, created.ID)
	assert.ErrorIs(t, err, ErrMenuNotFound)

	// Deleting a missing id is an idempotent no-op
	assert.NoError(t, s.Delete(ctx, created.ID))
	assert.NoError(t, s.Delete(ctx, 9999))
}

func TestPriceMaterializesAsNumber(t *testing.T) {
	s := NewMenuService(setupTestDB(t))

	created := seedMenu(t, s, "Kopi Susu", "drinks", 180, 15000.50)

	fetched, err := s.FindOne(context.Background(), created.ID)
	require.NoError(t, err)

	payload, err := json.Marshal(fetched)
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"price":15000.5`)
	assert.NotContains(t, string(payload), `"price":"`)
}
