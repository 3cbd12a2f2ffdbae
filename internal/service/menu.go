package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/pratamawijaya/menu-catalog-api/internal/models"
	"github.com/pratamawijaya/menu-catalog-api/internal/types"
)

// ErrMenuNotFound is returned when the requested menu item does not exist
var ErrMenuNotFound = errors.New("menu item not found")

// ErrInvalidSort is returned when the sort token names an unknown field
var ErrInvalidSort = errors.New("invalid sort field")

const (
	defaultPage        = 1
	defaultPerPage     = 10
	defaultPerCategory = 5
)

// sortColumns is the closed set of sortable fields. Sort tokens naming
// anything else are rejected before touching the store.
var sortColumns = map[string]string{
	"name":     "name",
	"price":    "price",
	"calories": "calories",
}

// MenuService handles menu catalog operations
type MenuService struct {
	db *gorm.DB
}

// NewMenuService creates a new MenuService instance
func NewMenuService(db *gorm.DB) *MenuService {
	return &MenuService{db: db}
}

// Create persists a new menu item
func (s *MenuService) Create(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error) {
	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// FindAll returns menu items matching the query criteria, sorted and paginated.
// Filters combine with AND; contradictory bounds yield an empty result set.
func (s *MenuService) FindAll(ctx context.Context, q types.ListMenuQuery) ([]models.MenuItem, error) {
	order, err := resolveSort(q.Sort)
	if err != nil {
		return nil, err
	}
	page, perPage := parsePagination(q.Page, q.PerPage)

	var items []models.MenuItem
	err = applyFilters(s.db.WithContext(ctx), q).
		Order(order).
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// FindOne returns the menu item with the given id
func (s *MenuService) FindOne(ctx context.Context, id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := s.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMenuNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Update applies a partial update to the menu item with the given id
func (s *MenuService) Update(ctx context.Context, id uint, req types.UpdateMenuRequest) (*models.MenuItem, error) {
	if _, err := s.FindOne(ctx, id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Calories != nil {
		updates["calories"] = *req.Calories
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Ingredients != nil {
		updates["ingredients"] = models.StringArray(*req.Ingredients)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&models.MenuItem{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.FindOne(ctx, id)
}

// Delete removes the menu item with the given id. Deleting a missing id is a
// no-op, not an error.
func (s *MenuService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&models.MenuItem{}, "id = ?", id).Error
}

// ListAll returns the full catalog in store-default order
func (s *MenuService) ListAll(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	if err := s.db.WithContext(ctx).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// CountByCategory groups the full catalog by category and returns per-category
// item counts.
func (s *MenuService) CountByCategory(ctx context.Context) (map[string]int, error) {
	items, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, item := range items {
		counts[item.Category]++
	}
	return counts, nil
}

// ListByCategory groups the full catalog by category, keeping at most
// perCategory items per category. The cap keeps the first items encountered in
// store iteration order; overflow is silently discarded.
func (s *MenuService) ListByCategory(ctx context.Context, perCategory int) (map[string][]models.MenuItem, error) {
	if perCategory <= 0 {
		perCategory = defaultPerCategory
	}

	items, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	groups := make(map[string][]models.MenuItem)
	for _, item := range items {
		if len(groups[item.Category]) >= perCategory {
			continue
		}
		groups[item.Category] = append(groups[item.Category], item)
	}
	return groups, nil
}

// SearchResult carries a page of matches plus the pagination envelope values
type SearchResult struct {
	Items   []models.MenuItem
	Total   int64
	Page    int
	PerPage int
}

// Search performs a case-insensitive substring match against menu names. Total
// reflects the full matching set, not the returned page.
func (s *MenuService) Search(ctx context.Context, q types.SearchMenuQuery) (*SearchResult, error) {
	page, perPage := parsePagination(q.Page, q.PerPage)
	like := "%" + strings.ToLower(q.Q) + "%"

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.MenuItem{}).Where("LOWER(name) LIKE ?", like).Count(&total).Error; err != nil {
		return nil, err
	}

	var items []models.MenuItem
	err := s.db.WithContext(ctx).
		Where("LOWER(name) LIKE ?", like).
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	return &SearchResult{Items: items, Total: total, Page: page, PerPage: perPage}, nil
}

// applyFilters compiles the optional criteria into a conjunction of where
// clauses. Absent fields add no constraint.
func applyFilters(db *gorm.DB, q types.ListMenuQuery) *gorm.DB {
	if q.Q != "" {
		db = db.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q.Q)+"%")
	}
	if q.Category != "" {
		db = db.Where("category = ?", q.Category)
	}
	if q.MinPrice != "" {
		if v, err := strconv.ParseFloat(q.MinPrice, 64); err == nil {
			db = db.Where("price >= ?", v)
		}
	}
	if q.MaxPrice != "" {
		if v, err := strconv.ParseFloat(q.MaxPrice, 64); err == nil {
			db = db.Where("price <= ?", v)
		}
	}
	if q.MaxCal != "" {
		if v, err := strconv.Atoi(q.MaxCal); err == nil {
			db = db.Where("calories <= ?", v)
		}
	}
	return db
}

// resolveSort maps a field:direction token to an ORDER BY clause. Default is
// price ascending. Direction is permissive: anything but the exact token "asc"
// sorts descending.
func resolveSort(token string) (string, error) {
	if token == "" {
		return "price asc", nil
	}

	parts := strings.SplitN(token, ":", 2)
	column, ok := sortColumns[parts[0]]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidSort, parts[0])
	}

	direction := "desc"
	if len(parts) == 2 && parts[1] == "asc" {
		direction = "asc"
	}
	return column + " " + direction, nil
}

// parsePagination converts page/per_page parameters to validated values,
// clamping non-positive or unparseable input to the defaults.
func parsePagination(pageStr, perPageStr string) (page, perPage int) {
	page = defaultPage
	if v, err := strconv.Atoi(pageStr); err == nil && v > 0 {
		page = v
	}
	perPage = defaultPerPage
	if v, err := strconv.Atoi(perPageStr); err == nil && v > 0 {
		perPage = v
	}
	return page, perPage
}
