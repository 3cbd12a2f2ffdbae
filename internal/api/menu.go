package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pratamawijaya/menu-catalog-api/internal/models"
	"github.com/pratamawijaya/menu-catalog-api/internal/service"
	"github.com/pratamawijaya/menu-catalog-api/internal/types"
)

// MenuHandler handles menu catalog requests
type MenuHandler struct {
	menuService   *service.MenuService
	geminiService *service.GeminiService
}

// NewMenuHandler creates a new MenuHandler instance
func NewMenuHandler(menuService *service.MenuService, geminiService *service.GeminiService) *MenuHandler {
	return &MenuHandler{
		menuService:   menuService,
		geminiService: geminiService,
	}
}

// RegisterRoutes registers the menu routes. Static routes are registered
// before the :id routes so gin resolves them first.
func (h *MenuHandler) RegisterRoutes(router gin.IRouter, recommendationLimiters ...gin.HandlerFunc) {
	menu := router.Group("/menu")
	{
		menu.GET("/group-by-category", h.GroupByCategory)
		menu.GET("/search", h.Search)

		recommendations := append(append([]gin.HandlerFunc{}, recommendationLimiters...), h.Recommendations)
		menu.GET("/recommendations", recommendations...)

		menu.POST("", h.Create)
		menu.GET("", h.List)
		menu.GET("/:id", h.Get)
		menu.PUT("/:id", h.Update)
		menu.DELETE("/:id", h.Delete)
	}
}

// Create handles menu item creation, synthesizing a description when the
// request omits one.
func (h *MenuHandler) Create(c *gin.Context) {
	var req types.CreateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item := models.MenuItem{
		Name:        req.Name,
		Category:    req.Category,
		Calories:    *req.Calories,
		Price:       models.Price(*req.Price),
		Ingredients: models.StringArray(req.Ingredients),
		Description: req.Description,
	}

	if item.Description == "" {
		item.Description = h.geminiService.GenerateMenuDescription(
			c.Request.Context(), item.Name, item.Category, req.Ingredients, item.Calories)
	}

	created, err := h.menuService.Create(c.Request.Context(), &item)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create menu"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Menu created successfully",
		"data":    created,
	})
}

// List handles the filtered, sorted, paginated listing
func (h *MenuHandler) List(c *gin.Context) {
	var query types.ListMenuQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items, err := h.menuService.FindAll(c.Request.Context(), query)
	if err != nil {
		if errors.Is(err, service.ErrInvalidSort) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch menus"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": items})
}

// Get returns a single menu item by id
func (h *MenuHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	item, err := h.menuService.FindOne(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrMenuNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Menu not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch menu"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": item})
}

// Update applies a partial update to a menu item
func (h *MenuHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req types.UpdateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.menuService.Update(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, service.ErrMenuNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Menu not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update menu"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Menu updated successfully",
		"data":    updated,
	})
}

// Delete removes a menu item. Deleting a missing id still succeeds.
func (h *MenuHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.menuService.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete menu"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Menu deleted successfully"})
}

// GroupByCategory groups the catalog by category, either as counts or as
// capped per-category lists.
func (h *MenuHandler) GroupByCategory(c *gin.Context) {
	var query types.GroupByCategoryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch query.Mode {
	case "count":
		counts, err := h.menuService.CountByCategory(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to group menus"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": counts})
	case "list":
		perCategory, _ := strconv.Atoi(query.PerCategory)
		groups, err := h.menuService.ListByCategory(c.Request.Context(), perCategory)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to group menus"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": groups})
	}
}

// Search performs a paginated substring search on menu names and reports the
// total match count alongside the page.
func (h *MenuHandler) Search(c *gin.Context) {
	var query types.SearchMenuQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.menuService.Search(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search menus"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": result.Items,
		"pagination": gin.H{
			"total":    result.Total,
			"page":     result.Page,
			"per_page": result.PerPage,
		},
	})
}

// Recommendations ranks the catalog against the caller's preferences via the
// generative service. Generation failures degrade to an empty list rather
// than an error response.
func (h *MenuHandler) Recommendations(c *gin.Context) {
	var query types.RecommendationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items, err := h.menuService.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch menus"})
		return
	}

	prefs := service.Preferences{
		Category: query.Category,
		Mood:     query.Mood,
	}
	if query.MaxCalories != "" {
		prefs.MaxCalories, _ = strconv.Atoi(query.MaxCalories)
	}
	if query.DietaryRestrictions != "" {
		for _, r := range strings.Split(query.DietaryRestrictions, ",") {
			if r = strings.TrimSpace(r); r != "" {
				prefs.DietaryRestrictions = append(prefs.DietaryRestrictions, r)
			}
		}
	}

	result := h.geminiService.MenuRecommendations(c.Request.Context(), items, prefs)
	c.JSON(http.StatusOK, result)
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid menu id"})
		return 0, false
	}
	return uint(id), true
}
