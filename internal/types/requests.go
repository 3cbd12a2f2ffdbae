package types

// CreateMenuRequest represents the request body for creating a menu item
type CreateMenuRequest struct {
	Name        string   `json:"name" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	Calories    *int     `json:"calories" binding:"required,gte=0"`
	Price       *float64 `json:"price" binding:"required,gte=0"`
	Ingredients []string `json:"ingredients" binding:"required,min=1"`
	Description string   `json:"description"`
}

// UpdateMenuRequest represents the request body for a partial menu update.
// Pointer fields distinguish "absent" from zero values.
type UpdateMenuRequest struct {
	Name        *string   `json:"name"`
	Category    *string   `json:"category"`
	Calories    *int      `json:"calories" binding:"omitempty,gte=0"`
	Price       *float64  `json:"price" binding:"omitempty,gte=0"`
	Ingredients *[]string `json:"ingredients"`
	Description *string   `json:"description"`
}

// ListMenuQuery represents the query parameters for the filtered listing
type ListMenuQuery struct {
	Q        string `form:"q"`
	Category string `form:"category"`
	MinPrice string `form:"min_price" binding:"omitempty,numeric"`
	MaxPrice string `form:"max_price" binding:"omitempty,numeric"`
	MaxCal   string `form:"max_cal" binding:"omitempty,numeric"`
	Sort     string `form:"sort"`
	Page     string `form:"page" binding:"omitempty,numeric"`
	PerPage  string `form:"per_page" binding:"omitempty,numeric"`
}

// GroupByCategoryQuery represents the query parameters for category grouping
type GroupByCategoryQuery struct {
	Mode        string `form:"mode" binding:"required,oneof=count list"`
	PerCategory string `form:"per_category" binding:"omitempty,numeric"`
}

// SearchMenuQuery represents the query parameters for name search
type SearchMenuQuery struct {
	Q       string `form:"q" binding:"required"`
	Page    string `form:"page" binding:"omitempty,numeric"`
	PerPage string `form:"per_page" binding:"omitempty,numeric"`
}

// RecommendationQuery represents the query parameters for AI recommendations
type RecommendationQuery struct {
	MaxCalories         string `form:"max_calories" binding:"omitempty,numeric"`
	Category            string `form:"category"`
	DietaryRestrictions string `form:"dietary_restrictions"`
	Mood                string `form:"mood"`
}
