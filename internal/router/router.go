package router

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/pratamawijaya/menu-catalog-api/internal/api"
	"github.com/pratamawijaya/menu-catalog-api/internal/middleware"
)

// SetupRouter configures the application routes. A nil redis client disables
// rate limiting on the recommendation endpoint.
func SetupRouter(menuHandler *api.MenuHandler, redisClient *redis.Client) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())

	// Health check endpoint
	router.GET("/health", api.HealthCheck)

	var limiters []gin.HandlerFunc
	if redisClient != nil {
		limiter := middleware.NewRecommendationRateLimiter(redisClient)
		limiters = append(limiters, limiter.RateLimitMiddleware())
	}

	menuHandler.RegisterRoutes(router, limiters...)

	return router
}
