package api

import (
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"pit-strategy/internal/api/handlers"
	"pit-strategy/internal/api/middleware"
	"pit-strategy/internal/cache"
	"pit-strategy/internal/strategy"
)

// NewRouter wires the API routes. results may be nil to disable caching.
func NewRouter(l *log.Logger, results *cache.ResultCache) *gin.Engine {
	router := gin.New()

	router.Use(middleware.CORS())
	router.Use(middleware.Logger(l))
	router.Use(middleware.ErrorHandler(l))

	tuningHandler := handlers.NewTuningHandler(l)
	strategyHandler := handlers.NewStrategyHandler(strategy.DefaultTable())
	evaluateHandler := handlers.NewEvaluateHandler(tuningHandler, results, l)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		v1.GET("/strategies", strategyHandler.ListStrategies)
		v1.GET("/tunings", tuningHandler.ListTunings)
		v1.POST("/evaluate", evaluateHandler.Evaluate)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "Not found"}})
	})

	return router
}
