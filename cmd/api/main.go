package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"pit-strategy/internal/api"
	"pit-strategy/internal/cache"
)

func main() {
	logger := log.New()
	logger.SetFormatter(&log.JSONFormatter{})
	if lvl, err := log.ParseLevel(os.Getenv("API_LOG_LEVEL")); err == nil {
		logger.SetLevel(lvl)
	}

	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ttl := cache.DefaultTTL
	if v := os.Getenv("RESULT_CACHE_TTL"); v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			logger.WithError(err).Fatal("invalid RESULT_CACHE_TTL")
		}
		ttl = parsed
	}
	results := cache.New(ttl)
	defer results.Close()

	router := api.NewRouter(logger, results)

	addr := fmt.Sprintf(":%s", port)
	logger.WithField("addr", addr).Info("starting API server")
	if err := router.Run(addr); err != nil {
		logger.WithError(err).Fatal("failed to start server")
	}
}
