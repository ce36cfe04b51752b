package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbersoft-agenda/internal/cache"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/config"
	dbpkg "github.com/BruksfildServices01/barbersoft-agenda/internal/db"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/observ"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/routes"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	logger, err := observ.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	db := dbpkg.NewDB(cfg, logger)

	redisClient := cache.NewRedisClient(cfg.RedisURL, logger)
	unitCache := cache.NewUnitCache(redisClient, logger)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, unitCache, logger)

	logger.Info("server starting",
		zap.String("addr", cfg.Addr()),
		zap.String("env", cfg.Env),
	)

	if err := r.Run(cfg.Addr()); err != nil {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}
