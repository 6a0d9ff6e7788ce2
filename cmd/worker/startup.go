package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"shop-backend/pkg/container"
)

// runStartupChecks fails fast when a dependency the worker cannot run
// without is unreachable.
func runStartupChecks(c *container.Container) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	checks := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"postgres", c.DB.HealthCheck},
		{"redis", c.Redis.HealthCheck},
	}

	for _, check := range checks {
		if err := check.fn(ctx); err != nil {
			return fmt.Errorf("%s check failed: %w", check.name, err)
		}
		log.Info().Str("check", check.name).Msg("startup check passed")
	}
	return nil
}

// startHealthServer serves /health and /ready for container probes.
func startHealthServer(c *container.Container) *http.Server {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "UP", "service": c.Config.App.Name + " worker"})
	})
	router.GET("/ready", func(ctx *gin.Context) {
		if err := c.Redis.HealthCheck(ctx.Request.Context()); err != nil {
			ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "NOT_READY", "error": err.Error()})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"status": "READY"})
	})

	srv := &http.Server{
		Addr:              ":" + c.Config.Queue.HealthPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("port", c.Config.Queue.HealthPort).Msg("worker health server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("worker health server failed")
		}
	}()

	return srv
}
