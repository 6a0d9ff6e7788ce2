package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"shop-backend/internal/infrastructure/messaging"
	"shop-backend/pkg/container"
)

func main() {
	c, err := container.NewContainer()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize container")
	}
	defer c.Cleanup()

	if err := runStartupChecks(c); err != nil {
		log.Fatal().Err(err).Msg("startup checks failed")
	}

	if c.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	publisher := messaging.NewOrderEventPublisher(messaging.NewKafkaWriter(c.Config.Kafka))
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close kafka writer")
		}
	}()

	handlers := initializeHandlers(c, publisher)
	srv := setupAsynqServer(c.Config, handlers)

	scheduler, err := setupScheduler(c.Config)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register scheduled jobs")
	}

	health := startHealthServer(c)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	scheduler.Shutdown()
	srv.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = health.Shutdown(ctx)
}
