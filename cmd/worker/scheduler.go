package main

import (
	"github.com/rs/zerolog/log"

	"shop-backend/internal/config"
	"shop-backend/internal/infrastructure/queue"
)

func setupScheduler(cfg *config.Config) (*queue.Scheduler, error) {
	scheduler := queue.NewScheduler(cfg.Queue.RedisAddr)
	if err := scheduler.RegisterJobs(); err != nil {
		return nil, err
	}

	go func() {
		log.Info().Msg("scheduler starting")
		if err := scheduler.Start(); err != nil {
			log.Fatal().Err(err).Msg("scheduler failed")
		}
	}()

	return scheduler, nil
}
