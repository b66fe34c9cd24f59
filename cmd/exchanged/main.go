package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"ordercore/internal/api"
	"ordercore/internal/config"
	"ordercore/internal/engine"
	"ordercore/internal/stream"
)

func main() {
	cfg, err := config.Parse(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse configuration")
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
	)
	defer stop()

	hub := stream.NewHub(cfg.AllowedOrigins)
	eng := engine.New(cfg.TradingPair, hub)
	srv := api.New(cfg.Address, cfg.Port, eng, eng, hub)

	go func() {
		if err := hub.Run(); err != nil {
			log.Error().Err(err).Msg("trade hub exited")
		}
	}()

	log.Info().Str("trading_pair", cfg.TradingPair).Msg("exchanged starting")
	if err := srv.Run(ctx); err != nil {
		log.Error().Err(err).Msg("server exited")
	}

	hub.Kill()
}
