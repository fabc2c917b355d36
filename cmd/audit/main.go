package main

import (
	"context"
	"equiplend/config"
	"equiplend/di"
	"equiplend/internal/domains/reservation/event"
	"equiplend/shared/logger"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.Setup(cfg)

	if !cfg.Kafka.Enable {
		log.Fatal().Msg("Kafka is disabled, nothing to consume")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := di.InitializeConsumer()
	defer func() {
		if err := client.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close kafka client")
		}
	}()

	auditor := event.NewAuditor(log.Logger)

	log.Info().Str("topic", cfg.Kafka.Topic).Msg("Starting reservation audit consumer.")

	client.Consume(ctx, event.ConsumerGroup, auditor.Handle)
}
