package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/dvloznov/finance-bot/internal/catalog"
	"github.com/dvloznov/finance-bot/internal/discord"
	"github.com/dvloznov/finance-bot/internal/logger"
	"github.com/dvloznov/finance-bot/internal/session"
	"github.com/dvloznov/finance-bot/internal/webhook"
	"github.com/dvloznov/finance-bot/internal/wizard"
)

func main() {
	// Parse command-line flags
	var (
		configDir     = flag.String("config", "config", "Directory holding the option catalog JSON files")
		level         = flag.String("level", "info", "Log level (trace, debug, info, warn, error)")
		submitTimeout = flag.Duration("submit-timeout", webhook.DefaultTimeout, "Deadline for a single webhook submission")
	)
	flag.Parse()

	// Initialize logger
	log := logger.NewWithLevel(*level)

	token := os.Getenv("DISCORD_TOKEN")
	if token == "" {
		log.Fatal().Msg("DISCORD_TOKEN is not set")
	}

	webhookURL := os.Getenv("N8N_WEBHOOK")
	if webhookURL == "" {
		log.Warn().Msg("N8N_WEBHOOK is not set - submissions will fail until it is configured")
	}

	// Load the option catalog and start the hot-reload watcher
	cat, err := catalog.New(*configDir, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load option catalog")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		log.Info().Str("dir", cat.Dir()).Msg("Starting config watcher")
		if err := cat.Watch(ctx); err != nil {
			log.Error().Err(err).Msg("Config watcher stopped with error")
		}
	}()

	// Wire the wizard
	store := session.NewStore()
	client := webhook.New(webhookURL, *submitTimeout, log)
	machine := wizard.New(cat, store, client, log)

	// Connect to Discord
	bot, err := discord.New(token, machine, cat, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Discord session")
	}

	if err := bot.Open(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Discord gateway")
	}
	log.Info().Msg("Gateway connected, waiting for interactions")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down...")

	// Stop the watcher before closing the gateway
	cancel()

	if err := bot.Close(); err != nil {
		log.Error().Err(err).Msg("Error closing Discord session")
	}

	log.Info().Int("open_sessions", store.Len()).Msg("Bot exited")
}
