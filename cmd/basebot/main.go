package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/sglre6355/basebot/internal/bot"
	_ "github.com/sglre6355/basebot/internal/modules/core"
	_ "github.com/sglre6355/basebot/internal/modules/debug"
	_ "github.com/sglre6355/basebot/internal/modules/help"
)

// version is set at build time via ldflags:
// go build -ldflags "-X main.version=1.0.0" ./cmd/basebot
var version = "dev"

func main() {
	// Configure JSON logging until the configured handler is known
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	slog.Info("starting basebot", "version", version)

	// Load configuration
	cfg, err := bot.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	handler := bot.NewLogHandler(cfg, os.Stdout)
	slog.SetDefault(slog.New(handler))
	bot.BridgeDiscordgoLogger(handler)

	// Create and configure bot
	b, err := bot.NewBot(cfg)
	if err != nil {
		slog.Error("failed to create bot", "error", err)
		os.Exit(1)
	}
	b.LoadExtensions(bot.DefaultExtensions...)
	b.LoadExtensions(bot.DebugExtension)

	// Start bot
	if err := b.Start(); err != nil {
		slog.Error("failed to start bot", "error", err)
		os.Exit(1)
	}

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	slog.Info("received termination signal, shutting down")
	if err := b.Stop(); err != nil {
		slog.Error("failed to shutdown", "error", err)
	}

	slog.Info("completed bot shutdown")
	os.Exit(0)
}
