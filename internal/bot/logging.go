package bot

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/lmittmann/tint"
)

const loggerNameKey = "logger"

// NewLogHandler returns the slog handler selected by cfg: JSON by default,
// colored text for LOG_FORMAT=text.
func NewLogHandler(cfg *Config, w io.Writer) slog.Handler {
	if cfg.LogFormat == "text" {
		return tint.NewHandler(w, &tint.Options{
			Level:      cfg.LogLevel,
			TimeFormat: time.DateTime,
		})
	}
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: cfg.LogLevel})
}

var discordgoLogLevels = map[int]slog.Level{
	discordgo.LogError:         slog.LevelError,
	discordgo.LogWarning:       slog.LevelWarn,
	discordgo.LogInformational: slog.LevelInfo,
	discordgo.LogDebug:         slog.LevelDebug,
}

// BridgeDiscordgoLogger routes discordgo's internal logging into handler.
func BridgeDiscordgoLogger(handler slog.Handler) {
	log := slog.New(handler).With(loggerNameKey, "discordgo")
	discordgo.Logger = func(msgL, _ int, format string, args ...any) {
		level, ok := discordgoLogLevels[msgL]
		if !ok {
			level = slog.LevelInfo
		}
		log.Log(
			context.Background(),
			level,
			strings.ReplaceAll(fmt.Sprintf(format, args...), "\n", ""),
		)
	}
}

// discordgoLogLevel maps a slog level to the closest discordgo log level.
func discordgoLogLevel(level slog.Level) int {
	switch {
	case level <= slog.LevelDebug:
		return discordgo.LogDebug
	case level <= slog.LevelInfo:
		return discordgo.LogInformational
	case level <= slog.LevelWarn:
		return discordgo.LogWarning
	default:
		return discordgo.LogError
	}
}
