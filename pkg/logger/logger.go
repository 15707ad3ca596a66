package logger

import (
	"log/slog"
	"os"

	"github.com/chenders/deadonfilm/configs"
)

const (
	envDev  = "dev"
	envProd = "prod"
)

func NewLogger(cfg *configs.Config) *slog.Logger {
	var log *slog.Logger

	switch cfg.Env {
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout,
			&slog.HandlerOptions{Level: slog.LevelInfo}))
	case envDev:
		log = slog.New(slog.NewTextHandler(os.Stdout,
			&slog.HandlerOptions{Level: slog.LevelDebug}))
	default:
		log = slog.New(slog.NewTextHandler(os.Stdout,
			&slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	return log
}
