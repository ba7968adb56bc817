// Package main is the entry point for the fitness tracker server.
//
// MAIN PACKAGE IN GO:
// Every Go program starts execution in the main() function of the "main"
// package. The main package should be kept minimal — its job is to:
// 1. Read configuration
// 2. Create dependencies (logger, model)
// 3. Start the application
//
// All actual logic lives in imported packages (internal/server,
// internal/handler, etc.). This separation makes the app testable and its
// components reusable.
package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sakif/fitness-tracker/internal/config"
	"github.com/sakif/fitness-tracker/internal/predictor"
	"github.com/sakif/fitness-tracker/internal/server"
)

func main() {
	// === 1. READ CONFIGURATION ===
	// viper merges env vars (FITNESS_*), an optional config.yaml, and the
	// built-in defaults — see internal/config for the precedence rules.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// === 2. SET UP LOGGING ===
	// Structured text logs on stdout. The level comes from config so a
	// production deployment can run at "warn" while development runs "debug".
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.Log.Level),
	}))

	// === 3. DATABASE DIRECTORY ===
	// os.MkdirAll creates all parent directories if needed (like `mkdir -p`),
	// so a fresh checkout runs without manual setup. ":memory:" has no
	// parent directory, hence the guard.
	if cfg.Database.Path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0755); err != nil {
			logger.Error("failed to create database directory",
				slog.String("path", cfg.Database.Path),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
	}

	// === 4. LOAD THE CALORIE MODEL ===
	// The model is optional — the server starts without it, and /predict
	// answers 503 until a model file is deployed and the server restarted.
	var model predictor.Predictor
	if m, err := predictor.Load(cfg.Model.Path); err != nil {
		logger.Warn("calorie model unavailable — /predict will return 503",
			slog.String("path", cfg.Model.Path),
			slog.String("error", err.Error()),
		)
	} else {
		model = m
		logger.Info("calorie model loaded",
			slog.String("path", cfg.Model.Path),
			slog.Int("features", len(m.Weights)),
		)
	}

	// === 5. CREATE AND START THE SERVER ===
	srv, err := server.New(server.Config{
		Addr:   cfg.Server.Addr,
		DBPath: cfg.Database.Path,
	}, logger, model)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start() blocks until the server is shut down (via Ctrl+C or SIGTERM).
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// logLevel maps the config string to a slog level, defaulting to Info on
// anything unrecognised.
func logLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
