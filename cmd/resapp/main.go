// Package main is the entry point for the reservation planner.
// Its sole responsibility is wiring dependencies together and starting
// the interactive program. No business logic belongs here.
package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Chedi19/res-appartement/internal/config"
	"github.com/Chedi19/res-appartement/internal/repo"
	"github.com/Chedi19/res-appartement/internal/service"
	"github.com/Chedi19/res-appartement/internal/tui"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// The TUI owns the terminal, so structured logs go to a file, never
	// to stdout.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	if err := os.MkdirAll(filepath.Dir(cfg.LogPath), 0o755); err != nil {
		slog.Error("failed to create log directory", "error", err)
		os.Exit(1)
	}
	logFile, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		slog.Error("failed to open log file", "path", cfg.LogPath, "error", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger := slog.New(slog.NewJSONHandler(logFile, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Storage ----------------------------------------------------------
	// OpenSQLite creates the database file if needed and runs the
	// embedded migrations before returning.
	store, err := repo.OpenSQLite(cfg.DataPath)
	if err != nil {
		logger.Error("failed to open database", "path", cfg.DataPath, "error", err)
		os.Exit(1)
	}
	defer store.Close()
	logger.Info("database opened", "path", cfg.DataPath)

	// --- Services ---------------------------------------------------------
	// Load errors are not fatal: both loaders fall back to usable
	// defaults and the session runs degraded until the next save.
	ctx := context.Background()
	apartments, err := service.LoadApartments(ctx, store)
	if err != nil {
		logger.Warn("apartment roster unavailable, using defaults", "error", err)
	}
	reservations, err := service.LoadReservations(ctx, store, apartments)
	if err != nil {
		logger.Warn("stored reservations unavailable", "error", err)
	}
	exporter := service.NewExport(reservations, cfg.ExportDir)

	// --- UI ---------------------------------------------------------------
	m := tui.NewModel(reservations, apartments, exporter, logger)
	if err := tui.Run(m); err != nil {
		logger.Error("program error", "error", err)
		os.Exit(1)
	}
	logger.Info("planner exited")
}
