package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"airless/internal/config"
	"airless/internal/daemon"
	"airless/internal/loader"
	"airless/internal/models"
	"airless/internal/report"
)

func initLogger(cfg *config.Config) {
	var logLevel slog.Level
	switch cfg.Log.Level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	// Logs go to stderr so stdout carries only the airport data
	var handler slog.Handler
	if cfg.Log.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
}

func main() {
	configPath := flag.String("config", "", "Path to config file (YAML)")
	watch := flag.Bool("watch", false, "Keep reloading the dataset and print it whenever it changes")
	format := flag.String("format", "", "Output format: text or json (overrides output.format)")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		basicLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		basicLogger.Warn("Failed to load .env file", "error", err)
	}

	if *configPath != "" {
		os.Setenv("AIRLESS_CONFIG_PATH", *configPath)
	}
	if *format != "" {
		os.Setenv("AIRLESS_OUTPUT_FORMAT", *format)
	}

	cfg, err := config.Load()
	if err != nil {
		// Logger isn't initialized yet
		basicLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		basicLogger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	initLogger(cfg)

	if *watch {
		runWatch(cfg)
		return
	}
	runOnce(cfg)
}

// runOnce loads the dataset a single time and prints it. Load failures print the fallback airport.
func runOnce(cfg *config.Config) {
	timeout := time.Duration(cfg.Source.Timeout) * time.Second
	source, err := loader.NewSource(cfg.Source.Base, timeout)
	if err != nil {
		slog.Error("Failed to create payload source", "error", err)
		os.Exit(1)
	}

	l := loader.NewLoaderWithConfig(source, cfg.Source.Airports, cfg.Source.SSID, cfg.StrictJoin)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	airports := l.Load(ctx)
	if err := report.Write(os.Stdout, airports, cfg.Output.Format); err != nil {
		slog.Error("Failed to write airports", "error", err)
		os.Exit(1)
	}
}

// runWatch refreshes the dataset on an interval until interrupted
func runWatch(cfg *config.Config) {
	d, err := daemon.New(daemon.Config{
		SourceBase:      cfg.Source.Base,
		AirportsName:    cfg.Source.Airports,
		SSIDName:        cfg.Source.SSID,
		SourceTimeout:   time.Duration(cfg.Source.Timeout) * time.Second,
		RefreshInterval: time.Duration(cfg.RefreshInterval) * time.Second,
		StrictJoin:      cfg.StrictJoin,
		OnChange: func(c models.Collection) {
			if err := report.Write(os.Stdout, c, cfg.Output.Format); err != nil {
				slog.Error("Failed to write airports", "error", err)
			}
		},
	})
	if err != nil {
		slog.Error("Failed to create daemon", "error", err)
		os.Exit(1)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	if err := d.Start(); err != nil {
		slog.Error("Failed to start daemon", "error", err)
		os.Exit(1)
	}
	slog.Info("Watching airport data",
		"source", cfg.Source.Base,
		"refresh_interval", time.Duration(cfg.RefreshInterval)*time.Second,
	)

	<-sigChan
	slog.Info("Received interrupt signal, shutting down...")

	if err := d.Stop(); err != nil {
		slog.Error("Error stopping daemon", "error", err)
	}

	slog.Info("Shutdown complete")
}
