package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/cubesim/internal/activity"
	"github.com/udisondev/cubesim/internal/config"
	"github.com/udisondev/cubesim/internal/world"
)

const ConfigPath = "config/cubesim.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load config FIRST to determine log level
	cfgPath := ConfigPath
	if p := os.Getenv("CUBESIM_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := parseLogLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))

	// Per-tick activity logs only make sense at debug level
	activity.EnableDebugLogging(logLevel == slog.LevelDebug)

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	slog.Info("cubesim starting",
		"log_level", cfg.LogLevel,
		"seed", seed,
		"world", fmt.Sprintf("%dx%dx%d", cfg.World.SizeX, cfg.World.SizeY, cfg.World.SizeZ))

	w, err := buildWorld(cfg, seed)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	tickMgr := world.NewTickManager(w, cfg.TickInterval)
	g.Go(func() error {
		if err := tickMgr.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("tick manager: %w", err)
		}
		return nil
	})

	if cfg.ReportInterval > 0 {
		g.Go(func() error {
			slog.Info("starting status reporter", "interval", cfg.ReportInterval)
			runReporter(gctx, w, tickMgr, cfg.ReportInterval)
			return nil
		})
	}

	if cfg.Units.Aggressive {
		g.Go(func() error {
			slog.Info("starting skirmish loop", "interval", cfg.TickInterval)
			runSkirmishes(gctx, w, cfg.TickInterval)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("simulation error: %w", err)
	}

	slog.Info("cubesim stopped",
		"simulated", fmt.Sprintf("%.1fs", w.Time()),
		"ticks", tickMgr.Ticks(),
		"units", w.UnitCount())
	return nil
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
