package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/udisondev/cubesim/internal/activity"
	"github.com/udisondev/cubesim/internal/config"
	"github.com/udisondev/cubesim/internal/geo"
	"github.com/udisondev/cubesim/internal/world"
)

// unitNames are handed out round-robin to spawned units.
var unitNames = []string{
	"Ada", "Boris", "Clara", "Dmitri", "Edith", "Fyodor", "Greta", "Hugo",
	"Irina", "Jonas", "Katya", "Lev",
}

// buildWorld generates the terrain and spawns the initial population.
func buildWorld(cfg config.Simulation, seed uint64) (*world.World, error) {
	grid, err := world.NewGrid(cfg.World.SizeX, cfg.World.SizeY, cfg.World.SizeZ)
	if err != nil {
		return nil, fmt.Errorf("creating grid: %w", err)
	}
	world.Generate(grid, int64(seed), cfg.World.TerrainScale, cfg.World.TerrainHeight)
	slog.Info("terrain generated", "solid", grid.SolidCount())

	w := world.New(grid, rand.New(rand.NewPCG(seed, seed>>1)), cfg.MaxDt)
	for i := range cfg.Units.Count {
		name := unitNames[i%len(unitNames)]
		_, err := w.SpawnRandomUnit(name, cfg.Units.Attributes.Min, cfg.Units.Attributes.Max, cfg.Units.DefaultBehavior)
		if err != nil {
			return nil, fmt.Errorf("spawning unit %d: %w", i, err)
		}
	}
	return w, nil
}

// runReporter logs the state of every unit until ctx is canceled.
func runReporter(ctx context.Context, w *world.World, tm *world.TickManager, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			snaps := w.Snapshots()
			slog.Info("world status",
				"time", fmt.Sprintf("%.1fs", w.Time()),
				"ticks", tm.Ticks(),
				"units", len(snaps))
			for _, s := range snaps {
				slog.Info("unit status",
					"id", s.ID,
					"name", s.Name,
					"activity", s.Activity,
					"pos", fmt.Sprintf("(%.2f, %.2f, %.2f)", s.Position.X(), s.Position.Y(), s.Position.Z()),
					"hp", fmt.Sprintf("%.1f/%.0f", s.Hitpoints, s.MaxPoints),
					"stamina", fmt.Sprintf("%.1f/%.0f", s.Stamina, s.MaxPoints))
			}
		}
	}
}

// runSkirmishes makes every idle, working or moving unit attack a neighbor
// when one is in reach.
func runSkirmishes(ctx context.Context, w *world.World, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, s := range w.Snapshots() {
				if s.Activity == activity.KindAttack || s.Activity == activity.KindFall {
					continue
				}
				targets := w.UnitsAround(geo.CubeOf(s.Position), s.ID)
				if len(targets) == 0 {
					continue
				}
				if err := w.Attack(s.ID, targets[0].ID()); err != nil && activity.IsDebugEnabled() {
					slog.Debug("attack skipped", "attacker", s.ID, "err", err)
				}
			}
		}
	}
}
