// Command soak runs a crowd of scripted characters headless and reports
// whether any of them fell out of the level.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/milk9111/strider/ecs"
	"github.com/milk9111/strider/ecs/entity"
	"github.com/milk9111/strider/ecs/system"
	"github.com/milk9111/strider/levels"
	"github.com/milk9111/strider/logger"
	"github.com/milk9111/strider/prefabs"
)

type config struct {
	Characters int
	Ticks      int
	Spacing    float64
	Backend    string
	Workers    int
}

type result struct {
	Stats    system.Stats
	Ticks    uint64
	Duration time.Duration
}

func main() {
	var cfg config
	flag.IntVar(&cfg.Characters, "n", 64, "number of characters")
	flag.IntVar(&cfg.Ticks, "ticks", 3600, "fixed ticks to simulate")
	flag.Float64Var(&cfg.Spacing, "spacing", 4, "grid spacing in meters")
	flag.StringVar(&cfg.Backend, "backend", "volume", "physics backend: volume or chipmunk")
	flag.IntVar(&cfg.Workers, "workers", 8, "probe workers")
	logLevel := flag.String("log-level", "info", "debug, info, warn or error")
	flag.Parse()

	logger.Init(logger.Config{Level: *logLevel, Format: "console"})
	log := logger.L()

	res, err := run(cfg, log)
	if err != nil {
		log.Error("soak: failed", "err", err)
		os.Exit(1)
	}
	log.Info("soak: done",
		"characters", cfg.Characters,
		"ticks", res.Ticks,
		"elapsed", res.Duration,
		"jumps", res.Stats.Jumps,
		"landings", res.Stats.Landings,
		"fallen", len(res.Stats.Fallen),
	)
	if len(res.Stats.Fallen) > 0 {
		for e := range res.Stats.Fallen {
			log.Error("soak: fell", "entity", e.String(), "last", res.Stats.LastEvent[e].Kind)
		}
		os.Exit(2)
	}
}

// soakLevel is a wide floor with walkers and hoppers alternating on a grid.
func soakLevel(cfg config) *levels.Level {
	side := 1
	for side*side < cfg.Characters {
		side++
	}
	half := float64(side)*cfg.Spacing + 100

	lvl := &levels.Level{
		Name:   "soak",
		Ground: &levels.Ground{Y: 0, HalfExtent: half},
	}
	for i := 0; i < cfg.Characters; i++ {
		prefab := "walker.yaml"
		if i%2 == 1 {
			prefab = "hopper.yaml"
		}
		lvl.Entities = append(lvl.Entities, levels.Entity{
			Type:   "npc",
			Prefab: prefab,
			X:      (float64(i%side) - float64(side)/2) * cfg.Spacing,
			Y:      3,
			Z:      (float64(i/side) - float64(side)/2) * cfg.Spacing,
		})
	}
	return lvl
}

func run(cfg config, log *slog.Logger) (result, error) {
	spec := prefabs.DefaultWorldSpec()
	spec.Backend = cfg.Backend
	spec.ProbeWorkers = cfg.Workers

	w := ecs.NewWorld()
	if _, err := entity.BuildWorld(w, spec); err != nil {
		return result{}, err
	}
	lvl := soakLevel(cfg)
	if err := lvl.Validate(); err != nil {
		return result{}, err
	}
	if _, err := entity.BuildLevel(w, lvl); err != nil {
		return result{}, err
	}

	loco, err := system.NewLocomotionSystem(spec.ProbeWorkers)
	if err != nil {
		return result{}, err
	}
	defer loco.Close()
	diag := system.NewDiagnosticsSystem(log)

	sched := ecs.NewScheduler(spec.Step(), spec.MaxTicksPerFrame)
	sched.AddFrame(system.NewScriptInputSystem())
	sched.AddFrame(system.NewActionSampleSystem())
	sched.AddFixed(loco)
	sched.AddFixed(system.NewPhysicsSystem())
	sched.AddFixed(&system.RespawnSystem{Disabled: true})
	sched.AddLate(diag)

	start := time.Now()
	for i := 0; i < cfg.Ticks; i++ {
		if sched.Update(w, spec.Step()) != 1 {
			return result{}, fmt.Errorf("frame %d did not run exactly one tick", i)
		}
		if i > 0 && i%600 == 0 {
			log.Debug("soak: progress", "tick", i, "jumps", diag.Stats().Jumps)
		}
	}
	return result{Stats: diag.Stats(), Ticks: sched.Ticks(), Duration: time.Since(start)}, nil
}
