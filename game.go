package main

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/milk9111/strider/common"
	"github.com/milk9111/strider/ecs"
	"github.com/milk9111/strider/ecs/component"
	"github.com/milk9111/strider/ecs/entity"
	"github.com/milk9111/strider/ecs/system"
	"github.com/milk9111/strider/levels"
	"github.com/milk9111/strider/logger"
	"github.com/milk9111/strider/physics"
	"github.com/milk9111/strider/prefabs"
)

const (
	screenWidth  = common.ScreenWidth
	screenHeight = common.ScreenHeight

	// maxFrameTime caps elapsed time after a stall (window drag, breakpoint).
	maxFrameTime = 0.25
)

type Options struct {
	Debug  bool
	Script string
	Watch  bool
}

type Game struct {
	world   *ecs.World
	sched   *ecs.Scheduler
	backend physics.Backend
	loco    *system.LocomotionSystem
	diag    *system.DiagnosticsSystem
	watcher *prefabs.Watcher
	player  ecs.Entity
	camera  camera
	hud     text.Face
	debug   bool
	last    time.Time
}

func NewGame(spec prefabs.WorldSpec, opts Options) (*Game, error) {
	w := ecs.NewWorld()
	backend, err := entity.BuildWorld(w, spec)
	if err != nil {
		return nil, err
	}
	lvl, err := levels.Load(spec.Level)
	if err != nil {
		return nil, err
	}
	spawned, err := entity.BuildLevel(w, lvl, entity.LogSpawn(logger.L()))
	if err != nil {
		return nil, err
	}

	g := &Game{world: w, backend: backend, debug: opts.Debug}
	if g.hud, err = newHUDFace(); err != nil {
		logger.L().Warn("sandbox: hud font", "err", err)
	}
	if player, _, ok := ecs.First(w, component.PlayerTagComponent.Kind()); ok {
		g.player = player
	} else if len(spawned) > 0 {
		g.player = spawned[0]
	}
	if opts.Script != "" {
		if src, ok := ecs.Get(w, g.player, component.ActionSourceComponent.Kind()); ok {
			src.Kind = component.InputScript
			src.Script = opts.Script
		}
	}

	g.loco, err = system.NewLocomotionSystem(spec.ProbeWorkers)
	if err != nil {
		return nil, err
	}
	scripts := system.NewScriptInputSystem()
	g.diag = system.NewDiagnosticsSystem(logger.L())

	if opts.Watch {
		g.watcher, err = prefabs.NewWatcher(prefabs.Dir)
		if err != nil {
			logger.L().Warn("prefabs: hot reload disabled", "err", err)
		}
	}

	g.sched = ecs.NewScheduler(spec.Step(), spec.MaxTicksPerFrame)
	g.sched.AddFrame(system.NewReloadSystem(g.watcher, scripts))
	g.sched.AddFrame(system.NewKeyboardInputSystem(pollActions))
	g.sched.AddFrame(scripts)
	g.sched.AddFrame(system.NewActionSampleSystem())
	g.sched.AddFixed(g.loco)
	g.sched.AddFixed(system.NewPhysicsSystem())
	g.sched.AddFixed(system.NewRespawnSystem())
	g.sched.AddLate(g.diag)

	if t, ok := ecs.Get(w, g.player, component.TransformComponent.Kind()); ok {
		g.camera.snap(t.Position)
	}
	logger.L().Info("sandbox: ready", "level", lvl.Name, "backend", backend.Name(), "characters", len(spawned), "step", spec.Step())
	return g, nil
}

func (g *Game) Update() error {
	now := time.Now()
	elapsed := 0.0
	if !g.last.IsZero() {
		elapsed = min(now.Sub(g.last).Seconds(), maxFrameTime)
	}
	g.last = now

	g.sched.Update(g.world, elapsed)

	if t, ok := ecs.Get(g.world, g.player, component.TransformComponent.Kind()); ok {
		g.camera.follow(t.Lerp(g.sched.Alpha()))
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	_, pw, ok := ecs.First(g.world, component.PhysicsWorldComponent.Kind())
	if ok && pw.Level != nil {
		drawLevel(screen, g.camera, pw.Level)
	}
	drawCharacters(screen, g.camera, g.world, g.sched.Alpha(), g.player)
	if g.debug {
		drawPhysicsDebug(screen, g.camera, g.backend)
	}
	drawHUD(screen, g.hud, g.hudText())
}

func (g *Game) hudText() string {
	text := fmt.Sprintf("FPS: %.1f  TPS: %.1f  ticks: %d  backend: %s", ebiten.ActualFPS(), ebiten.ActualTPS(), g.sched.Ticks(), g.backend.Name())
	loco, ok := ecs.Get(g.world, g.player, component.LocomotionComponent.Kind())
	if !ok {
		return text
	}
	r := loco.Last
	dist := "none"
	if r.Grounding.HasHit {
		dist = fmt.Sprintf("%.2f", r.Grounding.Distance)
	}
	stats := g.diag.Stats()
	return text + fmt.Sprintf("\nphase: %s  ground: %s  normal: (%.2f, %.2f, %.2f)\nvel: (%.2f, %.2f, %.2f)\njumps: %d  landings: %d  respawns: %d",
		r.Phase, dist, r.Grounding.Normal.X(), r.Grounding.Normal.Y(), r.Grounding.Normal.Z(),
		r.Outcome.Velocity.X(), r.Outcome.Velocity.Y(), r.Outcome.Velocity.Z(),
		stats.Jumps, stats.Landings, stats.Respawns,
	)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	g.loco.Close()
}
