package entity

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/strider/ecs"
	"github.com/milk9111/strider/ecs/component"
	"github.com/milk9111/strider/levels"
	"github.com/milk9111/strider/physics"
	"github.com/milk9111/strider/physics/chipmunk"
	"github.com/milk9111/strider/physics/volume"
	"github.com/milk9111/strider/prefabs"
)

// NewBackend creates an empty physics backend by name.
func NewBackend(name string, gravity float64) (physics.Backend, error) {
	g := mgl64.Vec3{0, -gravity, 0}
	switch name {
	case "volume", "":
		return volume.NewWorld(g), nil
	case "chipmunk":
		return chipmunk.NewSpace(g), nil
	default:
		return nil, fmt.Errorf("build world: unknown backend %q", name)
	}
}

// BuildWorld creates the physics world singleton from a world spec.
func BuildWorld(w *ecs.World, spec prefabs.WorldSpec) (physics.Backend, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	backend, err := NewBackend(spec.Backend, spec.Gravity)
	if err != nil {
		return nil, err
	}
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.PhysicsWorldComponent.Kind(), &component.PhysicsWorld{
		Backend:   backend,
		Step:      spec.Step(),
		KillPlane: spec.KillPlane,
	}); err != nil {
		return nil, err
	}
	return backend, nil
}

// SpawnHook runs once per character after a level has finished loading.
type SpawnHook func(w *ecs.World, e ecs.Entity)

// BuildLevel adds the level's static geometry to the backend and builds its
// characters. Geometry the backend cannot represent is logged and skipped.
func BuildLevel(w *ecs.World, lvl *levels.Level, hooks ...SpawnHook) ([]ecs.Entity, error) {
	if lvl == nil {
		return nil, fmt.Errorf("build level: level is nil")
	}
	_, pw, ok := ecs.First(w, component.PhysicsWorldComponent.Kind())
	if !ok || pw.Backend == nil {
		return nil, ErrNoPhysicsWorld
	}
	pw.Level = lvl

	if lvl.Ground != nil {
		pw.Backend.AddGround(lvl.Ground.Y, lvl.Ground.HalfExtent)
	}
	for _, b := range lvl.Boxes {
		pw.Backend.AddBox(b.Center.Vec(), b.Size.Vec())
	}
	for i, s := range lvl.Slopes {
		if err := pw.Backend.AddSlope(s.From.Vec(), s.To.Vec(), s.Width); err != nil {
			slog.Warn("level: skip slope", "level", lvl.Name, "index", i, "err", err)
		}
	}

	spawned := make([]ecs.Entity, 0, len(lvl.Entities))
	for _, placed := range lvl.Entities {
		at := placed.Position()
		e, err := BuildCharacter(w, placed.Prefab, &at)
		if err != nil {
			for _, done := range spawned {
				DestroyCharacter(w, done)
			}
			return nil, fmt.Errorf("build level: %s: %w", lvl.Name, err)
		}
		if placed.Type == "player" && !ecs.Has(w, e, component.PlayerTagComponent.Kind()) {
			_ = ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
		}
		spawned = append(spawned, e)
	}

	for _, e := range spawned {
		w.Events().Push(ecs.Event{Type: ecs.EventSpawn, Entity: e})
		for _, hook := range hooks {
			hook(w, e)
		}
	}
	return spawned, nil
}

// LogSpawn is a SpawnHook that logs where each character landed.
func LogSpawn(logger *slog.Logger) SpawnHook {
	return func(w *ecs.World, e ecs.Entity) {
		ch, _ := ecs.Get(w, e, component.CharacterComponent.Kind())
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		if ch == nil || t == nil {
			return
		}
		logger.Info("level: spawned", "entity", e.String(), "name", ch.Name, "prefab", ch.Prefab, "pos", t.Position)
	}
}
