package system

import (
	"log/slog"

	"github.com/milk9111/strider/ecs"
	"github.com/milk9111/strider/ecs/component"
)

// RespawnSystem returns characters that fell below the kill plane to their
// spawn point. It runs after PhysicsSystem.
type RespawnSystem struct {
	// Disabled leaves fallen characters where they are, for runs that
	// count falls instead of hiding them.
	Disabled bool
}

func NewRespawnSystem() *RespawnSystem { return &RespawnSystem{} }

func (s *RespawnSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	_, pw, ok := ecs.First(w, component.PhysicsWorldComponent.Kind())
	if !ok {
		return
	}
	killPlane := pw.KillPlane

	ecs.ForEach3(w, component.PhysicsBodyComponent.Kind(), component.SpawnComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pb *component.PhysicsBody, spawn *component.Spawn, t *component.Transform) {
		if pb.Body == nil || t.Position.Y() >= killPlane {
			return
		}
		fell := t.Position
		w.Events().Push(ecs.Event{Type: ecs.EventRespawn, Entity: e, Data: fell})
		if s.Disabled {
			return
		}
		pb.Body.Teleport(spawn.Position)
		spawn.Respawns++
		t.Position = spawn.Position
		t.Previous = spawn.Position
		t.Velocity = pb.Body.Velocity()
		slog.Warn("respawn: fell out of the level", "entity", e.String(), "at", fell, "respawns", spawn.Respawns)
	})
}
