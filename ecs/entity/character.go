package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/strider/controller"
	"github.com/milk9111/strider/ecs"
	"github.com/milk9111/strider/ecs/component"
	"github.com/milk9111/strider/prefabs"
)

// BuildCharacter builds a prefab with a body and character config, then
// wires a locomotion controller to it. at, when non-nil, overrides the
// prefab's position.
func BuildCharacter(w *ecs.World, prefabPath string, at *mgl64.Vec3) (ecs.Entity, error) {
	e, err := buildEntity(w, prefabPath, &buildContext{At: at})
	if err != nil {
		return 0, err
	}
	if err := attachController(w, e); err != nil {
		DestroyCharacter(w, e)
		return 0, fmt.Errorf("build character: %q: %w", prefabPath, err)
	}
	return e, nil
}

func attachController(w *ecs.World, e ecs.Entity) error {
	ch, ok := ecs.Get(w, e, component.CharacterComponent.Kind())
	if !ok {
		return fmt.Errorf("prefab has no character component")
	}
	pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok {
		return fmt.Errorf("prefab has no body component")
	}
	_, pw, ok := ecs.First(w, component.PhysicsWorldComponent.Kind())
	if !ok {
		return ErrNoPhysicsWorld
	}

	events := w.Events()
	ctrl, err := controller.New(pw.Backend, pb.Body, ch.Config,
		controller.WithStep(pw.Step),
		controller.WithObserver(func(ev controller.Event) {
			events.Push(ecs.Event{Type: ecs.EventLocomotion, Entity: e, Data: ev})
		}),
	)
	if err != nil {
		return err
	}

	if err := ecs.Add(w, e, component.LocomotionComponent.Kind(), &component.Locomotion{Controller: ctrl}); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.GroundingComponent.Kind(), &component.Grounding{Phase: ctrl.Phase()}); err != nil {
		return err
	}
	if !ecs.Has(w, e, component.ActionsComponent.Kind()) {
		if err := ecs.Add(w, e, component.ActionsComponent.Kind(), &component.Actions{State: controller.NewActionState()}); err != nil {
			return err
		}
	}
	pos := pb.Body.Position()
	if err := ecs.Add(w, e, component.SpawnComponent.Kind(), &component.Spawn{Position: pos}); err != nil {
		return err
	}
	if _, ok := ecs.Get(w, e, component.TransformComponent.Kind()); !ok {
		return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: pos, Previous: pos})
	}
	return nil
}

// DestroyCharacter removes the entity and its body from the backend.
func DestroyCharacter(w *ecs.World, e ecs.Entity) bool {
	despawnBody(w, e)
	return ecs.DestroyEntity(w, e)
}

// ReloadCharacters re-reads prefabPath and applies its character config to
// every entity built from it. Entities whose controller rejects the new
// config keep the old one; the first error is returned.
func ReloadCharacters(w *ecs.World, prefabPath string) (int, error) {
	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("reload: %w", err)
	}
	charSpec, err := prefabs.DecodeComponentSpec[prefabs.CharacterComponentSpec](spec.Components["character"])
	if err != nil {
		return 0, fmt.Errorf("reload: %q: decode character: %w", prefabPath, err)
	}

	var firstErr error
	n := 0
	ecs.ForEach2(w, component.CharacterComponent.Kind(), component.LocomotionComponent.Kind(), func(e ecs.Entity, ch *component.Character, loco *component.Locomotion) {
		if ch.Prefab != prefabPath {
			return
		}
		cfg := characterConfig(w, e, charSpec)
		if err := loco.Controller.SetConfig(cfg); err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("reload: %q: entity %s: %w", prefabPath, e, err)
			}
			return
		}
		ch.Config = cfg
		n++
	})
	if n > 0 {
		w.Events().Push(ecs.Event{Type: ecs.EventReload, Data: prefabPath})
	}
	return n, firstErr
}
