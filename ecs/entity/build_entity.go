package entity

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/strider/controller"
	"github.com/milk9111/strider/ecs"
	"github.com/milk9111/strider/ecs/component"
	"github.com/milk9111/strider/physics"
	"github.com/milk9111/strider/prefabs"
)

var ErrNoPhysicsWorld = errors.New("build entity: no physics world")

type buildContext struct {
	PrefabPath string
	Name       string
	// At overrides the prefab's transform when set.
	At *mgl64.Vec3
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag": addPlayerTag,
	"transform":  addTransform,
	"body":       addBody,
	"character":  addCharacter,
	"input":      addInput,
}

// body before character: the config's half height comes from the capsule.
var componentBuildOrder = []string{
	"player_tag",
	"transform",
	"body",
	"character",
	"input",
}

// BuildEntity assembles an entity from a prefab's components map. A failed
// build leaves nothing behind.
func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	return buildEntity(w, prefabPath, &buildContext{})
}

func buildEntity(w *ecs.World, prefabPath string, ctx *buildContext) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx.PrefabPath = prefabPath
	ctx.Name = spec.Name

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	names := make([]string, 0, len(remaining))
	for _, name := range componentBuildOrder {
		if _, ok := remaining[name]; ok {
			names = append(names, name)
		}
	}
	var extra []string
	for name := range remaining {
		if _, ok := componentRegistry[name]; !ok {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	names = append(names, extra...)

	for _, name := range names {
		builder, ok := componentRegistry[name]
		if !ok {
			despawnBody(w, e)
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, name)
		}
		if err := builder(w, e, remaining[name], ctx); err != nil {
			despawnBody(w, e)
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
	}

	return e, nil
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addTransform(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return err
	}
	pos := mgl64.Vec3{spec.X, spec.Y, spec.Z}
	if ctx.At != nil {
		pos = *ctx.At
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: pos, Previous: pos})
}

func addBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.BodyComponentSpec](raw)
	if err != nil {
		return err
	}
	if spec.Radius <= 0 || spec.HalfLength < 0 {
		return fmt.Errorf("capsule radius %.3f half_length %.3f", spec.Radius, spec.HalfLength)
	}
	_, pw, ok := ecs.First(w, component.PhysicsWorldComponent.Kind())
	if !ok || pw.Backend == nil {
		return ErrNoPhysicsWorld
	}

	var pos mgl64.Vec3
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		pos = t.Position
	}
	capsule := physics.Capsule{Position: pos, Radius: spec.Radius, HalfLength: spec.HalfLength, Mass: spec.Mass}
	body := pw.Backend.Spawn(capsule)
	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Body: body, Capsule: capsule})
}

func addCharacter(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CharacterComponentSpec](raw)
	if err != nil {
		return err
	}
	cfg := characterConfig(w, e, spec)
	if err := cfg.Validate(); err != nil {
		return err
	}
	return ecs.Add(w, e, component.CharacterComponent.Kind(), &component.Character{
		Name:   ctx.Name,
		Prefab: ctx.PrefabPath,
		Config: cfg,
	})
}

// characterConfig layers the prefab values over the defaults, taking the half height
// from the entity's capsule when it has one.
func characterConfig(w *ecs.World, e ecs.Entity, spec prefabs.CharacterComponentSpec) controller.Config {
	cfg := spec.Apply(controller.DefaultConfig())
	if pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
		cfg.HalfHeight = pb.Capsule.HalfHeight()
	}
	return cfg
}

func addInput(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.InputComponentSpec](raw)
	if err != nil {
		return err
	}
	kind := component.InputKind(strings.ToLower(strings.TrimSpace(spec.Source)))
	switch kind {
	case component.InputKeyboard, component.InputNone:
	case component.InputScript:
		if strings.TrimSpace(spec.Script) == "" {
			return fmt.Errorf("script input without a script")
		}
	case "":
		kind = component.InputNone
	default:
		return fmt.Errorf("unknown input source %q", spec.Source)
	}
	if err := ecs.Add(w, e, component.ActionSourceComponent.Kind(), &component.ActionSource{
		Kind:   kind,
		Script: spec.Script,
		Held:   controller.NewActionSet(),
	}); err != nil {
		return err
	}
	return ecs.Add(w, e, component.ActionsComponent.Kind(), &component.Actions{State: controller.NewActionState()})
}

func despawnBody(w *ecs.World, e ecs.Entity) {
	pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok || pb.Body == nil {
		return
	}
	if _, pw, ok := ecs.First(w, component.PhysicsWorldComponent.Kind()); ok && pw.Backend != nil {
		pw.Backend.Despawn(pb.Body)
	}
}
