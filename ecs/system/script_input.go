package system

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/milk9111/strider/controller"
	"github.com/milk9111/strider/ecs"
	"github.com/milk9111/strider/ecs/component"
	"github.com/milk9111/strider/prefabs"
)

// Scripts define update(engine, state). engine exposes hold(action),
// frame(), grounded(), distance(), position() and velocity(); state is a
// map that persists between frames.
const scriptDispatch = `
update(__engine, __state)
`

type scriptRuntime struct {
	path     string
	compiled *tengo.Compiled
	state    *tengo.Map
	failed   bool
}

// ScriptInputSystem drives script ActionSources from tengo scripts, once per
// frame.
type ScriptInputSystem struct {
	Load  func(name string) ([]byte, error)
	cache map[ecs.Entity]*scriptRuntime
	frame int64
}

func NewScriptInputSystem() *ScriptInputSystem {
	return &ScriptInputSystem{Load: prefabs.LoadScript, cache: map[ecs.Entity]*scriptRuntime{}}
}

// Invalidate drops every compiled copy of the named script so the next
// frame reloads it.
func (s *ScriptInputSystem) Invalidate(name string) int {
	clean := strings.TrimPrefix(name, "scripts/")
	n := 0
	for e, rt := range s.cache {
		if strings.TrimPrefix(rt.path, "scripts/") == clean {
			delete(s.cache, e)
			n++
		}
	}
	return n
}

func (s *ScriptInputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	frame := s.frame
	s.frame++

	seen := make(map[ecs.Entity]struct{}, len(s.cache))
	ecs.ForEach(w, component.ActionSourceComponent.Kind(), func(e ecs.Entity, src *component.ActionSource) {
		if src.Kind != component.InputScript {
			return
		}
		seen[e] = struct{}{}
		held := controller.NewActionSet()
		src.Held = held

		rt, err := s.runtime(e, src.Script)
		if err != nil {
			slog.Error("script: load", "entity", e.String(), "script", src.Script, "err", err)
			return
		}
		if rt.failed {
			return
		}
		if err := rt.run(buildScriptEngine(w, e, frame, held)); err != nil {
			rt.failed = true
			slog.Error("script: update", "entity", e.String(), "script", src.Script, "err", err)
		}
	})

	for e := range s.cache {
		if _, ok := seen[e]; !ok {
			delete(s.cache, e)
		}
	}
}

func (s *ScriptInputSystem) runtime(e ecs.Entity, path string) (*scriptRuntime, error) {
	if s.cache == nil {
		s.cache = map[ecs.Entity]*scriptRuntime{}
	}
	if rt, ok := s.cache[e]; ok && rt.path == path {
		return rt, nil
	}
	load := s.Load
	if load == nil {
		load = prefabs.LoadScript
	}
	src, err := load(path)
	if err != nil {
		return nil, err
	}
	rt, err := compileScript(path, src)
	if err != nil {
		return nil, err
	}
	s.cache[e] = rt
	return rt, nil
}

func compileScript(path string, src []byte) (*scriptRuntime, error) {
	script := tengo.NewScript([]byte(string(src) + "\n" + scriptDispatch))
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", path, err)
	}
	return &scriptRuntime{
		path:     path,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}, nil
}

func (rt *scriptRuntime) run(engine *tengo.ImmutableMap) error {
	if err := rt.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", rt.state); err != nil {
		return err
	}
	return rt.compiled.Run()
}

func buildScriptEngine(w *ecs.World, e ecs.Entity, frame int64, held controller.ActionSet) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["hold"] = &tengo.UserFunction{Name: "hold", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		a := controller.Action(objectAsString(args[0]))
		if !a.Known() {
			return tengo.FalseValue, nil
		}
		held.Add(a)
		return tengo.TrueValue, nil
	}}

	values["frame"] = &tengo.UserFunction{Name: "frame", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: frame}, nil
	}}

	values["grounded"] = &tengo.UserFunction{Name: "grounded", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if g, ok := ecs.Get(w, e, component.GroundingComponent.Kind()); ok && g.Phase == controller.Grounded {
			return tengo.TrueValue, nil
		}
		return tengo.FalseValue, nil
	}}

	values["distance"] = &tengo.UserFunction{Name: "distance", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if g, ok := ecs.Get(w, e, component.GroundingComponent.Kind()); ok && g.Result.HasHit {
			return &tengo.Float{Value: g.Result.Distance}, nil
		}
		return tengo.UndefinedValue, nil
	}}

	values["position"] = &tengo.UserFunction{Name: "position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		var p [3]float64
		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			p = t.Position
		}
		return vecObject(p), nil
	}}

	values["velocity"] = &tengo.UserFunction{Name: "velocity", Value: func(args ...tengo.Object) (tengo.Object, error) {
		var v [3]float64
		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			v = t.Velocity
		}
		return vecObject(v), nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func vecObject(v [3]float64) *tengo.Array {
	return &tengo.Array{Value: []tengo.Object{
		&tengo.Float{Value: v[0]},
		&tengo.Float{Value: v[1]},
		&tengo.Float{Value: v[2]},
	}}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
