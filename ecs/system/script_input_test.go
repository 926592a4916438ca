package system

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/milk9111/strider/controller"
	"github.com/milk9111/strider/ecs"
	"github.com/milk9111/strider/ecs/component"
	"github.com/milk9111/strider/prefabs"
)

func scriptEntity(t *testing.T, w *ecs.World, script string) (ecs.Entity, *component.ActionSource) {
	t.Helper()
	e := ecs.CreateEntity(w)
	src := &component.ActionSource{Kind: component.InputScript, Script: script}
	if err := ecs.Add(w, e, component.ActionSourceComponent.Kind(), src); err != nil {
		t.Fatal(err)
	}
	return e, src
}

func TestScriptInputHoldsActions(t *testing.T) {
	sources := map[string]string{
		"pulse.tengo": `
update := func(engine, state) {
	engine.hold("MoveForward")
	if engine.frame() == 2 {
		engine.hold("Jump")
	}
	engine.hold("Fly")
}`,
	}
	s := NewScriptInputSystem()
	s.Load = func(name string) ([]byte, error) {
		src, ok := sources[name]
		if !ok {
			return nil, errors.New("missing")
		}
		return []byte(src), nil
	}

	w := ecs.NewWorld()
	_, src := scriptEntity(t, w, "pulse.tengo")

	var jumps []bool
	for i := 0; i < 4; i++ {
		s.Update(w)
		if !src.Held.Has(controller.MoveForward) {
			t.Fatalf("frame %d: MoveForward not held", i)
		}
		jumps = append(jumps, src.Held.Has(controller.Jump))
	}
	if want := []bool{false, false, true, false}; !equalBools(jumps, want) {
		t.Fatalf("jump held = %v, want %v", jumps, want)
	}
	if len(src.Held) != 1 {
		t.Fatalf("unknown action was held: %v", src.Held)
	}

	sources["pulse.tengo"] = `update := func(engine, state) { engine.hold("Jump") }`
	s.Update(w)
	if src.Held.Has(controller.Jump) {
		t.Fatalf("cached script replaced without Invalidate")
	}
	if n := s.Invalidate("scripts/pulse.tengo"); n != 1 {
		t.Fatalf("Invalidate = %d", n)
	}
	s.Update(w)
	if !src.Held.Has(controller.Jump) || src.Held.Has(controller.MoveForward) {
		t.Fatalf("reloaded script not used: %v", src.Held)
	}
}

func TestScriptInputErrorsAreNotFatal(t *testing.T) {
	sources := map[string]string{
		"broken.tengo":  `update := func(engine, state) {`,
		"crashes.tengo": `update := func(engine, state) { engine.hold("Jump"); engine.missing() }`,
		"fine.tengo":    `update := func(engine, state) { engine.hold("MoveLeft") }`,
	}
	s := NewScriptInputSystem()
	s.Load = func(name string) ([]byte, error) { return []byte(sources[name]), nil }

	w := ecs.NewWorld()
	_, broken := scriptEntity(t, w, "broken.tengo")
	_, crashes := scriptEntity(t, w, "crashes.tengo")
	_, fine := scriptEntity(t, w, "fine.tengo")

	for i := 0; i < 3; i++ {
		s.Update(w)
	}
	if len(broken.Held) != 0 {
		t.Fatalf("script that failed to compile held %v", broken.Held)
	}
	if crashes.Held.Has(controller.MoveLeft) {
		t.Fatalf("unexpected hold %v", crashes.Held)
	}
	if len(crashes.Held) != 0 {
		t.Fatalf("failed runtime kept running: %v", crashes.Held)
	}
	if !fine.Held.Has(controller.MoveLeft) {
		t.Fatalf("healthy script stopped: %v", fine.Held)
	}
}

func TestScriptInputDropsDestroyedEntities(t *testing.T) {
	s := NewScriptInputSystem()
	s.Load = func(string) ([]byte, error) { return []byte(`update := func(engine, state) {}`), nil }

	w := ecs.NewWorld()
	e, _ := scriptEntity(t, w, "idle.tengo")
	kb := ecs.CreateEntity(w)
	_ = ecs.Add(w, kb, component.ActionSourceComponent.Kind(), &component.ActionSource{Kind: component.InputKeyboard})

	s.Update(w)
	if len(s.cache) != 1 {
		t.Fatalf("cache = %d, want only the script entity", len(s.cache))
	}
	ecs.DestroyEntity(w, e)
	s.Update(w)
	if len(s.cache) != 0 {
		t.Fatalf("destroyed entity still cached")
	}
}

func TestKeyboardAndSampleSystems(t *testing.T) {
	held := controller.NewActionSet(controller.Jump)
	kb := NewKeyboardInputSystem(func() controller.ActionSet { return held })
	sample := NewActionSampleSystem()

	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	src := &component.ActionSource{Kind: component.InputKeyboard}
	actions := &component.Actions{State: controller.NewActionState()}
	_ = ecs.Add(w, e, component.ActionSourceComponent.Kind(), src)
	_ = ecs.Add(w, e, component.ActionsComponent.Kind(), actions)

	kb.Update(w)
	sample.Update(w)
	if !actions.Last.Edge(controller.Jump).JustActivated {
		t.Fatalf("first frame should press Jump: %+v", actions.Last)
	}

	kb.Update(w)
	sample.Update(w)
	if actions.Last.Edge(controller.Jump).JustActivated || !actions.Last.Edge(controller.Jump).Active {
		t.Fatalf("second frame should hold without pressing: %+v", actions.Last)
	}
	if snap := actions.Buffer.Take(); !snap.Edge(controller.Jump).JustActivated {
		t.Fatalf("buffer dropped the unread press")
	}
	if snap := actions.Buffer.Take(); snap.Edge(controller.Jump).JustActivated {
		t.Fatalf("press delivered twice")
	}
}

func TestReloadSystemApply(t *testing.T) {
	dir := t.TempDir()
	old := prefabs.Dir
	prefabs.Dir = dir
	t.Cleanup(func() { prefabs.Dir = old })

	s := newScene(t, "volume")
	scripts := NewScriptInputSystem()
	scripts.Load = func(string) ([]byte, error) { return []byte(`update := func(engine, state) {}`), nil }
	_, _ = scriptEntity(t, s.w, "wander.tengo")
	scripts.Update(s.w)

	r := NewReloadSystem(nil, scripts)
	r.Update(s.w)

	r.Apply(s.w, "scripts/wander.tengo")
	if len(scripts.cache) != 0 {
		t.Fatalf("script runtime not invalidated")
	}

	prefab, err := prefabs.Load("character.yaml")
	if err != nil {
		t.Fatal(err)
	}
	edited := []byte(string(prefab) + "\n")
	edited = replaceOnce(edited, "max_speed: 10", "max_speed: 4")
	if err := os.WriteFile(filepath.Join(dir, "character.yaml"), edited, 0o644); err != nil {
		t.Fatal(err)
	}
	r.Apply(s.w, "character.yaml")

	loco, _ := ecs.Get(s.w, s.player, component.LocomotionComponent.Kind())
	if got := loco.Controller.Config().MaxSpeed; got != 4 {
		t.Fatalf("max speed after reload = %v", got)
	}
	s.frames(1, 1.0/60)
	if s.diag.Stats().Reloads != 1 {
		t.Fatalf("reload not reported: %+v", s.diag.Stats())
	}

	r.Apply(s.w, "missing.yaml")
}

func replaceOnce(b []byte, old, new string) []byte {
	s := string(b)
	for i := 0; i+len(old) <= len(s); i++ {
		if s[i:i+len(old)] == old {
			return []byte(s[:i] + new + s[i+len(old):])
		}
	}
	return b
}

func equalBools(a, b []bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
