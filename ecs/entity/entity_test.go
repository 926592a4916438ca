package entity

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/strider/controller"
	"github.com/milk9111/strider/ecs"
	"github.com/milk9111/strider/ecs/component"
	"github.com/milk9111/strider/levels"
	"github.com/milk9111/strider/physics/volume"
	"github.com/milk9111/strider/prefabs"
)

func newWorld(t *testing.T) (*ecs.World, *volume.World) {
	t.Helper()
	w := ecs.NewWorld()
	backend, err := BuildWorld(w, prefabs.DefaultWorldSpec())
	if err != nil {
		t.Fatalf("BuildWorld: %v", err)
	}
	vw, ok := backend.(*volume.World)
	if !ok {
		t.Fatalf("default backend is %T", backend)
	}
	return w, vw
}

// usePrefabDir points prefab loading at a temp dir holding files.
func usePrefabDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	old := prefabs.Dir
	prefabs.Dir = dir
	t.Cleanup(func() { prefabs.Dir = old })
	return dir
}

const customPrefab = `name: custom
components:
  transform: {x: 1, y: 2, z: 3}
  body: {radius: 0.4, half_length: 0.6, mass: 2}
  character:
    max_speed: %s
    float_height: %s
  input: {source: none}
`

func prefabWith(maxSpeed, floatHeight string) string {
	s := strings.Replace(customPrefab, "%s", maxSpeed, 1)
	return strings.Replace(s, "%s", floatHeight, 1)
}

func TestNewBackend(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"", "volume", false},
		{"volume", "volume", false},
		{"chipmunk", "chipmunk", false},
		{"bullet", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewBackend(tt.name, 9.81)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v", err)
			}
			if err == nil && b.Name() != tt.want {
				t.Fatalf("name = %q, want %q", b.Name(), tt.want)
			}
		})
	}
}

func TestBuildWorldRejectsInvalidSpec(t *testing.T) {
	spec := prefabs.DefaultWorldSpec()
	spec.TickRate = 0
	if _, err := BuildWorld(ecs.NewWorld(), spec); err == nil {
		t.Fatalf("expected error for zero tick rate")
	}
}

func TestBuildCharacter(t *testing.T) {
	w, vw := newWorld(t)
	at := mgl64.Vec3{2, 3, 4}
	e, err := BuildCharacter(w, "character.yaml", &at)
	if err != nil {
		t.Fatalf("BuildCharacter: %v", err)
	}

	for name, has := range map[string]bool{
		"transform":  ecs.Has(w, e, component.TransformComponent.Kind()),
		"body":       ecs.Has(w, e, component.PhysicsBodyComponent.Kind()),
		"character":  ecs.Has(w, e, component.CharacterComponent.Kind()),
		"locomotion": ecs.Has(w, e, component.LocomotionComponent.Kind()),
		"grounding":  ecs.Has(w, e, component.GroundingComponent.Kind()),
		"actions":    ecs.Has(w, e, component.ActionsComponent.Kind()),
		"source":     ecs.Has(w, e, component.ActionSourceComponent.Kind()),
		"spawn":      ecs.Has(w, e, component.SpawnComponent.Kind()),
		"player":     ecs.Has(w, e, component.PlayerTagComponent.Kind()),
	} {
		if !has {
			t.Fatalf("missing %s component", name)
		}
	}

	ch, _ := ecs.Get(w, e, component.CharacterComponent.Kind())
	if ch.Config.HalfHeight != 1.0 || ch.Config.FloatHeight != 1.5 || ch.Prefab != "character.yaml" || ch.Name != "player" {
		t.Fatalf("character = %+v", ch)
	}
	spawn, _ := ecs.Get(w, e, component.SpawnComponent.Kind())
	if spawn.Position != at {
		t.Fatalf("spawn = %v, want %v", spawn.Position, at)
	}
	g, _ := ecs.Get(w, e, component.GroundingComponent.Kind())
	if g.Phase != controller.Airborne {
		t.Fatalf("initial phase = %v", g.Phase)
	}
	if len(vw.Bodies()) != 1 {
		t.Fatalf("bodies = %d", len(vw.Bodies()))
	}

	if !DestroyCharacter(w, e) || len(vw.Bodies()) != 0 {
		t.Fatalf("destroy left %d bodies", len(vw.Bodies()))
	}
	if DestroyCharacter(w, e) {
		t.Fatalf("destroying twice succeeded")
	}
}

func TestBuildCharacterWithoutPhysicsWorld(t *testing.T) {
	w := ecs.NewWorld()
	_, err := BuildCharacter(w, "character.yaml", nil)
	if !errors.Is(err, ErrNoPhysicsWorld) {
		t.Fatalf("err = %v", err)
	}
	if n := len(ecs.Entities(w)); n != 0 {
		t.Fatalf("failed build left %d entities", n)
	}
}

func TestBuildEntityCleansUpOnError(t *testing.T) {
	usePrefabDir(t, map[string]string{
		"wings.yaml": `name: wings
components:
  body: {radius: 0.5, half_length: 0.5, mass: 1}
  wings: {span: 3}
`,
		"low.yaml":   prefabWith("5", "0.5"),
		"empty.yaml": "name: empty\n",
	})

	tests := []struct {
		prefab string
		want   string
	}{
		{"wings.yaml", `no builder for component "wings"`},
		{"low.yaml", `add "character"`},
		{"empty.yaml", "does not define components"},
		{"nope.yaml", "load"},
	}
	for _, tt := range tests {
		t.Run(tt.prefab, func(t *testing.T) {
			w, vw := newWorld(t)
			before := len(ecs.Entities(w))
			_, err := BuildCharacter(w, tt.prefab, nil)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want %q", err, tt.want)
			}
			if n := len(ecs.Entities(w)); n != before {
				t.Fatalf("entities = %d, want %d", n, before)
			}
			if len(vw.Bodies()) != 0 {
				t.Fatalf("failed build left a body in the backend")
			}
		})
	}
}

func TestBuildLevelArena(t *testing.T) {
	w, vw := newWorld(t)
	lvl, err := levels.Load("arena")
	if err != nil {
		t.Fatal(err)
	}

	var hooked []ecs.Entity
	spawned, err := BuildLevel(w, lvl, func(_ *ecs.World, e ecs.Entity) { hooked = append(hooked, e) })
	if err != nil {
		t.Fatalf("BuildLevel: %v", err)
	}
	if len(spawned) != 3 || len(hooked) != 3 || len(vw.Bodies()) != 3 {
		t.Fatalf("spawned %d hooked %d bodies %d", len(spawned), len(hooked), len(vw.Bodies()))
	}
	if len(vw.Statics()) <= 1+len(lvl.Boxes) {
		t.Fatalf("slope geometry missing: %d statics", len(vw.Statics()))
	}

	players := 0
	for _, e := range spawned {
		if ecs.Has(w, e, component.PlayerTagComponent.Kind()) {
			players++
		}
	}
	if players != 1 {
		t.Fatalf("players = %d", players)
	}

	_, pw, _ := ecs.First(w, component.PhysicsWorldComponent.Kind())
	if pw.Level != lvl {
		t.Fatalf("level not recorded on the physics world")
	}
	if got := w.Events().Len(); got != 3 {
		t.Fatalf("events = %d, want one spawn per character", got)
	}
}

func TestBuildLevelRollsBackOnBadPrefab(t *testing.T) {
	w, vw := newWorld(t)
	lvl, err := levels.Parse([]byte(`{"name":"bad","entities":[
		{"type":"npc","prefab":"walker.yaml","x":0,"y":2,"z":0},
		{"type":"npc","prefab":"missing.yaml","x":0,"y":2,"z":0}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := BuildLevel(w, lvl); err == nil {
		t.Fatalf("expected error")
	}
	if len(vw.Bodies()) != 0 {
		t.Fatalf("rollback left %d bodies", len(vw.Bodies()))
	}
	if _, err := BuildLevel(ecs.NewWorld(), lvl); !errors.Is(err, ErrNoPhysicsWorld) {
		t.Fatalf("err = %v", err)
	}
}

func TestReloadCharacters(t *testing.T) {
	dir := usePrefabDir(t, map[string]string{"custom.yaml": prefabWith("5", "1.6")})
	w, _ := newWorld(t)
	e, err := BuildCharacter(w, "custom.yaml", nil)
	if err != nil {
		t.Fatalf("BuildCharacter: %v", err)
	}
	other, err := BuildCharacter(w, "character.yaml", nil)
	if err != nil {
		t.Fatal(err)
	}
	w.Events().Drain()

	write := func(body string) {
		if err := os.WriteFile(filepath.Join(dir, "custom.yaml"), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	speed := func(e ecs.Entity) float64 {
		loco, _ := ecs.Get(w, e, component.LocomotionComponent.Kind())
		return loco.Controller.Config().MaxSpeed
	}

	write(prefabWith("7", "1.6"))
	n, err := ReloadCharacters(w, "custom.yaml")
	if err != nil || n != 1 {
		t.Fatalf("reload = %d, %v", n, err)
	}
	if speed(e) != 7 || speed(other) != 10 {
		t.Fatalf("speeds = %v, %v", speed(e), speed(other))
	}
	ch, _ := ecs.Get(w, e, component.CharacterComponent.Kind())
	if ch.Config.MaxSpeed != 7 || ch.Config.HalfHeight != 1.0 {
		t.Fatalf("character config = %+v", ch.Config)
	}
	if evs := w.Events().Drain(); len(evs) != 1 || evs[0].Type != ecs.EventReload {
		t.Fatalf("events = %+v", evs)
	}

	write(prefabWith("9", "0.8"))
	if _, err := ReloadCharacters(w, "custom.yaml"); err == nil {
		t.Fatalf("float height inside the capsule accepted")
	}
	if speed(e) != 7 {
		t.Fatalf("rejected reload changed the config")
	}
}
