package prefabs

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/strider/common"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// WorldSpec is the simulation setup shared by every character in a scene.
type WorldSpec struct {
	Backend          string  `yaml:"backend"`
	Gravity          float64 `yaml:"gravity"`
	TickRate         int     `yaml:"tick_rate"`
	MaxTicksPerFrame int     `yaml:"max_ticks_per_frame"`
	KillPlane        float64 `yaml:"kill_plane"`
	ProbeWorkers     int     `yaml:"probe_workers"`
	Level            string  `yaml:"level"`
	Player           string  `yaml:"player"`
}

func DefaultWorldSpec() WorldSpec {
	return WorldSpec{
		Backend:          "volume",
		Gravity:          common.Gravity,
		TickRate:         common.TickRate,
		MaxTicksPerFrame: common.MaxTicksPerFrame,
		KillPlane:        common.KillPlane,
		ProbeWorkers:     4,
		Level:            "arena",
		Player:           "character.yaml",
	}
}

// LoadWorldSpec reads world.yaml over the defaults. Fields left out of the
// file keep their default.
func LoadWorldSpec() (WorldSpec, error) {
	spec := DefaultWorldSpec()
	data, err := Load("world.yaml")
	if err != nil {
		return spec, fmt.Errorf("prefabs: load world.yaml: %w", err)
	}
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return DefaultWorldSpec(), fmt.Errorf("prefabs: unmarshal world.yaml: %w", err)
	}
	spec.Backend = strings.ToLower(strings.TrimSpace(spec.Backend))
	return spec, spec.Validate()
}

func (s WorldSpec) Validate() error {
	switch {
	case s.Backend != "volume" && s.Backend != "chipmunk":
		return fmt.Errorf("prefabs: world: unknown backend %q", s.Backend)
	case s.Gravity <= 0:
		return fmt.Errorf("prefabs: world: gravity %.3f must be positive", s.Gravity)
	case s.TickRate <= 0:
		return fmt.Errorf("prefabs: world: tick_rate %d must be positive", s.TickRate)
	case s.MaxTicksPerFrame <= 0:
		return fmt.Errorf("prefabs: world: max_ticks_per_frame %d must be positive", s.MaxTicksPerFrame)
	}
	return nil
}

// Step is the fixed physics timestep in seconds.
func (s WorldSpec) Step() float64 {
	if s.TickRate <= 0 {
		return common.FixedStep
	}
	return 1 / float64(s.TickRate)
}
