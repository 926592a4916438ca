package prefabs

import (
	"gopkg.in/yaml.v3"

	"github.com/milk9111/strider/controller"
)

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// CharacterComponentSpec is the tuning surface. Absent fields keep the
// controller defaults.
type CharacterComponentSpec struct {
	MaxSpeed         *float64 `yaml:"max_speed"`
	FloatHeight      *float64 `yaml:"float_height"`
	JumpHeight       *float64 `yaml:"jump_height"`
	ProbeShapeRadius *float64 `yaml:"probe_shape_radius"`
	Tolerance        *float64 `yaml:"tolerance"`
	ProbeRange       *float64 `yaml:"probe_range"`
	Spring           *float64 `yaml:"spring"`
	Acceleration     *float64 `yaml:"acceleration"`
	MaxSlope         *float64 `yaml:"max_slope"`
}

// Apply overlays the fields present in the prefab onto cfg.
func (s CharacterComponentSpec) Apply(cfg controller.Config) controller.Config {
	set := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	set(&cfg.MaxSpeed, s.MaxSpeed)
	set(&cfg.FloatHeight, s.FloatHeight)
	set(&cfg.JumpHeight, s.JumpHeight)
	set(&cfg.ProbeRadius, s.ProbeShapeRadius)
	set(&cfg.Tolerance, s.Tolerance)
	set(&cfg.ProbeRange, s.ProbeRange)
	set(&cfg.Spring, s.Spring)
	set(&cfg.Acceleration, s.Acceleration)
	set(&cfg.MaxSlopeDegrees, s.MaxSlope)
	return cfg
}

type BodyComponentSpec struct {
	Radius     float64 `yaml:"radius"`
	HalfLength float64 `yaml:"half_length"`
	Mass       float64 `yaml:"mass"`
}

type InputComponentSpec struct {
	Source string `yaml:"source"`
	Script string `yaml:"script"`
}
