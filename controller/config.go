package controller

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrNoBody        = errors.New("controller: no body")
	ErrNoWorld       = errors.New("controller: no physics world")
	ErrInvalidConfig = errors.New("controller: invalid config")
)

// Config is the per-body configuration surface exposed to scene assembly.
type Config struct {
	MaxSpeed    float64
	FloatHeight float64
	JumpHeight  float64
	ProbeRadius float64

	// HalfHeight is the distance from the body centre to the lowest point of
	// its collider. FloatHeight must exceed it.
	HalfHeight float64

	Tolerance       float64
	ProbeRange      float64
	Spring          float64
	Acceleration    float64
	MaxSlopeDegrees float64
}

// DefaultConfig matches a 0.5 radius capsule with a 1.0 cylinder section.
func DefaultConfig() Config {
	return Config{
		MaxSpeed:        10,
		FloatHeight:     1.5,
		JumpHeight:      4,
		ProbeRadius:     0.49,
		HalfHeight:      1.0,
		Tolerance:       0.1,
		ProbeRange:      1.0,
		Spring:          12,
		MaxSlopeDegrees: 50,
	}
}

func (c Config) Validate() error {
	switch {
	case c.MaxSpeed < 0:
		return fmt.Errorf("%w: max_speed %.3f is negative", ErrInvalidConfig, c.MaxSpeed)
	case c.JumpHeight < 0:
		return fmt.Errorf("%w: jump_height %.3f is negative", ErrInvalidConfig, c.JumpHeight)
	case c.ProbeRadius < 0:
		return fmt.Errorf("%w: probe_shape_radius %.3f is negative", ErrInvalidConfig, c.ProbeRadius)
	case c.HalfHeight < 0:
		return fmt.Errorf("%w: half_height %.3f is negative", ErrInvalidConfig, c.HalfHeight)
	case c.FloatHeight <= c.HalfHeight:
		return fmt.Errorf("%w: float_height %.3f must exceed half_height %.3f", ErrInvalidConfig, c.FloatHeight, c.HalfHeight)
	case c.Tolerance <= 0:
		return fmt.Errorf("%w: tolerance must be positive", ErrInvalidConfig)
	case c.ProbeRange < 0:
		return fmt.Errorf("%w: probe_range %.3f is negative", ErrInvalidConfig, c.ProbeRange)
	case c.Spring < 0 || c.Acceleration < 0:
		return fmt.Errorf("%w: spring and acceleration must not be negative", ErrInvalidConfig)
	case c.MaxSlopeDegrees < 0 || c.MaxSlopeDegrees >= 90:
		return fmt.Errorf("%w: max_slope %.1f outside [0, 90)", ErrInvalidConfig, c.MaxSlopeDegrees)
	}
	return nil
}

func (c Config) sensor() Sensor {
	return Sensor{
		Shape:     ProbeShape{Radius: c.ProbeRadius},
		Tolerance: c.Tolerance,
		Range:     c.ProbeRange,
		MaxSlope:  c.MaxSlopeDegrees * math.Pi / 180,
	}
}
