package controller

import (
	"fmt"

	"github.com/google/uuid"
)

// DefaultStep is the fixed physics timestep used when none is given.
const DefaultStep = 1.0 / 60.0

// Controller steers exactly one body. It must only be ticked from the
// goroutine that steps the physics world.
type Controller struct {
	id       uuid.UUID
	world    World
	body     Body
	cfg      Config
	step     float64
	sensor   Sensor
	observer Observer

	phase Phase
	ticks uint64
}

// Report is everything one tick computed, for systems and diagnostics.
type Report struct {
	Controller uuid.UUID
	Tick       uint64
	Phase      Phase
	Grounding  GroundingResult
	Basis      LocomotionBasis
	Jump       JumpRequest
	Outcome    Outcome
}

type Option func(*Controller)

func WithObserver(o Observer) Option {
	return func(c *Controller) {
		c.observer = o
	}
}

// WithStep sets the fixed physics timestep in seconds.
func WithStep(dt float64) Option {
	return func(c *Controller) {
		if dt > 0 {
			c.step = dt
		}
	}
}

func WithID(id uuid.UUID) Option {
	return func(c *Controller) {
		if id != uuid.Nil {
			c.id = id
		}
	}
}

// New wires a controller to its body and the world that simulates it.
func New(world World, body Body, cfg Config, opts ...Option) (*Controller, error) {
	if world == nil {
		return nil, ErrNoWorld
	}
	if body == nil {
		return nil, ErrNoBody
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Controller{
		id:     uuid.New(),
		world:  world,
		body:   body,
		cfg:    cfg,
		step:   DefaultStep,
		sensor: cfg.sensor(),
		phase:  Airborne,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Controller) ID() uuid.UUID  { return c.id }
func (c *Controller) Body() Body     { return c.body }
func (c *Controller) Config() Config { return c.cfg }
func (c *Controller) Phase() Phase   { return c.phase }

// SetConfig swaps the configuration between ticks. An invalid config is
// rejected and the old one kept.
func (c *Controller) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("controller: set config: %w", err)
	}
	c.cfg = cfg
	c.sensor = cfg.sensor()
	return nil
}

// Probe queries the ground below the body. It only reads the world, so
// probes of different controllers may run concurrently.
func (c *Controller) Probe() GroundingResult {
	return c.sensor.Probe(c.world, c.body, c.cfg.FloatHeight)
}

// Drive runs the steering half of a tick with an already probed ground.
func (c *Controller) Drive(snap Snapshot, ground GroundingResult) Report {
	c.ticks++

	intent := IntentFromSnapshot(snap)
	basis := ComputeBasis(intent, c.cfg.MaxSpeed, c.cfg.FloatHeight)
	jump := EvaluateJump(snap.Edge(Jump), c.cfg.JumpHeight)

	driver := Driver{
		Gravity:      c.world.Gravity().Len(),
		Step:         c.step,
		Spring:       c.cfg.Spring,
		Acceleration: c.cfg.Acceleration,
	}
	out := driver.Advance(c.body, basis, jump, ground)

	c.transition(ground.Grounded)
	if out.Jumped {
		c.emit(EventJump, jump.Height)
	}

	return Report{
		Controller: c.id,
		Tick:       c.ticks,
		Phase:      c.phase,
		Grounding:  ground,
		Basis:      basis,
		Jump:       jump,
		Outcome:    out,
	}
}

// Tick runs one full physics tick: probe, then drive.
func (c *Controller) Tick(snap Snapshot) Report {
	return c.Drive(snap, c.Probe())
}

func (c *Controller) transition(grounded bool) {
	next := Airborne
	if grounded {
		next = Grounded
	}
	if next == c.phase {
		return
	}
	c.phase = next
	if next == Grounded {
		c.emit(EventGrounded, 0)
	} else {
		c.emit(EventAirborne, 0)
	}
}

func (c *Controller) emit(kind EventKind, height float64) {
	if c.observer == nil {
		return
	}
	c.observer(Event{
		Controller: c.id,
		Kind:       kind,
		Tick:       c.ticks,
		Height:     height,
		Position:   c.body.Position(),
	})
}
