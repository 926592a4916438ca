package controller

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

func TestNewValidates(t *testing.T) {
	world := newFlatWorld(0)
	body := newFakeBody(mgl64.Vec3{0, 1.5, 0})

	if _, err := New(nil, body, DefaultConfig()); !errors.Is(err, ErrNoWorld) {
		t.Fatalf("nil world: err = %v", err)
	}
	if _, err := New(world, nil, DefaultConfig()); !errors.Is(err, ErrNoBody) {
		t.Fatalf("nil body: err = %v", err)
	}
	bad := DefaultConfig()
	bad.FloatHeight = 0.5
	if _, err := New(world, body, bad); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("bad config: err = %v", err)
	}

	id := uuid.New()
	c, err := New(world, body, DefaultConfig(), WithID(id), WithStep(0.01))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c.ID() != id || c.step != 0.01 {
		t.Fatalf("options not applied: id=%v step=%v", c.ID(), c.step)
	}
	if c.Phase() != Airborne {
		t.Fatalf("initial phase = %v, want airborne", c.Phase())
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"default", func(*Config) {}, true},
		{"zero_speed", func(c *Config) { c.MaxSpeed = 0 }, true},
		{"negative_speed", func(c *Config) { c.MaxSpeed = -1 }, false},
		{"negative_jump", func(c *Config) { c.JumpHeight = -1 }, false},
		{"negative_radius", func(c *Config) { c.ProbeRadius = -0.1 }, false},
		{"float_below_half_height", func(c *Config) { c.FloatHeight = 1.0 }, false},
		{"zero_tolerance", func(c *Config) { c.Tolerance = 0 }, false},
		{"negative_range", func(c *Config) { c.ProbeRange = -1 }, false},
		{"negative_spring", func(c *Config) { c.Spring = -1 }, false},
		{"negative_acceleration", func(c *Config) { c.Acceleration = -1 }, false},
		{"vertical_slope", func(c *Config) { c.MaxSlopeDegrees = 90 }, false},
		{"any_slope", func(c *Config) { c.MaxSlopeDegrees = 0 }, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := DefaultConfig()
			c.mutate(&cfg)
			err := cfg.Validate()
			if c.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !c.ok && !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestSetConfig(t *testing.T) {
	c, err := New(newFlatWorld(0), newFakeBody(mgl64.Vec3{0, 1.5, 0}), DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	bad := DefaultConfig()
	bad.Tolerance = -1
	if err := c.SetConfig(bad); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("SetConfig(bad) = %v", err)
	}
	if c.Config() != DefaultConfig() {
		t.Fatalf("rejected config must not replace the current one")
	}

	next := DefaultConfig()
	next.MaxSpeed = 4
	next.Tolerance = 0.3
	if err := c.SetConfig(next); err != nil {
		t.Fatalf("SetConfig: %v", err)
	}
	if c.Config().MaxSpeed != 4 || c.sensor.Tolerance != 0.3 {
		t.Fatalf("config not applied: %+v", c.Config())
	}
}

func TestControllerForwardMovement(t *testing.T) {
	body := newFakeBody(mgl64.Vec3{0, 1.5, 0})
	c, err := New(newFlatWorld(0), body, DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	input := NewActionState()

	report := c.Tick(input.Sample(NewActionSet(MoveForward)))

	if !vecNear(report.Basis.DesiredVelocity, mgl64.Vec3{0, 0, 10}) {
		t.Fatalf("desired velocity = %v", report.Basis.DesiredVelocity)
	}
	if got := horizontal(body.vel); !vecNear(got, mgl64.Vec3{0, 0, 10}) {
		t.Fatalf("body horizontal velocity = %v", got)
	}
	if report.Phase != Grounded || !report.Grounding.Grounded {
		t.Fatalf("expected grounded report, got %+v", report)
	}
}

func TestControllerJumpOncePerPress(t *testing.T) {
	world := newFlatWorld(0)
	body := newFakeBody(mgl64.Vec3{0, 1.5, 0})
	body.mass = 3
	c, err := New(world, body, DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	input := NewActionState()

	c.Tick(input.Sample(nil))
	body.integrate(world.gravity, DefaultStep)

	c.Tick(input.Sample(NewActionSet(Jump)))
	if len(body.impulses) != 1 {
		t.Fatalf("impulses after press = %d, want 1", len(body.impulses))
	}
	want := 3 * math.Sqrt(2*9.81*4)
	if math.Abs(body.impulses[0].Y()-want) > 1e-6 {
		t.Fatalf("impulse = %v, want %v", body.impulses[0].Y(), want)
	}

	peak := body.pos.Y()
	for i := 0; i < 240; i++ {
		body.integrate(world.gravity, DefaultStep)
		peak = math.Max(peak, body.pos.Y())
		c.Tick(input.Sample(NewActionSet(Jump)))
	}
	if len(body.impulses) != 1 {
		t.Fatalf("holding jump re-fired: %d impulses", len(body.impulses))
	}
	if rise := peak - 1.5; rise < 3.8 || rise > 4.05 {
		t.Fatalf("jump rose %.3f, want about 4", rise)
	}
}

func TestControllerAirborneJumpIgnored(t *testing.T) {
	world := newFlatWorld(0)
	body := newFakeBody(mgl64.Vec3{0, 10, 0})
	c, err := New(world, body, DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	input := NewActionState()

	report := c.Tick(input.Sample(NewActionSet(Jump)))

	if !report.Jump.Requested {
		t.Fatalf("jump edge should still produce a request")
	}
	if report.Outcome.Jumped || len(body.impulses) != 0 {
		t.Fatalf("airborne jump applied an impulse")
	}
	if c.Phase() != Airborne {
		t.Fatalf("phase = %v, want airborne", c.Phase())
	}
}

func TestControllerIdleHasNoDrift(t *testing.T) {
	world := newFlatWorld(0)
	start := mgl64.Vec3{2, 1.5, -3}
	body := newFakeBody(start)
	c, err := New(world, body, DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	input := NewActionState()

	for i := 0; i < 5; i++ {
		report := c.Tick(input.Sample(nil))
		if report.Basis.DesiredVelocity != (mgl64.Vec3{}) {
			t.Fatalf("tick %d: desired velocity %v", i, report.Basis.DesiredVelocity)
		}
		if h := horizontal(body.vel); h != (mgl64.Vec3{}) {
			t.Fatalf("tick %d: horizontal velocity %v", i, h)
		}
		body.integrate(world.gravity, DefaultStep)
	}
	if body.pos.X() != start.X() || body.pos.Z() != start.Z() {
		t.Fatalf("body drifted to %v", body.pos)
	}
	if math.Abs(body.pos.Y()-1.5) > 1e-9 {
		t.Fatalf("body left float height: %v", body.pos.Y())
	}
}

func TestControllerSettlesAtFloatHeight(t *testing.T) {
	world := newFlatWorld(0)
	body := newFakeBody(mgl64.Vec3{0, 5, 0})
	c, err := New(world, body, DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	input := NewActionState()

	for i := 0; i < 300; i++ {
		c.Tick(input.Sample(nil))
		body.integrate(world.gravity, DefaultStep)
	}
	if c.Phase() != Grounded {
		t.Fatalf("phase = %v, want grounded", c.Phase())
	}
	if math.Abs(body.pos.Y()-1.5) > 1e-3 {
		t.Fatalf("rest height = %v, want 1.5", body.pos.Y())
	}
}

func TestControllerEvents(t *testing.T) {
	world := newFlatWorld(0)
	body := newFakeBody(mgl64.Vec3{0, 1.5, 0})
	var got []EventKind
	c, err := New(world, body, DefaultConfig(), WithObserver(func(e Event) {
		got = append(got, e.Kind)
	}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	input := NewActionState()

	c.Tick(input.Sample(nil))
	body.integrate(world.gravity, DefaultStep)
	c.Tick(input.Sample(NewActionSet(Jump)))
	body.integrate(world.gravity, DefaultStep)
	c.Tick(input.Sample(NewActionSet(Jump)))

	want := []EventKind{EventGrounded, EventJump, EventAirborne}
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("events = %v, want %v", got, want)
		}
	}
}

func TestControllerNoFloor(t *testing.T) {
	world := newFlatWorld(0)
	world.noFloor = true
	body := newFakeBody(mgl64.Vec3{0, 1, 0})
	body.vel = mgl64.Vec3{0, -4, 0}
	c, err := New(world, body, DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	report := c.Tick(Snapshot{})

	if report.Grounding.HasHit || report.Phase != Airborne {
		t.Fatalf("report = %+v", report)
	}
	if body.vel.Y() != -4 {
		t.Fatalf("vertical velocity should be untouched, got %v", body.vel.Y())
	}
}
