package controller

import (
	"math"
	"testing"
)

func TestStepperFirstTickOwnsEdges(t *testing.T) {
	s := NewStepper(0.01, 8)
	input := NewActionState()

	var seen []ActionEdge
	n := s.Frame(0.025, input.Sample(NewActionSet(Jump)), func(snap Snapshot) {
		seen = append(seen, snap.Edge(Jump))
	})

	if n != 2 || len(seen) != 2 {
		t.Fatalf("ran %d ticks, want 2", n)
	}
	if !seen[0].JustActivated || seen[1].JustActivated {
		t.Fatalf("edges = %+v, only the first tick may see the press", seen)
	}
	if !seen[1].Active {
		t.Fatalf("second tick must still see jump held")
	}
	if a := s.Alpha(); math.Abs(a-0.5) > 1e-6 {
		t.Fatalf("alpha = %v, want 0.5", a)
	}
}

func TestStepperCarriesEdgesOverEmptyFrames(t *testing.T) {
	s := NewStepper(0.01, 8)
	input := NewActionState()

	var seen []ActionEdge
	tick := func(snap Snapshot) { seen = append(seen, snap.Edge(Jump)) }

	if n := s.Frame(0.004, input.Sample(NewActionSet(Jump)), tick); n != 0 {
		t.Fatalf("first frame ran %d ticks", n)
	}
	// released before any tick ran
	if n := s.Frame(0.007, input.Sample(nil), tick); n != 1 {
		t.Fatalf("second frame ran %d ticks, want 1", n)
	}
	s.Frame(0.01, input.Sample(nil), tick)

	if len(seen) != 2 {
		t.Fatalf("seen %d ticks", len(seen))
	}
	if !seen[0].JustActivated {
		t.Fatalf("press lost across an empty frame: %+v", seen[0])
	}
	if seen[1].JustActivated {
		t.Fatalf("press delivered twice")
	}
}

func TestStepperCapsTicks(t *testing.T) {
	s := NewStepper(DefaultStep, 4)
	n := s.Frame(1.005, Snapshot{}, func(Snapshot) {})
	if n != 4 {
		t.Fatalf("ran %d ticks, want 4", n)
	}
	if a := s.Alpha(); a < 0 || a >= 1 {
		t.Fatalf("alpha = %v after a capped frame", a)
	}
	if n := s.Frame(0, Snapshot{}, func(Snapshot) {}); n != 0 {
		t.Fatalf("backlog was not dropped: %d extra ticks", n)
	}
}

func TestStepperDeliversEachPressOnce(t *testing.T) {
	s := NewStepper(1.0/60, 3)
	input := NewActionState()
	elapsed := []float64{0.004, 0.004, 0.03, 0.016, 0.001, 0.05, 0.2, 0.008, 0.009, 0.017}
	presses := []bool{true, true, true, false, true, true, false, false, true, true}

	justTicks := 0
	risingEdges := 0
	prev := false
	for i := range elapsed {
		active := NewActionSet()
		if presses[i] {
			active.Add(Jump)
			if !prev {
				risingEdges++
			}
		}
		prev = presses[i]
		s.Frame(elapsed[i], input.Sample(active), func(snap Snapshot) {
			if snap.Edge(Jump).JustActivated {
				justTicks++
			}
		})
	}
	// flush anything still pending
	s.Frame(1.0/60, input.Sample(nil), func(snap Snapshot) {
		if snap.Edge(Jump).JustActivated {
			justTicks++
		}
	})

	if justTicks != risingEdges {
		t.Fatalf("just-pressed ticks = %d, rising edges = %d", justTicks, risingEdges)
	}
}

func TestNewStepperDefaults(t *testing.T) {
	s := NewStepper(0, 0)
	if s.Step != DefaultStep || s.MaxTicks != 1 {
		t.Fatalf("defaults = %+v", s)
	}
}

func TestInputBuffer(t *testing.T) {
	input := NewActionState()
	var b InputBuffer

	if b.Pending() || b.Take().Edge(Jump).Active {
		t.Fatalf("empty buffer must yield an empty snapshot")
	}

	b.Push(input.Sample(NewActionSet(Jump)))
	b.Push(input.Sample(NewActionSet(Jump, MoveLeft)))
	if !b.Pending() {
		t.Fatalf("pushed snapshot not pending")
	}

	first := b.Take()
	if !first.Edge(Jump).JustActivated || !first.Edge(MoveLeft).JustActivated {
		t.Fatalf("merged edges lost: %+v", first)
	}
	second := b.Take()
	if second.Edge(Jump).JustActivated || !second.Edge(Jump).Active {
		t.Fatalf("second take = %+v, want held without the press", second.Edge(Jump))
	}

	b.Push(input.Sample(NewActionSet(Jump)))
	if b.Take().Edge(Jump).JustActivated {
		t.Fatalf("held jump reported a new press")
	}
}

func TestStepperAdvance(t *testing.T) {
	s := NewStepper(0.01, 3)
	cases := []struct {
		elapsed float64
		want    int
	}{
		{0.005, 0},
		{0.005, 1},
		{0.035, 3},
		{-1, 0},
		{0.01, 1},
	}
	for i, c := range cases {
		if got := s.Advance(c.elapsed); got != c.want {
			t.Fatalf("step %d: Advance(%v) = %d, want %d", i, c.elapsed, got, c.want)
		}
	}
}
