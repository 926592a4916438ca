package ecs

import "github.com/milk9111/strider/controller"

type System interface {
	Update(w *World)
}

// Scheduler runs systems at two cadences. Frame systems run once per
// rendered frame, fixed systems once per physics tick (zero or more times
// a frame), late systems once after the ticks.
type Scheduler struct {
	frame   []System
	fixed   []System
	late    []System
	stepper *controller.Stepper
	ticks   uint64
}

func NewScheduler(step float64, maxTicks int) *Scheduler {
	return &Scheduler{stepper: controller.NewStepper(step, maxTicks)}
}

func (s *Scheduler) AddFrame(system System) {
	if system != nil {
		s.frame = append(s.frame, system)
	}
}

func (s *Scheduler) AddFixed(system System) {
	if system != nil {
		s.fixed = append(s.fixed, system)
	}
}

func (s *Scheduler) AddLate(system System) {
	if system != nil {
		s.late = append(s.late, system)
	}
}

// Update runs one frame that took elapsed seconds and returns the number of
// fixed ticks it ran.
func (s *Scheduler) Update(w *World, elapsed float64) int {
	for _, system := range s.frame {
		system.Update(w)
	}
	n := s.stepper.Advance(elapsed)
	for i := 0; i < n; i++ {
		for _, system := range s.fixed {
			system.Update(w)
		}
		s.ticks++
	}
	for _, system := range s.late {
		system.Update(w)
	}
	return n
}

func (s *Scheduler) Step() float64 { return s.stepper.Step }

// Ticks is the number of fixed ticks run so far.
func (s *Scheduler) Ticks() uint64 { return s.ticks }

// Alpha is the render interpolation factor left over from the last frame.
func (s *Scheduler) Alpha() float64 { return s.stepper.Alpha() }

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.frame)+len(s.fixed)+len(s.late))
	systems = append(systems, s.frame...)
	systems = append(systems, s.fixed...)
	return append(systems, s.late...)
}
