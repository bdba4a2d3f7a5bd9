package ecs

// Scheduler runs systems in insertion order.
type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, system := range systems {
		s.Add(system)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

func (s *Scheduler) Update(w *World) {
	if s == nil || w == nil {
		return
	}
	for _, system := range s.systems {
		system.Update(w)
	}
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}

// Conditional runs its systems only on frames where Cond reports true.
type Conditional struct {
	Cond    func(w *World) bool
	systems *Scheduler
}

// When groups systems behind a run condition.
func When(cond func(w *World) bool, systems ...System) *Conditional {
	return &Conditional{Cond: cond, systems: NewScheduler(systems...)}
}

func (c *Conditional) Update(w *World) {
	if c == nil || c.Cond == nil || !c.Cond(w) {
		return
	}
	c.systems.Update(w)
}
