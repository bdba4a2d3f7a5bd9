// Package state is a small finite-state driver with enter and exit hooks.
// Transitions are queued with Set and take effect on the next Apply, so a
// state change requested mid-frame never interleaves with that frame's work.
package state

type Hook func()

type Machine[S comparable] struct {
	current S
	next    S
	queued  bool
	enter   map[S][]Hook
	exit    map[S][]Hook
}

func NewMachine[S comparable](initial S) *Machine[S] {
	return &Machine[S]{
		current: initial,
		enter:   make(map[S][]Hook),
		exit:    make(map[S][]Hook),
	}
}

func (m *Machine[S]) Current() S {
	return m.current
}

// Pending reports the queued state, if any.
func (m *Machine[S]) Pending() (S, bool) {
	return m.next, m.queued
}

func (m *Machine[S]) OnEnter(s S, fn Hook) {
	if fn != nil {
		m.enter[s] = append(m.enter[s], fn)
	}
}

func (m *Machine[S]) OnExit(s S, fn Hook) {
	if fn != nil {
		m.exit[s] = append(m.exit[s], fn)
	}
}

// Set queues s. The last call before Apply wins.
func (m *Machine[S]) Set(s S) {
	m.next = s
	m.queued = true
}

// Apply performs the queued transition and reports whether one happened.
// Re-entering the current state is a no-op.
func (m *Machine[S]) Apply() bool {
	if !m.queued {
		return false
	}
	next := m.next
	m.queued = false
	if next == m.current {
		return false
	}
	for _, fn := range m.exit[m.current] {
		fn()
	}
	m.current = next
	for _, fn := range m.enter[next] {
		fn()
	}
	return true
}

// Enter runs the enter hooks of the current state. It is meant for the
// initial state, which never sees a transition.
func (m *Machine[S]) Enter() {
	for _, fn := range m.enter[m.current] {
		fn()
	}
}
