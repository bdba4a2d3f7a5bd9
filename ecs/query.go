package ecs

import "github.com/milk9111/reactor/ecs/component"

// Component values are visited over a snapshot of the driving store, so
// callbacks may add, remove, or destroy freely.

func ForEach[A any](w *World, a component.ComponentKind[A], fn func(Entity, *A)) {
	sa := storeFor(w, a, false)
	if sa == nil || fn == nil {
		return
	}
	for _, id := range snapshot(sa) {
		va, ok := sa.get(id)
		if !ok {
			continue
		}
		fn(w.entityFor(id), va)
	}
}

func ForEach2[A, B any](w *World, a component.ComponentKind[A], b component.ComponentKind[B], fn func(Entity, *A, *B)) {
	sa := storeFor(w, a, false)
	sb := storeFor(w, b, false)
	if sa == nil || sb == nil || fn == nil {
		return
	}
	for _, id := range snapshot(smallest(sa, sb)) {
		va, ok := sa.get(id)
		if !ok {
			continue
		}
		vb, ok := sb.get(id)
		if !ok {
			continue
		}
		fn(w.entityFor(id), va, vb)
	}
}

func ForEach3[A, B, C any](w *World, a component.ComponentKind[A], b component.ComponentKind[B], c component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	sa := storeFor(w, a, false)
	sb := storeFor(w, b, false)
	sc := storeFor(w, c, false)
	if sa == nil || sb == nil || sc == nil || fn == nil {
		return
	}
	for _, id := range snapshot(smallest(sa, sb, sc)) {
		va, ok := sa.get(id)
		if !ok {
			continue
		}
		vb, ok := sb.get(id)
		if !ok {
			continue
		}
		vc, ok := sc.get(id)
		if !ok {
			continue
		}
		fn(w.entityFor(id), va, vb, vc)
	}
}

func ForEach4[A, B, C, D any](w *World, a component.ComponentKind[A], b component.ComponentKind[B], c component.ComponentKind[C], d component.ComponentKind[D], fn func(Entity, *A, *B, *C, *D)) {
	sa := storeFor(w, a, false)
	sb := storeFor(w, b, false)
	sc := storeFor(w, c, false)
	sd := storeFor(w, d, false)
	if sa == nil || sb == nil || sc == nil || sd == nil || fn == nil {
		return
	}
	for _, id := range snapshot(smallest(sa, sb, sc, sd)) {
		va, ok := sa.get(id)
		if !ok {
			continue
		}
		vb, ok := sb.get(id)
		if !ok {
			continue
		}
		vc, ok := sc.get(id)
		if !ok {
			continue
		}
		vd, ok := sd.get(id)
		if !ok {
			continue
		}
		fn(w.entityFor(id), va, vb, vc, vd)
	}
}

// First returns the first entity holding kind, in storage order.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	s := storeFor(w, kind, false)
	if s == nil || s.len() == 0 {
		return 0, false
	}
	return w.entityFor(s.ids()[0]), true
}

// Query returns the entities that hold every listed kind.
func (w *World) Query(kinds ...component.Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	stores := make([]store, 0, len(kinds))
	for _, k := range kinds {
		s, ok := w.stores[k.ID()]
		if !ok || k.ID() == 0 {
			return nil
		}
		stores = append(stores, s)
	}
	driver := smallest(stores...)
	out := make([]Entity, 0, driver.len())
outer:
	for _, id := range driver.ids() {
		for _, s := range stores {
			if s != driver && !s.has(id) {
				continue outer
			}
		}
		out = append(out, w.entityFor(id))
	}
	return out
}

func snapshot(s store) []entityID {
	return append([]entityID(nil), s.ids()...)
}

func smallest(stores ...store) store {
	best := stores[0]
	for _, s := range stores[1:] {
		if s.len() < best.len() {
			best = s
		}
	}
	return best
}
