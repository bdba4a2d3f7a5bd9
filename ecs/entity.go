package ecs

import "fmt"

// Entity is a generational handle: generation in the high 32 bits, slot id in
// the low 32 bits. The zero Entity is never alive.
type Entity uint64

type entityID uint32
type generation uint32

const entityIDBits = 32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

func (e Entity) id() entityID {
	return entityID(uint32(e))
}

func (e Entity) generation() generation {
	return generation(uint32(uint64(e) >> entityIDBits))
}

// String renders the slot and generation, e.g. "12#3", so a recycled slot is
// distinguishable from its previous occupant in logs.
func (e Entity) String() string {
	return fmt.Sprintf("%d#%d", e.id(), e.generation())
}

// Valid reports whether e points at a real slot. Slot 0 is reserved. It does
// not check liveness; use IsAlive for that.
func (e Entity) Valid() bool {
	return e.id() != 0
}
