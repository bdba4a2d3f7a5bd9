package component

import "github.com/go-gl/mathgl/mgl32"

type Dispenser struct {
	Count int
	Timer Timer

	DelayMin  float32
	DelayMax  float32
	VelXMin   float32
	VelXMax   float32
	Spread    float32
	SpawnFrom mgl32.Vec3

	RoundPellets int
	RoundSeconds float32
}

var DispenserComponent = NewComponent[Dispenser]()

func DefaultDispenser() *Dispenser {
	return &Dispenser{
		DelayMin:     0.3,
		DelayMax:     1.5,
		VelXMin:      -4,
		VelXMax:      -3,
		Spread:       1,
		SpawnFrom:    mgl32.Vec3{-1, 0, 0},
		RoundPellets: 20,
		RoundSeconds: 30,
	}
}
