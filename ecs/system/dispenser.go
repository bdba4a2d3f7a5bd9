package system

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/reactor/ecs"
	"github.com/milk9111/reactor/ecs/component"
	"github.com/milk9111/reactor/ecs/entity"
	"github.com/rs/zerolog/log"
)

const startVolume = 0.5

// DispenserSystem starts a round when its switch fires and then shoots the
// round's pellets at random intervals.
type DispenserSystem struct {
	rng *rand.Rand
}

func NewDispenserSystem() *DispenserSystem {
	return NewDispenserSystemWithRand(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
}

func NewDispenserSystemWithRand(rng *rand.Rand) *DispenserSystem {
	return &DispenserSystem{rng: rng}
}

func (s *DispenserSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	for _, e := range switchEventsFor(w, component.DispenserComponent.Kind()) {
		d, _ := ecs.Get(w, e, component.DispenserComponent.Kind())
		s.startRound(w, d)
	}

	ecs.ForEach2(w, component.DispenserComponent.Kind(), component.GlobalTransformComponent.Kind(), func(e ecs.Entity, d *component.Dispenser, g *component.GlobalTransform) {
		if d.Count <= 0 {
			return
		}
		d.Timer.Tick(dt)
		if !d.Timer.Finished() {
			return
		}
		pos := g.Translation.Add(g.Rotation.Rotate(d.SpawnFrom))
		vel := g.Rotation.Rotate(mgl32.Vec3{
			s.between(d.VelXMin, d.VelXMax),
			0,
			s.between(-d.Spread, d.Spread),
		})
		value := float32(s.rng.IntN(2))
		if _, err := entity.SpawnPellet(w, pos, vel, value); err != nil {
			log.Warn().Err(err).Uint64("dispenser", uint64(e)).Msg("dispenser: spawn pellet")
		}
		d.Count--
		d.Timer.Set(s.between(d.DelayMin, d.DelayMax))
	})
}

func (s *DispenserSystem) startRound(w *ecs.World, d *component.Dispenser) {
	if sb, ok := singleton(w, component.ScoreBoardComponent.Kind()); ok {
		resetScore(w, sb)
		sb.Round.Set(d.RoundSeconds)
		sb.Running = true
	}
	playEffect(w, "start", startVolume)
	d.Count = d.RoundPellets
	d.Timer.Set(s.between(d.DelayMin, d.DelayMax))
}

// between returns a value in [lo, hi).
func (s *DispenserSystem) between(lo, hi float32) float32 {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.Float32()*(hi-lo)
}
