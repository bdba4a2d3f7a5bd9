package system

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/reactor/ecs"
	"github.com/milk9111/reactor/ecs/component"
)

// TweenSystem advances translation tweens and constant spins.
type TweenSystem struct{}

func NewTweenSystem() *TweenSystem {
	return &TweenSystem{}
}

func (s *TweenSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach2(w, component.TweenComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, tw *component.Tween, t *component.Transform) {
		if tw.Done || tw.Duration <= 0 {
			return
		}
		t.Translation = stepTween(tw)
	})
	ecs.ForEach2(w, component.SpinComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, sp *component.Spin, t *component.Transform) {
		t.Rotation = mgl32.QuatRotate(sp.Speed*dt, component.AxisY).Mul(t.Rotation).Normalize()
	})
}

func stepTween(tw *component.Tween) mgl32.Vec3 {
	tw.Elapsed += dt
	switch tw.Mode {
	case component.TweenPingPong:
		for tw.Elapsed >= tw.Duration {
			tw.Elapsed -= tw.Duration
			tw.Reverse = !tw.Reverse
		}
	case component.TweenRepeat:
		for tw.Elapsed >= tw.Duration {
			tw.Elapsed -= tw.Duration
		}
	default:
		if tw.Elapsed >= tw.Duration {
			tw.Elapsed = tw.Duration
			tw.Done = true
		}
	}
	p := tw.Elapsed / tw.Duration
	if tw.Reverse {
		p = 1 - p
	}
	e := tw.Ease.Apply(p)
	return tw.From.Add(tw.To.Sub(tw.From).Mul(e))
}
