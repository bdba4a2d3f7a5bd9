package system

import (
	"github.com/milk9111/reactor/ecs"
	"github.com/milk9111/reactor/ecs/component"
	"github.com/rs/zerolog/log"
)

// TutorialSystem plays the intro lines in order. Gates keyed by step unlock
// abilities and may hold the sequence until the player does something.
type TutorialSystem struct{}

func NewTutorialSystem() *TutorialSystem {
	return &TutorialSystem{}
}

func (s *TutorialSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	in := currentInput(w)
	cfg, _ := singleton(w, component.CameraPlayerConfigComponent.Kind())
	if cfg == nil {
		cfg = &component.CameraPlayerConfig{}
	}

	ecs.ForEach(w, component.TutorialComponent.Kind(), func(_ ecs.Entity, tut *component.Tutorial) {
		if tut.Step == 0 {
			cfg.DisableLook = true
			cfg.DisableMovement = true
		}

		if in.Skip && !tut.Done() {
			requestSound(w, component.SoundRequest{Channel: tut.Channel, Stop: true})
			for _, action := range []string{component.UnlockLook, component.UnlockMovement, component.UnlockBlasters, component.UnlockSwitches, component.UnlockIdle} {
				unlock(w, cfg, action)
			}
			tut.Step = len(tut.Lines)
			tut.Paused = false
			log.Info().Msg("tutorial: skipped")
			return
		}

		tut.Timer.Tick(dt)
		if tut.Timer.Finished() && !tut.Paused {
			if clip, ok := tut.Next(); ok {
				requestSound(w, component.SoundRequest{Clip: clip, Channel: tut.Channel, Volume: tut.Volume})
				tut.Timer.Set(clipDuration(w, clip) + tut.Gap)
			}
		}

		gate, ok := tut.Gates[tut.Step]
		if !ok {
			return
		}
		for _, action := range gate.Unlock {
			unlock(w, cfg, action)
		}
		if gate.Wait != "" && !waitSatisfied(w, in, gate.Wait) {
			tut.Paused = true
			return
		}
		tut.Paused = false
		delete(tut.Gates, tut.Step)
	})
}

func unlock(w *ecs.World, cfg *component.CameraPlayerConfig, action string) {
	switch action {
	case component.UnlockLook:
		cfg.DisableLook = false
	case component.UnlockMovement:
		cfg.DisableMovement = false
	case component.UnlockBlasters:
		ecs.ForEach(w, component.PolarityBlasterComponent.Kind(), func(_ ecs.Entity, b *component.PolarityBlaster) {
			b.State = component.BlasterEnabled
		})
	case component.UnlockSwitches:
		ecs.ForEach(w, component.SwitchComponent.Kind(), func(_ ecs.Entity, sw *component.Switch) {
			sw.State = component.SwitchEnabled
		})
	case component.UnlockIdle:
		ecs.ForEach(w, component.NexusComponent.Kind(), func(_ ecs.Entity, n *component.Nexus) {
			n.Mode = component.NexusIdle
		})
	default:
		log.Warn().Str("unlock", action).Msg("tutorial: unknown unlock")
	}
}

func waitSatisfied(w *ecs.World, in component.Input, wait string) bool {
	switch wait {
	case component.WaitMouseMoved:
		return in.MouseMoved()
	case component.WaitMovePressed:
		return in.MovePressed()
	case component.WaitBlasterTaken:
		taken := true
		ecs.ForEach(w, component.PolarityBlasterComponent.Kind(), func(_ ecs.Entity, b *component.PolarityBlaster) {
			taken = taken && b.Held
		})
		return taken
	default:
		log.Warn().Str("wait", wait).Msg("tutorial: unknown wait")
		return true
	}
}
