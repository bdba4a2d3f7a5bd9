package system

import (
	"github.com/milk9111/reactor/ecs"
	"github.com/milk9111/reactor/ecs/component"
)

// NexusSystem voices the Nexus: an annoyed line when an idle Nexus is
// clicked, and a boast when a round sets a new high score.
type NexusSystem struct{}

func NewNexusSystem() *NexusSystem {
	return &NexusSystem{}
}

func (s *NexusSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	cfg := cursorConfig(w)
	highScore := false
	ecs.ForEach(w, component.HighScoreReachedComponent.Kind(), func(ecs.Entity, *component.HighScoreReached) {
		highScore = true
	})

	ecs.ForEach3(w, component.NexusComponent.Kind(), component.VoiceLinesComponent.Kind(), component.CursorInteractionComponent.Kind(), func(e ecs.Entity, n *component.Nexus, lines *component.VoiceLines, ci *component.CursorInteraction) {
		if highScore {
			if clip, ok := lines.NextHighScore(); ok {
				s.speak(w, e, clip, lines.Volume)
			}
		}
		if n.Mode != component.NexusIdle {
			if o, ok := ecs.Get(w, e, component.OutlineComponent.Kind()); ok && ci.State != component.InteractionNone {
				o.Color = cfg.DisabledColor
			}
			return
		}
		if ci.State != component.InteractionClicked {
			return
		}
		if clip, ok := lines.NextAnnoyed(); ok {
			s.speak(w, e, clip, lines.Volume)
		}
	})
}

// speak plays clip on the voice channel and blocks clicks until it ends.
func (s *NexusSystem) speak(w *ecs.World, e ecs.Entity, clip string, volume float64) {
	requestSound(w, component.SoundRequest{Clip: clip, Channel: component.ChannelVoice, Volume: volume})
	if it, ok := ecs.Get(w, e, component.InteractionTimeComponent.Kind()); ok {
		it.Timer.Set(clipDuration(w, clip))
	}
}
