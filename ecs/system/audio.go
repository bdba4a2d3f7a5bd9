package system

import (
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/reactor/assets"
	"github.com/milk9111/reactor/common"
	"github.com/milk9111/reactor/ecs"
	"github.com/milk9111/reactor/ecs/component"
	"github.com/rs/zerolog/log"
)

// PlayerLoader opens a clip file for playback.
type PlayerLoader func(path string, loop bool) (*audio.Player, error)

// AudioSystem drains SoundRequest entities into the mixer. Voice and music
// are exclusive channels with frame-based fades; effects overlap. Spatial
// emitters loop with a gain that falls off with distance from the camera.
type AudioSystem struct {
	load     PlayerLoader
	emitters map[ecs.Entity]*audio.Player
}

func NewAudioSystem() *AudioSystem {
	return NewAudioSystemWithLoader(assets.LoadAudioPlayer)
}

func NewAudioSystemWithLoader(load PlayerLoader) *AudioSystem {
	return &AudioSystem{load: load, emitters: make(map[ecs.Entity]*audio.Player)}
}

func (a *AudioSystem) Update(w *ecs.World) {
	if a == nil || w == nil {
		return
	}
	var requests []component.SoundRequest
	ecs.ForEach(w, component.SoundRequestComponent.Kind(), func(e ecs.Entity, req *component.SoundRequest) {
		requests = append(requests, *req)
		ecs.DestroyEntity(w, e)
	})

	mixer, ok := singleton(w, component.AudioMixerComponent.Kind())
	if !ok {
		return
	}
	lib, _ := singleton(w, component.ClipLibraryComponent.Kind())

	for _, req := range requests {
		a.handle(mixer, lib, req)
	}
	for name, ch := range mixer.Channels {
		a.tick(mixer, lib, name, ch)
	}
	a.updateEmitters(w, mixer, lib)
}

func (a *AudioSystem) handle(mixer *component.AudioMixer, lib *component.ClipLibrary, req component.SoundRequest) {
	channel := req.Channel
	if channel == "" {
		channel = component.ChannelEffects
	}
	volume := requestVolume(lib, req)

	if channel == component.ChannelEffects && !req.Stop && !req.Pause {
		if p := a.player(mixer, lib, req.Clip, req.Loop); p != nil {
			p.SetVolume(volume * mixer.Gain(channel))
			_ = p.Rewind()
			p.Play()
		}
		return
	}

	ch, ok := mixer.Channels[channel]
	if !ok {
		ch = &component.AudioChannel{}
		mixer.Channels[channel] = ch
	}

	switch {
	case req.Stop:
		ch.PendingActive = false
		fadeOut(ch, req.FadeOutFrames)
	case req.Pause:
		ch.Paused = true
		if ch.Player != nil {
			ch.Player.Pause()
		}
	case ch.Paused && ch.Clip == req.Clip && ch.Clip != "":
		ch.Paused = false
		if ch.Player != nil {
			ch.Player.Play()
		}
	case ch.Clip != "" && req.FadeOutFrames > 0:
		ch.PendingClip = req.Clip
		ch.PendingVolume = volume
		ch.PendingLoop = req.Loop
		ch.PendingFadeIn = req.FadeInFrames
		ch.PendingActive = true
		fadeOut(ch, req.FadeOutFrames)
	default:
		a.start(mixer, lib, channel, ch, req.Clip, volume, req.Loop, req.FadeInFrames)
	}
}

func requestVolume(lib *component.ClipLibrary, req component.SoundRequest) float64 {
	if req.Volume > 0 {
		return req.Volume
	}
	if lib != nil {
		if c, ok := lib.Clips[req.Clip]; ok && c.Volume > 0 {
			return c.Volume
		}
	}
	return 1
}

func (a *AudioSystem) start(mixer *component.AudioMixer, lib *component.ClipLibrary, channel string, ch *component.AudioChannel, clip string, volume float64, loop bool, fadeIn int) {
	stopChannel(ch)
	ch.Clip = clip
	ch.Loop = loop
	ch.Paused = false
	ch.Target = volume
	ch.Volume = volume
	ch.FadeStep = 0
	if fadeIn > 0 {
		ch.Volume = 0
		ch.FadeStep = volume / float64(fadeIn)
	}
	ch.Player = a.player(mixer, lib, clip, loop)
	if ch.Player != nil {
		ch.Player.SetVolume(ch.Volume * mixer.Gain(channel))
		_ = ch.Player.Rewind()
		ch.Player.Play()
	}
}

func fadeOut(ch *component.AudioChannel, frames int) {
	if frames <= 0 || ch.Volume <= 0 {
		stopChannel(ch)
		return
	}
	ch.Target = 0
	ch.FadeStep = -ch.Volume / float64(frames)
}

func stopChannel(ch *component.AudioChannel) {
	if ch.Player != nil {
		ch.Player.Pause()
		_ = ch.Player.Rewind()
	}
	ch.Player = nil
	ch.Clip = ""
	ch.Volume = 0
	ch.Target = 0
	ch.FadeStep = 0
	ch.Paused = false
}

func (a *AudioSystem) tick(mixer *component.AudioMixer, lib *component.ClipLibrary, name string, ch *component.AudioChannel) {
	if ch.FadeStep != 0 {
		ch.Volume += ch.FadeStep
		if (ch.FadeStep > 0 && ch.Volume >= ch.Target) || (ch.FadeStep < 0 && ch.Volume <= ch.Target) {
			ch.Volume = ch.Target
			ch.FadeStep = 0
			if ch.Target == 0 {
				stopChannel(ch)
			}
		}
	}
	if ch.Clip == "" && ch.PendingActive {
		ch.PendingActive = false
		a.start(mixer, lib, name, ch, ch.PendingClip, ch.PendingVolume, ch.PendingLoop, ch.PendingFadeIn)
	}
	if ch.Player != nil {
		ch.Player.SetVolume(ch.Volume * mixer.Gain(name))
	}
}

// player returns the cached player for clip, loading it on first use. A clip
// that failed once is not retried.
func (a *AudioSystem) player(mixer *component.AudioMixer, lib *component.ClipLibrary, clip string, loop bool) *audio.Player {
	if clip == "" {
		return nil
	}
	key := clip
	if loop {
		key += "#loop"
	}
	if p, ok := mixer.Players[key]; ok {
		return p
	}
	p := a.open(mixer, lib, clip, loop)
	if p != nil {
		mixer.Players[key] = p
	}
	return p
}

func (a *AudioSystem) open(mixer *component.AudioMixer, lib *component.ClipLibrary, clip string, loop bool) *audio.Player {
	if mixer.Missing[clip] || a.load == nil {
		return nil
	}
	var file string
	if lib != nil {
		file = lib.Clips[clip].File
	}
	if file == "" {
		mixer.Missing[clip] = true
		log.Warn().Str("clip", clip).Msg("audio: unknown clip")
		return nil
	}
	p, err := a.load(file, loop)
	if err != nil {
		mixer.Missing[clip] = true
		log.Warn().Err(err).Str("clip", clip).Str("file", file).Msg("audio: load clip")
		return nil
	}
	return p
}

func (a *AudioSystem) updateEmitters(w *ecs.World, mixer *component.AudioMixer, lib *component.ClipLibrary) {
	var listener component.Transform
	camE, hasCam := mainCamera(w)
	if hasCam {
		listener = globalOf(w, camE)
	}

	ecs.ForEach2(w, component.SpatialEmitterComponent.Kind(), component.GlobalTransformComponent.Kind(), func(e ecs.Entity, em *component.SpatialEmitter, g *component.GlobalTransform) {
		em.Gain = 0
		if hasCam && em.MaxDistance > 0 {
			d := g.Translation.Sub(listener.Translation).Len()
			em.Gain = float64(common.Clamp01(1 - d/em.MaxDistance))
		}
		if em.Player == nil {
			if p, ok := a.emitters[e]; ok {
				em.Player = p
			} else if p := a.open(mixer, lib, em.Clip, true); p != nil {
				em.Player = p
				a.emitters[e] = p
			}
		}
		if em.Player == nil {
			return
		}
		em.Player.SetVolume(em.Volume * em.Gain * mixer.Gain(em.Channel))
		if !em.Player.IsPlaying() {
			em.Player.Play()
		}
	})

	for e, p := range a.emitters {
		if ecs.IsAlive(w, e) && ecs.Has(w, e, component.SpatialEmitterComponent.Kind()) {
			continue
		}
		p.Pause()
		delete(a.emitters, e)
	}
}
