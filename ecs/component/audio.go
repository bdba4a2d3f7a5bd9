package component

import "github.com/hajimehoshi/ebiten/v2/audio"

const (
	ChannelVoice   = "voice"
	ChannelEffects = "effects"
	ChannelMusic   = "music"
)

// SoundRequest is a one-shot request for playback on a channel. The audio
// system consumes and destroys it on the frame it appears.
//
// Voice and music channels hold a single clip at a time: a new request fades
// the current clip out and then starts the new one. Effects overlap freely.
type SoundRequest struct {
	Clip          string
	Channel       string
	Volume        float64
	Loop          bool
	Stop          bool
	Pause         bool
	FadeInFrames  int
	FadeOutFrames int
}

var SoundRequestComponent = NewComponent[SoundRequest]()

// AudioChannel is the playback state of one exclusive channel.
type AudioChannel struct {
	Clip     string
	Player   *audio.Player
	Volume   float64
	Target   float64
	FadeStep float64
	Loop     bool
	Paused   bool

	PendingClip   string
	PendingVolume float64
	PendingLoop   bool
	PendingFadeIn int
	PendingActive bool
}

// AudioMixer stores global audio state on a dedicated entity. The audio
// system mutates it; no playback state is kept on the system.
type AudioMixer struct {
	Channels map[string]*AudioChannel
	Players  map[string]*audio.Player
	// Gains are per-channel multipliers from settings, master included.
	Gains   map[string]float64
	Missing map[string]bool
}

var AudioMixerComponent = NewComponent[AudioMixer]()

func NewAudioMixer() *AudioMixer {
	return &AudioMixer{
		Channels: make(map[string]*AudioChannel),
		Players:  make(map[string]*audio.Player),
		Gains:    make(map[string]float64),
		Missing:  make(map[string]bool),
	}
}

func (m *AudioMixer) Gain(channel string) float64 {
	if m == nil || m.Gains == nil {
		return 1
	}
	if g, ok := m.Gains[channel]; ok {
		return g
	}
	return 1
}

type Clip struct {
	File     string
	Duration float32
	Volume   float64
}

// ClipLibrary is the manifest of known clips, keyed by name.
type ClipLibrary struct {
	Clips map[string]Clip
}

var ClipLibraryComponent = NewComponent[ClipLibrary]()

// Duration returns the clip length in seconds, or 0 for unknown clips.
func (l *ClipLibrary) Duration(name string) float32 {
	if l == nil {
		return 0
	}
	return l.Clips[name].Duration
}

// SpatialEmitter loops a clip whose volume falls off linearly with distance
// from the main camera.
type SpatialEmitter struct {
	Clip        string
	Channel     string
	Volume      float64
	MaxDistance float32
	Gain        float64
	Player      *audio.Player
}

var SpatialEmitterComponent = NewComponent[SpatialEmitter]()
