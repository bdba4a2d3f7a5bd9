package component

type NexusMode int

const (
	NexusIntro NexusMode = iota
	NexusIdle
)

func (m NexusMode) String() string {
	if m == NexusIdle {
		return "Idle"
	}
	return "Intro"
}

type Nexus struct {
	Mode NexusMode
}

var NexusComponent = NewComponent[Nexus]()

// VoiceLines are the Nexus' reactive clips. Each list cycles independently.
type VoiceLines struct {
	Annoyed   []string
	HighScore []string
	Volume    float64

	annoyedNext int
	highNext    int
}

var VoiceLinesComponent = NewComponent[VoiceLines]()

func (v *VoiceLines) NextAnnoyed() (string, bool) {
	return cycle(v.Annoyed, &v.annoyedNext)
}

func (v *VoiceLines) NextHighScore() (string, bool) {
	return cycle(v.HighScore, &v.highNext)
}

func cycle(list []string, next *int) (string, bool) {
	if len(list) == 0 {
		return "", false
	}
	clip := list[*next%len(list)]
	*next = (*next + 1) % len(list)
	return clip, true
}
