package component

type SwitchState int

const (
	SwitchDisabled SwitchState = iota
	SwitchEnabled
)

type Switch struct {
	Target uint64
	State  SwitchState
	Sound  string
	// Cooldown in seconds between flips; zero means the default.
	Cooldown float32
}

var SwitchComponent = NewComponent[Switch]()

// SwitchEvent is a one-shot request entity sent when a switch is flipped.
// Receivers match on Target; the event cleanup system destroys it at the end
// of the frame.
type SwitchEvent struct {
	Target uint64
	Source uint64
}

var SwitchEventComponent = NewComponent[SwitchEvent]()
