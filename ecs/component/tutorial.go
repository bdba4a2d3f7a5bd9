package component

// Unlock actions a tutorial gate may apply.
const (
	UnlockLook     = "look"
	UnlockMovement = "movement"
	UnlockBlasters = "blasters"
	UnlockSwitches = "switches"
	UnlockIdle     = "idle"
)

// Wait conditions that hold a tutorial step until the player acts.
const (
	WaitMouseMoved   = "mouse_moved"
	WaitMovePressed  = "move_pressed"
	WaitBlasterTaken = "blaster_taken"
)

type TutorialGate struct {
	Unlock []string
	Wait   string
}

// Tutorial is a linear cursor over voiced lines. Step counts lines already
// started; gates are keyed by step.
type Tutorial struct {
	Lines   []string
	Step    int
	Timer   Timer
	Paused  bool
	Gates   map[int]TutorialGate
	Volume  float64
	Channel string
	Gap     float32
}

var TutorialComponent = NewComponent[Tutorial]()

// Next returns the line at Step and advances, or false once every line has
// been started.
func (t *Tutorial) Next() (string, bool) {
	if t.Step < 0 || t.Step >= len(t.Lines) {
		return "", false
	}
	clip := t.Lines[t.Step]
	t.Step++
	return clip, true
}

func (t Tutorial) Done() bool {
	return t.Step >= len(t.Lines)
}
