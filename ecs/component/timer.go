package component

// Timer counts elapsed seconds toward Duration. A repeating timer wraps and
// reports JustFinished once per lap.
type Timer struct {
	Duration  float32
	Elapsed   float32
	Repeating bool

	finished     bool
	justFinished bool
}

func NewTimer(seconds float32) Timer {
	return Timer{Duration: seconds}
}

func (t *Timer) Tick(dt float32) {
	t.justFinished = false
	if t.finished && !t.Repeating {
		return
	}
	t.Elapsed += dt
	if t.Elapsed < t.Duration {
		return
	}
	t.justFinished = true
	if t.Repeating && t.Duration > 0 {
		for t.Elapsed >= t.Duration {
			t.Elapsed -= t.Duration
		}
		return
	}
	t.Elapsed = t.Duration
	t.finished = true
}

func (t Timer) Finished() bool {
	return t.finished || (t.Duration <= 0 && t.Elapsed >= t.Duration)
}

func (t Timer) JustFinished() bool {
	return t.justFinished
}

// Remaining is the time left in seconds, never negative.
func (t Timer) Remaining() float32 {
	if r := t.Duration - t.Elapsed; r > 0 {
		return r
	}
	return 0
}

// Set restarts the timer with a new duration.
func (t *Timer) Set(seconds float32) {
	t.Duration = seconds
	t.Reset()
}

func (t *Timer) Reset() {
	t.Elapsed = 0
	t.finished = false
	t.justFinished = false
}
