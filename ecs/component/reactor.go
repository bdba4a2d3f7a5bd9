package component

import "github.com/go-gl/mathgl/mgl32"

// Reactor consumes pellets that enter its intake box and scores them against
// the band [Target-Tolerance, Target+Tolerance].
type Reactor struct {
	Target    float32
	Tolerance float32
	Intake    mgl32.Vec3
}

var ReactorComponent = NewComponent[Reactor]()

func (r Reactor) Accepts(value float32) bool {
	d := value - r.Target
	if d < 0 {
		d = -d
	}
	return d <= r.Tolerance+1e-6
}

type ScoreBoard struct {
	Score   int
	High    int
	Round   Timer
	Running bool
	Rounds  int
}

var ScoreBoardComponent = NewComponent[ScoreBoard]()

// HighScoreReached is a one-shot request entity raised when a round ends
// above the previous high score.
type HighScoreReached struct {
	Score int
}

var HighScoreReachedComponent = NewComponent[HighScoreReached]()

// RoundFinished is a one-shot request entity carrying a finished round's
// score to persistence.
type RoundFinished struct {
	Score int
	High  int
}

var RoundFinishedComponent = NewComponent[RoundFinished]()
