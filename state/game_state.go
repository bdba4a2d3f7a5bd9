package state

type GameState int

const (
	PreLoading GameState = iota
	Loading
	Menu
	Playing
)

func (s GameState) String() string {
	switch s {
	case PreLoading:
		return "PreLoading"
	case Loading:
		return "Loading"
	case Menu:
		return "Menu"
	case Playing:
		return "Playing"
	default:
		return "Unknown"
	}
}

type LevelState int

const (
	LevelNone LevelState = iota
	LevelIntro
	LevelOne
)

func (s LevelState) String() string {
	switch s {
	case LevelIntro:
		return "Intro"
	case LevelOne:
		return "One"
	default:
		return "None"
	}
}

// Script returns the level script name for s.
func (s LevelState) Script() string {
	switch s {
	case LevelIntro:
		return "intro"
	case LevelOne:
		return "one"
	default:
		return ""
	}
}

func ParseLevel(name string) (LevelState, bool) {
	switch name {
	case "intro", "Intro":
		return LevelIntro, true
	case "one", "One":
		return LevelOne, true
	default:
		return LevelNone, false
	}
}
