package system

import (
	"github.com/milk9111/reactor/ecs"
	"github.com/milk9111/reactor/ecs/component"
	"github.com/milk9111/reactor/spatial"
)

const reactorVolume = 0.5

// ReactorSystem consumes pellets that reach a reactor intake and scores them
// while a round runs.
type ReactorSystem struct{}

func NewReactorSystem() *ReactorSystem {
	return &ReactorSystem{}
}

func (s *ReactorSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	sb, _ := singleton(w, component.ScoreBoardComponent.Kind())

	ecs.ForEach2(w, component.ReactorComponent.Kind(), component.GlobalTransformComponent.Kind(), func(_ ecs.Entity, r *component.Reactor, g *component.GlobalTransform) {
		intake := spatial.FromCenter(g.Translation, r.Intake)
		ecs.ForEach2(w, component.PelletComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.Pellet, t *component.Transform) {
			if !intake.Contains(t.Translation) {
				return
			}
			if sb != nil && sb.Running {
				if r.Accepts(p.Value) {
					sb.Score++
					playEffect(w, "accept", reactorVolume)
				} else {
					sb.Score = max(sb.Score-1, 0)
					playEffect(w, "reject", reactorVolume)
				}
			}
			ecs.DestroyEntity(w, e)
		})
	})
}

// ScoreSystem runs the round clock and closes out finished rounds.
type ScoreSystem struct{}

func NewScoreSystem() *ScoreSystem {
	return &ScoreSystem{}
}

func (s *ScoreSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	sb, ok := singleton(w, component.ScoreBoardComponent.Kind())
	if !ok || !sb.Running {
		return
	}
	sb.Round.Tick(dt)
	if !sb.Round.JustFinished() {
		return
	}

	sb.Running = false
	sb.Rounds++
	if sb.Score > sb.High {
		sb.High = sb.Score
		ev := ecs.CreateEntity(w)
		_ = ecs.Add(w, ev, component.HighScoreReachedComponent.Kind(), &component.HighScoreReached{Score: sb.Score})
	}
	done := ecs.CreateEntity(w)
	_ = ecs.Add(w, done, component.RoundFinishedComponent.Kind(), &component.RoundFinished{Score: sb.Score, High: sb.High})

	ecs.ForEach(w, component.DispenserComponent.Kind(), func(_ ecs.Entity, d *component.Dispenser) {
		d.Count = 0
	})
	resetScore(w, sb)
}

// resetScore folds the score into the high score, zeroes it and clears the
// pellets in play.
func resetScore(w *ecs.World, sb *component.ScoreBoard) {
	if sb.Score > sb.High {
		sb.High = sb.Score
	}
	sb.Score = 0
	despawnPellets(w)
}
