package system

import (
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/reactor/ecs"
	"github.com/milk9111/reactor/ecs/component"
	"github.com/milk9111/reactor/ecs/entity"
)

func flip(w *ecs.World, target ecs.Entity) {
	ev := ecs.CreateEntity(w)
	_ = ecs.Add(w, ev, component.SwitchEventComponent.Kind(), &component.SwitchEvent{Target: uint64(target)})
}

func TestDispenserRound(t *testing.T) {
	w := newTestWorld(t)
	e, err := entity.SpawnDispenser(w, mgl32.Vec3{4, 1.2, 2}, 0)
	if err != nil {
		t.Fatalf("spawn dispenser: %v", err)
	}
	sb, _ := singleton(w, component.ScoreBoardComponent.Kind())
	sb.Score = 3
	leftover, _ := entity.SpawnPellet(w, mgl32.Vec3{}, mgl32.Vec3{}, 0)

	dispensers := NewDispenserSystemWithRand(rand.New(rand.NewPCG(1, 2)))
	flip(w, e)
	run(w, 1, dispensers, NewEventCleanupSystem())

	d, _ := ecs.Get(w, e, component.DispenserComponent.Kind())
	if d.Count != d.RoundPellets {
		t.Fatalf("count %d want %d", d.Count, d.RoundPellets)
	}
	if !sb.Running || sb.Score != 0 || sb.High != 3 {
		t.Fatalf("scoreboard after start %+v", sb)
	}
	if ecs.IsAlive(w, leftover) {
		t.Fatalf("starting a round should clear old pellets")
	}
	if !hasClip(soundRequests(w), "start") {
		t.Fatalf("missing start sound")
	}

	run(w, 60*int(d.DelayMax+1)*d.RoundPellets, dispensers)

	if d.Count != 0 {
		t.Fatalf("dispenser still holds %d pellets", d.Count)
	}
	if n := count(w, component.PelletComponent.Kind()); n != d.RoundPellets {
		t.Fatalf("spawned %d pellets want %d", n, d.RoundPellets)
	}
	ecs.ForEach2(w, component.PelletComponent.Kind(), component.RigidBodyComponent.Kind(), func(_ ecs.Entity, p *component.Pellet, rb *component.RigidBody) {
		if p.Value != 0 && p.Value != 1 {
			t.Fatalf("pellet value %v", p.Value)
		}
		if rb.Velocity[0] < d.VelXMin || rb.Velocity[0] > d.VelXMax {
			t.Fatalf("pellet velocity %v", rb.Velocity)
		}
	})
}

func TestReactorScoring(t *testing.T) {
	tests := []struct {
		name    string
		running bool
		score   int
		value   float32
		inside  bool
		want    int
		clip    string
	}{
		{"accept", true, 0, 0.5, true, 1, "accept"},
		{"reject", true, 2, 0.9, true, 1, "reject"},
		{"floor at zero", true, 0, 0, true, 0, "reject"},
		{"edge of band", true, 0, 0.65, true, 1, "accept"},
		{"idle round", false, 0, 0.5, true, 0, ""},
		{"outside intake", true, 0, 0.5, false, 0, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := newTestWorld(t)
			if _, err := entity.SpawnReactor(w, mgl32.Vec3{-5, 0.6, 2}); err != nil {
				t.Fatalf("spawn reactor: %v", err)
			}
			sb, _ := singleton(w, component.ScoreBoardComponent.Kind())
			sb.Running = tc.running
			sb.Score = tc.score
			pos := mgl32.Vec3{-5, 0.2, 2}
			if !tc.inside {
				pos = mgl32.Vec3{0, 0.2, 0}
			}
			pellet, _ := entity.SpawnPellet(w, pos, mgl32.Vec3{}, tc.value)

			NewReactorSystem().Update(w)

			if sb.Score != tc.want {
				t.Fatalf("score %d want %d", sb.Score, tc.want)
			}
			if ecs.IsAlive(w, pellet) == tc.inside {
				t.Fatalf("pellet alive=%v, inside=%v", ecs.IsAlive(w, pellet), tc.inside)
			}
			reqs := soundRequests(w)
			if tc.clip == "" && len(reqs) != 0 {
				t.Fatalf("unexpected sounds %+v", reqs)
			}
			if tc.clip != "" && !hasClip(reqs, tc.clip) {
				t.Fatalf("missing %s sound", tc.clip)
			}
		})
	}
}

func TestScoreRoundEnds(t *testing.T) {
	tests := []struct {
		name     string
		score    int
		high     int
		wantHigh int
		newHigh  bool
	}{
		{"new high", 5, 3, 5, true},
		{"below high", 2, 3, 3, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := newTestWorld(t)
			e, _ := entity.SpawnDispenser(w, mgl32.Vec3{}, 0)
			d, _ := ecs.Get(w, e, component.DispenserComponent.Kind())
			d.Count = 4
			sb, _ := singleton(w, component.ScoreBoardComponent.Kind())
			sb.Score, sb.High, sb.Running = tc.score, tc.high, true
			sb.Round.Set(0.5)

			run(w, 29, NewScoreSystem())
			if !sb.Running {
				t.Fatalf("round ended early")
			}
			run(w, 2, NewScoreSystem())

			if sb.Running || sb.Rounds != 1 || sb.Score != 0 || sb.High != tc.wantHigh {
				t.Fatalf("scoreboard %+v", sb)
			}
			if d.Count != 0 {
				t.Fatalf("dispenser should stop, count %d", d.Count)
			}
			if got := count(w, component.HighScoreReachedComponent.Kind()) == 1; got != tc.newHigh {
				t.Fatalf("high score event=%v want %v", got, tc.newHigh)
			}
			var finished []component.RoundFinished
			ecs.ForEach(w, component.RoundFinishedComponent.Kind(), func(_ ecs.Entity, rf *component.RoundFinished) {
				finished = append(finished, *rf)
			})
			if len(finished) != 1 || finished[0].Score != tc.score || finished[0].High != tc.wantHigh {
				t.Fatalf("round finished %+v", finished)
			}
		})
	}
}
