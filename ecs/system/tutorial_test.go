package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/reactor/ecs"
	"github.com/milk9111/reactor/ecs/component"
	"github.com/milk9111/reactor/ecs/entity"
)

func spawnTestTutorial(t *testing.T, w *ecs.World, gates map[int]component.TutorialGate) *component.Tutorial {
	t.Helper()
	tut := &component.Tutorial{
		Lines:   []string{"line0", "line1", "line2"},
		Timer:   component.NewTimer(0),
		Gates:   gates,
		Channel: component.ChannelVoice,
		Volume:  0.5,
	}
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TutorialComponent.Kind(), tut); err != nil {
		t.Fatalf("add tutorial: %v", err)
	}
	return tut
}

// frame runs the tutorial once and drains its sound requests.
func frame(w *ecs.World, s *TutorialSystem) []string {
	s.Update(w)
	clips := voiceClips(w)
	ecs.ForEach(w, component.SoundRequestComponent.Kind(), func(e ecs.Entity, _ *component.SoundRequest) {
		ecs.DestroyEntity(w, e)
	})
	return clips
}

func TestTutorialGateWaits(t *testing.T) {
	w := newTestWorld(t)
	tut := spawnTestTutorial(t, w, map[int]component.TutorialGate{
		1: {Unlock: []string{component.UnlockLook}, Wait: component.WaitMouseMoved},
	})
	cfg, _ := singleton(w, component.CameraPlayerConfigComponent.Kind())
	s := NewTutorialSystem()

	if clips := frame(w, s); len(clips) != 1 || clips[0] != "line0" {
		t.Fatalf("first frame played %v", clips)
	}
	if cfg.DisableLook {
		t.Fatalf("gate at step 1 should unlock look")
	}
	if !cfg.DisableMovement {
		t.Fatalf("movement should stay locked")
	}
	if !tut.Paused {
		t.Fatalf("gate should hold until the mouse moves")
	}

	for i := 0; i < 10; i++ {
		if clips := frame(w, s); len(clips) != 0 {
			t.Fatalf("paused tutorial played %v", clips)
		}
	}

	setInput(t, w, component.Input{MouseDX: 3})
	frame(w, s)
	if tut.Paused {
		t.Fatalf("moving the mouse should release the gate")
	}
	setInput(t, w, component.Input{})
	if clips := frame(w, s); len(clips) != 1 || clips[0] != "line1" {
		t.Fatalf("after the gate played %v", clips)
	}
	frame(w, s)
	if !tut.Done() {
		t.Fatalf("tutorial should finish, step %d", tut.Step)
	}
}

func TestTutorialBlasterGate(t *testing.T) {
	w := newTestWorld(t)
	e, err := entity.SpawnBlaster(w, mgl32.Vec3{}, 0, false)
	if err != nil {
		t.Fatalf("spawn blaster: %v", err)
	}
	tut := spawnTestTutorial(t, w, map[int]component.TutorialGate{
		1: {Unlock: []string{component.UnlockBlasters}, Wait: component.WaitBlasterTaken},
	})
	s := NewTutorialSystem()
	frame(w, s)

	b, _ := ecs.Get(w, e, component.PolarityBlasterComponent.Kind())
	if b.State != component.BlasterEnabled {
		t.Fatalf("blasters should be unlocked")
	}
	if !tut.Paused {
		t.Fatalf("should wait for the blaster")
	}
	b.Held = true
	frame(w, s)
	if tut.Paused {
		t.Fatalf("holding the blaster should release the gate")
	}
}

func TestTutorialSkip(t *testing.T) {
	w := newTestWorld(t)
	blaster, _ := entity.SpawnBlaster(w, mgl32.Vec3{}, 0, false)
	nexus, _ := entity.SpawnNexus(w, mgl32.Vec3{0, 1, 0}, component.NexusIntro)
	tut := spawnTestTutorial(t, w, nil)
	cfg, _ := singleton(w, component.CameraPlayerConfigComponent.Kind())
	s := NewTutorialSystem()
	frame(w, s)

	setInput(t, w, component.Input{Skip: true})
	s.Update(w)

	if !tut.Done() {
		t.Fatalf("skip should finish the tutorial")
	}
	stopped := false
	for _, r := range soundRequests(w) {
		stopped = stopped || (r.Stop && r.Channel == component.ChannelVoice)
	}
	if !stopped {
		t.Fatalf("skip should stop the voice channel")
	}
	if cfg.DisableLook || cfg.DisableMovement {
		t.Fatalf("skip should unlock the camera %+v", cfg)
	}
	b, _ := ecs.Get(w, blaster, component.PolarityBlasterComponent.Kind())
	n, _ := ecs.Get(w, nexus, component.NexusComponent.Kind())
	if b.State != component.BlasterEnabled || n.Mode != component.NexusIdle {
		t.Fatalf("skip should unlock everything, blaster %v nexus %v", b.State, n.Mode)
	}
}

func TestTutorialFromPrefab(t *testing.T) {
	w := newTestWorld(t)
	if _, err := entity.SpawnTutorial(w); err != nil {
		t.Fatalf("spawn tutorial: %v", err)
	}
	s := NewTutorialSystem()
	var played []string
	for i := 0; i < 600 && len(played) < 2; i++ {
		played = append(played, frame(w, s)...)
	}
	if len(played) != 2 {
		t.Fatalf("tutorial should play two lines before the first gate, got %v", played)
	}
	tut, _ := singleton(w, component.TutorialComponent.Kind())
	if !tut.Paused || tut.Step != 2 {
		t.Fatalf("tutorial should hold at the mouse gate, step %d paused %v", tut.Step, tut.Paused)
	}
}
