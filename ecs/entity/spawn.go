package entity

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/reactor/common"
	"github.com/milk9111/reactor/ecs"
	"github.com/milk9111/reactor/ecs/component"
	"github.com/milk9111/reactor/prefabs"
	"github.com/rs/zerolog/log"
)

var defaultMeshColor = color.NRGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}

// SpawnCamera builds the main camera at pos looking at lookAt.
func SpawnCamera(w *ecs.World, pos, lookAt mgl32.Vec3) (ecs.Entity, error) {
	e, err := BuildEntity(w, "camera")
	if err != nil {
		return 0, err
	}
	yaw, pitch := component.YawPitchTowards(pos, lookAt)
	if ctrl, ok := ecs.Get(w, e, component.CameraControllerComponent.Kind()); ok {
		ctrl.Yaw = yaw
		ctrl.Pitch = pitch
	}
	t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	t.Translation = pos
	t.Rotation = component.YawPitch(yaw, pitch)
	if err := ecs.Add(w, e, component.GlobalTransformComponent.Kind(), &component.GlobalTransform{Transform: *t}); err != nil {
		return 0, fmt.Errorf("camera: %w", err)
	}
	return e, nil
}

func SpawnPellet(w *ecs.World, pos, vel mgl32.Vec3, value float32) (ecs.Entity, error) {
	e, err := BuildEntity(w, "pellet")
	if err != nil {
		return 0, err
	}
	if err := Place(w, e, pos, 0); err != nil {
		return 0, fmt.Errorf("pellet: %w", err)
	}
	value = common.Clamp01(value)
	if p, ok := ecs.Get(w, e, component.PelletComponent.Kind()); ok {
		p.Value = value
	}
	if m, ok := ecs.Get(w, e, component.MeshComponent.Kind()); ok {
		m.Color = component.PelletColor(value)
	}
	if rb, ok := ecs.Get(w, e, component.RigidBodyComponent.Kind()); ok {
		rb.Velocity = vel
	}
	return e, nil
}

// SpawnBlaster builds a blaster resting at pos and its hidden laser beam.
func SpawnBlaster(w *ecs.World, pos mgl32.Vec3, yaw float32, enabled bool) (ecs.Entity, error) {
	e, err := BuildEntity(w, "blaster")
	if err != nil {
		return 0, err
	}
	if err := Place(w, e, pos, yaw); err != nil {
		return 0, fmt.Errorf("blaster: %w", err)
	}
	b, _ := ecs.Get(w, e, component.PolarityBlasterComponent.Kind())
	b.State = component.BlasterDisabled
	if enabled {
		b.State = component.BlasterEnabled
	}

	laser := ecs.CreateEntity(w)
	if err := Place(w, laser, pos, 0); err != nil {
		return 0, fmt.Errorf("blaster laser: %w", err)
	}
	if err := ecs.Add(w, laser, component.LaserTagComponent.Kind(), &component.LaserTag{}); err != nil {
		return 0, fmt.Errorf("blaster laser: %w", err)
	}
	if err := ecs.Add(w, laser, component.MeshComponent.Kind(), &component.Mesh{
		Kind:   component.MeshLine,
		Color:  b.PositiveColor,
		Hidden: true,
	}); err != nil {
		return 0, fmt.Errorf("blaster laser: %w", err)
	}
	b.Laser = uint64(laser)
	return e, nil
}

func SpawnNexus(w *ecs.World, pos mgl32.Vec3, mode component.NexusMode) (ecs.Entity, error) {
	e, err := BuildEntity(w, "nexus")
	if err != nil {
		return 0, err
	}
	old, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	delta := pos.Sub(old.Translation)
	if err := Place(w, e, pos, 0); err != nil {
		return 0, fmt.Errorf("nexus: %w", err)
	}
	if tw, ok := ecs.Get(w, e, component.TweenComponent.Kind()); ok {
		tw.From = tw.From.Add(delta)
		tw.To = tw.To.Add(delta)
	}
	n, _ := ecs.Get(w, e, component.NexusComponent.Kind())
	n.Mode = mode
	return e, nil
}

func SpawnDispenser(w *ecs.World, pos mgl32.Vec3, yaw float32) (ecs.Entity, error) {
	e, err := BuildEntity(w, "dispenser")
	if err != nil {
		return 0, err
	}
	if err := Place(w, e, pos, yaw); err != nil {
		return 0, fmt.Errorf("dispenser: %w", err)
	}
	return e, nil
}

func SpawnReactor(w *ecs.World, pos mgl32.Vec3) (ecs.Entity, error) {
	e, err := BuildEntity(w, "reactor")
	if err != nil {
		return 0, err
	}
	if err := Place(w, e, pos, 0); err != nil {
		return 0, fmt.Errorf("reactor: %w", err)
	}
	return e, nil
}

// SpawnProp places a named box from props.yaml standing on y.
func SpawnProp(w *ecs.World, name string, pos mgl32.Vec3, yaw float32) (ecs.Entity, error) {
	table, err := prefabs.LoadSpec[prefabs.PropsSpec]("props")
	if err != nil {
		return 0, err
	}
	spec, ok := table.Props[name]
	if !ok {
		return 0, fmt.Errorf("prop: unknown prop %q", name)
	}
	half := spec.Size.Vec().Mul(0.5)
	if half.X() <= 0 || half.Y() <= 0 || half.Z() <= 0 {
		return 0, fmt.Errorf("prop: %q has an empty size", name)
	}
	layer := component.LayerSolid
	if spec.Static != nil && !*spec.Static {
		layer = component.LayerSurface
	}

	e := ecs.CreateEntity(w)
	if err := Place(w, e, pos.Add(mgl32.Vec3{0, half.Y(), 0}), yaw); err != nil {
		return 0, fmt.Errorf("prop: %w", err)
	}
	if err := ecs.Add(w, e, component.PropComponent.Kind(), &component.Prop{Name: name}); err != nil {
		return 0, fmt.Errorf("prop: %w", err)
	}
	if err := addBox(w, e, half, spec.Color.NRGBA(defaultMeshColor), layer); err != nil {
		return 0, fmt.Errorf("prop: %w", err)
	}
	return e, nil
}

func addBox(w *ecs.World, e ecs.Entity, half mgl32.Vec3, c color.NRGBA, layer component.ColliderLayer) error {
	if err := ecs.Add(w, e, component.MeshComponent.Kind(), &component.Mesh{Kind: component.MeshBox, HalfExtents: half, Color: c}); err != nil {
		return err
	}
	return ecs.Add(w, e, component.ColliderComponent.Kind(), &component.Collider{Shape: component.ShapeBox, HalfExtents: half, Layer: layer})
}

// SpawnTutorial adds the intro sequencer from tutorial.yaml.
func SpawnTutorial(w *ecs.World) (ecs.Entity, error) {
	spec, err := prefabs.LoadSpec[prefabs.TutorialSpec]("tutorial")
	if err != nil {
		return 0, err
	}
	if len(spec.Lines) == 0 {
		return 0, fmt.Errorf("tutorial: no lines")
	}
	tut := &component.Tutorial{
		Lines:   spec.Lines,
		Timer:   component.NewTimer(spec.InitialDelay),
		Gates:   make(map[int]component.TutorialGate, len(spec.Gates)),
		Volume:  spec.Volume,
		Channel: spec.Channel,
		Gap:     spec.Gap,
	}
	if tut.Channel == "" {
		tut.Channel = component.ChannelVoice
	}
	for _, g := range spec.Gates {
		if _, dup := tut.Gates[g.Step]; dup {
			return 0, fmt.Errorf("tutorial: duplicate gate for step %d", g.Step)
		}
		tut.Gates[g.Step] = component.TutorialGate{Unlock: g.Unlock, Wait: g.Wait}
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TutorialComponent.Kind(), tut); err != nil {
		return 0, err
	}
	return e, nil
}

// loadCursorConfig applies cursor.yaml over the defaults. A bad file is
// logged and the defaults are kept.
func loadCursorConfig() *component.CursorConfig {
	cfg := component.DefaultCursorConfig()
	spec, err := prefabs.LoadSpec[prefabs.CursorSpec]("cursor")
	if err != nil {
		log.Warn().Err(err).Str("prefab", "cursor").Msg("prefab: cursor config, using defaults")
		return cfg
	}
	cfg.HoverColor = spec.HoverColor.NRGBA(cfg.HoverColor)
	cfg.ClickedColor = spec.ClickedColor.NRGBA(cfg.ClickedColor)
	cfg.DisabledColor = spec.DisabledColor.NRGBA(cfg.DisabledColor)
	if spec.Width > 0 {
		cfg.Width = spec.Width
	}
	if spec.Range > 0 {
		cfg.Range = spec.Range
	}
	return cfg
}

// SpawnSingletons creates the entity that holds global state. It carries Keep
// so it outlives level changes.
func SpawnSingletons(w *ecs.World, clips map[string]component.Clip) (ecs.Entity, error) {
	cursorCfg := loadCursorConfig()
	if clips == nil {
		clips = map[string]component.Clip{}
	}

	e := ecs.CreateEntity(w)
	adds := []func() error{
		func() error { return ecs.Add(w, e, component.KeepComponent.Kind(), &component.Keep{}) },
		func() error { return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}) },
		func() error {
			return ecs.Add(w, e, component.CameraModeComponent.Kind(), &component.CameraMode{Mode: component.CameraModePlayer})
		},
		func() error {
			return ecs.Add(w, e, component.CameraPlayerConfigComponent.Kind(), &component.CameraPlayerConfig{})
		},
		func() error { return ecs.Add(w, e, component.CursorComponent.Kind(), &component.Cursor{}) },
		func() error { return ecs.Add(w, e, component.CursorConfigComponent.Kind(), cursorCfg) },
		func() error { return ecs.Add(w, e, component.ScoreBoardComponent.Kind(), &component.ScoreBoard{}) },
		func() error { return ecs.Add(w, e, component.AudioMixerComponent.Kind(), component.NewAudioMixer()) },
		func() error {
			return ecs.Add(w, e, component.ClipLibraryComponent.Kind(), &component.ClipLibrary{Clips: clips})
		},
		func() error {
			return ecs.Add(w, e, component.DebugSettingsComponent.Kind(), &component.DebugSettings{})
		},
		func() error { return ecs.Add(w, e, component.SceneBVHComponent.Kind(), &component.SceneBVH{}) },
	}
	for _, add := range adds {
		if err := add(); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("singletons: %w", err)
		}
	}
	return e, nil
}

// CleanupLevel destroys every entity without Keep and returns how many went.
func CleanupLevel(w *ecs.World) int {
	n := 0
	for _, e := range ecs.Entities(w) {
		if ecs.Has(w, e, component.KeepComponent.Kind()) {
			continue
		}
		if ecs.DestroyEntity(w, e) {
			n++
		}
	}
	return n
}
