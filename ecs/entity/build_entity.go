package entity

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/reactor/common"
	"github.com/milk9111/reactor/ecs"
	"github.com/milk9111/reactor/ecs/component"
	"github.com/milk9111/reactor/prefabs"
)

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"main_camera_tag":    addMainCameraTag,
	"keep":               addKeep,
	"transform":          addTransform,
	"mesh":               addMesh,
	"collider":           addCollider,
	"rigid_body":         addRigidBody,
	"camera":             addCamera,
	"camera_controller":  addCameraController,
	"cursor_interaction": addCursorInteraction,
	"interaction_time":   addInteractionTime,
	"outline":            addOutline,
	"pellet":             addPellet,
	"polarity_blaster":   addPolarityBlaster,
	"dispenser":          addDispenser,
	"reactor":            addReactor,
	"nexus":              addNexus,
	"voice_lines":        addVoiceLines,
	"tween":              addTween,
	"spin":               addSpin,
	"spatial_emitter":    addSpatialEmitter,
}

// Transform goes first so later builders can read the entity's position.
var componentBuildOrder = []string{
	"main_camera_tag",
	"keep",
	"transform",
	"mesh",
	"collider",
	"rigid_body",
	"camera",
	"camera_controller",
	"cursor_interaction",
	"interaction_time",
	"outline",
	"pellet",
	"polarity_blaster",
	"dispenser",
	"reactor",
	"nexus",
	"voice_lines",
	"tween",
	"spin",
	"spatial_emitter",
}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for components %s", prefabPath, strings.Join(names, ", "))
	}

	return e, nil
}

// Place moves an entity to pos with the given yaw in radians, keeping its
// scale.
func Place(w *ecs.World, e ecs.Entity, pos mgl32.Vec3, yaw float32) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		t = component.NewTransform(pos)
	}
	t.Translation = pos
	t.Rotation = mgl32.QuatRotate(yaw, component.AxisY)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), t); err != nil {
		return err
	}
	return ecs.Add(w, e, component.GlobalTransformComponent.Kind(), &component.GlobalTransform{Transform: *t})
}

// Attach parents child to parent; child's Transform becomes parent-local.
func Attach(w *ecs.World, child, parent ecs.Entity) error {
	return ecs.Add(w, child, component.ParentComponent.Kind(), &component.Parent{Entity: uint64(parent)})
}

func degToRad(deg float32) float32 {
	return deg * math.Pi / 180
}

func addMainCameraTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.MainCameraTagComponent.Kind(), &component.MainCameraTag{})
}

func addKeep(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.KeepComponent.Kind(), &component.Keep{})
}

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	t := component.NewTransformYaw(spec.Position.Vec(), degToRad(spec.YawDegrees))
	if spec.Scale != nil {
		t.Scale = spec.Scale.Vec()
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), t); err != nil {
		return err
	}
	return ecs.Add(w, e, component.GlobalTransformComponent.Kind(), &component.GlobalTransform{Transform: *t})
}

func parseMeshKind(s string) (component.MeshKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "box":
		return component.MeshBox, nil
	case "sphere":
		return component.MeshSphere, nil
	case "octahedron":
		return component.MeshOctahedron, nil
	case "line":
		return component.MeshLine, nil
	default:
		return 0, fmt.Errorf("unknown mesh kind %q", s)
	}
}

func addMesh(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.MeshComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode mesh spec: %w", err)
	}
	kind, err := parseMeshKind(spec.Kind)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.MeshComponent.Kind(), &component.Mesh{
		Kind:        kind,
		HalfExtents: spec.HalfExtents.Vec(),
		Radius:      spec.Radius,
		LineEnd:     spec.LineEnd.Vec(),
		Color:       spec.Color.NRGBA(defaultMeshColor),
		Hidden:      spec.Hidden,
	})
}

func parseColliderShape(s string) (component.ColliderShape, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "box":
		return component.ShapeBox, nil
	case "sphere":
		return component.ShapeSphere, nil
	case "convex":
		return component.ShapeConvex, nil
	default:
		return 0, fmt.Errorf("unknown collider shape %q", s)
	}
}

func parseColliderLayer(s string) (component.ColliderLayer, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "solid":
		return component.LayerSolid, nil
	case "surface":
		return component.LayerSurface, nil
	case "dynamic":
		return component.LayerDynamic, nil
	default:
		return 0, fmt.Errorf("unknown collider layer %q", s)
	}
}

func addCollider(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ColliderComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode collider spec: %w", err)
	}
	shape, err := parseColliderShape(spec.Shape)
	if err != nil {
		return err
	}
	layer, err := parseColliderLayer(spec.Layer)
	if err != nil {
		return err
	}
	c := &component.Collider{
		Shape:       shape,
		HalfExtents: spec.HalfExtents.Vec(),
		Radius:      spec.Radius,
		Offset:      spec.Offset.Vec(),
		Layer:       layer,
		Disabled:    spec.Disabled,
	}
	if shape == component.ShapeConvex {
		if spec.HalfHeight <= 0 || spec.HalfWidth <= 0 {
			return fmt.Errorf("convex collider needs half_height and half_width")
		}
		c.Points = component.OctahedronPoints(spec.HalfHeight, spec.HalfWidth)
	}
	return ecs.Add(w, e, component.ColliderComponent.Kind(), c)
}

func addRigidBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.RigidBodyComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode rigid_body spec: %w", err)
	}
	mass := spec.Mass
	if mass <= 0 {
		mass = 1
	}
	return ecs.Add(w, e, component.RigidBodyComponent.Kind(), &component.RigidBody{
		Mass:        mass,
		Restitution: spec.Restitution,
		Friction:    spec.Friction,
	})
}

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CameraComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}
	cam := &component.Camera{FOV: degToRad(70), Near: 0.05, Far: 200}
	if spec.FOVDegrees > 0 {
		cam.FOV = degToRad(spec.FOVDegrees)
	}
	if spec.Near > 0 {
		cam.Near = spec.Near
	}
	if spec.Far > cam.Near {
		cam.Far = spec.Far
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), cam)
}

func addCameraController(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CameraControllerComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera_controller spec: %w", err)
	}
	c := component.DefaultCameraController()
	override := func(dst *float32, src *float32) {
		if src != nil {
			*dst = *src
		}
	}
	override(&c.Sensitivity, spec.Sensitivity)
	override(&c.WalkSpeed, spec.WalkSpeed)
	override(&c.RunSpeed, spec.RunSpeed)
	override(&c.Friction, spec.Friction)
	override(&c.EyeHeight, spec.EyeHeight)
	override(&c.KneeHeight, spec.KneeHeight)
	override(&c.ProbeDistance, spec.ProbeDistance)
	return ecs.Add(w, e, component.CameraControllerComponent.Kind(), c)
}

func addCursorInteraction(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CursorInteractionComponent.Kind(), &component.CursorInteraction{})
}

func addInteractionTime(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.InteractionTimeComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode interaction_time spec: %w", err)
	}
	it := &component.InteractionTime{Timer: component.NewTimer(spec.Seconds)}
	// Start finished so the first click is never blocked.
	it.Timer.Elapsed = spec.Seconds
	it.Timer.Tick(0)
	return ecs.Add(w, e, component.InteractionTimeComponent.Kind(), it)
}

func addOutline(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.OutlineComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode outline spec: %w", err)
	}
	def := component.DefaultCursorConfig()
	width := spec.Width
	if width <= 0 {
		width = def.Width
	}
	return ecs.Add(w, e, component.OutlineComponent.Kind(), &component.Outline{
		Color: spec.Color.NRGBA(def.HoverColor),
		Width: width,
	})
}

func addPellet(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PelletComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode pellet spec: %w", err)
	}
	return ecs.Add(w, e, component.PelletComponent.Kind(), &component.Pellet{Value: common.Clamp01(spec.Value)})
}

func addPolarityBlaster(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.BlasterComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode polarity_blaster spec: %w", err)
	}
	b := component.DefaultBlaster()
	if spec.Enabled {
		b.State = component.BlasterEnabled
	}
	if spec.Change > 0 {
		b.Change = spec.Change
	}
	if spec.Range > 0 {
		b.Range = spec.Range
	}
	if spec.HoldOffset != nil {
		b.HoldOffset = spec.HoldOffset.Vec()
	}
	b.PositiveColor = spec.PositiveColor.NRGBA(b.PositiveColor)
	b.NegativeColor = spec.NegativeColor.NRGBA(b.NegativeColor)
	return ecs.Add(w, e, component.PolarityBlasterComponent.Kind(), b)
}

func addDispenser(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.DispenserComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode dispenser spec: %w", err)
	}
	d := component.DefaultDispenser()
	if spec.DelayMax > spec.DelayMin && spec.DelayMin >= 0 {
		d.DelayMin, d.DelayMax = spec.DelayMin, spec.DelayMax
	}
	if spec.VelXMax > spec.VelXMin {
		d.VelXMin, d.VelXMax = spec.VelXMin, spec.VelXMax
	}
	if spec.Spread > 0 {
		d.Spread = spec.Spread
	}
	if spec.SpawnFrom != nil {
		d.SpawnFrom = spec.SpawnFrom.Vec()
	}
	if spec.RoundPellets > 0 {
		d.RoundPellets = spec.RoundPellets
	}
	if spec.RoundSeconds > 0 {
		d.RoundSeconds = spec.RoundSeconds
	}
	return ecs.Add(w, e, component.DispenserComponent.Kind(), d)
}

func addReactor(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ReactorComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode reactor spec: %w", err)
	}
	r := &component.Reactor{Target: 0.5, Tolerance: 0.15, Intake: spec.Intake.Vec()}
	if spec.Target > 0 {
		r.Target = spec.Target
	}
	if spec.Tolerance > 0 {
		r.Tolerance = spec.Tolerance
	}
	if r.Intake == (mgl32.Vec3{}) {
		r.Intake = mgl32.Vec3{1, 0.6, 1}
	}
	return ecs.Add(w, e, component.ReactorComponent.Kind(), r)
}

func parseNexusMode(s string) (component.NexusMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "intro":
		return component.NexusIntro, nil
	case "idle":
		return component.NexusIdle, nil
	default:
		return 0, fmt.Errorf("unknown nexus mode %q", s)
	}
}

func addNexus(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.NexusComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode nexus spec: %w", err)
	}
	mode, err := parseNexusMode(spec.Mode)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.NexusComponent.Kind(), &component.Nexus{Mode: mode})
}

func addVoiceLines(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.VoiceLinesComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode voice_lines spec: %w", err)
	}
	vol := spec.Volume
	if vol <= 0 {
		vol = 0.4
	}
	return ecs.Add(w, e, component.VoiceLinesComponent.Kind(), &component.VoiceLines{
		Annoyed:   spec.Annoyed,
		HighScore: spec.HighScore,
		Volume:    vol,
	})
}

func parseTweenMode(s string) (component.TweenMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "once":
		return component.TweenOnce, nil
	case "ping_pong":
		return component.TweenPingPong, nil
	case "repeat":
		return component.TweenRepeat, nil
	default:
		return 0, fmt.Errorf("unknown tween mode %q", s)
	}
}

// addTween reads from/to as offsets from the entity's transform.
func addTween(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TweenComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode tween spec: %w", err)
	}
	mode, err := parseTweenMode(spec.Mode)
	if err != nil {
		return err
	}
	if spec.Duration <= 0 {
		return fmt.Errorf("tween duration must be positive")
	}
	var base mgl32.Vec3
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		base = t.Translation
	}
	ease := common.Ease(spec.Ease)
	if ease == "" {
		ease = common.EaseLinear
	}
	return ecs.Add(w, e, component.TweenComponent.Kind(), &component.Tween{
		From:     base.Add(spec.From.Vec()),
		To:       base.Add(spec.To.Vec()),
		Duration: spec.Duration,
		Ease:     ease,
		Mode:     mode,
	})
}

func addSpin(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.SpinComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode spin spec: %w", err)
	}
	return ecs.Add(w, e, component.SpinComponent.Kind(), &component.Spin{Speed: degToRad(spec.DegreesPerSecond)})
}

func addSpatialEmitter(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.SpatialEmitterComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode spatial_emitter spec: %w", err)
	}
	if strings.TrimSpace(spec.Clip) == "" {
		return fmt.Errorf("spatial_emitter needs a clip")
	}
	channel := spec.Channel
	if channel == "" {
		channel = component.ChannelEffects
	}
	maxDist := spec.MaxDistance
	if maxDist <= 0 {
		maxDist = 10
	}
	return ecs.Add(w, e, component.SpatialEmitterComponent.Kind(), &component.SpatialEmitter{
		Clip:        spec.Clip,
		Channel:     channel,
		Volume:      spec.Volume,
		MaxDistance: maxDist,
	})
}

// CheckPrefabs builds every prefab and composite into a scratch world and
// returns all failures joined. The loading screen runs it once.
func CheckPrefabs() error {
	w := ecs.NewWorld()
	var errs []error
	for _, name := range prefabs.Names() {
		spec, err := prefabs.LoadEntityBuildSpec(name)
		if err != nil {
			errs = append(errs, fmt.Errorf("prefab %q: %w", name, err))
			continue
		}
		if len(spec.Components) == 0 {
			continue
		}
		if _, err := BuildEntity(w, name); err != nil {
			errs = append(errs, err)
		}
	}
	if _, err := SpawnTrainingRoom(w); err != nil {
		errs = append(errs, err)
	}
	if _, err := SpawnTutorial(w); err != nil {
		errs = append(errs, err)
	}
	if table, err := prefabs.LoadSpec[prefabs.PropsSpec]("props"); err != nil {
		errs = append(errs, err)
	} else {
		for name := range table.Props {
			if _, err := SpawnProp(w, name, mgl32.Vec3{}, 0); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
