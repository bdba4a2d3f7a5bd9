package entity

import (
	"fmt"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/reactor/common"
	"github.com/milk9111/reactor/ecs"
	"github.com/milk9111/reactor/ecs/component"
	"github.com/milk9111/reactor/prefabs"
)

// Room holds the entities a level script may want to wire together.
type Room struct {
	Door   ecs.Entity
	Switch ecs.Entity
}

// SpawnDoor builds a framed sliding door standing on pos. The panel is a
// child entity that slides up into the wall when the door opens.
func SpawnDoor(w *ecs.World, pos mgl32.Vec3, yaw float32) (ecs.Entity, error) {
	spec, err := prefabs.LoadSpec[prefabs.DoorSpec]("door")
	if err != nil {
		return 0, err
	}
	door := component.DefaultDoor()
	if spec.Height > 0 {
		door.Height = spec.Height
	}
	if spec.Width > 0 {
		door.Width = spec.Width
	}
	if spec.Thickness > 0 {
		door.Thickness = spec.Thickness
	}
	if spec.FrameWidth > 0 {
		door.FrameWidth = spec.FrameWidth
	}
	if spec.FrameDepth > 0 {
		door.FrameDepth = spec.FrameDepth
	}
	if spec.Duration > 0 {
		door.Duration = spec.Duration
	}
	frameColor := spec.FrameColor.NRGBA(defaultMeshColor)
	panelColor := spec.PanelColor.NRGBA(defaultMeshColor)

	e := ecs.CreateEntity(w)
	if err := Place(w, e, pos, yaw); err != nil {
		return 0, fmt.Errorf("door: %w", err)
	}

	fw, fd := door.FrameWidth*0.5, door.FrameDepth*0.5
	postX := door.Width*0.5 + fw
	parts := []struct {
		at   mgl32.Vec3
		half mgl32.Vec3
	}{
		{mgl32.Vec3{-postX, door.Height * 0.5, 0}, mgl32.Vec3{fw, door.Height * 0.5, fd}},
		{mgl32.Vec3{postX, door.Height * 0.5, 0}, mgl32.Vec3{fw, door.Height * 0.5, fd}},
		{mgl32.Vec3{0, door.Height + fw, 0}, mgl32.Vec3{postX + fw, fw, fd}},
	}
	for _, p := range parts {
		if _, err := spawnChildBox(w, e, p.at, p.half, frameColor, component.LayerSolid); err != nil {
			return 0, fmt.Errorf("door frame: %w", err)
		}
	}

	closed := mgl32.Vec3{0, door.SliderY(component.DoorClosed), 0}
	slider, err := spawnChildBox(w, e, closed, mgl32.Vec3{door.Width * 0.5, door.Height * 0.5, door.Thickness * 0.5}, panelColor, component.LayerSolid)
	if err != nil {
		return 0, fmt.Errorf("door panel: %w", err)
	}
	if err := ecs.Add(w, slider, component.TweenComponent.Kind(), &component.Tween{
		From:     closed,
		To:       closed,
		Duration: door.Duration,
		Ease:     common.EaseSineInOut,
		Done:     true,
	}); err != nil {
		return 0, fmt.Errorf("door panel: %w", err)
	}
	door.Slider = uint64(slider)
	door.State = component.DoorClosed

	if err := ecs.Add(w, e, component.DoorComponent.Kind(), door); err != nil {
		return 0, fmt.Errorf("door: %w", err)
	}
	return e, nil
}

func spawnChildBox(w *ecs.World, parent ecs.Entity, local, half mgl32.Vec3, c color.NRGBA, layer component.ColliderLayer) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	t := component.NewTransform(local)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), t); err != nil {
		return 0, err
	}
	if err := Attach(w, e, parent); err != nil {
		return 0, err
	}
	if err := addBox(w, e, half, c, layer); err != nil {
		return 0, err
	}
	return e, nil
}

// SpawnSwitch builds a wall switch at pos facing -Z rotated by yaw. A zero
// target leaves it unwired.
func SpawnSwitch(w *ecs.World, pos mgl32.Vec3, yaw float32, target ecs.Entity, enabled bool) (ecs.Entity, error) {
	spec, err := prefabs.LoadSpec[prefabs.SwitchSpec]("switch")
	if err != nil {
		return 0, err
	}
	half := spec.Size.Vec().Mul(0.5)
	if half == (mgl32.Vec3{}) {
		half = mgl32.Vec3{0.1, 0.15, 0.1}
	}
	button := spec.ButtonSize
	if button <= 0 {
		button = 0.1
	}
	sound := spec.Sound
	if sound == "" {
		sound = "flip"
	}

	e := ecs.CreateEntity(w)
	if err := Place(w, e, pos, yaw); err != nil {
		return 0, fmt.Errorf("switch: %w", err)
	}
	if err := addBox(w, e, half, spec.BaseColor.NRGBA(defaultMeshColor), component.LayerSurface); err != nil {
		return 0, fmt.Errorf("switch: %w", err)
	}
	state := component.SwitchDisabled
	if enabled {
		state = component.SwitchEnabled
	}
	adds := []func() error{
		func() error {
			return ecs.Add(w, e, component.SwitchComponent.Kind(), &component.Switch{Target: uint64(target), State: state, Sound: sound, Cooldown: spec.Cooldown})
		},
		func() error {
			return ecs.Add(w, e, component.CursorInteractionComponent.Kind(), &component.CursorInteraction{})
		},
		func() error {
			return ecs.Add(w, e, component.InteractionTimeComponent.Kind(), &component.InteractionTime{Timer: component.NewTimer(0)})
		},
		func() error {
			cfg := component.DefaultCursorConfig()
			return ecs.Add(w, e, component.OutlineComponent.Kind(), &component.Outline{Color: cfg.HoverColor, Width: cfg.Width})
		},
	}
	for _, add := range adds {
		if err := add(); err != nil {
			return 0, fmt.Errorf("switch: %w", err)
		}
	}

	b := ecs.CreateEntity(w)
	if err := ecs.Add(w, b, component.TransformComponent.Kind(), component.NewTransform(mgl32.Vec3{0, 0, -half.Z()})); err != nil {
		return 0, fmt.Errorf("switch button: %w", err)
	}
	if err := Attach(w, b, e); err != nil {
		return 0, fmt.Errorf("switch button: %w", err)
	}
	if err := ecs.Add(w, b, component.MeshComponent.Kind(), &component.Mesh{
		Kind:        component.MeshBox,
		HalfExtents: mgl32.Vec3{button * 0.5, button, button * 0.5},
		Color:       spec.ButtonColor.NRGBA(defaultMeshColor),
	}); err != nil {
		return 0, fmt.Errorf("switch button: %w", err)
	}
	return e, nil
}

// SetSwitchTarget rewires a switch.
func SetSwitchTarget(w *ecs.World, sw, target ecs.Entity) error {
	s, ok := ecs.Get(w, sw, component.SwitchComponent.Kind())
	if !ok {
		return fmt.Errorf("set target: entity %d is not a switch", sw)
	}
	if !ecs.IsAlive(w, target) {
		return fmt.Errorf("set target: %w", component.ErrEntityNotAlive)
	}
	s.Target = uint64(target)
	return nil
}

// SpawnTrainingRoom builds the square room: floor, ceiling, four walls and a
// door in the +Z wall with its switch beside it.
func SpawnTrainingRoom(w *ecs.World) (Room, error) {
	spec, err := prefabs.LoadSpec[prefabs.RoomSpec]("room")
	if err != nil {
		return Room{}, err
	}
	doorSpec, err := prefabs.LoadSpec[prefabs.DoorSpec]("door")
	if err != nil {
		return Room{}, err
	}
	switchSpec, err := prefabs.LoadSpec[prefabs.SwitchSpec]("switch")
	if err != nil {
		return Room{}, err
	}
	if spec.Floor <= 0 || spec.WallHeight <= 0 || spec.Thickness <= 0 {
		return Room{}, fmt.Errorf("room: floor, wall_height and thickness must be positive")
	}
	def := component.DefaultDoor()
	doorW, doorH, frame := def.Width, def.Height, def.FrameWidth
	if doorSpec.Width > 0 {
		doorW = doorSpec.Width
	}
	if doorSpec.Height > 0 {
		doorH = doorSpec.Height
	}
	if doorSpec.FrameWidth > 0 {
		frame = doorSpec.FrameWidth
	}

	floorC := spec.FloorColor.NRGBA(defaultMeshColor)
	wallC := spec.WallColor.NRGBA(defaultMeshColor)
	half := spec.Floor * 0.5
	th := spec.Thickness * 0.5
	wallH := spec.WallHeight * 0.5

	type slab struct {
		at    mgl32.Vec3
		half  mgl32.Vec3
		color color.NRGBA
		layer component.ColliderLayer
	}
	slabs := []slab{
		{mgl32.Vec3{0, -th, 0}, mgl32.Vec3{half, th, half}, floorC, component.LayerSurface},
		{mgl32.Vec3{0, wallH, -half - th}, mgl32.Vec3{half, wallH, th}, wallC, component.LayerSolid},
		{mgl32.Vec3{-half - th, wallH, 0}, mgl32.Vec3{th, wallH, half}, wallC, component.LayerSolid},
		{mgl32.Vec3{half + th, wallH, 0}, mgl32.Vec3{th, wallH, half}, wallC, component.LayerSolid},
	}
	if spec.Ceiling {
		slabs = append(slabs, slab{mgl32.Vec3{0, spec.WallHeight + th, 0}, mgl32.Vec3{half, th, half}, floorC, component.LayerSurface})
	}

	// The front wall is split around the door opening.
	part := (spec.Floor - doorW - 2*frame) * 0.5
	if part > 0 {
		px := half - part*0.5
		slabs = append(slabs,
			slab{mgl32.Vec3{-px, wallH, half + th}, mgl32.Vec3{part * 0.5, wallH, th}, wallC, component.LayerSolid},
			slab{mgl32.Vec3{px, wallH, half + th}, mgl32.Vec3{part * 0.5, wallH, th}, wallC, component.LayerSolid},
		)
	}
	if top := spec.WallHeight - doorH - frame; top > 0 {
		slabs = append(slabs, slab{
			mgl32.Vec3{0, spec.WallHeight - top*0.5, half + th},
			mgl32.Vec3{doorW*0.5 + frame, top * 0.5, th},
			wallC, component.LayerSolid,
		})
	}

	for _, s := range slabs {
		e := ecs.CreateEntity(w)
		if err := Place(w, e, s.at, 0); err != nil {
			return Room{}, fmt.Errorf("room: %w", err)
		}
		if err := addBox(w, e, s.half, s.color, s.layer); err != nil {
			return Room{}, fmt.Errorf("room: %w", err)
		}
	}

	door, err := SpawnDoor(w, mgl32.Vec3{0, 0, half}, math.Pi)
	if err != nil {
		return Room{}, err
	}
	inset := spec.SwitchInset
	if inset <= 0 {
		inset = 0.5
	}
	sw, err := SpawnSwitch(w, mgl32.Vec3{doorW*0.5 + 0.5, 1, half - inset}, math.Pi, door, switchSpec.Enabled)
	if err != nil {
		return Room{}, err
	}
	return Room{Door: door, Switch: sw}, nil
}
