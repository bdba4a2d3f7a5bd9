package entity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/reactor/ecs"
	"github.com/milk9111/reactor/ecs/component"
	"github.com/milk9111/reactor/levels"
	"github.com/rs/zerolog/log"
)

// RunLevelScript assembles a level by running levels/<name>.tengo with the
// engine functions bound as globals. A script error aborts the level; a
// failing engine call only logs and returns false to the script.
func RunLevelScript(w *ecs.World, name string) error {
	src, err := levels.LoadScript(name)
	if err != nil {
		return err
	}
	return RunLevelSource(w, name, src)
}

func RunLevelSource(w *ecs.World, name string, src []byte) error {
	if w == nil {
		return fmt.Errorf("level %q: world is nil", name)
	}
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	for fnName, fn := range levelFunctions(w, name) {
		if err := script.Add(fnName, &tengo.UserFunction{Name: fnName, Value: fn}); err != nil {
			return fmt.Errorf("level %q: bind %s: %w", name, fnName, err)
		}
	}

	if _, err := script.Run(); err != nil {
		return fmt.Errorf("level %q: %w", name, err)
	}
	return nil
}

type levelFunc = tengo.CallableFunc

func levelFunctions(w *ecs.World, script string) map[string]levelFunc {
	wrap := func(fn string, call func(args []tengo.Object) (tengo.Object, error)) levelFunc {
		return func(args ...tengo.Object) (tengo.Object, error) {
			out, err := call(args)
			if err != nil {
				log.Warn().Err(err).Str("script", script).Str("func", fn).Msg("level: script")
				return tengo.FalseValue, nil
			}
			return out, nil
		}
	}

	return map[string]levelFunc{
		"camera": wrap("camera", func(args []tengo.Object) (tengo.Object, error) {
			v, err := floats(args, 6)
			if err != nil {
				return nil, err
			}
			return entityObject(SpawnCamera(w, mgl32.Vec3{v[0], v[1], v[2]}, mgl32.Vec3{v[3], v[4], v[5]}))
		}),
		"training_room": wrap("training_room", func(args []tengo.Object) (tengo.Object, error) {
			room, err := SpawnTrainingRoom(w)
			if err != nil {
				return nil, err
			}
			if len(args) > 0 && !args[0].IsFalsy() {
				if sw, ok := ecs.Get(w, room.Switch, component.SwitchComponent.Kind()); ok {
					sw.State = component.SwitchEnabled
				}
			}
			return &tengo.ImmutableMap{Value: map[string]tengo.Object{
				"door":   &tengo.Int{Value: int64(room.Door)},
				"switch": &tengo.Int{Value: int64(room.Switch)},
			}}, nil
		}),
		"door": wrap("door", func(args []tengo.Object) (tengo.Object, error) {
			v, err := floats(args, 4)
			if err != nil {
				return nil, err
			}
			return entityObject(SpawnDoor(w, mgl32.Vec3{v[0], v[1], v[2]}, degToRad(v[3])))
		}),
		"wall_switch": wrap("wall_switch", func(args []tengo.Object) (tengo.Object, error) {
			if len(args) < 5 {
				return nil, tengo.ErrWrongNumArguments
			}
			v, err := floats(args[:4], 4)
			if err != nil {
				return nil, err
			}
			target, err := entityArg(w, args[4])
			if err != nil {
				return nil, err
			}
			enabled := true
			if len(args) > 5 {
				enabled = !args[5].IsFalsy()
			}
			return entityObject(SpawnSwitch(w, mgl32.Vec3{v[0], v[1], v[2]}, degToRad(v[3]), target, enabled))
		}),
		"prop": wrap("prop", func(args []tengo.Object) (tengo.Object, error) {
			if len(args) != 5 {
				return nil, tengo.ErrWrongNumArguments
			}
			name, ok := tengo.ToString(args[0])
			if !ok {
				return nil, fmt.Errorf("prop name must be a string")
			}
			v, err := floats(args[1:], 4)
			if err != nil {
				return nil, err
			}
			return entityObject(SpawnProp(w, name, mgl32.Vec3{v[0], v[1], v[2]}, degToRad(v[3])))
		}),
		"pellet": wrap("pellet", func(args []tengo.Object) (tengo.Object, error) {
			v, err := floats(args, 4)
			if err != nil {
				return nil, err
			}
			return entityObject(SpawnPellet(w, mgl32.Vec3{v[0], v[1], v[2]}, mgl32.Vec3{}, v[3]))
		}),
		"blaster": wrap("blaster", func(args []tengo.Object) (tengo.Object, error) {
			if len(args) != 5 {
				return nil, tengo.ErrWrongNumArguments
			}
			v, err := floats(args[:4], 4)
			if err != nil {
				return nil, err
			}
			return entityObject(SpawnBlaster(w, mgl32.Vec3{v[0], v[1], v[2]}, degToRad(v[3]), !args[4].IsFalsy()))
		}),
		"nexus": wrap("nexus", func(args []tengo.Object) (tengo.Object, error) {
			if len(args) != 4 {
				return nil, tengo.ErrWrongNumArguments
			}
			v, err := floats(args[:3], 3)
			if err != nil {
				return nil, err
			}
			modeName, _ := tengo.ToString(args[3])
			mode, err := parseNexusMode(modeName)
			if err != nil {
				return nil, err
			}
			return entityObject(SpawnNexus(w, mgl32.Vec3{v[0], v[1], v[2]}, mode))
		}),
		"dispenser": wrap("dispenser", func(args []tengo.Object) (tengo.Object, error) {
			v, err := floats(args, 4)
			if err != nil {
				return nil, err
			}
			return entityObject(SpawnDispenser(w, mgl32.Vec3{v[0], v[1], v[2]}, degToRad(v[3])))
		}),
		"reactor": wrap("reactor", func(args []tengo.Object) (tengo.Object, error) {
			v, err := floats(args, 3)
			if err != nil {
				return nil, err
			}
			return entityObject(SpawnReactor(w, mgl32.Vec3{v[0], v[1], v[2]}))
		}),
		"tutorial": wrap("tutorial", func(args []tengo.Object) (tengo.Object, error) {
			return entityObject(SpawnTutorial(w))
		}),
		"set_target": wrap("set_target", func(args []tengo.Object) (tengo.Object, error) {
			if len(args) != 2 {
				return nil, tengo.ErrWrongNumArguments
			}
			sw, err := entityArg(w, args[0])
			if err != nil {
				return nil, err
			}
			target, err := entityArg(w, args[1])
			if err != nil {
				return nil, err
			}
			if err := SetSwitchTarget(w, sw, target); err != nil {
				return nil, err
			}
			return tengo.TrueValue, nil
		}),
		"log": func(args ...tengo.Object) (tengo.Object, error) {
			parts := make([]string, 0, len(args))
			for _, a := range args {
				s, _ := tengo.ToString(a)
				parts = append(parts, s)
			}
			log.Info().Str("script", script).Msg(strings.Join(parts, " "))
			return tengo.UndefinedValue, nil
		},
	}
}

var errNotEntity = errors.New("argument is not a live entity")

func entityObject(e ecs.Entity, err error) (tengo.Object, error) {
	if err != nil {
		return nil, err
	}
	return &tengo.Int{Value: int64(e)}, nil
}

func entityArg(w *ecs.World, obj tengo.Object) (ecs.Entity, error) {
	n, ok := tengo.ToInt64(obj)
	if !ok {
		return 0, errNotEntity
	}
	e := ecs.Entity(uint64(n))
	if !ecs.IsAlive(w, e) {
		return 0, fmt.Errorf("%w: %d", errNotEntity, n)
	}
	return e, nil
}

func floats(args []tengo.Object, n int) ([]float32, error) {
	if len(args) != n {
		return nil, tengo.ErrWrongNumArguments
	}
	out := make([]float32, n)
	for i, a := range args {
		f, ok := tengo.ToFloat64(a)
		if !ok {
			return nil, fmt.Errorf("argument %d: want number, got %s", i, a.TypeName())
		}
		out[i] = float32(f)
	}
	return out, nil
}
