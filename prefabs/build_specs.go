package prefabs

import "gopkg.in/yaml.v3"

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	Position   Vec3    `yaml:"position"`
	YawDegrees float32 `yaml:"yaw_degrees"`
	Scale      *Vec3   `yaml:"scale"`
}

type MeshComponentSpec struct {
	Kind        string     `yaml:"kind"`
	HalfExtents Vec3       `yaml:"half_extents"`
	Radius      float32    `yaml:"radius"`
	LineEnd     Vec3       `yaml:"line_end"`
	Color       *YAMLColor `yaml:"color"`
	Hidden      bool       `yaml:"hidden"`
}

type ColliderComponentSpec struct {
	Shape       string  `yaml:"shape"`
	HalfExtents Vec3    `yaml:"half_extents"`
	Radius      float32 `yaml:"radius"`
	HalfHeight  float32 `yaml:"half_height"`
	HalfWidth   float32 `yaml:"half_width"`
	Offset      Vec3    `yaml:"offset"`
	Layer       string  `yaml:"layer"`
	Disabled    bool    `yaml:"disabled"`
}

type RigidBodyComponentSpec struct {
	Mass        float32 `yaml:"mass"`
	Restitution float32 `yaml:"restitution"`
	Friction    float32 `yaml:"friction"`
}

type CameraComponentSpec struct {
	FOVDegrees float32 `yaml:"fov_degrees"`
	Near       float32 `yaml:"near"`
	Far        float32 `yaml:"far"`
}

type CameraControllerComponentSpec struct {
	Sensitivity   *float32 `yaml:"sensitivity"`
	WalkSpeed     *float32 `yaml:"walk_speed"`
	RunSpeed      *float32 `yaml:"run_speed"`
	Friction      *float32 `yaml:"friction"`
	EyeHeight     *float32 `yaml:"eye_height"`
	KneeHeight    *float32 `yaml:"knee_height"`
	ProbeDistance *float32 `yaml:"probe_distance"`
}

type OutlineComponentSpec struct {
	Color *YAMLColor `yaml:"color"`
	Width float32    `yaml:"width"`
}

type InteractionTimeComponentSpec struct {
	Seconds float32 `yaml:"seconds"`
}

type PelletComponentSpec struct {
	Value float32 `yaml:"value"`
}

type BlasterComponentSpec struct {
	Enabled       bool       `yaml:"enabled"`
	Change        float32    `yaml:"change"`
	Range         float32    `yaml:"range"`
	HoldOffset    *Vec3      `yaml:"hold_offset"`
	PositiveColor *YAMLColor `yaml:"positive_color"`
	NegativeColor *YAMLColor `yaml:"negative_color"`
}

type DispenserComponentSpec struct {
	DelayMin     float32 `yaml:"delay_min"`
	DelayMax     float32 `yaml:"delay_max"`
	VelXMin      float32 `yaml:"vel_x_min"`
	VelXMax      float32 `yaml:"vel_x_max"`
	Spread       float32 `yaml:"spread"`
	SpawnFrom    *Vec3   `yaml:"spawn_from"`
	RoundPellets int     `yaml:"round_pellets"`
	RoundSeconds float32 `yaml:"round_seconds"`
}

type ReactorComponentSpec struct {
	Target    float32 `yaml:"target"`
	Tolerance float32 `yaml:"tolerance"`
	Intake    Vec3    `yaml:"intake"`
}

type NexusComponentSpec struct {
	Mode string `yaml:"mode"`
}

type VoiceLinesComponentSpec struct {
	Annoyed   []string `yaml:"annoyed"`
	HighScore []string `yaml:"high_score"`
	Volume    float64  `yaml:"volume"`
}

type TweenComponentSpec struct {
	From     Vec3    `yaml:"from"`
	To       Vec3    `yaml:"to"`
	Duration float32 `yaml:"duration"`
	Ease     string  `yaml:"ease"`
	Mode     string  `yaml:"mode"`
}

type SpinComponentSpec struct {
	DegreesPerSecond float32 `yaml:"degrees_per_second"`
}

type SpatialEmitterComponentSpec struct {
	Clip        string  `yaml:"clip"`
	Channel     string  `yaml:"channel"`
	Volume      float64 `yaml:"volume"`
	MaxDistance float32 `yaml:"max_distance"`
}
