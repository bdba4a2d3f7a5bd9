package prefabs

// Composite prefabs spawn several entities, so they are plain config records
// consumed by dedicated builders rather than component maps.

type DoorSpec struct {
	Height     float32    `yaml:"height"`
	Width      float32    `yaml:"width"`
	Thickness  float32    `yaml:"thickness"`
	FrameWidth float32    `yaml:"frame_width"`
	FrameDepth float32    `yaml:"frame_depth"`
	Duration   float32    `yaml:"duration"`
	FrameColor *YAMLColor `yaml:"frame_color"`
	PanelColor *YAMLColor `yaml:"panel_color"`
}

type SwitchSpec struct {
	Size        Vec3       `yaml:"size"`
	ButtonSize  float32    `yaml:"button_size"`
	Sound       string     `yaml:"sound"`
	Cooldown    float32    `yaml:"cooldown"`
	BaseColor   *YAMLColor `yaml:"base_color"`
	ButtonColor *YAMLColor `yaml:"button_color"`
	Enabled     bool       `yaml:"enabled"`
}

type RoomSpec struct {
	Floor       float32    `yaml:"floor"`
	Thickness   float32    `yaml:"thickness"`
	WallHeight  float32    `yaml:"wall_height"`
	Ceiling     bool       `yaml:"ceiling"`
	FloorColor  *YAMLColor `yaml:"floor_color"`
	WallColor   *YAMLColor `yaml:"wall_color"`
	SwitchInset float32    `yaml:"switch_inset"`
}

type PropSpec struct {
	Size   Vec3       `yaml:"size"`
	Color  *YAMLColor `yaml:"color"`
	Static *bool      `yaml:"static"`
}

type PropsSpec struct {
	Props map[string]PropSpec `yaml:"props"`
}

type TutorialGateSpec struct {
	Step   int      `yaml:"step"`
	Unlock []string `yaml:"unlock"`
	Wait   string   `yaml:"wait"`
}

type TutorialSpec struct {
	Lines        []string           `yaml:"lines"`
	InitialDelay float32            `yaml:"initial_delay"`
	Gap          float32            `yaml:"gap"`
	Volume       float64            `yaml:"volume"`
	Channel      string             `yaml:"channel"`
	Gates        []TutorialGateSpec `yaml:"gates"`
}

type CursorSpec struct {
	HoverColor    *YAMLColor `yaml:"hover_color"`
	ClickedColor  *YAMLColor `yaml:"clicked_color"`
	DisabledColor *YAMLColor `yaml:"disabled_color"`
	Width         float32    `yaml:"width"`
	Range         float32    `yaml:"range"`
}
