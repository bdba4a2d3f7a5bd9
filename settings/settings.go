package settings

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog/log"
)

var ErrInvalid = errors.New("settings: invalid")

type Settings struct {
	Window   Window   `toml:"window"`
	Controls Controls `toml:"controls"`
	Audio    Audio    `toml:"audio"`
	Save     Save     `toml:"save"`
}

type Window struct {
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Fullscreen bool   `toml:"fullscreen"`
	Title      string `toml:"title"`
}

type Controls struct {
	Sensitivity float32 `toml:"sensitivity"`
	WalkSpeed   float32 `toml:"walk_speed"`
	RunSpeed    float32 `toml:"run_speed"`
	Friction    float32 `toml:"friction"`
}

// Audio volumes are multipliers in [0,1] applied per channel on top of
// Master.
type Audio struct {
	Master  float64 `toml:"master"`
	Voice   float64 `toml:"voice"`
	Effects float64 `toml:"effects"`
	Music   float64 `toml:"music"`
}

type Save struct {
	Path string `toml:"path"`
}

func Default() Settings {
	return Settings{
		Window: Window{Width: 1280, Height: 720, Title: "Reactor"},
		Controls: Controls{
			Sensitivity: 0.2,
			WalkSpeed:   10,
			RunSpeed:    30,
			Friction:    0.3,
		},
		Audio: Audio{Master: 1, Voice: 1, Effects: 1, Music: 1},
		Save:  Save{Path: "reactor.save"},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Settings, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		log.Debug().Str("path", path).Msg("settings: no file, using defaults")
		return cfg, nil
	}

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Settings{}, fmt.Errorf("settings: parse %q: %w", path, err)
	}
	for _, key := range meta.Undecoded() {
		log.Warn().Str("path", path).Str("key", key.String()).Msg("settings: unknown key")
	}
	if err := cfg.Validate(); err != nil {
		return Settings{}, fmt.Errorf("settings: %q: %w", path, err)
	}
	return cfg, nil
}

// Write stores cfg at path in TOML form. The file is replaced atomically so a
// failed write never leaves a truncated config behind.
func Write(path string, cfg Settings) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("settings: encode %q: %w", path, err)
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".settings-*.toml")
	if err != nil {
		return fmt.Errorf("settings: temp file in %q: %w", dir, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("settings: write %q: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("settings: close %q: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("settings: rename to %q: %w", path, err)
	}
	return nil
}

func (s Settings) Validate() error {
	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, s.Window.Width, s.Window.Height)
	}
	if s.Controls.Sensitivity <= 0 {
		return fmt.Errorf("%w: sensitivity must be positive", ErrInvalid)
	}
	if s.Controls.WalkSpeed <= 0 || s.Controls.RunSpeed < s.Controls.WalkSpeed {
		return fmt.Errorf("%w: speeds walk=%v run=%v", ErrInvalid, s.Controls.WalkSpeed, s.Controls.RunSpeed)
	}
	if s.Controls.Friction < 0 || s.Controls.Friction > 1 {
		return fmt.Errorf("%w: friction %v outside [0,1]", ErrInvalid, s.Controls.Friction)
	}
	for name, v := range map[string]float64{
		"master":  s.Audio.Master,
		"voice":   s.Audio.Voice,
		"effects": s.Audio.Effects,
		"music":   s.Audio.Music,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: audio.%s %v outside [0,1]", ErrInvalid, name, v)
		}
	}
	return nil
}

// ChannelVolume returns the configured multiplier for an audio channel,
// including the master volume.
func (a Audio) ChannelVolume(channel string) float64 {
	v := 1.0
	switch channel {
	case "voice":
		v = a.Voice
	case "effects":
		v = a.Effects
	case "music":
		v = a.Music
	}
	return v * a.Master
}
