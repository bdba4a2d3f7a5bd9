package assets

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"gopkg.in/yaml.v3"
)

const SampleRate = 44100

// AudioDir is where clip files are looked up, relative to the working
// directory.
var AudioDir = filepath.Join("assets", "audio")

//go:embed manifest.yaml
var assetsFS embed.FS

var (
	audioContextOnce sync.Once
	audioContext     *audio.Context
)

// AudioContext returns the process-wide audio context, creating it on first
// use.
func AudioContext() *audio.Context {
	audioContextOnce.Do(func() {
		if ctx := audio.CurrentContext(); ctx != nil {
			audioContext = ctx
			return
		}
		audioContext = audio.NewContext(SampleRate)
	})
	return audioContext
}

type ClipSpec struct {
	Name     string  `yaml:"name"`
	File     string  `yaml:"file"`
	Duration float32 `yaml:"duration"`
	Volume   float64 `yaml:"volume"`
}

type Manifest struct {
	Clips []ClipSpec `yaml:"clips"`
}

// LoadManifest reads assets/manifest.yaml from disk when present and falls
// back to the embedded copy.
func LoadManifest() (Manifest, error) {
	data, err := os.ReadFile(filepath.Join("assets", "manifest.yaml"))
	if err != nil {
		data, err = assetsFS.ReadFile("manifest.yaml")
		if err != nil {
			return Manifest{}, fmt.Errorf("assets: read manifest: %w", err)
		}
	}
	return ParseManifest(data)
}

func ParseManifest(data []byte) (Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("assets: parse manifest: %w", err)
	}
	seen := make(map[string]bool, len(m.Clips))
	for i, c := range m.Clips {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return Manifest{}, fmt.Errorf("assets: manifest clip %d has no name", i)
		}
		if seen[name] {
			return Manifest{}, fmt.Errorf("assets: manifest clip %q listed twice", name)
		}
		if c.Duration < 0 {
			return Manifest{}, fmt.Errorf("assets: manifest clip %q has negative duration", name)
		}
		seen[name] = true
	}
	return m, nil
}

// LoadAudio reads a clip file by audio-relative path.
func LoadAudio(path string) ([]byte, error) {
	return os.ReadFile(filepath.Join(AudioDir, filepath.FromSlash(cleanAssetPath(path))))
}

// LoadAudioPlayer decodes a wav or ogg clip and creates a player for it. A
// looping player repeats the whole stream.
func LoadAudioPlayer(path string, loop bool) (*audio.Player, error) {
	b, err := LoadAudio(path)
	if err != nil {
		return nil, err
	}

	ctx := AudioContext()
	clean := strings.ToLower(cleanAssetPath(path))
	reader := bytes.NewReader(b)

	switch {
	case strings.HasSuffix(clean, ".wav"):
		stream, err := wav.DecodeWithSampleRate(ctx.SampleRate(), reader)
		if err != nil {
			return nil, fmt.Errorf("decode wav %q: %w", path, err)
		}
		if loop {
			return ctx.NewPlayer(audio.NewInfiniteLoop(stream, stream.Length()))
		}
		return ctx.NewPlayer(stream)
	case strings.HasSuffix(clean, ".ogg"):
		stream, err := vorbis.DecodeWithSampleRate(ctx.SampleRate(), reader)
		if err != nil {
			return nil, fmt.Errorf("decode ogg %q: %w", path, err)
		}
		if loop {
			return ctx.NewPlayer(audio.NewInfiniteLoop(stream, stream.Length()))
		}
		return ctx.NewPlayer(stream)
	}

	// Fallback for already-decoded PCM assets in Ebiten's native format.
	return ctx.NewPlayerFromBytes(b), nil
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "assets/audio/"); ok {
		return after
	}
	if after, ok := strings.CutPrefix(s, "assets/"); ok {
		return after
	}
	return s
}
