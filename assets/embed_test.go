package assets

import (
	"strings"
	"testing"
)

func TestEmbeddedManifest(t *testing.T) {
	m, err := LoadManifest()
	if err != nil {
		t.Fatal(err)
	}
	names := make(map[string]ClipSpec, len(m.Clips))
	for _, c := range m.Clips {
		names[c.Name] = c
	}
	for _, want := range []string{"intro", "flip", "intro_1", "intro_10", "annoyed0", "high0"} {
		c, ok := names[want]
		if !ok {
			t.Fatalf("manifest is missing %q", want)
		}
		if c.Duration <= 0 {
			t.Fatalf("clip %q has no duration", want)
		}
	}
}

func TestParseManifestRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"unnamed", "clips:\n  - file: a.ogg\n", "no name"},
		{"duplicate", "clips:\n  - name: a\n  - name: a\n", "twice"},
		{"negative", "clips:\n  - name: a\n    duration: -1\n", "negative"},
		{"not_yaml", "clips: [", "parse"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseManifest([]byte(tc.body))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestCleanAssetPath(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"flip.ogg", "flip.ogg"},
		{"assets/audio/ai/intro_1.ogg", "ai/intro_1.ogg"},
		{"assets/intro.ogg", "intro.ogg"},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			if got := cleanAssetPath(tc.in); got != tc.want {
				t.Fatalf("cleanAssetPath(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestLoadAudioPlayerMissingFile(t *testing.T) {
	if _, err := LoadAudioPlayer("does/not/exist.ogg", false); err == nil {
		t.Fatalf("expected error for missing clip")
	}
}
