package settings

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		body    *string
		wantErr error
		check   func(t *testing.T, s Settings)
	}{
		{
			name: "missing_file_defaults",
			check: func(t *testing.T, s Settings) {
				if s != Default() {
					t.Fatalf("expected defaults, got %+v", s)
				}
			},
		},
		{
			name: "partial_override",
			body: strPtr("[controls]\nsensitivity = 0.5\n\n[audio]\nvoice = 0.25\n"),
			check: func(t *testing.T, s Settings) {
				if s.Controls.Sensitivity != 0.5 {
					t.Fatalf("sensitivity = %v", s.Controls.Sensitivity)
				}
				if s.Controls.WalkSpeed != 10 {
					t.Fatalf("walk speed default lost: %v", s.Controls.WalkSpeed)
				}
				if s.Audio.Voice != 0.25 || s.Audio.Master != 1 {
					t.Fatalf("audio = %+v", s.Audio)
				}
			},
		},
		{
			name:    "out_of_range",
			body:    strPtr("[audio]\nmaster = 3.0\n"),
			wantErr: ErrInvalid,
		},
		{
			name: "malformed",
			body: strPtr("[window\nwidth = "),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "absent.toml")
			if tc.body != nil {
				path = writeFile(t, *tc.body)
			}
			s, err := Load(path)
			if tc.check == nil {
				if err == nil {
					t.Fatalf("expected error")
				}
				if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tc.check(t, s)
		})
	}
}

func TestWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.toml")
	cfg := Default()
	cfg.Window.Fullscreen = true
	cfg.Save.Path = "elsewhere.save"
	if err := Write(path, cfg); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != cfg {
		t.Fatalf("round trip mismatch: %+v vs %+v", got, cfg)
	}
}

func TestWriteReportsFailures(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "settings.toml")
	if err := Write(existing, Default()); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
	}{
		{"missing directory", filepath.Join(dir, "nope", "settings.toml")},
		{"target is a directory", dir},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := Write(tc.path, Default()); err == nil {
				t.Fatalf("Write(%q) should fail", tc.path)
			}
		})
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "settings.toml" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("temp files left behind: %v", names)
	}
}

func TestChannelVolume(t *testing.T) {
	a := Audio{Master: 0.5, Voice: 0.8, Effects: 0.4, Music: 1}
	tests := []struct {
		channel string
		want    float64
	}{
		{"voice", 0.4},
		{"effects", 0.2},
		{"music", 0.5},
		{"other", 0.5},
	}
	for _, tc := range tests {
		t.Run(tc.channel, func(t *testing.T) {
			if got := a.ChannelVolume(tc.channel); got < tc.want-1e-9 || got > tc.want+1e-9 {
				t.Fatalf("ChannelVolume(%q) = %v, want %v", tc.channel, got, tc.want)
			}
		})
	}
}

func strPtr(s string) *string {
	return &s
}
