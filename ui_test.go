package main

import "testing"

func TestLoadingLabel(t *testing.T) {
	tests := []struct {
		frame int
		want  string
	}{
		{frame: -5, want: "Loading."},
		{frame: 0, want: "Loading."},
		{frame: loadingDotFrames - 1, want: "Loading."},
		{frame: loadingDotFrames, want: "Loading.."},
		{frame: 2 * loadingDotFrames, want: "Loading..."},
		{frame: 3 * loadingDotFrames, want: "Loading."},
	}
	for _, tt := range tests {
		if got := loadingLabel(tt.frame); got != tt.want {
			t.Errorf("loadingLabel(%d) = %q, want %q", tt.frame, got, tt.want)
		}
	}
}

func TestLoadingOutlastsOneDotCycle(t *testing.T) {
	if loadingMinFrames < 3*loadingDotFrames {
		t.Fatalf("loading screen ends after %d frames, before one full dot cycle of %d", loadingMinFrames, 3*loadingDotFrames)
	}
}
