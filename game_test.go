package main

import (
	"testing"
	"time"

	"github.com/milk9111/reactor/prefabs"
)

func TestGameCloseStopsWatcher(t *testing.T) {
	w, err := prefabs.NewWatcher(t.TempDir())
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	g := &Game{watcher: w}
	if err := g.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-w.Events:
			if !ok {
				if err := g.Close(); err != nil {
					t.Fatalf("second Close: %v", err)
				}
				return
			}
		case <-deadline:
			t.Fatalf("watcher events not closed after Close")
		}
	}
}

func TestGameCloseWithoutWatcher(t *testing.T) {
	if err := (&Game{}).Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}
