package save

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestStoreLoadSave(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(filepath.Join(dir, "reactor.save"))

	rec, err := store.Load()
	if err != nil {
		t.Fatalf("missing file should load empty: %v", err)
	}
	if rec.High != 0 || len(rec.Rounds) != 0 {
		t.Fatalf("expected empty record, got %+v", rec)
	}

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rec.AddRound(7, at)
	rec.AddRound(3, at.Add(time.Minute))
	if err := store.Save(rec); err != nil {
		t.Fatal(err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if got.High != 7 {
		t.Fatalf("high = %d, want 7", got.High)
	}
	if len(got.Rounds) != 2 || got.Rounds[1].Score != 3 {
		t.Fatalf("rounds = %+v", got.Rounds)
	}
	if got.Rounds[0].ID != rec.Rounds[0].ID {
		t.Fatalf("round id changed across save: %v vs %v", got.Rounds[0].ID, rec.Rounds[0].ID)
	}
	if !got.Rounds[0].EndedAt.Equal(at) {
		t.Fatalf("ended at = %v, want %v", got.Rounds[0].EndedAt, at)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %v", entries)
	}
}

func TestStoreCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reactor.save")
	if err := os.WriteFile(path, []byte{0xc1, 0xff, 0x00}, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewStore(path).Load(); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}
}

func TestAddRoundKeepsRecentHistory(t *testing.T) {
	var rec Record
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < historyLimit+5; i++ {
		rec.AddRound(i, start.Add(time.Duration(i)*time.Second))
	}
	if len(rec.Rounds) != historyLimit {
		t.Fatalf("expected %d rounds, got %d", historyLimit, len(rec.Rounds))
	}
	if rec.Rounds[0].Score != 5 {
		t.Fatalf("oldest kept round score = %d, want 5", rec.Rounds[0].Score)
	}
	if rec.High != historyLimit+4 {
		t.Fatalf("high = %d", rec.High)
	}
}
