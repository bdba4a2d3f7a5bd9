package system

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/milk9111/reactor/ecs"
	"github.com/milk9111/reactor/ecs/component"
	"github.com/milk9111/reactor/save"
)

func TestPersistenceRecordsRounds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reactor.sav")
	store := save.NewStore(path)
	if err := store.Save(save.Record{High: 4}); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	w := newTestWorld(t)
	p := NewPersistenceSystem(store)
	p.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	p.Seed(w)
	sb, _ := singleton(w, component.ScoreBoardComponent.Kind())
	if sb.High != 4 {
		t.Fatalf("seeded high %d", sb.High)
	}

	ev := ecs.CreateEntity(w)
	_ = ecs.Add(w, ev, component.RoundFinishedComponent.Kind(), &component.RoundFinished{Score: 7, High: 7})
	p.Update(w)

	rec, err := save.NewStore(path).Load()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if rec.High != 7 || len(rec.Rounds) != 1 || rec.Rounds[0].Score != 7 {
		t.Fatalf("saved record %+v", rec)
	}
	if !rec.Rounds[0].EndedAt.Equal(p.now()) {
		t.Fatalf("round time %v", rec.Rounds[0].EndedAt)
	}

	// Nothing finished, nothing written.
	if err := os.Remove(path); err != nil {
		t.Fatalf("remove: %v", err)
	}
	NewEventCleanupSystem().Update(w)
	p.Update(w)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("idle frame rewrote the save file")
	}
}

func TestPersistenceCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reactor.sav")
	if err := os.WriteFile(path, []byte{0xc1, 0xff, 0x00}, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	p := NewPersistenceSystem(save.NewStore(path))
	if rec := p.Record(); rec.High != 0 || len(rec.Rounds) != 0 {
		t.Fatalf("corrupt file should start empty, got %+v", rec)
	}
}

func TestPersistenceWithoutStore(t *testing.T) {
	w := newTestWorld(t)
	p := NewPersistenceSystem(nil)
	ev := ecs.CreateEntity(w)
	_ = ecs.Add(w, ev, component.RoundFinishedComponent.Kind(), &component.RoundFinished{Score: 2, High: 2})
	p.Update(w)
	if p.Record().High != 2 {
		t.Fatalf("record %+v", p.Record())
	}
}
