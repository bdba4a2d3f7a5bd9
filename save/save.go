// Package save persists the high score and recent round history.
package save

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/vmihailenco/msgpack/v5"
)

// ErrCorrupt is returned when the save file exists but cannot be decoded.
var ErrCorrupt = errors.New("save: corrupt file")

const historyLimit = 10

type Round struct {
	ID      ulid.ULID `msgpack:"id"`
	Score   int       `msgpack:"score"`
	EndedAt time.Time `msgpack:"ended_at"`
}

type Record struct {
	High   int     `msgpack:"high"`
	Rounds []Round `msgpack:"rounds"`
}

// AddRound appends a finished round, keeping only the most recent ones, and
// raises High when the round beat it.
func (r *Record) AddRound(score int, at time.Time) Round {
	round := Round{ID: ulid.MustNew(ulid.Timestamp(at), ulid.DefaultEntropy()), Score: score, EndedAt: at.UTC()}
	r.Rounds = append(r.Rounds, round)
	if len(r.Rounds) > historyLimit {
		r.Rounds = append([]Round(nil), r.Rounds[len(r.Rounds)-historyLimit:]...)
	}
	if score > r.High {
		r.High = score
	}
	return round
}

type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Load returns the stored record. A missing file yields an empty record.
func (s *Store) Load() (Record, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return Record{}, nil
	}
	if err != nil {
		return Record{}, fmt.Errorf("save: read %q: %w", s.path, err)
	}
	var rec Record
	if err := msgpack.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("%w: %q: %v", ErrCorrupt, s.path, err)
	}
	return rec, nil
}

// Save writes rec through a temp file and rename so a crash never leaves a
// half-written save behind.
func (s *Store) Save(rec Record) error {
	data, err := msgpack.Marshal(&rec)
	if err != nil {
		return fmt.Errorf("save: encode: %w", err)
	}
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".reactor-save-*")
	if err != nil {
		return fmt.Errorf("save: temp file in %q: %w", dir, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("save: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("save: close: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("save: rename to %q: %w", s.path, err)
	}
	return nil
}
