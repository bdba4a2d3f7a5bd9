package system

import (
	"time"

	"github.com/milk9111/reactor/ecs"
	"github.com/milk9111/reactor/ecs/component"
	"github.com/milk9111/reactor/save"
	"github.com/rs/zerolog/log"
)

// PersistenceSystem appends finished rounds to the save file.
type PersistenceSystem struct {
	store  *save.Store
	record save.Record
	now    func() time.Time
}

// NewPersistenceSystem loads the record from store. A corrupt file is logged
// and replaced by an empty record on the next save.
func NewPersistenceSystem(store *save.Store) *PersistenceSystem {
	p := &PersistenceSystem{store: store, now: time.Now}
	if store == nil {
		return p
	}
	rec, err := store.Load()
	if err != nil {
		log.Warn().Err(err).Str("path", store.Path()).Msg("save: load record")
		rec = save.Record{}
	}
	p.record = rec
	return p
}

func (p *PersistenceSystem) Record() save.Record {
	return p.record
}

// Seed copies the saved high score onto the scoreboard.
func (p *PersistenceSystem) Seed(w *ecs.World) {
	if sb, ok := singleton(w, component.ScoreBoardComponent.Kind()); ok && p.record.High > sb.High {
		sb.High = p.record.High
	}
}

func (p *PersistenceSystem) Update(w *ecs.World) {
	if p == nil || w == nil {
		return
	}
	dirty := false
	ecs.ForEach(w, component.RoundFinishedComponent.Kind(), func(_ ecs.Entity, rf *component.RoundFinished) {
		round := p.record.AddRound(rf.Score, p.now())
		if rf.High > p.record.High {
			p.record.High = rf.High
		}
		log.Info().Str("round", round.ID.String()).Int("score", rf.Score).Int("high", p.record.High).Msg("save: round finished")
		dirty = true
	})
	if !dirty || p.store == nil {
		return
	}
	if err := p.store.Save(p.record); err != nil {
		log.Error().Err(err).Str("path", p.store.Path()).Msg("save: write record")
	}
}
