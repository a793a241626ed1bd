// Package progress implements the durable run, lifetime, and player
// progression store. Every read and write goes straight to the storage
// backend; a broken or missing record reads as its default value and a
// failed write leaves the previous record in place.
package progress

import (
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/nathoo/bossrush/engine/save"
	"github.com/nathoo/bossrush/engine/storage"
	"github.com/nathoo/bossrush/logging"
	"github.com/nathoo/bossrush/types"
)

// Boss scaling constants.
const (
	BaseBossHealth   = 2000
	BaseBossDamage   = 25
	HealthGrowthPerN = 0.25
	DamageGrowthPerN = 0.15
	StartingPotions  = 5
)

// Store owns the run, meta, and player records of one save slot.
type Store struct {
	backend storage.Backend
	log     *slog.Logger
	now     func() time.Time
	newID   func() string
	prereqs map[string]string
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger storage failures are reported to.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.log = logging.Component(l, "progress") }
}

// WithClock overrides the time source used for savedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDs overrides the run ID generator.
func WithIDs(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// WithTalents supplies the talent catalog UnlockTalent checks prereqs against.
func WithTalents(talents map[string]types.TalentDef) Option {
	return func(s *Store) {
		s.prereqs = make(map[string]string, len(talents))
		for id, t := range talents {
			if t.Prereq != "" {
				s.prereqs[id] = t.Prereq
			}
		}
	}
}

// New creates a store over backend. Without WithTalents the store has no
// prereq table and UnlockTalent only checks points; callers that unlock
// talents must pass the catalog.
func New(backend storage.Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		log:     logging.Component(nil, "progress"),
		now:     time.Now,
		newID:   uuid.NewString,
		prereqs: map[string]string{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Meta returns lifetime stats, or zeros when the record is absent or unreadable.
func (s *Store) Meta() types.MetaStats {
	m, err := load(s.backend, save.KeyMeta, save.DecodeMeta)
	if err != nil {
		s.report("read meta", err)
		return types.MetaStats{}
	}
	return m
}

// SavedRun returns the active run, or nil.
func (s *Store) SavedRun() *types.RunState {
	r, err := load(s.backend, save.KeyRun, save.DecodeRun)
	if err != nil {
		s.report("read run", err)
		return nil
	}
	if r.KitID == "" {
		return nil
	}
	return &r
}

// StartNewRun records a new run attempt and replaces any unfinished run.
// The replaced run does not count as a death.
func (s *Store) StartNewRun(kitID string) types.RunState {
	meta := s.Meta()
	meta.TotalRuns++
	s.writeMeta(meta)

	run := types.RunState{
		RunID:          s.newID(),
		KitID:          kitID,
		BossesDefeated: 0,
		Potions:        StartingPotions,
		Health:         nil,
		SavedAt:        s.now(),
	}
	s.writeRun(run)
	s.log.Info("run started", "run", run.RunID, "kit", kitID, "total_runs", meta.TotalRuns)
	return run
}

// OnBossDefeated credits a boss kill to the active run, then to lifetime
// stats. The run write lands first and lifetime stats are left alone when
// it fails; if only the meta write is lost the streak lags by one until
// the next kill.
func (s *Store) OnBossDefeated(snap types.Snapshot) {
	run := s.SavedRun()
	if run == nil {
		return
	}
	run.BossesDefeated++
	applySnapshot(run, snap, s.now())
	if !s.writeRun(*run) {
		return
	}

	meta := s.Meta()
	meta.TotalBossKills++
	if run.BossesDefeated > meta.BestStreak {
		meta.BestStreak = run.BossesDefeated
	}
	s.writeMeta(meta)
	s.log.Info("boss defeated", "run", run.RunID, "bosses", run.BossesDefeated, "best_streak", meta.BestStreak)
}

// SaveRunState checkpoints health and potions without touching lifetime stats.
func (s *Store) SaveRunState(snap types.Snapshot) {
	run := s.SavedRun()
	if run == nil {
		return
	}
	applySnapshot(run, snap, s.now())
	s.writeRun(*run)
}

// OnPlayerDeath counts the death, then ends the run. The death counter
// is written first, so an interrupted call may count a death twice.
func (s *Store) OnPlayerDeath() {
	meta := s.Meta()
	meta.TotalDeaths++
	s.writeMeta(meta)
	s.ClearRun()
	s.log.Info("player died", "total_deaths", meta.TotalDeaths)
}

// ClearRun removes the active run, if any.
func (s *Store) ClearRun() {
	if err := s.backend.Delete(save.KeyRun); err != nil {
		s.report("clear run", storage.Wrap(storage.KindWrite, save.KeyRun, err))
	}
}

// BossConfig returns the stat block of the boss at 0-based index n of a run.
func BossConfig(n int) types.BossConfig {
	if n < 0 {
		n = 0
	}
	return types.BossConfig{
		Health: int(math.Round(BaseBossHealth * (1 + float64(n)*HealthGrowthPerN))),
		Damage: int(math.Round(BaseBossDamage * (1 + float64(n)*DamageGrowthPerN))),
	}
}

func applySnapshot(run *types.RunState, snap types.Snapshot, now time.Time) {
	h := snap.Health
	run.Health = &h
	run.Potions = snap.Potions
	if run.Potions < 0 {
		run.Potions = 0
	}
	run.SavedAt = now
}

// load reads and decodes one record. A missing record yields the zero
// value and no error; every other failure is a *storage.Error.
func load[T any](b storage.Backend, key string, decode func([]byte) (T, error)) (T, error) {
	var zero T
	data, err := b.Get(key)
	if errors.Is(err, storage.ErrNotFound) {
		return zero, nil
	}
	if err != nil {
		return zero, storage.Wrap(storage.KindRead, key, err)
	}
	v, err := decode(data)
	if err != nil {
		return zero, storage.Wrap(storage.KindCorrupt, key, err)
	}
	return v, nil
}

func store[T any](b storage.Backend, key string, v T, encode func(T) ([]byte, error)) error {
	data, err := encode(v)
	if err != nil {
		return storage.Wrap(storage.KindEncode, key, err)
	}
	return storage.Wrap(storage.KindWrite, key, b.Set(key, data))
}

// writeRun persists r and reports whether the write landed.
func (s *Store) writeRun(r types.RunState) bool {
	err := store(s.backend, save.KeyRun, r, save.EncodeRun)
	s.report("write run", err)
	return err == nil
}

func (s *Store) writeMeta(m types.MetaStats) {
	s.report("write meta", store(s.backend, save.KeyMeta, m, save.EncodeMeta))
}

func (s *Store) report(op string, err error) {
	if err == nil {
		return
	}
	attrs := []any{"op", op, "err", err}
	var se *storage.Error
	if errors.As(err, &se) {
		attrs = append(attrs, "key", se.Key, "kind", se.Kind.String())
	}
	s.log.Warn("storage failure", attrs...)
}
