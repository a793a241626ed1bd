// Package engine provides the hub Step() orchestrator that wires together
// parsing, catalog resolution, the progression store, effects, and events
// into a single command.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/nathoo/bossrush/engine/catalog"
	"github.com/nathoo/bossrush/engine/effects"
	"github.com/nathoo/bossrush/engine/events"
	"github.com/nathoo/bossrush/engine/parser"
	"github.com/nathoo/bossrush/engine/progress"
	"github.com/nathoo/bossrush/engine/stats"
	"github.com/nathoo/bossrush/logging"
	"github.com/nathoo/bossrush/types"
)

// Engine holds the catalog and the progression store behind it.
type Engine struct {
	Defs  *catalog.Defs
	Store *progress.Store
	RNG   *RNG
	log   *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger each step is traced to.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.log = logging.Component(l, "engine") }
}

// WithSeed seeds the fight simulator.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.RNG = NewRNG(seed) }
}

// New creates an engine over defs and store.
func New(defs *catalog.Defs, store *progress.Store, opts ...Option) *Engine {
	e := &Engine{
		Defs:  defs,
		Store: store,
		RNG:   NewRNG(1),
		log:   logging.Component(nil, "engine"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Status is the summary shown in the status bar.
type Status struct {
	Active     bool
	Kit        string
	Boss       int // 1-based number of the next boss
	Potions    int
	Souls      int
	Points     int
	Runs       int
	BestStreak int
}

// Status reads the current summary from the store.
func (e *Engine) Status() Status {
	p := e.Store.Player()
	m := e.Store.Meta()
	st := Status{
		Souls:      p.Souls,
		Points:     p.TalentPoints,
		Runs:       m.TotalRuns,
		BestStreak: m.BestStreak,
	}
	if run := e.Store.SavedRun(); run != nil {
		st.Active = true
		st.Kit = e.kitName(run.KitID)
		st.Boss = run.BossesDefeated + 1
		st.Potions = run.Potions
	}
	return st
}

// Bonus returns the player's current stat totals.
func (e *Engine) Bonus() types.BonusVector {
	return stats.Compute(e.Store.Player(), e.Defs)
}

// Step processes one hub command and returns the result.
func (e *Engine) Step(input string) types.Result {
	var result types.Result

	// 1. Parse input.
	intent := parser.Parse(input)
	if intent.Verb == "" {
		result.Output = append(result.Output, "What do you want to do?")
		return result
	}

	// 2. Run the verb against the store.
	evts, out := e.dispatchVerb(intent)
	result.Events = append(result.Events, evts...)
	result.Output = append(result.Output, out...)

	// 3. Run catalog handlers for the emitted events (single pass).
	if fired := events.Dispatch(evts, e.Defs, e.Store.Player(), e.Store.Meta()); len(fired) > 0 {
		bonus := e.Bonus()
		for _, f := range fired {
			ctx := effects.Context{
				Bosses:    intOf(f.Event.Data["bosses"]),
				SoulBonus: bonus[types.StatSoulBonus],
				Data:      f.Event.Data,
			}
			evts2, out2 := effects.Apply(e.Store, f.Effects, ctx)
			result.Effects = append(result.Effects, f.Effects...)
			result.Events = append(result.Events, evts2...)
			result.Output = append(result.Output, out2...)
		}
	}

	e.log.Debug("step", "input", input, "verb", intent.Verb, "events", len(result.Events))
	return result
}

// dispatchVerb routes an intent to its handler. Returns events emitted
// and output text.
func (e *Engine) dispatchVerb(intent types.Intent) ([]types.Event, []string) {
	switch intent.Verb {
	case "start":
		return e.startRun(intent.Object)
	case "defeat":
		return e.defeatBoss(intent)
	case "fight":
		return e.fightBoss()
	case "checkpoint":
		return e.checkpoint(intent)
	case "die":
		return e.die()
	case "reset":
		return e.resetRun()
	case "buy":
		return e.buy(intent.Object)
	case "equip":
		return e.equip(intent.Object, intent.Target)
	case "unequip":
		return e.unequip(intent.Object)
	case "unlock":
		return e.unlock(intent.Object)
	case "run":
		return nil, e.viewRun()
	case "meta":
		return nil, e.viewMeta()
	case "stats":
		return nil, e.viewStats()
	case "gear":
		return nil, e.viewGear()
	case "shop":
		return nil, e.viewShop(intent.Object)
	case "talents":
		return nil, e.viewTalents(intent.Object)
	case "boss":
		return nil, e.viewBoss(intent.Object)
	case "help":
		return nil, helpText()
	default:
		return nil, []string{fmt.Sprintf("I don't know how to %q. Type 'help' for commands.", intent.Verb)}
	}
}

func (e *Engine) kitName(id string) string {
	if k, ok := e.Defs.Kits[id]; ok && k.Name != "" {
		return k.Name
	}
	return id
}

func intOf(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	default:
		return 0
	}
}
