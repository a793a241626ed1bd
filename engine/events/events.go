// Package events implements single-pass event handler dispatch.
// Event handlers produce additional effects but do not recurse.
package events

import (
	"github.com/nathoo/bossrush/engine/catalog"
	"github.com/nathoo/bossrush/engine/rules"
	"github.com/nathoo/bossrush/types"
)

// Fired pairs an event with the effects its handlers produced.
type Fired struct {
	Event   types.Event
	Effects []types.Effect
}

// Dispatch runs catalog handlers against the emitted events. Single pass,
// no recursion. A handler fires when its event type matches and all its
// conditions hold for pd and meta. Events with no firing handler are left out.
func Dispatch(evs []types.Event, defs *catalog.Defs, pd types.PlayerData, meta types.MetaStats) []Fired {
	var result []Fired

	for _, event := range evs {
		facts := rules.Facts{Event: event, Player: pd, Meta: meta, Defs: defs}
		var effs []types.Effect
		for _, handler := range defs.Handlers {
			if handler.EventType != event.Type {
				continue
			}
			if !rules.EvalAllConditions(handler.Conditions, facts) {
				continue
			}
			effs = append(effs, handler.Effects...)
		}
		if len(effs) > 0 {
			result = append(result, Fired{Event: event, Effects: effs})
		}
	}

	return result
}
