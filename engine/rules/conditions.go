// Package rules evaluates the conditions that gate catalog event handlers.
package rules

import (
	"github.com/nathoo/bossrush/engine/catalog"
	"github.com/nathoo/bossrush/types"
)

// Facts is what a condition can look at: the event being handled and the
// player's state after the command that raised it.
type Facts struct {
	Event  types.Event
	Player types.PlayerData
	Meta   types.MetaStats
	Defs   *catalog.Defs
}

// EvalCondition evaluates a single condition against the facts.
func EvalCondition(c types.Condition, f Facts) bool {
	switch c.Type {
	case "min_bosses":
		return toInt(f.Event.Data["bosses"]) >= toInt(c.Params["value"])

	case "kit_is":
		kit, _ := c.Params["kit"].(string)
		got, _ := f.Event.Data["kit"].(string)
		return got == kit

	case "has_talent":
		talent, _ := c.Params["talent"].(string)
		return catalog.HasTalent(f.Player, talent)

	case "owns_item":
		item, _ := c.Params["item"].(string)
		return catalog.Owns(f.Player, f.Defs, item)

	case "equipped":
		item, _ := c.Params["item"].(string)
		for _, id := range f.Player.Gear {
			if id == item {
				return true
			}
		}
		return false

	case "runs_gt":
		return f.Meta.TotalRuns > toInt(c.Params["value"])

	case "streak_gt":
		return f.Meta.BestStreak > toInt(c.Params["value"])

	case "deaths_gt":
		return f.Meta.TotalDeaths > toInt(c.Params["value"])

	case "not":
		if c.Inner == nil {
			return true
		}
		return !EvalCondition(*c.Inner, f)

	default:
		return false
	}
}

// EvalAllConditions returns true if all conditions pass (AND logic).
// An empty condition list is vacuously true.
func EvalAllConditions(conditions []types.Condition, f Facts) bool {
	for _, c := range conditions {
		if !EvalCondition(c, f) {
			return false
		}
	}
	return true
}

// Known lists the condition types EvalCondition understands.
var Known = []string{
	"min_bosses", "kit_is", "has_talent", "owns_item", "equipped",
	"runs_gt", "streak_gt", "deaths_gt", "not",
}

// toInt converts an any value to int, handling float64 from Lua.
func toInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	case int64:
		return int(n)
	default:
		return 0
	}
}
