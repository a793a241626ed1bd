// Package effects applies catalog reward effects through the progression
// store. Every effect type is one atomic operation.
package effects

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/nathoo/bossrush/types"
)

// Known lists the effect types Apply understands.
var Known = []string{"say", "grant_souls", "grant_talent_points", "stop"}

// Wallet is the part of the progression store rewards are paid into.
type Wallet interface {
	AddSouls(n int)
	AddTalentPoints(n int)
}

// Context carries what a handler needs to scale rewards and fill
// templates.
type Context struct {
	Bosses    int            // bosses defeated in the run the event concerns
	SoulBonus float64        // fraction, from the player's stat totals
	Data      map[string]any // event data, for {key} templates
}

// Apply applies a list of effects. Returns events emitted and output
// text collected.
func Apply(w Wallet, effs []types.Effect, ctx Context) ([]types.Event, []string) {
	var events []types.Event
	var output []string

	for _, eff := range effs {
		switch eff.Type {
		case "say":
			text, _ := eff.Params["text"].(string)
			output = append(output, interpolate(text, ctx))

		case "grant_souls":
			base := toInt(eff.Params["amount"]) + toInt(eff.Params["per_boss"])*ctx.Bosses
			n := Scale(base, ctx.SoulBonus)
			if n <= 0 {
				continue
			}
			w.AddSouls(n)
			output = append(output, fmt.Sprintf("+%d souls", n))
			events = append(events, types.Event{
				Type: "souls_granted",
				Data: map[string]any{"amount": n},
			})

		case "grant_talent_points":
			n := toInt(eff.Params["amount"])
			if n <= 0 {
				continue
			}
			w.AddTalentPoints(n)
			output = append(output, fmt.Sprintf("+%d talent %s", n, plural(n, "point")))
			events = append(events, types.Event{
				Type: "talent_points_granted",
				Data: map[string]any{"amount": n},
			})

		case "stop":
			return events, output

		default:
			// Unknown effect type, rejected at load time.
		}
	}

	return events, output
}

// Scale applies a soul bonus fraction to a base reward, rounding to the
// nearest soul. A negative bonus can shrink rewards but never below 0.
func Scale(base int, bonus float64) int {
	if base <= 0 {
		return 0
	}
	n := int(math.Round(float64(base) * (1 + bonus)))
	if n < 0 {
		return 0
	}
	return n
}

// interpolate replaces {bosses} and {key} placeholders for every key in
// the event data.
func interpolate(text string, ctx Context) string {
	if !strings.Contains(text, "{") {
		return text
	}
	text = strings.ReplaceAll(text, "{bosses}", fmt.Sprint(ctx.Bosses))

	keys := make([]string, 0, len(ctx.Data))
	for k := range ctx.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		text = strings.ReplaceAll(text, "{"+k+"}", fmt.Sprint(ctx.Data[k]))
	}
	return text
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

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
