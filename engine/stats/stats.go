// Package stats aggregates gear and talent bonuses into a single
// additive bonus vector.
package stats

import (
	"fmt"
	"strings"

	"github.com/nathoo/bossrush/engine/catalog"
	"github.com/nathoo/bossrush/types"
)

var names = [types.NumStats]string{
	types.StatDamage:             "damage",
	types.StatHealth:             "health",
	types.StatArmor:              "armor",
	types.StatStamina:            "stamina",
	types.StatCritChance:         "critChance",
	types.StatCritMultiplier:     "critMultiplier",
	types.StatBackstabMultiplier: "backstabMultiplier",
	types.StatLifesteal:          "lifesteal",
	types.StatRunSpeed:           "runSpeed",
	types.StatJumpForce:          "jumpForce",
	types.StatAttackSpeed:        "attackSpeed",
	types.StatHealthRegen:        "healthRegen",
	types.StatSoulBonus:          "soulBonus",
}

// Fraction stats are shown as percentages.
var fractions = map[types.Stat]bool{
	types.StatCritChance:  true,
	types.StatLifesteal:   true,
	types.StatRunSpeed:    true,
	types.StatAttackSpeed: true,
	types.StatSoulBonus:   true,
}

// Name returns the content key of a stat.
func Name(s types.Stat) string {
	if s < 0 || s >= types.NumStats {
		return fmt.Sprintf("stat(%d)", int(s))
	}
	return names[s]
}

// Parse maps a content key to a stat. Matching ignores case, underscores,
// and dashes, so "crit_chance" and "critChance" are the same key.
func Parse(key string) (types.Stat, bool) {
	k := squash(key)
	for i, n := range names {
		if squash(n) == k {
			return types.Stat(i), true
		}
	}
	return 0, false
}

// All returns every stat in declaration order.
func All() []types.Stat {
	out := make([]types.Stat, types.NumStats)
	for i := range out {
		out[i] = types.Stat(i)
	}
	return out
}

// Compute sums the bonuses of every equipped item and unlocked talent.
// IDs missing from the catalog contribute nothing; a nil catalog is empty.
func Compute(pd types.PlayerData, defs *catalog.Defs) types.BonusVector {
	var v types.BonusVector
	if defs == nil {
		return v
	}
	for _, id := range pd.Gear {
		if item, ok := defs.Items[id]; ok {
			v = Add(v, item.Bonuses)
		}
	}
	for _, id := range pd.Talents {
		if t, ok := defs.Talents[id]; ok {
			v = Add(v, t.Bonuses)
		}
	}
	return v
}

// Add returns v with every bonus added in. Stats outside the closed set
// are skipped.
func Add(v types.BonusVector, bonuses types.StatBonuses) types.BonusVector {
	for s, amount := range bonuses {
		if s < 0 || s >= types.NumStats {
			continue
		}
		v[s] += amount
	}
	return v
}

// Format renders the non-zero entries of v, one per line.
func Format(v types.BonusVector) []string {
	var lines []string
	for _, s := range All() {
		if v[s] == 0 {
			continue
		}
		if fractions[s] {
			lines = append(lines, fmt.Sprintf("%s: %+.1f%%", Name(s), v[s]*100))
		} else {
			lines = append(lines, fmt.Sprintf("%s: %+g", Name(s), v[s]))
		}
	}
	return lines
}

func squash(s string) string {
	s = strings.ToLower(s)
	return strings.NewReplacer("_", "", "-", "", " ", "").Replace(s)
}
