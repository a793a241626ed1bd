package loader

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nathoo/bossrush/engine/anim"
	"github.com/nathoo/bossrush/engine/catalog"
	"github.com/nathoo/bossrush/engine/effects"
	"github.com/nathoo/bossrush/engine/rules"
	"github.com/nathoo/bossrush/types"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

func (e *ValidationError) errorf(format string, args ...any) {
	e.Errors = append(e.Errors, fmt.Sprintf(format, args...))
}

func (e *ValidationError) warnf(format string, args ...any) {
	e.Warnings = append(e.Warnings, fmt.Sprintf(format, args...))
}

// MaxTier is the deepest talent tier in any branch.
const MaxTier = 4

var validRarities = map[string]bool{
	"common": true, "uncommon": true, "rare": true, "epic": true, "legendary": true,
}

var validConsumableEffects = map[string]bool{
	"potion":       true,
	"soul_crystal": true,
}

// Events the hub emits. Handlers for anything else never fire.
var knownEvents = map[string]bool{
	"run_started":           true,
	"boss_defeated":         true,
	"checkpoint_saved":      true,
	"player_died":           true,
	"run_cleared":           true,
	"item_purchased":        true,
	"item_equipped":         true,
	"item_unequipped":       true,
	"talent_unlocked":       true,
	"souls_granted":         true,
	"talent_points_granted": true,
}

// validate checks the compiled defs for referential integrity and
// consistency. issues from compilation are reported first.
func validate(defs *catalog.Defs, issues []string) *ValidationError {
	ve := &ValidationError{Errors: append([]string(nil), issues...)}

	if defs.Game.Title == "" {
		ve.errorf("Game.title is required")
	}
	if defs.Game.StartingSouls < 0 {
		ve.errorf("Game.starting_souls must not be negative, got %d", defs.Game.StartingSouls)
	}

	for _, id := range sortedKeys(defs.Items) {
		validateItem(defs.Items[id], ve)
	}
	validateTalents(defs, ve)
	for _, id := range sortedKeys(defs.Kits) {
		validateKit(defs.Kits[id], defs, ve)
	}
	if len(defs.Kits) == 0 {
		ve.errorf("at least one Kit is required")
	}

	for _, h := range defs.Handlers {
		if !knownEvents[h.EventType] {
			ve.warnf("handler for unknown event %q never fires", h.EventType)
		}
		validateConditions(h.Conditions, defs, ve)
		validateEffects(h.Effects, ve)
	}

	for _, key := range sortedKeys(defs.Clips) {
		if _, ok := anim.ParseChannel(key); !ok {
			ve.errorf("Clips: unknown animation channel %q", key)
		}
	}

	return ve
}

func validateItem(item types.ItemDef, ve *ValidationError) {
	if !validSlot(item.Slot) && item.Slot != types.SlotConsumable {
		ve.errorf("item %q: unknown slot %q", item.ID, item.Slot)
	}
	if !validRarities[item.Rarity] {
		ve.errorf("item %q: unknown rarity %q", item.ID, item.Rarity)
	}
	if item.Cost < 0 {
		ve.errorf("item %q: cost must not be negative, got %d", item.ID, item.Cost)
	}
	if item.Consumable {
		if item.Slot != types.SlotConsumable {
			ve.errorf("item %q: consumables go in the consumable slot, got %q", item.ID, item.Slot)
		}
		if !validConsumableEffects[item.Effect] {
			ve.errorf("item %q: unknown consumable effect %q", item.ID, item.Effect)
		}
		if item.Cost == 0 {
			ve.errorf("item %q: consumables must cost souls", item.ID)
		}
	} else if item.Effect != "" {
		ve.warnf("item %q: effect %q ignored on non-consumable", item.ID, item.Effect)
	}
}

// validateTalents checks each branch forms a linear chain: one talent per
// tier, and each tier above 0 requires the tier below it.
func validateTalents(defs *catalog.Defs, ve *ValidationError) {
	tiers := map[types.Branch]map[int]string{}
	for _, id := range sortedKeys(defs.Talents) {
		t := defs.Talents[id]
		if !validBranch(t.Branch) {
			ve.errorf("talent %q: unknown branch %q", id, t.Branch)
			continue
		}
		if t.Tier < 0 || t.Tier > MaxTier {
			ve.errorf("talent %q: tier must be 0-%d, got %d", id, MaxTier, t.Tier)
			continue
		}
		if t.Cost < 0 {
			ve.errorf("talent %q: cost must not be negative, got %d", id, t.Cost)
		}
		if tiers[t.Branch] == nil {
			tiers[t.Branch] = map[int]string{}
		}
		if other, dup := tiers[t.Branch][t.Tier]; dup {
			ve.errorf("talents %q and %q share %s tier %d", other, id, t.Branch, t.Tier)
			continue
		}
		tiers[t.Branch][t.Tier] = id
	}

	for _, id := range sortedKeys(defs.Talents) {
		t := defs.Talents[id]
		if t.Tier == 0 {
			if t.Prereq != "" {
				ve.errorf("talent %q: tier 0 talents have no prereq, got %q", id, t.Prereq)
			}
			continue
		}
		if t.Prereq == "" {
			ve.errorf("talent %q: tier %d needs a prereq", id, t.Tier)
			continue
		}
		pre, ok := defs.Talents[t.Prereq]
		if !ok {
			ve.errorf("talent %q: prereq %q is not defined", id, t.Prereq)
			continue
		}
		if pre.Branch != t.Branch || pre.Tier != t.Tier-1 {
			ve.errorf("talent %q: prereq %q must be %s tier %d", id, t.Prereq, t.Branch, t.Tier-1)
		}
	}
}

func validateKit(kit types.KitDef, defs *catalog.Defs, ve *ValidationError) {
	for _, slot := range sortedKeys(kit.Gear) {
		id := kit.Gear[slot]
		if !validSlot(slot) {
			ve.errorf("kit %q: unknown gear slot %q", kit.ID, slot)
			continue
		}
		item, ok := defs.Items[id]
		if !ok {
			ve.errorf("kit %q: %s item %q is not defined", kit.ID, slot, id)
			continue
		}
		if item.Slot != slot {
			ve.errorf("kit %q: item %q goes in %s, not %s", kit.ID, id, item.Slot, slot)
		}
		if item.Cost != 0 {
			ve.errorf("kit %q: item %q must be a zero-cost default item", kit.ID, id)
		}
	}
}

func validateConditions(conditions []types.Condition, defs *catalog.Defs, ve *ValidationError) {
	for _, cond := range conditions {
		if !contains(rules.Known, cond.Type) {
			ve.errorf("unknown condition type %q", cond.Type)
			continue
		}
		switch cond.Type {
		case "owns_item", "equipped":
			if item, _ := cond.Params["item"].(string); defs.Items[item].ID == "" {
				ve.errorf("condition %s references undefined item %q", cond.Type, item)
			}
		case "has_talent":
			if talent, _ := cond.Params["talent"].(string); defs.Talents[talent].ID == "" {
				ve.errorf("condition has_talent references undefined talent %q", talent)
			}
		case "kit_is":
			if kit, _ := cond.Params["kit"].(string); defs.Kits[kit].ID == "" {
				ve.errorf("condition kit_is references undefined kit %q", kit)
			}
		case "not":
			if cond.Inner != nil {
				validateConditions([]types.Condition{*cond.Inner}, defs, ve)
			}
		}
	}
}

func validateEffects(effs []types.Effect, ve *ValidationError) {
	for _, eff := range effs {
		if !contains(effects.Known, eff.Type) {
			ve.errorf("unknown effect type %q", eff.Type)
		}
	}
}

func validSlot(s types.Slot) bool {
	for _, v := range catalog.Slots() {
		if v == s {
			return true
		}
	}
	return false
}

func validBranch(b types.Branch) bool {
	for _, v := range catalog.Branches() {
		if v == b {
			return true
		}
	}
	return false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func sortedKeys[K ~string, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
