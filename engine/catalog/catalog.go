// Package catalog holds the immutable item, talent, and kit definitions
// and the lookups the hub needs over them.
package catalog

import (
	"sort"

	"github.com/nathoo/bossrush/types"
)

// GameDef holds content metadata.
type GameDef struct {
	Title         string
	Version       string
	StartingSouls int
}

// Defs holds the immutable content definitions loaded from Lua.
type Defs struct {
	Game     GameDef
	Items    map[string]types.ItemDef
	Talents  map[string]types.TalentDef
	Kits     map[string]types.KitDef
	Handlers []types.EventHandler
	Clips    map[string]string // animation channel name → clip name hint
}

// IsDefaultItem reports whether id is a zero-cost item every player owns.
func IsDefaultItem(defs *Defs, id string) bool {
	item, ok := defs.Items[id]
	return ok && item.Cost == 0 && !item.Consumable
}

// Owns reports whether the player may equip id: bought or default.
func Owns(pd types.PlayerData, defs *Defs, id string) bool {
	if IsDefaultItem(defs, id) {
		return true
	}
	return contains(pd.OwnedItems, id)
}

// HasTalent reports whether the talent is unlocked.
func HasTalent(pd types.PlayerData, id string) bool {
	return contains(pd.Talents, id)
}

// ItemsInSlot returns the IDs of all items for a slot, cheapest first.
func ItemsInSlot(defs *Defs, slot types.Slot) []string {
	var ids []string
	for id, item := range defs.Items {
		if item.Slot == slot {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := defs.Items[ids[i]], defs.Items[ids[j]]
		if a.Cost != b.Cost {
			return a.Cost < b.Cost
		}
		return ids[i] < ids[j]
	})
	return ids
}

// TalentsInBranch returns the talents of a branch ordered by tier.
func TalentsInBranch(defs *Defs, branch types.Branch) []types.TalentDef {
	var out []types.TalentDef
	for _, t := range defs.Talents {
		if t.Branch == branch {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tier < out[j].Tier })
	return out
}

// Prereqs returns talent ID → prereq ID for every talent with a prereq.
func Prereqs(defs *Defs) map[string]string {
	m := make(map[string]string, len(defs.Talents))
	for id, t := range defs.Talents {
		if t.Prereq != "" {
			m[id] = t.Prereq
		}
	}
	return m
}

// Slots lists the equippable slots in display order.
func Slots() []types.Slot {
	return []types.Slot{types.SlotWeapon, types.SlotHelmet, types.SlotChest, types.SlotBoots}
}

// Branches lists talent branches in display order.
func Branches() []types.Branch {
	return []types.Branch{types.BranchOffense, types.BranchDefense, types.BranchUtility}
}

// ItemName returns the display name of an item, or its ID.
func ItemName(defs *Defs, id string) string {
	if item, ok := defs.Items[id]; ok && item.Name != "" {
		return item.Name
	}
	return id
}

func contains(list []string, id string) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}
