package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nathoo/bossrush/engine/catalog"
	"github.com/nathoo/bossrush/engine/progress"
	"github.com/nathoo/bossrush/engine/resolve"
	"github.com/nathoo/bossrush/engine/stats"
	"github.com/nathoo/bossrush/types"
)

func (e *Engine) viewRun() []string {
	run := e.Store.SavedRun()
	if run == nil {
		return []string{"No active run."}
	}
	health := "full"
	if run.Health != nil {
		health = strconv.FormatFloat(*run.Health, 'f', 1, 64)
	}
	out := []string{
		fmt.Sprintf("Run %s as the %s", shortID(run.RunID), e.kitName(run.KitID)),
		fmt.Sprintf("  Bosses defeated: %d", run.BossesDefeated),
		fmt.Sprintf("  Health: %s  Potions: %d", health, run.Potions),
	}
	if !run.SavedAt.IsZero() {
		out = append(out, "  Saved: "+run.SavedAt.Local().Format("2006-01-02 15:04"))
	}
	return out
}

func (e *Engine) viewMeta() []string {
	m := e.Store.Meta()
	return []string{
		fmt.Sprintf("Runs: %d", m.TotalRuns),
		fmt.Sprintf("Boss kills: %d", m.TotalBossKills),
		fmt.Sprintf("Deaths: %d", m.TotalDeaths),
		fmt.Sprintf("Best streak: %d", m.BestStreak),
	}
}

func (e *Engine) viewStats() []string {
	bonus := e.Bonus()
	out := []string{fmt.Sprintf("Max health: %.0f", MaxHealth(bonus))}
	lines := stats.Format(bonus)
	if len(lines) == 0 {
		return append(out, "No bonuses from gear or talents.")
	}
	for _, l := range lines {
		out = append(out, "  "+l)
	}
	return out
}

func (e *Engine) viewGear() []string {
	pd := e.Store.Player()
	out := []string{fmt.Sprintf("Souls: %d  Talent points: %d", pd.Souls, pd.TalentPoints)}
	for _, slot := range catalog.Slots() {
		name := "(empty)"
		if id := pd.Gear[slot]; id != "" {
			name = catalog.ItemName(e.Defs, id)
		}
		out = append(out, fmt.Sprintf("  %-7s %s", slot+":", name))
	}
	if len(pd.OwnedItems) > 0 {
		names := make([]string, len(pd.OwnedItems))
		for i, id := range pd.OwnedItems {
			names[i] = catalog.ItemName(e.Defs, id)
		}
		out = append(out, "Owned: "+strings.Join(names, ", "))
	}
	return out
}

func (e *Engine) viewShop(filter string) []string {
	slots := append(catalog.Slots(), types.SlotConsumable)
	if filter != "" {
		if filter == string(types.SlotConsumable) {
			slots = []types.Slot{types.SlotConsumable}
		} else {
			slot, err := resolve.Slot(filter)
			if err != nil {
				return []string{err.Error()}
			}
			slots = []types.Slot{slot}
		}
	}

	pd := e.Store.Player()
	out := []string{fmt.Sprintf("Souls: %d", pd.Souls)}
	for _, slot := range slots {
		ids := catalog.ItemsInSlot(e.Defs, slot)
		if len(ids) == 0 {
			continue
		}
		out = append(out, strings.ToUpper(string(slot)))
		for _, id := range ids {
			item := e.Defs.Items[id]
			mark := fmt.Sprintf("%d souls", item.Cost)
			switch {
			case pd.Gear[slot] == id:
				mark = "equipped"
			case !item.Consumable && catalog.Owns(pd, e.Defs, id):
				mark = "owned"
			}
			line := fmt.Sprintf("  %-22s %-10s %s", catalog.ItemName(e.Defs, id), mark, item.Rarity)
			if bonus := stats.Format(stats.Add(types.BonusVector{}, item.Bonuses)); len(bonus) > 0 {
				line += "  " + strings.Join(bonus, ", ")
			}
			out = append(out, line)
		}
	}
	return out
}

func (e *Engine) viewTalents(filter string) []string {
	branches := catalog.Branches()
	if filter != "" {
		b, err := resolve.Branch(filter)
		if err != nil {
			return []string{err.Error()}
		}
		branches = []types.Branch{b}
	}

	pd := e.Store.Player()
	out := []string{fmt.Sprintf("Talent points: %d", pd.TalentPoints)}
	for _, b := range branches {
		out = append(out, strings.ToUpper(string(b)))
		for _, t := range catalog.TalentsInBranch(e.Defs, b) {
			mark := " "
			switch {
			case catalog.HasTalent(pd, t.ID):
				mark = "*"
			case t.Prereq == "" || catalog.HasTalent(pd, t.Prereq):
				mark = "+"
			}
			out = append(out, fmt.Sprintf("  %s %d %-22s %d pt", mark, t.Tier, t.Name, t.Cost))
		}
	}
	return append(out, "(* unlocked, + available)")
}

func (e *Engine) viewBoss(arg string) []string {
	n := 0
	if run := e.Store.SavedRun(); run != nil {
		n = run.BossesDefeated
	}
	if arg != "" {
		v, err := strconv.Atoi(arg)
		if err != nil || v < 1 {
			return []string{fmt.Sprintf("boss number must be 1 or more, got %q", arg)}
		}
		n = v - 1
	}
	b := progress.BossConfig(n)
	return []string{fmt.Sprintf("Boss %d: %d HP, %d damage.", n+1, b.Health, b.Damage)}
}

// Dump lists the stored meta, run, and player records for debugging.
func (e *Engine) Dump() []string {
	m := e.Store.Meta()
	p := e.Store.Player()
	lines := []string{
		fmt.Sprintf("Meta: runs=%d kills=%d deaths=%d best=%d",
			m.TotalRuns, m.TotalBossKills, m.TotalDeaths, m.BestStreak),
	}
	if run := e.Store.SavedRun(); run != nil {
		health := "nil"
		if run.Health != nil {
			health = strconv.FormatFloat(*run.Health, 'g', -1, 64)
		}
		lines = append(lines, fmt.Sprintf("Run: id=%s kit=%s bosses=%d potions=%d health=%s",
			run.RunID, run.KitID, run.BossesDefeated, run.Potions, health))
	} else {
		lines = append(lines, "Run: none")
	}
	return append(lines,
		fmt.Sprintf("Player: souls=%d points=%d", p.Souls, p.TalentPoints),
		fmt.Sprintf("Owned: %v", p.OwnedItems),
		fmt.Sprintf("Gear: %v", p.Gear),
		fmt.Sprintf("Talents: %v", p.Talents),
		fmt.Sprintf("RNG: seed=%d draws=%d", e.RNG.Seed(), e.RNG.Position()),
	)
}

func helpText() []string {
	return []string{
		"Runs:    start <kit>, fight, defeat [hp] [potions], checkpoint [hp] [potions], die, reset",
		"Shop:    shop [slot], buy <item>, equip <item>, unequip <slot|item>",
		"Talents: talents [branch], unlock <talent>",
		"Views:   run, meta, stats, gear, boss [n], help",
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
