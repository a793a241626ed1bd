package engine

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/nathoo/bossrush/engine/catalog"
	"github.com/nathoo/bossrush/engine/progress"
	"github.com/nathoo/bossrush/engine/resolve"
	"github.com/nathoo/bossrush/types"
)

var errNoRun = errors.New("no active run; type 'start <kit>' to begin")

func (e *Engine) startRun(name string) ([]types.Event, []string) {
	kitID, err := e.pickKit(name)
	if err != nil {
		return nil, []string{err.Error()}
	}

	var out []string
	if prev := e.Store.SavedRun(); prev != nil {
		out = append(out, fmt.Sprintf("You abandon your %s run after %d %s.",
			e.kitName(prev.KitID), prev.BossesDefeated, plural(prev.BossesDefeated, "boss", "bosses")))
	}
	firstRun := e.Store.Meta().TotalRuns == 0

	run := e.Store.StartNewRun(kitID)
	if firstRun && e.Defs.Game.StartingSouls > 0 {
		e.Store.AddSouls(e.Defs.Game.StartingSouls)
		out = append(out, fmt.Sprintf("You begin with %d souls.", e.Defs.Game.StartingSouls))
	}
	for _, name := range e.equipKit(kitID) {
		out = append(out, fmt.Sprintf("Equipped %s.", name))
	}

	boss := progress.BossConfig(0)
	out = append(out,
		fmt.Sprintf("A new run begins as the %s with %d potions.", e.kitName(kitID), run.Potions),
		fmt.Sprintf("Boss 1 awaits: %d HP, %d damage.", boss.Health, boss.Damage),
	)
	return []types.Event{{
		Type: "run_started",
		Data: map[string]any{"kit": kitID, "run": run.RunID, "bosses": 0},
	}}, out
}

// pickKit resolves name, or picks the only kit when name is empty.
func (e *Engine) pickKit(name string) (string, error) {
	if name != "" {
		return resolve.Kit(e.Defs, name)
	}
	ids := make([]string, 0, len(e.Defs.Kits))
	for id := range e.Defs.Kits {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	switch len(ids) {
	case 0:
		return "", errors.New("no kits are defined")
	case 1:
		return ids[0], nil
	default:
		return "", fmt.Errorf("start as which kit? (%s)", strings.Join(ids, ", "))
	}
}

// equipKit fills every empty slot with the kit's default gear. Returns
// the names of the items equipped.
func (e *Engine) equipKit(kitID string) []string {
	kit := e.Defs.Kits[kitID]
	gear := e.Store.Player().Gear
	var names []string
	for _, slot := range catalog.Slots() {
		id, ok := kit.Gear[slot]
		if !ok || gear[slot] != "" {
			continue
		}
		e.Store.EquipItem(id, slot)
		names = append(names, catalog.ItemName(e.Defs, id))
	}
	return names
}

func (e *Engine) defeatBoss(intent types.Intent) ([]types.Event, []string) {
	run := e.Store.SavedRun()
	if run == nil {
		return nil, []string{errNoRun.Error()}
	}
	snap, err := e.snapshot(intent, run)
	if err != nil {
		return nil, []string{err.Error()}
	}
	return e.bossDown(run, snap)
}

// bossDown records a boss kill and previews the next boss.
func (e *Engine) bossDown(run *types.RunState, snap types.Snapshot) ([]types.Event, []string) {
	n := run.BossesDefeated
	e.Store.OnBossDefeated(snap)

	next := progress.BossConfig(n + 1)
	out := []string{
		fmt.Sprintf("Boss %d defeated!", n+1),
		fmt.Sprintf("Boss %d awaits: %d HP, %d damage.", n+2, next.Health, next.Damage),
	}
	return []types.Event{{
		Type: "boss_defeated",
		Data: map[string]any{"kit": run.KitID, "run": run.RunID, "bosses": n + 1},
	}}, out
}

func (e *Engine) fightBoss() ([]types.Event, []string) {
	run := e.Store.SavedRun()
	if run == nil {
		return nil, []string{errNoRun.Error()}
	}
	bonus := e.Bonus()
	health := MaxHealth(bonus)
	if run.Health != nil {
		health = *run.Health
	}

	boss := progress.BossConfig(run.BossesDefeated)
	rep := Simulate(Fighter{Bonus: bonus, Health: health, Potions: run.Potions}, boss, e.RNG)
	out := fightSummary(run.BossesDefeated, boss, rep)
	e.log.Debug("fight", "boss", run.BossesDefeated+1, "won", rep.Won, "rounds", rep.Rounds, "rng", e.RNG.Position())

	var evts []types.Event
	var more []string
	if rep.Won {
		evts, more = e.bossDown(run, types.Snapshot{Health: rep.Health, Potions: rep.Potions})
	} else {
		evts, more = e.die()
	}
	return evts, append(out, more...)
}

func (e *Engine) checkpoint(intent types.Intent) ([]types.Event, []string) {
	run := e.Store.SavedRun()
	if run == nil {
		return nil, []string{errNoRun.Error()}
	}
	snap, err := e.snapshot(intent, run)
	if err != nil {
		return nil, []string{err.Error()}
	}
	e.Store.SaveRunState(snap)
	ev := types.Event{
		Type: "checkpoint_saved",
		Data: map[string]any{"kit": run.KitID, "run": run.RunID, "bosses": run.BossesDefeated},
	}
	return []types.Event{ev}, []string{fmt.Sprintf("Checkpoint saved: %.1f HP, %d potions.", snap.Health, snap.Potions)}
}

// die ends the active run. The boss count is captured before the store
// clears the run so death rewards can scale with it.
func (e *Engine) die() ([]types.Event, []string) {
	run := e.Store.SavedRun()
	if run == nil {
		return nil, []string{errNoRun.Error()}
	}
	bosses := run.BossesDefeated
	e.Store.OnPlayerDeath()
	ev := types.Event{
		Type: "player_died",
		Data: map[string]any{"kit": run.KitID, "run": run.RunID, "bosses": bosses},
	}
	return []types.Event{ev}, []string{
		fmt.Sprintf("You died after %d %s. The run is over.", bosses, plural(bosses, "boss", "bosses")),
	}
}

func (e *Engine) resetRun() ([]types.Event, []string) {
	run := e.Store.SavedRun()
	if run == nil {
		return nil, []string{"There is no run to abandon."}
	}
	e.Store.ClearRun()
	return []types.Event{{
		Type: "run_cleared",
		Data: map[string]any{"kit": run.KitID, "run": run.RunID, "bosses": run.BossesDefeated},
	}}, []string{"Run abandoned. Lifetime records are unchanged."}
}

// snapshot reads "<health> [potions]" from an intent, defaulting to the
// run's saved values.
func (e *Engine) snapshot(intent types.Intent, run *types.RunState) (types.Snapshot, error) {
	snap := types.Snapshot{Health: MaxHealth(e.Bonus()), Potions: run.Potions}
	if run.Health != nil {
		snap.Health = *run.Health
	}
	if intent.Object != "" {
		h, err := strconv.ParseFloat(intent.Object, 64)
		if err != nil || h < 0 {
			return snap, fmt.Errorf("health must be a non-negative number, got %q", intent.Object)
		}
		snap.Health = h
	}
	if intent.Target != "" {
		p, err := strconv.Atoi(intent.Target)
		if err != nil || p < 0 {
			return snap, fmt.Errorf("potions must be a non-negative whole number, got %q", intent.Target)
		}
		snap.Potions = p
	}
	return snap, nil
}

func (e *Engine) buy(name string) ([]types.Event, []string) {
	if name == "" {
		return nil, []string{"Buy what? Type 'shop' to browse."}
	}
	id, err := resolve.Item(e.Defs, name)
	if err != nil {
		return nil, []string{err.Error()}
	}
	item := e.Defs.Items[id]
	pd := e.Store.Player()

	if item.Consumable {
		return e.buyConsumable(item, pd)
	}
	if catalog.Owns(pd, e.Defs, id) {
		return nil, []string{fmt.Sprintf("You already own the %s.", item.Name)}
	}
	if pd.Souls < item.Cost {
		return nil, []string{fmt.Sprintf("The %s costs %d souls; you have %d.", item.Name, item.Cost, pd.Souls)}
	}
	if !e.Store.PurchaseItem(id, item.Cost) {
		return nil, []string{"The purchase could not be saved."}
	}
	return []types.Event{{
		Type: "item_purchased",
		Data: map[string]any{"item": id, "cost": item.Cost, "slot": string(item.Slot)},
	}}, []string{fmt.Sprintf("Bought the %s for %d souls.", item.Name, item.Cost)}
}

// buyConsumable spends souls without adding to the owned set, then
// applies the item's effect.
func (e *Engine) buyConsumable(item types.ItemDef, pd types.PlayerData) ([]types.Event, []string) {
	run := e.Store.SavedRun()
	if item.Effect == "potion" && run == nil {
		return nil, []string{"Potions are carried per run; start a run first."}
	}
	if pd.Souls < item.Cost {
		return nil, []string{fmt.Sprintf("The %s costs %d souls; you have %d.", item.Name, item.Cost, pd.Souls)}
	}
	if !e.Store.SpendSouls(item.Cost) {
		return nil, []string{"The purchase could not be saved."}
	}

	var out string
	switch item.Effect {
	case "potion":
		health := MaxHealth(e.Bonus())
		if run.Health != nil {
			health = *run.Health
		}
		e.Store.SaveRunState(types.Snapshot{Health: health, Potions: run.Potions + 1})
		out = fmt.Sprintf("Bought a %s. You now carry %d potions.", item.Name, run.Potions+1)
	case "soul_crystal":
		e.Store.AddTalentPoints(1)
		out = fmt.Sprintf("The %s shatters. +1 talent point.", item.Name)
	default:
		out = fmt.Sprintf("Bought a %s.", item.Name)
	}
	return []types.Event{{
		Type: "item_purchased",
		Data: map[string]any{"item": item.ID, "cost": item.Cost, "slot": string(item.Slot)},
	}}, []string{out}
}

func (e *Engine) equip(name, slotName string) ([]types.Event, []string) {
	if name == "" {
		return nil, []string{"Equip what?"}
	}
	id, err := resolve.Item(e.Defs, name)
	if err != nil {
		return nil, []string{err.Error()}
	}
	item := e.Defs.Items[id]
	if item.Consumable {
		return nil, []string{fmt.Sprintf("The %s can't be equipped.", item.Name)}
	}
	pd := e.Store.Player()
	if !catalog.Owns(pd, e.Defs, id) {
		return nil, []string{fmt.Sprintf("You don't own the %s.", item.Name)}
	}
	if slotName != "" {
		slot, err := resolve.Slot(slotName)
		if err != nil {
			return nil, []string{err.Error()}
		}
		if slot != item.Slot {
			return nil, []string{fmt.Sprintf("The %s goes in the %s slot.", item.Name, item.Slot)}
		}
	}
	if pd.Gear[item.Slot] == id {
		return nil, []string{fmt.Sprintf("The %s is already equipped.", item.Name)}
	}

	e.Store.EquipItem(id, item.Slot)
	return []types.Event{{
		Type: "item_equipped",
		Data: map[string]any{"item": id, "slot": string(item.Slot)},
	}}, []string{fmt.Sprintf("Equipped the %s (%s).", item.Name, item.Slot)}
}

// unequip accepts a slot name or the name of an equipped item.
func (e *Engine) unequip(name string) ([]types.Event, []string) {
	if name == "" {
		return nil, []string{"Unequip which slot?"}
	}
	pd := e.Store.Player()

	slot, err := resolve.Slot(name)
	if err != nil {
		id, ierr := resolve.Item(e.Defs, name)
		if ierr != nil {
			return nil, []string{ierr.Error()}
		}
		slot = e.Defs.Items[id].Slot
		if pd.Gear[slot] != id {
			return nil, []string{fmt.Sprintf("The %s is not equipped.", catalog.ItemName(e.Defs, id))}
		}
	}
	id := pd.Gear[slot]
	if id == "" {
		return nil, []string{fmt.Sprintf("Nothing is equipped in the %s slot.", slot)}
	}

	e.Store.UnequipSlot(slot)
	return []types.Event{{
		Type: "item_unequipped",
		Data: map[string]any{"item": id, "slot": string(slot)},
	}}, []string{fmt.Sprintf("Removed the %s.", catalog.ItemName(e.Defs, id))}
}

func (e *Engine) unlock(name string) ([]types.Event, []string) {
	if name == "" {
		return nil, []string{"Unlock what? Type 'talents' to browse."}
	}
	id, err := resolve.Talent(e.Defs, name)
	if err != nil {
		return nil, []string{err.Error()}
	}
	t := e.Defs.Talents[id]
	pd := e.Store.Player()

	switch {
	case catalog.HasTalent(pd, id):
		return nil, []string{fmt.Sprintf("%s is already unlocked.", t.Name)}
	case t.Prereq != "" && !catalog.HasTalent(pd, t.Prereq):
		return nil, []string{fmt.Sprintf("%s requires %s.", t.Name, e.talentName(t.Prereq))}
	case pd.TalentPoints < t.Cost:
		return nil, []string{fmt.Sprintf("%s costs %d talent %s; you have %d.",
			t.Name, t.Cost, plural(t.Cost, "point", "points"), pd.TalentPoints)}
	}
	if !e.Store.UnlockTalent(id, t.Cost) {
		return nil, []string{"The unlock could not be saved."}
	}
	return []types.Event{{
		Type: "talent_unlocked",
		Data: map[string]any{"talent": id, "branch": string(t.Branch), "tier": t.Tier},
	}}, []string{fmt.Sprintf("Unlocked %s.", t.Name)}
}

func (e *Engine) talentName(id string) string {
	if t, ok := e.Defs.Talents[id]; ok && t.Name != "" {
		return t.Name
	}
	return id
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
