// Package loader loads Lua content into catalog definitions at startup.
// The Lua VM is discarded after loading, so nothing runs Lua during play.
package loader

import (
	"fmt"
	"sort"

	"github.com/nathoo/bossrush/engine/catalog"
	"github.com/nathoo/bossrush/engine/stats"
	"github.com/nathoo/bossrush/types"
	lua "github.com/yuin/gopher-lua"
)

// rawDef holds a kit, item, or talent table before compilation.
type rawDef struct {
	id    string
	table *lua.LTable
}

// rawHandler holds an event handler before compilation.
type rawHandler struct {
	eventType string
	table     *lua.LTable
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	if s, ok := tbl.RawGetString(key).(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getBool returns a bool field from a Lua table, or the default if missing.
func getBool(tbl *lua.LTable, key string, def bool) bool {
	if b, ok := tbl.RawGetString(key).(lua.LBool); ok {
		return bool(b)
	}
	return def
}

// getInt returns an int field from a Lua table, or 0 if missing.
func getInt(tbl *lua.LTable, key string) int {
	if n, ok := tbl.RawGetString(key).(lua.LNumber); ok {
		return int(n)
	}
	return 0
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	if t, ok := tbl.RawGetString(key).(*lua.LTable); ok {
		return t
	}
	return nil
}

// toGoValue converts a Lua value to a Go value recursively.
func toGoValue(v lua.LValue) any {
	switch val := v.(type) {
	case lua.LBool:
		return bool(val)
	case lua.LNumber:
		f := float64(val)
		if f == float64(int(f)) {
			return int(f)
		}
		return f
	case lua.LString:
		return string(val)
	case *lua.LTable:
		// Sequential integer keys starting at 1 make an array.
		if maxN := val.MaxN(); maxN > 0 {
			arr := make([]any, 0, maxN)
			for i := 1; i <= maxN; i++ {
				arr = append(arr, toGoValue(val.RawGetInt(i)))
			}
			return arr
		}
		m := map[string]any{}
		val.ForEach(func(k, v lua.LValue) {
			if ks, ok := k.(lua.LString); ok {
				m[string(ks)] = toGoValue(v)
			}
		})
		return m
	default:
		return nil
	}
}

// tableToStringMap converts a Lua table to a map[string]string,
// skipping non-string keys and values.
func tableToStringMap(tbl *lua.LTable) map[string]string {
	if tbl == nil {
		return nil
	}
	m := map[string]string{}
	tbl.ForEach(func(k, v lua.LValue) {
		if ks, ok := k.(lua.LString); ok {
			if vs, ok := v.(lua.LString); ok {
				m[string(ks)] = string(vs)
			}
		}
	})
	return m
}

// compile converts all collected Lua data into a Defs struct. Problems
// that cannot be represented in Defs, such as unknown stat keys, are
// returned as issues for validation to report.
func compile(coll *collector) (*catalog.Defs, []string, error) {
	if coll.game == nil {
		return nil, nil, fmt.Errorf("no Game{} definition found")
	}

	defs := &catalog.Defs{
		Game:    compileGame(coll.game),
		Items:   map[string]types.ItemDef{},
		Talents: map[string]types.TalentDef{},
		Kits:    map[string]types.KitDef{},
		Clips:   map[string]string{},
	}
	var issues []string

	for _, raw := range coll.items {
		if _, dup := defs.Items[raw.id]; dup {
			issues = append(issues, fmt.Sprintf("duplicate item %q", raw.id))
			continue
		}
		item, bad := compileItem(raw)
		issues = append(issues, bad...)
		defs.Items[item.ID] = item
	}

	for _, raw := range coll.talents {
		if _, dup := defs.Talents[raw.id]; dup {
			issues = append(issues, fmt.Sprintf("duplicate talent %q", raw.id))
			continue
		}
		talent, bad := compileTalent(raw)
		issues = append(issues, bad...)
		defs.Talents[talent.ID] = talent
	}

	for _, raw := range coll.kits {
		if _, dup := defs.Kits[raw.id]; dup {
			issues = append(issues, fmt.Sprintf("duplicate kit %q", raw.id))
			continue
		}
		defs.Kits[raw.id] = compileKit(raw)
	}

	for _, raw := range coll.handlers {
		defs.Handlers = append(defs.Handlers, compileHandler(raw))
	}

	// Later Clips{} calls override earlier ones key by key.
	for _, tbl := range coll.clips {
		for k, v := range tableToStringMap(tbl) {
			defs.Clips[k] = v
		}
	}

	return defs, issues, nil
}

func compileGame(tbl *lua.LTable) catalog.GameDef {
	return catalog.GameDef{
		Title:         getString(tbl, "title"),
		Version:       getString(tbl, "version"),
		StartingSouls: getInt(tbl, "starting_souls"),
	}
}

func compileItem(raw rawDef) (types.ItemDef, []string) {
	tbl := raw.table
	item := types.ItemDef{
		ID:         raw.id,
		Name:       getString(tbl, "name"),
		Slot:       types.Slot(getString(tbl, "slot")),
		Rarity:     getString(tbl, "rarity"),
		Cost:       getInt(tbl, "cost"),
		Consumable: getBool(tbl, "consumable", false),
		Effect:     getString(tbl, "effect"),
	}
	if item.Name == "" {
		item.Name = raw.id
	}
	if item.Rarity == "" {
		item.Rarity = "common"
	}
	if item.Slot == types.SlotConsumable {
		item.Consumable = true
	}
	bonuses, issues := compileBonuses(getTable(tbl, "bonuses"), "item "+quote(raw.id))
	item.Bonuses = bonuses
	return item, issues
}

func compileTalent(raw rawDef) (types.TalentDef, []string) {
	tbl := raw.table
	talent := types.TalentDef{
		ID:     raw.id,
		Name:   getString(tbl, "name"),
		Branch: types.Branch(getString(tbl, "branch")),
		Tier:   getInt(tbl, "tier"),
		Cost:   getInt(tbl, "cost"),
		Prereq: getString(tbl, "prereq"),
	}
	if talent.Name == "" {
		talent.Name = raw.id
	}
	bonuses, issues := compileBonuses(getTable(tbl, "bonuses"), "talent "+quote(raw.id))
	talent.Bonuses = bonuses
	return talent, issues
}

func compileKit(raw rawDef) types.KitDef {
	tbl := raw.table
	kit := types.KitDef{
		ID:          raw.id,
		Name:        getString(tbl, "name"),
		Description: getString(tbl, "description"),
		Gear:        map[types.Slot]string{},
	}
	if kit.Name == "" {
		kit.Name = raw.id
	}
	for slot, id := range tableToStringMap(getTable(tbl, "gear")) {
		kit.Gear[types.Slot(slot)] = id
	}
	return kit
}

// compileBonuses maps content stat keys onto stats. Unknown keys and
// non-numeric values are reported rather than dropped.
func compileBonuses(tbl *lua.LTable, owner string) (types.StatBonuses, []string) {
	bonuses := types.StatBonuses{}
	if tbl == nil {
		return bonuses, nil
	}
	var issues []string
	tbl.ForEach(func(k, v lua.LValue) {
		key := k.String()
		st, ok := stats.Parse(key)
		if !ok {
			issues = append(issues, fmt.Sprintf("%s: unknown stat %q", owner, key))
			return
		}
		n, ok := v.(lua.LNumber)
		if !ok {
			issues = append(issues, fmt.Sprintf("%s: stat %q must be a number, got %s", owner, key, v.Type()))
			return
		}
		bonuses[st] += float64(n)
	})
	return bonuses, issues
}

func compileConditions(tbl *lua.LTable) []types.Condition {
	var conditions []types.Condition
	tbl.ForEach(func(k, v lua.LValue) {
		// Only process integer-keyed entries (array elements).
		if _, ok := k.(lua.LNumber); !ok {
			return
		}
		if condTbl, ok := v.(*lua.LTable); ok {
			conditions = append(conditions, compileCondition(condTbl))
		}
	})
	return conditions
}

func compileCondition(tbl *lua.LTable) types.Condition {
	condType := getString(tbl, "type")

	if condType == "not" {
		if innerTbl := getTable(tbl, "inner"); innerTbl != nil {
			inner := compileCondition(innerTbl)
			return types.Condition{Type: "not", Inner: &inner}
		}
	}

	return types.Condition{Type: condType, Params: params(tbl)}
}

func compileEffects(tbl *lua.LTable) []types.Effect {
	var effects []types.Effect
	tbl.ForEach(func(k, v lua.LValue) {
		if _, ok := k.(lua.LNumber); !ok {
			return
		}
		if effTbl, ok := v.(*lua.LTable); ok {
			effects = append(effects, types.Effect{
				Type:   getString(effTbl, "type"),
				Params: params(effTbl),
			})
		}
	})
	return effects
}

// params collects every string-keyed field except "type".
func params(tbl *lua.LTable) map[string]any {
	m := map[string]any{}
	tbl.ForEach(func(k, v lua.LValue) {
		if ks, ok := k.(lua.LString); ok && ks != "type" {
			m[string(ks)] = toGoValue(v)
		}
	})
	return m
}

func compileHandler(raw rawHandler) types.EventHandler {
	handler := types.EventHandler{EventType: raw.eventType}
	if condTbl := getTable(raw.table, "conditions"); condTbl != nil {
		handler.Conditions = compileConditions(condTbl)
	}
	if effTbl := getTable(raw.table, "effects"); effTbl != nil {
		handler.Effects = compileEffects(effTbl)
	}
	return handler
}

// sortedLuaFiles returns .lua files with game.lua first and the rest
// sorted alphabetically.
func sortedLuaFiles(files []string) []string {
	var gameFile string
	var others []string
	for _, f := range files {
		if f == "game.lua" {
			gameFile = f
		} else {
			others = append(others, f)
		}
	}
	sort.Strings(others)
	if gameFile != "" {
		return append([]string{gameFile}, others...)
	}
	return others
}

func quote(s string) string {
	return fmt.Sprintf("%q", s)
}
