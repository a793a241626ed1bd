package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers all Lua constructors and helpers as globals.
func registerAPI(L *lua.LState, coll *collector) {
	registerConstructors(L, coll)
	registerConditionHelpers(L)
	registerEffectHelpers(L)
}

func registerConstructors(L *lua.LState, coll *collector) {
	// Game { title = "...", starting_souls = 100 }
	L.SetGlobal("Game", L.NewFunction(func(L *lua.LState) int {
		coll.game = L.CheckTable(1)
		return 0
	}))

	// Kit "id" { ... }, Item "id" { ... }, Talent "id" { ... } are curried:
	// the first call takes the id and returns a function taking the table.
	L.SetGlobal("Kit", curried(L, func(id string, tbl *lua.LTable) {
		coll.kits = append(coll.kits, rawDef{id: id, table: tbl})
	}))
	L.SetGlobal("Item", curried(L, func(id string, tbl *lua.LTable) {
		coll.items = append(coll.items, rawDef{id: id, table: tbl})
	}))
	L.SetGlobal("Talent", curried(L, func(id string, tbl *lua.LTable) {
		coll.talents = append(coll.talents, rawDef{id: id, table: tbl})
	}))

	// On("event_type", { conditions = {...}, effects = {...} })
	L.SetGlobal("On", L.NewFunction(func(L *lua.LState) int {
		eventType := L.CheckString(1)
		tbl := L.CheckTable(2)
		coll.handlers = append(coll.handlers, rawHandler{eventType: eventType, table: tbl})
		return 0
	}))

	// Clips { idle = "Idle_Loop", run = "Sprint" }
	L.SetGlobal("Clips", L.NewFunction(func(L *lua.LState) int {
		coll.clips = append(coll.clips, L.CheckTable(1))
		return 0
	}))
}

func curried(L *lua.LState, collect func(id string, tbl *lua.LTable)) *lua.LFunction {
	return L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			collect(id, L.CheckTable(1))
			return 0
		}))
		return 1
	})
}

func registerConditionHelpers(L *lua.LState) {
	// MinBosses(3): the event's run has at least that many kills.
	L.SetGlobal("MinBosses", numberHelper(L, "min_bosses", "value"))
	// KitIs("knight")
	L.SetGlobal("KitIs", stringHelper(L, "kit_is", "kit"))
	// HasTalent("iron_skin")
	L.SetGlobal("HasTalent", stringHelper(L, "has_talent", "talent"))
	// OwnsItem("iron_sword")
	L.SetGlobal("OwnsItem", stringHelper(L, "owns_item", "item"))
	// Equipped("iron_sword")
	L.SetGlobal("Equipped", stringHelper(L, "equipped", "item"))
	// RunsGt(10), StreakGt(5), DeathsGt(3)
	L.SetGlobal("RunsGt", numberHelper(L, "runs_gt", "value"))
	L.SetGlobal("StreakGt", numberHelper(L, "streak_gt", "value"))
	L.SetGlobal("DeathsGt", numberHelper(L, "deaths_gt", "value"))

	// Not(condition)
	L.SetGlobal("Not", L.NewFunction(func(L *lua.LState) int {
		inner := L.CheckTable(1)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("not"))
		tbl.RawSetString("inner", inner)
		L.Push(tbl)
		return 1
	}))
}

func registerEffectHelpers(L *lua.LState) {
	// Say("text"), with {bosses} and event data placeholders.
	L.SetGlobal("Say", stringHelper(L, "say", "text"))

	// Souls(100): a flat soul reward.
	L.SetGlobal("Souls", numberHelper(L, "grant_souls", "amount"))

	// SoulsPerBoss(25): a reward scaled by the run's boss count.
	L.SetGlobal("SoulsPerBoss", numberHelper(L, "grant_souls", "per_boss"))

	// TalentPoints(1)
	L.SetGlobal("TalentPoints", numberHelper(L, "grant_talent_points", "amount"))

	// Stop()
	L.SetGlobal("Stop", L.NewFunction(func(L *lua.LState) int {
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("stop"))
		L.Push(tbl)
		return 1
	}))
}

// stringHelper builds a helper returning {type = typ, [key] = <string arg>}.
func stringHelper(L *lua.LState, typ, key string) *lua.LFunction {
	return L.NewFunction(func(L *lua.LState) int {
		v := L.CheckString(1)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString(typ))
		tbl.RawSetString(key, lua.LString(v))
		L.Push(tbl)
		return 1
	})
}

// numberHelper builds a helper returning {type = typ, [key] = <number arg>}.
func numberHelper(L *lua.LState, typ, key string) *lua.LFunction {
	return L.NewFunction(func(L *lua.LState) int {
		v := L.CheckNumber(1)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString(typ))
		tbl.RawSetString(key, v)
		L.Push(tbl)
		return 1
	})
}
