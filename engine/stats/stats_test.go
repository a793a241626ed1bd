package stats

import (
	"math/rand"
	"testing"

	"github.com/nathoo/bossrush/engine/catalog"
	"github.com/nathoo/bossrush/types"
)

func testDefs() *catalog.Defs {
	return &catalog.Defs{
		Items: map[string]types.ItemDef{
			"sword": {ID: "sword", Slot: types.SlotWeapon, Bonuses: types.StatBonuses{
				types.StatDamage: 8, types.StatCritChance: 0.05,
			}},
			"cap": {ID: "cap", Slot: types.SlotHelmet, Bonuses: types.StatBonuses{
				types.StatArmor: 3, types.StatHealth: 10,
			}},
			"boots": {ID: "boots", Slot: types.SlotBoots, Bonuses: types.StatBonuses{
				types.StatRunSpeed: 0.1, types.StatJumpForce: 1.5,
			}},
		},
		Talents: map[string]types.TalentDef{
			"off_0": {ID: "off_0", Bonuses: types.StatBonuses{types.StatDamage: 5, types.StatCritChance: 0.03}},
			"def_0": {ID: "def_0", Bonuses: types.StatBonuses{types.StatArmor: 2}},
			"utl_0": {ID: "utl_0", Bonuses: types.StatBonuses{types.StatSoulBonus: 0.1}},
		},
	}
}

func TestCompute_Empty(t *testing.T) {
	v := Compute(types.PlayerData{}, testDefs())
	if v != (types.BonusVector{}) {
		t.Errorf("expected zero vector, got %v", v)
	}
}

func TestCompute_SumsGearAndTalents(t *testing.T) {
	pd := types.PlayerData{
		Gear:    map[types.Slot]string{types.SlotWeapon: "sword", types.SlotHelmet: "cap"},
		Talents: []string{"off_0", "def_0"},
	}
	v := Compute(pd, testDefs())

	if v[types.StatDamage] != 13 {
		t.Errorf("expected damage 13, got %v", v[types.StatDamage])
	}
	if v[types.StatArmor] != 5 {
		t.Errorf("expected armor 5, got %v", v[types.StatArmor])
	}
	if got := v[types.StatCritChance]; got < 0.0799 || got > 0.0801 {
		t.Errorf("expected additive crit chance 0.08, got %v", got)
	}
	if v[types.StatHealth] != 10 {
		t.Errorf("expected health 10, got %v", v[types.StatHealth])
	}
}

func TestCompute_UnknownIDsIgnored(t *testing.T) {
	pd := types.PlayerData{
		Gear:    map[types.Slot]string{types.SlotWeapon: "ghost_blade"},
		Talents: []string{"ghost_talent"},
	}
	if v := Compute(pd, testDefs()); v != (types.BonusVector{}) {
		t.Errorf("expected zero vector, got %v", v)
	}
}

func TestCompute_NilCatalog(t *testing.T) {
	pd := types.PlayerData{
		Gear:    map[types.Slot]string{types.SlotWeapon: "sword"},
		Talents: []string{"off_0"},
	}
	if v := Compute(pd, nil); v != (types.BonusVector{}) {
		t.Errorf("expected zero vector, got %v", v)
	}
}

func TestCompute_OrderIndependent(t *testing.T) {
	defs := testDefs()
	talents := []string{"off_0", "def_0", "utl_0"}
	base := Compute(types.PlayerData{
		Gear:    map[types.Slot]string{types.SlotWeapon: "sword", types.SlotHelmet: "cap", types.SlotBoots: "boots"},
		Talents: talents,
	}, defs)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		shuffled := append([]string(nil), talents...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		// Map iteration order over gear is randomized by the runtime as well.
		got := Compute(types.PlayerData{
			Gear:    map[types.Slot]string{types.SlotBoots: "boots", types.SlotWeapon: "sword", types.SlotHelmet: "cap"},
			Talents: shuffled,
		}, defs)
		for _, s := range All() {
			if diff := got[s] - base[s]; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("order %v: %s = %v, want %v", shuffled, Name(s), got[s], base[s])
			}
		}
	}
}

func TestAdd_SkipsOutOfRange(t *testing.T) {
	v := Add(types.BonusVector{}, types.StatBonuses{types.NumStats: 99, -1: 5, types.StatStamina: 2})
	if v[types.StatStamina] != 2 {
		t.Errorf("expected stamina 2, got %v", v[types.StatStamina])
	}
	var sum float64
	for _, x := range v {
		sum += x
	}
	if sum != 2 {
		t.Errorf("expected only stamina to accumulate, sum %v", sum)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		key  string
		want types.Stat
		ok   bool
	}{
		{"damage", types.StatDamage, true},
		{"critChance", types.StatCritChance, true},
		{"crit_chance", types.StatCritChance, true},
		{"BACKSTAB-MULTIPLIER", types.StatBackstabMultiplier, true},
		{"soulBonus", types.StatSoulBonus, true},
		{"mana", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := Parse(tt.key)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("Parse(%q) = %v, %v; want %v, %v", tt.key, got, ok, tt.want, tt.ok)
		}
	}
}

func TestName_RoundTripsParse(t *testing.T) {
	for _, s := range All() {
		got, ok := Parse(Name(s))
		if !ok || got != s {
			t.Errorf("Parse(Name(%d)) = %v, %v", s, got, ok)
		}
	}
	if Name(types.NumStats) != "stat(13)" {
		t.Errorf("unexpected out-of-range name %q", Name(types.NumStats))
	}
}

func TestFormat(t *testing.T) {
	var v types.BonusVector
	v[types.StatDamage] = 13
	v[types.StatCritChance] = 0.08
	lines := Format(v)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %v", lines)
	}
	if lines[0] != "damage: +13" {
		t.Errorf("unexpected line %q", lines[0])
	}
	if lines[1] != "critChance: +8.0%" {
		t.Errorf("unexpected line %q", lines[1])
	}
}
