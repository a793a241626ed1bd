package progress

import (
	"testing"

	"github.com/nathoo/bossrush/types"
)

func talentCatalog() map[string]types.TalentDef {
	return map[string]types.TalentDef{
		"off_0": {ID: "off_0", Branch: types.BranchOffense, Tier: 0, Cost: 1},
		"off_1": {ID: "off_1", Branch: types.BranchOffense, Tier: 1, Cost: 1, Prereq: "off_0"},
		"off_2": {ID: "off_2", Branch: types.BranchOffense, Tier: 2, Cost: 2, Prereq: "off_1"},
		"def_0": {ID: "def_0", Branch: types.BranchDefense, Tier: 0, Cost: 1},
		"def_1": {ID: "def_1", Branch: types.BranchDefense, Tier: 1, Cost: 1, Prereq: "def_0"},
	}
}

func TestPlayer_FreshIsEmpty(t *testing.T) {
	s, _ := newTestStore(t)
	p := s.Player()
	if p.Souls != 0 || p.TalentPoints != 0 {
		t.Errorf("expected zero currency, got %+v", p)
	}
	if p.OwnedItems == nil || p.Gear == nil || p.Talents == nil {
		t.Error("expected non-nil collections")
	}
}

func TestPurchaseItem(t *testing.T) {
	s, _ := newTestStore(t)
	s.AddSouls(500)

	if !s.PurchaseItem("sword", 300) {
		t.Fatal("expected purchase to succeed")
	}
	p := s.Player()
	if p.Souls != 200 {
		t.Errorf("expected 200 souls left, got %d", p.Souls)
	}
	if len(p.OwnedItems) != 1 || p.OwnedItems[0] != "sword" {
		t.Errorf("expected [sword], got %v", p.OwnedItems)
	}

	if s.PurchaseItem("sword", 0) {
		t.Error("expected duplicate purchase to fail")
	}
	if s.PurchaseItem("armor", 201) {
		t.Error("expected unaffordable purchase to fail")
	}
	if s.PurchaseItem("trinket", -10) {
		t.Error("expected negative cost to fail")
	}
	if got := s.Player(); got.Souls != 200 || len(got.OwnedItems) != 1 {
		t.Errorf("expected state unchanged after failures, got %+v", got)
	}
}

func TestPurchaseItem_NeverOverspendsOrDuplicates(t *testing.T) {
	s, _ := newTestStore(t)
	s.AddSouls(1000)

	attempts := []struct {
		id   string
		cost int
	}{
		{"a", 400}, {"b", 400}, {"a", 100}, {"c", 300}, {"d", 200}, {"b", 0}, {"e", 150},
	}
	spent := 0
	for _, a := range attempts {
		before := s.Player().Souls
		ok := s.PurchaseItem(a.id, a.cost)
		if ok && a.cost > before {
			t.Errorf("purchase of %s for %d succeeded with only %d souls", a.id, a.cost, before)
		}
		if ok {
			spent += a.cost
		}
	}
	p := s.Player()
	if spent > 1000 {
		t.Errorf("spent %d of 1000 souls", spent)
	}
	if p.Souls != 1000-spent {
		t.Errorf("expected %d souls, got %d", 1000-spent, p.Souls)
	}
	seen := map[string]bool{}
	for _, id := range p.OwnedItems {
		if seen[id] {
			t.Errorf("duplicate owned item %q", id)
		}
		seen[id] = true
	}
}

func TestSpendSouls_DoesNotOwn(t *testing.T) {
	s, _ := newTestStore(t)
	s.AddSouls(100)
	if !s.SpendSouls(60) {
		t.Fatal("expected spend to succeed")
	}
	if !s.SpendSouls(40) {
		t.Fatal("expected exact spend to succeed")
	}
	if s.SpendSouls(1) {
		t.Error("expected spend with no souls to fail")
	}
	p := s.Player()
	if p.Souls != 0 || len(p.OwnedItems) != 0 {
		t.Errorf("expected 0 souls and no items, got %+v", p)
	}
}

func TestAddSouls_IgnoresNonPositive(t *testing.T) {
	s, _ := newTestStore(t)
	s.AddSouls(-5)
	s.AddSouls(0)
	if got := s.Player().Souls; got != 0 {
		t.Errorf("expected 0 souls, got %d", got)
	}
}

func TestEquipAndUnequip(t *testing.T) {
	s, _ := newTestStore(t)
	s.EquipItem("sword", types.SlotWeapon)
	s.EquipItem("cap", types.SlotHelmet)

	p := s.Player()
	if p.Gear[types.SlotWeapon] != "sword" || p.Gear[types.SlotHelmet] != "cap" {
		t.Errorf("unexpected gear %v", p.Gear)
	}

	s.EquipItem("axe", types.SlotWeapon)
	if got := s.Player().Gear[types.SlotWeapon]; got != "axe" {
		t.Errorf("expected axe to replace sword, got %q", got)
	}

	s.UnequipSlot(types.SlotWeapon)
	p = s.Player()
	if _, ok := p.Gear[types.SlotWeapon]; ok {
		t.Error("expected weapon slot empty")
	}
	if p.Gear[types.SlotHelmet] != "cap" {
		t.Error("expected helmet untouched")
	}
}

func TestUnlockTalent(t *testing.T) {
	s, _ := newTestStore(t)
	s = New(s.backend, WithTalents(talentCatalog()))
	s.AddTalentPoints(3)

	if s.UnlockTalent("off_1", 1) {
		t.Error("expected unlock without prereq to fail")
	}
	if !s.UnlockTalent("off_0", 1) {
		t.Fatal("expected tier 0 unlock to succeed")
	}
	if s.UnlockTalent("off_0", 1) {
		t.Error("expected repeat unlock to fail")
	}
	if !s.UnlockTalent("off_1", 1) {
		t.Fatal("expected tier 1 unlock to succeed once prereq is held")
	}
	if s.UnlockTalent("off_2", 2) {
		t.Error("expected unlock without enough points to fail")
	}

	p := s.Player()
	if p.TalentPoints != 1 {
		t.Errorf("expected 1 point left, got %d", p.TalentPoints)
	}
	if len(p.Talents) != 2 {
		t.Errorf("expected 2 talents, got %v", p.Talents)
	}
}

func TestUnlockTalent_NeverSkipsPrereq(t *testing.T) {
	cat := talentCatalog()
	for id, def := range cat {
		if def.Prereq == "" {
			continue
		}
		s, _ := newTestStore(t)
		s = New(s.backend, WithTalents(cat))
		s.AddTalentPoints(100)
		if s.UnlockTalent(id, def.Cost) {
			t.Errorf("unlocked %s without prereq %s", id, def.Prereq)
		}
	}
}

func TestAddTalentPoints(t *testing.T) {
	s, _ := newTestStore(t)
	s.AddTalentPoints(2)
	s.AddTalentPoints(0)
	s.AddTalentPoints(1)
	if got := s.Player().TalentPoints; got != 3 {
		t.Errorf("expected 3 points, got %d", got)
	}
}

func TestPlayer_SeparateFromRun(t *testing.T) {
	s, _ := newTestStore(t)
	s.AddSouls(50)
	s.StartNewRun("mage")
	s.OnPlayerDeath()
	if got := s.Player().Souls; got != 50 {
		t.Errorf("expected souls to survive death, got %d", got)
	}
}
