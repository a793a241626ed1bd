package progress

import (
	"github.com/nathoo/bossrush/engine/save"
	"github.com/nathoo/bossrush/types"
)

// Player returns the player record, or empty data when absent or unreadable.
func (s *Store) Player() types.PlayerData {
	p, err := load(s.backend, save.KeyPlayer, save.DecodePlayer)
	if err != nil {
		s.report("read player", err)
		return save.NewPlayer()
	}
	return save.NormalizePlayer(p)
}

// PurchaseItem buys a gear item. It fails, leaving state untouched, when
// the player cannot afford it or already owns it.
func (s *Store) PurchaseItem(itemID string, cost int) bool {
	p := s.Player()
	if cost < 0 || p.Souls < cost || hasID(p.OwnedItems, itemID) {
		return false
	}
	p.Souls -= cost
	p.OwnedItems = append(p.OwnedItems, itemID)
	return s.writePlayer(p)
}

// SpendSouls deducts cost for a repeatable purchase such as a consumable.
// Nothing is added to the owned item set.
func (s *Store) SpendSouls(cost int) bool {
	p := s.Player()
	if cost < 0 || p.Souls < cost {
		return false
	}
	p.Souls -= cost
	return s.writePlayer(p)
}

// AddSouls credits n souls. Non-positive n is ignored.
func (s *Store) AddSouls(n int) {
	if n <= 0 {
		return
	}
	p := s.Player()
	p.Souls += n
	s.writePlayer(p)
}

// EquipItem puts itemID in slot. Ownership and slot checks are the
// caller's job.
func (s *Store) EquipItem(itemID string, slot types.Slot) {
	p := s.Player()
	p.Gear[slot] = itemID
	s.writePlayer(p)
}

// UnequipSlot empties slot.
func (s *Store) UnequipSlot(slot types.Slot) {
	p := s.Player()
	delete(p.Gear, slot)
	s.writePlayer(p)
}

// UnlockTalent spends cost talent points on talentID. It fails when points
// are short, the talent is already unlocked, or its prereq is locked.
func (s *Store) UnlockTalent(talentID string, cost int) bool {
	p := s.Player()
	if cost < 0 || p.TalentPoints < cost || hasID(p.Talents, talentID) {
		return false
	}
	if pre, ok := s.prereqs[talentID]; ok && !hasID(p.Talents, pre) {
		return false
	}
	p.TalentPoints -= cost
	p.Talents = append(p.Talents, talentID)
	return s.writePlayer(p)
}

// AddTalentPoints grants n talent points. Non-positive n is ignored.
func (s *Store) AddTalentPoints(n int) {
	if n <= 0 {
		return
	}
	p := s.Player()
	p.TalentPoints += n
	s.writePlayer(p)
}

// writePlayer persists p and reports whether the write landed.
func (s *Store) writePlayer(p types.PlayerData) bool {
	err := store(s.backend, save.KeyPlayer, p, save.EncodePlayer)
	s.report("write player", err)
	return err == nil
}

func hasID(list []string, id string) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}
