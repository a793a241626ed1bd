// Package types defines the shared data structures for the bossrush engine.
// It holds type definitions only, with no logic or methods.
package types

import "time"

// Stat identifies one recognized bonus stat. The set is closed: content
// files naming any other stat are rejected at load time.
type Stat int

const (
	StatDamage Stat = iota
	StatHealth
	StatArmor
	StatStamina
	StatCritChance
	StatCritMultiplier
	StatBackstabMultiplier
	StatLifesteal
	StatRunSpeed
	StatJumpForce
	StatAttackSpeed
	StatHealthRegen
	StatSoulBonus

	NumStats
)

// BonusVector is the additive total of every recognized stat.
// Fraction stats (crit chance, lifesteal, soul bonus) add as fractions.
type BonusVector [NumStats]float64

// StatBonuses is the bonus contribution of a single item or talent.
type StatBonuses map[Stat]float64

// Slot is an equipment slot.
type Slot string

const (
	SlotWeapon     Slot = "weapon"
	SlotHelmet     Slot = "helmet"
	SlotChest      Slot = "chest"
	SlotBoots      Slot = "boots"
	SlotConsumable Slot = "consumable"
)

// Branch is a talent tree branch.
type Branch string

const (
	BranchOffense Branch = "offense"
	BranchDefense Branch = "defense"
	BranchUtility Branch = "utility"
)

// ItemDef is an immutable shop catalog entry.
type ItemDef struct {
	ID         string
	Name       string
	Slot       Slot
	Rarity     string // "common", "uncommon", "rare", "epic", "legendary"
	Cost       int    // souls; 0 marks a default item every player owns
	Bonuses    StatBonuses
	Consumable bool
	Effect     string // consumable effect tag: "potion", "soul_crystal"
}

// TalentDef is an immutable talent tree node.
type TalentDef struct {
	ID      string
	Name    string
	Branch  Branch
	Tier    int // 0..4
	Cost    int // talent points
	Bonuses StatBonuses
	Prereq  string // talent ID, or "" for tier 0
}

// KitDef is a starting loadout a run can be started with.
type KitDef struct {
	ID          string
	Name        string
	Description string
	Gear        map[Slot]string // slot → zero-cost default item
}

// MetaStats holds lifetime counters that survive every run.
type MetaStats struct {
	TotalRuns      int `json:"totalRuns"`
	TotalBossKills int `json:"totalBossKills"`
	TotalDeaths    int `json:"totalDeaths"`
	BestStreak     int `json:"bestStreak"`
}

// RunState is the run in progress. A nil *RunState means no active run.
type RunState struct {
	RunID          string    `json:"runId"`
	KitID          string    `json:"kitId"`
	BossesDefeated int       `json:"bossesDefeated"`
	Potions        int       `json:"potions"`
	Health         *float64  `json:"health"` // nil until the first checkpoint
	SavedAt        time.Time `json:"savedAt"`
}

// Snapshot is the player's combat state at a checkpoint or boss kill.
type Snapshot struct {
	Health  float64
	Potions int
}

// PlayerData holds currency, inventory, gear, and talents across runs.
type PlayerData struct {
	Souls        int             `json:"souls"`
	OwnedItems   []string        `json:"ownedItems"` // sorted set
	Gear         map[Slot]string `json:"gear"`
	Talents      []string        `json:"talents"` // sorted set
	TalentPoints int             `json:"talentPoints"`
}

// BossConfig is the scaled stat block of the n-th boss in a run.
type BossConfig struct {
	Health int
	Damage int
}

// Intent is the parsed representation of a hub command.
type Intent struct {
	Verb   string
	Object string // optional
	Target string // optional
}

// Effect is a single atomic reward or message instruction.
type Effect struct {
	Type   string
	Params map[string]any
}

// Event is emitted after a hub command mutates progression state.
type Event struct {
	Type string
	Data map[string]any
}

// Condition is a predicate over the player, lifetime stats, and the
// event being handled.
type Condition struct {
	Type   string
	Params map[string]any
	Inner  *Condition // for "not" conditions
}

// EventHandler is a catalog rule triggered by an event. All conditions
// must hold for its effects to run.
type EventHandler struct {
	EventType  string
	Conditions []Condition
	Effects    []Effect
}

// Result is the output of a single hub step.
type Result struct {
	Effects []Effect
	Events  []Event
	Output  []string
}
