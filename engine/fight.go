package engine

import (
	"fmt"
	"math"

	"github.com/nathoo/bossrush/types"
)

// Player base stats before gear and talent bonuses.
const (
	BasePlayerHealth   = 100.0
	BasePlayerDamage   = 150.0
	BaseCritMultiplier = 1.5
	BaseDodgeChance    = 0.5

	PotionHeal      = 0.4  // fraction of max health
	PotionThreshold = 0.35 // drink below this fraction of max health
	maxDodgeChance  = 0.8
	maxFightRounds  = 200
)

// bossMove is one entry of the boss's weighted move table.
type bossMove struct {
	name   string
	weight int
	mult   float64 // fraction of the boss's damage stat
}

var bossMoves = []bossMove{
	{name: "swipe", weight: 6, mult: 1},
	{name: "slam", weight: 3, mult: 1.6},
	{name: "roar", weight: 1, mult: 0},
}

// Fighter is the player's side of a simulated fight.
type Fighter struct {
	Bonus   types.BonusVector
	Health  float64 // current; clamped to MaxHealth
	Potions int
}

// FightReport is the outcome of one simulated boss fight.
type FightReport struct {
	Won         bool
	Rounds      int
	Health      float64
	Potions     int
	DamageDealt float64
	DamageTaken float64
	Crits       int
	Dodges      int
	PotionsUsed int
}

// MaxHealth returns the player's health pool for a bonus vector.
func MaxHealth(bonus types.BonusVector) float64 {
	return BasePlayerHealth + bonus[types.StatHealth]
}

// Simulate fights boss round by round until one side falls. The player
// strikes first each round; the boss answers with a weighted move.
func Simulate(f Fighter, boss types.BossConfig, rng *RNG) FightReport {
	maxHP := MaxHealth(f.Bonus)
	hp := math.Min(f.Health, maxHP)
	if hp <= 0 {
		hp = maxHP
	}
	bossHP := float64(boss.Health)
	rep := FightReport{Potions: f.Potions}

	weights := make([]int, len(bossMoves))
	for i, m := range bossMoves {
		weights[i] = m.weight
	}

	for rep.Rounds < maxFightRounds {
		rep.Rounds++

		dmg, crit := playerStrike(f.Bonus, rng)
		if rep.Rounds == 1 {
			dmg *= 1 + f.Bonus[types.StatBackstabMultiplier]
		}
		if crit {
			rep.Crits++
		}
		bossHP -= dmg
		rep.DamageDealt += dmg
		hp = math.Min(maxHP, hp+dmg*f.Bonus[types.StatLifesteal])
		if bossHP <= 0 {
			rep.Won = true
			break
		}

		if hp < maxHP*PotionThreshold && rep.Potions > 0 {
			rep.Potions--
			rep.PotionsUsed++
			hp = math.Min(maxHP, hp+maxHP*PotionHeal)
		}

		move := bossMoves[rng.WeightedSelect(weights)]
		if move.mult > 0 {
			if rng.Chance(dodgeChance(f.Bonus)) {
				rep.Dodges++
			} else {
				taken := BossHit(float64(boss.Damage)*move.mult, f.Bonus[types.StatArmor])
				hp -= taken
				rep.DamageTaken += taken
			}
		}
		if hp <= 0 {
			hp = 0
			break
		}
		hp = math.Min(maxHP, hp+f.Bonus[types.StatHealthRegen])
	}

	rep.Health = math.Round(hp*10) / 10
	return rep
}

// playerStrike rolls one player hit: base damage scaled by attack speed
// and a 1d6 swing, multiplied on a crit.
func playerStrike(bonus types.BonusVector, rng *RNG) (float64, bool) {
	base := (BasePlayerDamage + bonus[types.StatDamage]) * (1 + bonus[types.StatAttackSpeed])
	dmg := base * (0.75 + 0.1*float64(rng.Roll(6)))
	if rng.Chance(bonus[types.StatCritChance]) {
		return dmg * (BaseCritMultiplier + bonus[types.StatCritMultiplier]), true
	}
	return dmg, false
}

// BossHit reduces raw damage by armor: raw * 100 / (100 + armor), never
// below 1.
func BossHit(raw, armor float64) float64 {
	if armor < 0 {
		armor = 0
	}
	return math.Max(1, raw*100/(100+armor))
}

func dodgeChance(bonus types.BonusVector) float64 {
	return math.Min(maxDodgeChance, BaseDodgeChance+bonus[types.StatStamina]/400)
}

// fightSummary renders a report for the hub.
func fightSummary(n int, boss types.BossConfig, rep FightReport) []string {
	out := []string{
		fmt.Sprintf("Boss %d (%d HP, %d dmg)", n+1, boss.Health, boss.Damage),
		fmt.Sprintf("  %d rounds: dealt %.0f, took %.0f, %d crits, %d dodges, %d potions used",
			rep.Rounds, rep.DamageDealt, rep.DamageTaken, rep.Crits, rep.Dodges, rep.PotionsUsed),
	}
	if rep.Won {
		out = append(out, fmt.Sprintf("Victory with %.1f HP and %d potions left.", rep.Health, rep.Potions))
	} else {
		out = append(out, "You fall.")
	}
	return out
}
