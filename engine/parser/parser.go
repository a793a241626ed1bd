// Package parser converts hub command strings into Intent structs.
// No grammar beyond aliases, filler words, and a single preposition split.
package parser

import (
	"strings"

	"github.com/nathoo/bossrush/types"
)

var verbAliases = map[string]string{
	// Runs
	"begin":   "start",
	"new":     "start",
	"play":    "start",
	"kill":    "defeat",
	"beat":    "defeat",
	"slay":    "defeat",
	"win":     "defeat",
	"save":    "checkpoint",
	"cp":      "checkpoint",
	"rest":    "checkpoint",
	"died":    "die",
	"dead":    "die",
	"death":   "die",
	"abandon": "reset",
	"f":       "fight",
	"battle":  "fight",
	"attack":  "fight",

	// Shop and gear
	"purchase": "buy",
	"get":      "buy",
	"wear":     "equip",
	"wield":    "equip",
	"don":      "equip",
	"remove":   "unequip",
	"doff":     "unequip",
	"learn":    "unlock",
	"train":    "unlock",

	// Read-only views
	"r":         "run",
	"m":         "meta",
	"records":   "meta",
	"s":         "stats",
	"st":        "stats",
	"inventory": "gear",
	"inv":       "gear",
	"i":         "gear",
	"store":     "shop",
	"t":         "talents",
	"tree":      "talents",
	"talent":    "talents",
	"next":      "boss",
	"h":         "help",
	"?":         "help",
}

var prepositions = map[string]bool{
	"as": true, "in": true, "from": true, "to": true, "with": true, "at": true,
}

var fillers = map[string]bool{
	"the": true, "a": true, "an": true, "my": true,
}

// Parse converts a raw command string into an Intent.
func Parse(input string) types.Intent {
	input = strings.TrimSpace(input)
	if input == "" {
		return types.Intent{}
	}

	words := strings.Fields(strings.ToLower(input))
	words = expandMultiWordVerbs(words)

	if alias, ok := verbAliases[words[0]]; ok {
		words[0] = alias
	}

	verb := words[0]
	rest := stripFillers(words[1:])

	switch verb {
	case "defeat", "checkpoint":
		return numericIntent(verb, rest)
	case "start":
		// "start as knight", "start knight"
		if len(rest) > 1 && prepositions[rest[0]] {
			rest = rest[1:]
		}
	}

	object, target := splitOnPreposition(rest)
	return types.Intent{Verb: verb, Object: object, Target: target}
}

// expandMultiWordVerbs handles "new run", "take off", "put on" etc.
func expandMultiWordVerbs(words []string) []string {
	if len(words) < 2 {
		return words
	}

	switch words[0] {
	case "new", "start", "begin":
		if words[1] == "run" || words[1] == "game" {
			return append([]string{"start"}, words[2:]...)
		}
	case "put":
		if words[1] == "on" {
			return append([]string{"equip"}, words[2:]...)
		}
	case "take":
		if words[1] == "off" {
			return append([]string{"unequip"}, words[2:]...)
		}
	case "give":
		if words[1] == "up" {
			return append([]string{"reset"}, words[2:]...)
		}
	case "next":
		if words[1] == "boss" {
			return append([]string{"boss"}, words[2:]...)
		}
	case "kill", "defeat", "beat", "slay":
		if words[1] == "boss" {
			return append([]string{"defeat"}, words[2:]...)
		}
	case "save", "checkpoint":
		if words[1] == "run" || words[1] == "game" {
			return append([]string{"checkpoint"}, words[2:]...)
		}
	}

	return words
}

// numericIntent reads "<health> [potions]" for snapshot verbs. Words
// like "with", "hp", and "potions" are allowed and ignored.
func numericIntent(verb string, words []string) types.Intent {
	var nums []string
	for _, w := range words {
		if prepositions[w] || w == "hp" || w == "health" || w == "potions" || w == "potion" || w == "and" {
			continue
		}
		nums = append(nums, w)
	}
	intent := types.Intent{Verb: verb}
	if len(nums) > 0 {
		intent.Object = nums[0]
	}
	if len(nums) > 1 {
		intent.Target = nums[1]
	}
	return intent
}

func stripFillers(words []string) []string {
	result := make([]string, 0, len(words))
	for _, w := range words {
		if !fillers[w] {
			result = append(result, w)
		}
	}
	return result
}

// splitOnPreposition splits words on the first preposition.
// Words before it become the object, words after become the target.
func splitOnPreposition(words []string) (object, target string) {
	for i, w := range words {
		if prepositions[w] {
			return strings.Join(words[:i], " "), strings.Join(words[i+1:], " ")
		}
	}
	return strings.Join(words, " "), ""
}
