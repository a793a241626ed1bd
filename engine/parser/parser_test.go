package parser

import (
	"testing"

	"github.com/nathoo/bossrush/types"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  types.Intent
	}{
		// Empty / whitespace
		{
			name:  "empty string",
			input: "",
			want:  types.Intent{},
		},
		{
			name:  "whitespace only",
			input: "   ",
			want:  types.Intent{},
		},

		// Bare verbs
		{
			name:  "stats",
			input: "stats",
			want:  types.Intent{Verb: "stats"},
		},
		{
			name:  "die",
			input: "die",
			want:  types.Intent{Verb: "die"},
		},
		{
			name:  "help",
			input: "HELP",
			want:  types.Intent{Verb: "help"},
		},

		// Aliases
		{
			name:  "i → gear",
			input: "i",
			want:  types.Intent{Verb: "gear"},
		},
		{
			name:  "? → help",
			input: "?",
			want:  types.Intent{Verb: "help"},
		},
		{
			name:  "purchase → buy",
			input: "purchase iron sword",
			want:  types.Intent{Verb: "buy", Object: "iron sword"},
		},
		{
			name:  "wear → equip",
			input: "wear leather cap",
			want:  types.Intent{Verb: "equip", Object: "leather cap"},
		},
		{
			name:  "learn → unlock",
			input: "learn sharpened edge",
			want:  types.Intent{Verb: "unlock", Object: "sharpened edge"},
		},
		{
			name:  "abandon → reset",
			input: "abandon",
			want:  types.Intent{Verb: "reset"},
		},

		// Runs
		{
			name:  "start knight",
			input: "start knight",
			want:  types.Intent{Verb: "start", Object: "knight"},
		},
		{
			name:  "start as knight",
			input: "start as knight",
			want:  types.Intent{Verb: "start", Object: "knight"},
		},
		{
			name:  "new run as rogue",
			input: "new run as rogue",
			want:  types.Intent{Verb: "start", Object: "rogue"},
		},
		{
			name:  "begin with default kit",
			input: "begin",
			want:  types.Intent{Verb: "start"},
		},
		{
			name:  "battle → fight",
			input: "battle",
			want:  types.Intent{Verb: "fight"},
		},

		// Snapshot verbs
		{
			name:  "defeat with health and potions",
			input: "defeat 80 3",
			want:  types.Intent{Verb: "defeat", Object: "80", Target: "3"},
		},
		{
			name:  "kill boss with labels",
			input: "kill boss with 42.5 hp and 2 potions",
			want:  types.Intent{Verb: "defeat", Object: "42.5", Target: "2"},
		},
		{
			name:  "defeat without numbers",
			input: "beat boss",
			want:  types.Intent{Verb: "defeat"},
		},
		{
			name:  "save → checkpoint",
			input: "save 60 1",
			want:  types.Intent{Verb: "checkpoint", Object: "60", Target: "1"},
		},
		{
			name:  "save run",
			input: "save run 10",
			want:  types.Intent{Verb: "checkpoint", Object: "10"},
		},

		// Gear
		{
			name:  "take off weapon",
			input: "take off weapon",
			want:  types.Intent{Verb: "unequip", Object: "weapon"},
		},
		{
			name:  "put on the iron sword",
			input: "put on the iron sword",
			want:  types.Intent{Verb: "equip", Object: "iron sword"},
		},
		{
			name:  "equip with preposition target",
			input: "equip iron sword to weapon",
			want:  types.Intent{Verb: "equip", Object: "iron sword", Target: "weapon"},
		},
		{
			name:  "shop filtered by slot",
			input: "shop weapon",
			want:  types.Intent{Verb: "shop", Object: "weapon"},
		},
		{
			name:  "talents in branch",
			input: "talents offense",
			want:  types.Intent{Verb: "talents", Object: "offense"},
		},

		// Boss preview
		{
			name:  "boss 3",
			input: "boss 3",
			want:  types.Intent{Verb: "boss", Object: "3"},
		},
		{
			name:  "next boss",
			input: "next boss",
			want:  types.Intent{Verb: "boss"},
		},

		// Fillers
		{
			name:  "buy a potion",
			input: "buy a potion",
			want:  types.Intent{Verb: "buy", Object: "potion"},
		},
		{
			name:  "unequip my helmet",
			input: "unequip my helmet",
			want:  types.Intent{Verb: "unequip", Object: "helmet"},
		},

		// Unknown verbs pass through
		{
			name:  "unknown verb",
			input: "dance wildly",
			want:  types.Intent{Verb: "dance", Object: "wildly"},
		},
		{
			name:  "extra whitespace",
			input: "  buy    iron   sword  ",
			want:  types.Intent{Verb: "buy", Object: "iron sword"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}
