// Package anim drives a weighted-blend animation state machine over a
// fixed set of named channels. The blend logic lives in pure functions
// over a State record; Controller pushes the result into a Mixer.
package anim

import "strings"

// Channel is one named animation slot.
type Channel int

const (
	None Channel = iota - 1
	Idle
	Walk
	Run
	Jump
	Crouch
	BasicAttack
	ChargedAttack
	Ability1
	Ability2
	Ability3

	NumChannels
)

var channelNames = [NumChannels]string{
	Idle:          "idle",
	Walk:          "walk",
	Run:           "run",
	Jump:          "jump",
	Crouch:        "crouch",
	BasicAttack:   "basicAttack",
	ChargedAttack: "chargedAttack",
	Ability1:      "ability1",
	Ability2:      "ability2",
	Ability3:      "ability3",
}

func (c Channel) String() string {
	if c < 0 || c >= NumChannels {
		return "none"
	}
	return channelNames[c]
}

// ParseChannel maps a channel name to a Channel, ignoring case and
// separators ("basic_attack" == "basicAttack").
func ParseChannel(name string) (Channel, bool) {
	key := strings.ToLower(strings.NewReplacer("_", "", "-", "", " ", "").Replace(name))
	for i, n := range channelNames {
		if strings.ToLower(n) == key {
			return Channel(i), true
		}
	}
	return None, false
}

// Channels returns every channel in declaration order.
func Channels() []Channel {
	out := make([]Channel, NumChannels)
	for i := range out {
		out[i] = Channel(i)
	}
	return out
}

// IsLocomotion reports whether c is one of the mutually exclusive base poses.
func IsLocomotion(c Channel) bool {
	return c == Idle || c == Walk || c == Run || c == Crouch
}

// IsAttack reports whether c is a damped attack overlay.
func IsAttack(c Channel) bool {
	return c == BasicAttack || c == ChargedAttack
}

// IsAbility reports whether c is a named ability overlay.
func IsAbility(c Channel) bool {
	return c == Ability1 || c == Ability2 || c == Ability3
}

// AbilityChannel returns the channel of ability n (1..3), or None.
func AbilityChannel(n int) Channel {
	switch n {
	case 1:
		return Ability1
	case 2:
		return Ability2
	case 3:
		return Ability3
	default:
		return None
	}
}
