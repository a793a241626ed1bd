package anim

import (
	"regexp"
	"strings"
)

// Clip is read-only metadata of an animation asset.
type Clip struct {
	Name     string
	Duration float64 // seconds
	Tracks   []NodeTrack
}

// NodeTrack names one animated node property in a clip.
type NodeTrack struct {
	Node     string
	Property string // "position", "quaternion", "scale"
}

// Rig is the set of clips bound to channels. A nil entry means the
// channel is absent and stays inert.
type Rig struct {
	Clips [NumChannels]*Clip
}

// Has reports whether c resolved to a clip.
func (r *Rig) Has(c Channel) bool {
	return c >= 0 && c < NumChannels && r.Clips[c] != nil
}

// Duration returns the bound clip's duration, or 0 when absent.
func (r *Rig) Duration(c Channel) float64 {
	if !r.Has(c) {
		return 0
	}
	return r.Clips[c].Duration
}

// resolveOrder is the order channels claim clips in. Specific channels
// go first so "charged attack" is not taken by basicAttack and
// "run attack" is not taken by run.
var resolveOrder = []Channel{
	ChargedAttack, Ability1, Ability2, Ability3, BasicAttack,
	Jump, Crouch, Run, Walk, Idle,
}

var patterns = map[Channel]*regexp.Regexp{
	ChargedAttack: regexp.MustCompile(`(?i)\b(charge|charging|heavy|power)`),
	Ability1:      regexp.MustCompile(`(?i)\b(ability|skill|spell|cast)\s*0?1\b`),
	Ability2:      regexp.MustCompile(`(?i)\b(ability|skill|spell|cast)\s*0?2\b`),
	Ability3:      regexp.MustCompile(`(?i)\b(ability|skill|spell|cast)\s*0?3\b`),
	BasicAttack:   regexp.MustCompile(`(?i)(attack|slash|swing|punch|strike|melee)`),
	Jump:          regexp.MustCompile(`(?i)\bjump`),
	Crouch:        regexp.MustCompile(`(?i)\b(crouch|sneak)`),
	Run:           regexp.MustCompile(`(?i)\b(run|sprint|jog)`),
	Walk:          regexp.MustCompile(`(?i)\bwalk`),
	Idle:          regexp.MustCompile(`(?i)\b(idle|stand|breath)`),
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Normalize lower-cases s and collapses every non-alphanumeric run to a
// single space.
func Normalize(s string) string {
	return strings.TrimSpace(nonAlnum.ReplaceAllString(strings.ToLower(s), " "))
}

// Resolve binds clips to channels. Hints from names (channel name → clip
// name) are tried first, exact then substring on normalized names; the
// remaining channels fall back to name patterns. Each clip binds at most
// one channel.
func Resolve(clips []Clip, names map[string]string) Rig {
	var rig Rig
	norm := make([]string, len(clips))
	for i, c := range clips {
		norm[i] = Normalize(c.Name)
	}
	claimed := make([]bool, len(clips))
	bind := func(ch Channel, i int) {
		clip := clips[i]
		rig.Clips[ch] = &clip
		claimed[i] = true
	}

	hints := map[Channel]string{}
	for key, hint := range names {
		if ch, ok := ParseChannel(key); ok && Normalize(hint) != "" {
			hints[ch] = Normalize(hint)
		}
	}

	for _, ch := range resolveOrder {
		hint, ok := hints[ch]
		if !ok {
			continue
		}
		if i := find(norm, claimed, func(n string) bool { return n == hint }); i >= 0 {
			bind(ch, i)
		} else if i := find(norm, claimed, func(n string) bool { return strings.Contains(n, hint) }); i >= 0 {
			bind(ch, i)
		}
	}

	for _, ch := range resolveOrder {
		if rig.Clips[ch] != nil {
			continue
		}
		re := patterns[ch]
		if i := find(norm, claimed, re.MatchString); i >= 0 {
			bind(ch, i)
		}
	}
	return rig
}

func find(norm []string, claimed []bool, match func(string) bool) int {
	for i, n := range norm {
		if !claimed[i] && match(n) {
			return i
		}
	}
	return -1
}
