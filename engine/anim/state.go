package anim

import "math"

// Locomotion selection and playback-rate tuning.
const (
	WalkThreshold = 0.08 // stride above which the character is moving
	RunThreshold  = 0.82 // stride above which run replaces walk

	walkScaleMin = 0.8
	walkScaleMax = 1.1
	runScaleMin  = 0.95
	runScaleMax  = 1.28
)

// Jump and attack playback tuning.
const (
	JumpScale        = 1.4
	JumpLandFraction = 0.88
	JumpLandScale    = 2.1

	ChargeScale      = 0.4
	ChargedThreshold = 1.25
	ChargedScale     = 1.05
	BasicScale       = 1.2

	weightEpsilon = 1e-3
)

// LoopMode is how a track behaves at the end of its clip.
type LoopMode int

const (
	LoopRepeat LoopMode = iota
	LoopOnce            // play once and hold the last frame
)

// Tuning holds the rates a content author may adjust.
type Tuning struct {
	CrossFade   float64 // seconds for a locomotion cross-fade
	DampingRate float64 // per second, overlay weight damping
}

// DefaultTuning returns the standard rates.
func DefaultTuning() Tuning {
	return Tuning{CrossFade: 0.18, DampingRate: 16}
}

// Signals are the per-frame inputs from the gameplay layer.
type Signals struct {
	Stride       float64 // normalized speed, 0..1
	Airborne     bool
	Crouching    bool
	AttackWindow bool
}

// Track is the playback state of one channel. Weight is the base weight
// before overlay suppression.
type Track struct {
	Weight    float64
	Time      float64
	TimeScale float64
	Enabled   bool
	Paused    bool
	Loop      LoopMode
}

// State is the full controller state. Locomotion, Attack, and Ability
// are None when nothing of that kind is current. Struck is set once the
// attack window has opened for the current attack. Airborne is the
// previous frame's signal.
type State struct {
	Tracks     [NumChannels]Track
	Locomotion Channel
	Attack     Channel
	Charging   bool
	Struck     bool
	Ability    Channel
	Airborne   bool
}

// NewState returns an idle state with every track stopped.
func NewState() State {
	st := State{Locomotion: None, Attack: None, Ability: None}
	for i := range st.Tracks {
		st.Tracks[i].TimeScale = 1
	}
	return st
}

// SelectLocomotion picks the locomotion channel for the given signals,
// falling back between walk and run when one is missing.
func SelectLocomotion(rig *Rig, sig Signals) Channel {
	if sig.Crouching && rig.Has(Crouch) {
		return Crouch
	}
	if sig.Stride > WalkThreshold {
		want, alt := Walk, Run
		if sig.Stride > RunThreshold {
			want, alt = Run, Walk
		}
		if rig.Has(want) {
			return want
		}
		if rig.Has(alt) {
			return alt
		}
	}
	if rig.Has(Idle) {
		return Idle
	}
	return None
}

// Step advances st by dt seconds. It returns the new state and the
// abilities that finished during this step.
func Step(st State, rig *Rig, tun Tuning, sig Signals, dt float64) (State, []Channel) {
	if dt < 0 || math.IsNaN(dt) {
		dt = 0
	}
	sig.Stride = clamp01(sig.Stride)

	st = stepLocomotion(st, rig, tun, sig, dt)
	st = stepJump(st, rig, sig, dt)
	st = stepAttacks(st, rig, tun, sig, dt)
	return stepAbility(st, rig, dt)
}

func stepLocomotion(st State, rig *Rig, tun Tuning, sig Signals, dt float64) State {
	target := SelectLocomotion(rig, sig)
	if target != st.Locomotion {
		if target != None {
			tr := &st.Tracks[target]
			if tr.Weight == 0 {
				tr.Time = 0
			}
			tr.Enabled = true
			tr.Paused = false
			tr.Loop = LoopRepeat
			if st.Locomotion == None && !anyLocomotionWeight(st) {
				tr.Weight = 1
			}
		}
		st.Locomotion = target
	}

	for _, ch := range []Channel{Idle, Walk, Run, Crouch} {
		if !rig.Has(ch) {
			continue
		}
		tr := &st.Tracks[ch]
		goal := 0.0
		if ch == st.Locomotion {
			goal = 1
		}
		if tun.CrossFade <= 0 {
			tr.Weight = goal
		} else {
			tr.Weight = approach(tr.Weight, goal, dt/tun.CrossFade)
		}
		if tr.Weight == 0 && ch != st.Locomotion {
			tr.Enabled = false
			continue
		}
		tr.TimeScale = locomotionScale(ch, sig.Stride)
		advance(tr, rig.Duration(ch), dt)
	}
	return st
}

func locomotionScale(ch Channel, stride float64) float64 {
	switch ch {
	case Walk:
		return lerp(walkScaleMin, walkScaleMax, clamp01(stride/RunThreshold))
	case Run:
		return lerp(runScaleMin, runScaleMax, stride)
	default:
		return 1
	}
}

func stepJump(st State, rig *Rig, sig Signals, dt float64) State {
	takeoff := sig.Airborne && !st.Airborne
	st.Airborne = sig.Airborne
	if !rig.Has(Jump) {
		return st
	}
	tr := &st.Tracks[Jump]
	dur := rig.Duration(Jump)

	if sig.Airborne {
		if takeoff || !tr.Enabled {
			switch {
			case st.Attack == None:
				*tr = Track{Weight: 1, TimeScale: JumpScale, Enabled: true, Loop: LoopOnce}
			case !tr.Enabled:
				return st
			}
		}
		advance(tr, dur, dt)
		return st
	}

	if !tr.Enabled {
		return st
	}
	if dur <= 0 || tr.Time/dur >= JumpLandFraction {
		tr.Weight = 0
		tr.Enabled = false
		tr.Paused = true
		return st
	}
	tr.TimeScale = JumpLandScale
	tr.Weight = 1
	advance(tr, dur, dt)
	return st
}

// stepAttacks damps the attack overlays toward their goal weight. A
// committed attack stays live at zero weight until its window opens or
// its clip runs out.
func stepAttacks(st State, rig *Rig, tun Tuning, sig Signals, dt float64) State {
	if st.Attack != None && sig.AttackWindow {
		st.Struck = true
	}
	decay := math.Exp(-tun.DampingRate * dt)
	for _, ch := range []Channel{BasicAttack, ChargedAttack} {
		if !rig.Has(ch) {
			continue
		}
		tr := &st.Tracks[ch]
		if !tr.Enabled {
			continue
		}
		dur := rig.Duration(ch)
		current := ch == st.Attack
		goal := 0.0
		if current && (sig.AttackWindow || st.Charging) {
			goal = 1
		}
		tr.Weight = clamp01(goal + (tr.Weight-goal)*decay)
		if goal == 0 && tr.Weight < weightEpsilon {
			tr.Weight = 0
			if !current || st.Struck || finished(tr, dur) {
				tr.Enabled = false
				if current {
					st.Attack = None
					st.Struck = false
				}
				continue
			}
		}
		advance(tr, dur, dt)
	}
	return st
}

func stepAbility(st State, rig *Rig, dt float64) (State, []Channel) {
	if st.Ability == None {
		return st, nil
	}
	ch := st.Ability
	tr := &st.Tracks[ch]
	dur := rig.Duration(ch)
	advance(tr, dur, dt)
	if tr.Time < dur {
		return st, nil
	}
	tr.Weight = 0
	tr.Enabled = false
	st.Ability = None
	return st, []Channel{ch}
}

// StartCharge begins the wind-up of a charged attack, using the basic
// attack clip when no charged clip exists.
func StartCharge(st State, rig *Rig) State {
	ch := ChargedAttack
	if !rig.Has(ch) {
		ch = BasicAttack
	}
	if !rig.Has(ch) {
		return st
	}
	tr := &st.Tracks[ch]
	tr.Time = 0
	tr.TimeScale = ChargeScale
	tr.Enabled = true
	tr.Paused = false
	tr.Loop = LoopOnce
	st.Attack = ch
	st.Charging = true
	st.Struck = false
	return st
}

// CommitAttack releases an attack of the given power. Powers above
// ChargedThreshold use the charged clip, continuing from the wind-up
// pose; everything else restarts the basic clip.
func CommitAttack(st State, rig *Rig, power float64) State {
	wasCharging := st.Charging
	st.Charging = false

	ch := None
	switch {
	case power > ChargedThreshold && rig.Has(ChargedAttack):
		ch = ChargedAttack
	case rig.Has(BasicAttack):
		ch = BasicAttack
	case rig.Has(ChargedAttack):
		ch = ChargedAttack
	default:
		return st
	}

	tr := &st.Tracks[ch]
	if ch == BasicAttack || !wasCharging || st.Attack != ch {
		tr.Time = 0
	}
	tr.TimeScale = BasicScale
	if ch == ChargedAttack {
		tr.TimeScale = ChargedScale
	}
	tr.Enabled = true
	tr.Paused = false
	tr.Loop = LoopOnce
	st.Attack = ch
	st.Struck = false
	return st
}

// PlayAbility starts ability channel ch at full weight. It reports false
// when ch is not an ability or has no clip.
func PlayAbility(st State, rig *Rig, ch Channel) (State, bool) {
	if !IsAbility(ch) || !rig.Has(ch) {
		return st, false
	}
	if st.Ability != None && st.Ability != ch {
		prev := &st.Tracks[st.Ability]
		prev.Weight = 0
		prev.Enabled = false
	}
	st.Tracks[ch] = Track{Weight: 1, TimeScale: 1, Enabled: true, Loop: LoopOnce}
	st.Ability = ch
	return st, true
}

// ActiveWeight is the strongest weight among the enabled overlays.
func ActiveWeight(st State) float64 {
	w := 0.0
	for _, ch := range []Channel{BasicAttack, ChargedAttack, Ability1, Ability2, Ability3} {
		tr := st.Tracks[ch]
		if tr.Enabled && tr.Weight > w {
			w = tr.Weight
		}
	}
	return clamp01(w)
}

// Final returns the weight every channel should be rendered at. Overlays
// suppress locomotion and jump multiplicatively, so some leg motion
// survives under an upper-body attack.
func Final(st State) [NumChannels]float64 {
	var out [NumChannels]float64
	keep := 1 - ActiveWeight(st)
	for _, ch := range Channels() {
		tr := st.Tracks[ch]
		if !tr.Enabled {
			continue
		}
		if IsLocomotion(ch) || ch == Jump {
			out[ch] = tr.Weight * keep
		} else {
			out[ch] = tr.Weight
		}
	}
	return out
}

func anyLocomotionWeight(st State) bool {
	for _, ch := range []Channel{Idle, Walk, Run, Crouch} {
		if st.Tracks[ch].Weight > 0 {
			return true
		}
	}
	return false
}

// advance moves a track's time forward, wrapping repeat tracks and
// holding play-once tracks on their last frame.
func advance(tr *Track, duration, dt float64) {
	if !tr.Enabled || tr.Paused {
		return
	}
	tr.Time += dt * tr.TimeScale
	if duration <= 0 {
		tr.Time = 0
		return
	}
	switch tr.Loop {
	case LoopRepeat:
		tr.Time = math.Mod(tr.Time, duration)
		if tr.Time < 0 {
			tr.Time += duration
		}
	case LoopOnce:
		if tr.Time > duration {
			tr.Time = duration
		}
	}
}

func finished(tr *Track, duration float64) bool {
	return duration <= 0 || tr.Time >= duration
}

func approach(v, goal, step float64) float64 {
	if v < goal {
		return math.Min(goal, v+step)
	}
	return math.Max(goal, v-step)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
