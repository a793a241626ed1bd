package anim

import (
	"log/slog"

	"github.com/nathoo/bossrush/logging"
)

// Action is the renderer-side handle of one bound clip.
type Action interface {
	SetWeight(w float64)
	SetTime(t float64)
	SetTimeScale(s float64)
	SetLoop(mode LoopMode)
	SetEnabled(enabled bool)
	SetPaused(paused bool)
}

// Mixer binds clips to actions. The controller owns all timing; the
// mixer only receives the values to render.
type Mixer interface {
	Bind(clip Clip) Action
}

// Controller runs the blend state machine for one character and writes
// the result into a mixer every frame. It is not safe for concurrent use.
type Controller struct {
	rig     Rig
	tuning  Tuning
	mixer   Mixer
	actions [NumChannels]Action
	state   State
	onDone  [NumChannels]func()
	log     *slog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithTuning overrides the cross-fade and damping rates.
func WithTuning(t Tuning) Option {
	return func(c *Controller) { c.tuning = t }
}

// WithLogger sets the logger clip resolution is reported to.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.log = logging.Component(l, "anim") }
}

// NewController resolves clips against names and binds every resolved
// channel to the mixer. Unresolved channels stay inert.
func NewController(mixer Mixer, clips []Clip, names map[string]string, opts ...Option) *Controller {
	c := &Controller{
		tuning: DefaultTuning(),
		mixer:  mixer,
		state:  NewState(),
		log:    logging.Component(nil, "anim"),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.rig = Resolve(clips, names)
	for _, ch := range Channels() {
		clip := c.rig.Clips[ch]
		if clip == nil {
			c.log.Debug("channel unresolved", "channel", ch.String())
			continue
		}
		if mixer != nil {
			c.actions[ch] = mixer.Bind(*clip)
		}
		c.log.Debug("channel bound", "channel", ch.String(), "clip", clip.Name, "duration", clip.Duration)
	}
	c.apply()
	return c
}

// Has reports whether a clip resolved for ch.
func (c *Controller) Has(ch Channel) bool {
	return c.rig.Has(ch)
}

// Rig returns the resolved bindings.
func (c *Controller) Rig() *Rig {
	return &c.rig
}

// State returns a copy of the current state record.
func (c *Controller) State() State {
	return c.state
}

// Weights returns the final, suppression-applied weight of every channel.
func (c *Controller) Weights() [NumChannels]float64 {
	return Final(c.state)
}

// Update advances the controller by dt seconds, pushes the result into
// the mixer, then runs completion callbacks of finished abilities.
func (c *Controller) Update(dt float64, sig Signals) {
	var finished []Channel
	c.state, finished = Step(c.state, &c.rig, c.tuning, sig, dt)
	c.apply()
	for _, ch := range finished {
		done := c.onDone[ch]
		c.onDone[ch] = nil
		if done != nil {
			done()
		}
	}
}

// StartCharge begins a charged-attack wind-up.
func (c *Controller) StartCharge() {
	c.state = StartCharge(c.state, &c.rig)
	c.apply()
}

// CommitAttack releases the attack at the given power.
func (c *Controller) CommitAttack(power float64) {
	c.state = CommitAttack(c.state, &c.rig, power)
	c.apply()
}

// PlayAbility plays ability n (1..3) once and calls done when it
// finishes. It returns false when the ability has no clip. A replaced
// ability's callback is dropped.
func (c *Controller) PlayAbility(n int, done func()) bool {
	ch := AbilityChannel(n)
	st, ok := PlayAbility(c.state, &c.rig, ch)
	if !ok {
		return false
	}
	if prev := c.state.Ability; prev != None && prev != ch {
		c.onDone[prev] = nil
	}
	c.state = st
	c.onDone[ch] = done
	c.apply()
	return true
}

func (c *Controller) apply() {
	weights := Final(c.state)
	for _, ch := range Channels() {
		a := c.actions[ch]
		if a == nil {
			continue
		}
		tr := c.state.Tracks[ch]
		a.SetEnabled(tr.Enabled)
		a.SetLoop(tr.Loop)
		a.SetPaused(tr.Paused)
		a.SetTimeScale(tr.TimeScale)
		a.SetTime(tr.Time)
		a.SetWeight(weights[ch])
	}
}
