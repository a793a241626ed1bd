package anim

import (
	"bytes"
	"strings"
	"testing"

	"github.com/nathoo/bossrush/logging"
)

func newTestController(names ...string) (*Controller, *RecordingMixer) {
	m := NewRecordingMixer()
	return NewController(m, clipSet(names...), nil), m
}

func TestNewController_BindsResolvedClips(t *testing.T) {
	_, m := newTestController("Idle", "Walk", "Attack", "Dance")
	got := m.Names()
	want := []string{"Attack", "Idle", "Walk"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
			break
		}
	}
}

func TestNewController_LogsUnresolvedChannels(t *testing.T) {
	var logs bytes.Buffer
	NewController(NewRecordingMixer(), clipSet("Idle"), nil,
		WithLogger(logging.New(&logs, "debug", "text")))
	out := logs.String()
	if !strings.Contains(out, "channel bound") || !strings.Contains(out, "channel=idle") {
		t.Errorf("expected idle binding logged, got %q", out)
	}
	if !strings.Contains(out, "channel=run") {
		t.Errorf("expected unresolved run logged, got %q", out)
	}
}

func TestController_UpdateWritesMixer(t *testing.T) {
	c, m := newTestController("Idle", "Walk")
	c.Update(frame, Signals{Stride: 0.5})

	walk := m.Actions["Walk"]
	if !walk.Enabled || walk.Weight != 1 {
		t.Errorf("expected walk fully on, got %+v", walk)
	}
	if walk.TimeScale <= 0.8 || walk.TimeScale >= 1.1 {
		t.Errorf("expected walk scale inside its range, got %v", walk.TimeScale)
	}
	if walk.Time <= 0 {
		t.Errorf("expected walk time to advance, got %v", walk.Time)
	}
	if walk.Writes < 2 {
		t.Errorf("expected a write per apply, got %d", walk.Writes)
	}
}

func TestController_WalkStandsInForRun(t *testing.T) {
	c, m := newTestController("Idle", "Walk")
	for i := 0; i < 20; i++ {
		c.Update(frame, Signals{Stride: 0.9})
	}
	if c.State().Locomotion != Walk {
		t.Errorf("expected walk, got %s", c.State().Locomotion)
	}
	if m.Actions["Walk"].Weight != 1 {
		t.Errorf("expected walk weight 1, got %v", m.Actions["Walk"].Weight)
	}
}

func TestController_AttackSuppressesLocomotion(t *testing.T) {
	c, m := newTestController("Idle", "Run", "Attack")
	c.Update(frame, Signals{Stride: 1})
	c.CommitAttack(1)
	for i := 0; i < 18; i++ {
		c.Update(frame, Signals{Stride: 1, AttackWindow: true})
	}
	if w := m.Actions["Attack"].Weight; w < 0.99 {
		t.Errorf("expected attack weight >= 0.99, got %v", w)
	}
	if w := m.Actions["Run"].Weight; w > 0.01 {
		t.Errorf("expected run suppressed, got %v", w)
	}
	if got := c.Weights()[Run]; got != m.Actions["Run"].Weight {
		t.Errorf("expected mixer to match Weights, got %v vs %v", m.Actions["Run"].Weight, got)
	}
}

func TestController_ChargeThenRelease(t *testing.T) {
	c, m := newTestController("Idle", "Attack", "Power Strike")
	c.StartCharge()
	if m.Actions["Power Strike"].TimeScale != ChargeScale {
		t.Errorf("expected wind-up scale, got %v", m.Actions["Power Strike"].TimeScale)
	}
	for i := 0; i < 10; i++ {
		c.Update(frame, Signals{})
	}
	held := m.Actions["Power Strike"].Time
	c.CommitAttack(2)
	if got := m.Actions["Power Strike"].Time; got != held {
		t.Errorf("expected charged time %v kept, got %v", held, got)
	}
	if m.Actions["Power Strike"].TimeScale != ChargedScale {
		t.Errorf("expected charged scale, got %v", m.Actions["Power Strike"].TimeScale)
	}
}

func TestController_PlayAbilityCallback(t *testing.T) {
	c, _ := newTestController("Idle", "Skill 1", "Skill 2")
	calls := 0
	if !c.PlayAbility(1, func() { calls++ }) {
		t.Fatal("expected ability 1 to play")
	}
	for i := 0; i < 90; i++ {
		c.Update(frame, Signals{})
	}
	if calls != 1 {
		t.Errorf("expected callback once, got %d", calls)
	}
}

func TestController_ReplacedAbilityDropsCallback(t *testing.T) {
	c, _ := newTestController("Idle", "Skill 1", "Skill 2")
	first, second := 0, 0
	c.PlayAbility(1, func() { first++ })
	c.Update(frame, Signals{})
	c.PlayAbility(2, func() { second++ })
	for i := 0; i < 90; i++ {
		c.Update(frame, Signals{})
	}
	if first != 0 {
		t.Errorf("expected replaced callback dropped, got %d calls", first)
	}
	if second != 1 {
		t.Errorf("expected second callback once, got %d", second)
	}
}

func TestController_PlayAbilityMissing(t *testing.T) {
	c, _ := newTestController("Idle", "Skill 1")
	called := false
	if c.PlayAbility(3, func() { called = true }) {
		t.Error("expected missing ability to return false")
	}
	if c.PlayAbility(7, nil) {
		t.Error("expected out-of-range ability to return false")
	}
	for i := 0; i < 90; i++ {
		c.Update(frame, Signals{})
	}
	if called {
		t.Error("expected no callback for a missing ability")
	}
}

func TestController_NoClips(t *testing.T) {
	c, m := newTestController()
	c.Update(frame, Signals{Stride: 1, Airborne: true})
	c.StartCharge()
	c.CommitAttack(5)
	if c.PlayAbility(1, nil) {
		t.Error("expected no ability without clips")
	}
	if len(m.Actions) != 0 {
		t.Errorf("expected nothing bound, got %v", m.Names())
	}
	for _, ch := range Channels() {
		if c.Has(ch) {
			t.Errorf("expected %s unresolved", ch)
		}
	}
}

func TestController_NilMixer(t *testing.T) {
	c := NewController(nil, clipSet("Idle", "Walk"), nil)
	c.Update(frame, Signals{Stride: 0.5})
	if c.Weights()[Walk] != 1 {
		t.Errorf("expected state to run without a mixer, got %v", c.Weights()[Walk])
	}
}
