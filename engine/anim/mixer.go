package anim

import "sort"

// RecordingMixer is a Mixer that keeps the last values written to each
// action. It stands in for a renderer in tests and offline traces.
type RecordingMixer struct {
	Actions map[string]*RecordedAction
}

// RecordedAction is the last state written to one bound clip.
type RecordedAction struct {
	Clip      Clip
	Weight    float64
	Time      float64
	TimeScale float64
	Loop      LoopMode
	Enabled   bool
	Paused    bool
	Writes    int
}

// NewRecordingMixer creates an empty recording mixer.
func NewRecordingMixer() *RecordingMixer {
	return &RecordingMixer{Actions: map[string]*RecordedAction{}}
}

func (m *RecordingMixer) Bind(clip Clip) Action {
	a := &RecordedAction{Clip: clip, TimeScale: 1}
	m.Actions[clip.Name] = a
	return a
}

// Names returns the bound clip names, sorted.
func (m *RecordingMixer) Names() []string {
	names := make([]string, 0, len(m.Actions))
	for n := range m.Actions {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (a *RecordedAction) SetWeight(w float64)     { a.Weight = w; a.Writes++ }
func (a *RecordedAction) SetTime(t float64)       { a.Time = t }
func (a *RecordedAction) SetTimeScale(s float64)  { a.TimeScale = s }
func (a *RecordedAction) SetLoop(mode LoopMode)   { a.Loop = mode }
func (a *RecordedAction) SetEnabled(enabled bool) { a.Enabled = enabled }
func (a *RecordedAction) SetPaused(paused bool)   { a.Paused = paused }
