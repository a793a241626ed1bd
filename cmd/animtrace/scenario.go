package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/nathoo/bossrush/engine/anim"
)

// Scenario is a scripted sequence of controller inputs.
type Scenario struct {
	Clips  []ClipSpec        `yaml:"clips"`
	Names  map[string]string `yaml:"names"`
	DT     float64           `yaml:"dt"`
	FPS    float64           `yaml:"fps"`
	Frames []Frame           `yaml:"frames"`
}

// ClipSpec names one clip in the rig.
type ClipSpec struct {
	Name     string  `yaml:"name"`
	Duration float64 `yaml:"duration"`
}

// Frame is one or more identical updates. Actions fire before the
// first update of the frame.
type Frame struct {
	Repeat      int      `yaml:"repeat"`
	Stride      float64  `yaml:"stride"`
	Airborne    bool     `yaml:"airborne"`
	Crouching   bool     `yaml:"crouching"`
	Window      bool     `yaml:"attack_window"`
	StartCharge bool     `yaml:"start_charge"`
	Commit      *float64 `yaml:"commit"`
	Ability     int      `yaml:"ability"`
	Label       string   `yaml:"label"`
}

// Row is the controller output after one update.
type Row struct {
	Tick    int
	Time    float64
	Label   string
	Weights [anim.NumChannels]float64
	Notes   []string
}

func parseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	if len(sc.Clips) == 0 {
		return nil, fmt.Errorf("scenario has no clips")
	}
	for i, c := range sc.Clips {
		if c.Name == "" {
			return nil, fmt.Errorf("clip %d has no name", i)
		}
		if c.Duration <= 0 {
			return nil, fmt.Errorf("clip %q: duration must be positive", c.Name)
		}
	}
	for key := range sc.Names {
		if _, ok := anim.ParseChannel(key); !ok {
			return nil, fmt.Errorf("names: unknown animation channel %q", key)
		}
	}
	if sc.DT == 0 && sc.FPS > 0 {
		sc.DT = 1 / sc.FPS
	}
	if sc.DT <= 0 {
		sc.DT = 1.0 / 30
	}
	return &sc, nil
}

// runScenario drives a controller over a recording mixer and returns
// one row per update.
func runScenario(sc *Scenario, tun anim.Tuning) []Row {
	clips := make([]anim.Clip, len(sc.Clips))
	for i, c := range sc.Clips {
		clips[i] = anim.Clip{Name: c.Name, Duration: c.Duration}
	}
	ctrl := anim.NewController(anim.NewRecordingMixer(), clips, sc.Names, anim.WithTuning(tun))

	var rows []Row
	var pending []string
	tick := 0
	for _, f := range sc.Frames {
		if f.StartCharge {
			ctrl.StartCharge()
			pending = append(pending, "charge")
		}
		if f.Commit != nil {
			ctrl.CommitAttack(*f.Commit)
			pending = append(pending, fmt.Sprintf("commit %.2f", *f.Commit))
		}
		if f.Ability != 0 {
			n := f.Ability
			if ctrl.PlayAbility(n, func() { pending = append(pending, fmt.Sprintf("ability%d done", n)) }) {
				pending = append(pending, fmt.Sprintf("ability%d", n))
			} else {
				pending = append(pending, fmt.Sprintf("ability%d missing", n))
			}
		}

		sig := anim.Signals{
			Stride:       f.Stride,
			Airborne:     f.Airborne,
			Crouching:    f.Crouching,
			AttackWindow: f.Window,
		}
		repeat := max(f.Repeat, 1)
		for i := 0; i < repeat; i++ {
			ctrl.Update(sc.DT, sig)
			tick++
			row := Row{Tick: tick, Time: float64(tick) * sc.DT, Weights: ctrl.Weights(), Notes: pending}
			if i == 0 {
				row.Label = f.Label
			}
			pending = nil
			rows = append(rows, row)
		}
	}
	return rows
}

var (
	headStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	zeroStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	fullStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// printRows writes the weight table. Plain output drops colors.
func printRows(w io.Writer, rows []Row, plain bool) {
	render := func(s lipgloss.Style, text string) string {
		if plain {
			return text
		}
		return s.Render(text)
	}

	var head strings.Builder
	head.WriteString(fmt.Sprintf("%5s %7s", "tick", "time"))
	for _, ch := range anim.Channels() {
		head.WriteString(fmt.Sprintf(" %6s", shortName(ch)))
	}
	fmt.Fprintln(w, render(headStyle, head.String()))

	for _, r := range rows {
		if r.Label != "" {
			fmt.Fprintln(w, render(labelStyle, "# "+r.Label))
		}
		var line strings.Builder
		line.WriteString(fmt.Sprintf("%5d %7.3f", r.Tick, r.Time))
		for _, v := range r.Weights {
			cell := fmt.Sprintf(" %6.3f", v)
			switch {
			case v == 0:
				cell = render(zeroStyle, cell)
			case v >= 0.999:
				cell = render(fullStyle, cell)
			}
			line.WriteString(cell)
		}
		if len(r.Notes) > 0 {
			line.WriteString("  " + strings.Join(r.Notes, ", "))
		}
		fmt.Fprintln(w, line.String())
	}
}

// shortName trims a channel name to fit a table column.
func shortName(ch anim.Channel) string {
	s := ch.String()
	if len(s) > 6 {
		s = s[:6]
	}
	return s
}
