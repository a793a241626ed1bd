package main

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/nathoo/bossrush/engine/anim"
)

func TestParseScenario_FPS(t *testing.T) {
	sc, err := parseScenario([]byte("fps: 20\nclips:\n  - {name: Idle, duration: 1}\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sc.DT != 0.05 {
		t.Errorf("expected dt 0.05, got %v", sc.DT)
	}
}

func TestParseScenario_DefaultDT(t *testing.T) {
	sc, err := parseScenario([]byte("clips:\n  - {name: Idle, duration: 1}\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sc.DT != 1.0/30 {
		t.Errorf("expected dt 1/30, got %v", sc.DT)
	}
}

func TestParseScenario_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"no clips", "frames: []\n", "no clips"},
		{"unnamed clip", "clips:\n  - {duration: 1}\n", "has no name"},
		{"zero duration", "clips:\n  - {name: Idle}\n", "duration must be positive"},
		{"bad channel", "clips:\n  - {name: Idle, duration: 1}\nnames: {dance: Idle}\n", `unknown animation channel "dance"`},
		{"bad yaml", "clips: [", "parsing scenario"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseScenario([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %q", tt.want, err.Error())
			}
		})
	}
}

func TestRunScenario_AbilityLifecycle(t *testing.T) {
	sc := &Scenario{
		Clips: []ClipSpec{{Name: "Idle", Duration: 2}, {Name: "Cast", Duration: 0.5}},
		Names: map[string]string{"ability1": "Cast"},
		DT:    0.25,
		Frames: []Frame{
			{Label: "rest"},
			{Label: "cast", Ability: 1, Repeat: 3},
			{Ability: 2},
		},
	}
	rows := runScenario(sc, anim.DefaultTuning())
	if len(rows) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(rows))
	}

	if rows[0].Weights[anim.Idle] != 1 {
		t.Errorf("expected idle at full weight, got %v", rows[0].Weights[anim.Idle])
	}
	if rows[1].Label != "cast" || rows[2].Label != "" {
		t.Errorf("expected label on first update only, got %q, %q", rows[1].Label, rows[2].Label)
	}
	if rows[1].Weights[anim.Ability1] != 1 || rows[1].Weights[anim.Idle] != 0 {
		t.Errorf("expected ability to suppress idle, got %v", rows[1].Weights)
	}
	if len(rows[1].Notes) != 1 || rows[1].Notes[0] != "ability1" {
		t.Errorf("expected ability1 note, got %v", rows[1].Notes)
	}
	if len(rows[2].Notes) != 1 || rows[2].Notes[0] != "ability1 done" {
		t.Errorf("expected ability1 done note, got %v", rows[2].Notes)
	}
	if rows[2].Weights[anim.Ability1] != 0 || rows[2].Weights[anim.Idle] != 1 {
		t.Errorf("expected idle restored after ability, got %v", rows[2].Weights)
	}
	if len(rows[4].Notes) != 1 || rows[4].Notes[0] != "ability2 missing" {
		t.Errorf("expected ability2 missing note, got %v", rows[4].Notes)
	}
	if rows[4].Time != 1.25 {
		t.Errorf("expected time 1.25, got %v", rows[4].Time)
	}
}

func TestRunScenario_Testdata(t *testing.T) {
	data, err := os.ReadFile("testdata/knight.yaml")
	if err != nil {
		t.Fatalf("reading scenario: %v", err)
	}
	sc, err := parseScenario(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rows := runScenario(sc, anim.DefaultTuning())
	if len(rows) != 130 {
		t.Fatalf("expected 130 rows, got %d", len(rows))
	}
	for _, r := range rows {
		for ch, w := range r.Weights {
			if w < 0 || w > 1 {
				t.Errorf("tick %d: %s weight %v out of range", r.Tick, anim.Channel(ch), w)
			}
		}
	}
}

func TestPrintRows_Plain(t *testing.T) {
	var w [anim.NumChannels]float64
	w[anim.Idle] = 1
	rows := []Row{{Tick: 1, Time: 0.5, Label: "rest", Weights: w, Notes: []string{"charge"}}}

	var buf bytes.Buffer
	printRows(&buf, rows, true)
	out := buf.String()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), out)
	}
	if !strings.Contains(lines[0], "idle") || !strings.Contains(lines[0], "basicA") {
		t.Errorf("expected channel headers, got %q", lines[0])
	}
	if lines[1] != "# rest" {
		t.Errorf("expected label line, got %q", lines[1])
	}
	if !strings.Contains(lines[2], " 1.000") || !strings.HasSuffix(lines[2], "  charge") {
		t.Errorf("expected weights and notes, got %q", lines[2])
	}
}
