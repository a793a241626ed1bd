package events

import (
	"testing"

	"github.com/nathoo/bossrush/engine/catalog"
	"github.com/nathoo/bossrush/types"
)

func say(text string) types.Effect {
	return types.Effect{Type: "say", Params: map[string]any{"text": text}}
}

func TestDispatch_NoHandlers(t *testing.T) {
	defs := &catalog.Defs{}
	got := Dispatch([]types.Event{{Type: "boss_defeated"}}, defs, types.PlayerData{}, types.MetaStats{})
	if len(got) != 0 {
		t.Errorf("expected nothing, got %v", got)
	}
}

func TestDispatch_MatchingHandler(t *testing.T) {
	defs := &catalog.Defs{Handlers: []types.EventHandler{
		{EventType: "boss_defeated", Effects: []types.Effect{say("down it goes")}},
		{EventType: "player_died", Effects: []types.Effect{say("you died")}},
	}}
	ev := types.Event{Type: "boss_defeated", Data: map[string]any{"bosses": 2}}
	got := Dispatch([]types.Event{ev}, defs, types.PlayerData{}, types.MetaStats{})
	if len(got) != 1 {
		t.Fatalf("expected 1 fired event, got %d", len(got))
	}
	if got[0].Event.Data["bosses"] != 2 {
		t.Errorf("expected event data carried, got %v", got[0].Event.Data)
	}
	if len(got[0].Effects) != 1 || got[0].Effects[0].Params["text"] != "down it goes" {
		t.Errorf("unexpected effects %v", got[0].Effects)
	}
}

func TestDispatch_HandlersInDeclarationOrder(t *testing.T) {
	defs := &catalog.Defs{Handlers: []types.EventHandler{
		{EventType: "run_started", Effects: []types.Effect{say("one")}},
		{EventType: "run_started", Effects: []types.Effect{say("two"), say("three")}},
	}}
	got := Dispatch([]types.Event{{Type: "run_started"}}, defs, types.PlayerData{}, types.MetaStats{})
	if len(got) != 1 || len(got[0].Effects) != 3 {
		t.Fatalf("expected 3 effects in one batch, got %v", got)
	}
	for i, want := range []string{"one", "two", "three"} {
		if got[0].Effects[i].Params["text"] != want {
			t.Errorf("effect %d: expected %q, got %v", i, want, got[0].Effects[i].Params["text"])
		}
	}
}

func TestDispatch_EachEventSeparately(t *testing.T) {
	defs := &catalog.Defs{Handlers: []types.EventHandler{
		{EventType: "item_purchased", Effects: []types.Effect{say("bought")}},
	}}
	got := Dispatch([]types.Event{
		{Type: "item_purchased", Data: map[string]any{"item": "a"}},
		{Type: "item_equipped"},
		{Type: "item_purchased", Data: map[string]any{"item": "b"}},
	}, defs, types.PlayerData{}, types.MetaStats{})
	if len(got) != 2 {
		t.Fatalf("expected 2 fired events, got %d", len(got))
	}
	if got[0].Event.Data["item"] != "a" || got[1].Event.Data["item"] != "b" {
		t.Errorf("expected events in order, got %v", got)
	}
}

func TestDispatch_Conditions(t *testing.T) {
	defs := &catalog.Defs{Handlers: []types.EventHandler{
		{
			EventType:  "boss_defeated",
			Conditions: []types.Condition{{Type: "min_bosses", Params: map[string]any{"value": 5}}},
			Effects:    []types.Effect{say("milestone")},
		},
		{
			EventType:  "boss_defeated",
			Conditions: []types.Condition{{Type: "has_talent", Params: map[string]any{"talent": "fury"}}},
			Effects:    []types.Effect{say("furious")},
		},
	}}
	pd := types.PlayerData{Talents: []string{"fury"}}

	got := Dispatch([]types.Event{{Type: "boss_defeated", Data: map[string]any{"bosses": 2}}}, defs, pd, types.MetaStats{})
	if len(got) != 1 || len(got[0].Effects) != 1 || got[0].Effects[0].Params["text"] != "furious" {
		t.Errorf("expected only the talent handler, got %v", got)
	}

	got = Dispatch([]types.Event{{Type: "boss_defeated", Data: map[string]any{"bosses": 5}}}, defs, types.PlayerData{}, types.MetaStats{})
	if len(got) != 1 || got[0].Effects[0].Params["text"] != "milestone" {
		t.Errorf("expected only the milestone handler, got %v", got)
	}

	got = Dispatch([]types.Event{{Type: "boss_defeated", Data: map[string]any{"bosses": 1}}}, defs, types.PlayerData{}, types.MetaStats{})
	if len(got) != 0 {
		t.Errorf("expected no handlers to fire, got %v", got)
	}
}
