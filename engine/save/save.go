// Package save implements the JSON record formats for run, meta, and
// player progression data.
package save

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/nathoo/bossrush/types"
)

// Record keys in the storage backend.
const (
	KeyRun    = "run"
	KeyMeta   = "meta"
	KeyPlayer = "player"
)

// Version is written into every record.
const Version = 1

// ErrInvalid marks a record that parsed but breaks a data-model invariant.
var ErrInvalid = errors.New("invalid record")

type runRecord struct {
	Version int `json:"version"`
	types.RunState
}

type metaRecord struct {
	Version int `json:"version"`
	types.MetaStats
}

type playerRecord struct {
	Version int `json:"version"`
	types.PlayerData
}

// EncodeRun serializes a run record.
func EncodeRun(r types.RunState) ([]byte, error) {
	return json.Marshal(runRecord{Version: Version, RunState: r})
}

// DecodeRun deserializes a run record and checks its invariants.
func DecodeRun(data []byte) (types.RunState, error) {
	var rec runRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return types.RunState{}, err
	}
	r := rec.RunState
	switch {
	case r.KitID == "":
		return types.RunState{}, fmt.Errorf("%w: run has no kit", ErrInvalid)
	case r.BossesDefeated < 0:
		return types.RunState{}, fmt.Errorf("%w: negative bossesDefeated %d", ErrInvalid, r.BossesDefeated)
	case r.Potions < 0:
		return types.RunState{}, fmt.Errorf("%w: negative potions %d", ErrInvalid, r.Potions)
	}
	return r, nil
}

// EncodeMeta serializes lifetime stats.
func EncodeMeta(m types.MetaStats) ([]byte, error) {
	return json.Marshal(metaRecord{Version: Version, MetaStats: m})
}

// DecodeMeta deserializes lifetime stats. Negative counters are rejected.
func DecodeMeta(data []byte) (types.MetaStats, error) {
	var rec metaRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return types.MetaStats{}, err
	}
	m := rec.MetaStats
	if m.TotalRuns < 0 || m.TotalBossKills < 0 || m.TotalDeaths < 0 || m.BestStreak < 0 {
		return types.MetaStats{}, fmt.Errorf("%w: negative meta counter", ErrInvalid)
	}
	return m, nil
}

// EncodePlayer serializes player data. Sets are written sorted.
func EncodePlayer(p types.PlayerData) ([]byte, error) {
	return json.Marshal(playerRecord{Version: Version, PlayerData: NormalizePlayer(p)})
}

// DecodePlayer deserializes player data. Missing collections come back
// empty, never nil.
func DecodePlayer(data []byte) (types.PlayerData, error) {
	var rec playerRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return types.PlayerData{}, err
	}
	p := rec.PlayerData
	if p.Souls < 0 || p.TalentPoints < 0 {
		return types.PlayerData{}, fmt.Errorf("%w: negative currency", ErrInvalid)
	}
	return NormalizePlayer(p), nil
}

// NewPlayer returns empty player data.
func NewPlayer() types.PlayerData {
	return types.PlayerData{
		OwnedItems: []string{},
		Gear:       map[types.Slot]string{},
		Talents:    []string{},
	}
}

// NormalizePlayer fills nil collections, drops empty gear slots, and
// sorts and de-duplicates the owned item and talent sets.
func NormalizePlayer(p types.PlayerData) types.PlayerData {
	out := p
	out.OwnedItems = sortedSet(p.OwnedItems)
	out.Talents = sortedSet(p.Talents)
	out.Gear = make(map[types.Slot]string, len(p.Gear))
	for slot, id := range p.Gear {
		if id != "" {
			out.Gear[slot] = id
		}
	}
	return out
}

func sortedSet(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, id := range in {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
