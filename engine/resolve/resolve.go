// Package resolve maps names typed at the hub to catalog IDs.
package resolve

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nathoo/bossrush/engine/catalog"
	"github.com/nathoo/bossrush/types"
)

// AmbiguityError indicates multiple catalog entries matched a name.
type AmbiguityError struct {
	Name       string
	Candidates []string
}

func (e *AmbiguityError) Error() string {
	names := strings.Join(e.Candidates, ", ")
	return fmt.Sprintf("which %s? (%s)", e.Name, names)
}

// NotFoundError indicates no catalog entry matched a name.
type NotFoundError struct {
	Kind string
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s called %q", e.Kind, e.Name)
}

// Item resolves an item name or ID.
func Item(defs *catalog.Defs, name string) (string, error) {
	names := make(map[string]string, len(defs.Items))
	for id, def := range defs.Items {
		names[id] = def.Name
	}
	return resolveName("item", names, name)
}

// Talent resolves a talent name or ID.
func Talent(defs *catalog.Defs, name string) (string, error) {
	names := make(map[string]string, len(defs.Talents))
	for id, def := range defs.Talents {
		names[id] = def.Name
	}
	return resolveName("talent", names, name)
}

// Kit resolves a kit name or ID.
func Kit(defs *catalog.Defs, name string) (string, error) {
	names := make(map[string]string, len(defs.Kits))
	for id, def := range defs.Kits {
		names[id] = def.Name
	}
	return resolveName("kit", names, name)
}

// Slot parses an equippable slot name.
func Slot(name string) (types.Slot, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, s := range catalog.Slots() {
		if string(s) == name {
			return s, nil
		}
	}
	return "", &NotFoundError{Kind: "slot", Name: name}
}

// Branch parses a talent branch name.
func Branch(name string) (types.Branch, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, b := range catalog.Branches() {
		if string(b) == name {
			return b, nil
		}
	}
	return "", &NotFoundError{Kind: "branch", Name: name}
}

// resolveName matches name against ids (id → display name). An exact ID
// or exact display name wins outright; otherwise every entry whose
// display name contains name as whole words is a candidate.
func resolveName(kind string, ids map[string]string, name string) (string, error) {
	query := strings.ToLower(strings.TrimSpace(name))
	if query == "" {
		return "", &NotFoundError{Kind: kind, Name: name}
	}

	if _, ok := ids[query]; ok {
		return query, nil
	}
	// Underscore normalization: "iron sword" matches ID "iron_sword".
	if underscored := strings.ReplaceAll(query, " ", "_"); underscored != query {
		if _, ok := ids[underscored]; ok {
			return underscored, nil
		}
	}

	var exact, partial []string
	for id, display := range ids {
		lower := strings.ToLower(display)
		switch {
		case lower == query:
			exact = append(exact, id)
		case strings.Contains(" "+lower+" ", " "+query+" "):
			partial = append(partial, id)
		}
	}

	matches := exact
	if len(matches) == 0 {
		matches = partial
	}
	switch len(matches) {
	case 0:
		return "", &NotFoundError{Kind: kind, Name: name}
	case 1:
		return matches[0], nil
	default:
		sort.Strings(matches)
		return "", &AmbiguityError{Name: name, Candidates: matches}
	}
}
