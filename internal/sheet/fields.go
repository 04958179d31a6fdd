// ABOUTME: Declarative field resolution for schema-drifting V5 sheets
// ABOUTME: Ordered candidate paths per logical field, first hit wins

package sheet

import (
	"strings"

	"github.com/bloodscript/companion-cli/internal/client"
)

// Logical field names understood by the renderer.
const (
	FieldName         = "name"
	FieldClan         = "clan"
	FieldConcept      = "concept"
	FieldPredatorType = "predator_type"
	FieldHunger       = "hunger"
	FieldBloodPool    = "blood_pool"
	FieldBloodPoolMax = "blood_pool_max"
	FieldWillpower    = "willpower"
	FieldHealth       = "health"
	FieldHumanity     = "humanity"
	FieldBaneSeverity = "bane_severity"
	FieldBaneText     = "bane_description"
	FieldMerits       = "merits"
	FieldFlaws        = "flaws"
	FieldDisciplines  = "disciplines"
	FieldRituals      = "rituals"
	FieldXP           = "xp"
)

// candidates maps each logical field to its candidate paths, in priority
// order. Paths are dot-separated keys into the raw sheet map. The table
// absorbs backend schema drift so rendering code never branches on shape.
var candidates = map[string][]string{
	FieldName:         {"name", "character_name", "identity.name"},
	FieldClan:         {"clan", "identity.clan"},
	FieldConcept:      {"concept", "identity.concept"},
	FieldPredatorType: {"predator_type", "predatorType", "identity.predator_type"},
	FieldHunger:       {"hunger", "trackers.hunger", "pools.hunger"},
	FieldBloodPool:    {"blood_pool", "bloodPool", "pools.blood"},
	FieldBloodPoolMax: {"blood_pool_max", "bloodPoolMax", "pools.blood_max"},
	FieldWillpower:    {"willpower", "trackers.willpower"},
	FieldHealth:       {"health", "trackers.health"},
	FieldHumanity:     {"humanity", "trackers.humanity"},
	FieldBaneSeverity: {"bane_severity", "baneSeverity", "bane.severity"},
	FieldBaneText:     {"bane_description", "baneDescription", "bane.description"},
	FieldMerits:       {"merits", "advantages.merits"},
	FieldFlaws:        {"flaws", "advantages.flaws"},
	FieldDisciplines:  {"disciplines", "powers.disciplines"},
	FieldRituals:      {"rituals", "powers.rituals"},
	FieldXP:           {"xp", "experience", "xp_total"},
}

// Resolve looks up a logical field in the raw sheet, trying each
// candidate path in order. The second return reports whether any
// candidate matched.
func Resolve(s client.CharacterSheet, field string) (any, bool) {
	for _, path := range candidates[field] {
		if v, ok := lookup(s, path); ok {
			return v, true
		}
	}
	return nil, false
}

// Set writes a logical field into the raw sheet. The value lands at the
// path where the field currently resolves, so edits respect whatever
// schema variant the sheet already uses; absent fields are created at the
// primary candidate path. Returns false for unknown fields.
func Set(s client.CharacterSheet, field string, value any) bool {
	paths := candidates[field]
	if len(paths) == 0 {
		return false
	}
	target := paths[0]
	for _, path := range paths {
		if _, ok := lookup(s, path); ok {
			target = path
			break
		}
	}
	return store(s, target, value)
}

// store walks a dot-separated path, creating intermediate maps as needed.
func store(s map[string]any, path string, value any) bool {
	keys := strings.Split(path, ".")
	cur := s
	for _, key := range keys[:len(keys)-1] {
		next, ok := cur[key].(map[string]any)
		if !ok {
			if _, exists := cur[key]; exists {
				return false
			}
			next = map[string]any{}
			cur[key] = next
		}
		cur = next
	}
	cur[keys[len(keys)-1]] = value
	return true
}

// lookup walks a dot-separated path through nested maps.
func lookup(s map[string]any, path string) (any, bool) {
	cur := any(s)
	for _, key := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	if cur == nil {
		return nil, false
	}
	return cur, true
}

// String resolves a field as a string, or "" when absent or mistyped.
func String(s client.CharacterSheet, field string) string {
	v, ok := Resolve(s, field)
	if !ok {
		return ""
	}
	str, _ := v.(string)
	return str
}

// Int resolves a field as an int. JSON numbers decode as float64, but
// hand-edited sheets have shipped strings and ints too.
func Int(s client.CharacterSheet, field string, fallback int) int {
	v, ok := Resolve(s, field)
	if !ok {
		return fallback
	}
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case string:
		var parsed int
		for _, r := range n {
			if r < '0' || r > '9' {
				return fallback
			}
			parsed = parsed*10 + int(r-'0')
		}
		if n == "" {
			return fallback
		}
		return parsed
	default:
		return fallback
	}
}

// Trait is a named dotted trait (merit, flaw, discipline).
type Trait struct {
	Name        string
	Dots        int
	Description string
}

// Traits resolves a field as a trait list. Entries that are not objects
// are skipped rather than failing the whole list.
func Traits(s client.CharacterSheet, field string) []Trait {
	v, ok := Resolve(s, field)
	if !ok {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	traits := make([]Trait, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		t := Trait{}
		if name, ok := m["name"].(string); ok {
			t.Name = name
		}
		if dots, ok := m["dots"].(float64); ok {
			t.Dots = int(dots)
		}
		if desc, ok := m["description"].(string); ok {
			t.Description = desc
		}
		if t.Name == "" {
			continue
		}
		traits = append(traits, t)
	}
	return traits
}

// Ritual is a learned Blood Sorcery or Oblivion ritual.
type Ritual struct {
	Name        string
	Level       int
	Discipline  string
	Description string
}

// Rituals resolves the ritual list. Entries that are not objects are
// skipped, same as Traits.
func Rituals(s client.CharacterSheet) []Ritual {
	v, ok := Resolve(s, FieldRituals)
	if !ok {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	rituals := make([]Ritual, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		r := Ritual{}
		if name, ok := m["name"].(string); ok {
			r.Name = name
		}
		if level, ok := m["level"].(float64); ok {
			r.Level = int(level)
		}
		if disc, ok := m["discipline"].(string); ok {
			r.Discipline = disc
		}
		if desc, ok := m["description"].(string); ok {
			r.Description = desc
		}
		if r.Name == "" {
			continue
		}
		rituals = append(rituals, r)
	}
	return rituals
}
