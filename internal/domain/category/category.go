// Package category holds the category → work-value lookup table.
package category

import (
	"fmt"
	"sort"

	"github.com/lernwerk/compass/internal/domain/tag"
	"github.com/lernwerk/compass/internal/domain/vector"
)

// Table maps a normalized category key to its work-value profile.
// Immutable after construction; safe for concurrent reads.
type Table struct {
	rows map[string]vector.WorkValues
}

// builtin rows in work-value order: teamwork, independence, creativity,
// stability, variety, helping_others, physical_activity, technology.
var builtin = map[string]vector.WorkValues{
	"informatik":     {0.6, 0.7, 0.6, 0.6, 0.5, 0.2, 0.1, 1.0},
	"gesundheit":     {0.9, 0.4, 0.2, 0.8, 0.6, 1.0, 0.6, 0.4},
	"soziales":       {0.9, 0.4, 0.4, 0.7, 0.6, 1.0, 0.4, 0.1},
	"handwerk":       {0.6, 0.6, 0.6, 0.7, 0.5, 0.3, 1.0, 0.5},
	"bau":            {0.8, 0.4, 0.3, 0.8, 0.5, 0.2, 1.0, 0.5},
	"technik":        {0.6, 0.6, 0.5, 0.7, 0.6, 0.2, 0.6, 1.0},
	"detailhandel":   {0.8, 0.3, 0.3, 0.6, 0.8, 0.7, 0.5, 0.3},
	"kaufmännisch":   {0.7, 0.5, 0.2, 1.0, 0.5, 0.4, 0.1, 0.6},
	"gastronomie":    {1.0, 0.3, 0.7, 0.4, 0.8, 0.7, 0.8, 0.2},
	"logistik":       {0.7, 0.4, 0.1, 0.8, 0.5, 0.3, 0.9, 0.6},
	"gestaltung":     {0.5, 0.8, 1.0, 0.4, 0.8, 0.3, 0.3, 0.6},
	"natur":          {0.5, 0.8, 0.3, 0.6, 0.7, 0.3, 1.0, 0.3},
	"fahrzeuge":      {0.6, 0.5, 0.3, 0.7, 0.5, 0.3, 0.9, 0.9},
	"schönheit":      {0.6, 0.6, 0.8, 0.5, 0.6, 0.8, 0.4, 0.2},
	"chemie & labor": {0.6, 0.5, 0.3, 0.8, 0.4, 0.3, 0.3, 0.9},
}

// Builtin returns the built-in table.
func Builtin() *Table {
	t := &Table{rows: make(map[string]vector.WorkValues, len(builtin))}
	for k, v := range builtin {
		t.rows[k] = v
	}
	return t
}

// New builds a table from named work-value maps, layered over the built-in rows.
// Entries with the same normalized key replace built-in rows.
func New(overrides map[string]map[string]float64) (*Table, error) {
	t := Builtin()
	for name, values := range overrides {
		key := tag.Normalize(name)
		if key == "" {
			return nil, fmt.Errorf("category name is required")
		}
		row, err := vector.WorkValuesFromMap(values)
		if err != nil {
			return nil, fmt.Errorf("category %q: %w", name, err)
		}
		t.rows[key] = row
	}
	return t, nil
}

// Lookup returns the work-value row for a category (case-insensitive).
func (t *Table) Lookup(category string) (vector.WorkValues, bool) {
	row, ok := t.rows[tag.Normalize(category)]
	return row, ok
}

// Names returns the sorted category keys.
func (t *Table) Names() []string {
	out := make([]string, 0, len(t.rows))
	for k := range t.rows {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
