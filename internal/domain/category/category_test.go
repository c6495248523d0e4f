package category

import (
	"errors"
	"testing"

	"github.com/lernwerk/compass/internal/domain"
	"github.com/lernwerk/compass/internal/domain/vector"
)

func TestBuiltin_Lookup(t *testing.T) {
	tbl := Builtin()
	row, ok := tbl.Lookup("  INFORMATIK ")
	if !ok {
		t.Fatal("expected informatik row")
	}
	if row[vector.Technology] != 1.0 {
		t.Errorf("technology = %v", row[vector.Technology])
	}
	if _, ok := tbl.Lookup("astronaut"); ok {
		t.Error("unknown category should miss")
	}
}

func TestBuiltin_RowsInRange(t *testing.T) {
	tbl := Builtin()
	for _, name := range tbl.Names() {
		row, _ := tbl.Lookup(name)
		if row.IsZero() {
			t.Errorf("%s: zero row", name)
		}
		for i, v := range row {
			if v < 0 || v > 1 {
				t.Errorf("%s[%d] = %v out of range", name, i, v)
			}
		}
	}
}

func TestNew_Overrides(t *testing.T) {
	tbl, err := New(map[string]map[string]float64{
		"Informatik": {"technology": 0.5},
		"Pilot":      {"variety": 1, "technology": 1},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	row, _ := tbl.Lookup("informatik")
	if row != (vector.WorkValues{vector.Technology: 0.5}) {
		t.Errorf("override not applied: %v", row)
	}
	if _, ok := tbl.Lookup("pilot"); !ok {
		t.Error("new category missing")
	}
	if _, ok := Builtin().Lookup("pilot"); ok {
		t.Error("overrides must not leak into the built-in table")
	}
}

func TestNew_Invalid(t *testing.T) {
	_, err := New(map[string]map[string]float64{"x": {"salary": 1}})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := New(map[string]map[string]float64{" ": {"variety": 1}}); err == nil {
		t.Error("expected error for empty category name")
	}
}
