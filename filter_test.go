package terminology

import (
	"errors"
	"testing"
)

type testConcept struct {
	code string
}

func (c testConcept) Code() string   { return c.code }
func (c testConcept) System() string { return "http://example.org/cs" }

func TestFilterCursor(t *testing.T) {
	f := NewFilter("canonical", OpEquals, "g")

	t.Run("unmaterialized cursor operations fail", func(t *testing.T) {
		if f.Materialized() {
			t.Error("new filter should not be materialized")
		}
		if _, err := f.Current(); !errors.Is(err, ErrNotMaterialized) {
			t.Errorf("Current() error = %v; want ErrNotMaterialized", err)
		}
		if _, err := f.Size(); !errors.Is(err, ErrNotMaterialized) {
			t.Errorf("Size() error = %v; want ErrNotMaterialized", err)
		}
	})

	f.Materialize([]Concept{testConcept{"mg"}, testConcept{"g"}})

	t.Run("current before first advance fails", func(t *testing.T) {
		if _, err := f.Current(); !errors.Is(err, ErrCursorExhausted) {
			t.Errorf("Current() error = %v; want ErrCursorExhausted", err)
		}
	})

	t.Run("advance enumerates in order then terminates", func(t *testing.T) {
		var codes []string
		for f.Advance() {
			c, err := f.Current()
			if err != nil {
				t.Fatalf("Current() error = %v", err)
			}
			codes = append(codes, c.Code())
		}
		if len(codes) != 2 || codes[0] != "mg" || codes[1] != "g" {
			t.Errorf("enumerated %v; want [mg g]", codes)
		}
		// Past the end is the termination signal, not an error; it stays
		// terminated.
		if f.Advance() {
			t.Error("Advance() after exhaustion = true; want false")
		}
		if _, err := f.Current(); !errors.Is(err, ErrCursorExhausted) {
			t.Errorf("Current() after exhaustion error = %v; want ErrCursorExhausted", err)
		}
	})

	t.Run("size", func(t *testing.T) {
		n, err := f.Size()
		if err != nil {
			t.Fatalf("Size() error = %v", err)
		}
		if n != 2 {
			t.Errorf("Size() = %d; want 2", n)
		}
	})
}

func TestFilterContext(t *testing.T) {
	fc := NewFilterContext(true)
	if !fc.ForExpansion() {
		t.Error("expected ForExpansion")
	}

	a := NewFilter("canonical", OpEquals, "g")
	b := NewFilter("canonical", OpEquals, "s")
	fc.Add(a)
	fc.Add(b)

	filters := fc.Filters()
	if len(filters) != 2 || filters[0] != a || filters[1] != b {
		t.Errorf("Filters() did not preserve order: %v", filters)
	}
}
