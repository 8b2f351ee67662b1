package enumerated

import (
	"context"
	"errors"
	"testing"

	"github.com/gofhir/fhir/r4"
	"github.com/gofhir/terminology"
)

const severitySystem = "http://example.org/fhir/CodeSystem/severity"

func severityEntries() []Entry {
	return []Entry{
		{Code: "severity", Display: "Severity", Abstract: true},
		{Code: "mild", Display: "Mild", Parents: []string{"severity"}},
		{Code: "moderate", Display: "Moderate", Parents: []string{"severity"}},
		{Code: "severe", Display: "Severe", Parents: []string{"severity"}},
		{Code: "life-threatening", Display: "Life Threatening", Parents: []string{"severe"}},
	}
}

func buildSeverityProvider(t *testing.T, langs string, supplements ...*terminology.Supplement) terminology.Provider {
	t.Helper()
	f := New(severitySystem, "1.0.0", "Severity", severityEntries())
	op := &terminology.Operation{Languages: terminology.ParseLanguages(langs)}
	return f.Build(op, supplements)
}

func mustLocate(t *testing.T, p terminology.Provider, code string) terminology.Concept {
	t.Helper()
	c, msg, err := p.Locate(context.Background(), code)
	if err != nil {
		t.Fatalf("Locate(%q) error = %v", code, err)
	}
	if c == nil {
		t.Fatalf("Locate(%q) rejected: %s", code, msg)
	}
	return c
}

func TestProviderMetadata(t *testing.T) {
	p := buildSeverityProvider(t, "")

	if p.System() != severitySystem {
		t.Errorf("System() = %q", p.System())
	}
	if p.Version() != "1.0.0" {
		t.Errorf("Version() = %q", p.Version())
	}
	if p.TotalCount() != 5 {
		t.Errorf("TotalCount() = %d; want 5", p.TotalCount())
	}
	if !p.HasParents() {
		t.Error("HasParents() = false; want true")
	}
	if p.IsNotClosed() {
		t.Error("IsNotClosed() = true; a finite enumeration is complete")
	}
	if p.ContentMode() != terminology.ContentComplete {
		t.Errorf("ContentMode() = %q", p.ContentMode())
	}
}

func TestLocateAndDisplay(t *testing.T) {
	ctx := context.Background()
	p := buildSeverityProvider(t, "")

	t.Run("known code", func(t *testing.T) {
		c := mustLocate(t, p, "mild")
		d, err := p.Display(ctx, c)
		if err != nil {
			t.Fatalf("Display() error = %v", err)
		}
		if d != "Mild" {
			t.Errorf("Display(mild) = %q; want Mild", d)
		}
	})

	t.Run("unknown code", func(t *testing.T) {
		c, msg, err := p.Locate(ctx, "fatal")
		if err != nil {
			t.Fatalf("Locate() error = %v", err)
		}
		if c != nil || msg == "" {
			t.Errorf("Locate(fatal) = %v, %q; want nil with message", c, msg)
		}
	})

	t.Run("empty code", func(t *testing.T) {
		c, msg, _ := p.Locate(ctx, "")
		if c != nil || msg != "Empty code" {
			t.Errorf("Locate(\"\") = %v, %q; want nil, %q", c, msg, "Empty code")
		}
	})

	t.Run("supplement display wins", func(t *testing.T) {
		supp := terminology.NewSupplement("http://example.org/supp/de", "de")
		supp.AddDesignation("mild", terminology.Designation{Use: terminology.UseDisplay, Value: "Leicht"})
		p := buildSeverityProvider(t, "de", supp)

		d, err := p.Display(ctx, mustLocate(t, p, "mild"))
		if err != nil {
			t.Fatalf("Display() error = %v", err)
		}
		if d != "Leicht" {
			t.Errorf("Display(mild) = %q; want Leicht", d)
		}
	})
}

func TestAbstract(t *testing.T) {
	p := buildSeverityProvider(t, "")
	if !p.IsAbstract(mustLocate(t, p, "severity")) {
		t.Error("IsAbstract(severity) = false; want true")
	}
	if p.IsAbstract(mustLocate(t, p, "mild")) {
		t.Error("IsAbstract(mild) = true; want false")
	}
}

func TestSubsumption(t *testing.T) {
	ctx := context.Background()
	p := buildSeverityProvider(t, "")

	tests := []struct {
		a, b string
		want terminology.SubsumptionOutcome
	}{
		{"mild", "mild", terminology.Equivalent},
		{"severity", "mild", terminology.Subsumes},
		{"severity", "life-threatening", terminology.Subsumes},
		{"life-threatening", "severe", terminology.SubsumedBy},
		{"mild", "severe", terminology.NotSubsumed},
	}
	for _, tt := range tests {
		t.Run(tt.a+" vs "+tt.b, func(t *testing.T) {
			got, err := p.Subsumes(ctx, mustLocate(t, p, tt.a), mustLocate(t, p, tt.b))
			if err != nil {
				t.Fatalf("Subsumes() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Subsumes(%s, %s) = %q; want %q", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestFilters(t *testing.T) {
	ctx := context.Background()
	p := buildSeverityProvider(t, "")

	iterate := func(t *testing.T, property string, op terminology.FilterOperator, value string) []string {
		t.Helper()
		fc := terminology.NewFilterContext(true)
		if err := p.Filter(ctx, fc, property, op, value); err != nil {
			t.Fatalf("Filter(%s %s %s) error = %v", property, op, value, err)
		}
		f := fc.Filters()[0]
		var codes []string
		for {
			more, err := p.FilterMore(ctx, f)
			if err != nil {
				t.Fatalf("FilterMore() error = %v", err)
			}
			if !more {
				break
			}
			c, err := p.FilterConcept(ctx, f)
			if err != nil {
				t.Fatalf("FilterConcept() error = %v", err)
			}
			codes = append(codes, c.Code())
		}
		return codes
	}

	t.Run("is-a excludes abstract root but includes descendants", func(t *testing.T) {
		got := iterate(t, "concept", terminology.OpIsA, "severity")
		want := []string{"mild", "moderate", "severe", "life-threatening"}
		assertCodes(t, got, want)
	})

	t.Run("descendent-of excludes self", func(t *testing.T) {
		got := iterate(t, "concept", terminology.OpDescendentOf, "severe")
		assertCodes(t, got, []string{"life-threatening"})
	})

	t.Run("code regex", func(t *testing.T) {
		got := iterate(t, "code", terminology.OpRegex, "^m.*")
		assertCodes(t, got, []string{"mild", "moderate"})
	})

	t.Run("code equals", func(t *testing.T) {
		got := iterate(t, "code", terminology.OpEquals, "severe")
		assertCodes(t, got, []string{"severe"})
	})

	t.Run("unsupported filter", func(t *testing.T) {
		fc := terminology.NewFilterContext(true)
		err := p.Filter(ctx, fc, "canonical", terminology.OpEquals, "g")
		if !errors.Is(err, terminology.ErrUnsupportedFilter) {
			t.Errorf("Filter() error = %v; want ErrUnsupportedFilter", err)
		}
	})

	t.Run("invalid regex", func(t *testing.T) {
		fc := terminology.NewFilterContext(true)
		if err := p.Filter(ctx, fc, "code", terminology.OpRegex, "("); err == nil {
			t.Error("expected error for invalid regex")
		}
	})

	t.Run("filters are closed", func(t *testing.T) {
		fc := terminology.NewFilterContext(true)
		if p.FiltersNotClosed(fc) {
			t.Error("FiltersNotClosed() = true; want false")
		}
	})
}

func TestFilterLocateAndCheck(t *testing.T) {
	ctx := context.Background()
	p := buildSeverityProvider(t, "")

	fc := terminology.NewFilterContext(false)
	if err := p.Filter(ctx, fc, "concept", terminology.OpIsA, "severe"); err != nil {
		t.Fatalf("Filter() error = %v", err)
	}
	f := fc.Filters()[0]

	t.Run("member", func(t *testing.T) {
		c, msg, err := p.FilterLocate(ctx, f, "life-threatening")
		if err != nil {
			t.Fatalf("FilterLocate() error = %v", err)
		}
		if c == nil {
			t.Fatalf("FilterLocate(life-threatening) rejected: %s", msg)
		}
	})

	t.Run("non-member gets a message", func(t *testing.T) {
		c, msg, err := p.FilterLocate(ctx, f, "mild")
		if err != nil {
			t.Fatalf("FilterLocate() error = %v", err)
		}
		if c != nil || msg == "" {
			t.Errorf("FilterLocate(mild) = %v, %q; want rejection with message", c, msg)
		}
	})

	t.Run("check via concept", func(t *testing.T) {
		ok, _, err := p.FilterCheck(ctx, f, mustLocate(t, p, "severe"))
		if err != nil {
			t.Fatalf("FilterCheck() error = %v", err)
		}
		if !ok {
			t.Error("FilterCheck(severe) = false; want true (is-a includes self)")
		}
	})
}

func TestExtendLookupHierarchy(t *testing.T) {
	ctx := context.Background()
	p := buildSeverityProvider(t, "")

	var out terminology.LookupProperties
	err := p.ExtendLookup(ctx, mustLocate(t, p, "severe"), []string{"parent", "child"}, &out)
	if err != nil {
		t.Fatalf("ExtendLookup() error = %v", err)
	}

	props := out.Properties()
	if len(props) != 2 {
		t.Fatalf("Properties() = %+v; want parent and child", props)
	}
	if props[0].Code != "parent" || props[0].Value != "severity" {
		t.Errorf("props[0] = %+v", props[0])
	}
	if props[1].Code != "child" || props[1].Value != "life-threatening" {
		t.Errorf("props[1] = %+v", props[1])
	}
}

func TestFromR4CodeSystem(t *testing.T) {
	cs := &r4.CodeSystem{
		Url:     strp(severitySystem),
		Version: strp("2.0.0"),
		Name:    strp("Severity"),
		Concept: []r4.CodeSystemConcept{
			{
				Code:    strp("severity"),
				Display: strp("Severity"),
				Concept: []r4.CodeSystemConcept{
					{Code: strp("mild"), Display: strp("Mild")},
					{Code: strp("severe"), Display: strp("Severe")},
				},
			},
			{
				Code: strp("life-threatening"),
				Property: []r4.CodeSystemConceptProperty{
					{Code: strp("subsumedBy"), ValueCode: strp("severe")},
				},
			},
		},
	}

	f, err := FromR4CodeSystem(cs)
	if err != nil {
		t.Fatalf("FromR4CodeSystem() error = %v", err)
	}
	p := f.Build(nil, nil)
	ctx := context.Background()

	if p.TotalCount() != 4 {
		t.Errorf("TotalCount() = %d; want 4", p.TotalCount())
	}

	// Structural nesting and subsumedBy both feed the hierarchy.
	got, err := p.Subsumes(ctx, mustLocate(t, p, "severity"), mustLocate(t, p, "life-threatening"))
	if err != nil {
		t.Fatalf("Subsumes() error = %v", err)
	}
	if got != terminology.Subsumes {
		t.Errorf("Subsumes() = %q; want subsumes", got)
	}
}

func TestWrongProviderConcept(t *testing.T) {
	p := buildSeverityProvider(t, "")
	other := New("http://example.org/other", "", "Other", []Entry{{Code: "x"}}).Build(nil, nil)

	c := mustLocate(t, other, "x")
	if _, err := p.Display(context.Background(), c); !errors.Is(err, terminology.ErrWrongProvider) {
		t.Errorf("Display() error = %v; want ErrWrongProvider", err)
	}
}

func assertCodes(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("codes = %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("codes = %v; want %v", got, want)
		}
	}
}

func strp(s string) *string { return &s }
