package ucum

import (
	"context"
	"fmt"
	"sync"
)

// fakeUnit scripts the engine's answers for one unit expression.
type fakeUnit struct {
	analysis  string
	canonical string
	canonErr  bool
}

// fakeEngine is a scripted grammar engine: expressions in units are
// valid, everything else is rejected with a deterministic message.
type fakeEngine struct {
	mu         sync.Mutex
	units      map[string]fakeUnit
	canonCalls map[string]int
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		units: map[string]fakeUnit{
			"mg":     {analysis: "milligram", canonical: "g"},
			"g":      {analysis: "gram", canonical: "g"},
			"kg":     {analysis: "kilogram", canonical: "g"},
			"s":      {analysis: "second", canonical: "s"},
			"m/s":    {analysis: "meter per second", canonical: "m.s-1"},
			"mm[Hg]": {analysis: "millimeter of mercury column", canonical: "g.m-1.s-2"},
			"[iU]":   {analysis: "international unit", canonErr: true},
		},
		canonCalls: make(map[string]int),
	}
}

func (e *fakeEngine) Validate(ctx context.Context, unit string) (string, error) {
	if _, ok := e.units[unit]; !ok {
		return fmt.Sprintf("The unit %q is not a valid UCUM expression", unit), nil
	}
	return "", nil
}

func (e *fakeEngine) Analyse(ctx context.Context, unit string) (string, error) {
	u, ok := e.units[unit]
	if !ok {
		return "", fmt.Errorf("unparseable unit %q", unit)
	}
	return u.analysis, nil
}

func (e *fakeEngine) CanonicalUnits(ctx context.Context, unit string) (string, error) {
	e.mu.Lock()
	e.canonCalls[unit]++
	e.mu.Unlock()

	u, ok := e.units[unit]
	if !ok || u.canonErr {
		return "", fmt.Errorf("cannot canonicalize %q", unit)
	}
	return u.canonical, nil
}

func (e *fakeEngine) Version(ctx context.Context) (string, error) {
	return "2.2", nil
}

func (e *fakeEngine) canonCallCount(unit string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.canonCalls[unit]
}

// Verify interface compliance
var _ Service = (*fakeEngine)(nil)
