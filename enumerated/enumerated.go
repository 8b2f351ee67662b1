// Package enumerated implements the terminology.Provider contract for
// finite code systems: an in-memory concept list with displays,
// definitions and an optional subsumption hierarchy. It is the enumerable
// counterpart to the grammar-based ucum package; between them they cover
// both shapes the provider contract is designed to serve.
package enumerated

import (
	"fmt"
	"sync/atomic"

	"github.com/gofhir/fhir/r4"
	"github.com/gofhir/terminology"
	"github.com/gofhir/terminology/pkg/logger"
)

// Entry is one concept of an enumerated code system.
type Entry struct {
	Code       string
	Display    string
	Definition string

	// Parents are the codes this concept is subsumed by.
	Parents []string

	// Abstract concepts exist for grouping and are excluded from
	// descendant enumeration.
	Abstract bool
}

// Factory builds providers for one finite code system. The concept table
// and hierarchy indexes are computed once at construction; Build is cheap
// and safe for concurrent use.
type Factory struct {
	system      string
	version     string
	name        string
	description string

	entries  []Entry        // enumeration order
	index    map[string]int // code -> position in entries
	children map[string][]string

	useCount atomic.Int64
}

// New creates a factory for a code system from explicit entries.
// Duplicate codes keep the first occurrence.
func New(system, version, name string, entries []Entry) *Factory {
	f := &Factory{
		system:   system,
		version:  version,
		name:     name,
		index:    make(map[string]int, len(entries)),
		children: make(map[string][]string),
	}
	for _, e := range entries {
		if _, ok := f.index[e.Code]; ok {
			logger.Warn("duplicate code %q in %s, keeping first", e.Code, system)
			continue
		}
		f.index[e.Code] = len(f.entries)
		f.entries = append(f.entries, e)
	}
	// Reverse index for descendant walks.
	for _, e := range f.entries {
		for _, parent := range e.Parents {
			f.children[parent] = append(f.children[parent], e.Code)
		}
	}
	return f
}

// FromR4CodeSystem builds a factory from an R4 CodeSystem resource.
// Hierarchy comes from both structural nesting of concepts and explicit
// subsumedBy properties.
func FromR4CodeSystem(cs *r4.CodeSystem) (*Factory, error) {
	if cs == nil || cs.Url == nil {
		return nil, fmt.Errorf("codesystem is nil or has no URL")
	}

	var entries []Entry
	collectR4Concepts(cs.Concept, "", &entries)

	version := ""
	if cs.Version != nil {
		version = *cs.Version
	}
	name := ""
	if cs.Name != nil {
		name = *cs.Name
	}

	f := New(*cs.Url, version, name, entries)
	if cs.Description != nil {
		f.description = *cs.Description
	}
	return f, nil
}

func collectR4Concepts(concepts []r4.CodeSystemConcept, parent string, entries *[]Entry) {
	for i := range concepts {
		concept := &concepts[i]
		if concept.Code == nil {
			continue
		}
		e := Entry{Code: *concept.Code}
		if concept.Display != nil {
			e.Display = *concept.Display
		}
		if concept.Definition != nil {
			e.Definition = *concept.Definition
		}
		if parent != "" {
			e.Parents = append(e.Parents, parent)
		}
		for _, prop := range concept.Property {
			if prop.Code != nil && *prop.Code == "subsumedBy" && prop.ValueCode != nil {
				e.Parents = append(e.Parents, *prop.ValueCode)
			}
		}
		*entries = append(*entries, e)

		if len(concept.Concept) > 0 {
			collectR4Concepts(concept.Concept, e.Code, entries)
		}
	}
}

// Build constructs a provider bound to the operation's language
// preferences and the given supplements.
func (f *Factory) Build(op *terminology.Operation, supplements []*terminology.Supplement) terminology.Provider {
	f.useCount.Add(1)
	return &Provider{
		factory:     f,
		op:          op,
		supplements: supplements,
	}
}

// UseCount returns how many providers this factory has built.
func (f *Factory) UseCount() int64 {
	return f.useCount.Load()
}

// Key returns the factory-set cache key for this factory. Enumerated
// systems carry no separate common-units enumeration.
func (f *Factory) Key() string {
	return terminology.FactoryKey(f.system, f.version, "")
}

// descendants returns the non-abstract codes subsumed by startCode, in
// enumeration order; includeSelf also admits the starting code.
func (f *Factory) descendants(startCode string, includeSelf bool) map[string]bool {
	visited := make(map[string]bool)
	result := make(map[string]bool)

	var collect func(code string)
	collect = func(code string) {
		if visited[code] {
			return
		}
		visited[code] = true

		if includeSelf || code != startCode {
			if i, ok := f.index[code]; ok && !f.entries[i].Abstract {
				result[code] = true
			}
		}
		for _, child := range f.children[code] {
			collect(child)
		}
	}

	collect(startCode)
	return result
}

// isAncestor reports whether ancestor transitively subsumes code.
func (f *Factory) isAncestor(ancestor, code string) bool {
	visited := make(map[string]bool)
	var walk func(c string) bool
	walk = func(c string) bool {
		if visited[c] {
			return false
		}
		visited[c] = true
		i, ok := f.index[c]
		if !ok {
			return false
		}
		for _, p := range f.entries[i].Parents {
			if p == ancestor || walk(p) {
				return true
			}
		}
		return false
	}
	return walk(code)
}

// Verify interface compliance
var _ terminology.Factory = (*Factory)(nil)
