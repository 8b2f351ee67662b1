package terminology

// FilterOperator is a filter comparison operator, aligned with the FHIR
// filter-operator value set.
type FilterOperator string

// Filter operators.
const (
	OpEquals       FilterOperator = "="
	OpIsA          FilterOperator = "is-a"
	OpIsNotA       FilterOperator = "is-not-a"
	OpDescendentOf FilterOperator = "descendent-of"
	OpRegex        FilterOperator = "regex"
	OpIn           FilterOperator = "in"
	OpNotIn        FilterOperator = "not-in"
	OpExists       FilterOperator = "exists"
)

// Filter is the mutable per-operation cursor over the result set produced
// by one filter invocation. The cursor starts at -1; advancing past the end
// of the materialized results is the termination signal, not an error.
//
// A Filter belongs to exactly one logical operation and is not safe for
// concurrent use. FilterLocate and FilterCheck do not touch the cursor and
// may run concurrently with each other.
type Filter struct {
	// Property is the filtered property name.
	Property string

	// Op is the comparison operator.
	Op FilterOperator

	// Criterion is the value being matched, e.g. a canonical-form string.
	// Empty means "any code accepted by the enumeration".
	Criterion string

	cursor       int
	materialized bool
	results      []Concept
}

// NewFilter creates a filter for the given predicate with the cursor before
// the first position.
func NewFilter(property string, op FilterOperator, criterion string) *Filter {
	return &Filter{
		Property:  property,
		Op:        op,
		Criterion: criterion,
		cursor:    -1,
	}
}

// Materialize installs the eagerly computed result set. Providers that
// enumerate lazily never call this.
func (f *Filter) Materialize(results []Concept) {
	f.results = results
	f.materialized = true
	f.cursor = -1
}

// Materialized reports whether the filter carries a materialized result set.
func (f *Filter) Materialized() bool {
	return f.materialized
}

// Advance moves the cursor one position forward and reports whether it
// still addresses a result.
func (f *Filter) Advance() bool {
	if f.cursor < len(f.results) {
		f.cursor++
	}
	return f.cursor < len(f.results)
}

// Current returns the concept at the cursor position.
func (f *Filter) Current() (Concept, error) {
	if !f.materialized {
		return nil, ErrNotMaterialized
	}
	if f.cursor < 0 || f.cursor >= len(f.results) {
		return nil, ErrCursorExhausted
	}
	return f.results[f.cursor], nil
}

// Size returns the length of the materialized result set.
func (f *Filter) Size() (int, error) {
	if !f.materialized {
		return 0, ErrNotMaterialized
	}
	return len(f.results), nil
}

// FilterContext carries the ordered set of active filters for one logical
// filtered-expansion operation. It is owned exclusively by the request that
// created it and must not be shared across concurrent operations.
type FilterContext struct {
	forExpansion bool
	filters      []*Filter
}

// NewFilterContext creates a filter context. forExpansion indicates that
// the caller intends to iterate the results, which requires providers to
// materialize them at filter-creation time; check-only callers pass false
// and never pay for materialization.
func NewFilterContext(forExpansion bool) *FilterContext {
	return &FilterContext{forExpansion: forExpansion}
}

// ForExpansion reports whether filters must materialize their results.
func (fc *FilterContext) ForExpansion() bool {
	return fc.forExpansion
}

// Add appends a filter, preserving predicate order.
func (fc *FilterContext) Add(f *Filter) {
	fc.filters = append(fc.filters, f)
}

// Filters returns the active filters in the order they were added.
func (fc *FilterContext) Filters() []*Filter {
	return fc.filters
}
