package terminology

import "context"

// CountUnbounded is the TotalCount sentinel for grammar-based code systems:
// the code space is infinite and has no meaningful concept count. It is
// distinct from 0, which an empty but finite enumerated system may report.
const CountUnbounded = -1

// ContentMode describes how much of a code system a provider carries,
// aligned with the FHIR CodeSystemContentMode value set.
type ContentMode string

// ContentMode constants.
const (
	ContentComplete   ContentMode = "complete"
	ContentExample    ContentMode = "example"
	ContentFragment   ContentMode = "fragment"
	ContentNotPresent ContentMode = "not-present"
	ContentSupplement ContentMode = "supplement"
)

// SubsumptionOutcome is the result of a subsumption test between two
// concepts of the same code system.
type SubsumptionOutcome string

// Subsumption outcomes.
const (
	Equivalent  SubsumptionOutcome = "equivalent"
	Subsumes    SubsumptionOutcome = "subsumes"
	SubsumedBy  SubsumptionOutcome = "subsumed-by"
	NotSubsumed SubsumptionOutcome = "not-subsumed"
)

// Concept is an opaque, provider-specific handle for a code that has been
// located or validated. Concepts are immutable and safe for concurrent use.
// Handing a concept to a provider other than the one that produced it fails
// with ErrWrongProvider.
type Concept interface {
	// Code returns the code string the concept wraps.
	Code() string

	// System returns the canonical URI of the code system the concept
	// belongs to.
	System() string
}

// Property is a single named value produced by an extended lookup.
type Property struct {
	Code  string
	Value any
}

// LookupProperties collects properties emitted by Provider.ExtendLookup.
type LookupProperties struct {
	props []Property
}

// Add appends a property.
func (l *LookupProperties) Add(code string, value any) {
	l.props = append(l.props, Property{Code: code, Value: value})
}

// Properties returns the collected properties in emission order.
func (l *LookupProperties) Properties() []Property {
	return l.props
}

// Provider is the contract every code-system provider implements.
//
// Metadata operations are synchronous and cannot fail. Lookup and filter
// operations take a context because they may suspend on the underlying
// grammar engine or a supplement lookup; implementations must not rely on
// completion order across separate concepts.
//
// Validation failures are data, not errors: Locate reports an invalid code
// through its message return so that batch callers can continue past
// individual failures. Errors are reserved for configuration and
// programming defects (unsupported filters, missing enumerations, concepts
// from the wrong provider).
//
// A Provider is safe for concurrent use. Filter and FilterContext values
// are not: each filtered-expansion request must own its own context.
type Provider interface {
	// System returns the canonical URI identity of the code system.
	System() string

	// Version returns the code system version string.
	Version() string

	// Name returns the short name of the code system.
	Name() string

	// Description returns a human-readable description.
	Description() string

	// TotalCount returns the exact concept count, or CountUnbounded for
	// grammar-based systems.
	TotalCount() int

	// HasParents reports whether the code system defines a hierarchy.
	HasParents() bool

	// ContentMode reports how much of the code system this provider holds.
	ContentMode() ContentMode

	// VersionAlgorithm reports the ordering discipline for version strings.
	VersionAlgorithm() VersionAlgorithm

	// IsNotClosed reports whether filter results are necessarily incomplete
	// enumerations of an infinite space.
	IsNotClosed() bool

	// Locate validates or looks up a code. On success it returns a concept
	// and an empty message. On validation failure it returns a nil concept
	// and a human-readable message; this is not an error. An empty code is
	// a distinct non-error outcome: nil concept, message "Empty code".
	Locate(ctx context.Context, code string) (Concept, string, error)

	// Display resolves the best display text for a concept under the
	// operation's language preferences.
	Display(ctx context.Context, c Concept) (string, error)

	// Definition returns the definition text for a concept, or "" when the
	// code system carries none.
	Definition(c Concept) string

	// IsAbstract reports whether the concept is abstract.
	IsAbstract(c Concept) bool

	// IsInactive reports whether the concept is inactive.
	IsInactive(c Concept) bool

	// IsDeprecated reports whether the concept is deprecated.
	IsDeprecated(c Concept) bool

	// Designations emits every known designation for the concept into sink.
	Designations(ctx context.Context, c Concept, sink DesignationSink) error

	// SameConcept reports whether two concepts denote the same code.
	SameConcept(a, b Concept) bool

	// Subsumes tests the subsumption relationship between two concepts.
	Subsumes(ctx context.Context, a, b Concept) (SubsumptionOutcome, error)

	// ExtendLookup appends requested extra properties for the concept to
	// out. Properties that cannot be computed are skipped, never fatal.
	ExtendLookup(ctx context.Context, c Concept, properties []string, out *LookupProperties) error

	// SupportsFilter reports whether the provider understands the given
	// (property, operator, value) triple.
	SupportsFilter(property string, op FilterOperator, value string) bool

	// Filter validates the triple and appends a new Filter to fc. When fc
	// is marked for expansion the filter's result set is materialized
	// eagerly; for an unbounded system this requires a common-units
	// enumeration and fails with ErrNoEnumeration otherwise.
	Filter(ctx context.Context, fc *FilterContext, property string, op FilterOperator, value string) error

	// FilterMore advances the filter cursor and reports whether a valid
	// position remains. It must be called before the first FilterConcept.
	FilterMore(ctx context.Context, f *Filter) (bool, error)

	// FilterConcept returns the concept at the filter's current cursor
	// position.
	FilterConcept(ctx context.Context, f *Filter) (Concept, error)

	// FilterLocate tests whether code satisfies the filter without moving
	// the cursor. On failure the message explains why the candidate was
	// rejected.
	FilterLocate(ctx context.Context, f *Filter, code string) (Concept, string, error)

	// FilterCheck is the membership test of FilterLocate for an already
	// resolved concept.
	FilterCheck(ctx context.Context, f *Filter, c Concept) (bool, string, error)

	// FilterSize returns the length of the filter's materialized result
	// set. The filter must have been materialized.
	FilterSize(f *Filter) (int, error)

	// ExecuteFilters returns the filters of fc in order. Combination
	// semantics across multiple filters are the caller's concern.
	ExecuteFilters(ctx context.Context, fc *FilterContext) ([]*Filter, error)

	// FiltersNotClosed reports whether the filters of fc may be incomplete
	// enumerations.
	FiltersNotClosed(fc *FilterContext) bool
}
