package terminology

import "errors"

// Sentinel errors. Call sites wrap these with fmt.Errorf("...: %w", ...) to
// add operation detail; callers test with errors.Is.
var (
	// ErrUnsupportedFilter is returned by Filter when the (property,
	// operator) pair is not implemented by the provider. This indicates a
	// caller or configuration defect, not user input.
	ErrUnsupportedFilter = errors.New("filter not supported")

	// ErrNoEnumeration is returned when a filter over an unbounded code
	// system must be materialized but no common-units enumeration is
	// available to bound it.
	ErrNoEnumeration = errors.New("no common units enumeration available")

	// ErrNotMaterialized is returned by cursor operations on a filter whose
	// result set was never materialized.
	ErrNotMaterialized = errors.New("filter results not materialized")

	// ErrCursorExhausted is returned by FilterConcept when the cursor is
	// before the first result or past the last; callers guard against this
	// by honoring the FilterMore contract.
	ErrCursorExhausted = errors.New("filter cursor out of range")

	// ErrWrongProvider is returned when a concept is handed to a provider
	// other than the one that produced it. This is an internal contract
	// violation, never expected in correct usage.
	ErrWrongProvider = errors.New("concept belongs to a different provider")

	// ErrNotFound is returned by factory-set lookups for an unknown key.
	ErrNotFound = errors.New("not found")
)
