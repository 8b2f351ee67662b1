package ucum

import "context"

// SystemURI is the canonical URI of the UCUM code system.
const SystemURI = "http://unitsofmeasure.org"

// Service is the external UCUM grammar engine the provider delegates to.
// Implementations must be safe for concurrent use and must terminate on
// any input (the grammar is finite and codes are bounded-length strings).
type Service interface {
	// Validate checks a unit expression against the grammar. It returns
	// an empty string when the expression is valid, otherwise the
	// engine's rejection message verbatim. The error return is for
	// engine-level failures only, never for invalid input.
	Validate(ctx context.Context, unit string) (string, error)

	// Analyse returns a human-readable description of a valid unit
	// expression, e.g. "millimeter of mercury column" for "mm[Hg]".
	Analyse(ctx context.Context, unit string) (string, error)

	// CanonicalUnits returns the canonical form of a unit expression.
	// It fails for expressions the engine cannot canonicalize.
	CanonicalUnits(ctx context.Context, unit string) (string, error)

	// Version returns the UCUM specification version the engine
	// implements.
	Version(ctx context.Context) (string, error)
}
