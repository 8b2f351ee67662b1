package terminology

// VersionAlgorithm is the ordering discipline for comparing version
// strings of a code system, aligned with the FHIR version-algorithm codes.
type VersionAlgorithm string

// Version algorithms.
const (
	// VersionNatural is natural (lexical-with-numeric-runs) ordering, used
	// by code systems whose versions are not semver.
	VersionNatural VersionAlgorithm = "natural"
	// VersionSemver is semantic versioning order.
	VersionSemver VersionAlgorithm = "semver"
	// VersionInteger is plain integer order.
	VersionInteger VersionAlgorithm = "integer"
	// VersionAlpha is alphabetical order.
	VersionAlpha VersionAlgorithm = "alpha"
	// VersionDate is date order.
	VersionDate VersionAlgorithm = "date"
)

// String returns the algorithm code.
func (v VersionAlgorithm) String() string {
	return string(v)
}

// IsValid reports whether this is a known version algorithm.
func (v VersionAlgorithm) IsValid() bool {
	switch v {
	case VersionNatural, VersionSemver, VersionInteger, VersionAlpha, VersionDate:
		return true
	default:
		return false
	}
}
