package terminology

// Operation is the per-request state a provider is built against: the
// caller's language preferences plus an optional request identity used in
// log lines. Operations are consumed, not owned, by providers; one
// Operation must not outlive the logical request that created it.
type Operation struct {
	// ID identifies the logical request, empty when untracked.
	ID string

	// Languages is the caller's ordered language preference set.
	Languages Languages
}

// Factory constructs providers for one logical code system, identified by
// (system, version, common-units enumeration). A factory is immutable
// after construction except for its usage counter, which increments once
// per Build; concurrent Build calls are safe.
//
// Construction of a provider is cheap: the factory amortizes the one
// expensive step, precomputing canonical forms for the common-units
// enumeration, across every provider it builds.
type Factory interface {
	// Build constructs a provider bound to the operation's language
	// preferences and the given supplements.
	Build(op *Operation, supplements []*Supplement) Provider

	// UseCount returns how many providers this factory has built.
	UseCount() int64
}
