// Package terminology defines the pluggable code-system provider contract
// used by the gofhir terminology engine.
//
// A code system is either enumerable (a finite list of concepts, possibly
// with a subsumption hierarchy) or grammar-based (an unbounded space of
// codes validated by parsing, such as UCUM unit expressions). One contract,
// Provider, serves both shapes: for a grammar-based system "locate" means
// "parse and validate" rather than "look up in a table", and filtering is a
// predicate applied to a bounded enumeration hint rather than an index scan.
//
// # Quick Start
//
//	import (
//	    "github.com/gofhir/terminology"
//	    "github.com/gofhir/terminology/ucum"
//	)
//
//	factory, err := ucum.NewFactory(ctx, engine,
//	    ucum.WithCommonUnits(units),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	op := &terminology.Operation{Languages: terminology.ParseLanguages("en")}
//	provider := factory.Build(op, nil)
//
//	concept, msg, err := provider.Locate(ctx, "mg/dL")
//	if concept == nil {
//	    fmt.Println("invalid:", msg)
//	}
//
// # Filtering
//
// Filtered expansion runs through a FilterContext owned by a single logical
// operation. The provider appends one Filter per predicate; the caller then
// iterates with FilterMore/FilterConcept, or probes individual candidates
// with FilterLocate without disturbing the cursor:
//
//	fc := terminology.NewFilterContext(true)
//	if err := provider.Filter(ctx, fc, "canonical", terminology.OpEquals, "g"); err != nil {
//	    return err
//	}
//	f := fc.Filters()[0]
//	for {
//	    more, err := provider.FilterMore(ctx, f)
//	    if err != nil || !more {
//	        break
//	    }
//	    c, _ := provider.FilterConcept(ctx, f)
//	    fmt.Println(c.Code())
//	}
//
// # Packages
//
//   - ucum: grammar-based provider over an external UCUM engine
//   - enumerated: finite in-memory provider with hierarchy and subsumption
//   - worker: parallel batch checking of candidate codes
//   - cache: generic LRU cache used for canonical-form memoization
package terminology
