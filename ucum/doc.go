// Package ucum implements the terminology.Provider contract for the
// Unified Code for Units of Measure.
//
// UCUM is a grammar-based code system: the space of valid codes is
// infinite and defined only by the unit grammar, so "locate" means "parse
// and validate" against an external grammar engine rather than a table
// lookup. Filtered expansion over that space is bounded by an optional
// finite "common units" enumeration; without one, filters can be checked
// code-by-code but never materialized.
//
// The package does not implement the grammar itself. It consumes an
// engine through the Service interface; any UCUM implementation that can
// validate, analyse and canonicalize unit expressions can be plugged in.
package ucum
