// Package worker provides parallel batch checking of candidate codes
// against a terminology provider.
//
// Providers report validation failures as data rather than errors, so a
// batch continues past individually invalid codes; only engine-level
// failures surface as errors on the affected jobs. Locate, FilterLocate
// and the provider itself are read-safe, which is what makes fanning one
// provider out across a pool of workers sound.
package worker
