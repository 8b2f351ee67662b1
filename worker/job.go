package worker

import (
	"time"

	"github.com/gofhir/terminology"
)

// Job is one candidate code to check.
type Job struct {
	// ID correlates the job with its result; empty IDs are allowed.
	ID string

	// Code is the candidate code.
	Code string

	// Filter, when set, checks the code against this filter via
	// FilterLocate instead of a plain Locate. FilterLocate does not move
	// the filter cursor, so many jobs may share one filter.
	Filter *terminology.Filter
}

// JobResult is the outcome of checking one candidate code.
type JobResult struct {
	// ID matches the Job.ID that produced this result.
	ID string

	// Code is the candidate code that was checked.
	Code string

	// Concept is non-nil when the code was accepted.
	Concept terminology.Concept

	// Message explains a rejection; empty when the code was accepted or
	// the check failed with an error.
	Message string

	// Err is set when the check itself failed (engine failure, wrong
	// provider), as opposed to the code being invalid.
	Err error

	// Duration is the time taken to check the code.
	Duration time.Duration
}

// Valid reports whether the code was accepted.
func (r *JobResult) Valid() bool {
	return r.Err == nil && r.Concept != nil
}

// BatchResult aggregates the results of a batch check.
type BatchResult struct {
	// Results holds every job result, in completion order.
	Results []*JobResult

	// Total is the number of jobs submitted.
	Total int

	// Valid is the number of accepted codes.
	Valid int

	// Invalid is the number of rejected codes.
	Invalid int

	// Failed is the number of jobs that errored.
	Failed int
}
