package bayex

import (
	"errors"
	"fmt"
)

//////
// Error taxonomy.
//////

// Sentinel errors for invalid uses of the library. All failures are
// fatal to the current run; nothing in this package retries.
var (
	// ErrEmptyDomain indicates a domain with no parameters.
	ErrEmptyDomain = errors.New("bayex: domain has no parameters")

	// ErrEmptyBatch indicates an empty candidate or observation batch.
	ErrEmptyBatch = errors.New("bayex: batch has no rows")

	// ErrNoObservations indicates a model that has not been fit to any
	// observation yet.
	ErrNoObservations = errors.New("bayex: model has no observations")
)

// ShapeError reports an input batch whose dimensionality does not match
// what the receiving component expects.
type ShapeError struct {
	// Got is the number of columns the batch actually has.
	Got int

	// Want is the number of columns the component expects.
	Want int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("bayex: input batch has %d columns, want %d", e.Got, e.Want)
}

// DimensionError reports mismatched batch sizes between two cooperating
// computations, e.g. an acquisition score and the predictive variance it
// is rescaled by.
type DimensionError struct {
	// Got is the batch size produced by the second computation.
	Got int

	// Want is the batch size produced by the first computation.
	Want int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("bayex: batch size mismatch: got %d, want %d", e.Got, e.Want)
}
