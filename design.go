package bayex

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

//////
// Experimental designs.
//////

// LatinHypercube generates n space-filling points from the domain using
// Latin hypercube sampling. Each dimension is split into n equal strata
// and every stratum contributes exactly one sample; the per-dimension
// stratum order is shuffled independently so the points cover the space
// without aligning on a grid.
//
// Parameters:
// - domain: The bounded parameter space to sample from
// - n: Number of points to generate
// - rng: Explicit random source; the design is deterministic for a fixed seed
//
// Returns:
// - *mat.Dense: n rows of domain.Dim() columns, each row within bounds
// - error: ErrEmptyDomain for a zero-dimensional domain, ErrEmptyBatch
//   for n < 1
//
// Usage example:
//
//	design, err := bayex.LatinHypercube(domain, 9, rand.New(rand.NewSource(42)))
func LatinHypercube(domain Domain, n int, rng *rand.Rand) (*mat.Dense, error) {
	dim := domain.Dim()

	if dim == 0 {
		return nil, ErrEmptyDomain
	}

	if n < 1 {
		return nil, ErrEmptyBatch
	}

	bounds := domain.Bounds()
	points := mat.NewDense(n, dim, nil)

	for j := 0; j < dim; j++ {
		// One jittered sample per stratum, in [0, 1).
		column := make([]float64, n)
		for i := 0; i < n; i++ {
			column[i] = (float64(i) + rng.Float64()) / float64(n)
		}

		// Decouple this dimension's stratum order from the others.
		rng.Shuffle(n, func(a, b int) {
			column[a], column[b] = column[b], column[a]
		})

		low, high := bounds[j][0], bounds[j][1]
		for i := 0; i < n; i++ {
			points.Set(i, j, low+column[i]*(high-low))
		}
	}

	return points, nil
}

// FactorialGrid generates a full factorial design over the domain:
// perDim equally spaced levels per dimension (bounds inclusive), one
// row per combination. The result has perDim^domain.Dim() rows with the
// last dimension varying fastest.
//
// Parameters:
// - domain: The bounded parameter space to cover
// - perDim: Number of levels per dimension, at least 2
//
// Returns:
// - *mat.Dense: The dense evaluation grid
// - error: ErrEmptyDomain for a zero-dimensional domain, or a validation
//   error for perDim < 2
func FactorialGrid(domain Domain, perDim int) (*mat.Dense, error) {
	dim := domain.Dim()

	if dim == 0 {
		return nil, ErrEmptyDomain
	}

	if perDim < 2 {
		return nil, ErrEmptyBatch
	}

	bounds := domain.Bounds()

	// Equally spaced levels per dimension, bounds inclusive.
	levels := make([][]float64, dim)
	for j := 0; j < dim; j++ {
		levels[j] = linspace(bounds[j][0], bounds[j][1], perDim)
	}

	total := 1
	for j := 0; j < dim; j++ {
		total *= perDim
	}

	grid := mat.NewDense(total, dim, nil)

	// Mixed-radix enumeration of level indices, last dimension fastest.
	for i := 0; i < total; i++ {
		rem := i
		for j := dim - 1; j >= 0; j-- {
			grid.Set(i, j, levels[j][rem%perDim])
			rem /= perDim
		}
	}

	return grid, nil
}
