package bayex

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

//////
// Objective functions.
//////

// ObjectiveFunc evaluates a batch of input points and returns one noisy
// scalar output per row. Implementations own any randomness they use;
// callers pass an explicit random source at construction so runs are
// reproducible for a fixed seed.
//
// Parameters:
// - X: Batch of input points, one point per row
//
// Returns:
// - *mat.VecDense: One output value per input row
// - error: ShapeError when the batch's column count does not match the
//   function's input dimension
type ObjectiveFunc func(X *mat.Dense) (*mat.VecDense, error)

// SixHumpCamelback returns the noisy six-hump camelback test function
// over two inputs.
//
// For input (x1, x2):
//
//	f(x1, x2) = (4 - 2.1*x1^2 + 0.3*x1^4)*x1^2 + x1*x2 + 4*(x2^2 - 1)*x2^2
//
// Each evaluation adds an independent uniform [0, 1) draw from rng.
// The noise is deliberately uniform rather than Gaussian: it exercises
// optimization under bounded noise that the surrogate's noise model
// does not match. Two calls with identically seeded sources and the
// same X produce identical outputs.
//
// Parameters:
// - rng: The random source used for the injected noise. Must not be nil.
//
// Usage example:
//
//	rng := rand.New(rand.NewSource(42))
//	objective := bayex.SixHumpCamelback(rng)
//	y, err := objective(mat.NewDense(1, 2, []float64{0, 0}))
//
// Error conditions:
// - ShapeError when X has a column count other than 2
// - ErrEmptyBatch when X has no rows
func SixHumpCamelback(rng *rand.Rand) ObjectiveFunc {
	return func(X *mat.Dense) (*mat.VecDense, error) {
		n, d := X.Dims()

		if d != 2 {
			return nil, &ShapeError{Got: d, Want: 2}
		}

		if n == 0 {
			return nil, ErrEmptyBatch
		}

		out := mat.NewVecDense(n, nil)

		for i := 0; i < n; i++ {
			x1 := X.At(i, 0)
			x2 := X.At(i, 1)

			f := (4-2.1*x1*x1+0.3*x1*x1*x1*x1)*x1*x1 +
				x1*x2 +
				4*(x2*x2-1)*x2*x2

			// One noise draw per row per call.
			out.SetVec(i, f+rng.Float64())
		}

		return out, nil
	}
}
