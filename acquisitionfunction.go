package bayex

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

//////
// Acquisition functions.
// An acquisition function scores candidate points against the current
// surrogate model; the optimization loop evaluates the objective where
// the score is highest, balancing exploration (uncertain areas) and
// exploitation (known good areas).
//////

// Acquisition scores a batch of candidate points given the current
// state of a surrogate model. Higher is better. Any variant satisfying
// this interface is substitutable in the candidate optimizer and the
// optimization loop.
type Acquisition interface {
	// Score returns one score per row of X. The batch must be
	// non-empty and match the model's input dimensionality.
	Score(X *mat.Dense) (*mat.VecDense, error)
}

// sigmaFloor treats predictive standard deviations at or below this
// value as exact, avoiding division blow-ups at training points.
const sigmaFloor = 1e-10

// ExpectedImprovement scores candidates by the expected amount their
// value improves on the best observation so far, under the model's
// posterior distribution. This is the standard EI acquisition for
// minimization.
//
// How it works:
// - improvement = best - mean - Xi
// - EI = improvement * CDF(z) + sigma * PDF(z), z = improvement / sigma
// - Combines how likely an improvement is with how large it would be
//
// Fields:
// - Model: The fitted surrogate the scores are computed against
// - Xi: Minimum improvement desired; higher values encourage
//   exploration. Typical values range from 0.01 to 0.1.
//
// Usage example:
//
//	ei := &bayex.ExpectedImprovement{Model: gp, Xi: 0.01}
//	scores, err := ei.Score(candidates)
type ExpectedImprovement struct {
	Model *GP
	Xi    float64
}

// Score computes the expected improvement at each row of X.
//
// Returns:
//   - *mat.VecDense: One non-negative score per candidate
//   - error: ErrNoObservations when the model is unfit, ErrEmptyBatch
//     and ShapeError per the model's Predict contract
func (a *ExpectedImprovement) Score(X *mat.Dense) (*mat.VecDense, error) {
	mean, variance, err := a.Model.Predict(X)
	if err != nil {
		return nil, err
	}

	_, best := a.Model.Best()

	stdNormal := distuv.UnitNormal
	out := mat.NewVecDense(mean.Len(), nil)

	for i := 0; i < mean.Len(); i++ {
		improvement := best - mean.AtVec(i) - a.Xi
		sigma := math.Sqrt(variance.AtVec(i))

		// With no predictive uncertainty the expectation collapses to
		// the improvement itself.
		if sigma <= sigmaFloor {
			if improvement > 0 {
				out.SetVec(i, improvement)
			}

			continue
		}

		z := improvement / sigma

		out.SetVec(i, improvement*stdNormal.CDF(z)+sigma*stdNormal.Prob(z))
	}

	return out, nil
}

// NoiseRescaledEI wraps a base expected-improvement score with a
// noise-penalizing rescale. Where the surrogate's predictive
// uncertainty is small relative to the known observation-noise level,
// the score is suppressed, discouraging over-exploitation of noisy
// regions and pushing the search toward unexplored areas.
//
// Computation, elementwise over the candidate batch with v the model's
// configured noise variance:
//
//	score = base(X) * (1 - sqrt(v) / sqrt(var + v^2))
//
// The numerator takes the square root of the configured noise variance
// while the denominator squares it. The unit mismatch is present in the
// published augmented-EI formula as written (Huang et al. 2006, as
// commonly transcribed) and is reproduced here literally rather than
// normalized.
//
// Guarantees:
// - v = 0: the rescale is 1 and the score equals the base score
// - v > 0: the rescale is below 1 wherever var is small, and tends to 1
//   as var grows
//
// This is a stateless scoring function recomputed fresh on each call
// against the live model; it holds no state beyond its two references.
type NoiseRescaledEI struct {
	// Base is the wrapped acquisition, normally *ExpectedImprovement
	// over the same model.
	Base Acquisition

	// Model supplies the predictive variance and the fixed noise
	// variance used by the rescale.
	Model *GP
}

// Score computes the rescaled acquisition at each row of X.
//
// Returns:
//   - *mat.VecDense: One score per candidate, same batch size as the input
//   - error: Errors from the wrapped base acquisition, propagated
//     unchanged; DimensionError when the predictive-variance batch size
//     does not match the base score's
func (a *NoiseRescaledEI) Score(X *mat.Dense) (*mat.VecDense, error) {
	base, err := a.Base.Score(X)
	if err != nil {
		return nil, err
	}

	_, variance, err := a.Model.Predict(X)
	if err != nil {
		return nil, err
	}

	if variance.Len() != base.Len() {
		return nil, &DimensionError{Got: variance.Len(), Want: base.Len()}
	}

	v := a.Model.NoiseVariance()
	out := mat.NewVecDense(base.Len(), nil)

	for i := 0; i < base.Len(); i++ {
		rescale := 1.0

		// v = 0 makes the rescale exactly 1; computing it would divide
		// zero by zero at points with no predictive variance.
		if v > 0 {
			rescale = 1 - math.Sqrt(v)/math.Sqrt(variance.AtVec(i)+v*v)
		}

		out.SetVec(i, base.AtVec(i)*rescale)
	}

	return out, nil
}
