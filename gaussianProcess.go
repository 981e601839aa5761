package bayex

import (
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/mat"
)

//////
// Kernels.
//////

// Kernel measures the similarity between two points in the input space.
// Implementations must be symmetric and produce positive semi-definite
// covariance matrices.
type Kernel interface {
	// Eval computes the kernel value between x1 and x2. Both vectors
	// must have the same length.
	Eval(x1, x2 []float64) float64
}

// Matern52 implements the Matern 5/2 kernel, the usual default for
// Bayesian optimization: twice differentiable but less aggressively
// smooth than the squared exponential.
//
// Mathematical formula, with r the Euclidean distance scaled by the
// length scale:
//
//	k(x1, x2) = s * (1 + sqrt(5)*r + (5/3)*r^2) * exp(-sqrt(5)*r)
//
// Fields:
// - LengthScale: Distance over which correlation decays (larger = smoother)
// - SignalVar: Amplitude of the modeled function
type Matern52 struct {
	LengthScale float64
	SignalVar   float64
}

// Eval computes the Matern 5/2 kernel value between x1 and x2.
func (k Matern52) Eval(x1, x2 []float64) float64 {
	r := math.Sqrt(squaredDistance(x1, x2)) / k.LengthScale

	poly := 1.0 + math.Sqrt(5)*r + (5.0/3.0)*r*r

	return k.SignalVar * poly * math.Exp(-math.Sqrt(5)*r)
}

// RBF implements the Radial Basis Function (squared exponential)
// kernel.
//
// Mathematical formula:
//
//	k(x1, x2) = s * exp(-sum((x1 - x2)^2) / (2 * l^2))
//
// Fields:
// - LengthScale: Distance over which correlation decays (larger = smoother)
// - SignalVar: Amplitude of the modeled function
type RBF struct {
	LengthScale float64
	SignalVar   float64
}

// Eval computes the RBF kernel value between x1 and x2.
func (k RBF) Eval(x1, x2 []float64) float64 {
	return k.SignalVar * math.Exp(-squaredDistance(x1, x2)/(2*k.LengthScale*k.LengthScale))
}

//////
// Gaussian Process regression.
//////

// GP is a thread-safe Gaussian Process regression model with a fixed,
// non-trainable observation-noise variance. It predicts the mean and
// uncertainty of the objective at untested points from previously
// observed (X, Y) pairs.
//
// Thread safety:
// - All fields are protected by the RWMutex
// - Predict and read accessors take the read lock
// - Fit and Observe take the write lock
//
// Memory usage:
// - Stores a copy of every observation; O(n) memory, O(n^3) fit time
//   where n is the number of observations.
type GP struct {
	// mu protects access to all fields.
	mu sync.RWMutex

	// kernel computes pairwise covariances.
	kernel Kernel

	// noiseVar is the fixed observation-noise variance added to the
	// covariance diagonal. It is configured at construction and never
	// re-estimated during fitting.
	noiseVar float64

	// x holds the observed input points. Inner slices all share the
	// same length.
	x [][]float64

	// y holds the observed value at each point in x.
	y []float64

	// chol and alpha cache the Cholesky factor of the covariance matrix
	// and the solved weights K^-1 y from the most recent fit.
	chol   mat.Cholesky
	alpha  *mat.VecDense
	fitted bool
}

// NewGP creates a Gaussian Process model with the given kernel and
// fixed observation-noise variance.
//
// Parameters:
// - kernel: Covariance function, e.g. Matern52{LengthScale: 1, SignalVar: 1}
// - noiseVariance: Assumed variance of measurement noise (>= 0);
//   treated as a fixed model parameter, never fit
//
// Usage example:
//
//	gp := bayex.NewGP(bayex.Matern52{LengthScale: 1, SignalVar: 1}, 1.0)
func NewGP(kernel Kernel, noiseVariance float64) *GP {
	return &GP{
		kernel:   kernel,
		noiseVar: noiseVariance,
	}
}

// Fit replaces the model's training set with the given observations and
// refits.
//
// Parameters:
// - X: Observed input points, one per row
// - y: Observed value for each row of X
//
// Returns:
//   - error: ErrEmptyBatch for an empty X, DimensionError when X and y
//     disagree on the number of observations, or a factorization error
//     when the kernel matrix is not positive definite
func (gp *GP) Fit(X *mat.Dense, y *mat.VecDense) error {
	n, _ := X.Dims()

	if n == 0 {
		return ErrEmptyBatch
	}

	if y.Len() != n {
		return &DimensionError{Got: y.Len(), Want: n}
	}

	gp.mu.Lock()
	defer gp.mu.Unlock()

	gp.x = make([][]float64, n)
	gp.y = make([]float64, n)

	for i := 0; i < n; i++ {
		gp.x[i] = mat.Row(nil, i, X)
		gp.y[i] = y.AtVec(i)
	}

	return gp.refit()
}

// Observe appends a single observation to the training set and refits
// the model. This is the per-iteration update used by the optimization
// loop.
//
// Parameters:
// - x: Input point (copied; the caller keeps ownership)
// - y: Observed value at x
//
// Returns:
//   - error: ShapeError when x's length differs from earlier
//     observations, or a factorization error from refitting
func (gp *GP) Observe(x []float64, y float64) error {
	gp.mu.Lock()
	defer gp.mu.Unlock()

	if len(gp.x) > 0 && len(x) != len(gp.x[0]) {
		return &ShapeError{Got: len(x), Want: len(gp.x[0])}
	}

	point := make([]float64, len(x))
	copy(point, x)

	gp.x = append(gp.x, point)
	gp.y = append(gp.y, y)

	return gp.refit()
}

// refit rebuilds the Cholesky factorization and weights from the
// current training set. Callers must hold the write lock.
func (gp *GP) refit() error {
	n := len(gp.x)

	K := mat.NewSymDense(n, nil)

	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			v := gp.kernel.Eval(gp.x[i], gp.x[j])
			if i == j {
				v += gp.noiseVar
			}

			K.SetSym(i, j, v)
		}
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(K); !ok {
		gp.fitted = false

		return fmt.Errorf("bayex: kernel matrix is not positive definite (n=%d)", n)
	}

	alpha := mat.NewVecDense(n, nil)
	if err := chol.SolveVecTo(alpha, mat.NewVecDense(n, gp.y)); err != nil {
		gp.fitted = false

		return fmt.Errorf("bayex: solve kernel system: %w", err)
	}

	gp.chol = chol
	gp.alpha = alpha
	gp.fitted = true

	return nil
}

// Predict estimates the posterior mean and latent predictive variance
// at each row of X.
//
// Parameters:
// - X: Candidate points, one per row, with the training dimensionality
//
// Returns:
//   - mean: Posterior mean per candidate
//   - variance: Posterior latent variance per candidate, floored at zero
//     (the observation-noise variance is not added; callers that need
//     the noisy predictive distribution add NoiseVariance themselves)
//   - error: ErrNoObservations before the first successful fit,
//     ErrEmptyBatch for an empty X, ShapeError on a column mismatch
//
// Performance considerations:
// - O(n) per candidate for the mean, O(n^2) for the variance, with n
//   the number of observations.
func (gp *GP) Predict(X *mat.Dense) (mean, variance *mat.VecDense, err error) {
	gp.mu.RLock()
	defer gp.mu.RUnlock()

	if !gp.fitted {
		return nil, nil, ErrNoObservations
	}

	m, d := X.Dims()

	if m == 0 {
		return nil, nil, ErrEmptyBatch
	}

	if d != len(gp.x[0]) {
		return nil, nil, &ShapeError{Got: d, Want: len(gp.x[0])}
	}

	n := len(gp.x)
	mean = mat.NewVecDense(m, nil)
	variance = mat.NewVecDense(m, nil)

	kstar := make([]float64, n)
	point := make([]float64, d)

	for i := 0; i < m; i++ {
		mat.Row(point, i, X)

		for j := 0; j < n; j++ {
			kstar[j] = gp.kernel.Eval(point, gp.x[j])
		}

		kvec := mat.NewVecDense(n, kstar)

		mean.SetVec(i, mat.Dot(kvec, gp.alpha))

		var solved mat.VecDense
		if err := gp.chol.SolveVecTo(&solved, kvec); err != nil {
			return nil, nil, fmt.Errorf("bayex: solve predictive system: %w", err)
		}

		v := gp.kernel.Eval(point, point) - mat.Dot(kvec, &solved)
		if v < 0 {
			// Numerical round-off can push the variance slightly
			// negative near training points.
			v = 0
		}

		variance.SetVec(i, v)
	}

	return mean, variance, nil
}

// NoiseVariance returns the fixed observation-noise variance the model
// was constructed with.
func (gp *GP) NoiseVariance() float64 {
	return gp.noiseVar
}

// Len returns the number of observations the model currently holds.
func (gp *GP) Len() int {
	gp.mu.RLock()
	defer gp.mu.RUnlock()

	return len(gp.x)
}

// Best returns the observation with the lowest value (minimization).
// Before any observation it returns (nil, +Inf).
func (gp *GP) Best() ([]float64, float64) {
	gp.mu.RLock()
	defer gp.mu.RUnlock()

	best := math.Inf(1)
	var bestX []float64

	for i, y := range gp.y {
		if y < best {
			best = y
			bestX = gp.x[i]
		}
	}

	if bestX == nil {
		return nil, best
	}

	out := make([]float64, len(bestX))
	copy(out, bestX)

	return out, best
}

// TrainingData returns copies of the observed inputs and values. Both
// returns are nil when the model is empty.
func (gp *GP) TrainingData() (*mat.Dense, *mat.VecDense) {
	gp.mu.RLock()
	defer gp.mu.RUnlock()

	n := len(gp.x)
	if n == 0 {
		return nil, nil
	}

	d := len(gp.x[0])
	X := mat.NewDense(n, d, nil)
	y := mat.NewVecDense(n, nil)

	for i := 0; i < n; i++ {
		X.SetRow(i, gp.x[i])
		y.SetVec(i, gp.y[i])
	}

	return X, y
}

// squaredDistance returns the squared Euclidean distance between two
// equal-length vectors. Panics when the lengths differ, matching the
// kernel contract.
func squaredDistance(x1, x2 []float64) float64 {
	if len(x1) != len(x2) {
		panic("bayex: kernel inputs must have the same length")
	}

	var sum float64

	for i := range x1 {
		diff := x1[i] - x2[i]

		sum += diff * diff
	}

	return sum
}
