package bayex

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// candidateBatch spans on-data and off-data regions of the test GP.
func candidateBatch() *mat.Dense {
	return mat.NewDense(5, 2, []float64{
		-0.5, 0.5,
		0, 0,
		1.5, -0.5,
		-2.5, 1.5,
		2.9, 1.9,
	})
}

func TestExpectedImprovementNonNegative(t *testing.T) {
	gp := fitTestGP(t, 1.0)
	ei := &ExpectedImprovement{Model: gp, Xi: 0.01}

	scores, err := ei.Score(candidateBatch())
	require.NoError(t, err)
	require.Equal(t, 5, scores.Len())

	for i := 0; i < scores.Len(); i++ {
		assert.GreaterOrEqual(t, scores.AtVec(i), 0.0)
		assert.False(t, math.IsNaN(scores.AtVec(i)))
	}
}

func TestExpectedImprovementUnfitModel(t *testing.T) {
	gp := NewGP(Matern52{LengthScale: 1, SignalVar: 1}, 1.0)
	ei := &ExpectedImprovement{Model: gp, Xi: 0.01}

	_, err := ei.Score(candidateBatch())
	assert.ErrorIs(t, err, ErrNoObservations)
}

func TestNoiseRescaledEIZeroNoiseEqualsBase(t *testing.T) {
	// With zero noise variance the rescale factor is exactly 1 and the
	// augmented score equals plain EI.
	gp := fitTestGP(t, 0)

	ei := &ExpectedImprovement{Model: gp, Xi: 0.01}
	aug := &NoiseRescaledEI{Base: ei, Model: gp}

	base, err := ei.Score(candidateBatch())
	require.NoError(t, err)

	scores, err := aug.Score(candidateBatch())
	require.NoError(t, err)

	require.Equal(t, base.Len(), scores.Len())

	for i := 0; i < base.Len(); i++ {
		assert.Equal(t, base.AtVec(i), scores.AtVec(i))
	}
}

func TestNoiseRescaledEINeverExceedsBase(t *testing.T) {
	// The rescale factor is at most 1, so the augmented score is
	// bounded by plain EI elementwise for any positive noise variance.
	for _, noiseVariance := range []float64{0.25, 1.0, 4.0} {
		gp := fitTestGP(t, noiseVariance)

		ei := &ExpectedImprovement{Model: gp, Xi: 0.01}
		aug := &NoiseRescaledEI{Base: ei, Model: gp}

		base, err := ei.Score(candidateBatch())
		require.NoError(t, err)

		scores, err := aug.Score(candidateBatch())
		require.NoError(t, err)

		for i := 0; i < base.Len(); i++ {
			assert.LessOrEqual(t, scores.AtVec(i), base.AtVec(i),
				"noise variance %v, candidate %d", noiseVariance, i)
		}
	}
}

func TestNoiseRescaledEIFormula(t *testing.T) {
	// The score must be EI times 1 - sqrt(v)/sqrt(var + v^2), with the
	// square root of the configured noise variance in the numerator and
	// its square in the denominator, exactly as published.
	gp := fitTestGP(t, 1.0)

	ei := &ExpectedImprovement{Model: gp, Xi: 0.01}
	aug := &NoiseRescaledEI{Base: ei, Model: gp}

	X := candidateBatch()

	base, err := ei.Score(X)
	require.NoError(t, err)

	scores, err := aug.Score(X)
	require.NoError(t, err)

	_, variance, err := gp.Predict(X)
	require.NoError(t, err)

	v := gp.NoiseVariance()

	for i := 0; i < base.Len(); i++ {
		rescale := 1 - math.Sqrt(v)/math.Sqrt(variance.AtVec(i)+v*v)

		assert.InDelta(t, base.AtVec(i)*rescale, scores.AtVec(i), 1e-12)
		assert.Less(t, rescale, 1.0)
	}
}

func TestNoiseRescaledEISingleCandidate(t *testing.T) {
	gp := fitTestGP(t, 1.0)

	aug := &NoiseRescaledEI{
		Base:  &ExpectedImprovement{Model: gp, Xi: 0.01},
		Model: gp,
	}

	scores, err := aug.Score(mat.NewDense(1, 2, []float64{0.3, -0.7}))
	require.NoError(t, err)
	assert.Equal(t, 1, scores.Len())
}

// stubAcquisition returns a fixed-size score vector regardless of the
// input batch, to exercise the batch-size cross-check.
type stubAcquisition struct {
	n int
}

func (s *stubAcquisition) Score(X *mat.Dense) (*mat.VecDense, error) {
	out := mat.NewVecDense(s.n, nil)
	for i := 0; i < s.n; i++ {
		out.SetVec(i, 1)
	}

	return out, nil
}

func TestNoiseRescaledEIBatchMismatch(t *testing.T) {
	gp := fitTestGP(t, 1.0)

	aug := &NoiseRescaledEI{Base: &stubAcquisition{n: 3}, Model: gp}

	_, err := aug.Score(mat.NewDense(2, 2, []float64{0, 0, 1, 1}))

	var dimErr *DimensionError
	require.ErrorAs(t, err, &dimErr)
	assert.Equal(t, 2, dimErr.Got)
	assert.Equal(t, 3, dimErr.Want)
}

func TestNoiseRescaledEIPropagatesBaseErrors(t *testing.T) {
	// Errors from the wrapped acquisition surface unchanged.
	unfit := NewGP(Matern52{LengthScale: 1, SignalVar: 1}, 1.0)

	aug := &NoiseRescaledEI{
		Base:  &ExpectedImprovement{Model: unfit, Xi: 0.01},
		Model: unfit,
	}

	_, err := aug.Score(candidateBatch())
	assert.ErrorIs(t, err, ErrNoObservations)
}
