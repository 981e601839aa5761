package bayex

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunExperimentEndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("full comparison study is slow")
	}

	// The reference study: 9-point design, 50 iterations per run, unit
	// noise variance.
	cfg := DefaultExperimentConfig()

	result, err := RunExperiment(context.Background(), cfg)
	require.NoError(t, err)

	// Both loops terminate with initial design + one observation per
	// iteration.
	assert.Equal(t, 9+50, result.EI.Model.Len())
	assert.Equal(t, 9+50, result.Augmented.Model.Len())

	// Histories match the models.
	rows, cols := result.EI.X.Dims()
	assert.Equal(t, 59, rows)
	assert.Equal(t, 2, cols)
	assert.Equal(t, 59, result.EI.Y.Len())

	// Every sampled point stayed within the camelback domain.
	for i := 0; i < rows; i++ {
		assert.True(t, result.Domain.Contains([]float64{
			result.EI.X.At(i, 0),
			result.EI.X.At(i, 1),
		}))
	}

	// Both posterior surfaces cover the full grid.
	gridRows, _ := result.Grid.Dims()
	assert.Equal(t, cfg.GridPerDim*cfg.GridPerDim, gridRows)
	assert.Equal(t, gridRows, result.EI.Surface.Len())
	assert.Equal(t, gridRows, result.Augmented.Surface.Len())

	// Each run found something at least as good as its worst sample.
	assert.NotNil(t, result.EI.BestX)
	assert.NotNil(t, result.Augmented.BestX)
}

func TestRunExperimentDeterministicForSeed(t *testing.T) {
	cfg := DefaultExperimentConfig()
	cfg.InitialSamples = 5
	cfg.Iterations = 3
	cfg.GridPerDim = 11
	cfg.GlobalCandidates = 50
	cfg.Starts = 2

	first, err := RunExperiment(context.Background(), cfg)
	require.NoError(t, err)

	second, err := RunExperiment(context.Background(), cfg)
	require.NoError(t, err)

	// The full observation histories of both runs repeat exactly.
	assert.Equal(t, first.EI.Y.RawVector().Data, second.EI.Y.RawVector().Data)
	assert.Equal(t, first.Augmented.Y.RawVector().Data, second.Augmented.Y.RawVector().Data)
	assert.Equal(t, first.EI.X.RawMatrix().Data, second.EI.X.RawMatrix().Data)
}

func TestRunExperimentRunsAreIsolated(t *testing.T) {
	cfg := DefaultExperimentConfig()
	cfg.InitialSamples = 5
	cfg.Iterations = 2
	cfg.GridPerDim = 11
	cfg.GlobalCandidates = 50
	cfg.Starts = 2

	result, err := RunExperiment(context.Background(), cfg)
	require.NoError(t, err)

	// Distinct models and observation sets per run.
	assert.NotSame(t, result.EI.Model, result.Augmented.Model)
	assert.Equal(t, 7, result.EI.Model.Len())
	assert.Equal(t, 7, result.Augmented.Model.Len())

	// The shared initial design is copied by value: the first
	// InitialSamples rows of both histories coincide in X but the runs
	// evolve independently afterwards.
	for i := 0; i < cfg.InitialSamples; i++ {
		assert.Equal(t, result.EI.X.At(i, 0), result.Augmented.X.At(i, 0))
		assert.Equal(t, result.EI.X.At(i, 1), result.Augmented.X.At(i, 1))
	}
}

func TestRunExperimentCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := DefaultExperimentConfig()

	_, err := RunExperiment(ctx, cfg)
	assert.ErrorIs(t, err, context.Canceled)
}
