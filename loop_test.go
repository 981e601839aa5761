package bayex

import (
	"context"
	"math/rand"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededRun(t *testing.T, rng *rand.Rand) (Domain, ObjectiveFunc, *GP) {
	t.Helper()

	domain := testDomain(t)
	objective := SixHumpCamelback(rng)

	model := NewGP(Matern52{LengthScale: 1, SignalVar: 1}, 1.0)

	design, err := LatinHypercube(domain, 5, rng)
	require.NoError(t, err)

	y0, err := objective(design)
	require.NoError(t, err)
	require.NoError(t, model.Fit(design, y0))

	return domain, objective, model
}

func TestLoopGrowsObservations(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	domain, objective, model := seededRun(t, rng)

	loop := &Loop{
		Optimizer:  NewStagedOptimizer(50, 3, rng),
		Iterations: 4,
	}

	acq := &ExpectedImprovement{Model: model, Xi: 0.01}

	require.NoError(t, loop.Run(context.Background(), objective, acq, model, domain))

	// The observation set grows by exactly one pair per iteration.
	assert.Equal(t, 5+4, model.Len())
}

func TestLoopProgressUpdates(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	domain, objective, model := seededRun(t, rng)

	iterations := 3

	// Create a bidirectional channel for progress updates.
	progressChan := make(chan ProgressUpdate, iterations)
	defer close(progressChan)

	// This just exists for testing purposes.
	var counter int32

	// Start a goroutine to handle progress updates.
	go func() {
		for update := range progressChan {
			// Atomic updates counter.
			atomic.AddInt32(&counter, int32(update.Iteration))
		}
	}()

	loop := &Loop{
		Optimizer:  NewStagedOptimizer(50, 3, rng),
		Iterations: iterations,
		Progress:   progressChan,
		RunName:    "test",
	}

	acq := &ExpectedImprovement{Model: model, Xi: 0.01}
	require.NoError(t, loop.Run(context.Background(), objective, acq, model, domain))

	// Ensure events were emitted: 1 + 2 + 3.
	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&counter) == 6
	}, time.Second, 10*time.Millisecond)
}

func TestLoopHonorsCancellation(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	domain, objective, model := seededRun(t, rng)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	loop := &Loop{
		Optimizer:  NewStagedOptimizer(50, 3, rng),
		Iterations: 10,
	}

	acq := &ExpectedImprovement{Model: model, Xi: 0.01}

	err := loop.Run(ctx, objective, acq, model, domain)
	assert.ErrorIs(t, err, context.Canceled)

	// Nothing was observed after cancellation.
	assert.Equal(t, 5, model.Len())
}
