package bayex

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

//////
// Optimization loop.
//////

// Loop runs a fixed-budget sequential optimization: each iteration
// proposes one candidate via the staged optimizer, evaluates the
// objective there, and appends the pair to the model's observation set
// (refitting it) before the next iteration.
//
// Fields:
// - Optimizer: Proposes the next candidate from the acquisition surface
// - Iterations: Number of propose-evaluate-observe cycles to run
// - Progress: Optional channel for per-iteration updates; nil disables
//   them. Sends never block: an update is dropped when the channel is
//   full.
type Loop struct {
	Optimizer  *StagedOptimizer
	Iterations int
	Progress   chan<- ProgressUpdate

	// RunName labels this loop's progress updates when several loops
	// share one channel.
	RunName string
}

// Run executes the loop against one objective, acquisition, and model.
//
// Parameters:
// - ctx: Cancels the loop between iterations
// - objective: The function being optimized
// - acq: The acquisition variant scoring candidates against model
// - model: The surrogate owning this run's observation set
// - domain: The bounded search space
//
// Returns:
// - error: The context error on cancellation, or the first error from
//   proposing, evaluating, or observing. No retries are performed.
//
// The model must be fit before Run is called; the loop only appends to
// it. After a successful run the model holds its initial observations
// plus exactly Iterations more.
func (l *Loop) Run(ctx context.Context, objective ObjectiveFunc, acq Acquisition, model *GP, domain Domain) error {
	for i := 0; i < l.Iterations; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		x, err := l.Optimizer.Propose(acq, domain)
		if err != nil {
			return fmt.Errorf("bayex: iteration %d: propose: %w", i+1, err)
		}

		batch := mat.NewDense(1, len(x), append([]float64(nil), x...))

		y, err := objective(batch)
		if err != nil {
			return fmt.Errorf("bayex: iteration %d: evaluate: %w", i+1, err)
		}

		if err := model.Observe(x, y.AtVec(0)); err != nil {
			return fmt.Errorf("bayex: iteration %d: observe: %w", i+1, err)
		}

		l.sendProgress(i+1, x, y.AtVec(0), model)
	}

	return nil
}

// sendProgress emits a non-blocking progress update.
func (l *Loop) sendProgress(iteration int, x []float64, y float64, model *GP) {
	if l.Progress == nil {
		return
	}

	_, best := model.Best()

	update := ProgressUpdate{
		Run:       l.RunName,
		Iteration: iteration,
		Total:     l.Iterations,
		X:         append([]float64(nil), x...),
		Y:         y,
		Best:      best,
	}

	select {
	case l.Progress <- update:
	default:
		// Skip update if channel is full.
	}
}
