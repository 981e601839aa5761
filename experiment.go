package bayex

import (
	"context"
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

//////
// The camelback comparison experiment.
//////

// Run names for the two optimization loops.
const (
	RunEI        = "ei"
	RunAugmented = "aei"
)

// RunResult carries the final state of one optimization run.
type RunResult struct {
	// Name is RunEI or RunAugmented.
	Name string

	// Model is the run's surrogate, fit to every observation the run
	// made.
	Model *GP

	// X and Y are the run's full observation history: the initial
	// design followed by one row per loop iteration.
	X *mat.Dense
	Y *mat.VecDense

	// Surface is the model's posterior mean evaluated on the shared
	// grid, one value per grid row.
	Surface *mat.VecDense

	// BestX and BestY identify the lowest observation of the run.
	BestX []float64
	BestY float64
}

// Result is the outcome of the full experiment: both runs plus the
// shared evaluation grid their posteriors were rendered on.
type Result struct {
	Domain Domain

	// Grid is the factorial evaluation grid shared by both surfaces.
	Grid *mat.Dense

	// GridPerDim is the number of levels per dimension in Grid.
	GridPerDim int

	EI        RunResult
	Augmented RunResult
}

// RunExperiment executes the six-hump camelback comparison study: the
// domain x1 in [-3, 3], x2 in [-2, 2] is seeded with a Latin hypercube
// design, then two optimization loops run strictly sequentially with no
// shared state. Both use a Matern 5/2 surrogate with the configured
// fixed noise variance; the first scores candidates with plain expected
// improvement, the second with the noise-rescaled variant. Afterwards
// both posterior means are evaluated on a dense factorial grid.
//
// Determinism: for a fixed cfg.Seed the initial design, both noise
// streams, and both candidate searches are reproducible. Each run
// derives its own random stream from the root seed, so the two loops
// never consume each other's draws.
//
// Returns:
// - *Result: Both runs' models, histories, and grid surfaces
// - error: Any error from design generation, model fitting, candidate
//   optimization, or objective evaluation, propagated uncaught; this
//   driver adds context but performs no recovery
func RunExperiment(ctx context.Context, cfg ExperimentConfig) (*Result, error) {
	domain, err := NewDomain(
		Parameter{Name: "x1", Min: -3, Max: 3},
		Parameter{Name: "x2", Min: -2, Max: 2},
	)
	if err != nil {
		return nil, err
	}

	designRng := rand.New(rand.NewSource(cfg.Seed))

	design, err := LatinHypercube(domain, cfg.InitialSamples, designRng)
	if err != nil {
		return nil, fmt.Errorf("bayex: initial design: %w", err)
	}

	grid, err := FactorialGrid(domain, cfg.GridPerDim)
	if err != nil {
		return nil, fmt.Errorf("bayex: evaluation grid: %w", err)
	}

	res := &Result{
		Domain:     domain,
		Grid:       grid,
		GridPerDim: cfg.GridPerDim,
	}

	// The runs execute strictly sequentially and share nothing but the
	// (value-copied) initial design and the grid.
	res.EI, err = runOne(ctx, cfg, domain, design, grid, RunEI)
	if err != nil {
		return nil, fmt.Errorf("bayex: %s run: %w", RunEI, err)
	}

	res.Augmented, err = runOne(ctx, cfg, domain, design, grid, RunAugmented)
	if err != nil {
		return nil, fmt.Errorf("bayex: %s run: %w", RunAugmented, err)
	}

	return res, nil
}

// runOne performs a single optimization run with its own model, random
// stream, and observation history.
func runOne(ctx context.Context, cfg ExperimentConfig, domain Domain, design, grid *mat.Dense, name string) (RunResult, error) {
	// Offset the root seed per run so the streams are independent but
	// still reproducible.
	var offset int64 = 1
	if name == RunAugmented {
		offset = 2
	}

	rng := rand.New(rand.NewSource(cfg.Seed + offset))
	objective := SixHumpCamelback(rng)

	model := NewGP(Matern52{LengthScale: 1, SignalVar: 1}, cfg.NoiseVariance)

	y0, err := objective(design)
	if err != nil {
		return RunResult{}, err
	}

	if err := model.Fit(design, y0); err != nil {
		return RunResult{}, err
	}

	var acq Acquisition = &ExpectedImprovement{Model: model, Xi: cfg.Xi}
	if name == RunAugmented {
		acq = &NoiseRescaledEI{Base: acq, Model: model}
	}

	loop := &Loop{
		Optimizer:  NewStagedOptimizer(cfg.GlobalCandidates, cfg.Starts, rng),
		Iterations: cfg.Iterations,
		Progress:   cfg.Progress,
		RunName:    name,
	}

	if err := loop.Run(ctx, objective, acq, model, domain); err != nil {
		return RunResult{}, err
	}

	surface, _, err := model.Predict(grid)
	if err != nil {
		return RunResult{}, err
	}

	X, y := model.TrainingData()
	bestX, bestY := model.Best()

	return RunResult{
		Name:    name,
		Model:   model,
		X:       X,
		Y:       y,
		Surface: surface,
		BestX:   bestX,
		BestY:   bestY,
	}, nil
}
