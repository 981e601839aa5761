package bayex

// ProgressUpdate represents the state of an optimization loop after one
// iteration. Updates are delivered on a caller-supplied channel and
// dropped rather than blocking when the consumer falls behind.
type ProgressUpdate struct {
	// Run labels which loop the update came from when several loops
	// share a channel.
	Run string

	// Iteration is the just-completed iteration, counting from 1.
	Iteration int

	// Total is the configured number of iterations for this loop.
	Total int

	// X is the candidate evaluated this iteration.
	X []float64

	// Y is the noisy objective value observed at X.
	Y float64

	// Best is the lowest objective value observed so far in this run.
	Best float64
}

// ExperimentConfig controls the camelback comparison experiment: two
// independent fixed-budget optimization runs over the same domain and
// initial design, one scored by plain expected improvement and one by
// the noise-rescaled variant.
//
// Fields:
// - Seed: Root seed; the design and each run derive their own streams
//   from it, so the whole experiment is reproducible
// - InitialSamples: Latin hypercube points evaluated before either loop
// - Iterations: Loop budget per run
// - NoiseVariance: Fixed observation-noise variance on both models
// - Xi: Expected-improvement exploration margin
// - GridPerDim: Levels per dimension of the posterior evaluation grid
// - GlobalCandidates, Starts: Staged-optimizer stage sizes
// - Progress: Optional channel receiving both loops' updates
//
// Usage example:
//
//	cfg := bayex.DefaultExperimentConfig()
//	cfg.Seed = 7
//	result, err := bayex.RunExperiment(context.Background(), cfg)
type ExperimentConfig struct {
	Seed int64

	InitialSamples int
	Iterations     int

	NoiseVariance float64
	Xi            float64

	GridPerDim int

	GlobalCandidates int
	Starts           int

	Progress chan<- ProgressUpdate
}

// DefaultExperimentConfig returns the configuration of the reference
// camelback study: a 9-point initial design, 50 iterations per run, and
// unit observation-noise variance.
func DefaultExperimentConfig() ExperimentConfig {
	return ExperimentConfig{
		Seed:             42,
		InitialSamples:   9,
		Iterations:       50,
		NoiseVariance:    1.0,
		Xi:               0.01,
		GridPerDim:       41,
		GlobalCandidates: 200,
		Starts:           5,
		Progress:         nil, // Default to no progress updates.
	}
}
