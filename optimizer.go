package bayex

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
)

//////
// Candidate optimization.
//////

// StagedOptimizer searches the domain for the point maximizing an
// acquisition function, in two stages: a global stage that scores a
// batch of uniform random candidates, then a local stage that refines
// the most promising of them with derivative-free Nelder-Mead runs.
//
// Fields:
// - GlobalCandidates: Random points scored in the global stage.
//   Recommended range: 100-1000.
// - Starts: Top global candidates handed to the local stage as starting
//   points. Recommended range: 3-10.
//
// The optimizer draws all randomness from the source passed at
// construction, so proposals are deterministic for a fixed seed.
type StagedOptimizer struct {
	GlobalCandidates int
	Starts           int

	rng *rand.Rand
}

// NewStagedOptimizer creates a staged optimizer with the given stage
// sizes and random source.
//
// Parameters:
// - globalCandidates: Random points scored in the global stage (min 1)
// - starts: Local refinement starting points (min 1, capped at
//   globalCandidates)
// - rng: Explicit random source for the global stage
func NewStagedOptimizer(globalCandidates, starts int, rng *rand.Rand) *StagedOptimizer {
	if globalCandidates < 1 {
		globalCandidates = 1
	}

	if starts < 1 {
		starts = 1
	}

	if starts > globalCandidates {
		starts = globalCandidates
	}

	return &StagedOptimizer{
		GlobalCandidates: globalCandidates,
		Starts:           starts,
		rng:              rng,
	}
}

// Propose returns the point in the domain with the highest acquisition
// score the two stages could find.
//
// Parameters:
// - acq: The acquisition function to maximize
// - domain: The bounded space to search
//
// Returns:
// - []float64: The best candidate found, always within bounds
// - error: ErrEmptyDomain for a zero-dimensional domain, or any error
//   surfaced by the acquisition function
//
// The local stage clamps every probe to the domain bounds, so the
// refinement never evaluates the acquisition outside the domain. When
// every local run fails the best global candidate is returned as-is.
func (so *StagedOptimizer) Propose(acq Acquisition, domain Domain) ([]float64, error) {
	dim := domain.Dim()

	if dim == 0 {
		return nil, ErrEmptyDomain
	}

	bounds := domain.Bounds()

	// Global stage: score a batch of uniform random candidates.
	candidates := mat.NewDense(so.GlobalCandidates, dim, nil)

	for i := 0; i < so.GlobalCandidates; i++ {
		for j := 0; j < dim; j++ {
			low, high := bounds[j][0], bounds[j][1]
			candidates.Set(i, j, low+so.rng.Float64()*(high-low))
		}
	}

	scores, err := acq.Score(candidates)
	if err != nil {
		return nil, fmt.Errorf("bayex: global stage: %w", err)
	}

	starts := topCandidates(candidates, scores, so.Starts)

	// Local stage: Nelder-Mead refinement from each start, maximizing
	// the acquisition by minimizing its negation.
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			probe := make([]float64, dim)
			for j := 0; j < dim; j++ {
				probe[j] = clamp(x[j], bounds[j][0], bounds[j][1])
			}

			s, err := acq.Score(mat.NewDense(1, dim, probe))
			if err != nil {
				return math.Inf(1)
			}

			return -s.AtVec(0)
		},
	}

	settings := &optimize.Settings{
		Converger: &optimize.FunctionConverge{
			Absolute:   1e-8,
			Relative:   1e-8,
			Iterations: 50,
		},
	}

	best := append([]float64(nil), starts[0]...)
	bestVal := problem.Func(best)

	for _, start := range starts {
		x0 := append([]float64(nil), start...)

		result, err := optimize.Minimize(problem, x0, settings, &optimize.NelderMead{})
		if err != nil {
			continue
		}

		if result.F < bestVal {
			bestVal = result.F

			for j := 0; j < dim; j++ {
				best[j] = clamp(result.X[j], bounds[j][0], bounds[j][1])
			}
		}
	}

	return best, nil
}

// topCandidates returns copies of the k highest-scoring rows of
// candidates, best first.
func topCandidates(candidates *mat.Dense, scores *mat.VecDense, k int) [][]float64 {
	n, _ := candidates.Dims()

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}

	sort.Slice(order, func(a, b int) bool {
		return scores.AtVec(order[a]) > scores.AtVec(order[b])
	})

	if k > n {
		k = n
	}

	top := make([][]float64, k)
	for i := 0; i < k; i++ {
		top[i] = mat.Row(nil, order[i], candidates)
	}

	return top
}
