package bayex

import "golang.org/x/exp/constraints"

//////
// Helper functions.
//////

// clamp restricts v to the closed interval [low, high].
//
// Used by the candidate optimizer to keep local-refinement probes
// inside the domain regardless of where Nelder-Mead wanders.
func clamp[T constraints.Ordered](v, low, high T) T {
	if v < low {
		return low
	}

	if v > high {
		return high
	}

	return v
}

// linspace returns n equally spaced values from low to high, bounds
// inclusive. n must be at least 2.
func linspace(low, high float64, n int) []float64 {
	out := make([]float64, n)

	step := (high - low) / float64(n-1)
	for i := range out {
		out[i] = low + float64(i)*step
	}

	// Guard the upper bound against accumulated round-off.
	out[n-1] = high

	return out
}
