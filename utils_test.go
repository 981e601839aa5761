package bayex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.5, clamp(0.5, 0.0, 1.0))
	assert.Equal(t, 0.0, clamp(-2.0, 0.0, 1.0))
	assert.Equal(t, 1.0, clamp(7.0, 0.0, 1.0))

	// Works for any ordered type.
	assert.Equal(t, 3, clamp(10, 1, 3))
}

func TestLinspace(t *testing.T) {
	got := linspace(-3, 3, 5)

	assert.Equal(t, []float64{-3, -1.5, 0, 1.5, 3}, got)

	// Bounds are exact even when the step does not divide evenly.
	got = linspace(0, 1, 3)
	assert.Equal(t, 0.0, got[0])
	assert.Equal(t, 1.0, got[2])
}
