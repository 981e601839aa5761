package bayex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDomainValidation(t *testing.T) {
	// A valid two-parameter domain.
	domain, err := NewDomain(
		Parameter{Name: "x1", Min: -3, Max: 3},
		Parameter{Name: "x2", Min: -2, Max: 2},
	)
	require.NoError(t, err)
	assert.Equal(t, 2, domain.Dim())

	// No parameters at all.
	_, err = NewDomain()
	assert.ErrorIs(t, err, ErrEmptyDomain)

	// Duplicate names.
	_, err = NewDomain(
		Parameter{Name: "x", Min: 0, Max: 1},
		Parameter{Name: "x", Min: 0, Max: 1},
	)
	assert.Error(t, err)

	// Inverted bounds.
	_, err = NewDomain(Parameter{Name: "x", Min: 1, Max: 1})
	assert.Error(t, err)

	// Empty name.
	_, err = NewDomain(Parameter{Name: "", Min: 0, Max: 1})
	assert.Error(t, err)
}

func TestDomainAdditiveComposition(t *testing.T) {
	d1, err := NewDomain(Parameter{Name: "x1", Min: -3, Max: 3})
	require.NoError(t, err)

	// Add preserves order and does not mutate the receiver.
	d2, err := d1.Add(Parameter{Name: "x2", Min: -2, Max: 2})
	require.NoError(t, err)
	assert.Equal(t, 1, d1.Dim())
	assert.Equal(t, 2, d2.Dim())
	assert.Equal(t, "x2", d2.Parameters()[1].Name)

	// Joining two domains appends in order.
	other, err := NewDomain(Parameter{Name: "x3", Min: 0, Max: 1})
	require.NoError(t, err)

	joined, err := d2.Join(other)
	require.NoError(t, err)
	assert.Equal(t, 3, joined.Dim())
	assert.Equal(t, "x3", joined.Parameters()[2].Name)

	// Joining reuses name validation.
	_, err = d2.Join(d2)
	assert.Error(t, err)
}

func TestDomainBoundsAndContains(t *testing.T) {
	domain, err := NewDomain(
		Parameter{Name: "x1", Min: -3, Max: 3},
		Parameter{Name: "x2", Min: -2, Max: 2},
	)
	require.NoError(t, err)

	assert.Equal(t, [][2]float64{{-3, 3}, {-2, 2}}, domain.Bounds())

	assert.True(t, domain.Contains([]float64{0, 0}))
	assert.True(t, domain.Contains([]float64{-3, 2}))
	assert.False(t, domain.Contains([]float64{3.5, 0}))
	assert.False(t, domain.Contains([]float64{0, -2.5}))

	// Wrong dimensionality is never contained.
	assert.False(t, domain.Contains([]float64{0}))
}
