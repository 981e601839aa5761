package bayex

import "fmt"

//////
// Parameter space.
//////

// Parameter defines one named, bounded, continuous dimension of the
// search space.
//
// Fields:
// - Name: Unique identifier for this parameter within a Domain
// - Min: The minimum (inclusive) value for this parameter
// - Max: The maximum (inclusive) value for this parameter
//
// Usage:
//
//	x1 := bayex.Parameter{Name: "x1", Min: -3, Max: 3}
//	x2 := bayex.Parameter{Name: "x2", Min: -2, Max: 2}
//
// Validation:
// - Min must be strictly less than Max
// - Names must be unique within a Domain (checked by NewDomain)
type Parameter struct {
	// Name identifies the parameter. Must be non-empty and unique
	// within its Domain.
	Name string

	// Min defines the lower bound (inclusive).
	Min float64

	// Max defines the upper bound (inclusive). Must be greater than Min.
	Max float64
}

// Domain is an ordered list of named, bounded parameters describing the
// input space of an optimization problem. Domains are immutable once
// constructed; Add returns a new Domain rather than mutating the
// receiver.
type Domain struct {
	params []Parameter
}

// NewDomain builds a Domain from one or more parameters.
//
// Parameters:
// - params: The parameters, in the order their values appear in input vectors
//
// Returns:
// - Domain: The validated domain
// - error: ErrEmptyDomain when no parameters are given, or a validation
//   error for empty/duplicate names and inverted bounds
//
// Usage example:
//
//	domain, err := bayex.NewDomain(
//	    bayex.Parameter{Name: "x1", Min: -3, Max: 3},
//	    bayex.Parameter{Name: "x2", Min: -2, Max: 2},
//	)
func NewDomain(params ...Parameter) (Domain, error) {
	if len(params) == 0 {
		return Domain{}, ErrEmptyDomain
	}

	seen := make(map[string]bool, len(params))

	for _, p := range params {
		if p.Name == "" {
			return Domain{}, fmt.Errorf("bayex: parameter with empty name")
		}

		if seen[p.Name] {
			return Domain{}, fmt.Errorf("bayex: duplicate parameter name %q", p.Name)
		}

		seen[p.Name] = true

		if p.Min >= p.Max {
			return Domain{}, fmt.Errorf("bayex: parameter %q has invalid bounds [%v, %v]", p.Name, p.Min, p.Max)
		}
	}

	d := Domain{params: make([]Parameter, len(params))}
	copy(d.params, params)

	return d, nil
}

// Add composes the domain with one more parameter, preserving order.
// The receiver is not modified.
func (d Domain) Add(p Parameter) (Domain, error) {
	combined := make([]Parameter, 0, len(d.params)+1)
	combined = append(combined, d.params...)
	combined = append(combined, p)

	return NewDomain(combined...)
}

// Join appends another domain's parameters after this domain's,
// preserving order. The receivers are not modified.
func (d Domain) Join(other Domain) (Domain, error) {
	combined := make([]Parameter, 0, len(d.params)+len(other.params))
	combined = append(combined, d.params...)
	combined = append(combined, other.params...)

	return NewDomain(combined...)
}

// Dim returns the number of parameters in the domain.
func (d Domain) Dim() int {
	return len(d.params)
}

// Parameters returns a copy of the domain's parameters in order.
func (d Domain) Parameters() []Parameter {
	out := make([]Parameter, len(d.params))
	copy(out, d.params)

	return out
}

// Bounds returns the parameter bounds as [low, high] pairs, in
// parameter order.
func (d Domain) Bounds() [][2]float64 {
	bounds := make([][2]float64, len(d.params))
	for i, p := range d.params {
		bounds[i] = [2]float64{p.Min, p.Max}
	}

	return bounds
}

// Contains reports whether the point x lies within the domain's bounds.
// Points with the wrong dimensionality are never contained.
func (d Domain) Contains(x []float64) bool {
	if len(x) != len(d.params) {
		return false
	}

	for i, p := range d.params {
		if x[i] < p.Min || x[i] > p.Max {
			return false
		}
	}

	return true
}
