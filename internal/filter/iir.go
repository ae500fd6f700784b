// Package filter provides IIR filtering and filter analysis for waveform preparation.
package filter

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// ErrInvalidCoefficients indicates a numerator/denominator pair that does not
// describe a usable rational transfer function.
var ErrInvalidCoefficients = errors.New("invalid filter coefficients")

// ValidateCoefficients checks that b and a define a usable filter.
func ValidateCoefficients(b, a []float64) error {
	if len(b) == 0 {
		return fmt.Errorf("%w: numerator is empty", ErrInvalidCoefficients)
	}
	if len(a) == 0 {
		return fmt.Errorf("%w: denominator is empty", ErrInvalidCoefficients)
	}
	if a[0] == 0 {
		return fmt.Errorf("%w: denominator[0] must be non-zero", ErrInvalidCoefficients)
	}
	for i, v := range b {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: numerator[%d] is not finite", ErrInvalidCoefficients, i)
		}
	}
	for i, v := range a {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: denominator[%d] is not finite", ErrInvalidCoefficients, i)
		}
	}
	return nil
}

// LFilter applies the rational transfer function b/a to x in a single causal pass.
//
// The filter is realized in transposed direct form II with zero initial state:
//
//	a[0]*y[n] = b[0]*x[n] + ... + b[M]*x[n-M] - a[1]*y[n-1] - ... - a[N]*y[n-N]
//
// Coefficients are normalized by a[0]. The output has the same length as x.
func LFilter(b, a, x []float64) ([]float64, error) {
	if err := ValidateCoefficients(b, a); err != nil {
		return nil, err
	}

	order := max(len(b), len(a))
	bn := make([]float64, order)
	an := make([]float64, order)
	copy(bn, b)
	copy(an, a)
	a0 := an[0]
	for i := range order {
		bn[i] /= a0
		an[i] /= a0
	}

	y := make([]float64, len(x))
	if order == 1 {
		for n, v := range x {
			y[n] = bn[0] * v
		}
		return y, nil
	}

	// z holds order-1 delay elements
	z := make([]float64, order-1)
	last := order - 1
	for n, v := range x {
		out := bn[0]*v + z[0]
		for k := 1; k < last; k++ {
			z[k-1] = bn[k]*v + z[k] - an[k]*out
		}
		z[last-1] = bn[last]*v - an[last]*out
		y[n] = out
	}

	return y, nil
}

// ZeroPhase filters x forward, reverses the result, filters it again and
// reverses it back. The two passes cancel each other's phase shift, so the
// effective response is the squared magnitude of b/a with no delay.
//
// Both passes start from zero state. No padding or initial-condition matching
// is applied at the edges.
func ZeroPhase(b, a, x []float64) ([]float64, error) {
	forward, err := LFilter(b, a, x)
	if err != nil {
		return nil, err
	}
	slices.Reverse(forward)

	backward, err := LFilter(b, a, forward)
	if err != nil {
		return nil, err
	}
	slices.Reverse(backward)

	return backward, nil
}
