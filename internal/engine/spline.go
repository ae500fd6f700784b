package engine

import (
	"fmt"

	"gonum.org/v1/gonum/interp"
)

// splineResample fits a natural cubic spline (zero second derivative at both
// ends) through the samples on the inRate time axis and evaluates it on the
// outRate time axis. Points past the last knot, which only occur when
// upsampling, take the last sample's value. Needs at least two samples.
func splineResample(samples []float64, inRate, outRate float64, outLen int) ([]float64, error) {
	output := make([]float64, outLen)

	xs := make([]float64, len(samples))
	for i := range xs {
		xs[i] = float64(i) / inRate
	}

	var spline interp.NaturalCubic
	if err := spline.Fit(xs, samples); err != nil {
		return nil, fmt.Errorf("spline fit failed: %w", err)
	}

	for j := range output {
		output[j] = spline.Predict(float64(j) / outRate)
	}

	return output, nil
}
