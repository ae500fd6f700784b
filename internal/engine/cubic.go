package engine

// hermiteResample evaluates 4-point cubic Hermite interpolation at each
// output position. Neighbors past either end repeat the edge sample, and
// positions past the last sample take its value.
func hermiteResample(samples []float64, inRate, outRate float64, outLen int) []float64 {
	last := len(samples) - 1
	at := func(i int) float64 {
		return samples[min(max(i, 0), last)]
	}

	output := make([]float64, outLen)
	for j := range output {
		i, x := sourcePosition(j, inRate, outRate)
		if i >= last {
			output[j] = samples[last]
			continue
		}
		output[j] = interpolateHermite(at(i-1), at(i), at(i+1), at(i+2), x)
	}

	return output
}

// interpolateHermite performs cubic Hermite interpolation between y1 and y2.
// Uses the formula: y = ((a*x + b)*x + c)*x + d
// where x is the fractional position between samples.
func interpolateHermite(y0, y1, y2, y3, x float64) float64 {
	// Hermite basis functions
	// These coefficients provide smooth interpolation with continuous first derivative
	coefA := -hermiteCoeff0_5*y0 + hermiteCoeff1_5*y1 - hermiteCoeff1_5*y2 + hermiteCoeff0_5*y3
	coefB := y0 - hermiteCoeff2_5*y1 + 2*y2 - hermiteCoeff0_5*y3
	coefC := -hermiteCoeff0_5*y0 + hermiteCoeff0_5*y2
	coefD := y1

	// Evaluate polynomial
	return ((coefA*x+coefB)*x+coefC)*x + coefD
}

// linearResample evaluates 2-point linear interpolation at each output position.
func linearResample(samples []float64, inRate, outRate float64, outLen int) []float64 {
	last := len(samples) - 1

	output := make([]float64, outLen)
	for j := range output {
		i, x := sourcePosition(j, inRate, outRate)
		if i >= last {
			output[j] = samples[last]
			continue
		}
		// Linear interpolation: y = (1-x)*prev + x*next
		output[j] = (1-x)*samples[i] + x*samples[i+1]
	}

	return output
}
