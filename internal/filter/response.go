package filter

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
)

const (
	defaultResponsePoints = 512

	// -3 dB relative to the DC gain
	halfPowerRatio = math.Sqrt2 / 2

	cutoffIterations = 60
	minMagnitude     = 1e-10
	dbMultiplier     = 20.0
)

// ErrNoCutoff is returned when a response never crosses its half-power point
// below Nyquist.
var ErrNoCutoff = errors.New("response has no -3 dB point below Nyquist")

// FilterResponse holds the frequency response of a filter.
type FilterResponse struct {
	Frequencies []float64 // Hz, 0 to Nyquist
	Magnitude   []float64 // Linear magnitude
	Phase       []float64 // Radians
}

// Response evaluates H(e^jw) = B(e^jw) / A(e^jw) at freq Hz.
func Response(b, a []float64, freq, sampleRate float64) complex128 {
	omega := 2 * math.Pi * freq / sampleRate
	return evalPoly(b, omega) / evalPoly(a, omega)
}

func evalPoly(c []float64, omega float64) complex128 {
	var sum complex128
	for n, v := range c {
		sum += complex(v, 0) * cmplx.Exp(complex(0, -omega*float64(n)))
	}
	return sum
}

// ComputeFrequencyResponse evaluates the filter at numPoints frequencies
// evenly spaced from DC up to (but excluding) Nyquist.
func ComputeFrequencyResponse(b, a []float64, sampleRate float64, numPoints int) FilterResponse {
	if numPoints <= 0 {
		numPoints = defaultResponsePoints
	}

	response := FilterResponse{
		Frequencies: make([]float64, numPoints),
		Magnitude:   make([]float64, numPoints),
		Phase:       make([]float64, numPoints),
	}

	nyquist := sampleRate / 2
	for k := range numPoints {
		freq := nyquist * float64(k) / float64(numPoints)
		h := Response(b, a, freq, sampleRate)
		response.Frequencies[k] = freq
		response.Magnitude[k] = cmplx.Abs(h)
		response.Phase[k] = cmplx.Phase(h)
	}

	return response
}

// CutoffFrequency returns the -3 dB frequency of the filter cascaded passes
// times, relative to its DC gain. A zero-phase double pass uses passes=2.
// The magnitude response is assumed to be low-pass and monotonic.
func CutoffFrequency(b, a []float64, sampleRate float64, passes int) (float64, error) {
	if err := ValidateCoefficients(b, a); err != nil {
		return 0, err
	}
	if passes < 1 {
		return 0, fmt.Errorf("passes must be at least 1, got %d", passes)
	}

	gain := func(freq float64) float64 {
		return math.Pow(cmplx.Abs(Response(b, a, freq, sampleRate)), float64(passes))
	}

	dc := gain(0)
	if dc < minMagnitude {
		return 0, fmt.Errorf("%w: zero DC gain", ErrNoCutoff)
	}
	target := dc * halfPowerRatio

	lo, hi := 0.0, sampleRate/2
	if gain(hi) > target {
		return 0, ErrNoCutoff
	}
	for range cutoffIterations {
		mid := (lo + hi) / 2
		if gain(mid) > target {
			lo = mid
		} else {
			hi = mid
		}
	}

	return (lo + hi) / 2, nil
}

// MagnitudeDB converts linear magnitude to decibels.
func MagnitudeDB(magnitude float64) float64 {
	if magnitude < minMagnitude {
		magnitude = minMagnitude
	}
	return dbMultiplier * math.Log10(magnitude)
}
