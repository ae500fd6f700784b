// Package engine implements the interpolation methods used to move a waveform
// onto a new sample grid.
package engine

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Method selects the interpolation algorithm.
type Method int

const (
	// MethodNaturalSpline fits a natural cubic spline through every sample.
	MethodNaturalSpline Method = iota

	// MethodHermite uses 4-point cubic Hermite (Catmull-Rom) interpolation.
	MethodHermite

	// MethodLinear uses 2-point linear interpolation.
	MethodLinear
)

// Common errors returned by the engine.
var (
	// ErrInvalidRate indicates a non-positive or non-finite sample rate.
	ErrInvalidRate = errors.New("sample rate must be positive and finite")

	// ErrEmptyInput indicates there were no samples to interpolate.
	ErrEmptyInput = errors.New("no input samples")

	// ErrEmptyOutput indicates the target grid holds no samples.
	ErrEmptyOutput = errors.New("resampled output would be empty")

	// ErrUnknownMethod indicates an unrecognized interpolation method.
	ErrUnknownMethod = errors.New("unknown interpolation method")
)

// String returns the method's flag name.
func (m Method) String() string {
	switch m {
	case MethodNaturalSpline:
		return "spline"
	case MethodHermite:
		return "hermite"
	case MethodLinear:
		return "linear"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

func (m Method) valid() bool {
	return m >= MethodNaturalSpline && m <= MethodLinear
}

// ParseMethod maps a flag or config value to a Method.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "spline", "natural", "natural-spline":
		return MethodNaturalSpline, nil
	case "hermite", "cubic":
		return MethodHermite, nil
	case "linear":
		return MethodLinear, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, s)
	}
}

// OutputLength returns floor(n * outRate / inRate).
func OutputLength(n int, inRate, outRate float64) int {
	return int(math.Floor(float64(n) * outRate / inRate))
}

// Resample interpolates samples taken at inRate onto a grid at outRate that
// starts at t=0 and holds OutputLength(len(samples), inRate, outRate) points.
// No band-limiting is applied; the caller removes energy above outRate/2 first.
//
// The grid ends before N/inRate but may pass the last source node at
// (N-1)/inRate when upsampling. Those tail points, at most
// ceil(outRate/inRate) of them, hold the last sample for every method.
// Downsampling never reaches past the last node. A single sample yields a
// constant.
func Resample(samples []float64, inRate, outRate float64, method Method) ([]float64, error) {
	if !validRate(inRate) || !validRate(outRate) {
		return nil, fmt.Errorf("%w: in=%v out=%v", ErrInvalidRate, inRate, outRate)
	}
	if len(samples) == 0 {
		return nil, ErrEmptyInput
	}

	outLen := OutputLength(len(samples), inRate, outRate)
	if outLen < 1 {
		return nil, fmt.Errorf("%w: %d samples at %v Hz -> %v Hz", ErrEmptyOutput, len(samples), inRate, outRate)
	}

	if len(samples) < minInterpolationNodes {
		if !method.valid() {
			return nil, fmt.Errorf("%w: %v", ErrUnknownMethod, method)
		}
		output := make([]float64, outLen)
		for j := range output {
			output[j] = samples[0]
		}
		return output, nil
	}

	switch method {
	case MethodNaturalSpline:
		return splineResample(samples, inRate, outRate, outLen)
	case MethodHermite:
		return hermiteResample(samples, inRate, outRate, outLen), nil
	case MethodLinear:
		return linearResample(samples, inRate, outRate, outLen), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownMethod, method)
	}
}

func validRate(r float64) bool {
	return r > 0 && !math.IsInf(r, 0) && !math.IsNaN(r)
}

// sourcePosition maps output index j to a fractional source index.
// j*inRate is exact for realistic lengths, so equal rates land on source nodes.
func sourcePosition(j int, inRate, outRate float64) (int, float64) {
	pos := float64(j) * inRate / outRate
	i := int(math.Floor(pos))
	return i, pos - float64(i)
}
