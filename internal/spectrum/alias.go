// Package spectrum estimates how much of a waveform's energy would fold back
// when it is moved to a lower sample rate.
package spectrum

import (
	"errors"
	"math/bits"
	"math/cmplx"

	"github.com/mjibson/go-dsp/window"
	"github.com/tphakala/go-waveform-prep/internal/simdops"
	"gonum.org/v1/gonum/dsp/fourier"
)

// ErrNoSamples is returned for an empty waveform.
var ErrNoSamples = errors.New("spectrum: no samples")

// Report summarizes the spectral content of a waveform relative to a cutoff.
type Report struct {
	// CutoffHz is the frequency above which energy is counted as aliasing.
	CutoffHz float64

	// AliasRatio is the fraction of total energy above CutoffHz (0..1).
	AliasRatio float64

	// PeakHz is the center frequency of the strongest bin.
	PeakHz float64

	// BinWidthHz is the frequency resolution of the analysis.
	BinWidthHz float64
}

// AliasCheck windows the samples with a Hann window, zero-pads them to a power
// of two and measures the share of energy above cutoffHz.
func AliasCheck(samples []float64, sampleRate, cutoffHz float64) (Report, error) {
	if len(samples) == 0 {
		return Report{}, ErrNoSamples
	}

	n := nextPowerOfTwo(len(samples))
	frame := make([]float64, n)
	copy(frame, samples)
	window.Apply(frame[:len(samples)], window.Hann)

	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, frame)

	binWidth := sampleRate / float64(n)
	report := Report{CutoffHz: cutoffHz, BinWidthHz: binWidth}

	power := make([]float64, len(coeffs))
	firstAbove := len(coeffs)
	var peak float64
	for k, c := range coeffs {
		mag := cmplx.Abs(c)
		power[k] = mag * mag
		freq := float64(k) * binWidth
		if freq > cutoffHz && k < firstAbove {
			firstAbove = k
		}
		if mag > peak {
			peak = mag
			report.PeakHz = freq
		}
	}

	ops := simdops.Float64Ops()
	if total := ops.Sum(power); total > 0 {
		report.AliasRatio = ops.Sum(power[firstAbove:]) / total
	}

	return report, nil
}

func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
