package waveprep

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
)

// Waveform is a mono sequence of samples at a fixed sample rate.
// Pipeline stages never modify a Waveform; each returns a new one.
type Waveform struct {
	// Samples are the amplitude values.
	Samples []float64

	// Rate is the sample rate in Hz.
	Rate float64
}

// NewWaveform creates a validated waveform.
func NewWaveform(samples []float64, rate float64) (Waveform, error) {
	w := Waveform{Samples: samples, Rate: rate}
	if err := w.Validate(); err != nil {
		return Waveform{}, err
	}
	return w, nil
}

// Validate checks that the waveform has at least one sample, every sample is
// finite and the rate is positive.
func (w Waveform) Validate() error {
	if !(w.Rate > 0) || math.IsInf(w.Rate, 0) {
		return fmt.Errorf("%w: %v Hz", ErrInvalidRate, w.Rate)
	}
	if len(w.Samples) == 0 {
		return ErrEmptyWaveform
	}
	if floats.HasNaN(w.Samples) {
		return fmt.Errorf("%w: waveform contains NaN", ErrNonFinite)
	}
	for i, v := range w.Samples {
		if math.IsInf(v, 0) {
			return fmt.Errorf("%w: sample %d is infinite", ErrNonFinite, i)
		}
	}
	return nil
}

// Len returns the number of samples.
func (w Waveform) Len() int {
	return len(w.Samples)
}

// Duration returns the playing time of the waveform.
func (w Waveform) Duration() time.Duration {
	if w.Rate <= 0 {
		return 0
	}
	return time.Duration(float64(len(w.Samples)) / w.Rate * float64(time.Second))
}

// Peak returns the largest absolute sample value.
func (w Waveform) Peak() float64 {
	if len(w.Samples) == 0 {
		return 0
	}
	return math.Max(math.Abs(floats.Max(w.Samples)), math.Abs(floats.Min(w.Samples)))
}
