package waveprep

import (
	"fmt"
	"math"

	"github.com/tphakala/go-waveform-prep/internal/engine"
	"github.com/tphakala/go-waveform-prep/internal/filter"
	"github.com/tphakala/go-waveform-prep/internal/simdops"
	"github.com/tphakala/go-waveform-prep/internal/spectrum"
	"go.uber.org/zap"
)

// AliasReport summarizes the spectral energy of the filtered waveform above
// the output Nyquist frequency.
type AliasReport = spectrum.Report

// Result holds every intermediate waveform of a preparation run.
type Result struct {
	// Original is the input scaled by ScalingFactor. Its peak may exceed 1.
	Original Waveform

	// Filtered is the anti-aliased waveform scaled by ScalingFactor.
	// Its peak is 1.
	Filtered Waveform

	// Resampled is the filtered waveform at the output rate.
	Resampled Waveform

	// ScalingFactor is 1 / max|filtered| before scaling.
	ScalingFactor float64

	// Filter is the coefficient set that was applied.
	Filter FilterCoefficients

	// Alias is set when Config.AliasCheck is enabled.
	Alias *AliasReport
}

// Filter applies the coefficients forward and backward, giving a zero-phase
// response with the squared magnitude of the single-pass design. The output
// has the same length and rate as w.
func Filter(w Waveform, coeffs FilterCoefficients) (Waveform, error) {
	if err := w.Validate(); err != nil {
		return Waveform{}, err
	}
	if err := coeffs.Validate(); err != nil {
		return Waveform{}, err
	}

	out, err := filter.ZeroPhase(coeffs.Numerator, coeffs.Denominator, w.Samples)
	if err != nil {
		return Waveform{}, fmt.Errorf("%w: %w", ErrInvalidFilter, err)
	}

	return Waveform{Samples: out, Rate: w.Rate}, nil
}

// Normalize scales both waveforms by 1/max|filtered| so the filtered peak is
// exactly 1. The original shares the factor, which keeps the two comparable
// by ear; its peak may exceed 1 when filtering removed energy.
func Normalize(original, filtered Waveform) (scaledOriginal, scaledFiltered Waveform, factor float64, err error) {
	peak := filtered.Peak()
	if peak == 0 {
		return Waveform{}, Waveform{}, 0, ErrSilentSignal
	}
	factor = 1 / peak
	if math.IsInf(factor, 0) || math.IsNaN(factor) {
		return Waveform{}, Waveform{}, 0, fmt.Errorf("%w: peak %g is too small to normalize", ErrSilentSignal, peak)
	}

	return scale(original, factor), scale(filtered, factor), factor, nil
}

func scale(w Waveform, factor float64) Waveform {
	out := make([]float64, len(w.Samples))
	simdops.Float64Ops().Scale(out, w.Samples, factor)
	return Waveform{Samples: out, Rate: w.Rate}
}

// Resample moves w onto a grid at outRate starting at t=0 with
// floor(len*outRate/rate) points. It applies no band-limiting of its own.
func Resample(w Waveform, outRate float64, method Interpolation) (Waveform, error) {
	if err := w.Validate(); err != nil {
		return Waveform{}, err
	}

	out, err := engine.Resample(w.Samples, w.Rate, outRate, method)
	if err != nil {
		return Waveform{}, err
	}

	return Waveform{Samples: out, Rate: outRate}, nil
}

// Prepare runs the anti-alias filter, normalization and resampling stages on
// an in-memory waveform. The input is not modified.
func Prepare(input Waveform, cfg Config) (*Result, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	log := cfg.Logger

	if engine.OutputLength(input.Len(), input.Rate, cfg.OutputRate) < 1 {
		return nil, fmt.Errorf("%w: %d samples at %v Hz -> %v Hz",
			ErrEmptyOutput, input.Len(), input.Rate, cfg.OutputRate)
	}

	coeffs, err := cfg.resolveFilter(input.Rate)
	if err != nil {
		return nil, err
	}
	log.Debug("filter selected",
		zap.Float64("input_rate_hz", input.Rate),
		zap.Float64("design_rate_hz", coeffs.DesignRate),
		zap.Float64("cutoff_hz", coeffs.Cutoff),
		zap.Int("order", coeffs.Order))

	filtered, err := Filter(input, coeffs)
	if err != nil {
		return nil, err
	}

	result := &Result{Filter: coeffs}

	if cfg.AliasCheck {
		report, err := spectrum.AliasCheck(filtered.Samples, filtered.Rate, cfg.OutputRate/nyquistDivisor)
		if err != nil {
			return nil, fmt.Errorf("alias check failed: %w", err)
		}
		result.Alias = &report
		fields := []zap.Field{
			zap.Float64("alias_ratio", report.AliasRatio),
			zap.Float64("output_nyquist_hz", report.CutoffHz),
			zap.Float64("peak_hz", report.PeakHz),
		}
		if report.AliasRatio > AliasWarnThreshold {
			log.Warn("filtered waveform has significant energy above the output Nyquist frequency", fields...)
		} else {
			log.Debug("alias check", fields...)
		}
	}

	original, normalized, factor, err := Normalize(input, filtered)
	if err != nil {
		return nil, err
	}
	result.Original = original
	result.Filtered = normalized
	result.ScalingFactor = factor

	resampled, err := Resample(normalized, cfg.OutputRate, cfg.Interpolation)
	if err != nil {
		return nil, err
	}
	result.Resampled = resampled

	log.Info("waveform prepared",
		zap.Float64("input_rate_hz", input.Rate),
		zap.Float64("output_rate_hz", cfg.OutputRate),
		zap.Int("input_samples", input.Len()),
		zap.Int("output_samples", resampled.Len()),
		zap.Float64("scaling_factor", factor),
		zap.Stringer("interpolation", cfg.Interpolation))

	return result, nil
}
