package waveprep

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/tphakala/go-waveform-prep/internal/audioio"
	"github.com/tphakala/go-waveform-prep/internal/engine"
	"github.com/tphakala/go-waveform-prep/internal/filter"
	"go.uber.org/zap"
)

// Common errors
var (
	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = errors.New("invalid preparation configuration")

	// ErrInvalidFilter indicates unusable filter coefficients.
	ErrInvalidFilter = errors.New("invalid filter coefficients")

	// ErrEmptyWaveform indicates a waveform without samples.
	ErrEmptyWaveform = errors.New("waveform has no samples")

	// ErrNonFinite indicates a NaN or infinite sample.
	ErrNonFinite = errors.New("waveform contains non-finite samples")

	// ErrInvalidRate indicates a non-positive or non-finite sample rate.
	ErrInvalidRate = errors.New("sample rate must be positive and finite")

	// ErrUnsupportedRate indicates no filter preset exists for the input rate.
	ErrUnsupportedRate = errors.New("no filter preset for input sample rate")

	// ErrRateMismatch indicates custom coefficients designed for another rate.
	ErrRateMismatch = errors.New("filter design rate does not match input rate")

	// ErrSilentSignal indicates the filtered waveform is all zeros and cannot
	// be normalized.
	ErrSilentSignal = errors.New("filtered waveform is silent")

	// ErrEmptyOutput indicates the input is too short to yield one output sample.
	ErrEmptyOutput = engine.ErrEmptyOutput

	// ErrChannelOutOfRange indicates the requested input channel does not exist.
	ErrChannelOutOfRange = audioio.ErrChannelOutOfRange
)

// Interpolation selects the resampling interpolator.
type Interpolation = engine.Method

// Interpolation methods
const (
	// InterpolationSpline fits a natural cubic spline through every sample.
	InterpolationSpline = engine.MethodNaturalSpline

	// InterpolationHermite uses 4-point cubic Hermite interpolation.
	InterpolationHermite = engine.MethodHermite

	// InterpolationLinear uses 2-point linear interpolation.
	InterpolationLinear = engine.MethodLinear
)

// ParseInterpolation maps "spline", "hermite" or "linear" to an Interpolation.
func ParseInterpolation(s string) (Interpolation, error) {
	m, err := engine.ParseMethod(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return m, nil
}

// FilterCoefficients holds a rational transfer function b/a for the
// anti-alias stage.
type FilterCoefficients struct {
	// Numerator (b) coefficients.
	Numerator []float64

	// Denominator (a) coefficients. Denominator[0] must be non-zero.
	Denominator []float64

	// DesignRate is the sample rate the coefficients were designed for.
	// Zero means the rate is not stated.
	DesignRate float64

	// Cutoff is the nominal single-pass cutoff in Hz (informational).
	Cutoff float64

	// Order is the nominal filter order (informational).
	Order int
}

// Validate checks that the coefficients describe a usable filter.
func (f *FilterCoefficients) Validate() error {
	if err := filter.ValidateCoefficients(f.Numerator, f.Denominator); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidFilter, err)
	}
	if f.DesignRate < 0 || math.IsNaN(f.DesignRate) || math.IsInf(f.DesignRate, 0) {
		return fmt.Errorf("%w: design rate must be zero or positive", ErrInvalidFilter)
	}
	return nil
}

// Clone returns a deep copy.
func (f FilterCoefficients) Clone() FilterCoefficients {
	f.Numerator = slices.Clone(f.Numerator)
	f.Denominator = slices.Clone(f.Denominator)
	return f
}

// Config holds the preparation parameters.
type Config struct {
	// OutputRate is the target sample rate in Hz. Zero selects DefaultOutputRate.
	OutputRate float64

	// Filter holds custom anti-alias coefficients. Nil selects the preset for
	// the input rate.
	Filter *FilterCoefficients

	// InputChannel is the channel kept from multi-channel sources.
	InputChannel int

	// Interpolation selects the resampling method.
	Interpolation Interpolation

	// AliasCheck enables the spectral estimate of energy above the output
	// Nyquist frequency after filtering.
	AliasCheck bool

	// Logger receives diagnostics. Nil disables logging.
	Logger *zap.Logger
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		OutputRate:    DefaultOutputRate,
		Interpolation: InterpolationSpline,
		AliasCheck:    true,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.OutputRate < 0 || math.IsNaN(c.OutputRate) || math.IsInf(c.OutputRate, 0) {
		return fmt.Errorf("%w: output rate must be positive", ErrInvalidConfig)
	}

	if c.InputChannel < 0 {
		return fmt.Errorf("%w: input channel must be non-negative", ErrInvalidConfig)
	}

	switch c.Interpolation {
	case InterpolationSpline, InterpolationHermite, InterpolationLinear:
	default:
		return fmt.Errorf("%w: unknown interpolation %v", ErrInvalidConfig, c.Interpolation)
	}

	if c.Filter != nil {
		if err := c.Filter.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}

	return nil
}

// withDefaults fills zero values.
func (c Config) withDefaults() Config {
	if c.OutputRate == 0 {
		c.OutputRate = DefaultOutputRate
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return c
}

// resolveFilter returns the coefficients to use for a waveform at inputRate.
func (c *Config) resolveFilter(inputRate float64) (FilterCoefficients, error) {
	if c.Filter == nil {
		return PresetForRate(inputRate)
	}

	coeffs := c.Filter.Clone()
	switch {
	case coeffs.DesignRate == 0:
		c.Logger.Warn("custom filter coefficients do not state a design rate; verify they match the input rate",
			zap.Float64("input_rate_hz", inputRate))
	case coeffs.DesignRate != inputRate:
		return FilterCoefficients{}, fmt.Errorf("%w: designed for %v Hz, input is %v Hz",
			ErrRateMismatch, coeffs.DesignRate, inputRate)
	}
	return coeffs, nil
}
