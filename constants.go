package waveprep

// Common sample rates.
const (
	// RateCD is the CD quality sample rate (Red Book standard).
	RateCD = 44100

	// RateHalfCD is half the CD rate, common for speech recordings.
	RateHalfCD = 22050

	// RateQuarterCD is a quarter of the CD rate.
	RateQuarterCD = 11025

	// DefaultOutputRate is the update rate of the motor-control loop that
	// consumes the prepared waveform.
	DefaultOutputRate = 4000
)

// Filter preset parameters
const (
	presetCutoffHz = 2000.0 // Anti-alias cutoff of the single-pass design
	presetOrder    = 3      // Butterworth order; the double pass doubles it
)

// Diagnostics
const (
	// AliasWarnThreshold is the share of filtered energy above the output
	// Nyquist frequency that triggers a warning.
	AliasWarnThreshold = 0.01

	nyquistDivisor = 2.0
)
