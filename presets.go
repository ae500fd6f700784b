package waveprep

import (
	"fmt"
	"maps"
	"slices"
)

// presets holds 3rd-order Butterworth low-pass designs with a 2 kHz cutoff,
// one per supported input rate. Applied forward and backward they form a
// 6th-order zero-phase filter with its -3 dB point near 1.73 kHz.
var presets = map[int]FilterCoefficients{
	RateCD: {
		Numerator: []float64{
			0.00221770131520736, 0.006653103945622081,
			0.006653103945622081, 0.00221770131520736,
		},
		Denominator: []float64{
			1.0, -2.4319166731320183,
			2.014125662923694, -0.5644673792700168,
		},
		DesignRate: RateCD,
		Cutoff:     presetCutoffHz,
		Order:      presetOrder,
	},
	RateHalfCD: {
		Numerator: []float64{
			0.014099708769044327, 0.04229912630713298,
			0.04229912630713298, 0.014099708769044327,
		},
		Denominator: []float64{
			1.0, -1.8730272484223898,
			1.3003269546510485, -0.3145020360763042,
		},
		DesignRate: RateHalfCD,
		Cutoff:     presetCutoffHz,
		Order:      presetOrder,
	},
	RateQuarterCD: {
		Numerator: []float64{
			0.07818039004312356, 0.23454117012937067,
			0.23454117012937067, 0.07818039004312356,
		},
		Denominator: []float64{
			1.0, -0.7934336045317072,
			0.5010175047301634, -0.08214077985346774,
		},
		DesignRate: RateQuarterCD,
		Cutoff:     presetCutoffHz,
		Order:      presetOrder,
	},
}

// PresetForRate returns a copy of the anti-alias preset for an input rate.
func PresetForRate(rate float64) (FilterCoefficients, error) {
	key := int(rate)
	if float64(key) != rate {
		return FilterCoefficients{}, fmt.Errorf("%w: %v Hz", ErrUnsupportedRate, rate)
	}
	preset, ok := presets[key]
	if !ok {
		return FilterCoefficients{}, fmt.Errorf("%w: %d Hz (supported: %v)", ErrUnsupportedRate, key, PresetRates())
	}
	return preset.Clone(), nil
}

// PresetRates returns the input rates that have a preset, in ascending order.
func PresetRates() []int {
	return slices.Sorted(maps.Keys(presets))
}
