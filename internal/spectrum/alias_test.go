package spectrum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-waveform-prep/internal/testutil"
)

const testRate = 44100.0

func TestAliasCheck_InBandTone(t *testing.T) {
	x := testutil.Sine(44100, 500, testRate, 0.5)

	report, err := AliasCheck(x, testRate, 2000)
	require.NoError(t, err)

	assert.Less(t, report.AliasRatio, 1e-3)
	assert.InDelta(t, 500, report.PeakHz, 2*report.BinWidthHz)
	assert.InDelta(t, 2000.0, report.CutoffHz, testutil.DefaultTolerance)
}

func TestAliasCheck_OutOfBandTone(t *testing.T) {
	x := testutil.Sine(44100, 5000, testRate, 0.5)

	report, err := AliasCheck(x, testRate, 2000)
	require.NoError(t, err)

	assert.Greater(t, report.AliasRatio, 0.99)
	assert.InDelta(t, 5000, report.PeakHz, 2*report.BinWidthHz)
}

func TestAliasCheck_MixedTones(t *testing.T) {
	low := testutil.Sine(16384, 400, testRate, 1)
	high := testutil.Sine(16384, 6000, testRate, 1)
	x := make([]float64, len(low))
	for i := range x {
		x[i] = low[i] + high[i]
	}

	report, err := AliasCheck(x, testRate, 2000)
	require.NoError(t, err)
	testutil.AssertInRange(t, report.AliasRatio, 0.45, 0.55)
}

func TestAliasCheck_Silence(t *testing.T) {
	report, err := AliasCheck(make([]float64, 100), testRate, 2000)
	require.NoError(t, err)
	assert.Zero(t, report.AliasRatio)
}

func TestAliasCheck_Empty(t *testing.T) {
	_, err := AliasCheck(nil, testRate, 2000)
	require.ErrorIs(t, err, ErrNoSamples)
}

func TestNextPowerOfTwo(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, 1}, {1, 1}, {2, 2}, {3, 4}, {1024, 1024}, {1025, 2048}, {44100, 65536},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, nextPowerOfTwo(tt.in), "nextPowerOfTwo(%d)", tt.in)
	}
}
