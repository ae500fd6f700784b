package filter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-waveform-prep/internal/testutil"
)

// 3rd-order 2 kHz Butterworth low-pass designed for 44.1 kHz.
var (
	testNum = []float64{0.00221770131520736, 0.006653103945622081, 0.006653103945622081, 0.00221770131520736}
	testDen = []float64{1.0, -2.4319166731320183, 2.014125662923694, -0.5644673792700168}
)

const testRate = 44100.0

func TestValidateCoefficients(t *testing.T) {
	tests := []struct {
		name    string
		b, a    []float64
		wantErr bool
	}{
		{"butterworth", testNum, testDen, false},
		{"passthrough", []float64{1}, []float64{1}, false},
		{"empty numerator", nil, []float64{1}, true},
		{"empty denominator", []float64{1}, nil, true},
		{"zero leading denominator", []float64{1}, []float64{0, 1}, true},
		{"nan numerator", []float64{math.NaN()}, []float64{1}, true},
		{"inf denominator", []float64{1}, []float64{1, math.Inf(1)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCoefficients(tt.b, tt.a)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidCoefficients)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestLFilter_FIRMovingAverage(t *testing.T) {
	b := []float64{0.5, 0.5}
	a := []float64{1}
	y, err := LFilter(b, a, []float64{1, 2, 3, 4})
	require.NoError(t, err)
	testutil.AssertSlicesInDelta(t, []float64{0.5, 1.5, 2.5, 3.5}, y, testutil.DefaultTolerance)
}

func TestLFilter_OnePoleRecursion(t *testing.T) {
	// y[n] = x[n] + 0.5*y[n-1]
	b := []float64{1}
	a := []float64{1, -0.5}
	y, err := LFilter(b, a, testutil.Impulse(5, 0))
	require.NoError(t, err)
	testutil.AssertSlicesInDelta(t, []float64{1, 0.5, 0.25, 0.125, 0.0625}, y, testutil.DefaultTolerance)
}

func TestLFilter_NormalizesLeadingDenominator(t *testing.T) {
	y1, err := LFilter([]float64{1}, []float64{1, -0.5}, []float64{1, 0, 0})
	require.NoError(t, err)
	y2, err := LFilter([]float64{2}, []float64{2, -1}, []float64{1, 0, 0})
	require.NoError(t, err)
	testutil.AssertSlicesInDelta(t, y1, y2, testutil.DefaultTolerance)
}

func TestLFilter_ButterworthDCGain(t *testing.T) {
	x := make([]float64, 4000)
	for i := range x {
		x[i] = 1
	}
	y, err := LFilter(testNum, testDen, x)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, y[len(y)-1], 1e-9, "step response should settle at unity")
}

func TestLFilter_StateDoesNotCarryOver(t *testing.T) {
	x := testutil.Sine(256, 700, testRate, 0.8)
	first, err := LFilter(testNum, testDen, x)
	require.NoError(t, err)
	second, err := LFilter(testNum, testDen, x)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestLFilter_Empty(t *testing.T) {
	y, err := LFilter(testNum, testDen, []float64{})
	require.NoError(t, err)
	assert.Empty(t, y)
}

func TestZeroPhase_LengthPreserved(t *testing.T) {
	for _, n := range []int{1, 2, 3, 17, 1000, 44100} {
		x := testutil.Sine(n, 440, testRate, 1)
		y, err := ZeroPhase(testNum, testDen, x)
		require.NoError(t, err)
		assert.Len(t, y, n)
		testutil.AssertNoNaNOrInf(t, y)
	}
}

func TestZeroPhase_SymmetricImpulseResponse(t *testing.T) {
	const n = 2001
	x := testutil.Impulse(n, n/2)

	y, err := ZeroPhase(testNum, testDen, x)
	require.NoError(t, err)

	testutil.AssertSymmetric(t, y, testutil.SymmetryTolerance)
	testutil.AssertCenterIsMax(t, y)
}

func TestSinglePass_IsNotSymmetric(t *testing.T) {
	const n = 2001
	y, err := LFilter(testNum, testDen, testutil.Impulse(n, n/2))
	require.NoError(t, err)

	var asymmetry float64
	for i := 0; i < n/2; i++ {
		asymmetry = math.Max(asymmetry, math.Abs(y[i]-y[n-1-i]))
	}
	assert.Greater(t, asymmetry, 1e-3, "a causal pass delays the impulse")
}

func TestZeroPhase_NoDelayOnSine(t *testing.T) {
	x := testutil.Sine(8820, 300, testRate, 1)
	y, err := ZeroPhase(testNum, testDen, x)
	require.NoError(t, err)

	// Away from the edges the output tracks the input sample for sample.
	for i := 2000; i < 6000; i++ {
		assert.InDelta(t, x[i], y[i], 5e-3, "sample %d", i)
	}
}

func TestZeroPhase_InvalidCoefficients(t *testing.T) {
	_, err := ZeroPhase([]float64{1}, []float64{0}, []float64{1, 2})
	require.ErrorIs(t, err, ErrInvalidCoefficients)
}
