package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-waveform-prep/internal/testutil"
)

var allMethods = []Method{MethodNaturalSpline, MethodHermite, MethodLinear}

func TestOutputLength(t *testing.T) {
	tests := []struct {
		n       int
		in, out float64
		want    int
	}{
		{44100, 44100, 4000, 4000},
		{44101, 44100, 4000, 4000},
		{11, 44100, 4000, 0},
		{12, 44100, 4000, 1},
		{22050, 22050, 4000, 4000},
		{100, 4000, 4000, 100},
		{100, 1000, 4000, 400},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, OutputLength(tt.n, tt.in, tt.out), "n=%d in=%v out=%v", tt.n, tt.in, tt.out)
	}
}

func TestResample_LengthLaw(t *testing.T) {
	input := testutil.Sine(44100, 500, 44100, 0.8)

	for _, m := range allMethods {
		t.Run(m.String(), func(t *testing.T) {
			out, err := Resample(input, 44100, 4000, m)
			require.NoError(t, err)
			assert.Len(t, out, 4000)
			testutil.AssertNoNaNOrInf(t, out)
		})
	}
}

func TestResample_IdentityAtEqualRates(t *testing.T) {
	input := testutil.Sine(1000, 123, 8000, 0.9)

	for _, m := range allMethods {
		t.Run(m.String(), func(t *testing.T) {
			out, err := Resample(input, 8000, 8000, m)
			require.NoError(t, err)
			testutil.AssertSlicesInDelta(t, input, out, testutil.DefaultTolerance)
		})
	}
}

func TestResample_FirstSampleAtTimeZero(t *testing.T) {
	input := testutil.Sine(4410, 300, 44100, 1)
	input[0] = 0.25

	for _, m := range allMethods {
		out, err := Resample(input, 44100, 4000, m)
		require.NoError(t, err)
		assert.InDelta(t, 0.25, out[0], testutil.DefaultTolerance, m.String())
	}
}

func TestResample_SplineReproducesLine(t *testing.T) {
	// A natural spline through collinear points is the line itself.
	const inRate, outRate = 1000.0, 300.0
	input := make([]float64, 500)
	for i := range input {
		input[i] = 0.5 - 2*float64(i)/inRate
	}

	out, err := Resample(input, inRate, outRate, MethodNaturalSpline)
	require.NoError(t, err)
	require.Len(t, out, 150)
	for j, v := range out {
		want := 0.5 - 2*float64(j)/outRate
		assert.InDelta(t, want, v, 1e-9, "index %d", j)
	}
}

func TestResample_SineAccuracy(t *testing.T) {
	// 200 Hz is well inside the 2 kHz output Nyquist band.
	const freq = 200.0
	input := testutil.Sine(44100, freq, 44100, 1)

	tolerances := map[Method]float64{
		MethodNaturalSpline: 1e-6,
		MethodHermite:       1e-4,
		MethodLinear:        1e-3,
	}
	for _, m := range allMethods {
		t.Run(m.String(), func(t *testing.T) {
			out, err := Resample(input, 44100, 4000, m)
			require.NoError(t, err)
			// Skip the ends where the natural boundary condition bends the fit.
			for j := 40; j < len(out)-40; j++ {
				want := math.Sin(2 * math.Pi * freq * float64(j) / 4000)
				assert.InDelta(t, want, out[j], tolerances[m], "index %d", j)
			}
		})
	}
}

func TestResample_SingleSampleIsConstant(t *testing.T) {
	for _, m := range allMethods {
		out, err := Resample([]float64{0.7}, 1000, 4000, m)
		require.NoError(t, err)
		assert.Equal(t, []float64{0.7, 0.7, 0.7, 0.7}, out, m.String())
	}

	_, err := Resample([]float64{0.7}, 1000, 4000, Method(99))
	require.ErrorIs(t, err, ErrUnknownMethod)
}

func TestResample_ConstantStaysConstant(t *testing.T) {
	input := []float64{0.7, 0.7, 0.7, 0.7, 0.7}
	want := make([]float64, 20)
	for i := range want {
		want[i] = 0.7
	}

	for _, m := range allMethods {
		t.Run(m.String(), func(t *testing.T) {
			out, err := Resample(input, 1000, 4000, m)
			require.NoError(t, err)
			testutil.AssertSlicesInDelta(t, want, out, testutil.DefaultTolerance)
		})
	}
}

func TestResample_UpsampleTailHoldsLastSample(t *testing.T) {
	input := []float64{0.1, 0.2, 0.3}

	for _, m := range allMethods {
		t.Run(m.String(), func(t *testing.T) {
			out, err := Resample(input, 1000, 4000, m)
			require.NoError(t, err)
			require.Len(t, out, 12)

			// Index 8 is the last node at 2 ms; 9..11 lie past it.
			for j := 8; j < len(out); j++ {
				assert.InDelta(t, 0.3, out[j], testutil.DefaultTolerance, "index %d", j)
			}
		})
	}
}

func TestResample_Errors(t *testing.T) {
	_, err := Resample(nil, 44100, 4000, MethodNaturalSpline)
	require.ErrorIs(t, err, ErrEmptyInput)

	_, err = Resample(make([]float64, 11), 44100, 4000, MethodNaturalSpline)
	require.ErrorIs(t, err, ErrEmptyOutput)

	for _, rate := range []float64{0, -1, math.Inf(1), math.NaN()} {
		_, err = Resample([]float64{1, 2}, rate, 4000, MethodLinear)
		require.ErrorIs(t, err, ErrInvalidRate)
		_, err = Resample([]float64{1, 2}, 4000, rate, MethodLinear)
		require.ErrorIs(t, err, ErrInvalidRate)
	}

	_, err = Resample([]float64{1, 2}, 4000, 4000, Method(42))
	require.ErrorIs(t, err, ErrUnknownMethod)
}

func TestParseMethod(t *testing.T) {
	tests := []struct {
		in   string
		want Method
	}{
		{"", MethodNaturalSpline},
		{"spline", MethodNaturalSpline},
		{"Natural", MethodNaturalSpline},
		{"natural-spline", MethodNaturalSpline},
		{"hermite", MethodHermite},
		{" cubic ", MethodHermite},
		{"LINEAR", MethodLinear},
	}
	for _, tt := range tests {
		got, err := ParseMethod(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseMethod("sinc")
	require.ErrorIs(t, err, ErrUnknownMethod)
}

func TestMethodString(t *testing.T) {
	for _, m := range allMethods {
		parsed, err := ParseMethod(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}
	assert.Equal(t, "Method(9)", Method(9).String())
}

func TestInterpolateHermite(t *testing.T) {
	assert.InDelta(t, 2.0, interpolateHermite(1, 2, 3, 4, 0), testutil.DefaultTolerance)
	assert.InDelta(t, 2.5, interpolateHermite(1, 2, 3, 4, 0.5), testutil.DefaultTolerance)
	assert.InDelta(t, 3.0, interpolateHermite(1, 2, 3, 4, 1), testutil.DefaultTolerance)
}
