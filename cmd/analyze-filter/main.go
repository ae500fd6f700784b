// Command analyze-filter prints the response of the built-in anti-alias
// presets for single-pass and zero-phase (double-pass) filtering.
package main

import (
	"fmt"
	"math/cmplx"
	"os"

	waveprep "github.com/tphakala/go-waveform-prep"
	"github.com/tphakala/go-waveform-prep/internal/filter"
)

const (
	singlePass = 1
	doublePass = 2

	responsePoints = 512
)

// tableFrequencies are the frequencies reported in the magnitude table.
var tableFrequencies = []float64{100, 500, 1000, 1500, 2000, 3000, 4000}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "analyze-filter: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fmt.Println("=== Anti-Alias Filter Presets ===")

	for _, rate := range waveprep.PresetRates() {
		preset, err := waveprep.PresetForRate(float64(rate))
		if err != nil {
			return err
		}
		b, a := preset.Numerator, preset.Denominator
		fs := float64(rate)

		fmt.Printf("\n--- %d Hz (order %d, nominal cutoff %.0f Hz) ---\n", rate, preset.Order, preset.Cutoff)
		fmt.Printf("  b = %v\n", b)
		fmt.Printf("  a = %v\n", a)

		single, err := filter.CutoffFrequency(b, a, fs, singlePass)
		if err != nil {
			return fmt.Errorf("%d Hz single pass: %w", rate, err)
		}
		double, err := filter.CutoffFrequency(b, a, fs, doublePass)
		if err != nil {
			return fmt.Errorf("%d Hz double pass: %w", rate, err)
		}
		fmt.Printf("  -3 dB single pass: %8.1f Hz\n", single)
		fmt.Printf("  -3 dB double pass: %8.1f Hz\n", double)

		response := filter.ComputeFrequencyResponse(b, a, fs, responsePoints)
		fmt.Printf("  Response: %d points, %.1f Hz spacing\n",
			len(response.Frequencies), response.Frequencies[1]-response.Frequencies[0])

		fmt.Println("  Freq (Hz)   single (dB)   double (dB)")
		for _, freq := range tableFrequencies {
			if freq >= fs/2 {
				continue
			}
			mag := cmplx.Abs(filter.Response(b, a, freq, fs))
			fmt.Printf("  %9.0f   %11.2f   %11.2f\n",
				freq, filter.MagnitudeDB(mag), filter.MagnitudeDB(mag*mag))
		}
	}

	return nil
}
