// Package waveprep prepares recorded audio for playback at the fixed update
// rate of a motor-control loop.
//
// A run is a linear offline pipeline:
//
//	load -> anti-alias filter -> normalize -> resample -> save -> (audition)
//
// The anti-alias filter runs a rational transfer function forward and then
// backward over the waveform, so the result has no phase shift and the
// squared magnitude response of the single-pass design. Built-in presets are
// 3rd-order Butterworth low-pass filters with a 2 kHz cutoff for 44.1, 22.05
// and 11.025 kHz input; custom coefficients can be supplied instead.
//
// # Quick Start
//
// For a file on disk:
//
//	cfg := waveprep.DefaultConfig()
//	result, err := waveprep.PrepareFile("input.wav", "output.parquet", cfg, waveprep.SaveOptions{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Resampled.Len(), "samples at", result.Resampled.Rate, "Hz")
//
// For samples already in memory:
//
//	w, err := waveprep.NewWaveform(samples, 44100)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := waveprep.Prepare(w, waveprep.DefaultConfig())
//
// # Normalization
//
// The filtered waveform is scaled so its peak magnitude is exactly 1. The
// same factor is applied to the unfiltered original so the two sound alike
// in level when auditioned back to back; the original's peak can therefore
// exceed 1.
//
// # Resampling
//
// The filtered waveform is placed on a time axis i/inRate and sampled at
// j/outRate for j in [0, floor(N*outRate/inRate)). The default interpolator
// is a natural cubic spline. Hermite and linear interpolation are available
// through [Config.Interpolation].
//
// # Output
//
// [Save] writes a .parquet artifact with one row per sample (column
// "outputWaveform") and the sample rate in the file metadata, or a mono PCM
// .wav file.
package waveprep
