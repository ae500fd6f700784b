// Command waveprep prepares an audio recording for playback on a motor-control
// loop: it keeps one channel, removes content above 2 kHz with a zero-phase
// filter, normalizes the peak to 1, resamples to the loop rate and saves the
// result.
//
// Usage:
//
//	waveprep input.wav output.parquet
//	waveprep -rate 8000 -channel 1 input.flac output.wav
//	waveprep -config prep.yaml -preview input.mp3 output.parquet
//
// Flags given on the command line override values from the config file.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	waveprep "github.com/tphakala/go-waveform-prep"
	"github.com/tphakala/go-waveform-prep/internal/preview"
	"go.uber.org/zap"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "waveprep: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	opts, err := parseArgs(args, stderr)
	if err != nil {
		return err
	}

	logger := newLogger(opts.verbose, stderr)
	defer func() { _ = logger.Sync() }()

	cfg, err := buildConfig(opts)
	if err != nil {
		return err
	}
	cfg.Logger = logger

	logger.Debug("starting",
		zap.String("input", opts.inputPath),
		zap.String("output", opts.outputPath),
		zap.Float64("output_rate_hz", cfg.OutputRate),
		zap.Int("channel", cfg.InputChannel),
		zap.Stringer("interpolation", cfg.Interpolation))

	start := time.Now()
	result, err := waveprep.PrepareFile(opts.inputPath, opts.outputPath, cfg, waveprep.SaveOptions{BitDepth: opts.bitDepth})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	printSummary(stdout, opts, cfg.Interpolation, result, elapsed)

	if !opts.preview {
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	player, err := preview.NewOtoPlayer(preview.DefaultDeviceRate, 1)
	if err != nil {
		return err
	}
	defer func() { _ = player.Close() }()

	return preview.Audition(ctx, player, clipsFromResult(result), preview.Options{
		PauseFactor: opts.pauseFactor,
		Logger:      logger,
	})
}

func printSummary(w io.Writer, opts *options, interp waveprep.Interpolation, result *waveprep.Result, elapsed time.Duration) {
	fmt.Fprintf(w, "Prepared %s -> %s\n", filepath.Base(opts.inputPath), filepath.Base(opts.outputPath))
	fmt.Fprintf(w, "  %.0f Hz -> %.0f Hz (%s)\n",
		result.Original.Rate, result.Resampled.Rate, interp)
	fmt.Fprintf(w, "  %d samples -> %d samples\n", result.Original.Len(), result.Resampled.Len())
	fmt.Fprintf(w, "  Scaling factor: %.6f\n", result.ScalingFactor)
	if result.Alias != nil {
		fmt.Fprintf(w, "  Energy above %.0f Hz: %.4f%%\n", result.Alias.CutoffHz, result.Alias.AliasRatio*percentScale)
	}
	fmt.Fprintf(w, "  Duration: %.2fs\n", elapsed.Seconds())
}
