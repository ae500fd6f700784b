package waveprep

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/tphakala/go-waveform-prep/internal/audioio"
	"go.uber.org/zap"
)

// SaveOptions controls how a prepared waveform is persisted.
type SaveOptions = audioio.SaveOptions

// SupportedInputs returns the file extensions Load understands.
func SupportedInputs() []string {
	return audioio.SupportedInputs()
}

// SupportedOutputs returns the file extensions Save understands.
func SupportedOutputs() []string {
	return audioio.SupportedOutputs()
}

// Load reads an audio file and keeps a single channel.
func Load(path string, channel int) (Waveform, error) {
	track, err := audioio.Load(path, channel)
	if err != nil {
		return Waveform{}, err
	}
	return NewWaveform(track.Samples, track.Rate)
}

// Save writes a waveform to path. The extension selects the format:
// .parquet stores the sample column with the rate as metadata, .wav stores
// mono integer PCM.
func Save(path string, w Waveform, opts SaveOptions) error {
	if err := w.Validate(); err != nil {
		return err
	}
	return audioio.Save(path, w.Samples, w.Rate, opts)
}

// PrepareFile loads inputPath, prepares it and saves the resampled waveform
// to outputPath. Nothing is written when any stage fails. Each call gets a
// run ID that tags its log entries and, for parquet output, the artifact.
func PrepareFile(inputPath, outputPath string, cfg Config, opts SaveOptions) (*Result, error) {
	cfg = cfg.withDefaults()
	if opts.RunID == "" {
		opts.RunID = uuid.NewString()
	}
	cfg.Logger = cfg.Logger.With(zap.String("run_id", opts.RunID))
	log := cfg.Logger

	track, err := audioio.Load(inputPath, cfg.InputChannel)
	if err != nil {
		return nil, err
	}
	log.Debug("input loaded",
		zap.String("path", inputPath),
		zap.String("format", track.Format),
		zap.Float64("rate_hz", track.Rate),
		zap.Int("channels", track.Channels),
		zap.Int("bit_depth", track.BitDepth),
		zap.Int("channel", cfg.InputChannel),
		zap.Int("samples", len(track.Samples)))

	input, err := NewWaveform(track.Samples, track.Rate)
	if err != nil {
		return nil, fmt.Errorf("input %s: %w", inputPath, err)
	}

	result, err := Prepare(input, cfg)
	if err != nil {
		return nil, err
	}

	if opts.SourceRate == 0 {
		opts.SourceRate = input.Rate
	}
	if err := Save(outputPath, result.Resampled, opts); err != nil {
		return nil, err
	}
	log.Debug("output saved", zap.String("path", outputPath))

	return result, nil
}
