package audioio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// DefaultBitDepth is the PCM bit depth used for WAV output when none is given.
	DefaultBitDepth = 16

	outputFileMode = 0o644
)

// SaveOptions controls how a prepared waveform is persisted.
type SaveOptions struct {
	// BitDepth for WAV output (16, 24 or 32). Zero selects DefaultBitDepth.
	BitDepth int

	// SourceRate is recorded in the parquet metadata when positive.
	SourceRate float64

	// RunID is recorded in the parquet metadata when set.
	RunID string
}

// SupportedOutputs returns the file extensions Save understands.
func SupportedOutputs() []string {
	return []string{".parquet", ".wav"}
}

// Save writes samples prepared for rate to path. The format follows the
// extension: .parquet stores the named sample column with the rate as
// metadata, .wav stores mono integer PCM.
func Save(path string, samples []float64, rate float64, opts SaveOptions) error {
	if len(samples) == 0 {
		return ErrNoSamples
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".parquet":
		return writeParquet(path, samples, rate, opts)
	case ".wav":
		bitDepth := opts.BitDepth
		if bitDepth == 0 {
			bitDepth = DefaultBitDepth
		}
		return writeWAV(path, samples, monoChannels, rate, bitDepth)
	default:
		return fmt.Errorf("%w: cannot write %q", ErrUnsupportedFormat, ext)
	}
}

// writeFileAtomic fills a temporary file next to path and renames it into
// place once write and Close succeed. On failure the temporary file is
// removed and any existing file at path is left untouched.
func writeFileAtomic(path string, write func(f *os.File) error) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	tmpPath := f.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Chmod(outputFileMode); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to set output file mode: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to move output file into place: %w", err)
	}

	return nil
}
