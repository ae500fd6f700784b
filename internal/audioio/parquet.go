package audioio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/parquet-go/parquet-go"
)

// sampleRow is one row of the prepared-waveform artifact.
type sampleRow struct {
	Index int64   `parquet:"index"`
	Value float64 `parquet:"outputWaveform"`
}

// Artifact is a prepared waveform read back from a parquet file.
type Artifact struct {
	Samples    []float64
	Rate       float64
	SourceRate float64
	RunID      string
}

// writeParquet stores one row per sample and records the rates as key/value
// metadata, so the file is usable without out-of-band configuration.
func writeParquet(path string, samples []float64, rate float64, opts SaveOptions) error {
	options := []parquet.WriterOption{
		parquet.Compression(&parquet.Snappy),
		parquet.KeyValueMetadata(MetaSampleRate, formatRate(rate)),
		parquet.KeyValueMetadata(MetaSamples, strconv.Itoa(len(samples))),
	}
	if opts.SourceRate > 0 {
		options = append(options, parquet.KeyValueMetadata(MetaSourceRate, formatRate(opts.SourceRate)))
	}
	if opts.RunID != "" {
		options = append(options, parquet.KeyValueMetadata(MetaRunID, opts.RunID))
	}

	rows := make([]sampleRow, len(samples))
	for i, v := range samples {
		rows[i] = sampleRow{Index: int64(i), Value: v}
	}

	return writeFileAtomic(path, func(f *os.File) error {
		writer := parquet.NewGenericWriter[sampleRow](f, options...)
		if _, err := writer.Write(rows); err != nil {
			return fmt.Errorf("failed to write samples: %w", err)
		}
		if err := writer.Close(); err != nil {
			return fmt.Errorf("failed to finalize parquet file: %w", err)
		}
		return nil
	})
}

// ReadArtifact loads a parquet artifact written by Save.
func ReadArtifact(path string) (*Artifact, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open artifact: %w", err)
	}
	defer func() { _ = f.Close() }()

	return readParquet(f)
}

func decodeParquet(f *os.File) (*decoded, error) {
	artifact, err := readParquet(f)
	if err != nil {
		return nil, err
	}
	return &decoded{
		interleaved: artifact.Samples,
		channels:    monoChannels,
		rate:        artifact.Rate,
	}, nil
}

func readParquet(f *os.File) (*Artifact, error) {
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	file, err := parquet.OpenFile(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}

	if _, ok := file.Schema().Lookup(ColumnSamples); !ok {
		return nil, fmt.Errorf("%w: no %q column", ErrInvalidFile, ColumnSamples)
	}

	rate, err := lookupRate(file, MetaSampleRate)
	if err != nil {
		return nil, err
	}
	artifact := &Artifact{Rate: rate}
	artifact.RunID, _ = file.Lookup(MetaRunID)
	if _, ok := file.Lookup(MetaSourceRate); ok {
		if artifact.SourceRate, err = lookupRate(file, MetaSourceRate); err != nil {
			return nil, err
		}
	}

	reader := parquet.NewGenericReader[sampleRow](f)
	defer func() { _ = reader.Close() }()

	artifact.Samples = make([]float64, reader.NumRows())
	batch := make([]sampleRow, parquetReadBatch)
	for {
		n, err := reader.Read(batch)
		for _, row := range batch[:n] {
			if row.Index < 0 || row.Index >= int64(len(artifact.Samples)) {
				return nil, fmt.Errorf("%w: row index %d out of range", ErrInvalidFile, row.Index)
			}
			artifact.Samples[row.Index] = row.Value
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
		}
	}

	return artifact, nil
}

func lookupRate(file *parquet.File, key string) (float64, error) {
	value, ok := file.Lookup(key)
	if !ok {
		return 0, fmt.Errorf("%w: missing %q metadata", ErrInvalidFile, key)
	}
	rate, err := strconv.ParseFloat(value, 64)
	if err != nil || rate <= 0 {
		return 0, fmt.Errorf("%w: bad %q metadata %q", ErrInvalidFile, key, value)
	}
	return rate, nil
}

func formatRate(rate float64) string {
	return strconv.FormatFloat(rate, 'g', -1, 64)
}
