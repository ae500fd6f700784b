package audioio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/riff"
	"github.com/go-audio/wav"
)

func decodeWAV(f *os.File) (*decoded, error) {
	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("%w: not a RIFF/WAVE file", ErrInvalidFile)
	}
	format := decoder.WavAudioFormat
	if format == wavFormatExtensible {
		sub, err := extensibleSubFormat(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
		}
		format = sub
	}
	if format != wavFormatPCM {
		return nil, fmt.Errorf("%w: WAV format %d is not integer PCM", ErrInvalidFile, format)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}

	bitDepth := int(decoder.BitDepth)
	return &decoded{
		interleaved: intsToFloats(buf.Data, bitDepth, true),
		channels:    int(decoder.NumChans),
		rate:        float64(decoder.SampleRate),
		bitDepth:    bitDepth,
	}, nil
}

// extensibleSubFormat returns the format code held in the first two bytes of
// the WAVE_FORMAT_EXTENSIBLE sub-format GUID. The read position of r is
// restored before returning.
func extensibleSubFormat(r io.ReadSeeker) (format uint16, err error) {
	pos, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	defer func() {
		if _, seekErr := r.Seek(pos, io.SeekStart); err == nil {
			err = seekErr
		}
	}()
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}

	parser := riff.New(r)
	if err := parser.ParseHeaders(); err != nil {
		return 0, err
	}
	for {
		chunk, err := parser.NextChunk()
		if err != nil {
			return 0, fmt.Errorf("fmt chunk not found: %w", err)
		}
		if chunk.ID != riff.FmtID {
			chunk.Drain()
			continue
		}
		if chunk.Size < wavExtensibleFmtSize {
			return 0, fmt.Errorf("extensible fmt chunk is %d bytes", chunk.Size)
		}
		body := make([]byte, wavExtensibleFmtSize)
		if _, err := io.ReadFull(chunk, body); err != nil {
			return 0, err
		}
		return binary.LittleEndian.Uint16(body[wavSubFormatOffset:]), nil
	}
}

// SaveInterleavedWAV writes interleaved frames as integer PCM. Samples are
// clamped to [-1, 1].
func SaveInterleavedWAV(path string, interleaved []float64, channels, rate, bitDepth int) error {
	if channels < monoChannels {
		return fmt.Errorf("%w: %d channels", ErrInvalidFile, channels)
	}
	if len(interleaved) == 0 || len(interleaved)%channels != 0 {
		return fmt.Errorf("%w: %d samples for %d channels", ErrNoSamples, len(interleaved), channels)
	}
	return writeWAV(path, interleaved, channels, float64(rate), bitDepth)
}

// writeWAV encodes interleaved samples as integer PCM at the given rate.
// Samples are clamped to [-1, 1].
func writeWAV(path string, samples []float64, channels int, rate float64, bitDepth int) error {
	switch bitDepth {
	case bitsPerSample16, bitsPerSample24, bitsPerSample32:
	default:
		return fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	sampleRate := int(math.Round(rate))
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: channels,
			SampleRate:  sampleRate,
		},
		Data:           floatsToInts(samples, bitDepth),
		SourceBitDepth: bitDepth,
	}

	return writeFileAtomic(path, func(f *os.File) error {
		encoder := wav.NewEncoder(f, sampleRate, bitDepth, channels, wavFormatPCM)
		if err := encoder.Write(buf); err != nil {
			return fmt.Errorf("failed to write audio data: %w", err)
		}

		// Close patches the RIFF header sizes
		if err := encoder.Close(); err != nil {
			return fmt.Errorf("failed to finalize WAV header: %w", err)
		}
		return nil
	})
}
