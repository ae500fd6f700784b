// Package audioio loads audio files into mono float64 tracks and persists
// prepared waveforms.
//
// Decoders are selected by file extension. Integer PCM is normalized to
// [-1, 1] using the full-scale value of the source bit depth.
package audioio

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Track is one channel of a decoded audio file.
type Track struct {
	// Samples holds the selected channel, normalized to [-1, 1].
	Samples []float64

	// Rate is the sample rate in Hz.
	Rate float64

	// Channels is the channel count of the source file.
	Channels int

	// BitDepth is the source bit depth (0 when not applicable).
	BitDepth int

	// Format is the lower-case file extension without the dot.
	Format string
}

// decoded holds interleaved frames straight from a decoder.
type decoded struct {
	interleaved []float64
	channels    int
	rate        float64
	bitDepth    int
}

type decodeFunc func(f *os.File) (*decoded, error)

var decoders = map[string]decodeFunc{
	".wav":     decodeWAV,
	".aif":     decodeAIFF,
	".aiff":    decodeAIFF,
	".mp3":     decodeMP3,
	".ogg":     decodeVorbis,
	".flac":    decodeFLAC,
	".parquet": decodeParquet,
}

// SupportedInputs returns the file extensions Load understands.
func SupportedInputs() []string {
	exts := make([]string, 0, len(decoders))
	for ext := range decoders {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}

// Load decodes the file at path and returns the given channel as a mono track.
// All other channels are discarded.
func Load(path string, channel int) (*Track, error) {
	ext := strings.ToLower(filepath.Ext(path))
	decode, ok := decoders[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	d, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}

	samples, err := ExtractChannel(d.interleaved, d.channels, channel)
	if err != nil {
		return nil, err
	}

	return &Track{
		Samples:  samples,
		Rate:     d.rate,
		Channels: d.channels,
		BitDepth: d.bitDepth,
		Format:   strings.TrimPrefix(ext, "."),
	}, nil
}

// ExtractChannel returns channel ch from interleaved frames.
func ExtractChannel(interleaved []float64, channels, ch int) ([]float64, error) {
	if channels < 1 {
		return nil, fmt.Errorf("%w: source reports %d channels", ErrInvalidFile, channels)
	}
	if ch < 0 || ch >= channels {
		return nil, fmt.Errorf("%w: channel %d requested, source has %d", ErrChannelOutOfRange, ch, channels)
	}

	frames := len(interleaved) / channels
	if frames == 0 {
		return nil, ErrNoSamples
	}

	// Fast path for mono
	if channels == monoChannels {
		return slices.Clone(interleaved[:frames]), nil
	}

	out := make([]float64, frames)
	for i := range frames {
		out[i] = interleaved[i*channels+ch]
	}
	return out, nil
}

// getMaxValue returns the full-scale sample value for the given bit depth.
func getMaxValue(bitDepth int) float64 {
	switch bitDepth {
	case bitsPerSample8:
		return maxInt8
	case bitsPerSample16:
		return maxInt16
	case bitsPerSample24:
		return maxInt24
	case bitsPerSample32:
		return maxInt32
	default:
		return maxInt16
	}
}

// intsToFloats normalizes integer PCM to [-1, 1]. WAV stores 8-bit PCM
// unsigned, AIFF stores it signed.
func intsToFloats(data []int, bitDepth int, unsigned8 bool) []float64 {
	out := make([]float64, len(data))
	invMaxVal := 1.0 / getMaxValue(bitDepth)
	offset := 0
	if unsigned8 && bitDepth == bitsPerSample8 {
		offset = unsigned8Offset
	}
	for i, v := range data {
		out[i] = float64(v-offset) * invMaxVal
	}
	return out
}

// floatsToInts clamps samples to [-1, 1] and scales them to integer PCM.
func floatsToInts(samples []float64, bitDepth int) []int {
	maxVal := getMaxValue(bitDepth)
	out := make([]int, len(samples))
	for i, s := range samples {
		if s > 1.0 {
			s = 1.0
		} else if s < -1.0 {
			s = -1.0
		}
		out[i] = int(s * maxVal)
	}
	return out
}
