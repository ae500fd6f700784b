package audioio

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	gomp3 "github.com/hajimehoshi/go-mp3"
)

// decodeMP3 decodes an MP3 stream. go-mp3 always emits interleaved stereo
// 16-bit little-endian PCM, mono sources included.
func decodeMP3(f *os.File) (*decoded, error) {
	dec, err := gomp3.NewDecoder(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}

	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}

	samples := len(raw) / mp3BytesPerSample
	interleaved := make([]float64, samples)
	invMaxVal := 1.0 / maxInt16
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(raw[i*mp3BytesPerSample:]))
		interleaved[i] = float64(v) * invMaxVal
	}

	return &decoded{
		interleaved: interleaved,
		channels:    stereoChannels,
		rate:        float64(dec.SampleRate()),
		bitDepth:    bitsPerSample16,
	}, nil
}
