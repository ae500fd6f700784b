package audioio

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mewkiz/flac"
)

func decodeFLAC(f *os.File) (*decoded, error) {
	stream, err := flac.New(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}
	defer func() { _ = stream.Close() }()

	channels := int(stream.Info.NChannels)
	bitDepth := int(stream.Info.BitsPerSample)
	if channels < monoChannels || bitDepth < bitsPerSample8 || bitDepth > bitsPerSample32 {
		return nil, fmt.Errorf("%w: %d channels at %d bits", ErrInvalidFile, channels, bitDepth)
	}
	// Full scale is the largest positive value, as for WAV and AIFF
	invMaxVal := 1.0 / float64(int64(1)<<(bitDepth-1)-1)

	interleaved := make([]float64, 0, int(stream.Info.NSamples)*channels)
	for {
		frame, err := stream.ParseNext()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
		}

		if len(frame.Subframes) != channels {
			return nil, fmt.Errorf("%w: frame has %d subframes, stream has %d channels",
				ErrInvalidFile, len(frame.Subframes), channels)
		}
		frames := len(frame.Subframes[0].Samples)
		for i := range frames {
			for ch := range channels {
				interleaved = append(interleaved, float64(frame.Subframes[ch].Samples[i])*invMaxVal)
			}
		}
	}

	return &decoded{
		interleaved: interleaved,
		channels:    channels,
		rate:        float64(stream.Info.SampleRate),
		bitDepth:    bitDepth,
	}, nil
}
