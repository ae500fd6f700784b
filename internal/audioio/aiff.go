package audioio

import (
	"fmt"
	"os"

	"github.com/go-audio/aiff"
)

func decodeAIFF(f *os.File) (*decoded, error) {
	decoder := aiff.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("%w: not an AIFF file", ErrInvalidFile)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}

	bitDepth := int(decoder.BitDepth)
	if bitDepth == bitsPerSample8 {
		// The decoder hands back the raw byte; AIFF 8-bit is two's complement
		for i, v := range buf.Data {
			buf.Data[i] = int(int8(uint8(v)))
		}
	}
	return &decoded{
		interleaved: intsToFloats(buf.Data, bitDepth, false),
		channels:    int(decoder.NumChans),
		rate:        float64(decoder.SampleRate),
		bitDepth:    bitDepth,
	}, nil
}
