package audioio

import (
	"fmt"
	"os"

	"github.com/jfreymuth/oggvorbis"
)

func decodeVorbis(f *os.File) (*decoded, error) {
	data, format, err := oggvorbis.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}

	interleaved := make([]float64, len(data))
	for i, v := range data {
		interleaved[i] = float64(v)
	}

	return &decoded{
		interleaved: interleaved,
		channels:    format.Channels,
		rate:        float64(format.SampleRate),
	}, nil
}
