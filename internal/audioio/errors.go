package audioio

import "errors"

var (
	// ErrUnsupportedFormat indicates a file extension with no decoder or encoder.
	ErrUnsupportedFormat = errors.New("unsupported audio format")

	// ErrInvalidFile indicates a file that could not be parsed as its format.
	ErrInvalidFile = errors.New("invalid audio file")

	// ErrChannelOutOfRange indicates a channel index the source does not have.
	ErrChannelOutOfRange = errors.New("channel index out of range")

	// ErrNoSamples indicates a source that decoded to zero frames.
	ErrNoSamples = errors.New("audio file contains no samples")

	// ErrUnsupportedBitDepth indicates a PCM bit depth that cannot be written.
	ErrUnsupportedBitDepth = errors.New("unsupported bit depth")
)
