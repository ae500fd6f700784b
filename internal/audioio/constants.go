package audioio

// Sample format constants
const (
	bitsPerSample8  = 8
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	maxInt8         = 127.0
	maxInt16        = 32767.0
	maxInt24        = 8388607.0
	maxInt32        = 2147483647.0
	unsigned8Offset = 128

	monoChannels   = 1
	stereoChannels = 2
)

// WAV format constants
const (
	wavFormatPCM        = 1
	wavFormatIEEEFloat  = 3
	wavFormatExtensible = 0xFFFE

	// Extensible fmt chunk: 16 base bytes, cbSize, valid bits, channel
	// mask, then the 16-byte sub-format GUID.
	wavExtensibleFmtSize = 40
	wavSubFormatOffset   = 24
)

// MP3 decoding constants
const (
	mp3BytesPerSample = 2 // go-mp3 emits 16-bit little-endian PCM
)

// Parquet artifact layout
const (
	// ColumnSamples is the column holding the waveform samples.
	ColumnSamples = "outputWaveform"

	// MetaSampleRate records the rate the samples were prepared for.
	MetaSampleRate = "sample_rate_hz"

	// MetaSourceRate records the rate of the file the samples came from.
	MetaSourceRate = "source_rate_hz"

	// MetaSamples records the sample count.
	MetaSamples = "samples"

	// MetaRunID records the identifier of the run that wrote the artifact.
	MetaRunID = "run_id"

	parquetReadBatch = 8192
)
