package waveprep

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-waveform-prep/internal/audioio"
	"github.com/tphakala/go-waveform-prep/internal/testutil"
)

func TestPrepareFile_WAVToParquet(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "tone.wav")
	outPath := filepath.Join(dir, "tone.parquet")

	require.NoError(t, Save(inPath, sineWaveform(t, RateCD, 500, RateCD, 0.5), SaveOptions{}))

	result, err := PrepareFile(inPath, outPath, DefaultConfig(), SaveOptions{})
	require.NoError(t, err)
	assert.Equal(t, DefaultOutputRate, result.Resampled.Len())

	artifact, err := audioio.ReadArtifact(outPath)
	require.NoError(t, err)
	assert.InDelta(t, float64(DefaultOutputRate), artifact.Rate, testutil.DefaultTolerance)
	assert.InDelta(t, float64(RateCD), artifact.SourceRate, testutil.DefaultTolerance)
	assert.Equal(t, result.Resampled.Samples, artifact.Samples)
	_, err = uuid.Parse(artifact.RunID)
	require.NoError(t, err, "run ID is a UUID")
}

func TestPrepareFile_KeepsGivenRunID(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "tone.wav")
	outPath := filepath.Join(dir, "tone.parquet")
	require.NoError(t, Save(inPath, sineWaveform(t, RateCD/10, 500, RateCD, 0.5), SaveOptions{}))

	_, err := PrepareFile(inPath, outPath, DefaultConfig(), SaveOptions{RunID: "bench-7"})
	require.NoError(t, err)

	artifact, err := audioio.ReadArtifact(outPath)
	require.NoError(t, err)
	assert.Equal(t, "bench-7", artifact.RunID)
}

func TestPrepareFile_StereoUsesSelectedChannel(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "stereo.wav")

	left := testutil.Sine(RateHalfCD, 300, RateHalfCD, 0.4)
	right := testutil.Sine(RateHalfCD, 1200, RateHalfCD, 0.9)
	require.NoError(t, audioio.SaveInterleavedWAV(inPath, testutil.Interleave(left, right), 2, RateHalfCD, 16))

	cfg := DefaultConfig()
	first, err := PrepareFile(inPath, filepath.Join(dir, "left.wav"), cfg, SaveOptions{})
	require.NoError(t, err)

	cfg.InputChannel = 1
	second, err := PrepareFile(inPath, filepath.Join(dir, "right.wav"), cfg, SaveOptions{})
	require.NoError(t, err)

	assert.NotEqual(t, first.Resampled.Samples, second.Resampled.Samples)

	cfg.InputChannel = 2
	_, err = PrepareFile(inPath, filepath.Join(dir, "none.wav"), cfg, SaveOptions{})
	require.ErrorIs(t, err, ErrChannelOutOfRange)
}

func TestPrepareFile_FailureWritesNothing(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "silence.wav")
	outPath := filepath.Join(dir, "silence.parquet")

	silent := Waveform{Samples: make([]float64, RateCD/10), Rate: RateCD}
	require.NoError(t, Save(inPath, silent, SaveOptions{}))

	_, err := PrepareFile(inPath, outPath, DefaultConfig(), SaveOptions{})
	require.ErrorIs(t, err, ErrSilentSignal)

	_, statErr := os.Stat(outPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestPrepareFile_MissingInput(t *testing.T) {
	_, err := PrepareFile("/nonexistent/in.wav", filepath.Join(t.TempDir(), "out.parquet"), DefaultConfig(), SaveOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open input file")
}

func TestLoadAndSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.parquet")
	w := sineWaveform(t, 500, 50, 4000, 1)

	require.NoError(t, Save(path, w, SaveOptions{}))

	loaded, err := Load(path, 0)
	require.NoError(t, err)
	assert.Equal(t, w, loaded)

	require.ErrorIs(t, Save(path, Waveform{Rate: 4000}, SaveOptions{}), ErrEmptyWaveform)
}

func TestSupportedFormats(t *testing.T) {
	assert.Contains(t, SupportedInputs(), ".wav")
	assert.Contains(t, SupportedOutputs(), ".parquet")
}
