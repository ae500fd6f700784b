package preview

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/ebitengine/oto/v3"
	"github.com/tphakala/go-waveform-prep/internal/engine"
	"github.com/tphakala/go-waveform-prep/internal/simdops"
)

const (
	// DefaultDeviceRate is the output rate of the audio device.
	DefaultDeviceRate = 44100

	deviceChannels = 2
	bytesPerSample = 2
	maxInt16       = 32767.0
)

// ErrPlayerClosed is returned by Play after Close.
var ErrPlayerClosed = errors.New("preview: player closed")

// OtoPlayer plays clips through the system audio device. Oto allows a single
// context per process, so every clip is converted to the device rate with the
// natural cubic spline instead of reopening the device at the clip's rate.
type OtoPlayer struct {
	ctx        *oto.Context
	player     *oto.Player
	deviceRate int
	volume     float32
	closed     bool
}

// NewOtoPlayer opens the audio device at deviceRate (zero selects
// DefaultDeviceRate) with 16-bit stereo output. Volume is a linear gain in
// [0, 1].
func NewOtoPlayer(deviceRate int, volume float64) (*OtoPlayer, error) {
	if deviceRate <= 0 {
		deviceRate = DefaultDeviceRate
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   deviceRate,
		ChannelCount: deviceChannels,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create oto context: %w", err)
	}
	<-ready

	return &OtoPlayer{
		ctx:        ctx,
		deviceRate: deviceRate,
		volume:     float32(min(max(volume, 0), 1)),
	}, nil
}

// Play starts playback of samples recorded at rate and returns immediately.
// A clip that is still playing is stopped.
func (p *OtoPlayer) Play(samples []float64, rate float64) error {
	if p.closed {
		return ErrPlayerClosed
	}

	pcm, err := renderPCM(samples, rate, p.deviceRate, p.volume)
	if err != nil {
		return err
	}

	if err := p.stop(); err != nil {
		return err
	}
	p.player = p.ctx.NewPlayer(bytes.NewReader(pcm))
	p.player.Play()

	return p.ctx.Err()
}

// Close stops playback and suspends the device.
func (p *OtoPlayer) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true

	if err := p.stop(); err != nil {
		return err
	}
	return p.ctx.Suspend()
}

func (p *OtoPlayer) stop() error {
	if p.player == nil {
		return nil
	}
	err := p.player.Close()
	p.player = nil
	return err
}

// renderPCM converts mono samples at rate into interleaved stereo signed
// 16-bit little-endian frames at deviceRate, scaled by volume and clamped.
// The spline keeps a low-rate clip free of the images linear interpolation
// would add between its Nyquist frequency and the device's.
func renderPCM(samples []float64, rate float64, deviceRate int, volume float32) ([]byte, error) {
	mono := samples
	if rate != float64(deviceRate) {
		var err error
		mono, err = engine.Resample(samples, rate, float64(deviceRate), engine.MethodNaturalSpline)
		if err != nil {
			return nil, fmt.Errorf("failed to convert clip to device rate: %w", err)
		}
	}

	ops := simdops.Float32Ops()
	scaled := make([]float32, len(mono))
	for i, v := range mono {
		scaled[i] = float32(v)
	}
	ops.Scale(scaled, scaled, volume)

	frames := make([]float32, len(scaled)*deviceChannels)
	ops.Interleave2(frames, scaled, scaled)

	pcm := make([]byte, len(frames)*bytesPerSample)
	for i, v := range frames {
		s := math.Round(float64(min(max(v, -1), 1)) * maxInt16)
		binary.LittleEndian.PutUint16(pcm[i*bytesPerSample:], uint16(int16(s)))
	}

	return pcm, nil
}
