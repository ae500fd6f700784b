// Package preview plays prepared waveforms back for listening comparison.
package preview

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// DefaultPauseFactor scales each clip's duration into the wait that follows it.
const DefaultPauseFactor = 1.2

// ErrNoPlayer is returned when Audition is called without a player.
var ErrNoPlayer = errors.New("preview: no player")

// Player starts playback of mono samples at a given rate. Play may return
// before playback ends.
type Player interface {
	Play(samples []float64, rate float64) error
	Close() error
}

// Clip is one waveform in an audition sequence.
type Clip struct {
	Name    string
	Samples []float64
	Rate    float64
}

// Duration returns the playing time of the clip.
func (c Clip) Duration() time.Duration {
	if c.Rate <= 0 {
		return 0
	}
	return time.Duration(float64(len(c.Samples)) / c.Rate * float64(time.Second))
}

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Options configures Audition.
type Options struct {
	// PauseFactor multiplies each clip's duration to get the wait after it.
	// Zero selects DefaultPauseFactor.
	PauseFactor float64

	// Sleep replaces the wall-clock wait, mainly for tests.
	Sleep SleepFunc

	// Logger receives one entry per clip. Nil disables logging.
	Logger *zap.Logger
}

// Audition plays the clips in order, waiting duration*PauseFactor after each
// so playback finishes before the next clip starts.
func Audition(ctx context.Context, player Player, clips []Clip, opts Options) error {
	if player == nil {
		return ErrNoPlayer
	}
	factor := opts.PauseFactor
	if factor <= 0 {
		factor = DefaultPauseFactor
	}
	sleep := opts.Sleep
	if sleep == nil {
		sleep = sleepContext
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	for _, clip := range clips {
		if err := ctx.Err(); err != nil {
			return err
		}

		log.Info("playing clip",
			zap.String("clip", clip.Name),
			zap.Float64("rate_hz", clip.Rate),
			zap.Duration("duration", clip.Duration()))

		if err := player.Play(clip.Samples, clip.Rate); err != nil {
			return fmt.Errorf("failed to play %s: %w", clip.Name, err)
		}

		pause := time.Duration(float64(clip.Duration()) * factor)
		if err := sleep(ctx, pause); err != nil {
			return err
		}
	}

	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
