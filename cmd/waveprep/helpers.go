package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	waveprep "github.com/tphakala/go-waveform-prep"
	"github.com/tphakala/go-waveform-prep/internal/preview"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// CLI defaults
	defaultBitDepth = 16
	minRequiredArgs = 2
	percentScale    = 100
)

// errUsage signals that usage was already printed.
var errUsage = errors.New("usage")

// options holds parsed command line values.
type options struct {
	inputPath     string
	outputPath    string
	configPath    string
	rate          float64
	channel       int
	interpolation string
	bitDepth      int
	aliasCheck    bool
	preview       bool
	pauseFactor   float64
	verbose       bool

	// set records the flags given explicitly, so they can override the
	// config file.
	set map[string]bool
}

func parseArgs(args []string, stderr io.Writer) (*options, error) {
	opts := &options{set: make(map[string]bool)}

	fs := flag.NewFlagSet("waveprep", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Float64Var(&opts.rate, "rate", waveprep.DefaultOutputRate, "Target sample rate in Hz")
	fs.IntVar(&opts.channel, "channel", 0, "Input channel to keep (0 = first)")
	fs.StringVar(&opts.configPath, "config", "", "YAML config file")
	fs.StringVar(&opts.interpolation, "interp", "spline", "Interpolation: spline, hermite, linear")
	fs.IntVar(&opts.bitDepth, "bits", defaultBitDepth, "WAV output bit depth: 16, 24, 32")
	fs.BoolVar(&opts.aliasCheck, "alias-check", true, "Estimate energy above the output Nyquist frequency")
	fs.BoolVar(&opts.preview, "preview", false, "Play original, filtered and resampled clips after saving")
	fs.Float64Var(&opts.pauseFactor, "pause", preview.DefaultPauseFactor, "Pause after each clip as a multiple of its duration")
	fs.BoolVar(&opts.verbose, "v", false, "Verbose output")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: waveprep [options] input output\n\n")
		fmt.Fprintf(stderr, "Inputs:  %v\n", waveprep.SupportedInputs())
		fmt.Fprintf(stderr, "Outputs: %v\n\n", waveprep.SupportedOutputs())
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  waveprep input.wav output.parquet          # 4 kHz, first channel\n")
		fmt.Fprintf(stderr, "  waveprep -rate 8000 -channel 1 in.flac out.wav\n")
		fmt.Fprintf(stderr, "  waveprep -preview voice.mp3 voice.parquet  # listen to the result\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, errUsage
		}
		return nil, err
	}

	if fs.NArg() < minRequiredArgs {
		fs.Usage()
		return nil, errUsage
	}
	opts.inputPath = fs.Arg(0)
	opts.outputPath = fs.Arg(1)

	fs.Visit(func(f *flag.Flag) {
		opts.set[f.Name] = true
	})

	return opts, nil
}

// buildConfig starts from the config file (or defaults) and applies the
// flags that were given explicitly.
func buildConfig(opts *options) (waveprep.Config, error) {
	cfg := waveprep.DefaultConfig()
	if opts.configPath != "" {
		var err error
		if cfg, err = waveprep.LoadConfigFile(opts.configPath); err != nil {
			return waveprep.Config{}, err
		}
	}

	if opts.set["rate"] || opts.configPath == "" {
		cfg.OutputRate = opts.rate
	}
	if opts.set["channel"] || opts.configPath == "" {
		cfg.InputChannel = opts.channel
	}
	if opts.set["interp"] || opts.configPath == "" {
		method, err := waveprep.ParseInterpolation(opts.interpolation)
		if err != nil {
			return waveprep.Config{}, err
		}
		cfg.Interpolation = method
	}
	if opts.set["alias-check"] || opts.configPath == "" {
		cfg.AliasCheck = opts.aliasCheck
	}

	if err := cfg.Validate(); err != nil {
		return waveprep.Config{}, err
	}
	return cfg, nil
}

// newLogger writes human-readable logs to w. Verbose enables debug entries.
func newLogger(verbose bool, w io.Writer) *zap.Logger {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if verbose {
		level.SetLevel(zapcore.DebugLevel)
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(w), level)

	return zap.New(core)
}

func clipsFromResult(result *waveprep.Result) []preview.Clip {
	return []preview.Clip{
		{Name: "original", Samples: result.Original.Samples, Rate: result.Original.Rate},
		{Name: "filtered", Samples: result.Filtered.Samples, Rate: result.Filtered.Rate},
		{Name: "resampled", Samples: result.Resampled.Samples, Rate: result.Resampled.Rate},
	}
}
