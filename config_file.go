package waveprep

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig is the YAML form of Config. Pointer fields distinguish "absent"
// from an explicit zero.
type fileConfig struct {
	OutputRate    *float64    `yaml:"output_rate"`
	InputChannel  *int        `yaml:"input_channel"`
	Interpolation string      `yaml:"interpolation"`
	AliasCheck    *bool       `yaml:"alias_check"`
	Filter        *fileFilter `yaml:"filter"`
}

type fileFilter struct {
	DesignRate  float64   `yaml:"design_rate"`
	Cutoff      float64   `yaml:"cutoff"`
	Order       int       `yaml:"order"`
	Numerator   []float64 `yaml:"numerator"`
	Denominator []float64 `yaml:"denominator"`
}

// LoadConfigFile reads a YAML configuration file. Keys that are absent keep
// their DefaultConfig values.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML configuration. Unknown keys are rejected.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()

	var fc fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if fc.OutputRate != nil {
		cfg.OutputRate = *fc.OutputRate
	}
	if fc.InputChannel != nil {
		cfg.InputChannel = *fc.InputChannel
	}
	if fc.Interpolation != "" {
		method, err := ParseInterpolation(fc.Interpolation)
		if err != nil {
			return Config{}, err
		}
		cfg.Interpolation = method
	}
	if fc.AliasCheck != nil {
		cfg.AliasCheck = *fc.AliasCheck
	}
	if fc.Filter != nil {
		cfg.Filter = &FilterCoefficients{
			Numerator:   fc.Filter.Numerator,
			Denominator: fc.Filter.Denominator,
			DesignRate:  fc.Filter.DesignRate,
			Cutoff:      fc.Filter.Cutoff,
			Order:       fc.Filter.Order,
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
