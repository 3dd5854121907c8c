package config

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/viper"

	"github.com/RyanBlaney/sonido-iq/algorithms/transform"
	"github.com/RyanBlaney/sonido-iq/logging"
	"github.com/RyanBlaney/sonido-iq/transcode"
)

// EnvPrefix prefixes every environment override, e.g. IQSONAR_INPUT_SAMPLE_RATE.
const EnvPrefix = "IQSONAR"

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// AnalysisConfig represents the analysis configuration
type AnalysisConfig struct {
	LogLevel     string `mapstructure:"log_level" json:"log_level" yaml:"log_level"`
	LogFormat    string `mapstructure:"log_format" json:"log_format" yaml:"log_format"`
	OutputFormat string `mapstructure:"output_format" json:"output_format" yaml:"output_format"`

	Input    InputConfig    `mapstructure:"input" json:"input" yaml:"input"`
	Power    PowerConfig    `mapstructure:"power" json:"power" yaml:"power"`
	Spectrum SpectrumConfig `mapstructure:"spectrum" json:"spectrum" yaml:"spectrum"`
}

// InputConfig describes how capture files are decoded
type InputConfig struct {
	SampleRate int    `mapstructure:"sample_rate" json:"sample_rate" yaml:"sample_rate"`
	Format     string `mapstructure:"format" json:"format" yaml:"format"`
	ByteOrder  string `mapstructure:"byte_order" json:"byte_order" yaml:"byte_order"`
	MaxSamples int    `mapstructure:"max_samples" json:"max_samples" yaml:"max_samples"`

	// DCCutoff enables a DC blocker with this cutoff in Hz; 0 disables it.
	DCCutoff float64 `mapstructure:"dc_cutoff" json:"dc_cutoff" yaml:"dc_cutoff"`
}

// PowerConfig contains interval power settings. Times are in seconds.
type PowerConfig struct {
	Resistance float64 `mapstructure:"resistance" json:"resistance" yaml:"resistance"`
	Offset     float64 `mapstructure:"offset" json:"offset" yaml:"offset"`
	Interval   float64 `mapstructure:"interval" json:"interval" yaml:"interval"`
	Period     float64 `mapstructure:"period" json:"period" yaml:"period"`
	Workers    int     `mapstructure:"workers" json:"workers" yaml:"workers"`
}

// SpectrumConfig contains transform and frequency range settings
type SpectrumConfig struct {
	Kernel         string `mapstructure:"kernel" json:"kernel" yaml:"kernel"`
	FrequencyRange int64  `mapstructure:"frequency_range" json:"frequency_range" yaml:"frequency_range"`
}

// DefaultAnalysisConfig returns the configuration used when nothing is set
func DefaultAnalysisConfig() *AnalysisConfig {
	return &AnalysisConfig{
		LogLevel:     "info",
		LogFormat:    "text",
		OutputFormat: "table",
		Input: InputConfig{
			SampleRate: 1_000_000,
			Format:     transcode.Float32.String(),
			ByteOrder:  "big",
		},
		Power: PowerConfig{
			Resistance: 50,
			Interval:   0.001,
			Period:     0.001,
		},
		Spectrum: SpectrumConfig{
			Kernel:         transform.KernelGoDSP,
			FrequencyRange: 0,
		},
	}
}

// SetDefaults registers DefaultAnalysisConfig on v for every key not already set
func SetDefaults(v *viper.Viper) {
	d := DefaultAnalysisConfig()

	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
	v.SetDefault("output_format", d.OutputFormat)

	v.SetDefault("input.sample_rate", d.Input.SampleRate)
	v.SetDefault("input.format", d.Input.Format)
	v.SetDefault("input.byte_order", d.Input.ByteOrder)
	v.SetDefault("input.max_samples", d.Input.MaxSamples)
	v.SetDefault("input.dc_cutoff", d.Input.DCCutoff)

	v.SetDefault("power.resistance", d.Power.Resistance)
	v.SetDefault("power.offset", d.Power.Offset)
	v.SetDefault("power.interval", d.Power.Interval)
	v.SetDefault("power.period", d.Power.Period)
	v.SetDefault("power.workers", d.Power.Workers)

	v.SetDefault("spectrum.kernel", d.Spectrum.Kernel)
	v.SetDefault("spectrum.frequency_range", d.Spectrum.FrequencyRange)
}

// BindEnv enables IQSONAR_* environment overrides on v
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
}

// Load decodes v into an AnalysisConfig and validates it. Defaults and
// environment bindings are applied to v first.
func Load(v *viper.Viper) (*AnalysisConfig, error) {
	SetDefaults(v)
	BindEnv(v)

	config := &AnalysisConfig{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode configuration: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadFile reads a YAML configuration file into a fresh viper instance and
// loads it.
func LoadFile(path string) (*AnalysisConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("unable to read configuration %s: %w", path, err)
	}
	return Load(v)
}

// Validate validates the configuration
func (c *AnalysisConfig) Validate() error {
	if c.Input.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be positive", ErrInvalidConfig)
	}
	if _, err := transcode.ParseBinaryIQFormat(c.Input.Format); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Input.ByteOrder != "" {
		if _, err := transcode.ParseByteOrder(c.Input.ByteOrder); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	if c.Input.MaxSamples < 0 {
		return fmt.Errorf("%w: max samples cannot be negative", ErrInvalidConfig)
	}
	if !(c.Input.DCCutoff >= 0) || c.Input.DCCutoff >= float64(c.Input.SampleRate)/(2*math.Pi) {
		return fmt.Errorf("%w: DC cutoff must be between 0 and sample_rate/2π Hz", ErrInvalidConfig)
	}

	if c.Power.Resistance <= 0 || math.IsInf(c.Power.Resistance, 0) || math.IsNaN(c.Power.Resistance) {
		return fmt.Errorf("%w: resistance must be a positive number of ohms", ErrInvalidConfig)
	}
	if !(c.Power.Offset >= 0) || math.IsInf(c.Power.Offset, 0) {
		return fmt.Errorf("%w: offset must be a finite, non-negative number of seconds", ErrInvalidConfig)
	}
	if !(c.Power.Interval > 0) || math.IsInf(c.Power.Interval, 0) {
		return fmt.Errorf("%w: interval must be positive", ErrInvalidConfig)
	}
	if math.IsInf(c.Power.Period, 0) || !(c.Power.Period >= c.Power.Interval) {
		return fmt.Errorf("%w: period must be at least the interval", ErrInvalidConfig)
	}
	if c.Power.Workers < 0 {
		return fmt.Errorf("%w: workers cannot be negative", ErrInvalidConfig)
	}

	if _, err := transform.KernelByName(c.Spectrum.Kernel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Spectrum.FrequencyRange < 0 || c.Spectrum.FrequencyRange > int64(c.Input.SampleRate) {
		return fmt.Errorf("%w: frequency range must be between 0 and the sample rate", ErrInvalidConfig)
	}

	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrInvalidConfig, c.LogFormat)
	}
	switch strings.ToLower(c.OutputFormat) {
	case "table", "json", "yaml", "csv":
	default:
		return fmt.Errorf("%w: unknown output format %q", ErrInvalidConfig, c.OutputFormat)
	}
	return nil
}

// DecoderConfig converts the input section for transcode.NewDecoder.
func (c *AnalysisConfig) DecoderConfig() (*transcode.DecoderConfig, error) {
	format, err := transcode.ParseBinaryIQFormat(c.Input.Format)
	if err != nil {
		return nil, err
	}
	var order binary.ByteOrder = binary.BigEndian
	if c.Input.ByteOrder != "" {
		if order, err = transcode.ParseByteOrder(c.Input.ByteOrder); err != nil {
			return nil, err
		}
	}
	return &transcode.DecoderConfig{
		Format:     format,
		ByteOrder:  order,
		MaxSamples: c.Input.MaxSamples,
	}, nil
}

// Engine builds the transform engine named by spectrum.kernel
func (c *AnalysisConfig) Engine() (*transform.Engine, error) {
	kernel, err := transform.KernelByName(c.Spectrum.Kernel)
	if err != nil {
		return nil, err
	}
	return transform.NewEngine(kernel), nil
}

// Level returns the parsed log level
func (c *AnalysisConfig) Level() logging.Level {
	return logging.ParseLevel(c.LogLevel)
}
