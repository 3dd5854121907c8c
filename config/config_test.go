package config

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/sonido-iq/algorithms/transform"
	"github.com/RyanBlaney/sonido-iq/logging"
	"github.com/RyanBlaney/sonido-iq/transcode"
)

func TestDefaultAnalysisConfigIsValid(t *testing.T) {
	require.NoError(t, DefaultAnalysisConfig().Validate())
}

func TestLoadDefaults(t *testing.T) {
	config, err := Load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, DefaultAnalysisConfig(), config)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("IQSONAR_INPUT_SAMPLE_RATE", "2048000")
	t.Setenv("IQSONAR_SPECTRUM_KERNEL", "gonum")
	t.Setenv("IQSONAR_POWER_WORKERS", "4")

	config, err := Load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, 2048000, config.Input.SampleRate)
	assert.Equal(t, transform.KernelGonum, config.Spectrum.Kernel)
	assert.Equal(t, 4, config.Power.Workers)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "iqsonar.yaml")
	contents := `
log_level: debug
output_format: json
input:
  sample_rate: 4
  format: float16
  byte_order: little
power:
  resistance: 75
  interval: 0.5
  period: 1
spectrum:
  frequency_range: 2
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	config, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, logging.DebugLevel, config.Level())
	assert.Equal(t, "json", config.OutputFormat)
	assert.Equal(t, 4, config.Input.SampleRate)
	assert.Equal(t, 75.0, config.Power.Resistance)
	assert.Equal(t, int64(2), config.Spectrum.FrequencyRange)
	// unset keys keep their defaults
	assert.Equal(t, "text", config.LogFormat)
	assert.Equal(t, transform.KernelGoDSP, config.Spectrum.Kernel)

	decoder, err := config.DecoderConfig()
	require.NoError(t, err)
	assert.Equal(t, transcode.Float16, decoder.Format)
	assert.Equal(t, binary.LittleEndian, decoder.ByteOrder)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("spectrum:\n  frequency_range: 5000000\n"), 0o644))

	_, err := LoadFile(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *AnalysisConfig)
	}{
		{"sample rate", func(c *AnalysisConfig) { c.Input.SampleRate = 0 }},
		{"format", func(c *AnalysisConfig) { c.Input.Format = "int8" }},
		{"byte order", func(c *AnalysisConfig) { c.Input.ByteOrder = "middle" }},
		{"max samples", func(c *AnalysisConfig) { c.Input.MaxSamples = -1 }},
		{"dc cutoff", func(c *AnalysisConfig) { c.Input.DCCutoff = -1 }},
		{"dc cutoff above pole limit", func(c *AnalysisConfig) { c.Input.DCCutoff = float64(c.Input.SampleRate) }},
		{"resistance", func(c *AnalysisConfig) { c.Power.Resistance = 0 }},
		{"offset", func(c *AnalysisConfig) { c.Power.Offset = -1 }},
		{"infinite offset", func(c *AnalysisConfig) { c.Power.Offset = math.Inf(1) }},
		{"interval", func(c *AnalysisConfig) { c.Power.Interval = 0 }},
		{"infinite period", func(c *AnalysisConfig) { c.Power.Period = math.Inf(1) }},
		{"period", func(c *AnalysisConfig) { c.Power.Period = c.Power.Interval / 2 }},
		{"workers", func(c *AnalysisConfig) { c.Power.Workers = -2 }},
		{"kernel", func(c *AnalysisConfig) { c.Spectrum.Kernel = "fftw" }},
		{"frequency range", func(c *AnalysisConfig) { c.Spectrum.FrequencyRange = -1 }},
		{"log format", func(c *AnalysisConfig) { c.LogFormat = "xml" }},
		{"output format", func(c *AnalysisConfig) { c.OutputFormat = "html" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultAnalysisConfig()
			tt.mutate(c)
			assert.ErrorIs(t, c.Validate(), ErrInvalidConfig)
		})
	}
}

func TestEngine(t *testing.T) {
	c := DefaultAnalysisConfig()
	c.Spectrum.Kernel = transform.KernelGonum

	engine, err := c.Engine()
	require.NoError(t, err)
	assert.IsType(t, &transform.GonumKernel{}, engine.Kernel())
}

func TestDecoderConfigDefaultsToBigEndian(t *testing.T) {
	c := DefaultAnalysisConfig()
	c.Input.ByteOrder = ""
	require.NoError(t, c.Validate())

	decoder, err := c.DecoderConfig()
	require.NoError(t, err)
	assert.Equal(t, binary.BigEndian, decoder.ByteOrder)
	assert.Equal(t, transcode.Float32, decoder.Format)
}
