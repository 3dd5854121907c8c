package transcode

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/RyanBlaney/sonido-iq/logging"
)

// DecoderConfig holds decoder configuration
type DecoderConfig struct {
	Format    BinaryIQFormat   `json:"format"`
	ByteOrder binary.ByteOrder `json:"-"`
	// MaxSamples truncates the decoded capture to whole I/Q pairs; 0 means no limit.
	MaxSamples int `json:"max_samples"`
}

// DefaultDecoderConfig returns default decoder configuration: big-endian
// float32 pairs without a sample limit.
func DefaultDecoderConfig() *DecoderConfig {
	return &DecoderConfig{
		Format:    Float32,
		ByteOrder: binary.BigEndian,
	}
}

// Decoder turns capture bytes, readers and files into complex samples.
type Decoder struct {
	config *DecoderConfig
	logger logging.Logger
}

// NewDecoder creates a new IQ decoder
func NewDecoder(config *DecoderConfig) *Decoder {
	if config == nil {
		config = DefaultDecoderConfig()
	}
	if config.ByteOrder == nil {
		config.ByteOrder = binary.BigEndian
	}
	return &Decoder{
		config: config,
		logger: logging.WithFields(logging.Fields{
			"component": "iq_decoder",
			"format":    config.Format.String(),
		}),
	}
}

// Config returns a copy of the decoder configuration
func (d *Decoder) Config() DecoderConfig {
	return *d.config
}

// ValidateConfig reports configuration problems before any data is read.
func (d *Decoder) ValidateConfig() error {
	if d.config.Format.ByteLength() == 0 {
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, d.config.Format)
	}
	if d.config.MaxSamples < 0 {
		return fmt.Errorf("transcode: max samples must be >= 0: %d", d.config.MaxSamples)
	}
	return nil
}

// DecodeBytes decodes a complete in-memory capture.
func (d *Decoder) DecodeBytes(data []byte) ([]complex128, error) {
	logger := d.logger.WithFields(logging.Fields{
		"function": "DecodeBytes",
		"bytes":    len(data),
	})

	if err := d.ValidateConfig(); err != nil {
		logger.Error(err, "Invalid decoder configuration")
		return nil, err
	}

	// compare in pairs; MaxSamples*pairSize can overflow for large limits
	pairSize := 2 * d.config.Format.ByteLength()
	if d.config.MaxSamples > 0 && len(data)/pairSize >= d.config.MaxSamples {
		if limit := d.config.MaxSamples * pairSize; len(data) > limit {
			logger.Debug("Truncating capture", logging.Fields{"max_samples": d.config.MaxSamples})
			data = data[:limit]
		}
	}

	samples, err := DecodeIQ(data, d.config.Format, d.config.ByteOrder)
	if err != nil {
		logger.Error(err, "Failed to decode IQ bytes")
		return nil, err
	}

	logger.Debug("IQ bytes decoded", logging.Fields{"samples": len(samples)})
	return samples, nil
}

// DecodeReader reads r to EOF and decodes the result.
func (d *Decoder) DecodeReader(r io.Reader) ([]complex128, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		d.logger.Error(err, "Failed to read data from reader")
		return nil, fmt.Errorf("transcode: read IQ data: %w", err)
	}
	return d.DecodeBytes(data)
}

// DecodeFile decodes a capture file. Files ending in .csv are parsed as text;
// everything else is treated as raw binary pairs.
func (d *Decoder) DecodeFile(filename string) ([]complex128, error) {
	logger := d.logger.WithFields(logging.Fields{
		"function": "DecodeFile",
		"filename": filename,
	})
	logger.Debug("Starting IQ file decode")

	data, err := os.ReadFile(filename)
	if err != nil {
		logger.Error(err, "Failed to read IQ file")
		return nil, fmt.Errorf("transcode: read %s: %w", filename, err)
	}

	if strings.EqualFold(filepath.Ext(filename), ".csv") {
		samples, err := ParseCSV(string(data))
		if err != nil {
			logger.Error(err, "Failed to parse IQ CSV")
			return nil, err
		}
		if d.config.MaxSamples > 0 && len(samples) > d.config.MaxSamples {
			samples = samples[:d.config.MaxSamples]
		}
		return samples, nil
	}

	return d.DecodeBytes(data)
}
