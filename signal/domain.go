package signal

import (
	"encoding/binary"
	"slices"

	"github.com/RyanBlaney/sonido-iq/algorithms/spectral"
	"github.com/RyanBlaney/sonido-iq/algorithms/transform"
	"github.com/RyanBlaney/sonido-iq/transcode"
)

// TimeDomain is a sequence of complex samples taken at a fixed rate.
type TimeDomain struct {
	iq
}

// FrequencyDomain is a centered spectrum: bin N/2 holds the DC component.
type FrequencyDomain struct {
	iq
}

var (
	_ Signal = (*TimeDomain)(nil)
	_ Signal = (*FrequencyDomain)(nil)
)

// NewTimeDomain copies samples into a new time-domain signal.
func NewTimeDomain(samples []complex128, sampleRate int) (*TimeDomain, error) {
	if err := checkSampleRate(sampleRate); err != nil {
		return nil, err
	}
	return newTimeDomain(slices.Clone(samples), sampleRate), nil
}

// NewFrequencyDomain copies bins into a new frequency-domain signal.
func NewFrequencyDomain(bins []complex128, sampleRate int) (*FrequencyDomain, error) {
	if err := checkSampleRate(sampleRate); err != nil {
		return nil, err
	}
	return newFrequencyDomain(slices.Clone(bins), sampleRate), nil
}

// NewTimeDomainFromBytes decodes interleaved I/Q components.
func NewTimeDomainFromBytes(data []byte, format transcode.BinaryIQFormat, order binary.ByteOrder, sampleRate int) (*TimeDomain, error) {
	if err := checkSampleRate(sampleRate); err != nil {
		return nil, err
	}
	samples, err := transcode.DecodeIQ(data, format, order)
	if err != nil {
		return nil, err
	}
	return newTimeDomain(samples, sampleRate), nil
}

// NewTimeDomainFromBytesBigEndian decodes with the default big-endian byte order.
func NewTimeDomainFromBytesBigEndian(data []byte, format transcode.BinaryIQFormat, sampleRate int) (*TimeDomain, error) {
	return NewTimeDomainFromBytes(data, format, binary.BigEndian, sampleRate)
}

// NewTimeDomainFromCSV parses "re0,im0,re1,im1,..." text.
func NewTimeDomainFromCSV(csv string, sampleRate int) (*TimeDomain, error) {
	if err := checkSampleRate(sampleRate); err != nil {
		return nil, err
	}
	samples, err := transcode.ParseCSV(csv)
	if err != nil {
		return nil, err
	}
	return newTimeDomain(samples, sampleRate), nil
}

// newTimeDomain takes ownership of samples without copying.
func newTimeDomain(samples []complex128, sampleRate int) *TimeDomain {
	return &TimeDomain{iq{samples: samples, sampleRate: sampleRate}}
}

func newFrequencyDomain(bins []complex128, sampleRate int) *FrequencyDomain {
	return &FrequencyDomain{iq{samples: bins, sampleRate: sampleRate}}
}

// Domain returns Time
func (t *TimeDomain) Domain() Domain { return Time }

// Domain returns Frequency
func (f *FrequencyDomain) Domain() Domain { return Frequency }

// ToFrequencyDomain transforms with the default engine.
func (t *TimeDomain) ToFrequencyDomain() *FrequencyDomain {
	return t.ToFrequencyDomainWith(transform.Default())
}

// ToFrequencyDomainWith transforms with the given engine.
func (t *TimeDomain) ToFrequencyDomainWith(engine *transform.Engine) *FrequencyDomain {
	return newFrequencyDomain(engine.Forward(t.samples), t.sampleRate)
}

// ToTimeDomain inverts the spectrum with the default engine.
func (f *FrequencyDomain) ToTimeDomain() *TimeDomain {
	return f.ToTimeDomainWith(transform.Default())
}

// ToTimeDomainWith inverts the spectrum with the given engine.
func (f *FrequencyDomain) ToTimeDomainWith(engine *transform.Engine) *TimeDomain {
	return newTimeDomain(engine.Inverse(f.samples), f.sampleRate)
}

// BinFrequencies returns the frequency in Hz of every bin.
func (f *FrequencyDomain) BinFrequencies() []float64 {
	return spectral.BinFrequencies(len(f.samples), f.sampleRate)
}

// Shape summarizes where the spectrum's energy sits.
func (f *FrequencyDomain) Shape() spectral.Shape {
	return spectral.AnalyzeShape(f.samples, f.sampleRate)
}

// FromSamples copies samples into a new signal with t's sample rate.
func (t *TimeDomain) FromSamples(samples []complex128) *TimeDomain {
	return newTimeDomain(slices.Clone(samples), t.sampleRate)
}

// FromBins copies bins into a new signal with f's sample rate.
func (f *FrequencyDomain) FromBins(bins []complex128) *FrequencyDomain {
	return newFrequencyDomain(slices.Clone(bins), f.sampleRate)
}

// Slice copies samples [start, end) into a new signal.
func (t *TimeDomain) Slice(start, end int) *TimeDomain {
	return newTimeDomain(slices.Clone(t.samples[start:end]), t.sampleRate)
}

// Slice copies bins [low, high) into a new spectrum.
func (f *FrequencyDomain) Slice(low, high int) *FrequencyDomain {
	return newFrequencyDomain(slices.Clone(f.samples[low:high]), f.sampleRate)
}
