package signal

import (
	"errors"
	"fmt"
	"slices"

	"github.com/RyanBlaney/sonido-iq/algorithms/power"
	"github.com/RyanBlaney/sonido-iq/algorithms/stats"
)

// ErrInvalidSampleRate is returned by the factories for a non-positive sample rate.
var ErrInvalidSampleRate = errors.New("signal: sample rate must be positive")

// Domain tags which side of the transform a signal lives on.
type Domain int

const (
	Time Domain = iota
	Frequency
)

func (d Domain) String() string {
	switch d {
	case Time:
		return "time"
	case Frequency:
		return "frequency"
	default:
		return fmt.Sprintf("Domain(%d)", int(d))
	}
}

// Signal is the read-only view shared by TimeDomain and FrequencyDomain.
type Signal interface {
	Domain() Domain
	SampleRate() int
	Len() int
	At(i int) complex128
	Samples() []complex128
}

// iq holds the sample sequence and sample rate. It is never mutated after
// construction, so signals may be shared between goroutines freely.
type iq struct {
	samples    []complex128
	sampleRate int
}

// SampleRate returns the sample rate in Hz
func (s *iq) SampleRate() int {
	return s.sampleRate
}

// Len returns the number of samples
func (s *iq) Len() int {
	return len(s.samples)
}

// At returns sample i
func (s *iq) At(i int) complex128 {
	return s.samples[i]
}

// Samples returns a copy of the sample sequence
func (s *iq) Samples() []complex128 {
	return slices.Clone(s.samples)
}

// Magnitude returns |x| for every sample
func (s *iq) Magnitude() []float64 {
	return power.Magnitudes(s.samples)
}

// Power returns the power in watts of every sample over resistance ohms
func (s *iq) Power(resistance float64) []float64 {
	return power.Powers(s.samples, resistance)
}

// PowerDbm returns the power in dBm of every sample over resistance ohms
func (s *iq) PowerDbm(resistance float64) []float64 {
	return power.PowersDbm(s.samples, resistance)
}

// AveragePowerDbm returns the mean power in dBm
func (s *iq) AveragePowerDbm(resistance float64) float64 {
	return power.AveragePowerDbm(s.samples, resistance)
}

// AveragePowerDbmBetween returns the mean power in dBm of samples
// [start, end) without copying them. It panics on an out-of-range window
// like slicing does.
func (s *iq) AveragePowerDbmBetween(start, end int, resistance float64) float64 {
	return power.AveragePowerDbm(s.samples[start:end], resistance)
}

// SumPowerDbm returns the total power in dBm
func (s *iq) SumPowerDbm(resistance float64) float64 {
	return power.SumPowerDbm(s.samples, resistance)
}

// CorrelationTo returns the complex Pearson correlation with other. Both
// signals must hold the same number of samples.
func (s *iq) CorrelationTo(other Signal) (complex128, error) {
	var theirs []complex128
	switch o := other.(type) {
	case *TimeDomain:
		theirs = o.samples
	case *FrequencyDomain:
		theirs = o.samples
	default:
		theirs = other.Samples()
	}
	return stats.PearsonCorrelation(s.samples, theirs)
}

func checkSampleRate(sampleRate int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSampleRate, sampleRate)
	}
	return nil
}
