package filters

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidCutoff is returned for a cutoff that cannot form a stable blocker.
var ErrInvalidCutoff = errors.New("filters: invalid DC blocker cutoff")

// DCBlocker removes the DC component (LO leakage, I/Q offset) from complex
// samples with a one-pole high-pass filter:
//
//	y[n] = x[n] - x[n-1] + R * y[n-1]
//
// I and Q are filtered together by running the recurrence on complex values.
//
// References:
//   - Julius O. Smith III, "Introduction to Digital Filters with Audio Applications"
//     https://ccrma.stanford.edu/~jos/filters/DC_Blocker.html
//
// A DCBlocker carries state between calls and is not safe for concurrent use.
type DCBlocker struct {
	poleLocation float64 // R parameter (0 < R < 1)

	x1 complex128 // x[n-1]
	y1 complex128 // y[n-1]
}

// NewDCBlocker creates a blocker with the given -3dB cutoff in Hz.
// The pole location uses the small angle approximation R = 1 - 2*pi*fc/fs,
// valid for fc << fs.
func NewDCBlocker(sampleRate int, cutoffFreq float64) (*DCBlocker, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %d", ErrInvalidCutoff, sampleRate)
	}
	if !(cutoffFreq > 0) || math.IsInf(cutoffFreq, 0) {
		return nil, fmt.Errorf("%w: %v Hz", ErrInvalidCutoff, cutoffFreq)
	}

	r := 1.0 - 2.0*math.Pi*cutoffFreq/float64(sampleRate)
	if r <= 0 || r >= 1 {
		return nil, fmt.Errorf("%w: %v Hz at %d Hz gives pole %v", ErrInvalidCutoff, cutoffFreq, sampleRate, r)
	}
	return &DCBlocker{poleLocation: r}, nil
}

// NewDCBlockerWithPole creates a blocker with an explicit pole location.
//   - 0.99: aggressive blocking
//   - 0.995: standard
//   - 0.999: conservative
func NewDCBlockerWithPole(poleLocation float64) (*DCBlocker, error) {
	if !(poleLocation > 0 && poleLocation < 1) {
		return nil, fmt.Errorf("%w: pole %v", ErrInvalidCutoff, poleLocation)
	}
	return &DCBlocker{poleLocation: poleLocation}, nil
}

// Process filters one sample
func (dc *DCBlocker) Process(x complex128) complex128 {
	y := x - dc.x1 + complex(dc.poleLocation, 0)*dc.y1
	dc.x1 = x
	dc.y1 = y
	return y
}

// ProcessBuffer filters a buffer into a new slice, continuing from the
// state left by earlier calls.
func (dc *DCBlocker) ProcessBuffer(input []complex128) []complex128 {
	output := make([]complex128, len(input))
	for i, x := range input {
		output[i] = dc.Process(x)
	}
	return output
}

// Reset clears the filter state. Call it between discontinuous captures.
func (dc *DCBlocker) Reset() {
	dc.x1 = 0
	dc.y1 = 0
}

// PoleLocation returns R
func (dc *DCBlocker) PoleLocation() float64 {
	return dc.poleLocation
}

// CutoffFrequency returns the approximate -3dB cutoff, (1-R)*fs/(2*pi).
func (dc *DCBlocker) CutoffFrequency(sampleRate int) float64 {
	if sampleRate <= 0 {
		return 0
	}
	return (1.0 - dc.poleLocation) * float64(sampleRate) / (2.0 * math.Pi)
}

// FrequencyResponse returns the magnitude (linear) and phase (radians) at
// frequency Hz: H(e^jw) = (1 - e^-jw) / (1 - R*e^-jw).
func (dc *DCBlocker) FrequencyResponse(frequency float64, sampleRate int) (magnitude, phase float64) {
	w := 2.0 * math.Pi * frequency / float64(sampleRate)

	cosW := math.Cos(w)
	sinW := math.Sin(w)

	numReal := 1.0 - cosW
	numImag := sinW

	denReal := 1.0 - dc.poleLocation*cosW
	denImag := dc.poleLocation * sinW

	denMagSq := denReal*denReal + denImag*denImag

	hReal := (numReal*denReal + numImag*denImag) / denMagSq
	hImag := (numImag*denReal - numReal*denImag) / denMagSq

	return math.Hypot(hReal, hImag), math.Atan2(hImag, hReal)
}
