package spectral

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidRange is returned when a requested frequency span is wider than
// the sampled bandwidth or selects no bins.
var ErrInvalidRange = errors.New("spectral: invalid frequency range")

// BinFrequencies returns the center frequency in Hz of every bin of an
// n-length centered spectrum sampled at sampleRate: (i - n/2) * sampleRate / n.
func BinFrequencies(n, sampleRate int) []float64 {
	freqs := make([]float64, n)
	for i := range freqs {
		freqs[i] = binFrequency(i, n, sampleRate)
	}
	return freqs
}

func binFrequency(i, n, sampleRate int) float64 {
	return (float64(i) - float64(n)/2) * float64(sampleRate) / float64(n)
}

// BinWidth returns the spacing between adjacent bins in Hz.
func BinWidth(n, sampleRate int) float64 {
	if n == 0 {
		return 0
	}
	return float64(sampleRate) / float64(n)
}

func checkRange(sampleRate int, frequencyRange int64) error {
	if frequencyRange > int64(sampleRate) {
		return fmt.Errorf("%w: requested %d Hz exceeds sample rate %d Hz", ErrInvalidRange, frequencyRange, sampleRate)
	}
	if frequencyRange < 0 {
		return fmt.Errorf("%w: negative range %d Hz", ErrInvalidRange, frequencyRange)
	}
	return nil
}

// SubsetBounds returns the first and last bin (both inclusive) whose frequency
// f satisfies -frequencyRange/2 <= f <= frequencyRange/2. The half range uses
// integer division.
func SubsetBounds(n, sampleRate int, frequencyRange int64) (low, high int, err error) {
	if err := checkRange(sampleRate, frequencyRange); err != nil {
		return 0, 0, err
	}

	half := float64(frequencyRange / 2)
	low, high = -1, -1
	for i := 0; i < n; i++ {
		f := binFrequency(i, n, sampleRate)
		if f < -half || f > half {
			continue
		}
		if low < 0 {
			low = i
		}
		high = i
	}

	if low < 0 {
		return 0, 0, fmt.Errorf("%w: %d Hz selects no bins of %d at %d Hz", ErrInvalidRange, frequencyRange, n, sampleRate)
	}
	return low, high, nil
}

// FilterBounds returns the half-open pass window [low, high) used by the
// zero-fill filter. The window is derived from a bin count rather than from
// bin frequencies:
//
//	samples = floor(frequencyRange / (sampleRate / n))
//	low     = ceil(samples / 2)
//	high    = n - ceil(samples / 2)
//
// This intentionally differs from SubsetBounds at the edges.
func FilterBounds(n, sampleRate int, frequencyRange int64) (low, high int, err error) {
	if err := checkRange(sampleRate, frequencyRange); err != nil {
		return 0, 0, err
	}

	samples := int(float64(frequencyRange) / (float64(sampleRate) / float64(n)))
	edge := int(math.Ceil(float64(samples) / 2))
	return edge, n - edge, nil
}
