package temporal

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInterval is returned for offset/interval/period combinations that
// cannot produce a well-formed window sequence.
var ErrInvalidInterval = errors.New("temporal: invalid interval")

// Window is a half-open sample index range [Start, End).
type Window struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of samples in the window
func (w Window) Len() int {
	return w.End - w.Start
}

// IntervalSamples holds the sample counts derived from seconds.
type IntervalSamples struct {
	Offset   int `json:"offset"`
	Interval int `json:"interval"`
	Period   int `json:"period"`
}

// ToSamples converts offset, interval and period in seconds to sample counts.
// The offset is rounded up so the first window never starts before the
// requested time; interval and period are truncated.
func ToSamples(sampleRate int, offset, interval, period float64) (IntervalSamples, error) {
	if sampleRate <= 0 {
		return IntervalSamples{}, fmt.Errorf("%w: sample rate must be positive: %d", ErrInvalidInterval, sampleRate)
	}
	if offset < 0 || math.IsNaN(offset) || math.IsInf(offset, 0) {
		return IntervalSamples{}, fmt.Errorf("%w: offset must be finite and >= 0: %v", ErrInvalidInterval, offset)
	}
	if math.IsNaN(interval) || math.IsNaN(period) || math.IsInf(interval, 0) || math.IsInf(period, 0) {
		return IntervalSamples{}, fmt.Errorf("%w: interval %v and period %v must be finite", ErrInvalidInterval, interval, period)
	}
	if period < interval {
		return IntervalSamples{}, fmt.Errorf("%w: period %v is shorter than interval %v", ErrInvalidInterval, period, interval)
	}

	sr := float64(sampleRate)
	s := IntervalSamples{
		Offset:   toCount(math.Ceil(sr * offset)),
		Interval: toCount(sr * interval),
		Period:   toCount(sr * period),
	}

	if s.Interval <= 0 {
		return IntervalSamples{}, fmt.Errorf("%w: interval %v s is shorter than one sample at %d Hz", ErrInvalidInterval, interval, sampleRate)
	}
	if s.Period <= 0 {
		return IntervalSamples{}, fmt.Errorf("%w: period %v s is shorter than one sample at %d Hz", ErrInvalidInterval, period, sampleRate)
	}
	return s, nil
}

// toCount truncates a sample count into [0, math.MaxInt], saturating instead
// of wrapping. A saturated count lies past the end of any capture.
func toCount(v float64) int {
	if v <= 0 {
		return 0
	}
	if v >= float64(math.MaxInt) {
		return math.MaxInt
	}
	return int(v)
}

// IntervalWindows returns the full windows of interval seconds, starting at
// offset and repeating every period, that fit in totalSamples samples.
// A trailing partial window is dropped. An empty result is valid.
func IntervalWindows(totalSamples, sampleRate int, offset, interval, period float64) ([]Window, error) {
	s, err := ToSamples(sampleRate, offset, interval, period)
	if err != nil {
		return nil, err
	}
	return s.Windows(totalSamples), nil
}

// Windows lays the sample counts over totalSamples samples.
func (s IntervalSamples) Windows(totalSamples int) []Window {
	if s.Interval <= 0 || s.Period <= 0 {
		return nil
	}

	windows := []Window{}
	// compare against the remaining space so saturated counts cannot overflow
	for start := s.Offset; start >= 0 && s.Interval <= totalSamples-start; start += s.Period {
		windows = append(windows, Window{Start: start, End: start + s.Interval})
		if s.Period > totalSamples-start {
			break
		}
	}
	return windows
}
