package processing

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/RyanBlaney/sonido-iq/algorithms/temporal"
	"github.com/RyanBlaney/sonido-iq/logging"
	"github.com/RyanBlaney/sonido-iq/signal"
)

// Split cuts td into windows of interval seconds, one every period seconds,
// starting offset seconds in. Trailing partial windows are dropped.
func (p *Processor) Split(td *signal.TimeDomain, offset, interval, period float64) ([]*signal.TimeDomain, error) {
	windows, err := p.windows(td, "Split", offset, interval, period)
	if err != nil {
		return nil, err
	}

	out := make([]*signal.TimeDomain, len(windows))
	for i, w := range windows {
		out[i] = td.Slice(w.Start, w.End)
	}
	return out, nil
}

// SplitInterval splits td into back-to-back windows of interval seconds.
func (p *Processor) SplitInterval(td *signal.TimeDomain, interval float64) ([]*signal.TimeDomain, error) {
	return p.Split(td, 0, interval, interval)
}

// SplitOffsetInterval splits td into back-to-back windows after offset seconds.
func (p *Processor) SplitOffsetInterval(td *signal.TimeDomain, offset, interval float64) ([]*signal.TimeDomain, error) {
	return p.Split(td, offset, interval, interval)
}

// PowerForTimeInterval returns the average power in dBm of every window
// produced by Split.
func (p *Processor) PowerForTimeInterval(td *signal.TimeDomain, resistance, offset, interval, period float64) ([]float64, error) {
	windows, err := p.windows(td, "PowerForTimeInterval", offset, interval, period)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(windows))
	for i, w := range windows {
		out[i] = td.AveragePowerDbmBetween(w.Start, w.End, resistance)
	}
	return out, nil
}

// PowerForTimeIntervalOnly is PowerForTimeInterval with back-to-back windows.
func (p *Processor) PowerForTimeIntervalOnly(td *signal.TimeDomain, resistance, interval float64) ([]float64, error) {
	return p.PowerForTimeInterval(td, resistance, 0, interval, interval)
}

// PowerForTimeOffsetInterval is PowerForTimeInterval with back-to-back windows
// after offset seconds.
func (p *Processor) PowerForTimeOffsetInterval(td *signal.TimeDomain, resistance, offset, interval float64) ([]float64, error) {
	return p.PowerForTimeInterval(td, resistance, offset, interval, interval)
}

// PowerForTimeIntervalParallel computes the same values as
// PowerForTimeInterval using up to workers goroutines. workers <= 0 means
// runtime.GOMAXPROCS(0). Cancelling ctx stops scheduling new windows.
func (p *Processor) PowerForTimeIntervalParallel(ctx context.Context, td *signal.TimeDomain, resistance, offset, interval, period float64, workers int) ([]float64, error) {
	windows, err := p.windows(td, "PowerForTimeIntervalParallel", offset, interval, period)
	if err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	out := make([]float64, len(windows))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, w := range windows {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = td.AveragePowerDbmBetween(w.Start, w.End, resistance)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		p.log().Error(err, "Interval power cancelled")
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *Processor) windows(td *signal.TimeDomain, function string, offset, interval, period float64) ([]temporal.Window, error) {
	logger := p.log().WithFields(logging.Fields{
		"function":    function,
		"samples":     td.Len(),
		"sample_rate": td.SampleRate(),
	})

	windows, err := temporal.IntervalWindows(td.Len(), td.SampleRate(), offset, interval, period)
	if err != nil {
		logger.Debug("Rejected interval", logging.Fields{"error": err.Error()})
		return nil, err
	}

	logger.Debug("Computed interval windows", logging.Fields{"windows": len(windows)})
	return windows, nil
}

func Split(td *signal.TimeDomain, offset, interval, period float64) ([]*signal.TimeDomain, error) {
	return defaultProcessor.Split(td, offset, interval, period)
}

func SplitInterval(td *signal.TimeDomain, interval float64) ([]*signal.TimeDomain, error) {
	return defaultProcessor.SplitInterval(td, interval)
}

func SplitOffsetInterval(td *signal.TimeDomain, offset, interval float64) ([]*signal.TimeDomain, error) {
	return defaultProcessor.SplitOffsetInterval(td, offset, interval)
}

func PowerForTimeInterval(td *signal.TimeDomain, resistance, offset, interval, period float64) ([]float64, error) {
	return defaultProcessor.PowerForTimeInterval(td, resistance, offset, interval, period)
}

func PowerForTimeIntervalOnly(td *signal.TimeDomain, resistance, interval float64) ([]float64, error) {
	return defaultProcessor.PowerForTimeIntervalOnly(td, resistance, interval)
}

func PowerForTimeOffsetInterval(td *signal.TimeDomain, resistance, offset, interval float64) ([]float64, error) {
	return defaultProcessor.PowerForTimeOffsetInterval(td, resistance, offset, interval)
}

func PowerForTimeIntervalParallel(ctx context.Context, td *signal.TimeDomain, resistance, offset, interval, period float64, workers int) ([]float64, error) {
	return defaultProcessor.PowerForTimeIntervalParallel(ctx, td, resistance, offset, interval, period, workers)
}
