package processing

import (
	"github.com/RyanBlaney/sonido-iq/algorithms/filters"
	"github.com/RyanBlaney/sonido-iq/logging"
	"github.com/RyanBlaney/sonido-iq/signal"
)

// RemoveDC runs td through a DC blocker with the given cutoff in Hz.
func (p *Processor) RemoveDC(td *signal.TimeDomain, cutoffFreq float64) (*signal.TimeDomain, error) {
	logger := p.log().WithFields(logging.Fields{
		"function": "RemoveDC",
		"samples":  td.Len(),
		"cutoff":   cutoffFreq,
	})

	dc, err := filters.NewDCBlocker(td.SampleRate(), cutoffFreq)
	if err != nil {
		logger.Debug("Rejected DC blocker cutoff", logging.Fields{"error": err.Error()})
		return nil, err
	}

	logger.Debug("Removing DC offset", logging.Fields{"pole": dc.PoleLocation()})
	return td.FromSamples(dc.ProcessBuffer(td.Samples())), nil
}

func RemoveDC(td *signal.TimeDomain, cutoffFreq float64) (*signal.TimeDomain, error) {
	return defaultProcessor.RemoveDC(td, cutoffFreq)
}
