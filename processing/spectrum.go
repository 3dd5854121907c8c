package processing

import (
	"github.com/RyanBlaney/sonido-iq/algorithms/spectral"
	"github.com/RyanBlaney/sonido-iq/logging"
	"github.com/RyanBlaney/sonido-iq/signal"
)

// Subset keeps the bins within ±frequencyRange/2 Hz of DC.
func (p *Processor) Subset(fd *signal.FrequencyDomain, frequencyRange int64) (*signal.FrequencyDomain, error) {
	logger := p.log().WithFields(logging.Fields{
		"function":        "Subset",
		"bins":            fd.Len(),
		"frequency_range": frequencyRange,
	})

	low, high, err := spectral.SubsetBounds(fd.Len(), fd.SampleRate(), frequencyRange)
	if err != nil {
		logger.Debug("Rejected subset range", logging.Fields{"error": err.Error()})
		return nil, err
	}

	logger.Debug("Subsetting spectrum", logging.Fields{"low": low, "high": high})
	return fd.Slice(low, high), nil
}

// FilterSpectrum zeroes every bin outside the pass window of frequencyRange.
// The result has the same length as fd.
func (p *Processor) FilterSpectrum(fd *signal.FrequencyDomain, frequencyRange int64) (*signal.FrequencyDomain, error) {
	logger := p.log().WithFields(logging.Fields{
		"function":        "FilterSpectrum",
		"bins":            fd.Len(),
		"frequency_range": frequencyRange,
	})

	low, high, err := spectral.FilterBounds(fd.Len(), fd.SampleRate(), frequencyRange)
	if err != nil {
		logger.Debug("Rejected filter range", logging.Fields{"error": err.Error()})
		return nil, err
	}

	bins := fd.Samples()
	for i := range bins {
		if i < low || i >= high {
			bins[i] = 0
		}
	}

	logger.Debug("Filtered spectrum", logging.Fields{"low": low, "high": high})
	return fd.FromBins(bins), nil
}

// FilterReplaceWithZero filters the spectrum and returns the time-domain result.
func (p *Processor) FilterReplaceWithZero(fd *signal.FrequencyDomain, frequencyRange int64) (*signal.TimeDomain, error) {
	filtered, err := p.FilterSpectrum(fd, frequencyRange)
	if err != nil {
		return nil, err
	}
	return filtered.ToTimeDomainWith(p.engine), nil
}

// FilterTimeDomainReplaceWithZero transforms td, filters it and transforms back.
func (p *Processor) FilterTimeDomainReplaceWithZero(td *signal.TimeDomain, frequencyRange int64) (*signal.TimeDomain, error) {
	return p.FilterReplaceWithZero(td.ToFrequencyDomainWith(p.engine), frequencyRange)
}

// Subset runs Processor.Subset with the default engine.
func Subset(fd *signal.FrequencyDomain, frequencyRange int64) (*signal.FrequencyDomain, error) {
	return defaultProcessor.Subset(fd, frequencyRange)
}

// FilterSpectrum runs Processor.FilterSpectrum with the default engine.
func FilterSpectrum(fd *signal.FrequencyDomain, frequencyRange int64) (*signal.FrequencyDomain, error) {
	return defaultProcessor.FilterSpectrum(fd, frequencyRange)
}

func FilterReplaceWithZero(fd *signal.FrequencyDomain, frequencyRange int64) (*signal.TimeDomain, error) {
	return defaultProcessor.FilterReplaceWithZero(fd, frequencyRange)
}

func FilterTimeDomainReplaceWithZero(td *signal.TimeDomain, frequencyRange int64) (*signal.TimeDomain, error) {
	return defaultProcessor.FilterTimeDomainReplaceWithZero(td, frequencyRange)
}
