package processing

import (
	"github.com/RyanBlaney/sonido-iq/algorithms/transform"
	"github.com/RyanBlaney/sonido-iq/logging"
)

// Processor runs signal-level workflows on top of a transform engine.
// It holds no mutable state and may be used from multiple goroutines.
type Processor struct {
	engine *transform.Engine
	logger logging.Logger
}

// NewProcessor creates a processor that logs through the global logger.
// A nil engine selects transform.Default().
func NewProcessor(engine *transform.Engine) *Processor {
	return NewProcessorWithLogger(engine, nil)
}

// NewProcessorWithLogger creates a processor with its own logger.
func NewProcessorWithLogger(engine *transform.Engine, logger logging.Logger) *Processor {
	if engine == nil {
		engine = transform.Default()
	}
	if logger != nil {
		logger = logger.WithFields(logging.Fields{"component": "iq_processor"})
	}
	return &Processor{
		engine: engine,
		logger: logger,
	}
}

// Engine returns the transform engine used for domain conversions
func (p *Processor) Engine() *transform.Engine {
	return p.engine
}

// log resolves the global logger at call time so SetGlobalLogger also
// reaches the package-level helpers.
func (p *Processor) log() logging.Logger {
	if p.logger != nil {
		return p.logger
	}
	return logging.WithFields(logging.Fields{"component": "iq_processor"})
}

var defaultProcessor = NewProcessor(nil)
