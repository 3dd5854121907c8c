package transform

import (
	"gonum.org/v1/gonum/cmplxs"
)

// Engine converts sample sequences between the time and frequency domain.
//
// The frequency-domain layout is centered: the raw DFT output is rotated so
// bin 0 (DC) sits at index N/2, and every bin is divided by N. Inverse undoes
// both steps so Inverse(Forward(x)) reproduces x up to rounding.
type Engine struct {
	kernel Kernel
}

// NewEngine creates an engine on top of kernel. A nil kernel selects the
// go-dsp kernel.
func NewEngine(kernel Kernel) *Engine {
	if kernel == nil {
		kernel = NewGoDSPKernel()
	}
	return &Engine{kernel: kernel}
}

var defaultEngine = NewEngine(nil)

// Default returns the shared go-dsp backed engine. It holds no mutable state.
func Default() *Engine {
	return defaultEngine
}

// Kernel returns the numeric kernel used by the engine
func (e *Engine) Kernel() Kernel {
	return e.kernel
}

// Forward converts time-domain samples into a centered, 1/N-normalized
// spectrum of the same length. The input is never modified.
//
// An empty input has no defined spectrum; an empty slice is returned.
func (e *Engine) Forward(samples []complex128) []complex128 {
	n := len(samples)
	if n == 0 {
		return []complex128{}
	}

	out := Shift(e.kernel.Forward(samples))
	cmplxs.Scale(complex(1/float64(n), 0), out)
	return out
}

// Inverse converts a centered spectrum produced by Forward back into
// time-domain samples of the same length. The input is never modified.
func (e *Engine) Inverse(spectrum []complex128) []complex128 {
	n := len(spectrum)
	if n == 0 {
		return []complex128{}
	}

	out := e.kernel.Inverse(InverseShift(spectrum))
	cmplxs.Scale(complex(float64(n), 0), out)
	return out
}

// Shift rotates x right by len(x)/2 so index 0 lands at len(x)/2.
// It returns a new slice.
func Shift(x []complex128) []complex128 {
	return rotate(x, len(x)/2)
}

// InverseShift rotates x right by (len(x)+1)/2, undoing Shift for both even
// and odd lengths. It returns a new slice.
func InverseShift(x []complex128) []complex128 {
	return rotate(x, (len(x)+1)/2)
}

// rotate returns a copy of x circularly rotated right by k.
func rotate(x []complex128, k int) []complex128 {
	n := len(x)
	out := make([]complex128, n)
	if n == 0 {
		return out
	}
	k %= n
	copy(out[k:], x[:n-k])
	copy(out[:k], x[n-k:])
	return out
}
