package transform

import (
	"fmt"
	"sync"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Kernel is the numeric complex FFT primitive the Engine orchestrates.
//
// Forward returns the unnormalized DFT of x. Inverse returns the inverse DFT
// including the 1/N factor. Neither may modify x.
type Kernel interface {
	Forward(x []complex128) []complex128
	Inverse(x []complex128) []complex128
}

// Kernel names accepted by KernelByName.
const (
	KernelGoDSP = "go-dsp"
	KernelGonum = "gonum"
)

// KernelByName returns the kernel registered under name.
func KernelByName(name string) (Kernel, error) {
	switch name {
	case "", KernelGoDSP:
		return NewGoDSPKernel(), nil
	case KernelGonum:
		return NewGonumKernel(), nil
	default:
		return nil, fmt.Errorf("transform: unknown kernel %q", name)
	}
}

// GoDSPKernel computes transforms with mjibson/go-dsp, which handles
// non-power-of-2 lengths through Bluestein's algorithm.
type GoDSPKernel struct{}

// NewGoDSPKernel creates a go-dsp backed kernel
func NewGoDSPKernel() *GoDSPKernel {
	return &GoDSPKernel{}
}

// Forward computes the DFT of x
func (k *GoDSPKernel) Forward(x []complex128) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}
	// go-dsp copies its input before transforming
	return fft.FFT(x)
}

// Inverse computes the normalized inverse DFT of x
func (k *GoDSPKernel) Inverse(x []complex128) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}
	return fft.IFFT(x)
}

// GonumKernel computes transforms with gonum's dsp/fourier package. Plans are
// cached per length and guarded by a mutex since CmplxFFT keeps work buffers.
type GonumKernel struct {
	mu    sync.Mutex
	plans map[int]*fourier.CmplxFFT
}

// NewGonumKernel creates a gonum backed kernel
func NewGonumKernel() *GonumKernel {
	return &GonumKernel{plans: make(map[int]*fourier.CmplxFFT)}
}

func (k *GonumKernel) plan(n int) *fourier.CmplxFFT {
	p, ok := k.plans[n]
	if !ok {
		p = fourier.NewCmplxFFT(n)
		k.plans[n] = p
	}
	return p
}

// Forward computes the DFT of x
func (k *GonumKernel) Forward(x []complex128) []complex128 {
	n := len(x)
	if n == 0 {
		return []complex128{}
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	return k.plan(n).Coefficients(nil, x)
}

// Inverse computes the normalized inverse DFT of x. gonum's Sequence is
// unnormalized so the 1/N factor is applied here.
func (k *GonumKernel) Inverse(x []complex128) []complex128 {
	n := len(x)
	if n == 0 {
		return []complex128{}
	}

	k.mu.Lock()
	out := k.plan(n).Sequence(nil, x)
	k.mu.Unlock()

	scale := complex(1/float64(n), 0)
	for i := range out {
		out[i] *= scale
	}
	return out
}
