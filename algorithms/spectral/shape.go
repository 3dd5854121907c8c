package spectral

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// DefaultFloorDB is the log power floor used when a bin holds no energy.
const DefaultFloorDB = -200.0

// PowerSpectrum returns |X[i]|^2 for every bin
func PowerSpectrum(bins []complex128) []float64 {
	power := make([]float64, len(bins))
	for i, b := range bins {
		power[i] = real(b)*real(b) + imag(b)*imag(b)
	}
	return power
}

// LogPowerSpectrum returns 10*log10(|X[i]|^2) in dB, clamped to floorDB
func LogPowerSpectrum(bins []complex128, floorDB float64) []float64 {
	floor := math.Pow(10, floorDB/10.0)
	logPower := PowerSpectrum(bins)
	for i, p := range logPower {
		if p < floor {
			p = floor
		}
		logPower[i] = 10 * math.Log10(p)
	}
	return logPower
}

// Shape summarizes where the energy of a centered spectrum sits.
type Shape struct {
	// Centroid is the power-weighted mean frequency in Hz. On a centered
	// spectrum it is signed, so it estimates the carrier offset from DC.
	Centroid float64 `json:"centroid" yaml:"centroid"`

	// Bandwidth is the power-weighted standard deviation around Centroid (RMS bandwidth).
	Bandwidth float64 `json:"bandwidth" yaml:"bandwidth"`

	// Flatness is the geometric over arithmetic mean of the power, in [0, 1].
	// Noise-like spectra approach 1; a single carrier approaches 0.
	Flatness float64 `json:"flatness" yaml:"flatness"`

	PeakBin       int     `json:"peak_bin" yaml:"peak_bin"`
	PeakFrequency float64 `json:"peak_frequency" yaml:"peak_frequency"`
}

// AnalyzeShape computes the Shape of a centered spectrum sampled at sampleRate.
// An empty or all-zero spectrum yields a zero Shape with PeakBin -1.
func AnalyzeShape(bins []complex128, sampleRate int) Shape {
	return AnalyzeShapeAt(bins, BinFrequencies(len(bins), sampleRate))
}

// AnalyzeShapeAt is AnalyzeShape with explicit bin frequencies, for subsets
// whose bins do not start at index 0 of the full spectrum.
func AnalyzeShapeAt(bins []complex128, freqs []float64) Shape {
	if len(bins) == 0 || len(bins) != len(freqs) {
		return Shape{PeakBin: -1}
	}

	power := PowerSpectrum(bins)
	if floats.Sum(power) == 0 {
		return Shape{PeakBin: -1}
	}

	centroid := Centroid(power, freqs)
	peak := floats.MaxIdx(power)
	return Shape{
		Centroid:      centroid,
		Bandwidth:     Bandwidth(power, freqs, centroid),
		Flatness:      Flatness(power),
		PeakBin:       peak,
		PeakFrequency: freqs[peak],
	}
}

// Centroid returns sum(f*p)/sum(p), or 0 when there is no power
func Centroid(power, freqs []float64) float64 {
	total := floats.Sum(power)
	if total == 0 {
		return 0
	}
	return floats.Dot(freqs, power) / total
}

// Bandwidth returns sqrt(sum((f-centroid)^2 * p) / sum(p))
func Bandwidth(power, freqs []float64, centroid float64) float64 {
	numerator := 0.0
	denominator := 0.0
	for i, p := range power {
		diff := freqs[i] - centroid
		numerator += diff * diff * p
		denominator += p
	}
	if denominator == 0 {
		return 0
	}
	return math.Sqrt(numerator / denominator)
}

// flatnessThreshold floors silent bins to avoid log(0)
const flatnessThreshold = 1e-20

// Flatness returns the spectral flatness (Wiener entropy) of a power spectrum.
func Flatness(power []float64) float64 {
	if len(power) == 0 {
		return 0
	}

	arithmeticMean := floats.Sum(power) / float64(len(power))
	if arithmeticMean <= flatnessThreshold {
		return 0
	}

	logSum := 0.0
	for _, p := range power {
		logSum += math.Log(math.Max(p, flatnessThreshold))
	}
	return math.Min(math.Exp(logSum/float64(len(power)))/arithmeticMean, 1)
}
