package power

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/floats"
)

// MilliwattsPerWatt converts watts to the dBm reference
const MilliwattsPerWatt = 1000.0

// Magnitude returns |x|
func Magnitude(x complex128) float64 {
	return cmplx.Abs(x)
}

// MagnitudeToPower returns magnitude^2 / resistance in watts
func MagnitudeToPower(magnitude, resistance float64) float64 {
	return magnitude * magnitude / resistance
}

// WattsToDbm converts watts to dBm: 10*log10(W / 1 mW)
func WattsToDbm(watts float64) float64 {
	return 10 * math.Log10(watts*MilliwattsPerWatt)
}

// DbmToWatts converts dBm to watts
func DbmToWatts(dbm float64) float64 {
	return math.Pow(10, dbm/10) / MilliwattsPerWatt
}

// Magnitudes returns |x[i]| for every sample
func Magnitudes(samples []complex128) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = cmplx.Abs(s)
	}
	return out
}

// Powers returns the power in watts of every sample
func Powers(samples []complex128, resistance float64) []float64 {
	out := Magnitudes(samples)
	for i, m := range out {
		out[i] = MagnitudeToPower(m, resistance)
	}
	return out
}

// PowersDbm returns the power in dBm of every sample. Zero samples yield -Inf.
func PowersDbm(samples []complex128, resistance float64) []float64 {
	out := Powers(samples, resistance)
	for i, w := range out {
		out[i] = WattsToDbm(w)
	}
	return out
}

// SumPower returns the total power in watts
func SumPower(samples []complex128, resistance float64) float64 {
	return floats.Sum(Powers(samples, resistance))
}

// SumPowerDbm returns the total power in dBm
func SumPowerDbm(samples []complex128, resistance float64) float64 {
	return WattsToDbm(SumPower(samples, resistance))
}

// AveragePowerDbm returns the mean power in dBm. An empty sequence yields NaN.
func AveragePowerDbm(samples []complex128, resistance float64) float64 {
	if len(samples) == 0 {
		return math.NaN()
	}
	return WattsToDbm(SumPower(samples, resistance) / float64(len(samples)))
}
