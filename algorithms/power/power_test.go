package power

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const resistance = 50.0

func TestScalarConversions(t *testing.T) {
	assert.Equal(t, 5.0, Magnitude(3+4i))
	assert.Equal(t, 0.5, MagnitudeToPower(5, resistance))
	assert.InDelta(t, 30.0, WattsToDbm(1), 1e-12)
	assert.InDelta(t, 0.0, WattsToDbm(0.001), 1e-12)
	assert.InDelta(t, 1.0, DbmToWatts(30), 1e-12)
	assert.InDelta(t, 0.02, DbmToWatts(WattsToDbm(0.02)), 1e-15)
}

func TestSequenceConversions(t *testing.T) {
	samples := []complex128{1, 3 + 4i}

	assert.Equal(t, []float64{1, 5}, Magnitudes(samples))
	assert.Equal(t, []float64{0.02, 0.5}, Powers(samples, resistance))

	dbm := PowersDbm(samples, resistance)
	assert.InDelta(t, 10*math.Log10(0.02/0.001), dbm[0], 1e-12)
	assert.InDelta(t, 10*math.Log10(0.5/0.001), dbm[1], 1e-12)
}

func TestAggregates(t *testing.T) {
	samples := []complex128{1, 3 + 4i}

	assert.InDelta(t, 0.52, SumPower(samples, resistance), 1e-12)
	assert.InDelta(t, 10*math.Log10(0.52/0.001), SumPowerDbm(samples, resistance), 1e-12)
	assert.InDelta(t, 10*math.Log10(0.26/0.001), AveragePowerDbm(samples, resistance), 1e-12)
}

func TestConstantSignalAveragePower(t *testing.T) {
	const re, im = -0.0044, 0.0021
	samples := make([]complex128, 1000)
	for i := range samples {
		samples[i] = complex(re, im)
	}

	want := 10 * math.Log10((re*re+im*im)/resistance/0.001)
	assert.InDelta(t, want, AveragePowerDbm(samples, resistance), 1e-10)
}

func TestEdgeCases(t *testing.T) {
	assert.True(t, math.IsNaN(AveragePowerDbm(nil, resistance)))
	assert.True(t, math.IsInf(PowersDbm([]complex128{0}, resistance)[0], -1))
	assert.Empty(t, Magnitudes(nil))
}
