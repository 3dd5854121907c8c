package spectral

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPowerSpectrum(t *testing.T) {
	assert.Equal(t, []float64{25, 1}, PowerSpectrum([]complex128{3 + 4i, 1i}))
	assert.Empty(t, PowerSpectrum(nil))

	logPower := LogPowerSpectrum([]complex128{10, 0}, DefaultFloorDB)
	assert.InDelta(t, 20, logPower[0], 1e-12)
	assert.InDelta(t, DefaultFloorDB, logPower[1], 1e-9)
}

func TestAnalyzeShapeSingleCarrier(t *testing.T) {
	bins := make([]complex128, 8)
	bins[6] = 1 - 1i

	shape := AnalyzeShape(bins, 8)
	assert.Equal(t, 6, shape.PeakBin)
	assert.Equal(t, 2.0, shape.PeakFrequency)
	assert.InDelta(t, 2, shape.Centroid, 1e-12)
	assert.InDelta(t, 0, shape.Bandwidth, 1e-12)
	assert.Less(t, shape.Flatness, 1e-6)
}

func TestAnalyzeShapeFlatSpectrum(t *testing.T) {
	bins := []complex128{1, 1, 1, 1, 1, 1, 1, 1}

	shape := AnalyzeShape(bins, 8)
	assert.InDelta(t, -0.5, shape.Centroid, 1e-12)
	assert.InDelta(t, math.Sqrt(5.25), shape.Bandwidth, 1e-12)
	assert.InDelta(t, 1, shape.Flatness, 1e-12)
}

func TestAnalyzeShapeSymmetricCarriers(t *testing.T) {
	bins := []complex128{0, 2, 0, 2i}

	shape := AnalyzeShape(bins, 4)
	assert.InDelta(t, 0, shape.Centroid, 1e-12)
	assert.InDelta(t, 1, shape.Bandwidth, 1e-12)

	shape = AnalyzeShapeAt([]complex128{1, 0, 1}, []float64{-1, 0, 1})
	assert.InDelta(t, 0, shape.Centroid, 1e-12)
	assert.InDelta(t, 1, shape.Bandwidth, 1e-12)
}

func TestAnalyzeShapeEmpty(t *testing.T) {
	assert.Equal(t, Shape{PeakBin: -1}, AnalyzeShape(nil, 8))
	assert.Equal(t, Shape{PeakBin: -1}, AnalyzeShape(make([]complex128, 4), 8))
	assert.Equal(t, Shape{PeakBin: -1}, AnalyzeShapeAt([]complex128{1}, []float64{0, 1}))
	assert.Equal(t, 0.0, Flatness(nil))
}
