package signal

import (
	"encoding/binary"
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/sonido-iq/algorithms/transform"
	"github.com/RyanBlaney/sonido-iq/transcode"
)

func TestFactoriesRejectSampleRate(t *testing.T) {
	_, err := NewTimeDomain([]complex128{1}, 0)
	assert.ErrorIs(t, err, ErrInvalidSampleRate)

	_, err = NewFrequencyDomain([]complex128{1}, -4)
	assert.ErrorIs(t, err, ErrInvalidSampleRate)

	_, err = NewTimeDomainFromCSV("1,0", 0)
	assert.ErrorIs(t, err, ErrInvalidSampleRate)

	_, err = NewTimeDomainFromBytesBigEndian([]byte{60, 0, 0, 0}, transcode.Float16, 0)
	assert.ErrorIs(t, err, ErrInvalidSampleRate)
}

func TestValueSemantics(t *testing.T) {
	samples := []complex128{1, 2, 3}
	td, err := NewTimeDomain(samples, 10)
	require.NoError(t, err)

	samples[0] = 99
	assert.Equal(t, complex128(1), td.At(0))

	out := td.Samples()
	out[1] = 99
	assert.Equal(t, complex128(2), td.At(1))

	assert.Equal(t, 3, td.Len())
	assert.Equal(t, 10, td.SampleRate())
	assert.Equal(t, Time, td.Domain())
}

func TestFromBytes(t *testing.T) {
	td, err := NewTimeDomainFromBytesBigEndian([]byte{60, 0, 0, 0}, transcode.Float16, 1)
	require.NoError(t, err)
	assert.Equal(t, []complex128{1}, td.Samples())

	td, err = NewTimeDomainFromBytes([]byte{0, 0, 128, 63, 0, 0, 0, 192}, transcode.Float32, binary.LittleEndian, 8)
	require.NoError(t, err)
	assert.Equal(t, []complex128{1 - 2i}, td.Samples())

	_, err = NewTimeDomainFromBytesBigEndian(make([]byte, 12), transcode.Float32, 8)
	assert.ErrorIs(t, err, transcode.ErrFormatMismatch)
}

func TestFromCSV(t *testing.T) {
	td, err := NewTimeDomainFromCSV("1,0", 1)
	require.NoError(t, err)
	assert.Equal(t, []complex128{1}, td.Samples())

	_, err = NewTimeDomainFromCSV("1,0,2", 1)
	assert.ErrorIs(t, err, transcode.ErrMalformedInput)
}

func TestDomainRoundTrip(t *testing.T) {
	samples := []complex128{0.3 - 0.1i, -1.2, 0.5i, 2 + 2i, -0.7 + 0.4i, 0.01}
	for _, name := range []string{transform.KernelGoDSP, transform.KernelGonum} {
		kernel, err := transform.KernelByName(name)
		require.NoError(t, err)
		engine := transform.NewEngine(kernel)

		td, err := NewTimeDomain(samples, 1000)
		require.NoError(t, err)

		fd := td.ToFrequencyDomainWith(engine)
		assert.Equal(t, Frequency, fd.Domain())
		assert.Equal(t, 1000, fd.SampleRate())
		assert.Equal(t, len(samples), fd.Len())

		back := fd.ToTimeDomainWith(engine)
		assert.Equal(t, 1000, back.SampleRate())
		for i, want := range samples {
			assert.InDelta(t, 0, cmplx.Abs(want-back.At(i)), 1e-9, "%s sample %d", name, i)
		}
	}
}

func TestConversionLeavesSourceUntouched(t *testing.T) {
	td, err := NewTimeDomain([]complex128{1, 2, 3, 4}, 4)
	require.NoError(t, err)

	fd := td.ToFrequencyDomain()
	assert.Equal(t, []complex128{1, 2, 3, 4}, td.Samples())

	before := fd.Samples()
	fd.ToTimeDomain()
	assert.Equal(t, before, fd.Samples())
}

func TestDCBinAtCenter(t *testing.T) {
	td, err := NewTimeDomain([]complex128{2, 2, 2, 2}, 4)
	require.NoError(t, err)

	fd := td.ToFrequencyDomain()
	assert.InDelta(t, 2, real(fd.At(2)), 1e-12)
	assert.Equal(t, []float64{-2, -1, 0, 1}, fd.BinFrequencies())
	assert.Equal(t, 2, fd.Shape().PeakBin)
	assert.InDelta(t, 0, fd.Shape().Centroid, 1e-9)
}

func TestPowerHelpers(t *testing.T) {
	td, err := NewTimeDomain([]complex128{3 + 4i, 0}, 2)
	require.NoError(t, err)

	assert.Equal(t, []float64{5, 0}, td.Magnitude())
	assert.InDeltaSlice(t, []float64{0.5, 0}, td.Power(50), 1e-12)

	dbm := td.PowerDbm(50)
	assert.InDelta(t, 10*math.Log10(500), dbm[0], 1e-9)
	assert.True(t, math.IsInf(dbm[1], -1))

	assert.InDelta(t, 10*math.Log10(500), td.SumPowerDbm(50), 1e-9)
	assert.InDelta(t, 10*math.Log10(250), td.AveragePowerDbm(50), 1e-9)
}

func TestAveragePowerDbmBetween(t *testing.T) {
	td, err := NewTimeDomain([]complex128{1, 1, 2, 2, 3 + 4i}, 4)
	require.NoError(t, err)

	assert.InDelta(t, 10*math.Log10(80), td.AveragePowerDbmBetween(2, 4, 50), 1e-9)
	assert.InDelta(t, td.Slice(1, 5).AveragePowerDbm(50), td.AveragePowerDbmBetween(1, 5, 50), 1e-12)
	assert.True(t, math.IsNaN(td.AveragePowerDbmBetween(3, 3, 50)))
	assert.Panics(t, func() { td.AveragePowerDbmBetween(4, 6, 50) })
}

func TestCorrelationTo(t *testing.T) {
	a, err := NewTimeDomain([]complex128{1, 2, 3, 4}, 4)
	require.NoError(t, err)
	b, err := NewTimeDomain([]complex128{2, 4, 6, 8}, 4)
	require.NoError(t, err)

	r, err := a.CorrelationTo(b)
	require.NoError(t, err)
	assert.InDelta(t, 1, real(r), 1e-12)
	assert.InDelta(t, 0, imag(r), 1e-12)

	short, err := NewTimeDomain([]complex128{1}, 4)
	require.NoError(t, err)
	_, err = a.CorrelationTo(short)
	assert.Error(t, err)
}

func TestSliceCopies(t *testing.T) {
	td, err := NewTimeDomain([]complex128{1, 2, 3, 4}, 4)
	require.NoError(t, err)

	part := td.Slice(1, 3)
	assert.Equal(t, []complex128{2, 3}, part.Samples())
	assert.Equal(t, 4, part.SampleRate())

	empty := td.Slice(2, 2)
	assert.Equal(t, 0, empty.Len())
}

func TestDomainString(t *testing.T) {
	assert.Equal(t, "time", Time.String())
	assert.Equal(t, "frequency", Frequency.String())
	assert.Equal(t, "Domain(7)", Domain(7).String())
}
