package transcode

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeIQBigEndian(t *testing.T) {
	tests := []struct {
		name   string
		format BinaryIQFormat
		data   []byte
	}{
		{"float16", Float16, []byte{60, 0, 0, 0}},
		{"float32", Float32, []byte{63, 128, 0, 0, 0, 0, 0, 0}},
		{"float64", Float64, []byte{63, 240, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			samples, err := DecodeIQBigEndian(tt.data, tt.format)
			require.NoError(t, err)
			assert.Equal(t, []complex128{1}, samples)
		})
	}
}

func TestDecodeIQLittleEndian(t *testing.T) {
	data := []byte{0, 0, 128, 63, 0, 0, 0, 192}
	samples, err := DecodeIQ(data, Float32, binary.LittleEndian)
	require.NoError(t, err)
	assert.Equal(t, []complex128{1 - 2i}, samples)
}

func TestDecodeIQErrors(t *testing.T) {
	// three float32 values: whole values but not whole pairs
	_, err := DecodeIQBigEndian(make([]byte, 12), Float32)
	assert.ErrorIs(t, err, ErrFormatMismatch)

	// not a whole number of values
	_, err = DecodeIQBigEndian(make([]byte, 10), Float32)
	assert.ErrorIs(t, err, ErrFormatMismatch)

	_, err = DecodeIQBigEndian(make([]byte, 8), BinaryIQFormat(42))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestEncodeDecodeIQ(t *testing.T) {
	samples := []complex128{0.5 - 0.25i, -1 + 2i}
	for _, format := range []BinaryIQFormat{Float16, Float32, Float64} {
		data, err := EncodeIQ(samples, format, binary.LittleEndian)
		require.NoError(t, err)
		assert.Len(t, data, len(samples)*2*format.ByteLength())

		decoded, err := DecodeIQ(data, format, binary.LittleEndian)
		require.NoError(t, err)
		assert.Equal(t, samples, decoded, format.String())
	}
}

func TestParseBinaryIQFormat(t *testing.T) {
	f, err := ParseBinaryIQFormat("F32")
	require.NoError(t, err)
	assert.Equal(t, Float32, f)

	_, err = ParseBinaryIQFormat("int8")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	order, err := ParseByteOrder("le")
	require.NoError(t, err)
	assert.Equal(t, binary.LittleEndian, order)

	_, err = ParseByteOrder("middle")
	assert.Error(t, err)
}

func TestParseCSV(t *testing.T) {
	samples, err := ParseCSV("1,0")
	require.NoError(t, err)
	assert.Equal(t, []complex128{1}, samples)

	samples, err = ParseCSV(" -0.5, 1.25\n2,-3 \n")
	require.NoError(t, err)
	assert.Equal(t, []complex128{-0.5 + 1.25i, 2 - 3i}, samples)

	samples, err = ParseCSV("")
	require.NoError(t, err)
	assert.Empty(t, samples)
}

func TestParseCSVErrors(t *testing.T) {
	_, err := ParseCSV("1")
	assert.ErrorIs(t, err, ErrMalformedInput)

	_, err = ParseCSV("1,abc")
	assert.ErrorIs(t, err, ErrMalformedInput)

	_, err = ParseCSV("1,,2,3")
	assert.ErrorIs(t, err, ErrMalformedInput)
}

func TestEncodeCSVRoundTrip(t *testing.T) {
	samples := []complex128{0.1 + 0.2i, -3, 1e-9i}
	parsed, err := ParseCSV(EncodeCSV(samples))
	require.NoError(t, err)
	assert.Equal(t, samples, parsed)
}

func TestDecoderMaxSamples(t *testing.T) {
	data, err := EncodeIQ([]complex128{1, 2, 3}, Float32, binary.BigEndian)
	require.NoError(t, err)

	d := NewDecoder(&DecoderConfig{Format: Float32, MaxSamples: 2})
	samples, err := d.DecodeReader(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, []complex128{1, 2}, samples)
}

func TestDecoderMaxSamplesLargerThanCapture(t *testing.T) {
	data, err := EncodeIQ([]complex128{1, 2, 3}, Float64, binary.LittleEndian)
	require.NoError(t, err)

	// math.MaxInt/8 + 2 pairs of 16 bytes wraps to exactly one pair
	for _, limit := range []int{3, 4, math.MaxInt/8 + 2, math.MaxInt} {
		d := NewDecoder(&DecoderConfig{Format: Float64, ByteOrder: binary.LittleEndian, MaxSamples: limit})
		samples, err := d.DecodeBytes(data)
		require.NoError(t, err, "limit %d", limit)
		assert.Equal(t, []complex128{1, 2, 3}, samples, "limit %d", limit)
	}

	// a trailing partial pair past the limit is cut, not reported
	d := NewDecoder(&DecoderConfig{Format: Float64, ByteOrder: binary.LittleEndian, MaxSamples: 2})
	samples, err := d.DecodeBytes(append(data, 1, 2, 3))
	require.NoError(t, err)
	assert.Equal(t, []complex128{1, 2}, samples)

	d = NewDecoder(&DecoderConfig{Format: Float64, ByteOrder: binary.LittleEndian, MaxSamples: math.MaxInt})
	_, err = d.DecodeBytes(append(data, 1, 2, 3))
	assert.ErrorIs(t, err, ErrFormatMismatch)
}

func TestDecoderValidateConfig(t *testing.T) {
	d := NewDecoder(&DecoderConfig{Format: BinaryIQFormat(9)})
	_, err := d.DecodeBytes([]byte{0, 0})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	d = NewDecoder(nil)
	assert.Equal(t, Float32, d.Config().Format)
	assert.Equal(t, binary.BigEndian, d.Config().ByteOrder)
}

func TestDecoderDecodeFile(t *testing.T) {
	dir := t.TempDir()

	binPath := filepath.Join(dir, "capture.bin")
	data, err := EncodeIQ([]complex128{1 + 1i, -2}, Float64, binary.LittleEndian)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(binPath, data, 0o644))

	d := NewDecoder(&DecoderConfig{Format: Float64, ByteOrder: binary.LittleEndian})
	samples, err := d.DecodeFile(binPath)
	require.NoError(t, err)
	assert.Equal(t, []complex128{1 + 1i, -2}, samples)

	csvPath := filepath.Join(dir, "capture.CSV")
	require.NoError(t, os.WriteFile(csvPath, []byte("1,2,3,4"), 0o644))
	samples, err = d.DecodeFile(csvPath)
	require.NoError(t, err)
	assert.Equal(t, []complex128{1 + 2i, 3 + 4i}, samples)

	_, err = d.DecodeFile(filepath.Join(dir, "missing.bin"))
	assert.Error(t, err)
}
