package spectral

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinFrequencies(t *testing.T) {
	assert.Equal(t, []float64{-2, -1, 0, 1}, BinFrequencies(4, 4))
	assert.Equal(t, []float64{-2, -1.5, -1, -0.5, 0, 0.5, 1, 1.5}, BinFrequencies(8, 4))
	assert.Equal(t, 0.5, BinWidth(8, 4))
	assert.Equal(t, 0.0, BinWidth(0, 4))
}

func TestSubsetBounds(t *testing.T) {
	tests := []struct {
		name      string
		n, sr     int
		freqRange int64
		low, high int
	}{
		{"four bins", 4, 4, 2, 1, 3},
		{"six bins", 6, 4, 2, 2, 4},
		{"eight bins", 8, 4, 2, 2, 6},
		{"full band", 4, 4, 4, 0, 3},
		{"odd half range truncates", 8, 4, 3, 2, 6},
		{"dc only", 4, 4, 0, 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			low, high, err := SubsetBounds(tt.n, tt.sr, tt.freqRange)
			require.NoError(t, err)
			assert.Equal(t, tt.low, low)
			assert.Equal(t, tt.high, high)
		})
	}
}

func TestSubsetBoundsErrors(t *testing.T) {
	_, _, err := SubsetBounds(4, 4, 10)
	assert.True(t, errors.Is(err, ErrInvalidRange))

	_, _, err = SubsetBounds(4, 4, -1)
	assert.True(t, errors.Is(err, ErrInvalidRange))

	// odd length never has a bin exactly at 0 Hz
	_, _, err = SubsetBounds(3, 3, 0)
	assert.True(t, errors.Is(err, ErrInvalidRange))
}

func TestFilterBounds(t *testing.T) {
	tests := []struct {
		name      string
		n, sr     int
		freqRange int64
		low, high int
	}{
		{"four bins", 4, 4, 2, 1, 3},
		{"six bins", 6, 4, 2, 2, 4},
		{"eight bins", 8, 4, 2, 2, 6},
		{"odd sample count rounds up", 4, 4, 1, 1, 3},
		{"zero range keeps everything", 4, 4, 0, 0, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			low, high, err := FilterBounds(tt.n, tt.sr, tt.freqRange)
			require.NoError(t, err)
			assert.Equal(t, tt.low, low)
			assert.Equal(t, tt.high, high)
		})
	}
}

func TestFilterBoundsRejectsWideRange(t *testing.T) {
	_, _, err := FilterBounds(4, 4, 5)
	assert.ErrorIs(t, err, ErrInvalidRange)
}
