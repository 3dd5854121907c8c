package transcode

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/x448/float16"
)

var (
	// ErrFormatMismatch is returned when a byte buffer cannot be split into
	// whole I/Q pairs of the requested format.
	ErrFormatMismatch = errors.New("transcode: IQ byte array and format do not match")

	// ErrUnsupportedFormat is returned for unknown binary sample formats.
	ErrUnsupportedFormat = errors.New("transcode: unsupported binary IQ format")

	// ErrMalformedInput is returned for text input that is not a list of I/Q pairs.
	ErrMalformedInput = errors.New("transcode: malformed IQ input")
)

// BinaryIQFormat is the binary encoding of one I or Q component.
type BinaryIQFormat int

const (
	Float16 BinaryIQFormat = iota + 1
	Float32
	Float64
)

// ByteLength returns the width in bytes of one component, or 0 when unknown.
func (f BinaryIQFormat) ByteLength() int {
	switch f {
	case Float16:
		return 2
	case Float32:
		return 4
	case Float64:
		return 8
	default:
		return 0
	}
}

func (f BinaryIQFormat) String() string {
	switch f {
	case Float16:
		return "float16"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return fmt.Sprintf("BinaryIQFormat(%d)", int(f))
	}
}

// ParseBinaryIQFormat maps "float16"/"f16", "float32"/"f32" and
// "float64"/"f64" to a format.
func ParseBinaryIQFormat(name string) (BinaryIQFormat, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "float16", "f16", "half":
		return Float16, nil
	case "float32", "f32", "float":
		return Float32, nil
	case "float64", "f64", "double":
		return Float64, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// ParseByteOrder maps "big"/"be" and "little"/"le" to a byte order.
func ParseByteOrder(name string) (binary.ByteOrder, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "big", "be", "big-endian", "bigendian":
		return binary.BigEndian, nil
	case "little", "le", "little-endian", "littleendian":
		return binary.LittleEndian, nil
	default:
		return nil, fmt.Errorf("transcode: unknown byte order %q", name)
	}
}

// DecodeIQ converts interleaved I/Q components into complex samples.
func DecodeIQ(data []byte, format BinaryIQFormat, order binary.ByteOrder) ([]complex128, error) {
	width := format.ByteLength()
	if width == 0 {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}
	if order == nil {
		order = binary.BigEndian
	}

	pair := 2 * width
	if len(data)%pair != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a multiple of %d (%v I/Q pair)",
			ErrFormatMismatch, len(data), pair, format)
	}

	samples := make([]complex128, len(data)/pair)
	for i := range samples {
		off := i * pair
		samples[i] = complex(
			decodeComponent(data[off:off+width], format, order),
			decodeComponent(data[off+width:off+pair], format, order),
		)
	}
	return samples, nil
}

// DecodeIQBigEndian decodes with big-endian byte order, the historical default
// for capture files without an explicit order.
func DecodeIQBigEndian(data []byte, format BinaryIQFormat) ([]complex128, error) {
	return DecodeIQ(data, format, binary.BigEndian)
}

func decodeComponent(b []byte, format BinaryIQFormat, order binary.ByteOrder) float64 {
	switch format {
	case Float16:
		return float64(float16.Frombits(order.Uint16(b)).Float32())
	case Float32:
		return float64(math.Float32frombits(order.Uint32(b)))
	default:
		return math.Float64frombits(order.Uint64(b))
	}
}

// EncodeIQ is the inverse of DecodeIQ. Float16 encoding rounds to nearest even.
func EncodeIQ(samples []complex128, format BinaryIQFormat, order binary.ByteOrder) ([]byte, error) {
	width := format.ByteLength()
	if width == 0 {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}
	if order == nil {
		order = binary.BigEndian
	}

	out := make([]byte, len(samples)*2*width)
	for i, s := range samples {
		off := i * 2 * width
		encodeComponent(out[off:off+width], real(s), format, order)
		encodeComponent(out[off+width:off+2*width], imag(s), format, order)
	}
	return out, nil
}

func encodeComponent(b []byte, v float64, format BinaryIQFormat, order binary.ByteOrder) {
	switch format {
	case Float16:
		order.PutUint16(b, float16.Fromfloat32(float32(v)).Bits())
	case Float32:
		order.PutUint32(b, math.Float32bits(float32(v)))
	default:
		order.PutUint64(b, math.Float64bits(v))
	}
}
