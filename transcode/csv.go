package transcode

import (
	"fmt"
	"strconv"
	"strings"
)

// line breaks separate values like commas do
var lineBreaks = strings.NewReplacer("\r\n", ",", "\n", ",")

// ParseCSV parses comma separated values holding alternating real and
// imaginary parts: "re0,im0,re1,im1,...". Whitespace around values is ignored.
func ParseCSV(csv string) ([]complex128, error) {
	trimmed := strings.TrimSpace(csv)
	if trimmed == "" {
		return []complex128{}, nil
	}

	fields := strings.Split(lineBreaks.Replace(trimmed), ",")
	if len(fields)%2 != 0 {
		return nil, fmt.Errorf("%w: %d values do not form I and Q pairs", ErrMalformedInput, len(fields))
	}

	samples := make([]complex128, len(fields)/2)
	for i := range samples {
		re, err := strconv.ParseFloat(strings.TrimSpace(fields[2*i]), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: value %d: %v", ErrMalformedInput, 2*i, err)
		}
		im, err := strconv.ParseFloat(strings.TrimSpace(fields[2*i+1]), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: value %d: %v", ErrMalformedInput, 2*i+1, err)
		}
		samples[i] = complex(re, im)
	}
	return samples, nil
}

// EncodeCSV renders samples in the format read by ParseCSV.
func EncodeCSV(samples []complex128) string {
	var b strings.Builder
	for i, s := range samples {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(real(s), 'g', -1, 64))
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(imag(s), 'g', -1, 64))
	}
	return b.String()
}
