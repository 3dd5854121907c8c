package stats

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/cmplxs"
)

// ErrSizeMismatch is returned when paired sequences differ in length.
var ErrSizeMismatch = errors.New("stats: sequences must be of equal size")

func checkSize(a, b int) error {
	if a != b {
		return fmt.Errorf("%w: %d != %d", ErrSizeMismatch, a, b)
	}
	return nil
}

// Sum returns the sum of all samples
func Sum(x []complex128) complex128 {
	return cmplxs.Sum(x)
}

// Mean returns the arithmetic mean. The mean of an empty sequence is NaN.
func Mean(x []complex128) complex128 {
	if len(x) == 0 {
		return cmplx.NaN()
	}
	return Sum(x) / complex(float64(len(x)), 0)
}

// Variance returns the sample variance sum(|x - mean|^2) / (N - 1).
func Variance(x []complex128) float64 {
	mean := Mean(x)
	sum := 0.0
	for _, v := range x {
		d := v - mean
		sum += real(d)*real(d) + imag(d)*imag(d)
	}
	return sum / float64(len(x)-1)
}

// StdDev returns the square root of Variance
func StdDev(x []complex128) float64 {
	return math.Sqrt(Variance(x))
}

// Covariance returns the Hermitian sample covariance
// sum((a - mean(a)) * conj(b - mean(b))) / (N - 1).
func Covariance(a, b []complex128) (complex128, error) {
	if err := checkSize(len(a), len(b)); err != nil {
		return 0, err
	}

	ma, mb := Mean(a), Mean(b)
	var sum complex128
	for i := range a {
		sum += (a[i] - ma) * cmplx.Conj(b[i]-mb)
	}
	return sum / complex(float64(len(a)-1), 0), nil
}

// PearsonCorrelation returns Covariance(a, b) / (StdDev(a) * StdDev(b)).
func PearsonCorrelation(a, b []complex128) (complex128, error) {
	cov, err := Covariance(a, b)
	if err != nil {
		return 0, err
	}
	return cov / complex(StdDev(a)*StdDev(b), 0), nil
}

// DotProduct returns sum(a[i] * b[i]) without conjugation.
func DotProduct(a, b []complex128) (complex128, error) {
	if err := checkSize(len(a), len(b)); err != nil {
		return 0, err
	}
	return cmplxs.Dotu(a, b), nil
}
