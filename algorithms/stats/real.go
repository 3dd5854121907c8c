package stats

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Real-valued counterparts, used on magnitude and power sequences.

// SumReal returns the sum of x
func SumReal(x []float64) float64 {
	return floats.Sum(x)
}

// MeanReal returns the arithmetic mean of x (NaN when empty)
func MeanReal(x []float64) float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	return stat.Mean(x, nil)
}

// VarianceReal returns the unbiased sample variance of x
func VarianceReal(x []float64) float64 {
	return stat.Variance(x, nil)
}

// StdDevReal returns the sample standard deviation of x
func StdDevReal(x []float64) float64 {
	return stat.StdDev(x, nil)
}

// CovarianceReal returns the unbiased sample covariance of a and b
func CovarianceReal(a, b []float64) (float64, error) {
	if err := checkSize(len(a), len(b)); err != nil {
		return 0, err
	}
	return stat.Covariance(a, b, nil), nil
}

// PearsonCorrelationReal returns the Pearson correlation coefficient of a and b
func PearsonCorrelationReal(a, b []float64) (float64, error) {
	if err := checkSize(len(a), len(b)); err != nil {
		return 0, err
	}
	return stat.Correlation(a, b, nil), nil
}

// DotProductReal returns sum(a[i] * b[i])
func DotProductReal(a, b []float64) (float64, error) {
	if err := checkSize(len(a), len(b)); err != nil {
		return 0, err
	}
	return floats.Dot(a, b), nil
}
