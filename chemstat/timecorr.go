// Package chemstat correlates series sampled once per frame, like the number
// of three-way contacts in each frame of a trajectory.
package chemstat

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/stat"
)

// ErrConstant is returned when a series has no variance, so its correlation is undefined.
var ErrConstant = errors.New("chemstat: constant series")

// AutoCorrelation returns the normalized autocorrelation of x for the lags 0 to len(x)-1.
// The value at lag 0 is 1.
func AutoCorrelation(x []float64) ([]float64, error) {
	return CrossCorrelation(x, x)
}

// CrossCorrelation returns, for each lag k from 0 to len(x)-1, the sum over t of
// (x[t]-<x>)(y[t+k]-<y>), divided by the square root of the product of the sums
// of squared deviations of x and y. x and y must have the same length.
// The sums are obtained with FFTs on zero-padded copies of the data, so there is
// no wrap-around between the end and the beginning of the series.
func CrossCorrelation(x, y []float64) ([]float64, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("chemstat: series of different lengths %d, %d", len(x), len(y))
	}
	n := len(x)
	if n == 0 {
		return nil, fmt.Errorf("chemstat: empty series")
	}
	norm := math.Sqrt(stat.PopVariance(x, nil) * stat.PopVariance(y, nil) * float64(n*n))
	if norm == 0 {
		return nil, ErrConstant
	}
	xpad := centered(x, 2*n)
	ypad := centered(y, 2*n)
	f := fourier.NewCmplxFFT(2 * n)
	f.Coefficients(xpad, xpad)
	f.Coefficients(ypad, ypad)
	cmplxConjMul(xpad, ypad)
	f.Sequence(xpad, xpad)

	ret := make([]float64, n)
	scale := 1 / (float64(2*n) * norm) //Sequence doesn't normalize the inverse transform.
	for i := range ret {
		ret[i] = real(xpad[i]) * scale
	}
	return ret, nil
}

// DecorrelationLag returns the first lag at which the autocorrelation ac drops
// below 1/e, or -1 if it never does.
func DecorrelationLag(ac []float64) int {
	for i, v := range ac {
		if v < 1/math.E {
			return i
		}
	}
	return -1
}

// centered returns x minus its mean, as a complex slice of length l padded with zeros.
func centered(x []float64, l int) []complex128 {
	mean := stat.Mean(x, nil)
	ret := make([]complex128, l)
	for i, v := range x {
		ret[i] = complex(v-mean, 0)
	}
	return ret
}

// cmplxConjMul sets dst[i] to conj(dst[i])*b[i].
func cmplxConjMul(dst, b []complex128) {
	if len(dst) != len(b) {
		panic(fmt.Sprintf("complex multiplication of slices: Both slices should have the same len %d, %d", len(dst), len(b)))
	}
	for i, v := range b {
		dst[i] = cmplx.Conj(dst[i]) * v
	}
}
