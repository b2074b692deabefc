package analysis

import (
	"errors"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

var ErrTooShort = errors.New("analysis: series needs at least two samples")

// PowerSpectrum returns |X_k|^2 / n for k = 0..n/2. Any length is accepted.
func PowerSpectrum(data []float64) []float64 {
	n := len(data)
	if n == 0 {
		return nil
	}
	spec := fft.FFTReal(data)
	ps := make([]float64, n/2+1)
	for i := range ps {
		a := cmplx.Abs(spec[i])
		ps[i] = a * a / float64(n)
	}
	return ps
}

// Frequencies returns the bin centres in Hz matching PowerSpectrum for a
// series of n samples spaced dt apart.
func Frequencies(n int, dt float64) []float64 {
	if n == 0 || dt <= 0 {
		return nil
	}
	freqs := make([]float64, n/2+1)
	for i := range freqs {
		freqs[i] = float64(i) / (float64(n) * dt)
	}
	return freqs
}

// DominantFrequency removes the mean, applies a Hann window and returns
// the frequency in Hz of the largest remaining bin.
func DominantFrequency(data []float64, dt float64) (float64, error) {
	if len(data) < 2 {
		return 0, ErrTooShort
	}
	if dt <= 0 {
		return 0, errors.New("analysis: dt must be positive")
	}

	x := detrend(data)
	window.Apply(x, window.Hann)
	ps := PowerSpectrum(x)

	best := 1
	for i := 2; i < len(ps); i++ {
		if ps[i] > ps[best] {
			best = i
		}
	}
	return Frequencies(len(data), dt)[best], nil
}

func detrend(data []float64) []float64 {
	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = v - mean
	}
	return out
}
