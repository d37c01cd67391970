package analysis

import (
	"math"
	"math/cmplx"
	"sort"

	"github.com/mjibson/go-dsp/fft"
)

// Pad returns data zero-padded to the next power of two.
func Pad(data []float64) []float64 {
	n := 1
	for n < len(data) {
		n *= 2
	}
	padded := make([]float64, n)
	copy(padded, data)
	return padded
}

// PowerSpectrum returns the magnitude of the first half of the FFT of data,
// after padding it to a power of two.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}
	spec := fft.FFTReal(Pad(data))
	ps := make([]float64, len(spec)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spec[i])
	}
	return ps
}

// DominantBin returns the index of the strongest non-DC bin, or 0 if there
// is none.
func DominantBin(ps []float64) int {
	best, idx := 0.0, 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > best {
			best, idx = ps[i], i
		}
	}
	return idx
}

// Peaks returns up to k local maxima of ps, strongest first, skipping DC.
func Peaks(ps []float64, k int) []int {
	var peaks []int
	for i := 1; i < len(ps); i++ {
		left := ps[i-1]
		right := math.Inf(-1)
		if i+1 < len(ps) {
			right = ps[i+1]
		}
		if ps[i] > left && ps[i] >= right {
			peaks = append(peaks, i)
		}
	}
	sort.SliceStable(peaks, func(a, b int) bool { return ps[peaks[a]] > ps[peaks[b]] })
	if len(peaks) > k {
		peaks = peaks[:k]
	}
	return peaks
}

// WaveNumber converts a bin of an n-point transform of samples spaced dx
// apart into an angular wave number.
func WaveNumber(bin, n int, dx float64) float64 {
	if n == 0 || dx == 0 {
		return 0
	}
	return 2 * math.Pi * float64(bin) / (float64(n) * dx)
}
