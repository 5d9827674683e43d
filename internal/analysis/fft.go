package analysis

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

var ErrShortSeries = errors.New("analysis: series too short")

// Spectrum is the one-sided power spectrum of a series sampled once per frame.
type Spectrum struct {
	// Power[k] is the magnitude at frequency k*Resolution.
	Power      []float64
	Resolution float64
}

// PowerSpectrum removes the mean, applies a Hann window and returns the
// magnitudes of the first half of the transform. sampleRate is in frames
// per second.
func PowerSpectrum(data []float64, sampleRate float64) (*Spectrum, error) {
	n := len(data)
	if n < 4 {
		return nil, ErrShortSeries
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(n)

	windowed := make([]float64, n)
	for i, v := range data {
		w := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		windowed[i] = (v - mean) * w
	}

	transform := fft.FFTReal(windowed)
	power := make([]float64, n/2)
	for i := range power {
		power[i] = cmplx.Abs(transform[i])
	}

	if sampleRate <= 0 {
		sampleRate = 1
	}
	return &Spectrum{Power: power, Resolution: sampleRate / float64(n)}, nil
}

// Dominant returns the frequency and magnitude of the strongest non-DC bin.
func (s *Spectrum) Dominant() (freq, power float64) {
	best := -1
	for i := 1; i < len(s.Power); i++ {
		if best < 0 || s.Power[i] > s.Power[best] {
			best = i
		}
	}
	if best < 0 {
		return 0, 0
	}
	return float64(best) * s.Resolution, s.Power[best]
}

// Frequencies returns the frequency of every bin.
func (s *Spectrum) Frequencies() []float64 {
	freqs := make([]float64, len(s.Power))
	for i := range freqs {
		freqs[i] = float64(i) * s.Resolution
	}
	return freqs
}
