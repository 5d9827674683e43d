// Package analysis inspects recorded runs.
//
//   - [PowerSpectrum]: Hann-windowed magnitude spectrum of a per-frame series
//   - [Spectrum.Dominant]: strongest non-DC frequency
//   - [NewScatter] and [ScatterToASCII]: one series against another
//
// Series are sampled once per frame, so the sample rate is the frame rate:
//
//	ps, err := analysis.PowerSpectrum(rec.Series(metrics.Energy), 60)
//	freq, _ := ps.Dominant()
package analysis
