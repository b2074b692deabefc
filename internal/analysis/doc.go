// Package analysis inspects simulated displacement series in the frequency
// domain.
//
//   - [PowerSpectrum]: one-sided power spectrum of a real series
//   - [DominantFrequency]: frequency of the strongest non-DC component
//
// A step input settles to a constant, so its spectrum is dominated by the
// body and wheel resonances; a sine input shows the forcing frequency:
//
//	f, err := analysis.DominantFrequency(result.X1, cfg.Dt)
package analysis
