// Package analysis provides spectral analysis of sampled wave functions.
//
//   - [PowerSpectrum]: FFT magnitude of a zero-padded sample
//   - [Peaks], [DominantBin]: locate the strongest components
//   - [WaveNumber]: convert a bin back into an angular wave number
//
// A two-wave packet shows both carriers:
//
//	series, _ := quantum.NewPacket().Samples(1024)
//	ps := analysis.PowerSpectrum(series[0].Y)
//	for _, bin := range analysis.Peaks(ps, 2) {
//	    k := analysis.WaveNumber(bin, len(ps)*2, dx)
//	}
package analysis
