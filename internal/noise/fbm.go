package noise

// FBM describes a fractal Brownian motion sum over a Source.
//
// Each octave samples the source at Frequency*Lacunarity^k with weight
// Amplitude*Persistence^k, and the total is divided by the summed weights.
//
// Unusual but accepted configurations:
//   - Lacunarity <= 0 or Frequency <= 0: a negative factor mirrors the
//     coordinates through the origin on alternating octaves, zero collapses
//     every later octave onto the sample at the origin.
//   - Persistence >= 1: fine octaves weigh as much as or more than coarse
//     ones, giving a grainy, non-decaying result.
type FBM struct {
	Octaves     int
	Lacunarity  float64
	Persistence float64
	Frequency   float64
	Amplitude   float64
}

// Sample evaluates the fractal sum at (x, y).
// The caller must have validated the configuration: Octaves >= 1 and a
// non-zero AmplitudeSum. The result is not clamped.
func (f FBM) Sample(src Source, x, y float64) float64 {
	var total, norm float64
	freq := f.Frequency
	amp := f.Amplitude
	for octave := 0; octave < f.Octaves; octave++ {
		total += src.Eval(x*freq, y*freq) * amp
		norm += amp
		amp *= f.Persistence
		freq *= f.Lacunarity
	}
	return total / norm
}

// AmplitudeSum returns the normalizer Sample divides by.
func (f FBM) AmplitudeSum() float64 {
	var norm float64
	amp := f.Amplitude
	for octave := 0; octave < f.Octaves; octave++ {
		norm += amp
		amp *= f.Persistence
	}
	return norm
}
