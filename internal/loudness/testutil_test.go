package loudness

import "math"

// makeSine generates a deterministic sine wave channel
func makeSine(freq, sampleRate, amplitude float64, frames int) []float64 {
	sig := make([]float64, frames)
	for i := range sig {
		t := float64(i) / sampleRate
		sig[i] = amplitude * math.Sin(2.0*math.Pi*freq*t)
	}
	return sig
}

// makeSilence generates a channel of digital silence
func makeSilence(frames int) []float64 {
	return make([]float64, frames)
}
