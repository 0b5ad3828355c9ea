package loudness

import (
	"math"

	"github.com/cwbudde/algo-dsp/dsp/filter/biquad"
	"github.com/cwbudde/algo-dsp/dsp/filter/design"
)

const (
	// K-weighting filter parameters from BS.1770.
	shelfFreq   = 1500.0
	shelfGainDB = 4.0

	highpassFreq = 38.0
	highpassQ    = 0.5
)

// KWeighting applies the BS.1770 perceptual pre-filter to a single channel:
// a high-frequency shelf (head diffraction) cascaded into a high-pass stage
// (low-frequency de-emphasis). Coefficients are derived from the sample
// rate, and filter state carries across calls until Reset.
type KWeighting struct {
	shelf *biquad.Section
	hpf   *biquad.Section
}

// NewKWeighting creates a K-weighting filter for the given sample rate
func NewKWeighting(sampleRate float64) *KWeighting {
	shelfQ := 1.0 / math.Sqrt(2)

	return &KWeighting{
		shelf: biquad.NewSection(design.HighShelf(shelfFreq, shelfGainDB, shelfQ, sampleRate)),
		hpf:   biquad.NewSection(design.Highpass(highpassFreq, highpassQ, sampleRate)),
	}
}

// ProcessSample filters one sample through both stages
func (k *KWeighting) ProcessSample(x float64) float64 {
	return k.hpf.ProcessSample(k.shelf.ProcessSample(x))
}

// Process filters an entire channel into a new slice. State is carried
// sample to sample, so a channel must be filtered in one pass.
func (k *KWeighting) Process(channel []float64) []float64 {
	out := make([]float64, len(channel))
	for i, x := range channel {
		out[i] = k.ProcessSample(x)
	}
	return out
}

// Reset clears the filter state of both stages
func (k *KWeighting) Reset() {
	k.shelf.Reset()
	k.hpf.Reset()
}
