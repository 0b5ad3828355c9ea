package loudness

import (
	"errors"
	"math"

	"github.com/yorsh1111/lufs-normalizer/internal/audio"
)

const (
	// Gating block geometry per BS.1770: 400 ms blocks with 75% overlap.
	blockDuration = 0.400
	blockOverlap  = 0.75

	// Gating thresholds.
	absoluteThreshold = -70.0 // LUFS
	relativeOffset    = -10.0 // LU below the mean of ungated blocks
)

// channelWeights holds the BS.1770 channel weighting factors for
// L, R, C, Ls, Rs. Channels beyond the fifth weigh 1.0.
var channelWeights = []float64{1.0, 1.0, 1.0, 1.41, 1.41}

// ErrSilentSignal indicates that gated loudness is negative infinity.
// The value must never be used as a gain base.
var ErrSilentSignal = errors.New("signal is silent, integrated loudness is undefined")

// Meter measures gated integrated loudness per ITU-R BS.1770
type Meter struct {
	SampleRate float64
}

// NewMeter creates a Meter for signals at the given sample rate
func NewMeter(sampleRate float64) *Meter {
	return &Meter{SampleRate: sampleRate}
}

// Measure returns the integrated loudness of a buffer in LUFS
func (m *Meter) Measure(buf *audio.Buffer) float64 {
	return m.IntegratedLoudness(buf.Data)
}

// IntegratedLoudness computes gated integrated loudness in LUFS for
// channel-major sample data. Returns negative infinity when no block
// survives gating (silent signal).
func (m *Meter) IntegratedLoudness(data [][]float64) float64 {
	if len(data) == 0 || len(data[0]) == 0 {
		return math.Inf(-1)
	}

	// K-weight each channel independently; filter state spans the whole
	// channel, not individual blocks.
	filtered := make([][]float64, len(data))
	for ch, channel := range data {
		filtered[ch] = NewKWeighting(m.SampleRate).Process(channel)
	}

	blockFrames := int(math.Round(blockDuration * m.SampleRate))
	hopFrames := int(math.Round(blockDuration * (1.0 - blockOverlap) * m.SampleRate))
	if blockFrames < 1 {
		blockFrames = 1
	}
	if hopFrames < 1 {
		hopFrames = 1
	}

	frames := len(filtered[0])

	// Mean-square energy per block, channel-weighted and summed
	var blocks []float64
	for start := 0; start+blockFrames <= frames; start += hopFrames {
		energy := 0.0
		for ch := range filtered {
			sum := 0.0
			for _, s := range filtered[ch][start : start+blockFrames] {
				sum += s * s
			}
			energy += channelWeight(ch) * (sum / float64(blockFrames))
		}
		blocks = append(blocks, energy)
	}

	if len(blocks) == 0 {
		return math.Inf(-1)
	}

	// Absolute gate at -70 LUFS
	var absGated []float64
	absGatedSum := 0.0
	for _, energy := range blocks {
		if energyToLoudness(energy) > absoluteThreshold {
			absGated = append(absGated, energy)
			absGatedSum += energy
		}
	}

	if len(absGated) == 0 {
		return math.Inf(-1)
	}

	// Relative gate 10 LU below the loudness of the surviving mean energy
	relativeThreshold := energyToLoudness(absGatedSum/float64(len(absGated))) + relativeOffset

	relGatedSum := 0.0
	relGatedCount := 0
	for _, energy := range absGated {
		if energyToLoudness(energy) > relativeThreshold {
			relGatedSum += energy
			relGatedCount++
		}
	}

	if relGatedCount == 0 {
		return math.Inf(-1)
	}

	return energyToLoudness(relGatedSum / float64(relGatedCount))
}

// channelWeight returns the BS.1770 weighting for a channel index
func channelWeight(ch int) float64 {
	if ch < len(channelWeights) {
		return channelWeights[ch]
	}
	return 1.0
}

// energyToLoudness converts mean-square energy to loudness in LUFS
func energyToLoudness(energy float64) float64 {
	if energy <= 0 {
		return math.Inf(-1)
	}
	return -0.691 + 10.0*math.Log10(energy)
}
