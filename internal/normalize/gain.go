package normalize

import (
	"fmt"
	"math"

	"github.com/yorsh1111/lufs-normalizer/internal/audio"
	"github.com/yorsh1111/lufs-normalizer/internal/loudness"
)

// dbToLinear converts a decibel value to a linear gain factor
func dbToLinear(db float64) float64 {
	return math.Pow(10, db/20.0)
}

// ApplyGain applies the uniform gain that moves a measured loudness onto
// the target and returns that gain in dB. The buffer is left untouched
// when the measured loudness is undefined (silent signal).
func ApplyGain(buf *audio.Buffer, measured, target float64) (float64, error) {
	if math.IsInf(measured, -1) {
		return 0, fmt.Errorf("cannot compute gain: %w", loudness.ErrSilentSignal)
	}

	gainDB := target - measured
	buf.ApplyGain(dbToLinear(gainDB))

	return gainDB, nil
}
