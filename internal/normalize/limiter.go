package normalize

import (
	"math"

	"github.com/yorsh1111/lufs-normalizer/internal/audio"
	"github.com/yorsh1111/lufs-normalizer/internal/loudness"
)

// compensationDamping scales the loudness-recovery gain applied after
// limiting. Recovery is deliberately partial; a full correction tends to
// push the peak straight back over the ceiling.
const compensationDamping = 0.8

// LimitTruePeak enforces the true-peak ceiling on the buffer. When the
// peak exceeds the ceiling the whole signal is scaled onto the ceiling,
// loudness is re-measured, and a damped compensation gain recovers part
// of the loudness lost to limiting. A final hard clamp guarantees the
// ceiling is never exceeded. Returns true when the signal was altered.
func LimitTruePeak(buf *audio.Buffer, target, ceilingDBTP float64, meter *loudness.Meter) bool {
	ceiling := dbToLinear(ceilingDBTP)

	peak := buf.Peak()
	if peak <= ceiling {
		return false
	}

	// Bring the peak exactly onto the ceiling
	buf.ApplyGain(ceiling / peak)

	// Recover toward the target from the loudness lost to limiting
	limited := meter.Measure(buf)
	if !math.IsInf(limited, -1) {
		deficitDB := target - limited
		buf.ApplyGain(compensationDamping * dbToLinear(deficitDB))
	}

	// Hard clamp if compensation pushed the peak back over the ceiling
	if peak := buf.Peak(); peak > ceiling {
		buf.ApplyGain(ceiling / peak)
	}

	return true
}
