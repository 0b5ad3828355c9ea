package normalize

import (
	"fmt"
	"math"

	"github.com/yorsh1111/lufs-normalizer/internal/audio"
	"github.com/yorsh1111/lufs-normalizer/internal/config"
	"github.com/yorsh1111/lufs-normalizer/internal/loudness"
)

// overshootFactor scales the loudness gap left by the previous attempt
// when steering the next attempt's working target.
const overshootFactor = 1.5

// converge runs up to cfg.MaxAttempts normalization passes. Every attempt
// starts from a fresh clone of the original buffer; only the target it
// aims for is steered by the loudness the previous attempt reached.
// Returns the last produced buffer with its result, and whether that
// result landed within tolerance of the configured target.
func converge(original *audio.Buffer, cfg *config.Config, meter *loudness.Meter) (*audio.Buffer, *AttemptResult, bool, error) {
	target := cfg.TargetLoudness

	originalLoudness := meter.Measure(original)
	if math.IsInf(originalLoudness, -1) {
		return nil, nil, false, fmt.Errorf("cannot normalize %s: %w", original.Filename, loudness.ErrSilentSignal)
	}

	workingTarget := target

	var (
		out    *audio.Buffer
		result *AttemptResult
	)

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if attempt > 1 {
			current := meter.Measure(out)
			if math.IsInf(current, -1) {
				// Limiting crushed the previous output below the gate;
				// there is nothing left to steer from.
				break
			}
			workingTarget = target + overshootFactor*(target-current)
		}

		out = original.Clone()

		var err error
		result, err = runAttempt(out, originalLoudness, workingTarget, cfg, meter)
		if err != nil {
			return nil, nil, false, err
		}

		if cfg.MaxAttempts > 1 {
			fmt.Printf("  [%d/%d] target %.1f LUFS → reached %.1f LUFS\n",
				attempt, cfg.MaxAttempts, workingTarget, result.NormalizedLoudness)
		}

		if math.Abs(result.NormalizedLoudness-target) <= cfg.Tolerance {
			return out, result, true, nil
		}
	}

	return out, result, false, nil
}

// NormalizeWithConvergence decodes the input file and repeats the
// normalization pass until the result is within tolerance of the target
// or the attempt budget is exhausted. The last produced buffer is always
// written; a false return flags that tolerance was not met, it never
// withholds output.
func NormalizeWithConvergence(inputPath, outputPath string, cfg *config.Config) (*AttemptResult, bool, error) {
	original, err := audio.NewDecoder(cfg.Verbose).Decode(inputPath)
	if err != nil {
		return nil, false, err
	}

	meter := loudness.NewMeter(float64(original.SampleRate))

	out, result, succeeded, err := converge(original, cfg, meter)
	if err != nil {
		return nil, false, err
	}

	if err := audio.NewEncoder().Encode(outputPath, out); err != nil {
		return nil, false, err
	}

	return result, succeeded, nil
}
