package normalize

import (
	"fmt"
	"math"

	"github.com/yorsh1111/lufs-normalizer/internal/audio"
	"github.com/yorsh1111/lufs-normalizer/internal/config"
	"github.com/yorsh1111/lufs-normalizer/internal/loudness"
)

// runAttempt executes one gain -> limit pass on the buffer, driving its
// known measured loudness toward workingTarget. The returned result
// reports the loudness actually reached, re-measured on the final signal.
func runAttempt(buf *audio.Buffer, measured, workingTarget float64, cfg *config.Config, meter *loudness.Meter) (*AttemptResult, error) {
	gainDB, err := ApplyGain(buf, measured, workingTarget)
	if err != nil {
		return nil, err
	}

	engaged := LimitTruePeak(buf, workingTarget, cfg.TruePeakCeiling, meter)

	normalized := meter.Measure(buf)

	return &AttemptResult{
		OriginalLoudness:   measured,
		NormalizedLoudness: normalized,
		GainAppliedDB:      gainDB,
		LimiterEngaged:     engaged,
		PeakCeilingDBTP:    cfg.TruePeakCeiling,
		Channels:           buf.Channels(),
		IsStereo:           buf.Channels() == 2,
	}, nil
}

// Normalize decodes the input file, runs a single measure -> gain -> limit
// pass toward the configured target, and writes the result. The encoder
// only runs once a complete processed buffer exists.
func Normalize(inputPath, outputPath string, cfg *config.Config) (*AttemptResult, error) {
	buf, err := audio.NewDecoder(cfg.Verbose).Decode(inputPath)
	if err != nil {
		return nil, err
	}

	meter := loudness.NewMeter(float64(buf.SampleRate))

	measured := meter.Measure(buf)
	if math.IsInf(measured, -1) {
		return nil, fmt.Errorf("cannot normalize %s: %w", inputPath, loudness.ErrSilentSignal)
	}

	result, err := runAttempt(buf, measured, cfg.TargetLoudness, cfg, meter)
	if err != nil {
		return nil, err
	}

	if err := audio.NewEncoder().Encode(outputPath, buf); err != nil {
		return nil, err
	}

	return result, nil
}
