package normalize

import (
	"fmt"

	"github.com/yorsh1111/lufs-normalizer/internal/cli"
)

// AttemptResult captures the outcome of one normalization attempt.
// The convergence driver keeps only the result of the latest attempt.
type AttemptResult struct {
	OriginalLoudness   float64 // LUFS of the input signal
	NormalizedLoudness float64 // LUFS of the produced output
	GainAppliedDB      float64 // Gain applied to reach the target
	LimiterEngaged     bool    // True when the peak limiter altered the signal
	PeakCeilingDBTP    float64 // Configured true-peak ceiling
	Channels           int     // Output channel count
	IsStereo           bool
}

// Print displays the attempt result
func (r *AttemptResult) Print() {
	layout := "mono"
	if r.IsStereo {
		layout = "stereo"
	} else if r.Channels > 2 {
		layout = fmt.Sprintf("%d channels", r.Channels)
	}

	limiter := "not engaged"
	if r.LimiterEngaged {
		limiter = "engaged"
	}

	fmt.Println(cli.TitleStyle.Render("Normalization Result"))
	printKV("Original Loudness:", fmt.Sprintf("%.1f LUFS", r.OriginalLoudness))
	printKV("Normalized Loudness:", fmt.Sprintf("%.1f LUFS", r.NormalizedLoudness))
	printKV("Applied Gain:", fmt.Sprintf("%+.1f dB", r.GainAppliedDB))
	printKV("True Peak Ceiling:", fmt.Sprintf("%.1f dBTP", r.PeakCeilingDBTP))
	printKV("Limiter:", limiter)
	printKV("Channels:", fmt.Sprintf("%d (%s)", r.Channels, layout))

	if r.LimiterEngaged {
		fmt.Printf("  ⚠️  Peak limiting reduced loudness; result may sit below target\n")
	}
}

func printKV(key, value string) {
	fmt.Printf("%s %s\n", cli.KeyStyle.Render(key), cli.ValueStyle.Render(value))
}
