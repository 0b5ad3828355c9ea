package audio

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Encoder writes Buffers to PCM WAV files
type Encoder struct{}

// NewEncoder creates an Encoder
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Encode writes the buffer to path as PCM WAV, creating intermediate
// directories as needed. Only .wav output is supported; any other
// extension fails with ErrUnsupportedFormat.
func (e *Encoder) Encode(path string, buf *Buffer) error {
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".wav" {
		return fmt.Errorf("%w: cannot write %q output (only .wav)", ErrUnsupportedFormat, ext)
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", path, err)
	}
	defer file.Close()

	bitDepth := buf.SourceBitDepth
	switch bitDepth {
	case 16, 24, 32:
	default:
		bitDepth = 16
	}

	channels := buf.Channels()
	frames := buf.Frames()
	scale := float64(int64(1) << (bitDepth - 1))
	maxValue := int(int64(1)<<(bitDepth-1)) - 1
	minValue := -maxValue - 1

	// Interleave back to integer PCM, clamping at the rails
	clippedSamples := 0
	intData := make([]int, frames*channels)
	for i := 0; i < frames; i++ {
		for ch := 0; ch < channels; ch++ {
			sample := int(math.Round(buf.Data[ch][i] * scale))
			if sample > maxValue {
				sample = maxValue
				clippedSamples++
			} else if sample < minValue {
				sample = minValue
				clippedSamples++
			}
			intData[i*channels+ch] = sample
		}
	}

	if clippedSamples > 0 {
		clippingPercentage := float64(clippedSamples) / float64(len(intData)) * 100
		fmt.Printf("  ⚠️  Clipped %d samples (%.2f%%) while writing %s\n",
			clippedSamples, clippingPercentage, path)
	}

	encoder := wav.NewEncoder(file, buf.SampleRate, bitDepth, channels, 1)

	intBuf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: channels,
			SampleRate:  buf.SampleRate,
		},
		Data:           intData,
		SourceBitDepth: bitDepth,
	}

	if err := encoder.Write(intBuf); err != nil {
		return fmt.Errorf("failed to write audio data to %s: %w", path, err)
	}

	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to close encoder for %s: %w", path, err)
	}

	return nil
}
