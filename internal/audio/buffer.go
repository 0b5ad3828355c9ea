package audio

import (
	"fmt"
	"math"
)

// Buffer holds decoded PCM audio as one float64 slice per channel,
// with samples normalized to the [-1, 1] range.
type Buffer struct {
	Data           [][]float64 // One equal-length slice per channel
	SampleRate     int         // Sample rate in Hz
	SourceBitDepth int         // PCM bit depth of the source file
	Filename       string      // Original filename
}

// NewBuffer creates a Buffer and checks its channel layout
func NewBuffer(data [][]float64, sampleRate, bitDepth int) (*Buffer, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("audio buffer must have at least one channel")
	}

	frames := len(data[0])
	if frames == 0 {
		return nil, fmt.Errorf("audio buffer contains no samples")
	}

	for ch, channel := range data {
		if len(channel) != frames {
			return nil, fmt.Errorf("channel %d has %d samples, expected %d", ch, len(channel), frames)
		}
	}

	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate: %d", sampleRate)
	}

	if bitDepth == 0 {
		bitDepth = 16
	}

	return &Buffer{
		Data:           data,
		SampleRate:     sampleRate,
		SourceBitDepth: bitDepth,
	}, nil
}

// Channels returns the number of channels
func (b *Buffer) Channels() int {
	return len(b.Data)
}

// Frames returns the number of frames (samples per channel)
func (b *Buffer) Frames() int {
	if len(b.Data) == 0 {
		return 0
	}
	return len(b.Data[0])
}

// Duration returns the buffer length in seconds
func (b *Buffer) Duration() float64 {
	if b.SampleRate == 0 {
		return 0
	}
	return float64(b.Frames()) / float64(b.SampleRate)
}

// Clone creates a deep copy of the buffer
func (b *Buffer) Clone() *Buffer {
	data := make([][]float64, len(b.Data))
	for ch, channel := range b.Data {
		data[ch] = make([]float64, len(channel))
		copy(data[ch], channel)
	}

	return &Buffer{
		Data:           data,
		SampleRate:     b.SampleRate,
		SourceBitDepth: b.SourceBitDepth,
		Filename:       b.Filename,
	}
}

// ApplyGain multiplies every sample in every channel by a linear gain factor.
// Samples are not clamped here; values outside [-1, 1] stay intact so peak
// detection downstream sees the true magnitude.
func (b *Buffer) ApplyGain(gain float64) {
	for _, channel := range b.Data {
		for i := range channel {
			channel[i] *= gain
		}
	}
}

// Peak returns the maximum absolute sample value across all channels
func (b *Buffer) Peak() float64 {
	peak := 0.0
	for _, channel := range b.Data {
		for _, sample := range channel {
			if abs := math.Abs(sample); abs > peak {
				peak = abs
			}
		}
	}
	return peak
}

// RMS returns the root mean square level across all channels
func (b *Buffer) RMS() float64 {
	total := 0
	sumSquares := 0.0
	for _, channel := range b.Data {
		for _, sample := range channel {
			sumSquares += sample * sample
		}
		total += len(channel)
	}

	if total == 0 {
		return 0
	}
	return math.Sqrt(sumSquares / float64(total))
}

// PrintInfo displays information about the buffer
func (b *Buffer) PrintInfo() {
	fmt.Printf("Audio File: %s\n", b.Filename)
	fmt.Printf("  Duration: %.2f seconds\n", b.Duration())
	fmt.Printf("  Sample Rate: %d Hz\n", b.SampleRate)
	fmt.Printf("  Channels: %d\n", b.Channels())
	fmt.Printf("  Bit Depth: %d bits\n", b.SourceBitDepth)
	fmt.Printf("  Frames: %d\n", b.Frames())
}

// AnalyzeContent provides detailed analysis of audio content
func (b *Buffer) AnalyzeContent() {
	fmt.Printf("\n=== Audio Content Analysis: %s ===\n", b.Filename)
	fmt.Printf("Basic Info:\n")
	fmt.Printf("  Duration: %.2f seconds\n", b.Duration())
	fmt.Printf("  Sample Rate: %d Hz\n", b.SampleRate)
	fmt.Printf("  Channels: %d\n", b.Channels())
	fmt.Printf("  Bit Depth: %d bits\n", b.SourceBitDepth)
	fmt.Printf("  Frames: %d\n", b.Frames())

	if b.Frames() == 0 {
		fmt.Printf("  ⚠️  No audio samples found!\n")
		return
	}

	var minSample, maxSample float64
	var zeroSamples, totalSamples int

	for _, channel := range b.Data {
		for _, sample := range channel {
			if sample < minSample {
				minSample = sample
			}
			if sample > maxSample {
				maxSample = sample
			}
			if sample == 0 {
				zeroSamples++
			}
			totalSamples++
		}
	}

	peak := b.Peak()
	peakDB := math.Inf(-1)
	if peak > 0 {
		peakDB = 20 * math.Log10(peak)
	}

	rms := b.RMS()
	rmsDB := math.Inf(-1)
	if rms > 0 {
		rmsDB = 20 * math.Log10(rms)
	}

	fmt.Printf("\nSample Analysis:\n")
	fmt.Printf("  Min Sample: %.6f\n", minSample)
	fmt.Printf("  Max Sample: %.6f\n", maxSample)
	fmt.Printf("  Peak Level: %.1f dBFS\n", peakDB)
	fmt.Printf("  RMS Level: %.1f dBFS\n", rmsDB)
	fmt.Printf("  Zero Samples: %d (%.1f%%)\n", zeroSamples, float64(zeroSamples)/float64(totalSamples)*100)

	silencePercent := float64(zeroSamples) / float64(totalSamples) * 100
	if silencePercent > 95 {
		fmt.Printf("  🔇 WARNING: File is %.1f%% silent - may be empty or very quiet recording\n", silencePercent)
	} else if silencePercent > 80 {
		fmt.Printf("  ⚠️  File has %.1f%% silence - possibly a quiet recording\n", silencePercent)
	} else {
		fmt.Printf("  ✓ File contains %.1f%% audio content\n", 100-silencePercent)
	}

	fmt.Printf("=====================================\n")
}
