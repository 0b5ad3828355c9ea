package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	mp3 "github.com/hajimehoshi/go-mp3"
	"github.com/mewkiz/flac"
)

// ErrUnsupportedFormat is returned when a file extension is not on the
// input allow-list.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// supportedFormats is the fixed allow-list of input containers
var supportedFormats = []string{".wav", ".mp3", ".flac"}

// IsSupportedFormat reports whether the file extension is on the input allow-list
func IsSupportedFormat(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, supported := range supportedFormats {
		if ext == supported {
			return true
		}
	}
	return false
}

// SupportedFormats returns the input allow-list as a display string
func SupportedFormats() string {
	return strings.Join(supportedFormats, ", ")
}

// Decoder reads audio files into Buffers. Verbose controls the decoder's
// informational output and is fixed at construction time.
type Decoder struct {
	Verbose bool
}

// NewDecoder creates a Decoder with the given verbosity
func NewDecoder(verbose bool) *Decoder {
	return &Decoder{Verbose: verbose}
}

func (d *Decoder) logf(format string, args ...interface{}) {
	if d.Verbose {
		fmt.Printf(format, args...)
	}
}

// Decode loads an audio file and returns its samples as a Buffer.
// The container is selected by file extension from a fixed allow-list;
// anything else fails with ErrUnsupportedFormat.
func (d *Decoder) Decode(path string) (*Buffer, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".wav":
		return d.decodeWAV(path)
	case ".mp3":
		return d.decodeMP3(path)
	case ".flac":
		return d.decodeFLAC(path)
	default:
		return nil, fmt.Errorf("%w: %s (supported: %s)", ErrUnsupportedFormat, ext, SupportedFormats())
	}
}

// decodeWAV loads a WAV file via go-audio
func (d *Decoder) decodeWAV(path string) (*Buffer, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	decoder := wav.NewDecoder(file)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	format := decoder.Format()
	if format == nil {
		return nil, fmt.Errorf("failed to read format from %s", path)
	}

	intBuf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to decode PCM data from %s: %w", path, err)
	}

	if intBuf == nil || len(intBuf.Data) == 0 {
		return nil, fmt.Errorf("no PCM data found in %s", path)
	}

	// Get bit depth from the buffer (default to 16 if not available)
	bitDepth := 16
	if intBuf.SourceBitDepth > 0 {
		bitDepth = intBuf.SourceBitDepth
	}

	channels := int(format.NumChannels)
	frames := len(intBuf.Data) / channels
	scale := float64(int64(1) << (bitDepth - 1))

	data := make([][]float64, channels)
	for ch := range data {
		data[ch] = make([]float64, frames)
	}

	for i := 0; i < frames; i++ {
		for ch := 0; ch < channels; ch++ {
			data[ch][i] = float64(intBuf.Data[i*channels+ch]) / scale
		}
	}

	buf, err := NewBuffer(data, int(format.SampleRate), bitDepth)
	if err != nil {
		return nil, fmt.Errorf("failed to decode PCM data from %s: %w", path, err)
	}
	buf.Filename = path

	d.logf("  decoded wav: %d Hz, %dch, %d-bit, %d frames\n",
		buf.SampleRate, buf.Channels(), buf.SourceBitDepth, buf.Frames())

	return buf, nil
}

// decodeMP3 loads an MP3 file via go-mp3
func (d *Decoder) decodeMP3(path string) (*Buffer, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	decoder, err := mp3.NewDecoder(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode MP3 file %s: %w", path, err)
	}

	// The decoder always emits 16-bit little-endian stereo frames
	raw, err := io.ReadAll(decoder)
	if err != nil {
		return nil, fmt.Errorf("failed to decode MP3 data from %s: %w", path, err)
	}

	const frameBytes = 4 // 2 channels x 2 bytes
	frames := len(raw) / frameBytes
	if frames == 0 {
		return nil, fmt.Errorf("no PCM data found in %s", path)
	}

	data := [][]float64{
		make([]float64, frames),
		make([]float64, frames),
	}

	for i := 0; i < frames; i++ {
		left := int16(binary.LittleEndian.Uint16(raw[i*frameBytes : i*frameBytes+2]))
		right := int16(binary.LittleEndian.Uint16(raw[i*frameBytes+2 : i*frameBytes+4]))
		data[0][i] = float64(left) / 32768.0
		data[1][i] = float64(right) / 32768.0
	}

	buf, err := NewBuffer(data, decoder.SampleRate(), 16)
	if err != nil {
		return nil, fmt.Errorf("failed to decode MP3 data from %s: %w", path, err)
	}
	buf.Filename = path

	d.logf("  decoded mp3: %d Hz, 2ch, %d frames\n", buf.SampleRate, buf.Frames())

	return buf, nil
}

// decodeFLAC loads a FLAC file via mewkiz/flac
func (d *Decoder) decodeFLAC(path string) (*Buffer, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	stream, err := flac.New(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode FLAC file %s: %w", path, err)
	}

	info := stream.Info
	sampleRate := int(info.SampleRate)
	channels := int(info.NChannels)
	bitDepth := int(info.BitsPerSample)
	scale := float64(int64(1) << (bitDepth - 1))

	data := make([][]float64, channels)

	for {
		frame, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode FLAC data from %s: %w", path, err)
		}

		for ch := 0; ch < channels; ch++ {
			samples := frame.Subframes[ch].Samples
			for i := 0; i < int(frame.BlockSize); i++ {
				data[ch] = append(data[ch], float64(samples[i])/scale)
			}
		}
	}

	buf, err := NewBuffer(data, sampleRate, bitDepth)
	if err != nil {
		return nil, fmt.Errorf("failed to decode FLAC data from %s: %w", path, err)
	}
	buf.Filename = path

	d.logf("  decoded flac: %d Hz, %dch, %d-bit, %d frames\n",
		buf.SampleRate, buf.Channels(), buf.SourceBitDepth, buf.Frames())

	return buf, nil
}
