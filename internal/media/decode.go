package media

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
)

var (
	// ErrUnsupportedFormat marks file extensions the loader cannot decode.
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	// ErrCorruptFile marks files that fail to parse as their claimed format.
	ErrCorruptFile = errors.New("corrupt audio file")
)

// AudioSample is a decoded mono PCM buffer. Immutable once loaded; the
// pipeline invocation that loaded it owns it and discards it after
// feature extraction.
type AudioSample struct {
	// Samples are normalized to [-1, 1].
	Samples    []float64
	SampleRate int
	Channels   int
}

// Duration returns the clip length in seconds.
func (a *AudioSample) Duration() float64 {
	if a.SampleRate <= 0 {
		return 0
	}
	return float64(len(a.Samples)) / float64(a.SampleRate)
}

// Decode loads an audio file, downmixes to mono, and resamples to
// targetRate. Failures are tagged ErrUnsupportedFormat or ErrCorruptFile.
func Decode(path string, targetRate int) (*AudioSample, error) {
	if targetRate <= 0 {
		return nil, fmt.Errorf("invalid target sample rate %d", targetRate)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open audio file: %w", err)
	}
	defer file.Close()

	var (
		samples []float64
		rate    int
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		samples, rate, err = decodeWAV(file)
	case ".mp3":
		samples, rate, err = decodeMP3(file)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}

	if rate != targetRate {
		samples = resample(samples, rate, targetRate)
		rate = targetRate
	}

	return &AudioSample{Samples: samples, SampleRate: rate, Channels: 1}, nil
}

func decodeWAV(file *os.File) ([]float64, int, error) {
	decoder := wav.NewDecoder(file)
	if !decoder.IsValidFile() {
		return nil, 0, fmt.Errorf("%w: invalid wav header", ErrCorruptFile)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrCorruptFile, err)
	}
	if buf == nil || len(buf.Data) == 0 {
		return nil, 0, fmt.Errorf("%w: empty pcm payload", ErrCorruptFile)
	}

	channels := buf.Format.NumChannels
	if channels < 1 {
		channels = 1
	}
	scale := 1.0
	if decoder.BitDepth > 0 {
		scale = 1.0 / float64(int(1)<<(decoder.BitDepth-1))
	}

	frames := len(buf.Data) / channels
	samples := make([]float64, frames)
	for i := 0; i < frames; i++ {
		var sum float64
		for ch := 0; ch < channels; ch++ {
			sum += float64(buf.Data[i*channels+ch]) * scale
		}
		samples[i] = clampUnit(sum / float64(channels))
	}
	return samples, buf.Format.SampleRate, nil
}

// decodeMP3 reads the full stream; go-mp3 always emits 16-bit stereo.
func decodeMP3(file *os.File) ([]float64, int, error) {
	decoder, err := mp3.NewDecoder(file)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrCorruptFile, err)
	}

	raw, err := io.ReadAll(decoder)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrCorruptFile, err)
	}
	if len(raw) < 4 {
		return nil, 0, fmt.Errorf("%w: empty mp3 stream", ErrCorruptFile)
	}

	frames := len(raw) / 4
	samples := make([]float64, frames)
	for i := 0; i < frames; i++ {
		left := int16(uint16(raw[i*4]) | uint16(raw[i*4+1])<<8)
		right := int16(uint16(raw[i*4+2]) | uint16(raw[i*4+3])<<8)
		samples[i] = clampUnit((float64(left) + float64(right)) / (2 * 32768.0))
	}
	return samples, decoder.SampleRate(), nil
}

// resample converts between rates with linear interpolation. Speech
// feature extraction does not need a polyphase filter.
func resample(samples []float64, fromRate, toRate int) []float64 {
	if fromRate == toRate || len(samples) == 0 {
		return samples
	}
	ratio := float64(fromRate) / float64(toRate)
	outLen := int(math.Floor(float64(len(samples)) / ratio))
	if outLen < 1 {
		outLen = 1
	}
	out := make([]float64, outLen)
	for i := range out {
		pos := float64(i) * ratio
		idx := int(pos)
		if idx >= len(samples)-1 {
			out[i] = samples[len(samples)-1]
			continue
		}
		frac := pos - float64(idx)
		out[i] = samples[idx]*(1-frac) + samples[idx+1]*frac
	}
	return out
}

func clampUnit(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
