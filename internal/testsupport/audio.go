package testsupport

import (
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WriteSpeechWAV writes a synthetic recording that the feature extractor
// treats as speech: tone bursts separated by near-silence over a faint
// noise bed.
func WriteSpeechWAV(t testing.TB, path string, rate int, seconds float64) {
	t.Helper()

	rng := rand.New(rand.NewSource(1))
	n := int(float64(rate) * seconds)
	samples := make([]float64, n)
	burstLen := rate / 2
	for i := range samples {
		samples[i] = 0.001 * (rng.Float64()*2 - 1)
		if (i/burstLen)%2 == 0 {
			samples[i] += 0.5 * math.Sin(2*math.Pi*220*float64(i)/float64(rate))
		}
	}
	WriteWAV(t, path, samples, rate)
}

// WriteSilentWAV writes an all-zero recording.
func WriteSilentWAV(t testing.TB, path string, rate int, seconds float64) {
	t.Helper()
	WriteWAV(t, path, make([]float64, int(float64(rate)*seconds)), rate)
}

// WriteWAV encodes mono float samples in [-1,1] as a 16-bit WAV file.
func WriteWAV(t testing.TB, path string, samples []float64, rate int) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer file.Close()

	enc := wav.NewEncoder(file, rate, 16, 1, 1)
	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(s * 32767)
	}
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: rate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close encoder for %s: %v", path, err)
	}
}
