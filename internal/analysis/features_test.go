package analysis

import (
	"math"
	"math/rand"
	"testing"

	"speechtag/internal/media"
)

func testParams() Params {
	return Params{
		SampleRate:        16000,
		FrameMillis:       25,
		FrameOverlap:      0.5,
		ClippingAmplitude: 0.985,
		MinPauseSeconds:   0.1,
	}
}

// speechLike alternates loud voiced bursts with near-silent gaps, with a
// faint noise bed underneath.
func speechLike(rate int, seconds float64, burstAmp, noiseAmp float64) *media.AudioSample {
	rng := rand.New(rand.NewSource(42))
	n := int(float64(rate) * seconds)
	samples := make([]float64, n)
	burstLen := rate / 2 // 500ms on, 500ms off
	for i := range samples {
		samples[i] = noiseAmp * (rng.Float64()*2 - 1)
		if (i/burstLen)%2 == 0 {
			samples[i] += burstAmp * math.Sin(2*math.Pi*200*float64(i)/float64(rate))
		}
	}
	return &media.AudioSample{Samples: samples, SampleRate: rate, Channels: 1}
}

func silent(rate int, seconds float64) *media.AudioSample {
	return &media.AudioSample{
		Samples:    make([]float64, int(float64(rate)*seconds)),
		SampleRate: rate,
		Channels:   1,
	}
}

func TestExtractCleanSpeech(t *testing.T) {
	sample := speechLike(16000, 4.0, 0.5, 0.001)
	features := Extract(sample, testParams())

	if features.SNRIndeterminate {
		t.Fatal("expected determinate SNR for clean speech")
	}
	if features.SNRdB < 20 {
		t.Fatalf("expected high SNR, got %.1f dB", features.SNRdB)
	}
	if features.VoiceActivityRatio < 0.3 || features.VoiceActivityRatio > 0.8 {
		t.Fatalf("unexpected voice activity ratio %.2f", features.VoiceActivityRatio)
	}
	if features.ClarityIndeterminate {
		t.Fatal("expected determinate clarity")
	}
	// A pure tone burst is highly tonal: flatness should be low.
	if features.SpectralFlatness > 0.3 {
		t.Fatalf("expected tonal flatness, got %.3f", features.SpectralFlatness)
	}
	if features.PauseCount < 2 {
		t.Fatalf("expected interior pauses, got %d", features.PauseCount)
	}
}

func TestExtractRatiosAlwaysBounded(t *testing.T) {
	samples := []*media.AudioSample{
		speechLike(16000, 2.0, 0.5, 0.001),
		speechLike(16000, 2.0, 0.1, 0.09),
		silent(16000, 2.0),
		silent(16000, 0.01),
	}
	for i, sample := range samples {
		features := Extract(sample, testParams())
		ratios := map[string]float64{
			"voice_activity": features.VoiceActivityRatio,
			"clipping":       features.ClippingRatio,
			"zcr":            features.ZeroCrossingRate,
		}
		for name, value := range ratios {
			if value < 0 || value > 1 {
				t.Fatalf("sample %d: %s out of range: %v", i, name, value)
			}
		}
		if !features.SNRIndeterminate {
			if math.IsNaN(features.SNRdB) || math.IsInf(features.SNRdB, 0) {
				t.Fatalf("sample %d: non-finite SNR leaked: %v", i, features.SNRdB)
			}
		}
	}
}

func TestExtractSilentClipIndeterminate(t *testing.T) {
	features := Extract(silent(16000, 2.0), testParams())

	if !features.SNRIndeterminate {
		t.Fatal("expected indeterminate SNR for silence")
	}
	if !features.ClarityIndeterminate {
		t.Fatal("expected indeterminate clarity for silence")
	}
	if features.VoiceActivityRatio != 0 {
		t.Fatalf("expected zero voice activity, got %.2f", features.VoiceActivityRatio)
	}
}

func TestExtractShorterThanOneFrame(t *testing.T) {
	sample := &media.AudioSample{
		Samples:    make([]float64, 100), // 6.25ms at 16kHz, frame is 25ms
		SampleRate: 16000,
		Channels:   1,
	}
	features := Extract(sample, testParams())
	if !features.SNRIndeterminate || !features.ClarityIndeterminate {
		t.Fatal("expected indeterminate features for sub-frame clip")
	}
	if features.VoiceActivityRatio != 0 {
		t.Fatalf("expected zero voice activity, got %.2f", features.VoiceActivityRatio)
	}
}

func TestExtractClippingRatio(t *testing.T) {
	sample := speechLike(16000, 1.0, 0.5, 0.001)
	for i := 0; i < len(sample.Samples); i += 2 {
		sample.Samples[i] = 1.0
	}
	features := Extract(sample, testParams())
	if features.ClippingRatio < 0.4 {
		t.Fatalf("expected heavy clipping, got %.2f", features.ClippingRatio)
	}
}

func TestSpectralFlatnessExtremes(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	noise := make([]float64, 512)
	for i := range noise {
		noise[i] = rng.Float64()*2 - 1
	}
	tone := make([]float64, 512)
	for i := range tone {
		tone[i] = math.Sin(2 * math.Pi * 40 * float64(i) / 512)
	}

	noiseFlatness := spectralFlatness(magnitudeSpectrum(noise))
	toneFlatness := spectralFlatness(magnitudeSpectrum(tone))
	if noiseFlatness <= toneFlatness {
		t.Fatalf("noise flatness (%.3f) should exceed tone flatness (%.3f)", noiseFlatness, toneFlatness)
	}
	if toneFlatness > 0.1 {
		t.Fatalf("pure tone flatness too high: %.3f", toneFlatness)
	}
}

func TestPercentile(t *testing.T) {
	values := []float64{5, 1, 4, 2, 3}
	if got := percentile(values, 0); got != 1 {
		t.Fatalf("p0: got %v", got)
	}
	if got := percentile(values, 1); got != 5 {
		t.Fatalf("p100: got %v", got)
	}
	if got := percentile(values, 0.5); got != 3 {
		t.Fatalf("p50: got %v", got)
	}
}
