package classify

import (
	"testing"

	"speechtag/internal/analysis"
	"speechtag/internal/config"
)

func noiseConfig() config.Noise {
	return config.Noise{
		LowNoiseSNRdB:     25,
		MediumNoiseSNRdB:  15,
		ConfidenceScaleDB: 10,
		WarningSNRdB:      15,
	}
}

func clarityConfig() config.Clarity {
	return config.Clarity{
		ClearFlatness:   0.35,
		MuffledFlatness: 0.60,
		ClippingRatio:   0.01,
		ConfidenceScale: 0.25,
	}
}

func styleConfig() config.Style {
	return config.Style{
		ReadMaxPausesPerMinute:           5,
		ConversationalMinPausesPerMinute: 18,
		ReadMaxEnergyVariation:           0.05,
		MinPauseSeconds:                  0.1,
	}
}

func TestNoiseBuckets(t *testing.T) {
	cfg := noiseConfig()
	cases := []struct {
		snr  float64
		want string
	}{
		{35, NoiseLow},
		{25, NoiseLow},
		{20, NoiseMedium},
		{15, NoiseMedium},
		{10, NoiseHigh},
		{-5, NoiseHigh},
	}
	for _, tc := range cases {
		tag := Noise(analysis.AcousticFeatures{SNRdB: tc.snr}, cfg)
		if tag.Value != tc.want {
			t.Errorf("SNR %.0f dB: got %s, want %s", tc.snr, tag.Value, tc.want)
		}
		if !tag.Automated {
			t.Errorf("SNR %.0f dB: noise tag must be automated", tc.snr)
		}
	}
}

func TestNoiseMonotone(t *testing.T) {
	cfg := noiseConfig()
	rank := map[string]int{NoiseLow: 0, NoiseMedium: 1, NoiseHigh: 2}

	prev := -1
	for snr := 40.0; snr >= -10; snr -= 0.5 {
		tag := Noise(analysis.AcousticFeatures{SNRdB: snr}, cfg)
		r := rank[tag.Value]
		if r < prev {
			t.Fatalf("bucket got quieter as SNR dropped: %s at %.1f dB", tag.Value, snr)
		}
		prev = r
	}
}

func TestNoiseConfidenceGrowsWithBoundaryDistance(t *testing.T) {
	cfg := noiseConfig()
	near := Noise(analysis.AcousticFeatures{SNRdB: 25.5}, cfg)
	far := Noise(analysis.AcousticFeatures{SNRdB: 38}, cfg)
	if far.Confidence <= near.Confidence {
		t.Fatalf("confidence did not grow with distance: near %.2f, far %.2f", near.Confidence, far.Confidence)
	}
	if near.Confidence < boundaryConfidence || far.Confidence > maxConfidence {
		t.Fatalf("confidence out of range: near %.2f, far %.2f", near.Confidence, far.Confidence)
	}
}

func TestNoiseIndeterminateFailsSafe(t *testing.T) {
	tag := Noise(analysis.AcousticFeatures{SNRIndeterminate: true, SNRdB: 30}, noiseConfig())
	if tag.Value != NoiseHigh {
		t.Fatalf("expected high_noise for indeterminate SNR, got %s", tag.Value)
	}
	if tag.Confidence != MinimumConfidence {
		t.Fatalf("expected minimum confidence, got %.2f", tag.Confidence)
	}
}

func TestClarityBuckets(t *testing.T) {
	cfg := clarityConfig()
	cases := []struct {
		flatness float64
		want     string
	}{
		{0.1, ClarityClear},
		{0.35, ClarityClear},
		{0.5, ClarityMuffled},
		{0.8, ClarityDistorted},
	}
	for _, tc := range cases {
		tag := Clarity(analysis.AcousticFeatures{SpectralFlatness: tc.flatness}, cfg)
		if tag.Value != tc.want {
			t.Errorf("flatness %.2f: got %s, want %s", tc.flatness, tag.Value, tc.want)
		}
	}
}

func TestClarityClippingOverridesSpectralMeasure(t *testing.T) {
	cfg := clarityConfig()
	features := analysis.AcousticFeatures{
		SpectralFlatness: 0.05, // would classify as clear
		ClippingRatio:    0.08,
	}
	tag := Clarity(features, cfg)
	if tag.Value != ClarityDistorted {
		t.Fatalf("clipping must override spectral clarity, got %s", tag.Value)
	}

	// Even indeterminate clarity with heavy clipping is distorted.
	features.ClarityIndeterminate = true
	if tag := Clarity(features, cfg); tag.Value != ClarityDistorted {
		t.Fatalf("clipping must override indeterminate clarity, got %s", tag.Value)
	}
}

func TestClarityIndeterminateFailsSafe(t *testing.T) {
	tag := Clarity(analysis.AcousticFeatures{ClarityIndeterminate: true}, clarityConfig())
	if tag.Value != ClarityMuffled {
		t.Fatalf("expected muffled_speech for indeterminate clarity, got %s", tag.Value)
	}
	if tag.Confidence != MinimumConfidence {
		t.Fatalf("expected minimum confidence, got %.2f", tag.Confidence)
	}
}

func TestVoiceActivity(t *testing.T) {
	cfg := config.VoiceActivity{MinSpeechRatio: 0.10, MinDurationSeconds: 1.0}

	active := VoiceActivity(analysis.AcousticFeatures{VoiceActivityRatio: 0.62}, cfg)
	if active.Percentage != 62 {
		t.Fatalf("unexpected percentage %.1f", active.Percentage)
	}
	if !active.Sufficient {
		t.Fatal("62%% speech should be sufficient")
	}

	sparse := VoiceActivity(analysis.AcousticFeatures{VoiceActivityRatio: 0.04}, cfg)
	if sparse.Sufficient {
		t.Fatal("4%% speech should be insufficient")
	}
}

func TestStyleHeuristics(t *testing.T) {
	cfg := styleConfig()
	cases := []struct {
		name     string
		features analysis.AcousticFeatures
		want     string
	}{
		{
			name: "steady low-pause delivery reads as read speech",
			features: analysis.AcousticFeatures{
				DurationSeconds:    60,
				VoiceActivityRatio: 0.9,
				PauseCount:         2,
				EnergyVariation:    0.02,
			},
			want: StyleRead,
		},
		{
			name: "frequent pauses read as conversational",
			features: analysis.AcousticFeatures{
				DurationSeconds:    60,
				VoiceActivityRatio: 0.5,
				PauseCount:         25,
				EnergyVariation:    0.2,
			},
			want: StyleConversational,
		},
		{
			name: "middle ground is spontaneous",
			features: analysis.AcousticFeatures{
				DurationSeconds:    60,
				VoiceActivityRatio: 0.7,
				PauseCount:         10,
				EnergyVariation:    0.1,
			},
			want: StyleSpontaneous,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tag := Style(tc.features, cfg)
			if tag.Value != tc.want {
				t.Fatalf("got %s, want %s", tag.Value, tc.want)
			}
			if tag.Automated {
				t.Fatal("speaking style must always be advisory")
			}
		})
	}
}

func TestStyleNoSpeechFallsBack(t *testing.T) {
	tag := Style(analysis.AcousticFeatures{DurationSeconds: 5}, styleConfig())
	if tag.Value != StyleSpontaneous || tag.Confidence != MinimumConfidence {
		t.Fatalf("expected minimum-confidence spontaneous fallback, got %s at %.2f", tag.Value, tag.Confidence)
	}
}
