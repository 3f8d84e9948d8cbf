package review

import (
	"testing"

	"speechtag/internal/analysis"
	"speechtag/internal/classify"
	"speechtag/internal/config"
)

func reviewConfig() config.Review {
	return config.Review{
		RequiredBelow:        0.55,
		RecommendedBelow:     0.75,
		ShortTranscriptRunes: 10,
	}
}

func TestManualReviewLevels(t *testing.T) {
	tags := []classify.Tag{
		{Category: classify.CategoryNoiseLevel, Confidence: 0.95, Automated: true},
		{Category: classify.CategorySpeechClarity, Confidence: 0.60, Automated: true},
		{Category: classify.CategoryCodeSwitching, Confidence: 0.40, Automated: true},
		{Category: classify.CategorySpeakingStyle, Confidence: 0.95, Automated: false},
	}
	levels := ManualReview(tags, reviewConfig())

	if _, ok := levels[classify.CategoryNoiseLevel]; ok {
		t.Error("high-confidence automated tag must be omitted")
	}
	if got := levels[classify.CategorySpeechClarity]; got != Recommended {
		t.Errorf("middle-band confidence: got %q, want recommended", got)
	}
	if got := levels[classify.CategoryCodeSwitching]; got != Required {
		t.Errorf("low confidence: got %q, want required", got)
	}
	if got := levels[classify.CategorySpeakingStyle]; got != Required {
		t.Errorf("advisory tag: got %q, want required regardless of confidence", got)
	}
}

func TestBuildFlagsCleanRecording(t *testing.T) {
	cfg := config.Default()
	features := analysis.AcousticFeatures{SNRdB: 30, DurationSeconds: 10}
	activity := classify.Activity{Ratio: 0.9, Percentage: 90, Sufficient: true}
	tr := TranscriptSignal{Available: true, Confidence: 0.9, Runes: 120}

	flags := BuildFlags(features, activity, tr, &cfg)
	if flags.LowSNRWarning {
		t.Error("unexpected low SNR warning at 30 dB")
	}
	if flags.ShortDurationWarning {
		t.Error("unexpected short duration warning for 10s at 90% speech")
	}
	if flags.TranscriptionConfidence != TranscriptionHigh {
		t.Errorf("got transcription confidence %q, want high", flags.TranscriptionConfidence)
	}
}

func TestBuildFlagsDegradedRecording(t *testing.T) {
	cfg := config.Default()
	features := analysis.AcousticFeatures{SNRIndeterminate: true, DurationSeconds: 0.4}
	activity := classify.Activity{Sufficient: false}
	tr := TranscriptSignal{Available: false}

	flags := BuildFlags(features, activity, tr, &cfg)
	if !flags.LowSNRWarning {
		t.Error("indeterminate SNR must raise the low SNR warning")
	}
	if !flags.ShortDurationWarning {
		t.Error("sub-minimum duration must raise the short duration warning")
	}
	if flags.TranscriptionConfidence != TranscriptionNone {
		t.Errorf("got transcription confidence %q, want none", flags.TranscriptionConfidence)
	}
}

func TestBuildFlagsShortTranscriptIsLowConfidence(t *testing.T) {
	cfg := config.Default()
	features := analysis.AcousticFeatures{SNRdB: 30, DurationSeconds: 10}
	activity := classify.Activity{Sufficient: true}
	tr := TranscriptSignal{Available: true, Confidence: 0.95, Runes: 3}

	flags := BuildFlags(features, activity, tr, &cfg)
	if flags.TranscriptionConfidence != TranscriptionLow {
		t.Errorf("got %q, want low for a three-rune transcript", flags.TranscriptionConfidence)
	}
}

func TestBuildFlagsInsufficientSpeechOverridesDuration(t *testing.T) {
	cfg := config.Default()
	// Long recording but almost no speech in it.
	features := analysis.AcousticFeatures{SNRdB: 30, DurationSeconds: 30}
	activity := classify.Activity{Ratio: 0.02, Percentage: 2, Sufficient: false}

	flags := BuildFlags(features, activity, TranscriptSignal{}, &cfg)
	if !flags.ShortDurationWarning {
		t.Error("insufficient speech must raise the warning regardless of duration")
	}
}
