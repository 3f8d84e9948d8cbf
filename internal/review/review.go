package review

import (
	"speechtag/internal/analysis"
	"speechtag/internal/classify"
	"speechtag/internal/config"
)

// Manual-review levels keyed by tag category in the output record.
const (
	Required    = "required"
	Recommended = "recommended"
)

// Transcription confidence buckets for the quality flags.
const (
	TranscriptionHigh = "high"
	TranscriptionLow  = "low"
	TranscriptionNone = "none"
)

// transcriptionHighConfidence is the recognizer-reported confidence at
// or above which a transcript is considered trustworthy.
const transcriptionHighConfidence = 0.75

// TranscriptSignal carries the transcription facts the flag engine
// needs, decoupled from how the transcript was produced.
type TranscriptSignal struct {
	Available  bool
	Confidence float64
	Runes      int
}

// Flags are the record-level quality warnings.
type Flags struct {
	LowSNRWarning           bool
	ShortDurationWarning    bool
	TranscriptionConfidence string
}

// ManualReview builds the category → level map. A tag lands in the map
// when a human still has to look at it: advisory tags always, automated
// tags only when confidence sits below the cutoffs. High-confidence
// automated tags are omitted entirely.
func ManualReview(tags []classify.Tag, cfg config.Review) map[string]string {
	levels := make(map[string]string)
	for _, tag := range tags {
		switch {
		case !tag.Automated, tag.Confidence < cfg.RequiredBelow:
			levels[tag.Category] = Required
		case tag.Confidence < cfg.RecommendedBelow:
			levels[tag.Category] = Recommended
		}
	}
	return levels
}

// BuildFlags derives the quality flags from the acoustic measurements
// and the transcription outcome. Pure threshold composition: no new
// measurement happens here.
func BuildFlags(features analysis.AcousticFeatures, activity classify.Activity, tr TranscriptSignal, cfg *config.Config) Flags {
	flags := Flags{
		TranscriptionConfidence: TranscriptionNone,
	}

	if features.SNRIndeterminate || features.SNRdB < cfg.Noise.WarningSNRdB {
		flags.LowSNRWarning = true
	}

	if features.DurationSeconds < cfg.VoiceActivity.MinDurationSeconds || !activity.Sufficient {
		flags.ShortDurationWarning = true
	}

	if tr.Available {
		flags.TranscriptionConfidence = TranscriptionLow
		if tr.Confidence >= transcriptionHighConfidence && tr.Runes >= cfg.Review.ShortTranscriptRunes {
			flags.TranscriptionConfidence = TranscriptionHigh
		}
	}

	return flags
}
