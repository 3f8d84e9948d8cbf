package metadata

import (
	"math"
	"path/filepath"
	"time"

	"speechtag/internal/analysis"
	"speechtag/internal/classify"
	"speechtag/internal/review"
)

// Input collects everything the assembler composes into a Record. The
// transcription fields are optional: a missing transcript never blocks
// assembly.
type Input struct {
	SourcePath    string
	FileSizeBytes int64
	ProcessedAt   time.Time

	SampleRate int
	Features   analysis.AcousticFeatures
	Activity   classify.Activity

	Noise         classify.Tag
	Clarity       classify.Tag
	Style         classify.Tag
	CodeSwitching classify.Tag
	Vocabulary    classify.Tag

	TranscriptAvailable  bool
	TextRaw              string
	TextNormalized       string
	LanguageDetected     string
	ManualReviewRequired map[string]string
	Flags                review.Flags
}

// Assemble builds the output record. It is deterministic: the same
// input always yields field-identical records. Measured floats are
// rounded to fixed precision so re-runs compare equal.
func Assemble(in Input) *Record {
	rec := &Record{
		FileInfo: FileInfo{
			Filename:      filepath.Base(in.SourcePath),
			ProcessedAt:   in.ProcessedAt.UTC().Format(time.RFC3339),
			FileSizeBytes: in.FileSizeBytes,
		},
		AudioProperties: AudioProperties{
			DurationSeconds: round(in.Features.DurationSeconds, 3),
			SampleRate:      in.SampleRate,
		},
		AutomatedTags: AutomatedTags{
			NoiseLevel:              in.Noise.Value,
			SNRdB:                   round(snrValue(in.Features), 2),
			SpeechClarity:           in.Clarity.Value,
			SpeakingStyleSuggested:  in.Style.Value,
			VoiceActivityPercentage: round(in.Activity.Percentage, 2),
		},
		Transcription: Transcription{
			Available: in.TranscriptAvailable,
		},
		LinguisticAnalysis: LinguisticAnalysis{
			CodeSwitching:           in.CodeSwitching.Value,
			VocabularyTypeSuggested: in.Vocabulary.Value,
		},
		ManualReviewRequired: in.ManualReviewRequired,
		QualityFlags: QualityFlags{
			LowSNRWarning:           in.Flags.LowSNRWarning,
			ShortDurationWarning:    in.Flags.ShortDurationWarning,
			TranscriptionConfidence: in.Flags.TranscriptionConfidence,
		},
	}

	if rec.ManualReviewRequired == nil {
		rec.ManualReviewRequired = map[string]string{}
	}

	if in.TranscriptAvailable {
		rec.Transcription.TextRaw = stringPtr(in.TextRaw)
		rec.Transcription.TextNormalized = stringPtr(in.TextNormalized)
		if in.LanguageDetected != "" {
			rec.Transcription.LanguageDetected = stringPtr(in.LanguageDetected)
		}
	}

	return rec
}

// snrValue keeps indeterminate SNR out of the record as a real-looking
// number: it serializes as 0 alongside the forced high_noise label and
// low_snr_warning flag.
func snrValue(features analysis.AcousticFeatures) float64 {
	if features.SNRIndeterminate {
		return 0
	}
	return features.SNRdB
}

func round(v float64, places int) float64 {
	scale := math.Pow10(places)
	return math.Round(v*scale) / scale
}

func stringPtr(s string) *string {
	return &s
}
