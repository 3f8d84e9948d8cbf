package metadata

// Record is the per-file output document. Field names are a
// compatibility contract with downstream corpus tooling and must not
// change.
type Record struct {
	FileInfo             FileInfo           `json:"file_info"`
	AudioProperties      AudioProperties    `json:"audio_properties"`
	AutomatedTags        AutomatedTags      `json:"automated_tags"`
	Transcription        Transcription      `json:"transcription"`
	LinguisticAnalysis   LinguisticAnalysis `json:"linguistic_analysis"`
	ManualReviewRequired map[string]string  `json:"manual_review_required"`
	QualityFlags         QualityFlags       `json:"quality_flags"`
}

type FileInfo struct {
	Filename      string `json:"filename"`
	ProcessedAt   string `json:"processed_at"`
	FileSizeBytes int64  `json:"file_size_bytes"`
}

type AudioProperties struct {
	DurationSeconds float64 `json:"duration_seconds"`
	SampleRate      int     `json:"sample_rate"`
}

type AutomatedTags struct {
	NoiseLevel              string  `json:"noise_level"`
	SNRdB                   float64 `json:"snr_db"`
	SpeechClarity           string  `json:"speech_clarity"`
	SpeakingStyleSuggested  string  `json:"speaking_style_suggested"`
	VoiceActivityPercentage float64 `json:"voice_activity_percentage"`
}

type Transcription struct {
	Available        bool    `json:"available"`
	TextRaw          *string `json:"text_raw"`
	TextNormalized   *string `json:"text_normalized"`
	LanguageDetected *string `json:"language_detected"`
}

type LinguisticAnalysis struct {
	CodeSwitching           string `json:"code_switching"`
	VocabularyTypeSuggested string `json:"vocabulary_type_suggested"`
}

type QualityFlags struct {
	LowSNRWarning           bool   `json:"low_snr_warning"`
	ShortDurationWarning    bool   `json:"short_duration_warning"`
	TranscriptionConfidence string `json:"transcription_confidence"`
}
