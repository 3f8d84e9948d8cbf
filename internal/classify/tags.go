package classify

import "math"

// Tag categories. These are part of the output record contract and never
// change between releases.
const (
	CategoryNoiseLevel     = "noise_level"
	CategorySpeechClarity  = "speech_clarity"
	CategoryCodeSwitching  = "code_switching"
	CategorySpeakingStyle  = "speaking_style"
	CategoryVocabularyType = "vocabulary_type"
)

// Noise level labels.
const (
	NoiseLow    = "low_noise"
	NoiseMedium = "medium_noise"
	NoiseHigh   = "high_noise"
)

// Speech clarity labels.
const (
	ClarityClear     = "clear_speech"
	ClarityMuffled   = "muffled_speech"
	ClarityDistorted = "distorted_speech"
)

// Speaking style labels.
const (
	StyleRead           = "read_speech"
	StyleSpontaneous    = "spontaneous_speech"
	StyleConversational = "conversational"
)

// Code switching labels.
const (
	SwitchingNone        = "none"
	SwitchingSome        = "some"
	SwitchingFrequent    = "frequent"
	SwitchingUnavailable = "unavailable"
)

// Vocabulary domain labels.
const (
	VocabularyGeneral   = "general"
	VocabularyBusiness  = "business"
	VocabularyMedical   = "medical"
	VocabularyTechnical = "technical"
)

// MinimumConfidence is assigned to fail-safe labels derived from
// indeterminate or missing features. It sits well below the review
// cutoffs so such tags always land in the manual-review map.
const MinimumConfidence = 0.10

const (
	// boundaryConfidence is assigned to a value sitting exactly on a
	// classification boundary. It matches the review cutoff so borderline
	// tags get flagged rather than silently trusted.
	boundaryConfidence = 0.55
	maxConfidence      = 0.99
)

// Tag is one classification result. Automated tags are fully rule
// derived; advisory tags always require human confirmation regardless
// of confidence.
type Tag struct {
	Category   string
	Value      string
	Confidence float64
	Automated  bool
}

// BoundaryDistanceConfidence maps the distance between a measured value
// and its nearest classification boundary to a confidence. Confidence is
// monotone in distance: on the boundary it equals the review cutoff, and
// it saturates at maxConfidence once the distance reaches scale.
func BoundaryDistanceConfidence(distance, scale float64) float64 {
	if scale <= 0 {
		return boundaryConfidence
	}
	frac := math.Abs(distance) / scale
	if frac > 1 {
		frac = 1
	}
	return boundaryConfidence + (maxConfidence-boundaryConfidence)*frac
}

func NearestBoundaryDistance(value float64, boundaries ...float64) float64 {
	nearest := math.Inf(1)
	for _, b := range boundaries {
		if d := math.Abs(value - b); d < nearest {
			nearest = d
		}
	}
	return nearest
}
