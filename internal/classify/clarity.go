package classify

import (
	"speechtag/internal/analysis"
	"speechtag/internal/config"
)

// Clarity buckets a recording by spectral flatness over speech frames.
// Clipping above the configured ratio is an unambiguous distortion
// signal and overrides the spectral measure entirely. Indeterminate
// clarity fails safe to muffled_speech at minimum confidence.
func Clarity(features analysis.AcousticFeatures, cfg config.Clarity) Tag {
	if cfg.ClippingRatio > 0 && features.ClippingRatio >= cfg.ClippingRatio {
		return Tag{
			Category:   CategorySpeechClarity,
			Value:      ClarityDistorted,
			Confidence: BoundaryDistanceConfidence(features.ClippingRatio-cfg.ClippingRatio, cfg.ClippingRatio),
			Automated:  true,
		}
	}

	if features.ClarityIndeterminate {
		return Tag{
			Category:   CategorySpeechClarity,
			Value:      ClarityMuffled,
			Confidence: MinimumConfidence,
			Automated:  true,
		}
	}

	var value string
	switch {
	case features.SpectralFlatness <= cfg.ClearFlatness:
		value = ClarityClear
	case features.SpectralFlatness <= cfg.MuffledFlatness:
		value = ClarityMuffled
	default:
		value = ClarityDistorted
	}

	distance := NearestBoundaryDistance(features.SpectralFlatness, cfg.ClearFlatness, cfg.MuffledFlatness)
	return Tag{
		Category:   CategorySpeechClarity,
		Value:      value,
		Confidence: BoundaryDistanceConfidence(distance, cfg.ConfidenceScale),
		Automated:  true,
	}
}
