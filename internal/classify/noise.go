package classify

import (
	"speechtag/internal/analysis"
	"speechtag/internal/config"
)

// Noise buckets a recording by signal-to-noise ratio. Higher SNR always
// yields a quieter bucket. Indeterminate SNR fails safe to high_noise at
// minimum confidence so the record is flagged for review instead of
// passing with an optimistic label.
func Noise(features analysis.AcousticFeatures, cfg config.Noise) Tag {
	if features.SNRIndeterminate {
		return Tag{
			Category:   CategoryNoiseLevel,
			Value:      NoiseHigh,
			Confidence: MinimumConfidence,
			Automated:  true,
		}
	}

	var value string
	switch {
	case features.SNRdB >= cfg.LowNoiseSNRdB:
		value = NoiseLow
	case features.SNRdB >= cfg.MediumNoiseSNRdB:
		value = NoiseMedium
	default:
		value = NoiseHigh
	}

	distance := NearestBoundaryDistance(features.SNRdB, cfg.LowNoiseSNRdB, cfg.MediumNoiseSNRdB)
	return Tag{
		Category:   CategoryNoiseLevel,
		Value:      value,
		Confidence: BoundaryDistanceConfidence(distance, cfg.ConfidenceScaleDB),
		Automated:  true,
	}
}
