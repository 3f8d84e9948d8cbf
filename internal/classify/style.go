package classify

import (
	"speechtag/internal/analysis"
	"speechtag/internal/config"
)

// Style suggests a speaking style from the pause rate and energy
// variation profile. Read speech pauses rarely and holds a steady level;
// conversational recordings pause often at turn boundaries. The heuristic
// is coarse, so the tag is always advisory (Automated=false).
func Style(features analysis.AcousticFeatures, cfg config.Style) Tag {
	if features.DurationSeconds <= 0 || features.VoiceActivityRatio == 0 {
		return Tag{
			Category:   CategorySpeakingStyle,
			Value:      StyleSpontaneous,
			Confidence: MinimumConfidence,
			Automated:  false,
		}
	}

	pausesPerMinute := float64(features.PauseCount) / (features.DurationSeconds / 60)

	var value string
	switch {
	case pausesPerMinute <= cfg.ReadMaxPausesPerMinute && features.EnergyVariation <= cfg.ReadMaxEnergyVariation:
		value = StyleRead
	case pausesPerMinute >= cfg.ConversationalMinPausesPerMinute:
		value = StyleConversational
	default:
		value = StyleSpontaneous
	}

	distance := NearestBoundaryDistance(pausesPerMinute, cfg.ReadMaxPausesPerMinute, cfg.ConversationalMinPausesPerMinute)
	scale := (cfg.ConversationalMinPausesPerMinute - cfg.ReadMaxPausesPerMinute) / 2
	return Tag{
		Category:   CategorySpeakingStyle,
		Value:      value,
		Confidence: BoundaryDistanceConfidence(distance, scale),
		Automated:  false,
	}
}
