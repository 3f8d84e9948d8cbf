package classify

import (
	"speechtag/internal/analysis"
	"speechtag/internal/config"
)

// Activity summarizes detected voice presence for a recording.
type Activity struct {
	Ratio      float64
	Percentage float64
	// Sufficient reports whether enough of the recording is speech to
	// trust downstream measurements, independent of wall-clock duration.
	Sufficient bool
}

// VoiceActivity converts the extracted voice activity ratio into the
// record-facing percentage and the sufficient-speech verdict.
func VoiceActivity(features analysis.AcousticFeatures, cfg config.VoiceActivity) Activity {
	ratio := features.VoiceActivityRatio
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	return Activity{
		Ratio:      ratio,
		Percentage: ratio * 100,
		Sufficient: ratio >= cfg.MinSpeechRatio,
	}
}
