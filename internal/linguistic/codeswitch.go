package linguistic

import (
	"strings"
	"unicode"

	"speechtag/internal/classify"
	"speechtag/internal/config"
)

// CodeSwitching measures how much of a Thai transcript leans on
// foreign-script tokens. Given text it is deterministic, so the tag is
// automated; without text it degrades to "unavailable" and advisory.
func CodeSwitching(text string, available bool, cfg config.Linguistic) classify.Tag {
	if !available || strings.TrimSpace(text) == "" {
		return classify.Tag{
			Category:   classify.CategoryCodeSwitching,
			Value:      classify.SwitchingUnavailable,
			Confidence: classify.MinimumConfidence,
			Automated:  false,
		}
	}

	fraction := foreignTokenFraction(text)

	var value string
	switch {
	case fraction >= cfg.FrequentSwitchRatio:
		value = classify.SwitchingFrequent
	case fraction >= cfg.SomeSwitchRatio:
		value = classify.SwitchingSome
	default:
		value = classify.SwitchingNone
	}

	return classify.Tag{
		Category:   classify.CategoryCodeSwitching,
		Value:      value,
		Confidence: switchConfidence(fraction, cfg),
		Automated:  true,
	}
}

// switchConfidence grows with distance from the nearest switching
// boundary, saturating half a band away.
func switchConfidence(fraction float64, cfg config.Linguistic) float64 {
	distance := classify.NearestBoundaryDistance(fraction, cfg.SomeSwitchRatio, cfg.FrequentSwitchRatio)
	scale := (cfg.FrequentSwitchRatio - cfg.SomeSwitchRatio) / 2
	if scale <= 0 {
		scale = cfg.SomeSwitchRatio
	}
	return classify.BoundaryDistanceConfidence(distance, scale)
}

// foreignTokenFraction returns the fraction of script-bearing tokens that
// are Latin or mixed script. Digits and punctuation carry no script and
// are ignored.
func foreignTokenFraction(text string) float64 {
	var scripted, foreign int
	for _, token := range strings.Fields(text) {
		hasThai, hasLatin := tokenScripts(token)
		if !hasThai && !hasLatin {
			continue
		}
		scripted++
		if hasLatin {
			foreign++
		}
	}
	if scripted == 0 {
		return 0
	}
	return float64(foreign) / float64(scripted)
}

func tokenScripts(token string) (hasThai, hasLatin bool) {
	for _, r := range token {
		switch {
		case r >= 0x0E00 && r <= 0x0E7F:
			hasThai = true
		case unicode.Is(unicode.Latin, r):
			hasLatin = true
		}
	}
	return hasThai, hasLatin
}
