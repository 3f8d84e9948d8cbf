package linguistic

import (
	"strings"

	"speechtag/internal/classify"
	"speechtag/internal/config"
)

// Domain keyword sets. Deliberately small: they catch obvious domain
// recordings and leave everything else to the general fallback, since
// keyword matching has a high false-positive risk on short transcripts.
var domainKeywords = map[string][]string{
	classify.VocabularyBusiness: {
		"roi", "stakeholder", "revenue", "profit",
		"ผลกำไร", "รายได้", "ธุรกิจ", "การตลาด", "ลงทุน", "หุ้น", "บริษัท", "กำไร",
	},
	classify.VocabularyMedical: {
		"patient", "doctor", "hospital", "myocardial",
		"ผู้ป่วย", "แพทย์", "โรงพยาบาล", "อาการ", "การรักษา", "โรค", "ยา", "การวินิจฉัย",
	},
	classify.VocabularyTechnical: {
		"database", "server", "code", "algorithm", "deploy", "api",
		"software", "hardware", "โปรแกรม", "ระบบ", "เซิร์ฟเวอร์", "คอมพิวเตอร์",
	},
}

const (
	// vocabularyBaseConfidence is assigned when keyword evidence is at or
	// below the minimum, including the general fallback.
	vocabularyBaseConfidence = 0.5
	// vocabularyHitStep is the confidence gained per keyword hit above
	// the minimum.
	vocabularyHitStep = 0.1
	// vocabularyMaxConfidence caps the suggestion; an advisory tag never
	// reaches automated-trust confidence.
	vocabularyMaxConfidence = 0.9
)

// domainPriority breaks score ties: a transcript hitting medical and
// technical sets equally is more dangerous to mislabel as technical.
var domainPriority = []string{
	classify.VocabularyMedical,
	classify.VocabularyTechnical,
	classify.VocabularyBusiness,
}

// Vocabulary suggests a domain label from keyword hits. Always advisory
// (Automated=false): lexical matching is a hint, never a verdict. Without
// text the suggestion falls back to general.
func Vocabulary(text string, available bool, cfg config.Linguistic) classify.Tag {
	tag := classify.Tag{
		Category:   classify.CategoryVocabularyType,
		Value:      classify.VocabularyGeneral,
		Confidence: classify.MinimumConfidence,
		Automated:  false,
	}
	if !available || strings.TrimSpace(text) == "" {
		return tag
	}

	lower := strings.ToLower(text)
	best, bestHits := classify.VocabularyGeneral, 0
	for _, domain := range domainPriority {
		hits := 0
		for _, keyword := range domainKeywords[domain] {
			if strings.Contains(lower, keyword) {
				hits++
			}
		}
		if hits > bestHits {
			best, bestHits = domain, hits
		}
	}

	minHits := cfg.KeywordMinHits
	if minHits < 1 {
		minHits = 1
	}
	if bestHits >= minHits {
		tag.Value = best
		tag.Confidence = vocabularyConfidence(bestHits, minHits)
	} else {
		tag.Confidence = vocabularyBaseConfidence
	}
	return tag
}

// vocabularyConfidence grows with keyword hits above the minimum.
func vocabularyConfidence(hits, minHits int) float64 {
	conf := vocabularyBaseConfidence + vocabularyHitStep*float64(hits-minHits+1)
	if conf > vocabularyMaxConfidence {
		conf = vocabularyMaxConfidence
	}
	return conf
}
