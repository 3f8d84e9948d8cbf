package linguistic

import (
	"strings"
	"testing"

	"speechtag/internal/classify"
	"speechtag/internal/config"
)

func linguisticConfig() config.Linguistic {
	return config.Linguistic{
		SomeSwitchRatio:     0.05,
		FrequentSwitchRatio: 0.25,
		KeywordMinHits:      3,
	}
}

func TestCodeSwitchingLevels(t *testing.T) {
	cfg := linguisticConfig()
	cases := []struct {
		name string
		text string
		want string
	}{
		{
			name: "pure thai",
			text: "สวัสดีครับ วันนี้อากาศดีมาก ผมไปตลาดมา",
			want: classify.SwitchingNone,
		},
		{
			name: "occasional english term",
			text: "วันนี้ ผม ไป ประชุม กับ ทีม meeting ตอน บ่าย แล้ว ส่ง email หา ลูกค้า ครับ",
			want: classify.SwitchingSome,
		},
		{
			name: "heavy mixing",
			text: "เรา ต้อง deploy service ใหม่ ขึ้น production ก่อน release วัน ศุกร์",
			want: classify.SwitchingFrequent,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tag := CodeSwitching(tc.text, true, cfg)
			if tag.Value != tc.want {
				t.Fatalf("got %s, want %s", tag.Value, tc.want)
			}
			if !tag.Automated {
				t.Fatal("code switching with text must be automated")
			}
		})
	}
}

func TestCodeSwitchingUnavailable(t *testing.T) {
	cfg := linguisticConfig()
	for _, tc := range []struct {
		text      string
		available bool
	}{
		{"", true},
		{"   ", true},
		{"ข้อความ", false},
	} {
		tag := CodeSwitching(tc.text, tc.available, cfg)
		if tag.Value != classify.SwitchingUnavailable {
			t.Fatalf("text %q available=%v: got %s", tc.text, tc.available, tag.Value)
		}
		if tag.Automated {
			t.Fatal("unavailable tag must not be automated")
		}
	}
}

func TestForeignTokenFractionIgnoresDigitsAndPunctuation(t *testing.T) {
	// Two scripted tokens, one foreign. The number and punctuation carry
	// no script and must not dilute the ratio.
	frac := foreignTokenFraction("สวัสดี hello 123 ... 45.6")
	if frac != 0.5 {
		t.Fatalf("got fraction %.2f, want 0.50", frac)
	}
}

func TestVocabularyDomains(t *testing.T) {
	cfg := linguisticConfig()
	cases := []struct {
		name string
		text string
		want string
	}{
		{
			name: "medical",
			text: "ผู้ป่วย มาพบ แพทย์ ที่ โรงพยาบาล ด้วย อาการ ไข้สูง",
			want: classify.VocabularyMedical,
		},
		{
			name: "technical",
			text: "ทีม ต้อง deploy code ขึ้น server ใหม่ และ ปรับ ระบบ database",
			want: classify.VocabularyTechnical,
		},
		{
			name: "business",
			text: "บริษัท รายงาน ผลกำไร และ รายได้ จาก การ ลงทุน ใน หุ้น",
			want: classify.VocabularyBusiness,
		},
		{
			name: "everyday speech stays general",
			text: "วันนี้ อากาศ ดี มาก เลย ไป เดิน เล่น ที่ สวน",
			want: classify.VocabularyGeneral,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tag := Vocabulary(tc.text, true, cfg)
			if tag.Value != tc.want {
				t.Fatalf("got %s, want %s", tag.Value, tc.want)
			}
			if tag.Automated {
				t.Fatal("vocabulary suggestion must always be advisory")
			}
		})
	}
}

func TestVocabularyBelowMinHitsStaysGeneral(t *testing.T) {
	cfg := linguisticConfig()
	// Two technical keywords only, below the three-hit minimum.
	tag := Vocabulary("ปรับ ระบบ กับ โปรแกรม นิดหน่อย", true, cfg)
	if tag.Value != classify.VocabularyGeneral {
		t.Fatalf("two hits should stay general, got %s", tag.Value)
	}
}

func TestVocabularyUnavailable(t *testing.T) {
	tag := Vocabulary("", false, linguisticConfig())
	if tag.Value != classify.VocabularyGeneral {
		t.Fatalf("got %s, want general", tag.Value)
	}
	if tag.Confidence != classify.MinimumConfidence {
		t.Fatalf("got confidence %.2f, want minimum", tag.Confidence)
	}
}

func TestVocabularyConfidenceNeverAutomatedTrust(t *testing.T) {
	cfg := linguisticConfig()
	text := strings.Join(domainKeywords[classify.VocabularyTechnical], " ")
	tag := Vocabulary(text, true, cfg)
	if tag.Value != classify.VocabularyTechnical {
		t.Fatalf("got %s, want technical", tag.Value)
	}
	if tag.Confidence > 0.9 {
		t.Fatalf("advisory confidence capped at 0.9, got %.2f", tag.Confidence)
	}
}
