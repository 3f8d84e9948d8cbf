package pipeline_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"speechtag/internal/classify"
	"speechtag/internal/pipeline"
	"speechtag/internal/review"
	"speechtag/internal/services"
	"speechtag/internal/services/whisper"
	"speechtag/internal/testsupport"
)

type stubTranscriber struct {
	result whisper.Result
	err    error
	calls  int
}

func (s *stubTranscriber) Transcribe(ctx context.Context, audioPath string) (whisper.Result, error) {
	s.calls++
	if s.err != nil {
		return whisper.Result{}, s.err
	}
	return s.result, nil
}

func TestProcessCleanRecording(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Transcription.Enabled = true
	dir := t.TempDir()
	path := filepath.Join(dir, "clean.wav")
	testsupport.WriteSpeechWAV(t, path, 16000, 10.0)

	tr := &stubTranscriber{result: whisper.Result{
		Text:       "สวัสดีครับ วันนี้เราจะมาพูดถึงเรื่องการบันทึกเสียงสำหรับคลังข้อมูล",
		Language:   "th",
		Confidence: 0.92,
	}}
	p := pipeline.New(cfg, nil, tr)

	record, err := p.Process(context.Background(), path)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	if record.AutomatedTags.NoiseLevel != classify.NoiseLow {
		t.Errorf("noise level %s, want low_noise", record.AutomatedTags.NoiseLevel)
	}
	if record.AutomatedTags.SpeechClarity != classify.ClarityClear {
		t.Errorf("clarity %s, want clear_speech", record.AutomatedTags.SpeechClarity)
	}
	if record.QualityFlags.LowSNRWarning {
		t.Error("clean recording must not raise the low SNR warning")
	}
	if record.QualityFlags.ShortDurationWarning {
		t.Error("10s recording must not raise the short duration warning")
	}
	if !record.Transcription.Available {
		t.Error("transcription should be available")
	}
	if record.LinguisticAnalysis.CodeSwitching != classify.SwitchingNone {
		t.Errorf("code switching %s, want none", record.LinguisticAnalysis.CodeSwitching)
	}
	if tr.calls != 1 {
		t.Errorf("transcriber called %d times, want 1", tr.calls)
	}
}

func TestProcessNearSilentClip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "silent.wav")
	testsupport.WriteSilentWAV(t, path, 16000, 1.0)

	p := pipeline.New(cfg, nil, nil)
	record, err := p.Process(context.Background(), path)
	if err != nil {
		t.Fatalf("degenerate audio must produce a record, got error: %v", err)
	}

	if record.AutomatedTags.VoiceActivityPercentage != 0 {
		t.Errorf("voice activity %.1f, want 0", record.AutomatedTags.VoiceActivityPercentage)
	}
	if !record.QualityFlags.ShortDurationWarning {
		t.Error("near-silent clip must raise the short duration warning")
	}
	if !record.QualityFlags.LowSNRWarning {
		t.Error("indeterminate SNR must raise the low SNR warning")
	}
	if record.AutomatedTags.NoiseLevel != classify.NoiseHigh {
		t.Errorf("noise level %s, want fail-safe high_noise", record.AutomatedTags.NoiseLevel)
	}
	if record.AutomatedTags.SpeechClarity != classify.ClarityMuffled {
		t.Errorf("clarity %s, want fail-safe muffled_speech", record.AutomatedTags.SpeechClarity)
	}
}

func TestProcessTranscriptionUnavailable(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Transcription.Enabled = true
	dir := t.TempDir()
	path := filepath.Join(dir, "clip.wav")
	testsupport.WriteSpeechWAV(t, path, 16000, 5.0)

	tr := &stubTranscriber{err: errors.New("whisper exited 1")}
	p := pipeline.New(cfg, nil, tr)

	record, err := p.Process(context.Background(), path)
	if err != nil {
		t.Fatalf("transcription failure must not fail the pipeline: %v", err)
	}

	if record.Transcription.Available {
		t.Error("transcription must be marked unavailable")
	}
	if record.LinguisticAnalysis.CodeSwitching != classify.SwitchingUnavailable {
		t.Errorf("code switching %s, want unavailable", record.LinguisticAnalysis.CodeSwitching)
	}
	if record.LinguisticAnalysis.VocabularyTypeSuggested != classify.VocabularyGeneral {
		t.Errorf("vocabulary %s, want general", record.LinguisticAnalysis.VocabularyTypeSuggested)
	}
	if record.QualityFlags.TranscriptionConfidence != review.TranscriptionNone {
		t.Errorf("transcription confidence %s, want none", record.QualityFlags.TranscriptionConfidence)
	}
	for _, category := range []string{classify.CategoryCodeSwitching, classify.CategoryVocabularyType} {
		if level := record.ManualReviewRequired[category]; level != review.Required {
			t.Errorf("%s review level %q, want required", category, level)
		}
	}
}

func TestProcessFrequentCodeSwitching(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Transcription.Enabled = true
	dir := t.TempDir()
	path := filepath.Join(dir, "mixed.wav")
	testsupport.WriteSpeechWAV(t, path, 16000, 5.0)

	tr := &stubTranscriber{result: whisper.Result{
		Text:       "เรา ต้อง deploy release ใหม่ ขึ้น production server คืน นี้",
		Language:   "th",
		Confidence: 0.88,
	}}
	p := pipeline.New(cfg, nil, tr)

	record, err := p.Process(context.Background(), path)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if record.LinguisticAnalysis.CodeSwitching != classify.SwitchingFrequent {
		t.Fatalf("code switching %s, want frequent", record.LinguisticAnalysis.CodeSwitching)
	}
}

func TestProcessCorruptFileFailsOnlyThatFile(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	dir := t.TempDir()
	corrupt := filepath.Join(dir, "broken.wav")
	if err := os.WriteFile(corrupt, []byte("RIFFgarbage"), 0o644); err != nil {
		t.Fatal(err)
	}
	good := filepath.Join(dir, "good.wav")
	testsupport.WriteSpeechWAV(t, good, 16000, 3.0)

	p := pipeline.New(cfg, nil, nil)

	_, err := p.Process(context.Background(), corrupt)
	if !errors.Is(err, services.ErrDecode) {
		t.Fatalf("expected decode error for corrupt file, got %v", err)
	}

	if _, err := p.Process(context.Background(), good); err != nil {
		t.Fatalf("good file must still process after a corrupt one: %v", err)
	}
}

func TestProcessIdempotent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Transcription.Enabled = true
	dir := t.TempDir()
	path := filepath.Join(dir, "clip.wav")
	testsupport.WriteSpeechWAV(t, path, 16000, 4.0)

	tr := &stubTranscriber{result: whisper.Result{Text: "สวัสดีครับ", Language: "th", Confidence: 0.9}}
	p := pipeline.New(cfg, nil, tr)

	first, err := p.Process(context.Background(), path)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := p.Process(context.Background(), path)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	// Timestamps differ between runs; everything measured must not.
	first.FileInfo.ProcessedAt = ""
	second.FileInfo.ProcessedAt = ""
	if !reflect.DeepEqual(first, second) {
		t.Fatal("two runs over the same bytes produced different records")
	}
}

func TestProcessToFileWritesRecord(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "clip.wav")
	testsupport.WriteSpeechWAV(t, path, 16000, 3.0)

	p := pipeline.New(cfg, nil, nil)
	outPath, _, err := p.ProcessToFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ProcessToFile: %v", err)
	}
	if filepath.Base(outPath) != "clip.json" {
		t.Fatalf("unexpected output name %s", filepath.Base(outPath))
	}
	if _, err := os.Stat(outPath); err != nil {
		t.Fatalf("output record missing: %v", err)
	}
}
