package whisper

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTranscribeParsesOutput(t *testing.T) {
	svc := NewService(Config{Model: "tiny", Language: "th"})
	svc.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		if name != DefaultCommand {
			t.Fatalf("unexpected command %q", name)
		}
		outDir := argValue(t, args, "--output_dir")
		doc := map[string]any{
			"text":     " สวัสดีครับ hello ",
			"language": "th",
			"segments": []map[string]any{
				{"avg_logprob": -0.105},
				{"avg_logprob": -0.223},
			},
		}
		data, err := json.Marshal(doc)
		if err != nil {
			return err
		}
		return os.WriteFile(filepath.Join(outDir, "clip.json"), data, 0o644)
	})

	result, err := svc.Transcribe(context.Background(), "/audio/clip.mp3")
	if err != nil {
		t.Fatalf("Transcribe returned error: %v", err)
	}
	if result.Text != "สวัสดีครับ hello" {
		t.Fatalf("unexpected text %q", result.Text)
	}
	if result.Language != "th" {
		t.Fatalf("unexpected language %q", result.Language)
	}
	if result.Confidence < 0.8 || result.Confidence > 0.9 {
		t.Fatalf("unexpected confidence %.3f", result.Confidence)
	}
}

func TestTranscribeCommandFailure(t *testing.T) {
	svc := NewService(Config{})
	svc.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		return os.ErrNotExist
	})

	if _, err := svc.Transcribe(context.Background(), "/audio/clip.mp3"); err == nil {
		t.Fatal("expected error from failing recognizer")
	}
}

func TestTranscribeHonorsCancellation(t *testing.T) {
	svc := NewService(Config{MaxConcurrent: 1})
	svc.sem <- struct{}{} // occupy the only slot

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := svc.Transcribe(ctx, "/audio/clip.mp3"); err == nil {
		t.Fatal("expected context error while waiting on semaphore")
	}
}

func argValue(t *testing.T, args []string, flag string) string {
	t.Helper()
	for i, arg := range args {
		if arg == flag && i+1 < len(args) {
			return args[i+1]
		}
	}
	t.Fatalf("flag %q not found in %s", flag, strings.Join(args, " "))
	return ""
}
