package whisper

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Result is the transcription outcome handed to the pipeline.
type Result struct {
	Text       string
	Language   string
	Confidence float64
}

// Service invokes the whisper CLI and parses its JSON output. It is safe
// for concurrent use; calls beyond MaxConcurrent queue on a semaphore.
type Service struct {
	cfg           Config
	sem           chan struct{}
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewService creates a whisper transcription service.
func NewService(cfg Config) *Service {
	if cfg.Command == "" {
		cfg.Command = DefaultCommand
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Language == "" {
		cfg.Language = DefaultLanguage
	}
	if cfg.MaxConcurrent < 1 {
		cfg.MaxConcurrent = 1
	}
	return &Service{
		cfg: cfg,
		sem: make(chan struct{}, cfg.MaxConcurrent),
	}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	s.commandRunner = runner
}

// Model returns the configured model name for logging.
func (s *Service) Model() string {
	return s.cfg.Model
}

// whisperOutput mirrors the JSON document the whisper CLI writes.
type whisperOutput struct {
	Text     string `json:"text"`
	Language string `json:"language"`
	Segments []struct {
		AvgLogprob float64 `json:"avg_logprob"`
	} `json:"segments"`
}

// Transcribe runs the recognizer on an audio file. The caller owns the
// context deadline; the semaphore wait also honors cancellation.
func (s *Service) Transcribe(ctx context.Context, audioPath string) (Result, error) {
	select {
	case s.sem <- struct{}{}:
		defer func() { <-s.sem }()
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}

	outDir, err := os.MkdirTemp("", "speechtag-whisper-")
	if err != nil {
		return Result{}, fmt.Errorf("create transcription workdir: %w", err)
	}
	defer os.RemoveAll(outDir)

	args := buildArgs(s.cfg, audioPath, outDir)
	if err := s.run(ctx, s.cfg.Command, args...); err != nil {
		return Result{}, fmt.Errorf("run whisper: %w", err)
	}

	stem := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	data, err := os.ReadFile(filepath.Join(outDir, stem+".json"))
	if err != nil {
		return Result{}, fmt.Errorf("read whisper output: %w", err)
	}

	var out whisperOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return Result{}, fmt.Errorf("parse whisper output: %w", err)
	}

	result := Result{
		Text:       strings.TrimSpace(out.Text),
		Language:   out.Language,
		Confidence: segmentConfidence(out),
	}
	if result.Language == "" {
		result.Language = s.cfg.Language
	}
	return result, nil
}

func (s *Service) run(ctx context.Context, name string, args ...string) error {
	if s.commandRunner != nil {
		return s.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

func buildArgs(cfg Config, audioPath, outDir string) []string {
	return []string{
		audioPath,
		"--model", cfg.Model,
		"--language", cfg.Language,
		"--task", TaskTranscribe,
		"--output_format", OutputFormat,
		"--output_dir", outDir,
		"--verbose", "False",
	}
}

// segmentConfidence converts mean segment log probability into [0,1].
// No segments means the recognizer produced nothing trustworthy.
func segmentConfidence(out whisperOutput) float64 {
	if len(out.Segments) == 0 {
		return 0
	}
	var sum float64
	for _, seg := range out.Segments {
		sum += seg.AvgLogprob
	}
	mean := sum / float64(len(out.Segments))
	conf := math.Exp(mean)
	if conf > 1 {
		conf = 1
	}
	if conf < 0 {
		conf = 0
	}
	return conf
}
