package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"speechtag/internal/analysis"
	"speechtag/internal/classify"
	"speechtag/internal/config"
	"speechtag/internal/linguistic"
	"speechtag/internal/logging"
	"speechtag/internal/media"
	"speechtag/internal/metadata"
	"speechtag/internal/review"
	"speechtag/internal/services"
	"speechtag/internal/services/whisper"
	"speechtag/internal/textnorm"
)

// Transcriber produces a transcript for an audio file. The concrete
// implementation is the whisper service; tests inject stubs.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (whisper.Result, error)
}

// Pipeline runs the per-file stages: decode, feature extraction,
// classification, optional transcription, and record assembly. One
// Pipeline instance is shared by all workers; it holds no per-file
// state.
type Pipeline struct {
	cfg         *config.Config
	logger      *slog.Logger
	transcriber Transcriber
	normalizer  textnorm.Normalizer
	now         func() time.Time
}

// New builds a pipeline. transcriber may be nil, which disables the
// transcription stage regardless of config.
func New(cfg *config.Config, logger *slog.Logger, transcriber Transcriber) *Pipeline {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Pipeline{
		cfg:         cfg,
		logger:      logging.NewComponentLogger(logger, "pipeline"),
		transcriber: transcriber,
		normalizer:  textnorm.NewThai(),
		now:         time.Now,
	}
}

// Process runs all stages for one file and returns the assembled record.
// Decode failures are the only fatal outcome; everything downstream
// degrades into flags and fail-safe labels instead of errors.
func (p *Pipeline) Process(ctx context.Context, sourcePath string) (*metadata.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(sourcePath)
	if err != nil {
		return nil, services.Wrap(services.ErrDecode, "decode", "stat", sourcePath, err)
	}

	sample, err := media.Decode(sourcePath, p.cfg.Analysis.SampleRate)
	if err != nil {
		return nil, services.Wrap(services.ErrDecode, "decode", "read", sourcePath, err)
	}

	features := analysis.Extract(sample, analysis.ParamsFromConfig(p.cfg))
	if features.SNRIndeterminate {
		p.logger.Warn("indeterminate acoustic features",
			logging.String(logging.FieldFile, sourcePath),
			slog.Float64("duration_seconds", features.DurationSeconds))
	}

	activity := classify.VoiceActivity(features, p.cfg.VoiceActivity)
	noiseTag := classify.Noise(features, p.cfg.Noise)
	clarityTag := classify.Clarity(features, p.cfg.Clarity)
	styleTag := classify.Style(features, p.cfg.Style)

	transcript := p.transcribe(ctx, sourcePath)

	switchTag := linguistic.CodeSwitching(transcript.normalized, transcript.available, p.cfg.Linguistic)
	vocabTag := linguistic.Vocabulary(transcript.normalized, transcript.available, p.cfg.Linguistic)

	tags := []classify.Tag{noiseTag, clarityTag, styleTag, switchTag, vocabTag}
	reviewMap := review.ManualReview(tags, p.cfg.Review)
	flags := review.BuildFlags(features, activity, review.TranscriptSignal{
		Available:  transcript.available,
		Confidence: transcript.confidence,
		Runes:      len([]rune(transcript.normalized)),
	}, p.cfg)

	record := metadata.Assemble(metadata.Input{
		SourcePath:           sourcePath,
		FileSizeBytes:        info.Size(),
		ProcessedAt:          p.now(),
		SampleRate:           sample.SampleRate,
		Features:             features,
		Activity:             activity,
		Noise:                noiseTag,
		Clarity:              clarityTag,
		Style:                styleTag,
		CodeSwitching:        switchTag,
		Vocabulary:           vocabTag,
		TranscriptAvailable:  transcript.available,
		TextRaw:              transcript.raw,
		TextNormalized:       transcript.normalized,
		LanguageDetected:     transcript.language,
		ManualReviewRequired: reviewMap,
		Flags:                flags,
	})

	return record, nil
}

// ProcessToFile runs the pipeline and writes the record next to the
// configured output directory. Returns the output path and whether the
// record carries quality warnings.
func (p *Pipeline) ProcessToFile(ctx context.Context, sourcePath string) (string, bool, error) {
	record, err := p.Process(ctx, sourcePath)
	if err != nil {
		return "", false, err
	}
	// Shutdown between assembly and write: leave no record behind so the
	// item can be retried cleanly.
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	outPath := metadata.OutputPath(p.cfg.Paths.OutputDir, sourcePath)
	if err := metadata.Write(outPath, record); err != nil {
		return "", false, services.Wrap(services.ErrTransient, "assemble", "write", outPath, err)
	}

	warned := record.QualityFlags.LowSNRWarning || record.QualityFlags.ShortDurationWarning
	return outPath, warned, nil
}

type transcriptResult struct {
	available  bool
	raw        string
	normalized string
	language   string
	confidence float64
}

// transcribe runs the optional transcription stage. Failures never
// propagate: the linguistic stage degrades to unavailable tags instead.
func (p *Pipeline) transcribe(ctx context.Context, sourcePath string) transcriptResult {
	if p.transcriber == nil || !p.cfg.Transcription.Enabled {
		return transcriptResult{}
	}

	timeout := time.Duration(p.cfg.Transcription.TimeoutSeconds) * time.Second
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	result, err := p.transcriber.Transcribe(ctx, sourcePath)
	if err != nil {
		p.logger.Warn("transcription unavailable",
			logging.String(logging.FieldStage, "transcribe"),
			logging.String(logging.FieldFile, sourcePath),
			logging.Error(fmt.Errorf("%w: %w", services.ErrTranscription, err)))
		return transcriptResult{}
	}

	return transcriptResult{
		available:  true,
		raw:        result.Text,
		normalized: p.normalizer.Normalize(result.Text),
		language:   result.Language,
		confidence: result.Confidence,
	}
}
