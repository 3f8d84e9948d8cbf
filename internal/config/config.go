package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	InputDir  string `toml:"input_dir"`
	OutputDir string `toml:"output_dir"`
	LogDir    string `toml:"log_dir"`
}

// Analysis contains frame-level feature extraction settings.
type Analysis struct {
	SampleRate        int     `toml:"sample_rate"`
	FrameMillis       int     `toml:"frame_millis"`
	FrameOverlap      float64 `toml:"frame_overlap"`
	ClippingAmplitude float64 `toml:"clipping_amplitude"`
}

// Noise contains SNR classification boundaries.
type Noise struct {
	// LowNoiseSNRdB is the SNR above which a recording is low_noise.
	LowNoiseSNRdB float64 `toml:"low_noise_snr_db"`
	// MediumNoiseSNRdB is the SNR above which a recording is medium_noise.
	MediumNoiseSNRdB float64 `toml:"medium_noise_snr_db"`
	// ConfidenceScaleDB controls how fast confidence grows with distance
	// from the nearest boundary.
	ConfidenceScaleDB float64 `toml:"confidence_scale_db"`
	// WarningSNRdB is the floor below which low_snr_warning is raised.
	WarningSNRdB float64 `toml:"warning_snr_db"`
}

// Clarity contains speech clarity classification boundaries.
type Clarity struct {
	ClearFlatness   float64 `toml:"clear_flatness"`
	MuffledFlatness float64 `toml:"muffled_flatness"`
	ClippingRatio   float64 `toml:"clipping_ratio"`
	ConfidenceScale float64 `toml:"confidence_scale"`
}

// VoiceActivity contains speech presence thresholds.
type VoiceActivity struct {
	MinSpeechRatio     float64 `toml:"min_speech_ratio"`
	MinDurationSeconds float64 `toml:"min_duration_seconds"`
}

// Style contains speaking style heuristics.
type Style struct {
	// ReadMaxPausesPerMinute bounds the pause rate for read speech.
	ReadMaxPausesPerMinute float64 `toml:"read_max_pauses_per_minute"`
	// ConversationalMinPausesPerMinute marks frequent turn-taking gaps.
	ConversationalMinPausesPerMinute float64 `toml:"conversational_min_pauses_per_minute"`
	// ReadMaxEnergyVariation bounds RMS variation for read speech.
	ReadMaxEnergyVariation float64 `toml:"read_max_energy_variation"`
	// MinPauseSeconds is the shortest gap counted as a pause.
	MinPauseSeconds float64 `toml:"min_pause_seconds"`
}

// Linguistic contains code-switching and vocabulary thresholds.
type Linguistic struct {
	// SomeSwitchRatio is the foreign-token fraction above which code
	// switching is "some".
	SomeSwitchRatio float64 `toml:"some_switch_ratio"`
	// FrequentSwitchRatio is the fraction above which it is "frequent".
	FrequentSwitchRatio float64 `toml:"frequent_switch_ratio"`
	// KeywordMinHits is the minimum domain keyword count before a
	// vocabulary domain is suggested over "general".
	KeywordMinHits int `toml:"keyword_min_hits"`
}

// Review contains confidence cutoffs for the manual-review map.
type Review struct {
	RequiredBelow    float64 `toml:"required_below"`
	RecommendedBelow float64 `toml:"recommended_below"`
	// ShortTranscriptRunes marks transcripts too short to trust.
	ShortTranscriptRunes int `toml:"short_transcript_runes"`
}

// Transcription contains settings for the external speech recognizer.
type Transcription struct {
	Enabled        bool   `toml:"enabled"`
	Command        string `toml:"command"`
	Model          string `toml:"model"`
	Language       string `toml:"language"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	MaxConcurrent  int    `toml:"max_concurrent"`
}

// Workflow contains worker pool and polling configuration.
type Workflow struct {
	// Workers is the processing pool size. Zero selects a default based
	// on whether transcription is enabled.
	Workers            int `toml:"workers"`
	QueuePollInterval  int `toml:"queue_poll_interval"`
	ErrorRetryInterval int `toml:"error_retry_interval"`
}

// Logging contains log output configuration.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for speechtag.
//
// Sections by subsystem:
//   - Paths: input/output/log directories
//   - Analysis: frame extraction parameters
//   - Noise, Clarity, VoiceActivity, Style: classifier boundary tables
//   - Linguistic: code-switching and vocabulary thresholds
//   - Review: manual-review confidence cutoffs
//   - Transcription: external recognizer settings
//   - Workflow: worker pool and polling intervals
//   - Logging: log format and level
type Config struct {
	Paths         Paths         `toml:"paths"`
	Analysis      Analysis      `toml:"analysis"`
	Noise         Noise         `toml:"noise"`
	Clarity       Clarity       `toml:"clarity"`
	VoiceActivity VoiceActivity `toml:"voice_activity"`
	Style         Style         `toml:"style"`
	Linguistic    Linguistic    `toml:"linguistic"`
	Review        Review        `toml:"review"`
	Transcription Transcription `toml:"transcription"`
	Workflow      Workflow      `toml:"workflow"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/speechtag/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("speechtag.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

func (c *Config) normalize() error {
	var err error
	if c.Paths.InputDir, err = expandPath(c.Paths.InputDir); err != nil {
		return err
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return err
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return err
	}
	c.Transcription.Command = strings.TrimSpace(c.Transcription.Command)
	c.Transcription.Model = strings.TrimSpace(c.Transcription.Model)
	c.Transcription.Language = strings.TrimSpace(c.Transcription.Language)
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	return nil
}

// EnsureDirectories creates the directories required for processing.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.OutputDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// WorkerCount resolves the effective worker pool size. Transcription is
// the expensive shared stage, so its presence shrinks the default pool.
func (c *Config) WorkerCount() int {
	if c.Workflow.Workers > 0 {
		return c.Workflow.Workers
	}
	if c.Transcription.Enabled {
		return defaultWorkersTranscribing
	}
	return defaultWorkersFast
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
