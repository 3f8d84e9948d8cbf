package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable. Classifier boundaries are
// checked for monotonic ordering so a bad config fails before any file is
// processed instead of producing inconsistent tags.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateAnalysis(); err != nil {
		return err
	}
	if err := c.validateNoise(); err != nil {
		return err
	}
	if err := c.validateClarity(); err != nil {
		return err
	}
	if err := c.validateVoiceActivity(); err != nil {
		return err
	}
	if err := c.validateStyle(); err != nil {
		return err
	}
	if err := c.validateLinguistic(); err != nil {
		return err
	}
	if err := c.validateReview(); err != nil {
		return err
	}
	if err := c.validateTranscription(); err != nil {
		return err
	}
	if err := c.validateWorkflow(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.OutputDir == "" {
		return errors.New("paths.output_dir must be set")
	}
	if c.Paths.LogDir == "" {
		return errors.New("paths.log_dir must be set")
	}
	return nil
}

func (c *Config) validateAnalysis() error {
	if c.Analysis.SampleRate < 8000 {
		return errors.New("analysis.sample_rate must be at least 8000")
	}
	if c.Analysis.FrameMillis < 10 || c.Analysis.FrameMillis > 100 {
		return errors.New("analysis.frame_millis must be between 10 and 100")
	}
	if c.Analysis.FrameOverlap < 0 || c.Analysis.FrameOverlap >= 1 {
		return errors.New("analysis.frame_overlap must be in [0, 1)")
	}
	if c.Analysis.ClippingAmplitude <= 0 || c.Analysis.ClippingAmplitude > 1 {
		return errors.New("analysis.clipping_amplitude must be in (0, 1]")
	}
	return nil
}

func (c *Config) validateNoise() error {
	if c.Noise.LowNoiseSNRdB <= c.Noise.MediumNoiseSNRdB {
		return fmt.Errorf(
			"noise.low_noise_snr_db (%.1f) must be greater than noise.medium_noise_snr_db (%.1f)",
			c.Noise.LowNoiseSNRdB, c.Noise.MediumNoiseSNRdB,
		)
	}
	if c.Noise.ConfidenceScaleDB <= 0 {
		return errors.New("noise.confidence_scale_db must be positive")
	}
	return nil
}

func (c *Config) validateClarity() error {
	if c.Clarity.ClearFlatness >= c.Clarity.MuffledFlatness {
		return fmt.Errorf(
			"clarity.clear_flatness (%.2f) must be less than clarity.muffled_flatness (%.2f)",
			c.Clarity.ClearFlatness, c.Clarity.MuffledFlatness,
		)
	}
	if err := ensureRatioMap(map[string]float64{
		"clarity.clear_flatness":   c.Clarity.ClearFlatness,
		"clarity.muffled_flatness": c.Clarity.MuffledFlatness,
		"clarity.clipping_ratio":   c.Clarity.ClippingRatio,
	}); err != nil {
		return err
	}
	if c.Clarity.ConfidenceScale <= 0 {
		return errors.New("clarity.confidence_scale must be positive")
	}
	return nil
}

func (c *Config) validateVoiceActivity() error {
	if err := ensureRatioMap(map[string]float64{
		"voice_activity.min_speech_ratio": c.VoiceActivity.MinSpeechRatio,
	}); err != nil {
		return err
	}
	if c.VoiceActivity.MinDurationSeconds < 0 {
		return errors.New("voice_activity.min_duration_seconds must be >= 0")
	}
	return nil
}

func (c *Config) validateStyle() error {
	if c.Style.ReadMaxPausesPerMinute <= 0 {
		return errors.New("style.read_max_pauses_per_minute must be positive")
	}
	if c.Style.ConversationalMinPausesPerMinute <= c.Style.ReadMaxPausesPerMinute {
		return errors.New("style.conversational_min_pauses_per_minute must be greater than style.read_max_pauses_per_minute")
	}
	if c.Style.ReadMaxEnergyVariation <= 0 {
		return errors.New("style.read_max_energy_variation must be positive")
	}
	if c.Style.MinPauseSeconds <= 0 {
		return errors.New("style.min_pause_seconds must be positive")
	}
	return nil
}

func (c *Config) validateLinguistic() error {
	if err := ensureRatioMap(map[string]float64{
		"linguistic.some_switch_ratio":     c.Linguistic.SomeSwitchRatio,
		"linguistic.frequent_switch_ratio": c.Linguistic.FrequentSwitchRatio,
	}); err != nil {
		return err
	}
	if c.Linguistic.SomeSwitchRatio >= c.Linguistic.FrequentSwitchRatio {
		return fmt.Errorf(
			"linguistic.some_switch_ratio (%.2f) must be less than linguistic.frequent_switch_ratio (%.2f)",
			c.Linguistic.SomeSwitchRatio, c.Linguistic.FrequentSwitchRatio,
		)
	}
	if c.Linguistic.KeywordMinHits < 1 {
		return errors.New("linguistic.keyword_min_hits must be >= 1")
	}
	return nil
}

func (c *Config) validateReview() error {
	if err := ensureRatioMap(map[string]float64{
		"review.required_below":    c.Review.RequiredBelow,
		"review.recommended_below": c.Review.RecommendedBelow,
	}); err != nil {
		return err
	}
	if c.Review.RequiredBelow > c.Review.RecommendedBelow {
		return errors.New("review.required_below must not exceed review.recommended_below")
	}
	if c.Review.ShortTranscriptRunes < 0 {
		return errors.New("review.short_transcript_runes must be >= 0")
	}
	return nil
}

func (c *Config) validateTranscription() error {
	if !c.Transcription.Enabled {
		return nil
	}
	if c.Transcription.Command == "" {
		return errors.New("transcription.command must be set when transcription.enabled is true")
	}
	if c.Transcription.TimeoutSeconds <= 0 {
		return errors.New("transcription.timeout_seconds must be positive")
	}
	if c.Transcription.MaxConcurrent < 1 {
		return errors.New("transcription.max_concurrent must be >= 1")
	}
	return nil
}

func (c *Config) validateWorkflow() error {
	if c.Workflow.Workers < 0 {
		return errors.New("workflow.workers must be >= 0")
	}
	if c.Workflow.QueuePollInterval <= 0 {
		return errors.New("workflow.queue_poll_interval must be positive")
	}
	if c.Workflow.ErrorRetryInterval <= 0 {
		return errors.New("workflow.error_retry_interval must be positive")
	}
	return nil
}

func ensureRatioMap(values map[string]float64) error {
	for key, value := range values {
		if value < 0 || value > 1 {
			return fmt.Errorf("%s must be between 0 and 1", key)
		}
	}
	return nil
}
