package config

const (
	defaultInputDir  = "~/speechtag/audio"
	defaultOutputDir = "~/speechtag/metadata"
	defaultLogDir    = "~/.local/share/speechtag/logs"

	defaultSampleRate        = 16000
	defaultFrameMillis       = 25
	defaultFrameOverlap      = 0.5
	defaultClippingAmplitude = 0.985

	defaultLowNoiseSNRdB     = 25.0
	defaultMediumNoiseSNRdB  = 15.0
	defaultNoiseConfScaleDB  = 10.0
	defaultWarningSNRdB      = 15.0
	defaultClearFlatness     = 0.35
	defaultMuffledFlatness   = 0.60
	defaultClippingRatio     = 0.01
	defaultClarityConfScale  = 0.25
	defaultMinSpeechRatio    = 0.10
	defaultMinDurationSecs   = 1.0
	defaultReadMaxPauseRate  = 5.0
	defaultConvMinPauseRate  = 18.0
	defaultReadMaxEnergyVar  = 0.05
	defaultMinPauseSeconds   = 0.1
	defaultSomeSwitchRatio   = 0.05
	defaultFrequentRatio     = 0.25
	defaultKeywordMinHits    = 3
	defaultRequiredBelow     = 0.55
	defaultRecommendedBelow  = 0.75
	defaultShortTranscript   = 10
	defaultWhisperCommand    = "whisper"
	defaultWhisperModel      = "medium"
	defaultLanguage          = "th"
	defaultTranscribeTimeout = 600
	defaultMaxConcurrent     = 1

	defaultWorkersTranscribing = 2
	defaultWorkersFast         = 8

	defaultQueuePollInterval  = 5
	defaultErrorRetryInterval = 10
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			InputDir:  defaultInputDir,
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
		},
		Analysis: Analysis{
			SampleRate:        defaultSampleRate,
			FrameMillis:       defaultFrameMillis,
			FrameOverlap:      defaultFrameOverlap,
			ClippingAmplitude: defaultClippingAmplitude,
		},
		Noise: Noise{
			LowNoiseSNRdB:     defaultLowNoiseSNRdB,
			MediumNoiseSNRdB:  defaultMediumNoiseSNRdB,
			ConfidenceScaleDB: defaultNoiseConfScaleDB,
			WarningSNRdB:      defaultWarningSNRdB,
		},
		Clarity: Clarity{
			ClearFlatness:   defaultClearFlatness,
			MuffledFlatness: defaultMuffledFlatness,
			ClippingRatio:   defaultClippingRatio,
			ConfidenceScale: defaultClarityConfScale,
		},
		VoiceActivity: VoiceActivity{
			MinSpeechRatio:     defaultMinSpeechRatio,
			MinDurationSeconds: defaultMinDurationSecs,
		},
		Style: Style{
			ReadMaxPausesPerMinute:           defaultReadMaxPauseRate,
			ConversationalMinPausesPerMinute: defaultConvMinPauseRate,
			ReadMaxEnergyVariation:           defaultReadMaxEnergyVar,
			MinPauseSeconds:                  defaultMinPauseSeconds,
		},
		Linguistic: Linguistic{
			SomeSwitchRatio:     defaultSomeSwitchRatio,
			FrequentSwitchRatio: defaultFrequentRatio,
			KeywordMinHits:      defaultKeywordMinHits,
		},
		Review: Review{
			RequiredBelow:        defaultRequiredBelow,
			RecommendedBelow:     defaultRecommendedBelow,
			ShortTranscriptRunes: defaultShortTranscript,
		},
		Transcription: Transcription{
			Enabled:        true,
			Command:        defaultWhisperCommand,
			Model:          defaultWhisperModel,
			Language:       defaultLanguage,
			TimeoutSeconds: defaultTranscribeTimeout,
			MaxConcurrent:  defaultMaxConcurrent,
		},
		Workflow: Workflow{
			QueuePollInterval:  defaultQueuePollInterval,
			ErrorRetryInterval: defaultErrorRetryInterval,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
