package whisper

// Config captures runtime settings for Whisper transcription.
type Config struct {
	// Command is the whisper executable name or path.
	Command string
	// Model selects the model size (e.g., "medium").
	Model string
	// Language is the expected language code passed to the recognizer.
	Language string
	// MaxConcurrent bounds simultaneous transcription calls. The model
	// process is not assumed to be safe for concurrent use.
	MaxConcurrent int
}

// Whisper invocation constants.
const (
	DefaultCommand  = "whisper"
	DefaultModel    = "medium"
	DefaultLanguage = "th"
	TaskTranscribe  = "transcribe"
	OutputFormat    = "json"
)
