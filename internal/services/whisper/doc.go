// Package whisper invokes the Whisper CLI for speech transcription.
//
// The recognizer is treated as an opaque external collaborator: the
// pipeline supplies an audio path and receives text, a detected language,
// and a confidence estimate. Command execution is injectable for tests.
package whisper
