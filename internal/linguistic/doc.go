// Package linguistic derives content tags from a transcript: the
// code-switching level between Thai and foreign-script tokens, and an
// advisory vocabulary-domain suggestion from fixed keyword sets. Both
// degrade gracefully when no transcription is available.
package linguistic
