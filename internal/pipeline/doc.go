// Package pipeline runs the per-file tagging stages in order: decode,
// acoustic feature extraction, classification, optional transcription
// with normalization, linguistic analysis, and record assembly. A file
// is processed to completion or reported as failed; no partial record
// is ever written.
package pipeline
