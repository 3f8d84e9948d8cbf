// Package metadata defines the per-file output record, the assembler
// that composes it from measured features and tags, and the atomic
// JSON writer that puts one record next to each processed recording.
package metadata
