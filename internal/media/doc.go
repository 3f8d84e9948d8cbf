// Package media decodes audio files into mono PCM sample buffers at the
// pipeline's canonical sample rate.
package media
