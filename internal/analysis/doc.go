// Package analysis extracts frame-level and file-level acoustic features
// from decoded audio: energy profile, noise floor and signal estimates,
// SNR, voice activity, clipping, zero crossings, and spectral flatness.
//
// The speech/noise partition is adaptive to each recording's own dynamic
// range rather than a fixed absolute level, so the extractor behaves
// consistently across differently normalized recordings.
package analysis
