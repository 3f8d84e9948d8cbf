package analysis

import (
	"math"
	"sort"

	"speechtag/internal/config"
	"speechtag/internal/media"
)

// rmsEpsilon is the noise floor clamp that keeps the SNR ratio finite.
const rmsEpsilon = 1e-6

// Percentiles used to estimate noise and signal levels from the frame
// energy distribution. The noise floor comes from the quiet tail of the
// non-speech frames; the signal level from the loud tail of speech frames.
const (
	noiseFloorPercentile  = 0.15
	signalLevelPercentile = 0.90
	dynamicLowPercentile  = 0.10
	dynamicHighPercentile = 0.95
	// speechThresholdFraction positions the speech/noise energy split
	// within the recording's own dynamic range, keeping the partition
	// robust across differently normalized recordings.
	speechThresholdFraction = 0.2
)

// Params holds frame extraction settings.
type Params struct {
	SampleRate        int
	FrameMillis       int
	FrameOverlap      float64
	ClippingAmplitude float64
	MinPauseSeconds   float64
}

// ParamsFromConfig builds extraction parameters from application config.
func ParamsFromConfig(cfg *config.Config) Params {
	return Params{
		SampleRate:        cfg.Analysis.SampleRate,
		FrameMillis:       cfg.Analysis.FrameMillis,
		FrameOverlap:      cfg.Analysis.FrameOverlap,
		ClippingAmplitude: cfg.Analysis.ClippingAmplitude,
		MinPauseSeconds:   cfg.Style.MinPauseSeconds,
	}
}

// AcousticFeatures is a derived, read-only snapshot of a recording.
// Ratios are always in [0,1]. When a recording is degenerate (silent or
// shorter than one frame) SNR and clarity are marked indeterminate
// instead of carrying NaN or Inf.
type AcousticFeatures struct {
	SNRdB              float64
	NoiseFloorDB       float64
	SignalLevelDB      float64
	VoiceActivityRatio float64
	ClippingRatio      float64
	SpectralFlatness   float64
	ZeroCrossingRate   float64
	EnergyVariation    float64
	PauseCount         int
	AvgPauseSeconds    float64
	DurationSeconds    float64

	SNRIndeterminate     bool
	ClarityIndeterminate bool
}

// Extract computes file-level acoustic features from a decoded sample.
// It never fails: degenerate input produces indeterminate features.
func Extract(sample *media.AudioSample, p Params) AcousticFeatures {
	features := AcousticFeatures{
		SNRIndeterminate:     true,
		ClarityIndeterminate: true,
	}
	if sample == nil || p.SampleRate <= 0 {
		return features
	}

	features.DurationSeconds = sample.Duration()
	features.ClippingRatio = clippingRatio(sample.Samples, p.ClippingAmplitude)
	features.ZeroCrossingRate = zeroCrossingRate(sample.Samples)

	frameLen := p.SampleRate * p.FrameMillis / 1000
	if frameLen < 1 || len(sample.Samples) < frameLen {
		return features
	}
	hop := int(float64(frameLen) * (1 - p.FrameOverlap))
	if hop < 1 {
		hop = 1
	}

	frames := frameStarts(len(sample.Samples), frameLen, hop)
	energies := make([]float64, len(frames))
	for i, start := range frames {
		energies[i] = rms(sample.Samples[start : start+frameLen])
	}

	features.EnergyVariation = stddev(energies)

	low := percentile(energies, dynamicLowPercentile)
	high := percentile(energies, dynamicHighPercentile)
	if high-low < rmsEpsilon {
		// Flat energy profile: silence or constant tone, no usable
		// speech/noise separation.
		return features
	}
	threshold := low + speechThresholdFraction*(high-low)

	speechMask := make([]bool, len(energies))
	var speechEnergies, noiseEnergies []float64
	for i, e := range energies {
		if e >= threshold {
			speechMask[i] = true
			speechEnergies = append(speechEnergies, e)
		} else {
			noiseEnergies = append(noiseEnergies, e)
		}
	}

	features.VoiceActivityRatio = float64(len(speechEnergies)) / float64(len(energies))
	features.PauseCount, features.AvgPauseSeconds = pauseStats(speechMask, hop, p.SampleRate, p.MinPauseSeconds)

	if len(speechEnergies) == 0 {
		return features
	}

	signal := percentile(speechEnergies, signalLevelPercentile)
	noise := rmsEpsilon
	if len(noiseEnergies) > 0 {
		noise = percentile(noiseEnergies, noiseFloorPercentile)
	}
	if noise < rmsEpsilon {
		noise = rmsEpsilon
	}

	snr := 20 * math.Log10(signal/noise)
	if !math.IsInf(snr, 0) && !math.IsNaN(snr) {
		features.SNRdB = snr
		features.NoiseFloorDB = 20 * math.Log10(noise)
		features.SignalLevelDB = 20 * math.Log10(math.Max(signal, rmsEpsilon))
		features.SNRIndeterminate = false
	}

	// Clarity is measured over speech frames only; averaging flatness
	// across silence would drag the estimate toward noise.
	var flatnessSum float64
	var flatnessCount int
	for i, start := range frames {
		if !speechMask[i] {
			continue
		}
		frame := make([]float64, frameLen)
		copy(frame, sample.Samples[start:start+frameLen])
		flatnessSum += spectralFlatness(magnitudeSpectrum(frame))
		flatnessCount++
	}
	if flatnessCount > 0 {
		features.SpectralFlatness = flatnessSum / float64(flatnessCount)
		features.ClarityIndeterminate = false
	}

	return features
}

func frameStarts(total, frameLen, hop int) []int {
	var starts []int
	for start := 0; start+frameLen <= total; start += hop {
		starts = append(starts, start)
	}
	return starts
}

func rms(frame []float64) float64 {
	if len(frame) == 0 {
		return 0
	}
	var sum float64
	for _, s := range frame {
		sum += s * s
	}
	return math.Sqrt(sum / float64(len(frame)))
}

func zeroCrossingRate(samples []float64) float64 {
	if len(samples) < 2 {
		return 0
	}
	var crossings int
	for i := 1; i < len(samples); i++ {
		if (samples[i-1] >= 0) != (samples[i] >= 0) {
			crossings++
		}
	}
	return float64(crossings) / float64(len(samples)-1)
}

func clippingRatio(samples []float64, amplitude float64) float64 {
	if len(samples) == 0 || amplitude <= 0 {
		return 0
	}
	var clipped int
	for _, s := range samples {
		if math.Abs(s) >= amplitude {
			clipped++
		}
	}
	return float64(clipped) / float64(len(samples))
}

func stddev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	var mean float64
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))
	var sum float64
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)))
}

// percentile returns the p-quantile (0..1) using linear interpolation.
func percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := p * float64(len(sorted)-1)
	idx := int(pos)
	if idx >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(idx)
	return sorted[idx]*(1-frac) + sorted[idx+1]*frac
}

// pauseStats counts interior non-speech runs longer than minPause. Leading
// and trailing silence is not a pause.
func pauseStats(speechMask []bool, hop, sampleRate int, minPause float64) (int, float64) {
	firstSpeech, lastSpeech := -1, -1
	for i, speech := range speechMask {
		if speech {
			if firstSpeech < 0 {
				firstSpeech = i
			}
			lastSpeech = i
		}
	}
	if firstSpeech < 0 {
		return 0, 0
	}

	frameSeconds := float64(hop) / float64(sampleRate)
	var pauses []float64
	runLen := 0
	for i := firstSpeech; i <= lastSpeech; i++ {
		if !speechMask[i] {
			runLen++
			continue
		}
		if runLen > 0 {
			if gap := float64(runLen) * frameSeconds; gap >= minPause {
				pauses = append(pauses, gap)
			}
			runLen = 0
		}
	}

	if len(pauses) == 0 {
		return 0, 0
	}
	var sum float64
	for _, p := range pauses {
		sum += p
	}
	return len(pauses), sum / float64(len(pauses))
}
