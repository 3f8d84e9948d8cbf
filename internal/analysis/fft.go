package analysis

import "math"

// fft computes the discrete Fourier transform of the input using the
// Cooley-Tukey radix-2 algorithm. The input length must be a power of two;
// callers zero-pad analysis frames before transforming.
func fft(input []float64) []complex128 {
	buf := make([]complex128, len(input))
	for i, v := range input {
		buf[i] = complex(v, 0)
	}
	return recursiveFFT(buf)
}

func recursiveFFT(buf []complex128) []complex128 {
	n := len(buf)
	if n <= 1 {
		return buf
	}

	even := make([]complex128, n/2)
	odd := make([]complex128, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = buf[2*i]
		odd[i] = buf[2*i+1]
	}

	even = recursiveFFT(even)
	odd = recursiveFFT(odd)

	out := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		angle := -2 * math.Pi * float64(k) / float64(n)
		t := complex(math.Cos(angle), math.Sin(angle))
		out[k] = even[k] + t*odd[k]
		out[k+n/2] = even[k] - t*odd[k]
	}
	return out
}

// hannWindow applies a Hann window in place to reduce spectral leakage.
func hannWindow(frame []float64) {
	n := len(frame)
	if n < 2 {
		return
	}
	for i := range frame {
		frame[i] *= 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
	}
}

// nextPowerOfTwo returns the smallest power of two >= n.
func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// magnitudeSpectrum returns the magnitudes of the positive-frequency bins.
func magnitudeSpectrum(frame []float64) []float64 {
	padded := make([]float64, nextPowerOfTwo(len(frame)))
	copy(padded, frame)
	hannWindow(padded[:len(frame)])

	spectrum := fft(padded)
	half := len(spectrum) / 2
	mags := make([]float64, half)
	for i := 0; i < half; i++ {
		re := real(spectrum[i])
		im := imag(spectrum[i])
		mags[i] = math.Sqrt(re*re + im*im)
	}
	return mags
}

// spectralFlatness is the ratio of geometric to arithmetic mean of the
// magnitude spectrum. Near 1 for noise, near 0 for tonal content.
func spectralFlatness(mags []float64) float64 {
	if len(mags) == 0 {
		return 0
	}
	const floor = 1e-12
	var logSum, sum float64
	for _, m := range mags {
		if m < floor {
			m = floor
		}
		logSum += math.Log(m)
		sum += m
	}
	geo := math.Exp(logSum / float64(len(mags)))
	arith := sum / float64(len(mags))
	if arith < floor {
		return 0
	}
	return geo / arith
}
