package imageprep

const (
	// otsuSampleStride samples every 4th pixel for the histogram.
	otsuSampleStride = 16

	// otsuMinSamples below which the histogram falls back to every pixel.
	otsuMinSamples = 100

	// defaultThreshold when no split separates the histogram.
	defaultThreshold = 128
)

// otsuThreshold picks the binarization cutoff maximizing the between-class
// variance of the two resulting pixel populations. A coarse scan at steps
// of 10 is refined by a fine scan of +-10 around the coarse winner.
func otsuThreshold(pix []byte) byte {
	var hist [256]float64
	samples := 0

	for i := 0; i+3 < len(pix); i += otsuSampleStride {
		hist[pix[i]]++
		samples++
	}
	if samples < otsuMinSamples {
		hist = [256]float64{}
		samples = 0
		for i := 0; i+3 < len(pix); i += 4 {
			hist[pix[i]]++
			samples++
		}
	}
	if samples == 0 {
		return defaultThreshold
	}

	for i := range hist {
		hist[i] /= float64(samples)
	}

	best := defaultThreshold
	bestVariance := 0.0

	for t := 10; t <= 240; t += 10 {
		if v := betweenClassVariance(&hist, t); v > bestVariance {
			bestVariance = v
			best = t
		}
	}

	lo, hi := best-10, best+10
	if lo < 0 {
		lo = 0
	}
	if hi > 255 {
		hi = 255
	}
	for t := lo; t <= hi; t++ {
		if v := betweenClassVariance(&hist, t); v > bestVariance {
			bestVariance = v
			best = t
		}
	}

	return byte(best)
}

// betweenClassVariance computes w0*w1*(u0-u1)^2 for the split gray<=t vs
// gray>t over a normalized histogram.
func betweenClassVariance(hist *[256]float64, t int) float64 {
	var w0, sum0 float64
	for g := 0; g <= t; g++ {
		w0 += hist[g]
		sum0 += float64(g) * hist[g]
	}
	w1 := 1 - w0
	if w0 == 0 || w1 <= 0 {
		return 0
	}

	var sum1 float64
	for g := t + 1; g < 256; g++ {
		sum1 += float64(g) * hist[g]
	}

	u0 := sum0 / w0
	u1 := sum1 / w1
	diff := u0 - u1
	return w0 * w1 * diff * diff
}
