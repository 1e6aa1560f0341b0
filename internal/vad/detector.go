package vad

import "math"

// Detector classifies one channel frame by frame. Its adaptive threshold is
// the running mean of every per-frame threshold seen so far, so a Detector
// must not be shared between channels.
type Detector struct {
	cfg Config

	silenceCounter int
	threshold      float64
	n              float64
}

// NewDetector returns a Detector with fresh state.
func NewDetector(cfg Config) *Detector {
	return &Detector{cfg: cfg}
}

// Classify reports whether frame is voiced and advances the detector state.
// len(frame) must equal the configured FrameSize.
func (d *Detector) Classify(frame []float64) bool {
	minSq := math.Inf(1)
	maxSq := math.Inf(-1)
	var sum float64
	for _, s := range frame {
		sq := s * s
		sum += sq
		minSq = math.Min(minSq, sq)
		maxSq = math.Max(maxSq, sq)
	}

	frameThreshold := minSq + (maxSq-minSq)*d.cfg.Threshold
	d.threshold = (d.n*d.threshold + frameThreshold) / (d.n + 1)
	d.n++

	meanEnergy := sum / float64(len(frame))
	if meanEnergy <= d.threshold {
		d.silenceCounter++
	} else {
		d.silenceCounter = 0
	}

	return d.silenceCounter <= d.cfg.SilenceFrameLimit
}

// SilenceCounter returns the number of consecutive low-energy frames seen.
func (d *Detector) SilenceCounter() int { return d.silenceCounter }

// Threshold returns the current adaptive threshold.
func (d *Detector) Threshold() float64 { return d.threshold }

// FramesSeen returns how many frames have been classified.
func (d *Detector) FramesSeen() float64 { return d.n }
