package vad

// Scanner walks a whole channel and collects the start index of every voiced
// frame. Each Scanner owns its own Detector.
type Scanner struct {
	cfg      Config
	detector *Detector
}

// NewScanner returns a Scanner with a fresh Detector.
func NewScanner(cfg Config) *Scanner {
	return &Scanner{cfg: cfg, detector: NewDetector(cfg)}
}

// Scan classifies samples in frames of FrameSize, advancing by StepSize, and
// returns the voiced frame start indices in increasing order. A trailing
// window shorter than FrameSize is never classified.
func (s *Scanner) Scan(samples []float64) []int {
	voiced := make([]int, 0, len(samples)/s.cfg.StepSize)
	for i := 0; i+s.cfg.FrameSize <= len(samples); i += s.cfg.StepSize {
		if s.detector.Classify(samples[i : i+s.cfg.FrameSize]) {
			voiced = append(voiced, i)
		}
	}
	return voiced
}

// Detector exposes the scanner's detector, mostly for inspection in tests.
func (s *Scanner) Detector() *Detector {
	return s.detector
}
