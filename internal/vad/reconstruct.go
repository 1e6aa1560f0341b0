package vad

// Reconstruct concatenates samples[i:i+frameSize] for every index in frames,
// in order. Overlapping frames are not merged: shared samples are emitted
// once per frame that contains them. No fading is applied at boundaries.
func Reconstruct(samples []float64, frames []int, frameSize int) []float64 {
	out := make([]float64, 0, len(frames)*frameSize)
	for _, start := range frames {
		out = append(out, samples[start:start+frameSize]...)
	}
	return out
}
