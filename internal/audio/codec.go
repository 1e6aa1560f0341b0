// Package audio converts between WAV containers, integer PCM samples and the
// normalized float samples the detector works on.
package audio

import "math"

// Normalize maps a signed 32-bit sample onto roughly [-1, 1] by dividing by
// math.MaxInt32. math.MinInt32 lands slightly below -1.
func Normalize(raw int32) float64 {
	return float64(raw) / math.MaxInt32
}

// Denormalize is the inverse of Normalize. The product is truncated toward
// zero and saturates at the int32 bounds, so a round trip may be off by one.
func Denormalize(v float64) int32 {
	x := v * math.MaxInt32
	switch {
	case x >= math.MaxInt32:
		return math.MaxInt32
	case x <= math.MinInt32:
		return math.MinInt32
	case math.IsNaN(x):
		return 0
	}
	return int32(x)
}

// NormalizeAll normalizes every sample of raw into a new slice.
func NormalizeAll(raw []int32) []float64 {
	out := make([]float64, len(raw))
	for i, s := range raw {
		out[i] = Normalize(s)
	}
	return out
}

// DenormalizeAll denormalizes every sample of v into a new slice.
func DenormalizeAll(v []float64) []int32 {
	out := make([]int32, len(v))
	for i, s := range v {
		out[i] = Denormalize(s)
	}
	return out
}
