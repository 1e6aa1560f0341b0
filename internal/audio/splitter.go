package audio

// Deinterleave splits interleaved stereo samples into left and right
// channels. A dangling sample at the end of an odd-length input is dropped.
func Deinterleave[T any](interleaved []T) (left, right []T) {
	frames := len(interleaved) / 2
	left = make([]T, frames)
	right = make([]T, frames)
	for i := 0; i < frames; i++ {
		left[i] = interleaved[2*i]
		right[i] = interleaved[2*i+1]
	}
	return left, right
}
