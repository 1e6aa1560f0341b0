package audio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Static errors for container handling.
var (
	// ErrUnsupportedFormat is returned for inputs the pipeline cannot process,
	// such as anything other than two channels or IEEE float sample data.
	ErrUnsupportedFormat = errors.New("audio: unsupported format")
	// ErrInvalidContainer is returned when the input is not a readable WAV file.
	ErrInvalidContainer = errors.New("audio: invalid WAV container")
)

const (
	wavFormatPCM   = 1
	wavFormatFloat = 3

	// OutputBitDepth is the bit depth of every written file.
	OutputBitDepth = 16
)

// PCM is a fully decoded WAV file.
type PCM struct {
	NumChannels int
	SampleRate  int
	BitDepth    int
	// Samples are interleaved signed integers at BitDepth resolution.
	// 8-bit unsigned data is re-centered around zero.
	Samples []int32
}

// Frames returns the number of samples per channel.
func (p *PCM) Frames() int {
	if p.NumChannels == 0 {
		return 0
	}
	return len(p.Samples) / p.NumChannels
}

// OpenWAV decodes the WAV file at path.
func OpenWAV(path string) (*PCM, error) {
	f, err := os.Open(path) // #nosec G304 - path is provided by the operator
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ReadWAV(f)
}

// ReadWAV decodes a complete WAV stream into memory.
func ReadWAV(r io.ReadSeeker) (*PCM, error) {
	d := wav.NewDecoder(r)
	if !d.IsValidFile() {
		if err := d.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidContainer, err)
		}
		return nil, ErrInvalidContainer
	}
	if d.WavAudioFormat == wavFormatFloat {
		return nil, fmt.Errorf("%w: IEEE float samples", ErrUnsupportedFormat)
	}

	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: read PCM data: %w", ErrInvalidContainer, err)
	}

	bitDepth := int(d.BitDepth)
	samples := make([]int32, len(buf.Data))
	for i, s := range buf.Data {
		if bitDepth == 8 {
			s -= 128
		}
		samples[i] = int32(s)
	}

	return &PCM{
		NumChannels: int(d.NumChans),
		SampleRate:  int(d.SampleRate),
		BitDepth:    bitDepth,
		Samples:     samples,
	}, nil
}

// WriteMonoWAV encodes samples as a mono 16-bit PCM WAV stream. Samples are
// given at srcBitDepth resolution and rescaled to 16 bits.
func WriteMonoWAV(w io.WriteSeeker, sampleRate, srcBitDepth int, samples []int32) error {
	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = to16(s, srcBitDepth)
	}

	enc := wav.NewEncoder(w, sampleRate, OutputBitDepth, 1, wavFormatPCM)
	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: 1,
			SampleRate:  sampleRate,
		},
		Data:           data,
		SourceBitDepth: OutputBitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("write samples: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalize WAV: %w", err)
	}
	return nil
}

func to16(s int32, srcBitDepth int) int {
	v := int(s)
	switch {
	case srcBitDepth > OutputBitDepth:
		v >>= srcBitDepth - OutputBitDepth
	case srcBitDepth < OutputBitDepth && srcBitDepth > 0:
		v <<= OutputBitDepth - srcBitDepth
	}
	return max(math.MinInt16, min(math.MaxInt16, v))
}
