// Package vad implements the adaptive energy voice activity detector and the
// dual-channel selection used to strip silence from stereo recordings.
package vad

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidConfig is returned when a Config fails validation.
var ErrInvalidConfig = errors.New("vad: invalid config")

// Config holds the detector parameters. It is built once and never mutated.
type Config struct {
	// Threshold is the fraction of the per-frame min-max energy range that
	// contributes to the adaptive threshold.
	Threshold float64 `validate:"gt=0,lt=1"`

	// FrameSize is the number of samples per classification window.
	FrameSize int `validate:"gt=0"`

	// StepSize is the sample advance between consecutive frames.
	// A StepSize smaller than FrameSize yields overlapping frames.
	StepSize int `validate:"gt=0"`

	// SilenceFrameLimit is the number of consecutive silent frames still
	// reported as voiced before the hangover expires.
	SilenceFrameLimit int `validate:"gte=0"`
}

// DefaultConfig returns the fixed configuration: 10 ms non-overlapping frames
// at 16 kHz with a 20 frame hangover.
func DefaultConfig() Config {
	return Config{
		Threshold:         0.1,
		FrameSize:         160,
		StepSize:          160,
		SilenceFrameLimit: 20,
	}
}

var validate = validator.New()

// Validate checks the configuration bounds.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}
