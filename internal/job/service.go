// Package job provides the TrimService use case that strips silence from a
// stereo recording and publishes the trimmed mono result.
package job

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/maauso/vadtrim/internal/audio"
	"github.com/maauso/vadtrim/internal/storage"
	"github.com/maauso/vadtrim/internal/vad"
)

// TrimResult describes a completed trim.
type TrimResult struct {
	// Channel is the channel the output was taken from.
	Channel vad.Channel
	// LeftFrames and RightFrames are the voiced frame counts per channel.
	LeftFrames  int
	RightFrames int
	// InputFrames is the number of samples per input channel.
	InputFrames int
	// OutputSamples is the number of samples written.
	OutputSamples int
	// SampleRate is shared by input and output.
	SampleRate int
	// Location is where the output was published.
	Location string
}

// TrimService orchestrates the trim workflow: decode, evaluate both
// channels, reconstruct the selected one, encode and publish.
type TrimService struct {
	store  storage.Storage
	logger *slog.Logger
	vadCfg vad.Config
}

// Option configures a TrimService.
type Option func(*TrimService)

// WithVADConfig overrides the detector configuration.
func WithVADConfig(cfg vad.Config) Option {
	return func(s *TrimService) {
		s.vadCfg = cfg
	}
}

// NewTrimService creates a new TrimService using vad.DefaultConfig.
func NewTrimService(store storage.Storage, logger *slog.Logger, opts ...Option) *TrimService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &TrimService{
		store:  store,
		logger: logger,
		vadCfg: vad.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run trims the stereo WAV file at input and publishes a mono 16-bit WAV at
// output, or at the s3:// URI output names. Either a complete file is
// published or nothing is.
func (s *TrimService) Run(ctx context.Context, input, output string) (*TrimResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pcm, err := audio.OpenWAV(input)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", input, err)
	}
	if pcm.NumChannels != 2 {
		return nil, fmt.Errorf("%w: only stereo input is supported, got %d channels",
			audio.ErrUnsupportedFormat, pcm.NumChannels)
	}

	s.logger.Info("input decoded",
		slog.String("input", input),
		slog.Int("sample_rate", pcm.SampleRate),
		slog.Int("bit_depth", pcm.BitDepth),
		slog.Int("frames", pcm.Frames()),
	)

	left, right := audio.Deinterleave(audio.NormalizeAll(pcm.Samples))

	sel, err := vad.Evaluate(ctx, s.vadCfg, left, right)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("channels evaluated",
		slog.Int("left_voiced_frames", sel.LeftCount),
		slog.Int("right_voiced_frames", sel.RightCount),
		slog.String("selected", sel.Channel.String()),
	)

	trimmed := audio.DenormalizeAll(vad.Reconstruct(sel.Samples, sel.Frames, s.vadCfg.FrameSize))

	location, err := s.write(ctx, pcm, trimmed, OutputPath(input, output))
	if err != nil {
		return nil, err
	}

	result := &TrimResult{
		Channel:       sel.Channel,
		LeftFrames:    sel.LeftCount,
		RightFrames:   sel.RightCount,
		InputFrames:   len(left),
		OutputSamples: len(trimmed),
		SampleRate:    pcm.SampleRate,
		Location:      location,
	}

	s.logger.Info("output published",
		slog.String("location", location),
		slog.String("channel", result.Channel.String()),
		slog.Int("output_samples", result.OutputSamples),
	)

	return result, nil
}

// write stages the encoded output and publishes it to dst. The staging file
// is always removed.
func (s *TrimService) write(ctx context.Context, pcm *audio.PCM, samples []int32, dst string) (string, error) {
	f, err := s.store.CreateTemp(ctx, "vadtrim")
	if err != nil {
		return "", fmt.Errorf("stage output: %w", err)
	}
	tempPath := f.Name()
	defer func() {
		if err := s.store.CleanupTemp(context.WithoutCancel(ctx), []string{tempPath}); err != nil {
			s.logger.Warn("failed to remove staging file",
				slog.String("path", tempPath),
				slog.String("error", err.Error()),
			)
		}
	}()

	if err := audio.WriteMonoWAV(f, pcm.SampleRate, pcm.BitDepth, samples); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("write output: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("write output: %w", err)
	}

	location, err := s.store.Publish(ctx, tempPath, dst)
	if err != nil {
		return "", fmt.Errorf("publish output: %w", err)
	}
	return location, nil
}

// OutputPath gives a local output the input file's extension, so "out" or
// "out.flac" next to an "in.wav" input becomes "out.wav". S3 destinations and
// inputs without an extension leave output unchanged.
func OutputPath(input, output string) string {
	ext := filepath.Ext(input)
	if ext == "" || storage.IsS3URI(output) {
		return output
	}
	return strings.TrimSuffix(output, filepath.Ext(output)) + ext
}
