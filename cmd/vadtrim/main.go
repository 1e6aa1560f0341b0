// Package main provides the vadtrim command, which removes silence from a
// stereo WAV recording and writes the voiced part of one channel as mono.
//
// Usage:
//
//	vadtrim <input.wav> <output.wav>
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/maauso/vadtrim/internal/bootstrap"
	"github.com/maauso/vadtrim/internal/config"
)

var errUsage = errors.New("usage: vadtrim <input.wav> <output.wav>")

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	input, output := args[0], args[1]

	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Create structured logger
	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	logger.Debug("starting vadtrim",
		slog.String("input", input),
		slog.String("output", output),
		slog.String("log_format", cfg.LogFormat),
		slog.String("log_level", cfg.LogLevel),
		slog.Bool("s3_enabled", cfg.S3Enabled()),
	)

	deps, err := bootstrap.NewDependencies(cfg, logger)
	if err != nil {
		return fmt.Errorf("initialize dependencies: %w", err)
	}

	result, err := deps.TrimService.Run(ctx, input, output)
	if err != nil {
		return fmt.Errorf("processing audio: %w", err)
	}

	logger.Info("trim completed",
		slog.String("location", result.Location),
		slog.String("channel", result.Channel.String()),
		slog.Int("left_voiced_frames", result.LeftFrames),
		slog.Int("right_voiced_frames", result.RightFrames),
		slog.Int("input_frames", result.InputFrames),
		slog.Int("output_samples", result.OutputSamples),
	)
	return nil
}
