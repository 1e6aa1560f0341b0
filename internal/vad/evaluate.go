package vad

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Channel identifies one side of a stereo recording.
type Channel int

const (
	// ChannelLeft is the first interleaved channel.
	ChannelLeft Channel = iota
	// ChannelRight is the second interleaved channel.
	ChannelRight
)

// String returns "left" or "right".
func (c Channel) String() string {
	switch c {
	case ChannelLeft:
		return "left"
	case ChannelRight:
		return "right"
	default:
		return fmt.Sprintf("channel(%d)", int(c))
	}
}

// Selection is the channel chosen as the source for reconstruction.
type Selection struct {
	// Channel is the selected side.
	Channel Channel
	// Samples aliases the selected channel's buffer; it is not copied.
	Samples []float64
	// Frames holds the voiced frame start indices of the selected channel.
	Frames []int
	// LeftCount and RightCount are the voiced frame counts of each channel.
	LeftCount  int
	RightCount int
}

// Evaluate scans both channels concurrently, each with its own detector, and
// selects the channel with more voiced frames. Ties go to the left channel.
//
// The scans share no mutable state, so the result is identical to running
// them one after the other. ctx is only checked before each scan starts.
func Evaluate(ctx context.Context, cfg Config, left, right []float64) (Selection, error) {
	if err := cfg.Validate(); err != nil {
		return Selection{}, err
	}

	var leftFrames, rightFrames []int

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		leftFrames = NewScanner(cfg).Scan(left)
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		rightFrames = NewScanner(cfg).Scan(right)
		return nil
	})
	if err := g.Wait(); err != nil {
		return Selection{}, fmt.Errorf("vad: scan channels: %w", err)
	}

	return selectChannel(left, right, leftFrames, rightFrames), nil
}

func selectChannel(left, right []float64, leftFrames, rightFrames []int) Selection {
	sel := Selection{
		LeftCount:  len(leftFrames),
		RightCount: len(rightFrames),
	}
	if len(leftFrames) >= len(rightFrames) {
		sel.Channel = ChannelLeft
		sel.Samples = left
		sel.Frames = leftFrames
	} else {
		sel.Channel = ChannelRight
		sel.Samples = right
		sel.Frames = rightFrames
	}
	return sel
}
