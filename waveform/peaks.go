// SPDX-License-Identifier: EPL-2.0

// Package waveform reduces decoded audio to the min/max envelope a
// scrubbing surface draws while the user picks trim points.
package waveform

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/ik5/audtrim/audio"
)

var ErrInvalidBins = errors.New("bins must be positive")

// Peak is the lowest and highest mono sample inside one bin.
type Peak struct {
	Min float32 `json:"min"`
	Max float32 `json:"max"`
}

// Peaks mixes buf down to mono and splits it into at most bins equal
// slices of frames, reporting the extremes of each. Fewer bins come back
// when the buffer has fewer frames than bins, and none for an empty buffer.
func Peaks(ctx context.Context, buf *audio.Buffer, bins int) ([]Peak, error) {
	if bins <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBins, bins)
	}

	frames := buf.Frames()
	if frames == 0 {
		return []Peak{}, nil
	}
	bins = min(bins, frames)

	mixer := audio.NewMonoMixer(audio.NewBufferSource(buf))
	defer mixer.Close()

	mono, err := audio.ReadPlanar(ctx, mixer)
	if err != nil {
		return nil, fmt.Errorf("mixing down: %w", err)
	}

	samples := mono[0]
	out := make([]Peak, bins)
	for b := range out {
		// spread the remainder so bins differ by at most one frame
		lo := b * len(samples) / bins
		hi := (b + 1) * len(samples) / bins

		p := Peak{Min: math.MaxFloat32, Max: -math.MaxFloat32}
		for _, s := range samples[lo:hi] {
			p.Min = min(p.Min, s)
			p.Max = max(p.Max, s)
		}
		out[b] = p
	}

	return out, nil
}
