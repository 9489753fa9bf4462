// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"math"
)

// Range is a trim window in seconds, start inclusive and end exclusive.
type Range struct {
	Start float64
	End   float64
}

// Clamp limits both ends of r to [0, duration].
func (r Range) Clamp(duration float64) Range {
	return Range{
		Start: math.Min(math.Max(r.Start, 0), duration),
		End:   math.Min(math.Max(r.End, 0), duration),
	}
}

func (r Range) String() string {
	return fmt.Sprintf("[%.3fs, %.3fs)", r.Start, r.End)
}

// Extract copies the samples covered by r out of buf.
//
// The window is clamped to the buffer's duration first. Sample indices are
// floor(start*rate) and floor(end*rate); the result holds [startSample,
// endSample) of every channel, at the same sample rate. The returned Buffer
// shares no memory with buf.
//
// ErrInvalidRange is returned when the clamped window holds no samples.
func Extract(buf *Buffer, r Range) (*Buffer, error) {
	if math.IsNaN(r.Start) || math.IsNaN(r.End) {
		return nil, fmt.Errorf("%w: %v is not a number", ErrInvalidRange, r)
	}

	clamped := r.Clamp(buf.Seconds())
	if clamped.Start >= clamped.End {
		return nil, fmt.Errorf("%w: %v is empty within %.3fs of audio", ErrInvalidRange, r, buf.Seconds())
	}

	rate := float64(buf.sampleRate)
	frames := buf.Frames()
	startSample := min(int(math.Floor(clamped.Start*rate)), frames)
	endSample := min(int(math.Floor(clamped.End*rate)), frames)
	if endSample <= startSample {
		return nil, fmt.Errorf("%w: %v is shorter than one sample", ErrInvalidRange, r)
	}

	out := make([][]float32, len(buf.channels))
	for c, ch := range buf.channels {
		out[c] = make([]float32, endSample-startSample)
		copy(out[c], ch[startSample:endSample])
	}

	return newOwnedBuffer(buf.sampleRate, out), nil
}
