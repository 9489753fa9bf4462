// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"time"
)

// Buffer is fully decoded audio held as one float32 slice per channel.
// A Buffer never changes after construction; slices returned by Channel
// must be treated as read-only.
type Buffer struct {
	sampleRate int
	channels   [][]float32
}

// NewBuffer validates and copies channels into a new Buffer.
// All channels must have the same length.
func NewBuffer(sampleRate int, channels [][]float32) (*Buffer, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSampleRate, sampleRate)
	}
	if len(channels) == 0 {
		return nil, ErrNoChannels
	}

	frames := len(channels[0])
	owned := make([][]float32, len(channels))
	for c, ch := range channels {
		if len(ch) != frames {
			return nil, fmt.Errorf("%w: channel %d has %d samples, channel 0 has %d",
				ErrChannelLengthMismatch, c, len(ch), frames)
		}
		owned[c] = append([]float32(nil), ch...)
	}

	return &Buffer{sampleRate: sampleRate, channels: owned}, nil
}

// newOwnedBuffer wraps channels without copying. The caller must hand over
// ownership and guarantee equal lengths.
func newOwnedBuffer(sampleRate int, channels [][]float32) *Buffer {
	return &Buffer{sampleRate: sampleRate, channels: channels}
}

func (b *Buffer) SampleRate() int { return b.sampleRate }
func (b *Buffer) Channels() int   { return len(b.channels) }

// Frames is the number of samples in each channel.
func (b *Buffer) Frames() int { return len(b.channels[0]) }

// Channel returns the samples of channel c.
func (b *Buffer) Channel(c int) []float32 { return b.channels[c] }

// Seconds is Frames / SampleRate.
func (b *Buffer) Seconds() float64 {
	return float64(b.Frames()) / float64(b.sampleRate)
}

func (b *Buffer) Duration() time.Duration {
	return time.Duration(b.Seconds() * float64(time.Second))
}

// TruncateToShortest cuts every channel down to the length of the shortest
// one. Some encoders pad channels unevenly; a Buffer needs them equal.
func TruncateToShortest(channels [][]float32) [][]float32 {
	if len(channels) == 0 {
		return channels
	}

	shortest := len(channels[0])
	for _, ch := range channels[1:] {
		shortest = min(shortest, len(ch))
	}

	for c := range channels {
		channels[c] = channels[c][:shortest]
	}

	return channels
}
