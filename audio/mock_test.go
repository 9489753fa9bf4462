// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"math"
)

// mockSource generates a waveform on demand for tests.
type mockSource struct {
	sampleRate int
	channels   int
	frames     int // total frames to generate
	generated  int
	waveform   func(frame int, channel int) float32

	// trailing extra samples emitted after the last full frame
	tail []float32
}

func newMockSource(sampleRate, channels, frames int, waveform func(frame int, channel int) float32) *mockSource {
	return &mockSource{
		sampleRate: sampleRate,
		channels:   channels,
		frames:     frames,
		waveform:   waveform,
	}
}

func newSilentSource(sampleRate, channels, frames int) *mockSource {
	return newMockSource(sampleRate, channels, frames, func(int, int) float32 { return 0 })
}

func newSineSource(sampleRate, channels, frames int, frequency float64) *mockSource {
	return newMockSource(sampleRate, channels, frames, func(frame int, _ int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// newRampSource encodes frame and channel into every sample so tests can
// check where a sample came from: value = frame + channel/10.
func newRampSource(sampleRate, channels, frames int) *mockSource {
	return newMockSource(sampleRate, channels, frames, func(frame int, channel int) float32 {
		return float32(frame) + float32(channel)/10
	})
}

func (m *mockSource) SampleRate() int { return m.sampleRate }
func (m *mockSource) Channels() int   { return m.channels }
func (m *mockSource) BufSize() int    { return 4096 }
func (m *mockSource) Close() error    { return nil }

func (m *mockSource) ReadSamples(dst []float32) (int, error) {
	if m.generated >= m.frames {
		if len(m.tail) > 0 {
			n := copy(dst, m.tail)
			m.tail = m.tail[n:]
			return n, io.EOF
		}
		return 0, io.EOF
	}

	framesToWrite := min(len(dst)/m.channels, m.frames-m.generated)
	for frame := range framesToWrite {
		for ch := range m.channels {
			dst[frame*m.channels+ch] = m.waveform(m.generated+frame, ch)
		}
	}
	m.generated += framesToWrite

	return framesToWrite * m.channels, nil
}

// failingSource returns err after the first read.
type failingSource struct {
	mockSource
	err   error
	reads int
}

func (f *failingSource) ReadSamples(dst []float32) (int, error) {
	f.reads++
	if f.reads > 1 {
		return 0, f.err
	}
	return f.mockSource.ReadSamples(dst)
}

// stalledSource never produces data and never ends.
type stalledSource struct{ mockSource }

func (s *stalledSource) ReadSamples([]float32) (int, error) { return 0, nil }

var errBroken = errors.New("broken stream")
