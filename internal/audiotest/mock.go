// SPDX-License-Identifier: EPL-2.0

// Package audiotest holds sample generators shared by the tests of the
// other packages.
package audiotest

import (
	"io"
	"math"

	"github.com/ik5/audtrim/audio"
)

// Waveform returns the sample for a frame and channel.
type Waveform func(frame int, channel int) float32

// Silence is a Waveform of zeros.
func Silence(int, int) float32 { return 0 }

// Sine returns a Waveform of a sine at frequency Hz.
func Sine(sampleRate int, frequency float64) Waveform {
	return func(frame int, _ int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	}
}

// Constant returns a Waveform that always yields value.
func Constant(value float32) Waveform {
	return func(int, int) float32 { return value }
}

// Planar renders waveform into one slice per channel.
func Planar(channels, frames int, waveform Waveform) [][]float32 {
	out := make([][]float32, channels)
	for c := range out {
		out[c] = make([]float32, frames)
		for f := range out[c] {
			out[c][f] = waveform(f, c)
		}
	}
	return out
}

// NewBuffer renders waveform into an audio.Buffer and panics on invalid
// arguments, which in a test is a bug in the test.
func NewBuffer(sampleRate, channels, frames int, waveform Waveform) *audio.Buffer {
	buf, err := audio.NewBuffer(sampleRate, Planar(channels, frames, waveform))
	if err != nil {
		panic(err)
	}
	return buf
}

// MockSource is a test helper that streams a waveform as an audio.Source.
type MockSource struct {
	sampleRate   int
	channels     int
	totalSamples int // Total samples to generate (per channel)
	generated    int // Samples generated so far (per channel)
	waveform     Waveform
}

// NewMockSource creates a new mock audio source.
// totalSamples is the total number of samples per channel to generate.
func NewMockSource(sampleRate, channels, totalSamples int, waveform Waveform) *MockSource {
	return &MockSource{
		sampleRate:   sampleRate,
		channels:     channels,
		totalSamples: totalSamples,
		waveform:     waveform,
	}
}

// NewSilentSource creates a mock source that generates silence (all zeros).
func NewSilentSource(sampleRate, channels, totalSamples int) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, Silence)
}

// NewSineSource creates a mock source that generates a sine wave.
func NewSineSource(sampleRate, channels, totalSamples int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, Sine(sampleRate, frequency))
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }
func (m *MockSource) Close() error    { return nil }

// Reset resets the generated sample counter to allow re-reading
func (m *MockSource) Reset() {
	m.generated = 0
}

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.generated >= m.totalSamples {
		return 0, io.EOF
	}

	framesToWrite := min(len(dst)/m.channels, m.totalSamples-m.generated)

	for frame := range framesToWrite {
		sampleIndex := m.generated + frame
		for ch := range m.channels {
			dst[frame*m.channels+ch] = m.waveform(sampleIndex, ch)
		}
	}

	m.generated += framesToWrite
	samplesWritten := framesToWrite * m.channels

	if m.generated >= m.totalSamples {
		return samplesWritten, io.EOF
	}

	return samplesWritten, nil
}
