// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"math"
	"testing"
)

func TestMonoMixer_MonoPassthrough(t *testing.T) {
	t.Parallel()

	src := newSineSource(44100, 1, 1000, 440.0)
	mixer := NewMonoMixer(src)

	if mixer.Channels() != 1 {
		t.Errorf("Channels() = %d, want 1", mixer.Channels())
	}
	if mixer.SampleRate() != 44100 {
		t.Errorf("SampleRate() = %d, want 44100", mixer.SampleRate())
	}

	buf := make([]float32, 100)
	n, err := mixer.ReadSamples(buf)
	if err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != 100 {
		t.Errorf("ReadSamples() n = %d, want 100", n)
	}
}

func TestMonoMixer_Averages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		value    func(frame, channel int) float32
		want     float32
	}{
		{
			name:     "stereo opposite phase cancels",
			channels: 2,
			value: func(_, c int) float32 {
				if c == 0 {
					return 0.5
				}
				return -0.5
			},
			want: 0,
		},
		{
			name:     "stereo",
			channels: 2,
			value:    func(_, c int) float32 { return float32(c+1) * 0.25 },
			want:     0.375,
		},
		{
			name:     "five channels",
			channels: 5,
			value:    func(_, c int) float32 { return float32(c) * 0.1 },
			want:     0.2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mixer := NewMonoMixer(newMockSource(8000, tt.channels, 64, tt.value))
			buf := make([]float32, 64)

			n, err := mixer.ReadSamples(buf)
			if err != nil && !errors.Is(err, io.EOF) {
				t.Fatalf("ReadSamples() error = %v", err)
			}
			if n != 64 {
				t.Fatalf("ReadSamples() n = %d, want 64", n)
			}
			for i := range n {
				if math.Abs(float64(buf[i]-tt.want)) > 1e-6 {
					t.Fatalf("buf[%d] = %v, want %v", i, buf[i], tt.want)
				}
			}
		})
	}
}

func TestMonoMixer_EOF(t *testing.T) {
	t.Parallel()

	mixer := NewMonoMixer(newSilentSource(8000, 2, 10))
	buf := make([]float32, 100)

	total := 0
	for {
		n, err := mixer.ReadSamples(buf)
		total += n
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}

	if total != 10 {
		t.Errorf("read %d frames, want 10", total)
	}
}

func TestMonoMixer_EmptyBuffer(t *testing.T) {
	t.Parallel()

	n, err := NewMonoMixer(newSilentSource(8000, 2, 10)).ReadSamples(nil)
	if n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = %d, %v, want 0, nil", n, err)
	}
}

func TestMonoMixer_LargeBuffer(t *testing.T) {
	t.Parallel()

	// larger than the mixer's initial scratch space
	mixer := NewMonoMixer(newSilentSource(8000, 4, 20000))
	buf := make([]float32, 10000)

	n, err := mixer.ReadSamples(buf)
	if err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != 10000 {
		t.Errorf("ReadSamples() n = %d, want 10000", n)
	}
}

func BenchmarkMonoMixer_StereoToMono(b *testing.B) {
	buf := make([]float32, 4096)

	b.ReportAllocs()

	for b.Loop() {
		mixer := NewMonoMixer(newSineSource(44100, 2, 4096, 440))
		_, _ = mixer.ReadSamples(buf)
	}
}
