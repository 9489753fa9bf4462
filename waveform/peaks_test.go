// SPDX-License-Identifier: EPL-2.0

package waveform

import (
	"context"
	"errors"
	"testing"

	"github.com/ik5/audtrim/audio"
	"github.com/ik5/audtrim/internal/audiotest"
)

func TestPeaks_Ramp(t *testing.T) {
	t.Parallel()

	// mono ramp 0..0.9 in ten frames
	ramp := audiotest.NewBuffer(10, 1, 10, func(f, _ int) float32 { return float32(f) / 10 })

	peaks, err := Peaks(context.Background(), ramp, 5)
	if err != nil {
		t.Fatalf("Peaks() error = %v", err)
	}
	if len(peaks) != 5 {
		t.Fatalf("len(peaks) = %d, want 5", len(peaks))
	}
	for i, p := range peaks {
		wantMin, wantMax := float32(2*i)/10, float32(2*i+1)/10
		if p.Min != wantMin || p.Max != wantMax {
			t.Errorf("bin %d = %+v, want {%v %v}", i, p, wantMin, wantMax)
		}
	}
}

func TestPeaks_StereoIsAveraged(t *testing.T) {
	t.Parallel()

	buf, err := audio.NewBuffer(8000, [][]float32{
		{1, 1, -1, -1},
		{0, 0, 0, 0},
	})
	if err != nil {
		t.Fatal(err)
	}

	peaks, err := Peaks(context.Background(), buf, 2)
	if err != nil {
		t.Fatalf("Peaks() error = %v", err)
	}
	want := []Peak{{0.5, 0.5}, {-0.5, -0.5}}
	for i := range want {
		if peaks[i] != want[i] {
			t.Errorf("bin %d = %+v, want %+v", i, peaks[i], want[i])
		}
	}
}

func TestPeaks_BinCounts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		frames int
		bins   int
		want   int
	}{
		{"more frames than bins", 44100, 800, 800},
		{"uneven split", 1001, 10, 10},
		{"fewer frames than bins", 3, 100, 3},
		{"empty buffer", 0, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buf := audiotest.NewBuffer(44100, 2, tt.frames, audiotest.Sine(44100, 440))
			peaks, err := Peaks(context.Background(), buf, tt.bins)
			if err != nil {
				t.Fatalf("Peaks() error = %v", err)
			}
			if len(peaks) != tt.want {
				t.Errorf("len(peaks) = %d, want %d", len(peaks), tt.want)
			}
			for i, p := range peaks {
				if p.Min > p.Max {
					t.Errorf("bin %d has min %v above max %v", i, p.Min, p.Max)
				}
			}
		})
	}
}

func TestPeaks_InvalidBins(t *testing.T) {
	t.Parallel()

	buf := audiotest.NewBuffer(8000, 1, 10, audiotest.Silence)
	for _, bins := range []int{0, -1} {
		if _, err := Peaks(context.Background(), buf, bins); !errors.Is(err, ErrInvalidBins) {
			t.Errorf("Peaks(%d) error = %v, want ErrInvalidBins", bins, err)
		}
	}
}

func TestPeaks_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	buf := audiotest.NewBuffer(8000, 1, 10, audiotest.Silence)
	if _, err := Peaks(ctx, buf, 2); !errors.Is(err, context.Canceled) {
		t.Errorf("Peaks() error = %v, want context.Canceled", err)
	}
}

func BenchmarkPeaks(b *testing.B) {
	buf := audiotest.NewBuffer(44100, 2, 44100*60, audiotest.Sine(44100, 440))

	b.ReportAllocs()

	for b.Loop() {
		if _, err := Peaks(context.Background(), buf, 1000); err != nil {
			b.Fatal(err)
		}
	}
}
