// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestFloat32ToInt16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input float32
		want  int16
	}{
		{
			name:  "zero",
			input: 0.0,
			want:  0,
		},
		{
			name:  "max positive",
			input: 1.0,
			want:  math.MaxInt16,
		},
		{
			name:  "max negative",
			input: -1.0,
			want:  math.MinInt16,
		},
		{
			name:  "half positive truncates",
			input: 0.5,
			want:  16383, // 16383.5
		},
		{
			name:  "half negative uses 32768",
			input: -0.5,
			want:  -16384,
		},
		{
			name:  "quarter positive",
			input: 0.25,
			want:  8191, // 8191.75
		},
		{
			name:  "quarter negative",
			input: -0.25,
			want:  -8192,
		},
		{
			name:  "small positive",
			input: 0.001,
			want:  32, // 32.767
		},
		{
			name:  "small negative truncates toward zero",
			input: -0.001,
			want:  -32, // -32.768
		},
		{
			name:  "clamp over max",
			input: 1.5,
			want:  math.MaxInt16,
		},
		{
			name:  "clamp under min",
			input: -1.5,
			want:  math.MinInt16,
		},
		{
			name:  "clamp way over max",
			input: 100.0,
			want:  math.MaxInt16,
		},
		{
			name:  "clamp way under min",
			input: -100.0,
			want:  math.MinInt16,
		},
		{
			name:  "NaN is silence",
			input: float32(math.NaN()),
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Float32ToInt16(tt.input)
			if got != tt.want {
				t.Errorf("Float32ToInt16(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// TestFloat32ToInt16RoundTrip checks that quantising and restoring a sample
// loses less than one quantisation step.
func TestFloat32ToInt16RoundTrip(t *testing.T) {
	t.Parallel()

	for i := -1000; i <= 1000; i++ {
		s := float32(i) / 1000
		back := Int16ToFloat32(Float32ToInt16(s))
		diff := math.Abs(float64(s) - float64(back))

		// non-negative values sit on the x32767 grid, negative ones on x32768
		limit := 1.0 / 32767
		if s < 0 {
			limit = 1.0 / 32768
		}
		if diff > limit {
			t.Errorf("round trip of %v = %v, diff %v exceeds %v", s, back, diff, limit)
		}
	}
}

func TestInt16ToFloat32Limits(t *testing.T) {
	t.Parallel()

	if got := Int16ToFloat32(math.MaxInt16); got != 1 {
		t.Errorf("Int16ToFloat32(MaxInt16) = %v, want 1", got)
	}
	if got := Int16ToFloat32(math.MinInt16); got != -1 {
		t.Errorf("Int16ToFloat32(MinInt16) = %v, want -1", got)
	}
	if got := Int16ToFloat32(0); got != 0 {
		t.Errorf("Int16ToFloat32(0) = %v, want 0", got)
	}
}

// TestFloat32ToInt16Monotonic tests that function is monotonic
func TestFloat32ToInt16Monotonic(t *testing.T) {
	t.Parallel()

	prev := Float32ToInt16(-1.0)
	for f := -0.99; f <= 1.0; f += 0.01 {
		curr := Float32ToInt16(float32(f))
		if curr < prev {
			t.Errorf("Float32ToInt16 not monotonic: f=%v gives %v, but previous was %v",
				f, curr, prev)
		}
		prev = curr
	}
}

// BenchmarkFloat32ToInt16Realistic simulates converting one second of stereo audio
func BenchmarkFloat32ToInt16Realistic(b *testing.B) {
	floatSamples := make([]float32, 88200)
	int16Samples := make([]int16, 88200)

	for i := range floatSamples {
		floatSamples[i] = float32(math.Sin(float64(i) * 0.1))
	}

	b.ResetTimer()
	b.ReportAllocs()

	for range b.N {
		for j := range floatSamples {
			int16Samples[j] = Float32ToInt16(floatSamples[j])
		}
	}
}

// TestFloat32ToInt16_ZeroAllocs verifies no heap allocations
func TestFloat32ToInt16_ZeroAllocs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping allocation test in short mode")
	}

	allocs := testing.AllocsPerRun(1000, func() {
		_ = Float32ToInt16(0.5)
	})

	if allocs > 0 {
		t.Errorf("Float32ToInt16 allocated %v times, want 0", allocs)
	}
}
