// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"testing"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/audtrim/audio"
)

// mockAiffReader simulates the aiff.Decoder for testing
type mockAiffReader struct {
	sampleRate   int
	channels     int
	samples      []int
	offset       int
	returnErrors bool
}

func (m *mockAiffReader) Format() *goaudio.Format {
	return &goaudio.Format{
		SampleRate:  m.sampleRate,
		NumChannels: m.channels,
	}
}

func (m *mockAiffReader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if m.returnErrors {
		return 0, io.ErrUnexpectedEOF
	}

	if m.offset >= len(m.samples) {
		return 0, io.EOF
	}

	samplesToRead := min(len(buf.Data), len(m.samples)-m.offset)
	copy(buf.Data, m.samples[m.offset:m.offset+samplesToRead])
	m.offset += samplesToRead

	return samplesToRead, nil
}

// rate8000 is 8000 as an 80-bit IEEE 754 extended float.
var rate8000 = [10]byte{0x40, 0x0B, 0xFA, 0, 0, 0, 0, 0, 0, 0}

// rawAIFF builds a minimal FORM/AIFF file with COMM and SSND chunks at 8 kHz.
func rawAIFF(channels, bits int, frames int, data []byte) []byte {
	var b bytes.Buffer

	b.WriteString("FORM")
	_ = binary.Write(&b, binary.BigEndian, uint32(4+8+18+8+8+len(data)))
	b.WriteString("AIFF")

	b.WriteString("COMM")
	_ = binary.Write(&b, binary.BigEndian, uint32(18))
	_ = binary.Write(&b, binary.BigEndian, uint16(channels))
	_ = binary.Write(&b, binary.BigEndian, uint32(frames))
	_ = binary.Write(&b, binary.BigEndian, uint16(bits))
	b.Write(rate8000[:])

	b.WriteString("SSND")
	_ = binary.Write(&b, binary.BigEndian, uint32(8+len(data)))
	_ = binary.Write(&b, binary.BigEndian, uint32(0)) // offset
	_ = binary.Write(&b, binary.BigEndian, uint32(0)) // block size
	b.Write(data)

	return b.Bytes()
}

func TestDecoder_Mono16(t *testing.T) {
	t.Parallel()

	pcm := []int16{0, 16384, -16384, 32767, -32768, 0}
	data := make([]byte, len(pcm)*2)
	for i, s := range pcm {
		binary.BigEndian.PutUint16(data[i*2:], uint16(s))
	}

	src, err := Decoder{}.Decode(bytes.NewReader(rawAIFF(1, 16, len(pcm), data)))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if src.SampleRate() != 8000 || src.Channels() != 1 {
		t.Fatalf("format = %d Hz/%d ch, want 8000/1", src.SampleRate(), src.Channels())
	}

	channels, err := audio.ReadPlanar(context.Background(), src)
	if err != nil {
		t.Fatalf("ReadPlanar() error = %v", err)
	}
	if len(channels[0]) != len(pcm) {
		t.Fatalf("got %d samples, want %d", len(channels[0]), len(pcm))
	}
	for i, s := range pcm {
		if want := float32(s) / 32768; channels[0][i] != want {
			t.Errorf("sample %d = %v, want %v", i, channels[0][i], want)
		}
	}
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{"text", []byte("This is not AIFF data")},
		{"empty", nil},
		{"riff header", []byte("RIFF\x24\x00\x00\x00WAVEfmt ")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src, err := Decoder{}.Decode(bytes.NewReader(tt.data))
			if !errors.Is(err, ErrNotAiffFile) {
				t.Errorf("Decode() error = %v, want ErrNotAiffFile", err)
			}
			if src != nil {
				t.Error("Decode() returned a source alongside the error")
			}
		})
	}
}

func TestSource_Metadata(t *testing.T) {
	t.Parallel()

	src := &source{
		dec:        &mockAiffReader{sampleRate: 48000, channels: 2},
		sampleRate: 48000,
		channels:   2,
		bitDepth:   16,
	}

	if src.SampleRate() != 48000 {
		t.Errorf("SampleRate() = %d, want 48000", src.SampleRate())
	}
	if src.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", src.Channels())
	}
	if src.BufSize() != 4096 {
		t.Errorf("BufSize() before first read = %d, want 4096", src.BufSize())
	}
	if err := src.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}

	_, _ = src.ReadSamples(make([]float32, 512))
	if src.BufSize() != 512 {
		t.Errorf("BufSize() after read = %d, want 512", src.BufSize())
	}
}

func TestSource_ReadSamples_MultipleReads(t *testing.T) {
	t.Parallel()

	samples := make([]int, 1000)
	for i := range samples {
		samples[i] = i * 32
	}
	src := &source{
		dec:        &mockAiffReader{sampleRate: 8000, channels: 1, samples: samples},
		sampleRate: 8000,
		channels:   1,
		bitDepth:   16,
	}

	dst := make([]float32, 300)
	total := 0
	for {
		n, err := src.ReadSamples(dst)
		for i := range n {
			if want := float32(samples[total+i]) / 32768; dst[i] != want {
				t.Fatalf("sample %d = %v, want %v", total+i, dst[i], want)
			}
		}
		total += n
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}

	if total != len(samples) {
		t.Errorf("read %d samples, want %d", total, len(samples))
	}
}

func TestSource_ReadSamples_Error(t *testing.T) {
	t.Parallel()

	src := &source{
		dec:        &mockAiffReader{sampleRate: 8000, channels: 1, returnErrors: true},
		sampleRate: 8000,
		channels:   1,
		bitDepth:   16,
	}

	_, err := src.ReadSamples(make([]float32, 16))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadSamples() error = %v, want io.ErrUnexpectedEOF", err)
	}
}

func TestSource_ReadSamples_EmptyDst(t *testing.T) {
	t.Parallel()

	src := &source{dec: &mockAiffReader{samples: []int{1}}, bitDepth: 16}
	if n, err := src.ReadSamples(nil); n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = %d, %v, want 0, nil", n, err)
	}
}

func TestSource_BitDepthNormalization(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		bitDepth int
		input    int
		expected float32
	}{
		{"8-bit max", 8, 127, 127.0 / 128.0},
		{"8-bit min", 8, -128, -1.0},
		{"16-bit max", 16, 32767, 32767.0 / 32768.0},
		{"16-bit min", 16, -32768, -1.0},
		{"24-bit", 24, 8388607, 8388607.0 / 8388608.0},
		{"32-bit", 32, 2147483647, 2147483647.0 / 2147483648.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := &source{
				dec:        &mockAiffReader{sampleRate: 44100, channels: 1, samples: []int{tt.input}},
				sampleRate: 44100,
				channels:   1,
				bitDepth:   tt.bitDepth,
			}

			dst := make([]float32, 1)
			n, _ := src.ReadSamples(dst)
			if n != 1 {
				t.Fatalf("ReadSamples() n = %d, want 1", n)
			}

			tolerance := float32(0.001)
			if dst[0] < tt.expected-tolerance || dst[0] > tt.expected+tolerance {
				t.Errorf("ReadSamples() dst[0] = %f, want ~%f", dst[0], tt.expected)
			}
		})
	}
}

func TestErrors_Wrapping(t *testing.T) {
	t.Parallel()

	errs := []error{ErrNotAiffFile, ErrUnsupportedBitDepth, ErrUnsupportedAiffLayout}
	for i, a := range errs {
		wrapped := fmt.Errorf("decode: %w", a)
		for j, b := range errs {
			if got := errors.Is(wrapped, b); got != (i == j) {
				t.Errorf("errors.Is(%v, %v) = %v", wrapped, b, got)
			}
		}
	}
}

func BenchmarkSource_ReadSamples(b *testing.B) {
	samples := make([]int, 44100)
	dst := make([]float32, 4096)

	b.ReportAllocs()

	for b.Loop() {
		src := &source{
			dec:        &mockAiffReader{sampleRate: 44100, channels: 1, samples: samples},
			sampleRate: 44100,
			channels:   1,
			bitDepth:   16,
		}
		for {
			if _, err := src.ReadSamples(dst); err != nil {
				break
			}
		}
	}
}
