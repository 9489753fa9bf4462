// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// rawSource reads little-endian samples straight off the data chunk.
type rawSource struct {
	r          io.Reader
	sampleRate int
	channels   int
	width      int
	sample     func([]byte) float32
	raw        []byte
}

func newRawSource(r io.Reader, h *header) *rawSource {
	return &rawSource{
		r:          r,
		sampleRate: h.sampleRate,
		channels:   h.channels,
		width:      h.bits / 8,
		sample:     sampleFunc(h.format, h.bits),
	}
}

func (s *rawSource) SampleRate() int { return s.sampleRate }
func (s *rawSource) Channels() int   { return s.channels }
func (s *rawSource) Close() error    { return nil }
func (s *rawSource) BufSize() int    { return 4096 - 4096%s.channels }

// ReadSamples fills dst with whole frames. A trailing partial frame at the
// end of the data is dropped.
func (s *rawSource) ReadSamples(dst []float32) (int, error) {
	dst = dst[:len(dst)-len(dst)%s.channels]
	if len(dst) == 0 {
		return 0, nil
	}

	need := len(dst) * s.width
	if cap(s.raw) < need {
		s.raw = make([]byte, need)
	}
	raw := s.raw[:need]

	m, err := io.ReadFull(s.r, raw)
	m -= m % (s.channels * s.width)
	n := m / s.width
	for i := range n {
		dst[i] = s.sample(raw[i*s.width:])
	}

	switch {
	case err == nil:
		return n, nil
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		if n == 0 {
			return 0, io.EOF
		}
		return n, nil
	default:
		return n, fmt.Errorf("wav: %w", err)
	}
}

// sampleFunc returns the converter from one stored sample to [-1, 1].
// format and bits are already validated by parseFmt.
func sampleFunc(format uint16, bits int) func([]byte) float32 {
	le := binary.LittleEndian

	if format == formatFloat {
		if bits == 64 {
			return func(b []byte) float32 { return float32(math.Float64frombits(le.Uint64(b))) }
		}
		return func(b []byte) float32 { return math.Float32frombits(le.Uint32(b)) }
	}

	switch bits {
	case 8:
		// 8-bit WAV is unsigned
		return func(b []byte) float32 { return float32(int(b[0])-128) / 128 }
	case 16:
		return func(b []byte) float32 { return float32(int16(le.Uint16(b))) / 32768 }
	case 24:
		return func(b []byte) float32 {
			v := int32(uint32(b[0])<<8|uint32(b[1])<<16|uint32(b[2])<<24) >> 8
			return float32(v) / (1 << 23)
		}
	default:
		return func(b []byte) float32 { return float32(int32(le.Uint32(b))) / (1 << 31) }
	}
}
