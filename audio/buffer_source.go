// SPDX-License-Identifier: EPL-2.0

package audio

import "io"

// BufferSource streams a Buffer as interleaved samples so it can feed
// anything that consumes a Source.
type BufferSource struct {
	buf   *Buffer
	frame int
}

func NewBufferSource(buf *Buffer) *BufferSource {
	return &BufferSource{buf: buf}
}

func (s *BufferSource) SampleRate() int { return s.buf.SampleRate() }
func (s *BufferSource) Channels() int   { return s.buf.Channels() }
func (s *BufferSource) BufSize() int    { return 4096 }
func (s *BufferSource) Close() error    { return nil }

// ReadSamples writes whole frames only; dst must hold at least one frame.
func (s *BufferSource) ReadSamples(dst []float32) (int, error) {
	channels := s.buf.Channels()
	if len(dst)%channels != 0 {
		return 0, ErrInvalidDstSize
	}

	remaining := s.buf.Frames() - s.frame
	if remaining <= 0 {
		return 0, io.EOF
	}

	frames := min(len(dst)/channels, remaining)
	for f := range frames {
		for c, ch := range s.buf.channels {
			dst[f*channels+c] = ch[s.frame+f]
		}
	}
	s.frame += frames

	if s.frame >= s.buf.Frames() {
		return frames * channels, io.EOF
	}

	return frames * channels, nil
}
