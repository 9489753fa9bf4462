// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/ik5/audtrim/audio"
)

// pcmReader is the part of gowav.Decoder the source needs, so tests can
// substitute it.
type pcmReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

type source struct {
	dec        pcmReader
	sampleRate int
	channels   int
	bitDepth   int
	intBuf     *goaudio.IntBuffer
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int {
	if s.intBuf != nil {
		return cap(s.intBuf.Data)
	}
	return 4096
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < len(dst) {
		s.intBuf = &goaudio.IntBuffer{
			Data:   make([]int, len(dst)),
			Format: s.dec.Format(),
		}
	} else {
		s.intBuf.Data = s.intBuf.Data[:len(dst)]
	}

	n, err := s.dec.PCMBuffer(s.intBuf)
	if n == 0 {
		if err != nil {
			return 0, fmt.Errorf("%w", err)
		}
		return 0, io.EOF
	}

	// 8-bit WAV is unsigned, everything wider is two's complement
	var offset int
	if s.bitDepth == 8 {
		offset = 128
	}
	scale := float32(int(1) << (s.bitDepth - 1))
	for i := range n {
		dst[i] = float32(s.intBuf.Data[i]-offset) / scale
	}

	if err != nil {
		return n, fmt.Errorf("%w", err)
	}
	return n, nil
}

// Decoder reads RIFF/WAVE files holding integer PCM at 8, 16, 24 or 32
// bits or IEEE float at 32 or 64 bits, in the plain or the extensible fmt
// layout. Files with trustworthy chunk sizes go through go-audio/wav, so
// LIST and other extra chunks decode as well as the canonical 44-byte
// layout. Float data and streamed files, whose data size is 0, 0xFFFFFFFF
// or past the end of the input, are read straight to the end of the bytes.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading wav data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	h, err := readHeader(rs)
	if err != nil {
		return nil, err
	}

	if h.format == formatPCM && !h.streamed {
		if src, ok := pcmSource(rs, h); ok {
			return src, nil
		}
	}

	if _, err := rs.Seek(h.dataOffset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("wav: %w", err)
	}
	return newRawSource(io.LimitReader(rs, h.dataSize), h), nil
}

// pcmSource hands integer PCM to go-audio/wav. It reports false when the
// library refuses the header, e.g. a RIFF size left at zero.
func pcmSource(rs io.ReadSeeker, h *header) (audio.Source, bool) {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, false
	}

	dec := gowav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, false
	}
	dec.ReadInfo()

	return &source{
		dec:        dec,
		sampleRate: h.sampleRate,
		channels:   h.channels,
		bitDepth:   h.bits,
	}, true
}
