// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"errors"
	"fmt"
	"io"

	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"

	"github.com/ik5/audtrim/audio"
)

var (
	// ErrNotFLAC wraps any failure to parse the fLaC signature or STREAMINFO.
	ErrNotFLAC = errors.New("not a FLAC stream")

	// ErrUnsupportedBitDepth indicates a sample size outside 4..32 bits.
	ErrUnsupportedBitDepth = errors.New("unsupported FLAC bit depth")
)

// frameParser is the part of flac.Stream the source needs, so tests can
// substitute it.
type frameParser interface {
	ParseNext() (*frame.Frame, error)
}

type source struct {
	dec        frameParser
	sampleRate int
	channels   int
	bitDepth   int
	// interleaved samples of the last parsed frame not yet handed out
	pending []float32
	closer  io.Closer
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) BufSize() int    { return 4096 - 4096%s.channels }

func (s *source) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	written := 0
	for written < len(dst) {
		if len(s.pending) == 0 {
			if err := s.nextFrame(); err != nil {
				return written, err
			}
			continue
		}

		n := copy(dst[written:], s.pending)
		s.pending = s.pending[n:]
		written += n
	}

	return written, nil
}

// nextFrame parses one FLAC frame and interleaves its subframes into pending.
func (s *source) nextFrame() error {
	f, err := s.dec.ParseNext()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return io.EOF
		}
		return fmt.Errorf("flac: %w", err)
	}
	if len(f.Subframes) != s.channels {
		return fmt.Errorf("%w: frame has %d subframes, stream has %d channels",
			audio.ErrChannelLengthMismatch, len(f.Subframes), s.channels)
	}

	frames := len(f.Subframes[0].Samples)
	for _, sub := range f.Subframes[1:] {
		frames = min(frames, len(sub.Samples))
	}

	size := frames * s.channels
	if cap(s.pending) < size {
		s.pending = make([]float32, size)
	}
	s.pending = s.pending[:size]

	scale := float32(int64(1) << (s.bitDepth - 1))
	for ch, sub := range f.Subframes {
		for i := range frames {
			s.pending[i*s.channels+ch] = float32(sub.Samples[i]) / scale
		}
	}

	return nil
}

// Decoder reads native FLAC streams (not Ogg-encapsulated FLAC).
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFLAC, err)
	}

	info := stream.Info
	if info == nil || info.NChannels == 0 || info.SampleRate == 0 {
		stream.Close()
		return nil, ErrNotFLAC
	}
	if info.BitsPerSample < 4 || info.BitsPerSample > 32 {
		stream.Close()
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, info.BitsPerSample)
	}

	return &source{
		dec:        stream,
		sampleRate: int(info.SampleRate),
		channels:   int(info.NChannels),
		bitDepth:   int(info.BitsPerSample),
		closer:     stream,
	}, nil
}
