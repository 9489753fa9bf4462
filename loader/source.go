// SPDX-License-Identifier: EPL-2.0

package loader

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// AudioSource is an uploaded audio file held in memory until released.
type AudioSource struct {
	// Name is the display name of the upload, usually its file name.
	Name string
	// MIME is the normalised media type the source was accepted under.
	MIME string
	// Format is the decoder registry key, e.g. "mp3" or "wav".
	Format string

	mtx       sync.Mutex
	data      []byte
	released  bool
	onRelease func(*AudioSource)
}

// Bytes returns the held content, or nil once the source is released.
// The slice must not be modified.
func (s *AudioSource) Bytes() []byte {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.data
}

// Reader returns a fresh reader over the held content.
func (s *AudioSource) Reader() *bytes.Reader {
	return bytes.NewReader(s.Bytes())
}

// Size is the number of bytes held, 0 after release.
func (s *AudioSource) Size() int {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return len(s.data)
}

func (s *AudioSource) Released() bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.released
}

// Release drops the held bytes. Only the first call has an effect and
// only it runs the release hook.
func (s *AudioSource) Release() {
	s.mtx.Lock()
	if s.released {
		s.mtx.Unlock()
		return
	}
	s.released = true
	s.data = nil
	hook := s.onRelease
	s.mtx.Unlock()

	if hook != nil {
		hook(s)
	}
}

type options struct {
	maxBytes  int64
	onRelease func(*AudioSource)
}

// Option configures Load.
type Option func(*options)

// WithMaxBytes rejects sources larger than n bytes with ErrSourceTooLarge.
// n <= 0 disables the limit.
func WithMaxBytes(n int64) Option {
	return func(o *options) { o.maxBytes = n }
}

// WithReleaseHook registers fn to run once when the source is released.
func WithReleaseHook(fn func(*AudioSource)) Option {
	return func(o *options) { o.onRelease = fn }
}

// Load reads r fully and validates the result against the allow-list.
//
// The declared media type wins when it says anything specific. When it is
// empty or application/octet-stream the content itself is sniffed. No
// decoding is attempted here.
func Load(name, declaredMIME string, r io.Reader, opts ...Option) (*AudioSource, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	mediaType := normalise(declaredMIME)
	format, ok := allowed[mediaType]
	if !ok && !needsSniff(mediaType) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, mediaType)
	}

	if o.maxBytes > 0 {
		r = io.LimitReader(r, o.maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadableSource, err)
	}
	if len(data) == 0 {
		return nil, ErrEmptySource
	}
	if o.maxBytes > 0 && int64(len(data)) > o.maxBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrSourceTooLarge, o.maxBytes)
	}

	if !ok {
		mediaType, format, ok = sniff(data)
		if !ok {
			return nil, fmt.Errorf("%w: could not detect an audio type", ErrInvalidFormat)
		}
	}

	return &AudioSource{
		Name:      name,
		MIME:      mediaType,
		Format:    format,
		data:      data,
		onRelease: o.onRelease,
	}, nil
}
