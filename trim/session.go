// SPDX-License-Identifier: EPL-2.0

package trim

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ik5/audtrim/audio"
	"github.com/ik5/audtrim/loader"
)

// Session is one instance of the trim tool: the file the user picked, its
// decoded audio, and the last published trim.
//
// The newest request wins. Loading a file or starting a trim bumps a
// generation counter, and a trim that completes under an older generation
// returns ErrSuperseded without replacing the current artifact. The held
// source and every published artifact are released exactly once, on
// replacement, Reset or Close.
type Session struct {
	trimmer   *Trimmer
	publisher Publisher
	logger    *slog.Logger

	mtx        sync.Mutex
	slot       loader.Slot
	decoded    *audio.Buffer
	decodedFor *loader.AudioSource
	generation uint64
	artifact   *Artifact
	result     *Result
	closed     bool
}

// NewSession returns an empty session. A nil publisher keeps artifacts in
// memory.
func NewSession(t *Trimmer, p Publisher) *Session {
	if t == nil {
		t = New()
	}
	if p == nil {
		p = NewMemoryPublisher()
	}

	return &Session{
		trimmer:   t,
		publisher: p,
		logger:    t.logger,
	}
}

// Load makes src the session's source. The previous source and artifact
// are released and any trim still running for them is superseded.
func (s *Session) Load(ctx context.Context, src *loader.AudioSource) error {
	s.mtx.Lock()
	if s.closed {
		s.mtx.Unlock()
		src.Release()
		return ErrClosed
	}
	s.generation++
	s.decoded, s.decodedFor = nil, nil
	prev := s.takeArtifact()
	s.slot.Replace(src)
	s.mtx.Unlock()

	s.withdraw(ctx, prev)
	s.logger.DebugContext(ctx, "source loaded",
		slog.String("name", src.Name),
		slog.String("mime", src.MIME),
		slog.Int("size", src.Size()),
	)

	return nil
}

// Source returns the loaded source, or nil.
func (s *Session) Source() *loader.AudioSource {
	return s.slot.Current()
}

// Audio returns the decoded form of the loaded source, decoding it on the
// first call.
func (s *Session) Audio(ctx context.Context) (*audio.Buffer, error) {
	buf, _, err := s.audio(ctx)
	return buf, err
}

func (s *Session) audio(ctx context.Context) (*audio.Buffer, *loader.AudioSource, error) {
	s.mtx.Lock()
	if s.closed {
		s.mtx.Unlock()
		return nil, nil, ErrClosed
	}
	src := s.slot.Current()
	if src == nil {
		s.mtx.Unlock()
		return nil, nil, ErrNoSource
	}
	if s.decodedFor == src {
		buf := s.decoded
		s.mtx.Unlock()
		return buf, src, nil
	}
	s.mtx.Unlock()

	buf, err := s.trimmer.Decode(ctx, src)
	if err != nil {
		return nil, nil, err
	}

	s.mtx.Lock()
	if s.slot.Current() == src {
		s.decoded, s.decodedFor = buf, src
	}
	s.mtx.Unlock()

	return buf, src, nil
}

// Trim cuts rng out of the loaded source and publishes it as the current
// artifact, withdrawing the one it replaces.
func (s *Session) Trim(ctx context.Context, rng audio.Range) (*Result, Artifact, error) {
	s.mtx.Lock()
	if s.closed {
		s.mtx.Unlock()
		return nil, Artifact{}, ErrClosed
	}
	s.generation++
	gen := s.generation
	s.mtx.Unlock()

	buf, src, err := s.audio(ctx)
	if s.stale(gen) {
		return nil, Artifact{}, ErrSuperseded
	}
	if err != nil {
		return nil, Artifact{}, err
	}

	res, err := s.trimmer.Cut(src.Name, buf, rng)
	if err != nil {
		return nil, Artifact{}, err
	}
	if s.stale(gen) {
		return nil, Artifact{}, ErrSuperseded
	}

	art, err := s.publisher.Put(ctx, res.Name, res.WAV)
	if err != nil {
		return nil, Artifact{}, fmt.Errorf("publishing %s: %w", res.Name, err)
	}

	s.mtx.Lock()
	if s.closed || gen != s.generation {
		s.mtx.Unlock()
		// overtaken while uploading
		s.withdraw(ctx, &art)
		return nil, Artifact{}, ErrSuperseded
	}
	prev := s.takeArtifact()
	s.artifact, s.result = &art, res
	s.mtx.Unlock()

	s.withdraw(ctx, prev)
	s.logger.InfoContext(ctx, "trim published",
		slog.String("name", res.Name),
		slog.String("key", art.Key),
		slog.Int("bytes", art.Size),
	)

	return res, art, nil
}

// Latest returns the current result and its artifact, if any.
func (s *Session) Latest() (*Result, Artifact, bool) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.result == nil {
		return nil, Artifact{}, false
	}
	return s.result, *s.artifact, true
}

// Reset drops the source and the artifact but keeps the session usable.
func (s *Session) Reset(ctx context.Context) {
	s.mtx.Lock()
	s.generation++
	s.decoded, s.decodedFor = nil, nil
	prev := s.takeArtifact()
	s.slot.Reset()
	s.mtx.Unlock()

	s.withdraw(ctx, prev)
}

// Close releases everything the session holds. Later calls fail with
// ErrClosed; closing twice is a no-op.
func (s *Session) Close(ctx context.Context) error {
	s.mtx.Lock()
	if s.closed {
		s.mtx.Unlock()
		return nil
	}
	s.closed = true
	s.mtx.Unlock()

	s.Reset(ctx)
	return nil
}

func (s *Session) stale(gen uint64) bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.closed || gen != s.generation
}

// takeArtifact hands the current artifact to the caller for withdrawal.
// s.mtx must be held.
func (s *Session) takeArtifact() *Artifact {
	prev := s.artifact
	s.artifact, s.result = nil, nil
	return prev
}

func (s *Session) withdraw(ctx context.Context, art *Artifact) {
	if art == nil {
		return
	}

	err := s.publisher.Delete(context.WithoutCancel(ctx), art.Key)
	if err != nil {
		s.logger.WarnContext(ctx, "withdrawing artifact failed",
			slog.String("key", art.Key),
			slog.Any("error", err),
		)
	}
}
