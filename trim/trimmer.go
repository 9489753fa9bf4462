// SPDX-License-Identifier: EPL-2.0

package trim

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/ik5/audtrim/audio"
	"github.com/ik5/audtrim/formats/wav"
	"github.com/ik5/audtrim/loader"
)

// Result is one finished trim: the encoded WAV and what it holds.
type Result struct {
	Name       string
	WAV        []byte
	SampleRate int
	Channels   int
	Frames     int
	// Range is the window after clamping to the source duration.
	Range audio.Range
}

func (r *Result) Duration() time.Duration {
	return time.Duration(float64(r.Frames) / float64(r.SampleRate) * float64(time.Second))
}

// Trimmer runs the decode, extract and encode stages in order.
type Trimmer struct {
	capability Capability
	logger     *slog.Logger
}

type Option func(*Trimmer)

func WithCapability(c Capability) Option {
	return func(t *Trimmer) { t.capability = c }
}

func WithLogger(l *slog.Logger) Option {
	return func(t *Trimmer) { t.logger = l }
}

func New(opts ...Option) *Trimmer {
	t := &Trimmer{}
	for _, opt := range opts {
		opt(t)
	}
	if t.capability == nil {
		t.capability = DefaultCapability()
	}
	if t.logger == nil {
		t.logger = slog.Default()
	}

	return t
}

// Decode is the suspending stage.
func (t *Trimmer) Decode(ctx context.Context, src *loader.AudioSource) (*audio.Buffer, error) {
	started := time.Now()

	buf, err := Decode(ctx, t.capability, src)
	if err != nil {
		t.logger.WarnContext(ctx, "decode failed",
			slog.String("name", src.Name),
			slog.String("format", src.Format),
			slog.Any("error", err),
		)
		return nil, err
	}

	t.logger.DebugContext(ctx, "decoded",
		slog.String("name", src.Name),
		slog.Int("sample_rate", buf.SampleRate()),
		slog.Int("channels", buf.Channels()),
		slog.Int("frames", buf.Frames()),
		slog.Duration("took", time.Since(started)),
	)

	return buf, nil
}

// Cut extracts rng from an already decoded buffer and encodes it. It runs
// to completion without suspending.
func (t *Trimmer) Cut(name string, buf *audio.Buffer, rng audio.Range) (*Result, error) {
	trimmed, err := audio.Extract(buf, rng)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	res := &Result{
		Name:       OutputName(name),
		WAV:        wav.Encode(trimmed),
		SampleRate: trimmed.SampleRate(),
		Channels:   trimmed.Channels(),
		Frames:     trimmed.Frames(),
		Range:      rng.Clamp(buf.Seconds()),
	}

	t.logger.Debug("trimmed",
		slog.String("name", res.Name),
		slog.String("range", res.Range.String()),
		slog.Int("bytes", len(res.WAV)),
	)

	return res, nil
}

// Run is the whole pipeline for one source and one window.
func (t *Trimmer) Run(ctx context.Context, src *loader.AudioSource, rng audio.Range) (*Result, error) {
	buf, err := t.Decode(ctx, src)
	if err != nil {
		return nil, err
	}

	return t.Cut(src.Name, buf, rng)
}

// OutputName is the download name for a trim of name: "trimmed-" plus the
// base name with its extension replaced by ".wav".
func OutputName(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	base := path.Base(strings.TrimSpace(name))
	base = strings.TrimSuffix(base, path.Ext(base))
	if base == "" || base == "." || base == "/" {
		base = "audio"
	}

	return "trimmed-" + base + ".wav"
}
