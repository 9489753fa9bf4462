// SPDX-License-Identifier: EPL-2.0

package trim

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/ik5/audtrim/audio"
	"github.com/ik5/audtrim/formats/aiff"
	"github.com/ik5/audtrim/formats/flac"
	"github.com/ik5/audtrim/formats/mp3"
	"github.com/ik5/audtrim/formats/vorbis"
	"github.com/ik5/audtrim/formats/wav"
)

// Capability turns the bytes of a container into planar PCM. It is the
// only collaborator the pipeline suspends on, and it is injected so tests
// can fake it.
type Capability interface {
	DecodeAudio(ctx context.Context, format string, data []byte) (sampleRate int, channels [][]float32, err error)
}

// CapabilityFunc adapts a function to Capability.
type CapabilityFunc func(ctx context.Context, format string, data []byte) (int, [][]float32, error)

func (f CapabilityFunc) DecodeAudio(ctx context.Context, format string, data []byte) (int, [][]float32, error) {
	return f(ctx, format, data)
}

// RegistryCapability decodes with the streaming decoders of an
// audio.Registry.
type RegistryCapability struct {
	registry *audio.Registry
}

func NewRegistryCapability(registry *audio.Registry) *RegistryCapability {
	return &RegistryCapability{registry: registry}
}

func (c *RegistryCapability) DecodeAudio(ctx context.Context, format string, data []byte) (int, [][]float32, error) {
	dec, ok := c.registry.Get(format)
	if !ok {
		return 0, nil, fmt.Errorf("%w: %q", ErrNoDecoder, format)
	}

	src, err := dec.Decode(bytes.NewReader(data))
	if err != nil {
		return 0, nil, fmt.Errorf("%w", err)
	}
	defer src.Close()

	channels, err := audio.ReadPlanar(ctx, src)
	if err != nil {
		return 0, nil, fmt.Errorf("%w", err)
	}

	return src.SampleRate(), channels, nil
}

// Formats lists the format keys this capability can decode.
func (c *RegistryCapability) Formats() []string {
	return c.registry.Formats()
}

// DefaultRegistry registers every bundled decoder under the format keys
// the loader produces. webm has no decoder.
func DefaultRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("flac", flac.Decoder{})
	reg.Register("aiff", aiff.Decoder{})

	return reg
}

// DefaultCapability is built on first use and shared afterwards.
var DefaultCapability = sync.OnceValue(func() Capability {
	return NewRegistryCapability(DefaultRegistry())
})
