// SPDX-License-Identifier: EPL-2.0

// Package audio provides low-level audio processing primitives.
//
// This package contains the core audio processing building blocks:
//   - Source interface for streaming audio input
//   - Buffer, an immutable decoded clip with one sample slice per channel
//   - Extract for cutting a time window out of a Buffer
//   - BufferSource and MonoMixer for reading a Buffer back as a stream
//   - Format registry for decoder registration
//
// # Source Interface
//
// The Source interface is the foundation of audio processing:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Decoders return a Source. ReadPlanar drains one into per-channel slices,
// checking the context between reads.
//
// # Buffers and Ranges
//
// A Buffer never changes after NewBuffer returns. Extract clamps a Range to
// the buffer's duration and copies the frames [floor(start*rate),
// floor(end*rate)) of every channel:
//
//	buf, _ := audio.NewBuffer(44100, channels)
//	cut, err := audio.Extract(buf, audio.Range{Start: 0.5, End: 1.5})
//	if errors.Is(err, audio.ErrInvalidRange) {
//	    // the window is empty once clamped
//	}
//
// There is no resampling, filtering or fading: the samples are copied as
// they are.
//
// # Channel Mixing
//
// The MonoMixer converts multi-channel audio to mono by averaging:
//
//	mono := audio.NewMonoMixer(source)
//	buf := make([]float32, 4096)
//	n, err := mono.ReadSamples(buf)
//
// The waveform package uses it to draw one overview for any channel count.
//
// # Format Registry
//
// The registry allows dynamic decoder registration:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, _ := registry.Get("wav")
//
// This is useful for applications that need to support multiple formats.
//
// # Sample Format
//
// Audio samples are represented as float32 in the range [-1.0, 1.0]:
//   - 0.0 represents silence
//   - 1.0 represents maximum positive amplitude
//   - -1.0 represents maximum negative amplitude
//
// This normalized format makes it easy to process audio without worrying
// about bit depths and ensures no clipping during intermediate processing.
//
// # Memory
//
// A decoded Buffer holds the whole clip in memory, about 4 bytes per sample
// per channel. Extract allocates only the window it returns.
//
// # Error Handling
//
// Audio processing functions return io.EOF when no more data is available.
// Other errors indicate problems with the source or processing:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    if errors.Is(err, io.EOF) {
//	        break // Normal end of stream
//	    }
//	    if err != nil {
//	        return err // Processing error
//	    }
//	    // Process n samples from buf
//	}
package audio
