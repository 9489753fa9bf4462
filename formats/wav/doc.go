// SPDX-License-Identifier: EPL-2.0

// Package wav provides WAV audio file decoding and encoding.
//
// # Decoding WAV Files
//
// Decoder reads integer PCM at 8, 16, 24 or 32 bits through
// github.com/go-audio/wav, which walks the RIFF chunks, so files carrying
// LIST or other metadata chunks decode as well as canonical ones:
//
//	src, err := wav.Decoder{}.Decode(file)
//	buf := make([]float32, 4096)
//	n, err := src.ReadSamples(buf)
//
// Samples come back interleaved as float32 in [-1.0, 1.0].
//
// # Encoding
//
// Encode turns an audio.Buffer into a complete 16-bit PCM file in memory:
//
//	data := wav.Encode(trimmed)
//
// The output always starts with the canonical 44-byte header:
//
//	offset size field
//	0      4    "RIFF"
//	4      4    data length + 36
//	8      4    "WAVE"
//	12     4    "fmt "
//	16     4    16
//	20     2    1 (PCM)
//	22     2    channels
//	24     4    sample rate
//	28     4    sample rate * channels * 2
//	32     2    channels * 2
//	34     2    16
//	36     4    "data"
//	40     4    data length
//	44     -    interleaved little-endian int16 samples
//
// Samples are clamped to [-1, 1], negatives scaled by 32768 and the rest by
// 32767, then truncated toward zero. Encoding is deterministic.
//
// WriteWAV16 streams already quantised interleaved samples with the same
// header to an io.Writer.
package wav
