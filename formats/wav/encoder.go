// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ik5/audtrim/audio"
	"github.com/ik5/audtrim/utils"
)

// HeaderSize is the length of the canonical PCM header written here.
const HeaderSize = 44

const bytesPerSample = 2

// putHeader writes the 44-byte RIFF/WAVE header for 16-bit PCM into dst.
func putHeader(dst []byte, sampleRate, channels int, dataSize uint32) {
	byteRate := uint32(sampleRate) * uint32(channels) * bytesPerSample
	blockAlign := uint16(channels) * bytesPerSample

	// RIFF header (12 bytes)
	copy(dst[0:4], "RIFF")
	binary.LittleEndian.PutUint32(dst[4:8], 36+dataSize)
	copy(dst[8:12], "WAVE")

	// fmt chunk (24 bytes)
	copy(dst[12:16], "fmt ")
	binary.LittleEndian.PutUint32(dst[16:20], 16) // PCM fmt chunk size
	binary.LittleEndian.PutUint16(dst[20:22], 1)  // PCM format
	binary.LittleEndian.PutUint16(dst[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(dst[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(dst[28:32], byteRate)
	binary.LittleEndian.PutUint16(dst[32:34], blockAlign)
	binary.LittleEndian.PutUint16(dst[34:36], 16)

	// data chunk header (8 bytes)
	copy(dst[36:40], "data")
	binary.LittleEndian.PutUint32(dst[40:44], dataSize)
}

// Encode renders buf as a complete 16-bit PCM WAV file.
//
// Frames are interleaved channel by channel and every sample goes through
// utils.Float32ToInt16. The output depends only on buf, so encoding the
// same buffer twice yields identical bytes. An empty buffer produces a
// header with a zero-length data chunk.
func Encode(buf *audio.Buffer) []byte {
	channels := buf.Channels()
	frames := buf.Frames()
	dataSize := frames * channels * bytesPerSample

	out := make([]byte, HeaderSize+dataSize)
	putHeader(out, buf.SampleRate(), channels, uint32(dataSize))

	data := out[HeaderSize:]
	planes := make([][]float32, channels)
	for c := range planes {
		planes[c] = buf.Channel(c)
	}

	i := 0
	for f := range frames {
		for _, plane := range planes {
			binary.LittleEndian.PutUint16(data[i:i+2], uint16(utils.Float32ToInt16(plane[f])))
			i += bytesPerSample
		}
	}

	return out
}

// WriteWAV16 writes interleaved 16-bit PCM samples as a WAV stream.
// len(samples) should be a multiple of channels.
func WriteWAV16(w io.Writer, sampleRate, channels int, samples []int16) error {
	if channels <= 0 {
		return fmt.Errorf("%w: %d channels", ErrUnsupportedWavLayout, channels)
	}

	header := make([]byte, HeaderSize)
	putHeader(header, sampleRate, channels, uint32(len(samples)*bytesPerSample))

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("%w", err)
	}

	if len(samples) == 0 {
		return nil
	}

	// Write 8K samples at a time
	const chunkSize = 8192

	buf := make([]byte, min(len(samples), chunkSize)*bytesPerSample)
	for i := 0; i < len(samples); i += chunkSize {
		chunk := samples[i:min(i+chunkSize, len(samples))]
		buf = buf[:len(chunk)*bytesPerSample]

		for j, s := range chunk {
			binary.LittleEndian.PutUint16(buf[j*2:j*2+2], uint16(s))
		}

		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	return nil
}
