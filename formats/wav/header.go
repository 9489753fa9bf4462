// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

const (
	formatPCM        = 0x0001
	formatFloat      = 0x0003
	formatExtensible = 0xFFFE

	// sizeUnknown is what streaming writers leave in a size field they
	// never come back to patch.
	sizeUnknown = 0xFFFFFFFF
)

// subFormatTail is the part of a KSDATAFORMAT_SUBTYPE GUID shared by every
// WAVE_FORMAT_* code; the code itself sits in the first two bytes.
var subFormatTail = []byte{
	0x00, 0x00, 0x00, 0x00, 0x10, 0x00, 0x80, 0x00, 0x00, 0xAA, 0x00, 0x38, 0x9B, 0x71,
}

// header is what the fmt and data chunks say about a RIFF/WAVE stream.
type header struct {
	format     uint16 // 1 or 3, extensible resolved through its sub-format
	channels   int
	sampleRate int
	bits       int
	dataOffset int64
	dataSize   int64
	// streamed is set when the data chunk size could not be trusted and
	// dataSize was taken from the bytes actually present.
	streamed bool
}

func (h *header) frameSize() int { return h.channels * h.bits / 8 }

// readHeader walks the chunks of rs up to the start of the PCM data.
// rs is left positioned at the first data byte.
func readHeader(rs io.ReadSeeker) (*header, error) {
	total, err := rs.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("wav: %w", err)
	}
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("wav: %w", err)
	}

	var riff [12]byte
	if _, err := io.ReadFull(rs, riff[:]); err != nil {
		return nil, ErrNotWavFile
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		return nil, ErrNotWavFile
	}

	var (
		h       header
		haveFmt bool
		chunk   [8]byte
	)
	for {
		if _, err := io.ReadFull(rs, chunk[:]); err != nil {
			return nil, fmt.Errorf("%w: no data chunk", ErrUnsupportedWavChunks)
		}
		id := string(chunk[0:4])
		size := binary.LittleEndian.Uint32(chunk[4:8])

		switch id {
		case "fmt ":
			if size < 16 || int64(size) > total {
				return nil, fmt.Errorf("%w: fmt chunk of %d bytes", ErrUnsupportedWavChunks, size)
			}
			body := make([]byte, size)
			if _, err := io.ReadFull(rs, body); err != nil {
				return nil, fmt.Errorf("%w: short fmt chunk", ErrUnsupportedWavChunks)
			}
			if err := h.parseFmt(body); err != nil {
				return nil, err
			}
			haveFmt = true
			if err := skipPad(rs, size); err != nil {
				return nil, err
			}

		case "data":
			if !haveFmt {
				return nil, fmt.Errorf("%w: data before fmt", ErrUnsupportedWavChunks)
			}
			pos, err := rs.Seek(0, io.SeekCurrent)
			if err != nil {
				return nil, fmt.Errorf("wav: %w", err)
			}
			h.dataOffset = pos
			h.dataSize = int64(size)

			remaining := total - pos
			if size == 0 || size == sizeUnknown || h.dataSize > remaining {
				h.dataSize = remaining
				h.streamed = true
			}
			h.dataSize -= h.dataSize % int64(h.frameSize())
			return &h, nil

		default:
			skip := int64(size) + int64(size&1)
			if _, err := rs.Seek(skip, io.SeekCurrent); err != nil {
				return nil, fmt.Errorf("%w: %s chunk", ErrUnsupportedWavChunks, id)
			}
		}
	}
}

// parseFmt fills the format fields from a fmt chunk body and rejects
// layouts the decoder has no sample path for.
func (h *header) parseFmt(body []byte) error {
	le := binary.LittleEndian

	h.format = le.Uint16(body[0:2])
	h.channels = int(le.Uint16(body[2:4]))
	h.sampleRate = int(le.Uint32(body[4:8]))
	h.bits = int(le.Uint16(body[14:16]))

	if h.format == formatExtensible {
		if len(body) < 40 || !bytes.Equal(body[26:40], subFormatTail) {
			return fmt.Errorf("%w: extensible fmt without a known sub-format", ErrUnsupportedWavLayout)
		}
		h.format = le.Uint16(body[24:26])
	}

	switch h.format {
	case formatPCM:
		switch h.bits {
		case 8, 16, 24, 32:
		default:
			return fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, h.bits)
		}
	case formatFloat:
		switch h.bits {
		case 32, 64:
		default:
			return fmt.Errorf("%w: %d-bit float", ErrUnsupportedBitDepth, h.bits)
		}
	default:
		return fmt.Errorf("%w: audio format %d", ErrUnsupportedWavLayout, h.format)
	}

	if h.channels <= 0 || h.sampleRate <= 0 {
		return fmt.Errorf("%w: %d channels at %d Hz", ErrUnsupportedWavChunks, h.channels, h.sampleRate)
	}
	return nil
}

func skipPad(rs io.Seeker, size uint32) error {
	if size&1 == 0 {
		return nil
	}
	if _, err := rs.Seek(1, io.SeekCurrent); err != nil {
		return fmt.Errorf("wav: %w", err)
	}
	return nil
}
