// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF (Audio Interchange File Format) decoding.
//
// Parsing is done by github.com/go-audio/aiff. Integer PCM at 8, 16, 24
// and 32 bits is accepted, in any channel count and at any sample rate.
// Samples are normalised by their bit depth into [-1, 1):
//
//	src, err := aiff.Decoder{}.Decode(file)
//	switch {
//	case errors.Is(err, aiff.ErrNotAiffFile):
//	case errors.Is(err, aiff.ErrUnsupportedBitDepth):
//	}
//
// AIFF stores samples big-endian and signed even at 8 bits, unlike WAV.
// Compressed AIFF-C is not supported.
package aiff
