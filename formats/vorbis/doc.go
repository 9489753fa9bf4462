// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams into an audio.Source.
//
// Decoding is done by github.com/jfreymuth/oggvorbis, which already yields
// interleaved float32 samples in [-1, 1]:
//
//	src, err := vorbis.Decoder{}.Decode(file)
//	if errors.Is(err, vorbis.ErrNotOggVorbis) {
//	    // not an ogg file, or an ogg file without a vorbis stream
//	}
//
// Only the Vorbis codec is understood. Ogg containers carrying Opus or FLAC
// are rejected with ErrNotOggVorbis.
package vorbis
