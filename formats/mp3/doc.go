// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 Layer III audio with
// github.com/hajimehoshi/go-mp3.
//
// The decoder always reports two channels: go-mp3 renders mono streams as
// duplicated stereo. Samples are interleaved float32 in [-1.0, 1.0).
//
//	src, err := mp3.Decoder{}.Decode(file)
//	if errors.Is(err, mp3.ErrNotMP3) {
//	    // not an MP3 stream
//	}
package mp3
