// SPDX-License-Identifier: EPL-2.0

// Package flac decodes native FLAC streams into an audio.Source using
// github.com/mewkiz/flac.
//
// Frames are parsed one at a time and interleaved on demand, so memory use
// stays at one frame regardless of file length. Samples are normalised by
// the stream's bit depth into [-1, 1).
package flac
