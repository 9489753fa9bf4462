// SPDX-License-Identifier: EPL-2.0

// Package loader accepts uploaded audio files and checks them against a
// fixed allow-list of container types before anything tries to decode them.
//
// The allow-list is a flat map from media type to decoder format key:
//
//	audio/mpeg, audio/mp3, audio/mpeg3, audio/x-mpeg-3  -> mp3
//	audio/wav, audio/wave, audio/x-wav, audio/vnd.wave  -> wav
//	audio/ogg, application/ogg, audio/vorbis            -> ogg
//	audio/webm                                          -> webm
//	audio/flac, audio/x-flac                            -> flac
//	audio/aiff, audio/x-aiff                            -> aiff
//
// Uploads without a useful declared type are identified from their content
// with github.com/gabriel-vasile/mimetype.
//
// A Slot keeps the current source of a tool instance and releases each
// source exactly once when it is replaced or reset.
package loader
