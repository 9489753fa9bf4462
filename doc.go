// SPDX-License-Identifier: EPL-2.0

// Package audtrim trims audio files to a time window and re-encodes the
// window as 16-bit PCM WAV.
//
// The pipeline is strictly sequential:
//
//	Source Loader -> Decoder -> Range Extractor -> WAV Encoder
//
// # Supported Formats
//
// Uploads are accepted by media type (or by sniffing the content when the
// type is missing):
//   - MP3 via formats/mp3
//   - WAV (8, 16, 24 and 32-bit PCM) via formats/wav
//   - Ogg Vorbis via formats/vorbis
//   - FLAC via formats/flac
//   - AIFF via formats/aiff
//   - WebM is accepted by the loader but has no decoder, so it fails to
//     decode with audio.ErrDecodeFailure
//
// # Quick Start
//
// The simplest way to trim a file is Trim:
//
//	f, _ := os.Open("podcast.mp3")
//	res, err := audtrim.Trim(ctx, "podcast.mp3", "audio/mpeg", f, 30, 90)
//	if err != nil {
//	    fmt.Println(trim.Message(err))
//	    return
//	}
//	// res.Name == "trimmed-podcast.wav", res.WAV holds the whole file
//
// # Building Blocks
//
// For more control use the subpackages directly:
//
//	src, _ := loader.Load(name, mimeType, r)       // AudioSource
//	buf, _ := trim.Decode(ctx, capability, src)   // *audio.Buffer
//	cut, _ := audio.Extract(buf, audio.Range{Start: 1, End: 2})
//	data := wav.Encode(cut)                       // []byte
//
// trim.Session holds one source and its latest published trim, with
// latest-request-wins semantics, and waveform.Peaks renders the scrub
// overview of a decoded buffer.
//
// # Errors
//
// Every failure maps onto one of three recoverable sentinels in the audio
// package: ErrInvalidFormat, ErrDecodeFailure and ErrInvalidRange.
package audtrim
