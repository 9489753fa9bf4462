// SPDX-License-Identifier: EPL-2.0

package audtrim

import (
	"context"
	"fmt"
	"io"

	"github.com/ik5/audtrim/audio"
	"github.com/ik5/audtrim/loader"
	"github.com/ik5/audtrim/trim"
)

// Trim is a high-level convenience function that cuts the window
// [start, end) seconds out of one audio stream and returns it as a 16-bit
// PCM WAV.
//
// This function runs the whole pipeline:
//  1. Loads r, checking mimeType (or the sniffed content type when mimeType
//     is empty) against the supported formats
//  2. Decodes the stream with the default decoders
//  3. Clamps the window to the audio and extracts it
//  4. Encodes the window as a canonical 44-byte-header WAV
//
// Parameters:
//   - name: the file name, used for the result name "trimmed-<base>.wav"
//   - mimeType: declared media type, may be empty
//   - start, end: the window in seconds
//   - opts: loader options such as loader.WithMaxBytes
//
// Errors match audio.ErrInvalidFormat, audio.ErrDecodeFailure or
// audio.ErrInvalidRange; trim.Message turns them into user text.
//
// Note: This is a convenience function for one-off use. For repeated trims
// of the same file use trim.Session, which decodes only once.
//
// Example:
//
//	f, _ := os.Open("interview.mp3")
//	res, err := audtrim.Trim(ctx, f.Name(), "", f, 12.5, 47)
//	if err != nil {
//	    log.Fatal(trim.Message(err))
//	}
//	os.WriteFile(res.Name, res.WAV, 0o644)
func Trim(ctx context.Context, name, mimeType string, r io.Reader, start, end float64, opts ...loader.Option) (*trim.Result, error) {
	src, err := loader.Load(name, mimeType, r, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	defer src.Release()

	return trim.New().Run(ctx, src, audio.Range{Start: start, End: end})
}

// Decode loads and decodes one audio stream without trimming it.
func Decode(ctx context.Context, name, mimeType string, r io.Reader, opts ...loader.Option) (*audio.Buffer, error) {
	src, err := loader.Load(name, mimeType, r, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	defer src.Release()

	return trim.New().Decode(ctx, src)
}
