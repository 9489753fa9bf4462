// SPDX-License-Identifier: EPL-2.0

package trim

import (
	"context"
	"errors"

	"github.com/ik5/audtrim/audio"
	"github.com/ik5/audtrim/loader"
)

// Message turns a pipeline error into text a user can act on. Every error
// leaves the tool usable, so each message says what to do next.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, audio.ErrInvalidFormat):
		return "This file type is not supported. Choose an MP3, WAV, OGG, WebM, FLAC or AIFF file."
	case errors.Is(err, loader.ErrEmptySource):
		return "The selected file is empty. Choose a different file."
	case errors.Is(err, loader.ErrUnreadableSource):
		return "The selected file could not be read. Try selecting it again."
	case errors.Is(err, loader.ErrSourceTooLarge):
		return "The selected file is too large. Choose a shorter recording."
	case errors.Is(err, audio.ErrDecodeFailure):
		return "The audio could not be decoded. The file may be damaged or use an unsupported encoding; try a different file."
	case errors.Is(err, audio.ErrInvalidRange):
		return "The selected time range is empty or outside the audio. Adjust the start and end times."
	case errors.Is(err, ErrNoSource):
		return "Choose an audio file first."
	case errors.Is(err, ErrSuperseded):
		return "A newer trim request replaced this one."
	case errors.Is(err, context.DeadlineExceeded):
		return "Decoding took too long. Try a shorter file."
	case errors.Is(err, context.Canceled):
		return "The request was cancelled."
	case errors.Is(err, ErrClosed):
		return "This session has ended. Start a new one."
	default:
		return "Something went wrong while trimming the audio. Please try again."
	}
}
