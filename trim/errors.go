// SPDX-License-Identifier: EPL-2.0

package trim

import "errors"

var (
	// ErrSuperseded is returned by a trim that finished after a newer
	// request, or a new source, took its place. Its result is discarded.
	ErrSuperseded = errors.New("trim superseded by a newer request")

	ErrNoSource   = errors.New("no audio source loaded")
	ErrClosed     = errors.New("session closed")
	ErrNoDecoder  = errors.New("no decoder registered for format")
	ErrSourceGone = errors.New("audio source already released")
	// ErrNoAudio marks a non-empty source that decoded to zero frames.
	ErrNoAudio = errors.New("source holds no audio frames")
)
