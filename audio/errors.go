// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")

	// ErrInvalidFormat marks input whose container type is not supported.
	ErrInvalidFormat = errors.New("unsupported audio format")
	// ErrDecodeFailure marks a byte stream the decoder could not turn into PCM.
	ErrDecodeFailure = errors.New("unable to decode audio")
	// ErrInvalidRange marks a trim window that is empty after clamping.
	ErrInvalidRange = errors.New("invalid trim range")

	ErrInvalidSampleRate     = errors.New("sample rate must be positive")
	ErrNoChannels            = errors.New("at least one channel is required")
	ErrChannelLengthMismatch = errors.New("channels differ in length")
)
