// SPDX-License-Identifier: EPL-2.0

package trim

import (
	"context"
	"errors"
	"fmt"

	"github.com/ik5/audtrim/audio"
	"github.com/ik5/audtrim/loader"
)

// Decode runs src through c and returns the decoded audio.
//
// Channels of unequal length are cut to the shortest one. Every failure
// of the capability, or output it produced that cannot form a Buffer, is
// reported as audio.ErrDecodeFailure, and so is a source that decodes to
// zero frames. Cancellation of ctx is reported as
// the context error instead.
func Decode(ctx context.Context, c Capability, src *loader.AudioSource) (*audio.Buffer, error) {
	data := src.Bytes()
	if data == nil {
		return nil, fmt.Errorf("%w: %w", audio.ErrDecodeFailure, ErrSourceGone)
	}

	rate, channels, err := c.DecodeAudio(ctx, src.Format, data)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("decoding %s: %w", src.Name, err)
		}
		return nil, fmt.Errorf("%w: %s: %w", audio.ErrDecodeFailure, src.Name, err)
	}

	buf, err := audio.NewBuffer(rate, audio.TruncateToShortest(channels))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", audio.ErrDecodeFailure, src.Name, err)
	}
	if buf.Frames() == 0 {
		return nil, fmt.Errorf("%w: %s: %w", audio.ErrDecodeFailure, src.Name, ErrNoAudio)
	}

	return buf, nil
}
