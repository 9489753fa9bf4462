// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// maxEmptyReads bounds consecutive (0, nil) reads before giving up.
const maxEmptyReads = 100

// ReadPlanar drains src and splits its interleaved samples into one slice
// per channel. A trailing partial frame leaves the leading channels one
// sample longer than the rest; callers normalise with TruncateToShortest.
//
// ctx is checked between reads so a long decode can be abandoned.
func ReadPlanar(ctx context.Context, src Source) ([][]float32, error) {
	channels := src.Channels()
	if channels <= 0 {
		return nil, ErrNoChannels
	}

	bufSize := src.BufSize()
	if bufSize < channels {
		bufSize = 4096
	}
	// keep reads frame aligned
	bufSize -= bufSize % channels

	out := make([][]float32, channels)
	buf := make([]float32, bufSize)
	// position inside the current frame, carried across short reads
	next := 0
	empty := 0

	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w", err)
		}

		n, err := src.ReadSamples(buf)
		for i := range n {
			out[next] = append(out[next], buf[i])
			next++
			if next == channels {
				next = 0
			}
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
		if n > 0 {
			empty = 0
			continue
		}
		empty++
		if empty >= maxEmptyReads {
			return nil, io.ErrNoProgress
		}
	}

	return out, nil
}
