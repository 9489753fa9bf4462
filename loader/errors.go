// SPDX-License-Identifier: EPL-2.0

package loader

import (
	"errors"
	"fmt"

	"github.com/ik5/audtrim/audio"
)

var (
	// ErrInvalidFormat is returned when neither the declared nor the sniffed
	// media type is on the allow-list. It matches audio.ErrInvalidFormat.
	ErrInvalidFormat = fmt.Errorf("%w: media type not allowed", audio.ErrInvalidFormat)

	ErrEmptySource      = errors.New("audio source is empty")
	ErrUnreadableSource = errors.New("audio source could not be read")
	ErrSourceTooLarge   = errors.New("audio source exceeds size limit")
)
