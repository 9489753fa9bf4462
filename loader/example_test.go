// SPDX-License-Identifier: EPL-2.0

package loader_test

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ik5/audtrim/audio"
	"github.com/ik5/audtrim/loader"
)

func ExampleLoad() {
	src, err := loader.Load("voice.webm", "audio/webm;codecs=opus", strings.NewReader("..."))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(src.MIME, src.Format, src.Size())

	_, err = loader.Load("scan.pdf", "application/pdf", strings.NewReader("%PDF"))
	fmt.Println(errors.Is(err, audio.ErrInvalidFormat))
	// Output:
	// audio/webm webm 3
	// true
}

func ExampleSlot() {
	var slot loader.Slot

	first, _ := loader.Load("first.wav", "audio/wav", strings.NewReader("RIFF"))
	second, _ := loader.Load("second.wav", "audio/wav", strings.NewReader("RIFF"))

	slot.Replace(first)
	slot.Replace(second)
	fmt.Println(first.Released(), second.Released())

	slot.Reset()
	fmt.Println(second.Released())
	// Output:
	// true false
	// true
}
