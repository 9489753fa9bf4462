// SPDX-License-Identifier: EPL-2.0

package trim_test

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"github.com/ik5/audtrim/audio"
	"github.com/ik5/audtrim/loader"
	"github.com/ik5/audtrim/trim"
)

// silence stands in for a real decoder: two seconds of stereo at 44.1 kHz.
var silence = trim.CapabilityFunc(func(context.Context, string, []byte) (int, [][]float32, error) {
	return 44100, [][]float32{make([]float32, 88200), make([]float32, 88200)}, nil
})

func ExampleTrimmer_Run() {
	src, _ := loader.Load("interview.mp3", "audio/mpeg", strings.NewReader("..."))

	res, err := trim.New(trim.WithCapability(silence)).Run(context.Background(), src, audio.Range{Start: 0.5, End: 1.5})
	if err != nil {
		fmt.Println(trim.Message(err))
		return
	}

	fmt.Println(res.Name, len(res.WAV))
	fmt.Println(binary.LittleEndian.Uint16(res.WAV[22:]), binary.LittleEndian.Uint32(res.WAV[24:]), binary.LittleEndian.Uint16(res.WAV[34:]))
	// Output:
	// trimmed-interview.wav 176444
	// 2 44100 16
}

func ExampleMessage() {
	src, _ := loader.Load("interview.mp3", "audio/mpeg", strings.NewReader("..."))

	_, err := trim.New(trim.WithCapability(silence)).Run(context.Background(), src, audio.Range{Start: 2, End: 5})
	fmt.Println(errors.Is(err, audio.ErrInvalidRange))
	fmt.Println(trim.Message(err))
	// Output:
	// true
	// The selected time range is empty or outside the audio. Adjust the start and end times.
}

func ExampleSession() {
	ctx := context.Background()
	pub := trim.NewMemoryPublisher()
	s := trim.NewSession(trim.New(trim.WithCapability(silence)), pub)
	defer s.Close(ctx)

	src, _ := loader.Load("interview.mp3", "audio/mpeg", strings.NewReader("..."))
	_ = s.Load(ctx, src)

	_, first, _ := s.Trim(ctx, audio.Range{End: 1})
	_, second, _ := s.Trim(ctx, audio.Range{Start: 1, End: 2})

	_, stillThere := pub.Get(first.Key)
	fmt.Println(stillThere, second.Size, pub.Len())
	// Output:
	// false 176444 1
}
