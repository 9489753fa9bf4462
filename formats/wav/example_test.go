// SPDX-License-Identifier: EPL-2.0

package wav_test

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/ik5/audtrim/audio"
	"github.com/ik5/audtrim/formats/wav"
	"github.com/ik5/audtrim/internal/audiotest"
)

// Example_encode trims two seconds of stereo silence and encodes the middle second.
func Example_encode() {
	buf := audiotest.NewBuffer(44100, 2, 88200, audiotest.Silence)

	trimmed, err := audio.Extract(buf, audio.Range{Start: 0.5, End: 1.5})
	if err != nil {
		fmt.Println(err)
		return
	}

	data := wav.Encode(trimmed)

	fmt.Println("bytes:", len(data))
	fmt.Println("channels:", binary.LittleEndian.Uint16(data[22:24]))
	fmt.Println("sample rate:", binary.LittleEndian.Uint32(data[24:28]))
	fmt.Println("bits:", binary.LittleEndian.Uint16(data[34:36]))
	// Output:
	// bytes: 176444
	// channels: 2
	// sample rate: 44100
	// bits: 16
}

// Example_roundTrip writes PCM and decodes it again.
func Example_roundTrip() {
	out := new(bytes.Buffer)
	if err := wav.WriteWAV16(out, 16000, 1, []int16{0, 16384, -16384}); err != nil {
		fmt.Println(err)
		return
	}

	src, err := wav.Decoder{}.Decode(bytes.NewReader(out.Bytes()))
	if err != nil {
		fmt.Println(err)
		return
	}

	samples := make([]float32, 3)
	n, _ := src.ReadSamples(samples)
	fmt.Println(n, samples)
	// Output: 3 [0 0.5 -0.5]
}

// Example_emptyBuffer shows that an empty buffer still yields a valid header.
func Example_emptyBuffer() {
	buf, _ := audio.NewBuffer(8000, [][]float32{{}})
	data := wav.Encode(buf)

	fmt.Println(len(data), string(data[36:40]), binary.LittleEndian.Uint32(data[40:44]))
	// Output: 44 data 0
}
