// SPDX-License-Identifier: EPL-2.0

// Command audtrim trims audio files to a time window and writes 16-bit PCM
// WAV, or serves the same pipeline over HTTP.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
