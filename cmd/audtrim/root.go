// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/ik5/audtrim/trim"
)

var version = "0.1.0"

type globalFlags struct {
	verbose bool
	quiet   bool
	timeout time.Duration
	mime    string
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:   "audtrim",
		Short: "Trim audio files to a time window as 16-bit PCM WAV",
		Long: `audtrim cuts a time window out of an MP3, WAV, Ogg Vorbis, FLAC or AIFF
file and writes it as a canonical 16-bit PCM WAV file.

Run "audtrim serve" to expose the same pipeline over HTTP.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}
	root.SetVersionTemplate("audtrim version {{.Version}}\n")

	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "log pipeline details to stderr")
	root.PersistentFlags().BoolVarP(&g.quiet, "quiet", "q", false, "no progress bar")
	root.PersistentFlags().DurationVar(&g.timeout, "timeout", 2*time.Minute, "give up decoding after this long")
	root.PersistentFlags().StringVar(&g.mime, "type", "", "media type of the input (sniffed when empty)")

	root.AddCommand(
		newTrimCmd(g),
		newPeaksCmd(g),
		newServeCmd(),
	)

	return root
}

func (g *globalFlags) logger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if g.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// readInput reads the named file, or stdin for "-", drawing a byte
// progress bar on stderr unless quiet.
func (g *globalFlags) readInput(cmd *cobra.Command, name string) (io.Reader, func(), error) {
	if name == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, nil, fmt.Errorf("open input: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("stat input: %w", err)
	}

	if g.quiet {
		return f, func() { f.Close() }, nil
	}

	bar := progressbar.NewOptions64(info.Size(),
		progressbar.OptionSetWriter(cmd.ErrOrStderr()),
		progressbar.OptionSetDescription("reading"),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(30),
		progressbar.OptionClearOnFinish(),
	)

	return io.TeeReader(f, bar), func() {
		_ = bar.Finish()
		f.Close()
	}, nil
}

// userError keeps the cause for errors.Is but prints the actionable text.
type userError struct {
	err error
}

func (e *userError) Error() string {
	return trim.Message(e.err)
}

func (e *userError) Unwrap() error {
	return e.err
}
