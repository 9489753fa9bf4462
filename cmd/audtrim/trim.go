// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ik5/audtrim/audio"
	"github.com/ik5/audtrim/loader"
	"github.com/ik5/audtrim/trim"
)

func newTrimCmd(g *globalFlags) *cobra.Command {
	var (
		start, end float64
		output     string
	)

	cmd := &cobra.Command{
		Use:   "trim [file]",
		Short: "Write the window [start, end) of a file as WAV",
		Example: `  audtrim trim --start 12.5 --end 47 interview.mp3
  audtrim trim --start 0 --end 30 -o intro.wav - < episode.ogg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, done, err := g.readInput(cmd, args[0])
			if err != nil {
				return err
			}
			defer done()

			logger := g.logger(cmd.ErrOrStderr())
			src, err := loader.Load(filepath.Base(args[0]), g.mime, in)
			if err != nil {
				return &userError{err}
			}
			defer src.Release()

			ctx, cancel := context.WithTimeout(cmd.Context(), g.timeout)
			defer cancel()

			res, err := trim.New(trim.WithLogger(logger)).Run(ctx, src, audio.Range{Start: start, End: end})
			if err != nil {
				return &userError{err}
			}

			if output == "" {
				output = res.Name
			}
			if output == "-" {
				_, err = cmd.OutOrStdout().Write(res.WAV)
			} else {
				err = os.WriteFile(output, res.WAV, 0o644)
			}
			if err != nil {
				return fmt.Errorf("write output: %w", err)
			}

			if output != "-" {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s, %d ch, %d Hz, %d bytes\n",
					output, res.Duration(), res.Channels, res.SampleRate, len(res.WAV))
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&start, "start", 0, "window start in seconds")
	cmd.Flags().Float64Var(&end, "end", 0, "window end in seconds")
	cmd.Flags().StringVarP(&output, "output", "o", "", `output file, "-" for stdout (default "trimmed-<name>.wav")`)
	_ = cmd.MarkFlagRequired("end")

	return cmd
}
