// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"encoding/json"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ik5/audtrim/loader"
	"github.com/ik5/audtrim/trim"
	"github.com/ik5/audtrim/waveform"
)

type peaksOutput struct {
	SampleRate int             `json:"sample_rate"`
	Channels   int             `json:"channels"`
	Seconds    float64         `json:"seconds"`
	Peaks      []waveform.Peak `json:"peaks"`
}

func newPeaksCmd(g *globalFlags) *cobra.Command {
	var bins int

	cmd := &cobra.Command{
		Use:   "peaks [file]",
		Short: "Print the waveform overview of a file as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, done, err := g.readInput(cmd, args[0])
			if err != nil {
				return err
			}
			defer done()

			src, err := loader.Load(filepath.Base(args[0]), g.mime, in)
			if err != nil {
				return &userError{err}
			}
			defer src.Release()

			ctx, cancel := context.WithTimeout(cmd.Context(), g.timeout)
			defer cancel()

			buf, err := trim.New(trim.WithLogger(g.logger(cmd.ErrOrStderr()))).Decode(ctx, src)
			if err != nil {
				return &userError{err}
			}

			peaks, err := waveform.Peaks(ctx, buf, bins)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(peaksOutput{
				SampleRate: buf.SampleRate(),
				Channels:   buf.Channels(),
				Seconds:    buf.Seconds(),
				Peaks:      peaks,
			})
		},
	}

	cmd.Flags().IntVar(&bins, "bins", 100, "number of peak bins")

	return cmd
}
