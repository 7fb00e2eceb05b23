package main

import (
	"fmt"
	"io"
	"os"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
)

func newCompressCmd(opts *rootOptions) *cobra.Command {
	var (
		format string
		output string
	)
	cmd := &cobra.Command{
		Use:   "compress [file]",
		Short: "Compress a file (or standard input)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			newWriter, ok := writers[format]
			if !ok {
				return fmt.Errorf("unknown format %q (want one of %v)", format, formatNames)
			}
			data, err := readInput(cmd, inputName(args))
			if err != nil {
				return err
			}

			var dest io.Writer = cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				dest = f
			}

			counter := &countingWriter{w: dest}
			w := newWriter(counter, opts.level)
			if _, err := w.Write(data); err != nil {
				return err
			}
			if err := w.Close(); err != nil {
				return err
			}
			glog.V(1).Infof("%s: %d -> %d bytes (%s, level %d)", inputName(args), len(data), counter.n, format, opts.level)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "deflate", fmt.Sprintf("output format %v", formatNames))
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default standard output)")
	return cmd
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
