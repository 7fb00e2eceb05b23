package main

import (
	"bufio"
	"fmt"

	"github.com/andybalholm/lz77"
	"github.com/golang/glog"
	"github.com/spf13/cobra"
)

func newTokensCmd(opts *rootOptions) *cobra.Command {
	var (
		chunk  int
		greedy bool
	)
	cmd := &cobra.Command{
		Use:   "tokens [file]",
		Short: "Print the literal and match tokens for a file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, inputName(args))
			if err != nil {
				return err
			}
			o := lz77.LevelOptions(opts.level)
			if greedy {
				o.Lazy = 1
			}

			out := bufio.NewWriter(cmd.OutOrStdout())
			var tokens lz77.Tokens
			c := lz77.NewWithOptions(lz77.SinkFuncs{
				OnLiteral: func(b byte) {
					tokens.Literal(b)
					fmt.Fprintf(out, "%q\n", b)
				},
				OnMatch: func(distance, length int) {
					tokens.Match(distance, length)
					fmt.Fprintf(out, "<%d,%d>\n", length, distance)
				},
			}, o)

			if chunk <= 0 {
				chunk = len(data)
			}
			for len(data) > 0 {
				n := chunk
				if n > len(data) {
					n = len(data)
				}
				c.Feed(data[:n])
				data = data[n:]
			}
			c.Flush()

			literals, matches, size := tokens.Stats()
			glog.V(1).Infof("%d literals, %d matches, %d bytes (%+v)", literals, matches, size, c.Options())
			return out.Flush()
		},
	}
	cmd.Flags().IntVar(&chunk, "chunk", 0, "feed the input in pieces of this many bytes")
	cmd.Flags().BoolVar(&greedy, "greedy", false, "disable lazy matching")
	return cmd
}
