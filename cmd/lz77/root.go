package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/andybalholm/lz77"
	"github.com/andybalholm/lz77/brotli"
	"github.com/andybalholm/lz77/flate"
	"github.com/andybalholm/lz77/lz4"
	"github.com/andybalholm/lz77/snappy"
	"github.com/spf13/cobra"
)

// writers maps each output format to a constructor.
var writers = map[string]func(w io.Writer, level int) *lz77.Writer{
	"deflate": flate.NewWriter,
	"gzip":    flate.NewGZIPWriter,
	"snappy":  snappy.NewWriter,
	"lz4":     lz4.NewWriter,
	"brotli":  brotli.NewWriter,
	"text": func(w io.Writer, level int) *lz77.Writer {
		return &lz77.Writer{
			Dest:        w,
			MatchFinder: lz77.NewLazyMatchFinder(level),
			Encoder:     lz77.TextEncoder{},
		}
	},
}

var formatNames = []string{"deflate", "gzip", "snappy", "lz4", "brotli", "text"}

type rootOptions struct {
	level int
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:           "lz77",
		Short:         "LZ77 compression with lazy matching",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// glog reads its settings from the standard flag set.
			if err := flag.CommandLine.Parse(nil); err != nil {
				return err
			}
			if opts.level < 1 || opts.level > 9 {
				return fmt.Errorf("level %d out of range 1-9", opts.level)
			}
			return nil
		},
	}
	rootCmd.PersistentFlags().IntVarP(&opts.level, "level", "l", 6, "compression level (1-9)")
	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	rootCmd.AddCommand(newCompressCmd(opts))
	rootCmd.AddCommand(newTokensCmd(opts))
	rootCmd.AddCommand(newVerifyCmd(opts))
	return rootCmd
}

// readInput reads the named file, or the command's input when name is ""
// or "-".
func readInput(cmd *cobra.Command, name string) ([]byte, error) {
	if name == "" || name == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(name)
}

func inputName(args []string) string {
	if len(args) == 0 {
		return "-"
	}
	return args[0]
}
