package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/andybalholm/lz77"
	"github.com/golang/glog"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/kr/pretty"
	"github.com/pierrec/lz4/v4"
	"github.com/spf13/cobra"
)

// decoders maps each binary format to an independent decoder.
var decoders = map[string]func(r io.Reader) (io.Reader, error){
	"deflate": func(r io.Reader) (io.Reader, error) { return flate.NewReader(r), nil },
	"gzip":    func(r io.Reader) (io.Reader, error) { return gzip.NewReader(r) },
	"snappy":  func(r io.Reader) (io.Reader, error) { return snappy.NewReader(r), nil },
	"lz4":     func(r io.Reader) (io.Reader, error) { return lz4.NewReader(r), nil },
	"brotli":  func(r io.Reader) (io.Reader, error) { return brotli.NewReader(r), nil },
}

var errMismatch = errors.New("round trip mismatch")

func newVerifyCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "verify [file]...",
		Short: "Check that every format decodes back to the input",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"-"}
			}
			failed := false
			for _, name := range args {
				data, err := readInput(cmd, name)
				if err != nil {
					return err
				}
				for _, format := range formatNames {
					if err := verifyFormat(format, data, opts.level); err != nil {
						glog.Errorf("%s: %s: %v", name, format, err)
						fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\tFAIL\n", name, format)
						failed = true
						continue
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\tok\n", name, format)
				}
				if err := verifyChunking(data, opts.level); err != nil {
					glog.Errorf("%s: %v", name, err)
					fmt.Fprintf(cmd.OutOrStdout(), "%s\tchunking\tFAIL\n", name)
					failed = true
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\tchunking\tok\n", name)
			}
			if failed {
				return errMismatch
			}
			return nil
		},
	}
}

func verifyFormat(format string, data []byte, level int) error {
	buf := new(bytes.Buffer)
	w := writers[format](buf, level)
	if _, err := w.Write(data); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	newReader, ok := decoders[format]
	if !ok {
		// Text output is not meant to be decoded.
		return nil
	}
	if format == "brotli" && len(data) == 0 {
		return nil
	}
	r, err := newReader(buf)
	if err != nil {
		return err
	}
	got, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if !bytes.Equal(got, data) {
		return fmt.Errorf("%w: decoded %d bytes, want %d", errMismatch, len(got), len(data))
	}
	return nil
}

// verifyChunking checks that feeding the input one byte at a time gives the
// same tokens as feeding it all at once, and that the tokens expand to the
// input.
func verifyChunking(data []byte, level int) error {
	o := lz77.LevelOptions(level)
	whole := lz77.Compress(data, o)

	var pieces lz77.Tokens
	c := lz77.NewWithOptions(&pieces, o)
	for i := range data {
		c.Feed(data[i : i+1])
	}
	c.Flush()

	if diff := pretty.Diff(whole, []lz77.Token(pieces)); len(diff) > 0 {
		return fmt.Errorf("%w: chunked tokens differ: %v", errMismatch, diff[0])
	}
	out, err := lz77.Expand(nil, whole)
	if err != nil {
		return err
	}
	if !bytes.Equal(out, data) {
		return fmt.Errorf("%w: tokens expand to different bytes", errMismatch)
	}
	return nil
}
