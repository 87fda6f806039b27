package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/fayez-kaabi/json-ultra-compress"
	"github.com/fayez-kaabi/json-ultra-compress/format"
)

func newCompressCmd() *cobra.Command {
	var codec string

	cmd := &cobra.Command{
		Use:   "compress [file]",
		Short: "Compress a single JSON document from stdin or a file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(args)
			if err != nil {
				return err
			}

			log.WithField("bytes", len(data)).Debug("compress: read input")

			out, err := jcompress.Compress(data, jcompress.WithCodec(format.Codec(codec)))
			if err != nil {
				return err
			}

			log.WithField("bytes", len(out)).Debug("compress: wrote container")

			_, err = os.Stdout.Write(out)

			return err
		},
	}

	cmd.Flags().StringVar(&codec, "codec", string(format.CodecHybrid), "entropy codec: hybrid, dense, fast, identity")

	return cmd
}

func newDecompressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decompress [file]",
		Short: "Decompress a container produced by compress",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(args)
			if err != nil {
				return err
			}

			out, err := jcompress.Decompress(data)
			if err != nil {
				return err
			}

			_, err = os.Stdout.Write(out)

			return err
		},
	}

	return cmd
}

func readInput(args []string) ([]byte, error) {
	if len(args) == 1 {
		return os.ReadFile(args[0])
	}

	return io.ReadAll(os.Stdin)
}
