package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fayez-kaabi/json-ultra-compress"
	"github.com/fayez-kaabi/json-ultra-compress/format"
)

func newCompressNDJSONCmd() *cobra.Command {
	var codec string

	var columnar bool

	cmd := &cobra.Command{
		Use:   "compress-ndjson [file]",
		Short: "Compress a newline-delimited JSON stream",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(args)
			if err != nil {
				return err
			}

			log.WithFields(map[string]any{"bytes": len(data), "columnar": columnar}).Debug("compress-ndjson: read input")

			out, err := jcompress.CompressNDJSON(data,
				jcompress.WithCodec(format.Codec(codec)),
				jcompress.WithColumnar(columnar),
			)
			if err != nil {
				return err
			}

			_, err = os.Stdout.Write(out)

			return err
		},
	}

	cmd.Flags().StringVar(&codec, "codec", string(format.CodecHybrid), "entropy codec: hybrid, dense, fast, identity")
	cmd.Flags().BoolVar(&columnar, "columnar", true, "group same-shaped rows into columns before compressing")

	return cmd
}

func newDecompressNDJSONCmd() *cobra.Command {
	var fields string

	cmd := &cobra.Command{
		Use:   "decompress-ndjson [file]",
		Short: "Decompress an NDJSON container, optionally selecting only some fields",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(args)
			if err != nil {
				return err
			}

			var fieldList []string
			if fields != "" {
				fieldList = strings.Split(fields, ",")
			}

			out, err := jcompress.DecompressNDJSON(data, fieldList...)
			if err != nil {
				return err
			}

			_, err = os.Stdout.Write(out)

			return err
		},
	}

	cmd.Flags().StringVar(&fields, "fields", "", "comma-separated list of fields to decode; empty decodes every field")

	return cmd
}
