package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var log = &logrus.Logger{
	Out:       os.Stderr,
	Formatter: &logrus.TextFormatter{},
	Hooks:     make(logrus.LevelHooks),
	Level:     logrus.InfoLevel,
}

var verbose bool

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "jcc",
		Short: "Compress and decompress JSON and NDJSON documents",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newCompressCmd())
	root.AddCommand(newDecompressCmd())
	root.AddCommand(newCompressNDJSONCmd())
	root.AddCommand(newDecompressNDJSONCmd())

	return root
}
