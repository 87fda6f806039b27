// Command jcc is the thin CLI surface for this module's four entry
// points (spec §6.3): compress, decompress, compress-ndjson, and
// decompress-ndjson. Grounded on grafana/k6's cmd package shape (a
// cobra root command with a persistent --verbose flag wired to a
// logrus.Logger's level) from the example pack, since the teacher
// (arloliu/mebo) ships library demos under examples/ rather than a
// cobra-based CLI.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
