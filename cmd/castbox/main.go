// Command castbox casts local files, URLs, magnets, and .torrent files to
// a Google Cast device: scan discovers devices, cast is the primary
// playback mode, connect and launch are low-level wire-protocol
// diagnostics. Grounded on the teacher's cmd/server/main.go bootstrap
// idiom (zerolog console writer, log.Fatal on unrecoverable setup error),
// restructured around cobra subcommands since the teacher had only one
// entrypoint.
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	root := &cobra.Command{
		Use:   "castbox",
		Short: "Cast local media to a Google Cast device",
	}

	root.AddCommand(newScanCmd())
	root.AddCommand(newCastCmd())
	root.AddCommand(newConnectCmd())
	root.AddCommand(newLaunchCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
