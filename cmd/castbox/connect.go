package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/adntgv/castbox/internal/castproto"
	"github.com/adntgv/castbox/internal/castwire"
)

func newConnectCmd() *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "connect <ip>",
		Short: "Open the wire transport to a device and dump every event received",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ip := args[0]
			ctx := cmd.Context()

			client := castwire.Connect(ctx, ip, port)
			events, unsubscribe := client.Subscribe()
			defer unsubscribe()

			if err := castproto.Connect(client, castwire.ReceiverID); err != nil {
				return fmt.Errorf("connect receiver: %w", err)
			}

			fmt.Printf("Connected to %s:%d, dumping events (ctrl-c to quit)...\n", ip, port)
			for {
				select {
				case ev := <-events:
					log.Info().Str("namespace", ev.Namespace).Str("payload", ev.Payload).Msg("event")
				case <-ctx.Done():
					return nil
				}
			}
		},
	}
	cmd.Flags().IntVar(&port, "port", 8009, "Cast wire TCP port")
	return cmd
}
