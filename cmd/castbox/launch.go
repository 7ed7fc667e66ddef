package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adntgv/castbox/internal/castwire"
	"github.com/adntgv/castbox/internal/receiver"
)

func newLaunchCmd() *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "launch <ip> <app_id>",
		Short: "LAUNCH an arbitrary application id and print its app, transport and session ids",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ip, appID := args[0], args[1]
			ctx := cmd.Context()

			client := castwire.Connect(ctx, ip, port)

			sess, err := receiver.LaunchApp(ctx, client, appID)
			if err != nil {
				return fmt.Errorf("launch %s: %w", appID, err)
			}

			fmt.Printf("launched app_id=%s transport_id=%s session_id=%s\n",
				sess.AppID, sess.TransportID, sess.SessionID)
			return nil
		},
	}
	cmd.Flags().IntVar(&port, "port", 8009, "Cast wire TCP port")
	return cmd
}
