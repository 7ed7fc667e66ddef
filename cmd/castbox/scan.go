package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/adntgv/castbox/internal/discovery"
)

const scanTimeout = 10 * time.Second

func newScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Browse the LAN for Cast devices for 10s and print each one found",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Scanning for Cast devices...")

			ctx, cancel := context.WithTimeout(cmd.Context(), scanTimeout)
			defer cancel()

			devices, err := discovery.Discover(ctx, scanTimeout)
			if err != nil {
				return fmt.Errorf("discover: %w", err)
			}

			for _, d := range devices {
				fmt.Printf("%s\t%s:%d\t(%s)\n", d.FriendlyName, d.IP, d.Port, d.ModelName)
			}
			fmt.Println("Scan finished.")
			return nil
		},
	}
}
