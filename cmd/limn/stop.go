// Copyright © 2025 Limn contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/limn/stop.go
// Summary: Stops the background daemon.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/framegrace/limn/cmd/limn/lifecycle"
)

func stopCmd() *cobra.Command {
	var socketPath string

	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the background daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			kit, err := buildDaemonKit(socketPath)
			if err != nil {
				return err
			}

			state, err := kit.sup.State(cmd.Context())
			if err != nil {
				return err
			}
			if state == lifecycle.StateStopped {
				fmt.Println("Daemon is not running")
				return nil
			}

			if err := kit.sup.Stop(cmd.Context()); err != nil {
				return fmt.Errorf("stop daemon: %w", err)
			}
			fmt.Println("Daemon stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&socketPath, "socket", "", "control socket path (default from config)")
	return cmd
}
