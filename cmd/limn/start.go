// Copyright © 2025 Limn contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/limn/start.go
// Summary: Starts the daemon detached and waits for it to come up.

package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/framegrace/limn/cmd/limn/lifecycle"
	"github.com/framegrace/limn/config"
)

func startCmd() *cobra.Command {
	var (
		socketPath  string
		journalPath string
		verbose     bool
	)

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the daemon in the background",
		RunE: func(cmd *cobra.Command, args []string) error {
			kit, err := buildDaemonKit(socketPath)
			if err != nil {
				return err
			}
			kit.opts.JournalPath = journalPath
			kit.opts.Verbose = verbose

			result, err := kit.sup.EnsureRunning(cmd.Context(), kit.opts)
			if err != nil {
				return err
			}

			switch {
			case result.Restarted:
				fmt.Printf("Daemon restarted (PID %d)\n", result.PID)
			case result.Started:
				fmt.Printf("Daemon started (PID %d)\n", result.PID)
			default:
				fmt.Printf("Daemon already running (PID %d)\n", result.PID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&socketPath, "socket", "", "control socket path (default from config)")
	cmd.Flags().StringVar(&journalPath, "journal", "", "journal database path (default from config)")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "log every dispatched notification")
	return cmd
}

// daemonKit bundles the lifecycle pieces shared by start, stop, and
// status.
type daemonKit struct {
	sup     *lifecycle.Supervisor
	manager *lifecycle.Manager
	opts    lifecycle.DaemonOptions
}

func buildDaemonKit(socketFlag string) (*daemonKit, error) {
	cfg := config.System()

	socket, err := resolveSocket(cfg, socketFlag)
	if err != nil {
		return nil, err
	}

	pidPath := cfg.GetString("daemon", "pidfile", "")
	if pidPath == "" {
		pidPath, err = config.PIDPath()
		if err != nil {
			return nil, err
		}
	}

	dataRoot, err := config.DataRoot()
	if err != nil {
		return nil, err
	}

	pid := lifecycle.NewPIDFile(pidPath)
	health := lifecycle.NewPingChecker()
	manager := lifecycle.NewManager(pid, socket, health)

	return &daemonKit{
		sup:     lifecycle.NewSupervisor(manager, health, pid, lifecycle.DefaultSupervisorConfig()),
		manager: manager,
		opts: lifecycle.DaemonOptions{
			SocketPath: socket,
			LogPath:    filepath.Join(dataRoot, "limn.log"),
		},
	}, nil
}
