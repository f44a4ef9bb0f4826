// Copyright © 2025 Limn contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/limn/status.go
// Summary: Reports daemon state and tracker counters.

package main

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/framegrace/limn/cmd/limn/lifecycle"
	"github.com/framegrace/limn/ipc"
	"github.com/framegrace/limn/tracker"
)

type statusReport struct {
	State  string            `json:"state"`
	PID    int               `json:"pid,omitempty"`
	Socket string            `json:"socket"`
	Stats  *tracker.Snapshot `json:"stats,omitempty"`
}

func statusCmd() *cobra.Command {
	var (
		socketPath string
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show daemon state and counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			kit, err := buildDaemonKit(socketPath)
			if err != nil {
				return err
			}

			state, err := kit.sup.State(cmd.Context())
			if err != nil {
				return err
			}

			report := statusReport{
				State:  state.String(),
				Socket: kit.opts.SocketPath,
			}
			if state != lifecycle.StateStopped {
				report.PID = kit.manager.PID()
			}
			if state == lifecycle.StateRunning {
				if snap, err := fetchStats(kit.opts.SocketPath); err == nil {
					report.Stats = &snap
				}
			}

			if asJSON {
				data, err := json.MarshalIndent(report, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}

			printStatus(report)
			return nil
		},
	}

	cmd.Flags().StringVar(&socketPath, "socket", "", "control socket path (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print machine-readable JSON")
	return cmd
}

func fetchStats(socketPath string) (tracker.Snapshot, error) {
	client, err := ipc.Dial(socketPath)
	if err != nil {
		return tracker.Snapshot{}, err
	}
	defer client.Close()
	return client.Stats()
}

func printStatus(r statusReport) {
	fmt.Printf("State:  %s\n", r.State)
	if r.PID != 0 {
		fmt.Printf("PID:    %d\n", r.PID)
	}
	fmt.Printf("Socket: %s\n", r.Socket)

	if r.Stats == nil {
		return
	}
	s := r.Stats
	fmt.Println()
	fmt.Printf("Uptime:         %.0fs\n", s.UptimeSeconds)
	fmt.Printf("Tracked:        %d window(s)\n", s.Tracked)
	fmt.Printf("Notifications:  %d (%d cursor noise, %d untracked)\n",
		s.Notifications, s.CursorDropped, s.Ignored)
	fmt.Printf("Adopted:        %d (%d destroyed, %d creation gaps)\n",
		s.Adopted, s.Destroyed, s.CreationGaps)
	fmt.Printf("Frames:         %d\n", s.Frames)
}
