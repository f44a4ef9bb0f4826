// Copyright © 2025 Limn contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/limn/serve.go
// Summary: Foreground daemon: control socket in, border tracking inside.

package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/framegrace/limn/border"
	"github.com/framegrace/limn/config"
	"github.com/framegrace/limn/ipc"
	"github.com/framegrace/limn/journal"
	"github.com/framegrace/limn/platform"
	"github.com/framegrace/limn/tracker"
)

func serveCmd() *cobra.Command {
	var (
		socketPath  string
		journalPath string
		verbose     bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the daemon in the foreground",
		Long: "Runs the border daemon in the foreground. Window events arrive\n" +
			"over the control socket; `limn start` runs this detached.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), socketPath, journalPath, verbose)
		},
	}

	cmd.Flags().StringVar(&socketPath, "socket", "", "control socket path (default from config)")
	cmd.Flags().StringVar(&journalPath, "journal", "", "journal database path (default from config)")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "log every dispatched notification")
	return cmd
}

func runServe(ctx context.Context, socketPath, journalPath string, verbose bool) error {
	cfg := config.System()

	socketPath, err := resolveSocket(cfg, socketPath)
	if err != nil {
		return err
	}

	var rec tracker.Recorder
	if path := resolveJournal(cfg, journalPath); path != "" {
		j, err := journal.Open(journal.DefaultConfig(path))
		if err != nil {
			log.Printf("Daemon: journal disabled: %v", err)
		} else {
			defer j.Close()
			rec = j
		}
	}
	if verbose {
		rec = logRecorder{next: rec}
	}

	server := ipc.NewServer(socketPath, nil)
	trk := tracker.New(server, tracker.Options{
		Style:    border.StyleFromConfig(cfg),
		Recorder: rec,
	})
	server.SetStats(trk)

	if err := server.Start(); err != nil {
		return fmt.Errorf("start control socket: %w", err)
	}

	log.Printf("Daemon: running on %s", socketPath)
	return trk.Run(ctx)
}

// resolveSocket picks the control socket path: flag, then config, then
// the runtime directory default.
func resolveSocket(cfg config.Config, flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if s := cfg.GetString("daemon", "socket", ""); s != "" {
		return s, nil
	}
	return config.SocketPath()
}

// resolveJournal picks the journal database path. An empty result
// disables recording.
func resolveJournal(cfg config.Config, flag string) string {
	if flag != "" {
		return flag
	}
	if !cfg.GetBool("journal", "enabled", true) {
		return ""
	}
	if p := cfg.GetString("journal", "path", ""); p != "" {
		return p
	}
	path, err := config.JournalPath()
	if err != nil {
		log.Printf("Daemon: journal path: %v", err)
		return ""
	}
	return path
}

// logRecorder traces the notification stream, optionally in front of a
// real recorder.
type logRecorder struct {
	next tracker.Recorder
}

func (r logRecorder) Record(n platform.Notification) {
	log.Printf("Daemon: %s window=%d object=%d rect=%v", n.Event, n.Window, n.Object, n.Rect)
	if r.next != nil {
		r.next.Record(n)
	}
}
