// Copyright © 2025 Limn contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/limn/journalcmd.go
// Summary: List, inspect, export, and prune recorded runs.

package main

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/framegrace/limn/config"
	"github.com/framegrace/limn/internal/highlight"
	"github.com/framegrace/limn/journal"
	"github.com/framegrace/limn/platform"
)

func journalCmd() *cobra.Command {
	var journalPath string

	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Work with recorded runs",
	}
	cmd.PersistentFlags().StringVar(&journalPath, "journal", "", "journal database path (default from config)")

	cmd.AddCommand(
		journalListCmd(&journalPath),
		journalShowCmd(&journalPath),
		journalExportCmd(&journalPath),
		journalPruneCmd(&journalPath),
	)
	return cmd
}

// journalDBPath resolves the database path for the read-side commands.
// Unlike the daemon it ignores journal.enabled: an existing database is
// readable whether or not recording is on.
func journalDBPath(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if p := config.System().GetString("journal", "path", ""); p != "" {
		return p, nil
	}
	return config.JournalPath()
}

func openJournalReader(flag string) (*journal.Reader, error) {
	path, err := journalDBPath(flag)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("no journal database at %s", path)
	}
	return journal.OpenReader(path)
}

func journalListCmd(journalPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recorded runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			reader, err := openJournalReader(*journalPath)
			if err != nil {
				return err
			}
			defer reader.Close()

			runs, err := reader.Runs()
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("No recorded runs")
				return nil
			}

			fmt.Printf("%-36s  %-19s  %-12s  %s\n", "RUN", "STARTED", "HOST", "EVENTS")
			for _, r := range runs {
				fmt.Printf("%-36s  %-19s  %-12s  %d\n",
					r.ID, r.Started.Local().Format("2006-01-02 15:04:05"), r.Hostname, r.Events)
			}
			return nil
		},
	}
}

func journalShowCmd(journalPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show [run-id]",
		Short: "Print the events of a run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reader, err := openJournalReader(*journalPath)
			if err != nil {
				return err
			}
			defer reader.Close()

			run, entries, err := loadRun(reader, args)
			if err != nil {
				return err
			}

			fmt.Printf("Run %s started %s on %s, %d event(s)\n\n",
				run.ID, run.Started.Local().Format("2006-01-02 15:04:05"), run.Hostname, len(entries))
			for _, e := range entries {
				elapsed := e.Time.Sub(run.Started).Seconds()
				line := fmt.Sprintf("%6d  %9.3fs  %-15s  window=%-6d rect=%v",
					e.Seq, elapsed, e.Event, e.Window, e.Rect)
				if e.Object != platform.ObjectWindow {
					line += fmt.Sprintf("  object=%d", e.Object)
				}
				fmt.Println(line)
			}
			return nil
		},
	}
}

func journalExportCmd(journalPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "export [run-id]",
		Short: "Export a run as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reader, err := openJournalReader(*journalPath)
			if err != nil {
				return err
			}
			defer reader.Close()

			run, entries, err := loadRun(reader, args)
			if err != nil {
				return err
			}

			out := struct {
				Run    journal.Run     `json:"run"`
				Events []journal.Entry `json:"events"`
			}{Run: run, Events: entries}

			data, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return err
			}
			if highlight.Enabled(os.Stdout) {
				fmt.Println(highlight.Render(string(data), "run.json", ""))
				return nil
			}
			fmt.Println(string(data))
			return nil
		},
	}
}

func journalPruneCmd(journalPath *string) *cobra.Command {
	var keep int

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete old runs, keeping the most recent",
		RunE: func(cmd *cobra.Command, args []string) error {
			reader, err := openJournalReader(*journalPath)
			if err != nil {
				return err
			}
			defer reader.Close()

			removed, err := reader.Prune(keep)
			if err != nil {
				return err
			}
			fmt.Printf("Pruned %d run(s), kept %d\n", removed, keep)
			return nil
		},
	}

	cmd.Flags().IntVar(&keep, "keep", 10, "number of recent runs to keep")
	return cmd
}

// loadRun resolves the optional run-id argument (latest when absent) and
// loads its events.
func loadRun(reader *journal.Reader, args []string) (journal.Run, []journal.Entry, error) {
	var (
		run journal.Run
		err error
	)
	if len(args) == 1 {
		run, err = findRun(reader, args[0])
	} else {
		run, err = reader.LatestRun()
	}
	if err != nil {
		return journal.Run{}, nil, err
	}

	entries, err := reader.Events(run.ID)
	if err != nil {
		return journal.Run{}, nil, fmt.Errorf("load run %s: %w", run.ID, err)
	}
	return run, entries, nil
}
