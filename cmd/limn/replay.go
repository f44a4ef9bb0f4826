// Copyright © 2025 Limn contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/limn/replay.go
// Summary: Replays a journaled run through the tracker.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/framegrace/limn/border"
	"github.com/framegrace/limn/config"
	"github.com/framegrace/limn/internal/sim"
	"github.com/framegrace/limn/journal"
	"github.com/framegrace/limn/tracker"
)

func replayCmd() *cobra.Command {
	var (
		journalPath string
		speed       float64
		headless    bool
	)

	cmd := &cobra.Command{
		Use:   "replay [run-id]",
		Short: "Replay a recorded run",
		Long: "Feeds a journaled run back through the tracker at recorded pacing.\n" +
			"Without a run ID the most recent run is replayed. The borders are\n" +
			"drawn in a viewer desktop unless --headless is given.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.System()

			reader, err := openJournalReader(journalPath)
			if err != nil {
				return err
			}
			defer reader.Close()

			run, entries, err := loadRun(reader, args)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				return fmt.Errorf("run %s has no events", run.ID)
			}

			rep := journal.NewReplayer(entries, speed)
			style := border.StyleFromConfig(cfg)

			if headless {
				trk := tracker.New(rep, tracker.Options{Style: style})
				if err := trk.Run(cmd.Context()); err != nil {
					return err
				}
				snap := trk.Snapshot()
				fmt.Printf("Replayed %d event(s) from run %s: %d adopted, %d frames\n",
					snap.Notifications, run.ID, snap.Adopted, snap.Frames)
				return nil
			}

			desk, err := sim.NewDesktop(sim.Options{
				Style:       style,
				Background:  backgroundColor(cfg, ""),
				Interactive: false,
			})
			if err != nil {
				return err
			}

			trk := tracker.New(rep, tracker.Options{
				Style:    style,
				Surfaces: desk.SurfaceFactory(),
			})

			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				// Closing the desktop when the run ends exits the viewer.
				defer desk.Close()
				return trk.Run(ctx)
			})
			g.Go(func() error {
				return desk.Run(ctx)
			})
			return g.Wait()
		},
	}

	cmd.Flags().StringVar(&journalPath, "journal", "", "journal database path (default from config)")
	cmd.Flags().Float64Var(&speed, "speed", 1.0, "playback speed multiplier, 0 replays unpaced")
	cmd.Flags().BoolVar(&headless, "headless", false, "replay without drawing, then print counters")
	return cmd
}

// findRun resolves a run by ID, accepting unambiguous prefixes.
func findRun(reader *journal.Reader, id string) (journal.Run, error) {
	runs, err := reader.Runs()
	if err != nil {
		return journal.Run{}, err
	}

	var match journal.Run
	found := 0
	for _, r := range runs {
		if r.ID == id {
			return r, nil
		}
		if len(id) >= 4 && len(r.ID) > len(id) && r.ID[:len(id)] == id {
			match = r
			found++
		}
	}
	switch found {
	case 0:
		return journal.Run{}, fmt.Errorf("run %s not found", id)
	case 1:
		return match, nil
	default:
		return journal.Run{}, fmt.Errorf("run prefix %s is ambiguous (%d matches)", id, found)
	}
}
