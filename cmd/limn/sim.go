// Copyright © 2025 Limn contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/limn/sim.go
// Summary: Interactive simulator: a synthetic desktop wired to the tracker.

package main

import (
	"fmt"
	"log"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/framegrace/limn/border"
	"github.com/framegrace/limn/config"
	"github.com/framegrace/limn/internal/sim"
	"github.com/framegrace/limn/journal"
	"github.com/framegrace/limn/tracker"
)

func simCmd() *cobra.Command {
	var (
		windows    int
		command    string
		fps        int
		record     string
		background string
	)

	cmd := &cobra.Command{
		Use:   "sim",
		Short: "Run the simulator desktop",
		Long: "Opens a synthetic desktop in the terminal and tracks its windows\n" +
			"with live animated borders. Useful for trying out styles and for\n" +
			"recording journals without a real window system.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.System()
			style := border.StyleFromConfig(cfg)
			if fps > 0 {
				style.Speeds.FPS = fps
			}

			var rec tracker.Recorder
			if record != "" {
				j, err := journal.Open(journal.DefaultConfig(record))
				if err != nil {
					return fmt.Errorf("open journal: %w", err)
				}
				defer func() {
					runID := j.RunID()
					j.Close()
					fmt.Printf("Recorded run %s to %s\n", runID, record)
				}()
				rec = j
			}

			var trk *tracker.Tracker
			desk, err := sim.NewDesktop(sim.Options{
				Style:       style,
				Background:  backgroundColor(cfg, background),
				Windows:     windows,
				Command:     command,
				Interactive: true,
				FPS:         fps,
				Stats: func() tracker.Snapshot {
					return trk.Snapshot()
				},
			})
			if err != nil {
				return err
			}

			trk = tracker.New(desk, tracker.Options{
				Style:    style,
				Surfaces: desk.SurfaceFactory(),
				Recorder: rec,
			})

			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				defer desk.Close()
				return trk.Run(ctx)
			})
			g.Go(func() error {
				return desk.Run(ctx)
			})
			return g.Wait()
		},
	}

	cmd.Flags().IntVar(&windows, "windows", 3, "windows open at startup")
	cmd.Flags().StringVar(&command, "cmd", "", "command to run inside each window")
	cmd.Flags().IntVar(&fps, "fps", 0, "animation frame rate (default from config)")
	cmd.Flags().StringVar(&record, "record", "", "record the run to this journal database")
	cmd.Flags().StringVar(&background, "background", "", "desktop background color (default from config)")
	return cmd
}

func backgroundColor(cfg config.Config, flag string) tcell.Color {
	raw := flag
	if raw == "" {
		raw = cfg.GetString("colors", "background", "#1e1e2e")
	}
	color, ok := border.ParseHexColor(raw)
	if !ok {
		log.Printf("Sim: invalid background color %q, using default", raw)
		color, _ = border.ParseHexColor("#1e1e2e")
	}
	return color
}
