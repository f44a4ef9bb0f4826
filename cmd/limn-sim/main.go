package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/framegrace/limn/border"
	"github.com/framegrace/limn/config"
	"github.com/framegrace/limn/internal/sim"
	"github.com/framegrace/limn/tracker"
)

// Standalone simulator, equivalent to `limn sim` without the CLI around
// it. Handy for quick style experiments.
func main() {
	windows := flag.Int("windows", 3, "windows open at startup")
	command := flag.String("cmd", "", "command to run inside each window")
	fps := flag.Int("fps", 0, "animation frame rate (default from config)")
	flag.Parse()

	cfg := config.System()
	style := border.StyleFromConfig(cfg)
	if *fps > 0 {
		style.Speeds.FPS = *fps
	}

	var trk *tracker.Tracker
	desk, err := sim.NewDesktop(sim.Options{
		Style:       style,
		Windows:     *windows,
		Command:     *command,
		Interactive: true,
		FPS:         *fps,
		Stats: func() tracker.Snapshot {
			return trk.Snapshot()
		},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	trk = tracker.New(desk, tracker.Options{
		Style:    style,
		Surfaces: desk.SurfaceFactory(),
	})

	g, ctx := errgroup.WithContext(context.Background())
	g.Go(func() error {
		defer desk.Close()
		return trk.Run(ctx)
	})
	g.Go(func() error {
		return desk.Run(ctx)
	})

	if err := g.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
