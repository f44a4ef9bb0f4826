// Copyright © 2025 Limn contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/limn/notify.go
// Summary: Injects a window notification into a running daemon.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/framegrace/limn/config"
	"github.com/framegrace/limn/geom"
	"github.com/framegrace/limn/ipc"
	"github.com/framegrace/limn/platform"
)

func notifyCmd() *cobra.Command {
	var (
		socketPath string
		window     int64
		object     int64
		rectSpec   string
	)

	cmd := &cobra.Command{
		Use:   "notify <event>",
		Short: "Inject a window event into the daemon",
		Long: "Sends one notification to the daemon over the control socket,\n" +
			"exactly as a window-system hook would. Events: create, destroy,\n" +
			"show, hide, foreground, location_change.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, ok := platform.ParseEventKind(args[0])
			if !ok {
				return fmt.Errorf("unknown event %q", args[0])
			}

			var rect geom.Rect
			if rectSpec != "" {
				if _, err := fmt.Sscanf(rectSpec, "%d,%d,%d,%d",
					&rect.Left, &rect.Top, &rect.Right, &rect.Bottom); err != nil {
					return fmt.Errorf("bad rect %q, want left,top,right,bottom", rectSpec)
				}
			}

			socket, err := resolveSocket(config.System(), socketPath)
			if err != nil {
				return err
			}
			client, err := ipc.Dial(socket)
			if err != nil {
				return err
			}
			defer client.Close()

			n := platform.Notification{
				Event:  kind,
				Window: platform.WindowID(window),
				Object: platform.ObjectID(object),
				Rect:   rect,
			}
			if err := client.Notify(n); err != nil {
				return err
			}
			fmt.Printf("Sent %s for window %d\n", kind, window)
			return nil
		},
	}

	cmd.Flags().StringVar(&socketPath, "socket", "", "control socket path (default from config)")
	cmd.Flags().Int64Var(&window, "window", 0, "window handle")
	cmd.Flags().Int64Var(&object, "object", 0, "object ID (0 window, -9 cursor)")
	cmd.Flags().StringVar(&rectSpec, "rect", "", "window rect as left,top,right,bottom")
	return cmd
}
