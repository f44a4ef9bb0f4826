// Copyright © 2025 Limn contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/limn/main.go
// Summary: CLI entry point wiring up the limn commands.

package main

import (
	"context"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/framegrace/limn/internal/version"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:     "limn",
		Short:   "Animated window borders",
		Long:    "Limn tracks windows and paints animated borders around them:\nfades on focus changes, spirals while a window settles into place.",
		Version: version.Get(),
	}

	rootCmd.AddCommand(
		serveCmd(),
		startCmd(),
		stopCmd(),
		statusCmd(),
		simCmd(),
		replayCmd(),
		notifyCmd(),
		configCmd(),
		journalCmd(),
	)

	if err := fang.Execute(context.Background(), rootCmd, fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM)); err != nil {
		os.Exit(1)
	}
}
