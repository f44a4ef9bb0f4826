// Copyright © 2025 Limn contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/limn/configcmd.go
// Summary: Inspect and reset the configuration file.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/framegrace/limn/config"
	"github.com/framegrace/limn/internal/highlight"
)

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or reset the configuration",
	}
	cmd.AddCommand(configShowCmd(), configPathCmd(), configResetCmd())
	return cmd
}

func configShowCmd() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.Raw()
			if err != nil {
				return err
			}

			if !raw && highlight.Enabled(os.Stdout) {
				fmt.Println(highlight.Render(string(data), "limn.json", ""))
				return nil
			}
			fmt.Println(string(data))
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "plain output without highlighting")
	return cmd
}

func configPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.Path()
			if err != nil {
				return err
			}
			fmt.Println(path)
			return nil
		},
	}
}

func configResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Rewrite the configuration file with defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.Path()
			if err != nil {
				return err
			}
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				return err
			}
			// Reloading a missing file recreates it with defaults.
			if err := config.Reload(); err != nil {
				return err
			}
			fmt.Printf("Reset %s\n", path)
			return nil
		},
	}
}
