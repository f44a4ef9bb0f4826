// Copyright © 2025 Limn contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/paths.go
// Summary: Path resolution for config, data, and runtime files.
// Notes: LIMN_CONFIG_DIR, LIMN_DATA_DIR, and LIMN_RUNTIME_DIR override
// the XDG-derived locations; tests point them at temp dirs.

package config

import (
	"log"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Overrides are the environment knobs relocating limn's on-disk state.
type Overrides struct {
	ConfigDir  string `env:"LIMN_CONFIG_DIR"`
	DataDir    string `env:"LIMN_DATA_DIR"`
	RuntimeDir string `env:"LIMN_RUNTIME_DIR"`
}

func overrides() Overrides {
	o, err := env.ParseAs[Overrides]()
	if err != nil {
		log.Printf("Config: env overrides: %v", err)
	}
	return o
}

func configRoot() (string, error) {
	if o := overrides(); o.ConfigDir != "" {
		return o.ConfigDir, nil
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "limn"), nil
}

// Path returns the config file location.
func Path() (string, error) {
	root, err := configRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, systemConfigName), nil
}

// DataRoot returns the directory holding the journal database.
func DataRoot() (string, error) {
	if o := overrides(); o.DataDir != "" {
		return o.DataDir, nil
	}
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cacheDir, "limn"), nil
}

// RuntimeRoot returns the directory holding the notify socket and the
// daemon pidfile.
func RuntimeRoot() (string, error) {
	if o := overrides(); o.RuntimeDir != "" {
		return o.RuntimeDir, nil
	}
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, "limn"), nil
	}
	return filepath.Join(os.TempDir(), "limn"), nil
}

// SocketPath returns the default notify-socket path.
func SocketPath() (string, error) {
	root, err := RuntimeRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "limn.sock"), nil
}

// PIDPath returns the default daemon pidfile path.
func PIDPath() (string, error) {
	root, err := RuntimeRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "limn.pid"), nil
}

// JournalPath returns the default journal database path.
func JournalPath() (string, error) {
	root, err := DataRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "journal.db"), nil
}
