// Copyright © 2025 Limn contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: defaults/embedded.go
// Summary: Embedded default configuration file.
// The embedded JSON is the single source of truth for shipped defaults.

package defaults

import "embed"

//go:embed limn.json
var fs embed.FS

// Config returns the embedded default config JSON.
func Config() ([]byte, error) {
	return fs.ReadFile("limn.json")
}
