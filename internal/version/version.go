// Copyright © 2025 Limn contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/version/version.go
// Summary: Reports the build version for --version output.

package version

import (
	"runtime/debug"
	"sync"
)

const develVersion = "devel"

// version is set via ldflags at release time. Builds installed with
// `go install` fall back to the module build info.
var version = develVersion

var once sync.Once

// Get returns the build's version string.
func Get() string {
	once.Do(func() {
		if version != develVersion {
			return
		}
		info, ok := debug.ReadBuildInfo()
		if !ok {
			return
		}
		if v := info.Main.Version; v != "" && v != "("+develVersion+")" {
			version = v
		}
	})
	return version
}
