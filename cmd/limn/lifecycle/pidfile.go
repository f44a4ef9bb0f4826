// Copyright © 2025 Limn contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/limn/lifecycle/pidfile.go
// Summary: PID file bookkeeping for the limn daemon.

package lifecycle

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

// PIDFile records the daemon's process ID in the runtime directory.
type PIDFile struct {
	path string
}

func NewPIDFile(path string) *PIDFile {
	return &PIDFile{path: path}
}

func (p *PIDFile) Path() string { return p.path }

func (p *PIDFile) Write(pid int) error {
	if err := os.MkdirAll(filepath.Dir(p.path), 0755); err != nil {
		return fmt.Errorf("create runtime directory: %w", err)
	}
	if err := os.WriteFile(p.path, []byte(strconv.Itoa(pid)+"\n"), 0600); err != nil {
		return fmt.Errorf("write PID file: %w", err)
	}
	return nil
}

func (p *PIDFile) Read() (int, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("malformed PID file %s: %w", p.path, err)
	}
	if pid <= 0 {
		return 0, fmt.Errorf("malformed PID file %s: pid %d", p.path, pid)
	}
	return pid, nil
}

// Remove deletes the PID file. A missing file is not an error.
func (p *PIDFile) Remove() error {
	err := os.Remove(p.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (p *PIDFile) Exists() bool {
	_, err := os.Stat(p.path)
	return err == nil
}

// Alive reports whether the recorded process still exists.
func (p *PIDFile) Alive() bool {
	pid, err := p.Read()
	if err != nil {
		return false
	}
	return processAlive(pid)
}

// processAlive probes a PID with the null signal, which works on both
// Linux and macOS.
func processAlive(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return proc.Signal(syscall.Signal(0)) == nil
}
