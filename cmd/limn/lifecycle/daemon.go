// Copyright © 2025 Limn contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/limn/lifecycle/daemon.go
// Summary: Forks, classifies, and stops the limn daemon process.

package lifecycle

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"syscall"
	"time"
)

// State classifies the daemon process.
type State int

const (
	StateUnknown      State = iota
	StateStopped            // no PID file, or process not running
	StateRunning            // process exists and answers health checks
	StateUnresponsive       // process exists but does not answer
	StateStale              // PID file points at a dead process
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateRunning:
		return "running"
	case StateUnresponsive:
		return "unresponsive"
	case StateStale:
		return "stale"
	default:
		return "unknown"
	}
}

// DaemonOptions carry the flags the forked daemon is launched with.
type DaemonOptions struct {
	SocketPath  string
	JournalPath string // empty disables event recording
	LogPath     string // daemon stdout/stderr destination
	Verbose     bool
}

// termWait is how long Stop gives the daemon to exit after SIGTERM
// before killing it.
const termWait = 5 * time.Second

// Manager owns the daemon process lifecycle: fork and detach on Start,
// SIGTERM then SIGKILL on Stop, health-checked classification in
// between.
type Manager struct {
	pid    *PIDFile
	socket string
	health HealthChecker
}

func NewManager(pid *PIDFile, socketPath string, health HealthChecker) *Manager {
	return &Manager{
		pid:    pid,
		socket: socketPath,
		health: health,
	}
}

// State probes the daemon and classifies it.
func (m *Manager) State(ctx context.Context) (State, error) {
	if !m.pid.Exists() {
		return StateStopped, nil
	}
	if !m.pid.Alive() {
		return StateStale, nil
	}

	healthCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := m.health.Check(healthCtx, m.socket); err != nil {
		return StateUnresponsive, nil
	}
	return StateRunning, nil
}

// PID returns the recorded process ID, or 0 when there is none.
func (m *Manager) PID() int {
	pid, err := m.pid.Read()
	if err != nil {
		return 0
	}
	return pid
}

// Start forks the current executable as a detached daemon running the
// serve command, records its PID, and releases it.
func (m *Manager) Start(ctx context.Context, opts DaemonOptions) error {
	if m.pid.Alive() {
		return fmt.Errorf("daemon already running (PID %d)", m.PID())
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}

	args := []string{"serve", "--socket", opts.SocketPath}
	if opts.JournalPath != "" {
		args = append(args, "--journal", opts.JournalPath)
	}
	if opts.Verbose {
		args = append(args, "--verbose")
	}

	// The log file stays open on purpose: the child inherits the
	// descriptor and keeps writing to it after the parent exits.
	var logFile *os.File
	if opts.LogPath != "" {
		logFile, err = os.OpenFile(opts.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0640)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
	}

	cmd := exec.Command(exe, args...)
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	cmd.Stdin = nil
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setsid: true, // new session, detached from the controlling terminal
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("fork daemon: %w", err)
	}

	if err := m.pid.Write(cmd.Process.Pid); err != nil {
		_ = cmd.Process.Kill()
		return fmt.Errorf("write PID file: %w", err)
	}

	if err := cmd.Process.Release(); err != nil {
		return fmt.Errorf("release daemon: %w", err)
	}
	return nil
}

// Stop terminates the daemon: SIGTERM, a bounded wait for it to exit,
// then SIGKILL. A missing or stale PID file is cleaned up silently.
func (m *Manager) Stop(ctx context.Context) error {
	pid, err := m.pid.Read()
	if err != nil {
		return nil
	}

	proc, err := os.FindProcess(pid)
	if err != nil || proc.Signal(syscall.Signal(0)) != nil {
		m.pid.Remove()
		return nil
	}

	if err := proc.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("send SIGTERM: %w", err)
	}

	deadline := time.Now().Add(termWait)
	for time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			_ = proc.Kill()
			m.pid.Remove()
			return ctx.Err()
		default:
		}

		if proc.Signal(syscall.Signal(0)) != nil {
			m.pid.Remove()
			return nil
		}
		time.Sleep(100 * time.Millisecond)
	}

	_ = proc.Kill()
	m.pid.Remove()
	return nil
}

// Restart is a best-effort Stop followed by Start.
func (m *Manager) Restart(ctx context.Context, opts DaemonOptions) error {
	_ = m.Stop(ctx)

	// Give the kernel a moment to release the socket path.
	time.Sleep(200 * time.Millisecond)

	return m.Start(ctx, opts)
}
