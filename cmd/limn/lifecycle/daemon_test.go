// Copyright © 2025 Limn contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package lifecycle

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type stubChecker struct {
	err error
}

func (c stubChecker) Check(ctx context.Context, socketPath string) error { return c.err }

func TestManagerClassifiesState(t *testing.T) {
	dir := t.TempDir()
	pid := NewPIDFile(filepath.Join(dir, "limn.pid"))
	healthy := stubChecker{}
	sick := stubChecker{err: errors.New("no answer")}
	ctx := context.Background()

	// No PID file at all.
	m := NewManager(pid, "/tmp/nowhere.sock", healthy)
	if state, _ := m.State(ctx); state != StateStopped {
		t.Errorf("empty dir state = %s, want stopped", state)
	}

	// Live process that answers.
	if err := pid.Write(os.Getpid()); err != nil {
		t.Fatalf("write pid: %v", err)
	}
	if state, _ := m.State(ctx); state != StateRunning {
		t.Errorf("healthy state = %s, want running", state)
	}
	if got := m.PID(); got != os.Getpid() {
		t.Errorf("PID() = %d, want %d", got, os.Getpid())
	}

	// Live process that does not answer.
	m = NewManager(pid, "/tmp/nowhere.sock", sick)
	if state, _ := m.State(ctx); state != StateUnresponsive {
		t.Errorf("sick state = %s, want unresponsive", state)
	}

	// A PID beyond pid_max cannot be running.
	if err := os.WriteFile(pid.Path(), []byte("99999999\n"), 0600); err != nil {
		t.Fatalf("seed pid: %v", err)
	}
	if state, _ := m.State(ctx); state != StateStale {
		t.Errorf("dead pid state = %s, want stale", state)
	}
}

func TestStopSweepsStalePIDFile(t *testing.T) {
	pid := NewPIDFile(filepath.Join(t.TempDir(), "limn.pid"))
	if err := os.WriteFile(pid.Path(), []byte("99999999\n"), 0600); err != nil {
		t.Fatalf("seed pid: %v", err)
	}

	m := NewManager(pid, "/tmp/nowhere.sock", stubChecker{})
	if err := m.Stop(context.Background()); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if pid.Exists() {
		t.Error("stale PID file survived Stop")
	}
}

func TestEnsureRunningLeavesHealthyDaemonAlone(t *testing.T) {
	pid := NewPIDFile(filepath.Join(t.TempDir(), "limn.pid"))
	if err := pid.Write(os.Getpid()); err != nil {
		t.Fatalf("write pid: %v", err)
	}

	m := NewManager(pid, "/tmp/nowhere.sock", stubChecker{})
	s := NewSupervisor(m, stubChecker{}, pid, DefaultSupervisorConfig())

	result, err := s.EnsureRunning(context.Background(), DaemonOptions{SocketPath: "/tmp/nowhere.sock"})
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if result.Started || result.Restarted {
		t.Errorf("healthy daemon was disturbed: %+v", result)
	}
	if result.Current != StateRunning || result.PID != os.Getpid() {
		t.Errorf("result = %+v", result)
	}
}

func TestStateStrings(t *testing.T) {
	cases := map[State]string{
		StateUnknown:      "unknown",
		StateStopped:      "stopped",
		StateRunning:      "running",
		StateUnresponsive: "unresponsive",
		StateStale:        "stale",
	}
	for state, want := range cases {
		if got := state.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", state, got, want)
		}
	}
}
