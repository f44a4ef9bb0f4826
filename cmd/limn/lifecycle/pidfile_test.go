// Copyright © 2025 Limn contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package lifecycle

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPIDFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "limn.pid")
	p := NewPIDFile(path)

	if p.Exists() {
		t.Fatal("PID file should not exist yet")
	}
	if err := p.Write(12345); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !p.Exists() {
		t.Fatal("PID file missing after write")
	}

	pid, err := p.Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if pid != 12345 {
		t.Errorf("read pid = %d, want 12345", pid)
	}

	if err := p.Remove(); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if p.Exists() {
		t.Error("PID file still exists after remove")
	}
	// Removing a missing file is fine.
	if err := p.Remove(); err != nil {
		t.Errorf("second remove: %v", err)
	}
}

func TestPIDFileRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "limn.pid")

	cases := []string{"not-a-number\n", "-4\n", "0\n", ""}
	for _, content := range cases {
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("seed file: %v", err)
		}
		if _, err := NewPIDFile(path).Read(); err == nil {
			t.Errorf("Read accepted %q", content)
		}
	}
}

func TestPIDFileAlive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "limn.pid")
	p := NewPIDFile(path)

	if p.Alive() {
		t.Error("missing PID file reported alive")
	}

	// Our own process is certainly running.
	if err := p.Write(os.Getpid()); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !p.Alive() {
		t.Error("own process reported dead")
	}
}
