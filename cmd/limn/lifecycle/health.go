// Copyright © 2025 Limn contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/limn/lifecycle/health.go
// Summary: Liveness probes for the limn daemon.

package lifecycle

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/framegrace/limn/ipc"
)

// HealthChecker probes a daemon for liveness through its control socket.
type HealthChecker interface {
	// Check returns nil if the daemon is healthy.
	Check(ctx context.Context, socketPath string) error
}

// SocketChecker treats an accepted connection as proof of life. It is
// the cheap probe the manager uses when classifying daemon state.
type SocketChecker struct {
	timeout time.Duration
}

func NewSocketChecker(timeout time.Duration) *SocketChecker {
	return &SocketChecker{timeout: timeout}
}

func (h *SocketChecker) Check(ctx context.Context, socketPath string) error {
	deadline := time.Now().Add(h.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	dialer := net.Dialer{Deadline: deadline}
	conn, err := dialer.DialContext(ctx, "unix", socketPath)
	if err != nil {
		return fmt.Errorf("connect to socket: %w", err)
	}
	conn.Close()
	return nil
}

// PingChecker requires a full ping round trip through the control
// protocol, which proves the daemon's serve loop is actually draining
// requests rather than just holding the listener open.
type PingChecker struct{}

func NewPingChecker() *PingChecker {
	return &PingChecker{}
}

func (h *PingChecker) Check(ctx context.Context, socketPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	client, err := ipc.Dial(socketPath)
	if err != nil {
		return err
	}
	defer client.Close()

	if _, err := client.Ping(); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}
