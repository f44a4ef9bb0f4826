// Copyright © 2025 Limn contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ipc/client.go
// Summary: Control-socket client used by the CLI.

package ipc

import (
	"bufio"
	"fmt"
	"net"
	"time"

	"github.com/framegrace/limn/platform"
	"github.com/framegrace/limn/tracker"
)

// DialTimeout bounds connection establishment and each round trip.
const DialTimeout = 2 * time.Second

// Client talks to a running daemon over its control socket. It is not
// safe for concurrent use.
type Client struct {
	conn net.Conn
	r    *bufio.Reader
}

// Dial connects to the daemon socket at addr.
func Dial(addr string) (*Client, error) {
	conn, err := net.DialTimeout("unix", addr, DialTimeout)
	if err != nil {
		return nil, fmt.Errorf("ipc: dial %s: %w", addr, err)
	}
	return &Client{conn: conn, r: bufio.NewReader(conn)}, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) roundTrip(env Envelope) (Envelope, error) {
	_ = c.conn.SetDeadline(time.Now().Add(DialTimeout))
	if err := writeEnvelope(c.conn, env); err != nil {
		return Envelope{}, err
	}
	reply, err := readEnvelope(c.r)
	if err != nil {
		return Envelope{}, err
	}
	if reply.Type == MsgError {
		return reply, fmt.Errorf("ipc: daemon error: %s", reply.Error)
	}
	return reply, nil
}

// Notify injects a window notification into the daemon.
func (c *Client) Notify(n platform.Notification) error {
	reply, err := c.roundTrip(Envelope{Type: MsgNotify, Notify: &n})
	if err != nil {
		return err
	}
	if reply.Type != MsgOK {
		return fmt.Errorf("ipc: unexpected reply %q", reply.Type)
	}
	return nil
}

// Ping measures a round trip to the daemon.
func (c *Client) Ping() (time.Duration, error) {
	start := time.Now()
	reply, err := c.roundTrip(Envelope{Type: MsgPing, Token: start.UnixNano()})
	if err != nil {
		return 0, err
	}
	if reply.Type != MsgPong || reply.Token != start.UnixNano() {
		return 0, fmt.Errorf("ipc: unexpected reply %q", reply.Type)
	}
	return time.Since(start), nil
}

// Stats fetches the daemon's tracker counters.
func (c *Client) Stats() (tracker.Snapshot, error) {
	reply, err := c.roundTrip(Envelope{Type: MsgStats})
	if err != nil {
		return tracker.Snapshot{}, err
	}
	if reply.Type != MsgStatsReply || reply.Stats == nil {
		return tracker.Snapshot{}, fmt.Errorf("ipc: unexpected reply %q", reply.Type)
	}
	return *reply.Stats, nil
}
