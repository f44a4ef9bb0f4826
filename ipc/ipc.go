// Copyright © 2025 Limn contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ipc/ipc.go
// Summary: Wire envelope for the control socket.
//
// The daemon listens on a Unix socket for newline-delimited JSON
// envelopes: injected window notifications, pings, and stats queries.
// One request line gets one reply line.

package ipc

import (
	"bufio"
	"fmt"
	"io"

	json "github.com/goccy/go-json"

	"github.com/framegrace/limn/platform"
	"github.com/framegrace/limn/tracker"
)

// MessageType discriminates envelope payloads.
type MessageType string

const (
	MsgNotify     MessageType = "notify"
	MsgPing       MessageType = "ping"
	MsgPong       MessageType = "pong"
	MsgStats      MessageType = "stats"
	MsgStatsReply MessageType = "stats_reply"
	MsgOK         MessageType = "ok"
	MsgError      MessageType = "error"
)

// Envelope is one line on the wire. Only the field matching Type is
// populated.
type Envelope struct {
	Type   MessageType            `json:"type"`
	Notify *platform.Notification `json:"notify,omitempty"`
	Stats  *tracker.Snapshot      `json:"stats,omitempty"`
	Error  string                 `json:"error,omitempty"`

	// Token is echoed back in pong replies so clients can measure
	// round trips.
	Token int64 `json:"token,omitempty"`
}

func writeEnvelope(w io.Writer, env Envelope) error {
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("ipc: encode %s: %w", env.Type, err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

func readEnvelope(r *bufio.Reader) (Envelope, error) {
	line, err := r.ReadBytes('\n')
	if err != nil {
		return Envelope{}, err
	}
	var env Envelope
	if err := json.Unmarshal(line, &env); err != nil {
		return Envelope{}, fmt.Errorf("ipc: decode: %w", err)
	}
	return env, nil
}
