// Copyright © 2025 Limn contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ipc/server.go
// Summary: Control-socket server; doubles as a notification source.

package ipc

import (
	"bufio"
	"context"
	"log"
	"net"
	"os"
	"sync"
	"time"

	"github.com/framegrace/limn/platform"
	"github.com/framegrace/limn/tracker"
)

// StatsProvider supplies the counters returned by stats queries.
// *tracker.Tracker satisfies it.
type StatsProvider interface {
	Snapshot() tracker.Snapshot
}

// Server listens on a Unix domain socket and feeds injected
// notifications to the tracker. It implements platform.Source, so a
// daemon run can be driven entirely over the socket.
type Server struct {
	addr  string
	stats StatsProvider

	listener net.Listener
	notifs   chan platform.Notification
	quit     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
	stopErr  error
}

func NewServer(addr string, stats StatsProvider) *Server {
	return &Server{
		addr:   addr,
		stats:  stats,
		notifs: make(chan platform.Notification, 64),
		quit:   make(chan struct{}),
	}
}

// SetStats installs the stats provider after construction. The daemon
// needs this because the tracker is built with the server as its
// source, so neither can be created second.
func (s *Server) SetStats(stats StatsProvider) {
	s.stats = stats
}

// Start binds the socket and begins accepting connections. A stale
// socket file from a crashed daemon is removed first.
func (s *Server) Start() error {
	if err := os.RemoveAll(s.addr); err != nil {
		return err
	}
	l, err := net.Listen("unix", s.addr)
	if err != nil {
		return err
	}
	s.listener = l
	s.wg.Add(1)
	go s.acceptLoop()
	log.Printf("IPC: listening on %s", s.addr)
	return nil
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.quit:
				return
			default:
			}
			continue
		}

		s.wg.Add(1)
		go func(c net.Conn) {
			defer s.wg.Done()
			defer c.Close()
			s.serve(c)
		}(conn)
	}
}

// serve handles one connection: read a line, act, reply a line.
func (s *Server) serve(conn net.Conn) {
	r := bufio.NewReader(conn)
	for {
		env, err := readEnvelope(r)
		if err != nil {
			return
		}

		var reply Envelope
		switch env.Type {
		case MsgNotify:
			reply = s.handleNotify(env)
		case MsgPing:
			reply = Envelope{Type: MsgPong, Token: env.Token}
		case MsgStats:
			reply = s.handleStats()
		default:
			log.Printf("IPC: unknown message type %q", env.Type)
			reply = Envelope{Type: MsgError, Error: "unknown message type"}
		}

		if err := writeEnvelope(conn, reply); err != nil {
			return
		}
	}
}

func (s *Server) handleNotify(env Envelope) Envelope {
	if env.Notify == nil {
		return Envelope{Type: MsgError, Error: "notify payload missing"}
	}
	n := *env.Notify
	if n.Time.IsZero() {
		n.Time = time.Now()
	}

	select {
	case s.notifs <- n:
		return Envelope{Type: MsgOK}
	case <-s.quit:
		return Envelope{Type: MsgError, Error: "shutting down"}
	}
}

func (s *Server) handleStats() Envelope {
	if s.stats == nil {
		return Envelope{Type: MsgError, Error: "stats unavailable"}
	}
	snap := s.stats.Snapshot()
	return Envelope{Type: MsgStatsReply, Stats: &snap}
}

// Notifications returns the injected-notification stream.
func (s *Server) Notifications() <-chan platform.Notification {
	return s.notifs
}

// Bootstrap reports no windows: everything the socket drives must be
// announced through create notifications.
func (s *Server) Bootstrap(ctx context.Context) ([]platform.WindowInfo, error) {
	return nil, nil
}

// Close implements platform.Source by stopping with a short grace
// period.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return s.Stop(ctx)
}

// Stop shuts the listener down and waits for in-flight connections.
// After a clean wait the notification channel is closed, which ends a
// tracker run driven by this server.
func (s *Server) Stop(ctx context.Context) error {
	s.stopOnce.Do(func() {
		close(s.quit)
		if s.listener != nil {
			_ = s.listener.Close()
		}

		done := make(chan struct{})
		go func() {
			s.wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			close(s.notifs)
		case <-ctx.Done():
			s.stopErr = ctx.Err()
		}
	})
	return s.stopErr
}
