// Copyright © 2025 Limn contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/limn/lifecycle/supervisor.go
// Summary: Drives the daemon to a healthy running state.

package lifecycle

import (
	"context"
	"fmt"
	"time"
)

// Result reports what EnsureRunning had to do.
type Result struct {
	Started   bool // the daemon was forked
	Restarted bool // an unresponsive daemon was replaced
	Previous  State
	Current   State
	PID       int
}

// SupervisorConfig tunes the supervisor's patience.
type SupervisorConfig struct {
	StartupWait   time.Duration // how long a fresh daemon gets to become healthy
	HealthTimeout time.Duration // per-probe timeout
}

func DefaultSupervisorConfig() SupervisorConfig {
	return SupervisorConfig{
		StartupWait:   5 * time.Second,
		HealthTimeout: 2 * time.Second,
	}
}

// Supervisor reconciles the daemon toward running-and-healthy,
// restarting hung processes and sweeping stale PID files on the way.
type Supervisor struct {
	manager       *Manager
	health        HealthChecker
	pid           *PIDFile
	startupWait   time.Duration
	healthTimeout time.Duration
}

func NewSupervisor(manager *Manager, health HealthChecker, pid *PIDFile, config SupervisorConfig) *Supervisor {
	if config.StartupWait == 0 {
		config.StartupWait = 5 * time.Second
	}
	if config.HealthTimeout == 0 {
		config.HealthTimeout = 2 * time.Second
	}
	return &Supervisor{
		manager:       manager,
		health:        health,
		pid:           pid,
		startupWait:   config.StartupWait,
		healthTimeout: config.HealthTimeout,
	}
}

// EnsureRunning brings the daemon up if it is stopped, stale, or hung,
// then waits for it to answer health checks.
func (s *Supervisor) EnsureRunning(ctx context.Context, opts DaemonOptions) (*Result, error) {
	result := &Result{}

	state, err := s.manager.State(ctx)
	if err != nil {
		return nil, fmt.Errorf("classify daemon: %w", err)
	}
	result.Previous = state

	switch state {
	case StateRunning:
		result.Current = StateRunning
		result.PID = s.manager.PID()
		return result, nil

	case StateUnresponsive:
		fmt.Printf("Daemon unresponsive (PID %d), restarting...\n", s.manager.PID())
		if err := s.manager.Restart(ctx, opts); err != nil {
			return nil, fmt.Errorf("restart unresponsive daemon: %w", err)
		}
		result.Restarted = true
		result.Started = true

	case StateStale:
		fmt.Println("Removing stale PID file...")
		s.pid.Remove()
		fallthrough

	case StateStopped, StateUnknown:
		if err := s.manager.Start(ctx, opts); err != nil {
			return nil, fmt.Errorf("start daemon: %w", err)
		}
		result.Started = true
	}

	if err := s.waitForHealthy(ctx, opts.SocketPath); err != nil {
		return nil, fmt.Errorf("daemon never became healthy: %w", err)
	}

	result.Current = StateRunning
	result.PID = s.manager.PID()
	return result, nil
}

// waitForHealthy polls until the daemon answers or the startup window
// closes.
func (s *Supervisor) waitForHealthy(ctx context.Context, socketPath string) error {
	deadline := time.Now().Add(s.startupWait)

	for time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		healthCtx, cancel := context.WithTimeout(ctx, s.healthTimeout)
		err := s.health.Check(healthCtx, socketPath)
		cancel()
		if err == nil {
			return nil
		}

		time.Sleep(100 * time.Millisecond)
	}
	return fmt.Errorf("timeout after %s", s.startupWait)
}

// State reports the daemon's current classification.
func (s *Supervisor) State(ctx context.Context) (State, error) {
	return s.manager.State(ctx)
}

// Stop terminates the daemon.
func (s *Supervisor) Stop(ctx context.Context) error {
	return s.manager.Stop(ctx)
}
