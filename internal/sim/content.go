// Copyright © 2025 Limn contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/sim/content.go
// Summary: Window content providers for the simulator desktop.
// Notes: Command content hosts a live process through a pty and shows the
// tail of its output as plain text. This is not a terminal emulator; escape
// sequences are stripped, not interpreted.

package sim

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"strings"
	"sync"
	"syscall"

	"github.com/creack/pty"
)

// Content supplies the text shown inside one simulated window. Lines is
// called from the desktop's draw pass; implementations must be safe for
// concurrent use with their own update paths.
type Content interface {
	Resize(cols, rows int)
	Lines() []string
	Close() error
}

// staticContent shows fixed text. Windows without a hosted command use it.
type staticContent struct {
	lines []string
}

func newStaticContent(lines ...string) *staticContent {
	return &staticContent{lines: lines}
}

func (c *staticContent) Resize(cols, rows int) {}
func (c *staticContent) Lines() []string       { return c.lines }
func (c *staticContent) Close() error          { return nil }

// tailLimit caps how many output lines a command window retains.
const tailLimit = 200

// commandContent runs a command on a pty and keeps the tail of its output.
type commandContent struct {
	mu      sync.Mutex
	lines   []string
	partial strings.Builder
	done    bool

	ptmx    *os.File
	cmd     *exec.Cmd
	stop    chan struct{}
	refresh func()
}

// startCommand launches command under /bin/sh on a pty sized to the
// window's interior. refresh is invoked, never blocking, whenever new
// output arrives.
func startCommand(command string, cols, rows int, refresh func()) (*commandContent, error) {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	cmd := exec.Command("/bin/sh", "-c", command)
	cmd.Env = append(os.Environ(), "TERM=dumb")

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: uint16(rows),
		Cols: uint16(cols),
	})
	if err != nil {
		return nil, fmt.Errorf("sim: start %q: %w", command, err)
	}

	c := &commandContent{
		ptmx:    ptmx,
		cmd:     cmd,
		stop:    make(chan struct{}),
		refresh: refresh,
	}
	go c.read()
	return c, nil
}

func (c *commandContent) Resize(cols, rows int) {
	if cols <= 0 || rows <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ptmx != nil {
		pty.Setsize(c.ptmx, &pty.Winsize{
			Rows: uint16(rows),
			Cols: uint16(cols),
		})
	}
}

// Lines returns the retained tail, including any unterminated last line.
func (c *commandContent) Lines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.lines), len(c.lines)+1)
	copy(out, c.lines)
	if c.partial.Len() > 0 {
		out = append(out, c.partial.String())
	}
	if c.done {
		out = append(out, "", "[exited]")
	}
	return out
}

func (c *commandContent) Close() error {
	select {
	case <-c.stop:
		return nil
	default:
	}
	close(c.stop)

	if c.ptmx != nil {
		c.ptmx.Close()
	}
	if c.cmd != nil && c.cmd.Process != nil {
		c.cmd.Process.Signal(syscall.SIGTERM)
	}
	return nil
}

// read consumes pty output rune-wise, splitting into lines and trimming
// the tail. The pty closing, for any reason, ends the loop.
func (c *commandContent) read() {
	reader := bufio.NewReader(c.ptmx)
	for {
		select {
		case <-c.stop:
			return
		default:
		}

		r, _, err := reader.ReadRune()
		if err != nil {
			if err != io.EOF {
				select {
				case <-c.stop:
				default:
					log.Printf("Sim: pty read: %v", err)
				}
			}
			c.mu.Lock()
			c.done = true
			c.mu.Unlock()
			c.notify()
			go c.cmd.Wait()
			return
		}

		c.mu.Lock()
		switch r {
		case '\n':
			c.lines = append(c.lines, c.partial.String())
			c.partial.Reset()
			if len(c.lines) > tailLimit {
				c.lines = c.lines[len(c.lines)-tailLimit:]
			}
		case '\r':
			c.partial.Reset()
		default:
			c.partial.WriteRune(r)
		}
		c.mu.Unlock()

		if r == '\n' {
			c.notify()
		}
	}
}

func (c *commandContent) notify() {
	if c.refresh != nil {
		c.refresh()
	}
}

// stripControl removes escape sequences and non-printable runes so raw
// command output can be blitted as plain text.
func stripControl(line string) string {
	var sb strings.Builder
	sb.Grow(len(line))
	inEscape := false
	for _, r := range line {
		switch {
		case inEscape:
			// CSI parameters end at the final byte; lone ESC sequences
			// end at the first alphabetic rune too.
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
		case r == 0x1b:
			inEscape = true
		case r == '\t':
			sb.WriteString("    ")
		case r >= 0x20:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
