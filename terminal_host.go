// terminal_host.go - Raw-mode stdin/stdout adapter for the serial device

/*
TerminalHost is the one piece of this machine that talks to the real
terminal: it puts stdin into raw, non-blocking mode and pumps bytes from a
goroutine into a Serial device. It owns only OS mechanics - raw mode,
non-blocking reads, the EAGAIN backoff, goroutine lifecycle - and leaves
byte-interpretation policy (CR/DEL translation, FIFO capacity) entirely to
Serial.PushHostByte. The processor and memory map talk only to Serial;
Serial has no notion of stdin at all.

Only instantiated from main.go for interactive runs - never in tests.
*/

package main

import (
	"fmt"
	"os"
	"sync"
	"syscall"
	"time"

	"golang.org/x/term"
)

// TerminalHost reads raw stdin and feeds bytes into a Serial device, and
// periodically drains the device's transmit side to stdout.
type TerminalHost struct {
	serial       *Serial
	stopCh       chan struct{}
	done         chan struct{}
	stopped      sync.Once
	fd           int
	nonblockSet  bool
	oldTermState *term.State
}

// NewTerminalHost creates a host adapter feeding the given serial device.
func NewTerminalHost(serial *Serial) *TerminalHost {
	return &TerminalHost{
		serial: serial,
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Start sets stdin to raw, non-blocking mode and begins reading in a
// goroutine. Call Stop to restore stdin before the process exits.
func (h *TerminalHost) Start() {
	h.fd = int(os.Stdin.Fd())

	oldState, err := term.MakeRaw(h.fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "terminal_host: failed to set raw mode: %v\n", err)
		close(h.done)
		return
	}
	h.oldTermState = oldState

	if err := syscall.SetNonblock(h.fd, true); err != nil {
		fmt.Fprintf(os.Stderr, "terminal_host: failed to set nonblocking stdin: %v\n", err)
		_ = term.Restore(h.fd, h.oldTermState)
		h.oldTermState = nil
		close(h.done)
		return
	}
	h.nonblockSet = true

	go h.readLoop()
}

func (h *TerminalHost) readLoop() {
	defer close(h.done)
	buf := make([]byte, 1)

	for {
		select {
		case <-h.stopCh:
			return
		default:
		}

		n, err := syscall.Read(h.fd, buf)
		if n > 0 {
			h.serial.PushHostByte(buf[0])
		}
		if err == syscall.EAGAIN || err == syscall.EWOULDBLOCK {
			time.Sleep(5 * time.Millisecond)
			continue
		}
		if err != nil {
			return
		}
		if n == 0 {
			time.Sleep(5 * time.Millisecond)
		}
	}
}

// Stop terminates the stdin reading goroutine and restores stdin to its
// prior blocking, cooked-mode state.
func (h *TerminalHost) Stop() {
	h.stopped.Do(func() {
		close(h.stopCh)
	})
	<-h.done
	if h.nonblockSet {
		_ = syscall.SetNonblock(h.fd, false)
		h.nonblockSet = false
	}
	if h.oldTermState != nil {
		_ = term.Restore(h.fd, h.oldTermState)
		h.oldTermState = nil
	}
}

// FlushOutput drains whatever bytes the serial device has queued for
// transmission and writes them to stdout. Call this once per tick from the
// main loop.
func (h *TerminalHost) FlushOutput() {
	out := h.serial.Drain()
	if len(out) > 0 {
		os.Stdout.Write(out)
	}
}
