package tui

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

var (
	// ErrInterrupted is returned by prompts when the user aborts with Ctrl+C
	// or the process receives an interrupt signal.
	ErrInterrupted = errors.New("interrupted")

	// ErrInputClosed is returned when the input stream ends before an answer is read.
	ErrInputClosed = errors.New("input closed")
)

type lineResult struct {
	text string
	err  error
}

// Session owns the terminal streams of one pkgrel run. Its context is
// cancelled on SIGINT/SIGTERM; Close releases the signal handler and stops
// the background line reader.
type Session struct {
	ctx  context.Context
	stop context.CancelFunc
	in   io.Reader
	out  io.Writer

	startOnce sync.Once
	closeOnce sync.Once
	lines     chan lineResult
	done      chan struct{}
}

// NewSession creates a Session reading from in and writing to out.
func NewSession(parent context.Context, in io.Reader, out io.Writer) *Session {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	return &Session{
		ctx:   ctx,
		stop:  stop,
		in:    in,
		out:   out,
		lines: make(chan lineResult),
		done:  make(chan struct{}),
	}
}

// Context is cancelled when the session is interrupted or closed.
func (s *Session) Context() context.Context { return s.ctx }

// In returns the session input stream.
func (s *Session) In() io.Reader { return s.in }

// Out returns the session output stream.
func (s *Session) Out() io.Writer { return s.out }

// Interrupted reports whether the session context has been cancelled.
func (s *Session) Interrupted() bool {
	return s.ctx.Err() != nil
}

// Close releases the signal handler. It is safe to call more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.stop()
		close(s.done)
	})
}

// ReadLine returns the next line of input without its line ending. It
// returns ErrInterrupted as soon as the session or ctx is cancelled, even
// while the underlying read is still blocked.
func (s *Session) ReadLine(ctx context.Context) (string, error) {
	s.startOnce.Do(func() { go s.scan() })

	select {
	case <-s.ctx.Done():
		return "", ErrInterrupted
	case <-ctx.Done():
		return "", ErrInterrupted
	case res, ok := <-s.lines:
		if !ok {
			return "", ErrInputClosed
		}
		return res.text, res.err
	}
}

func (s *Session) scan() {
	defer close(s.lines)

	scanner := bufio.NewScanner(s.in)
	for scanner.Scan() {
		select {
		case s.lines <- lineResult{text: scanner.Text()}:
		case <-s.done:
			return
		}
	}
	if err := scanner.Err(); err != nil {
		select {
		case s.lines <- lineResult{err: err}:
		case <-s.done:
		}
	}
}
