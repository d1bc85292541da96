package tui

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

var ErrNotTerminal = errors.New("not an interactive terminal")

// Terminal is what the selector needs from the controlling terminal: a key
// source, a draw target, raw mode and the current size.
type Terminal interface {
	io.Reader
	io.Writer
	// MakeRaw switches the input to raw mode and returns a function that
	// restores the previous mode.
	MakeRaw() (restore func() error, err error)
	Size() (width, height int, err error)
}

// TTY reads keys from in and draws on out. Drawing on stderr keeps stdout
// free for the shell command printed after selection.
type TTY struct {
	in  *os.File
	out *os.File
}

// OpenTTY checks that both files are terminals.
func OpenTTY(in, out *os.File) (*TTY, error) {
	if !IsTerminal(in) {
		return nil, fmt.Errorf("%w: %s", ErrNotTerminal, in.Name())
	}
	if !IsTerminal(out) {
		return nil, fmt.Errorf("%w: %s", ErrNotTerminal, out.Name())
	}
	return &TTY{in: in, out: out}, nil
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (t *TTY) Read(p []byte) (int, error) {
	return t.in.Read(p)
}

func (t *TTY) Write(p []byte) (int, error) {
	return t.out.Write(p)
}

func (t *TTY) MakeRaw() (func() error, error) {
	fd := int(t.in.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("failed to enable raw mode: %w", err)
	}
	return func() error {
		return term.Restore(fd, state)
	}, nil
}

func (t *TTY) Size() (int, int, error) {
	return term.GetSize(int(t.out.Fd()))
}
