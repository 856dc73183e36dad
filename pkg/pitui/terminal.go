// Package pitui renders animated blocks of text on the normal scrollback
// buffer (no alternate screen). A Region rewrites the lines it printed last
// in place using relative cursor movement, and synchronized output prevents
// flickering while it does so.
package pitui

import (
	"context"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-isatty"
	"golang.org/x/sys/unix"
)

// Terminal abstracts terminal output so the renderer can be tested with a
// fake terminal.
type Terminal interface {
	// Start begins listening for resize events. onResize is called when the
	// terminal dimensions change.
	Start(onResize func()) error

	// Stop stops listening for resize events.
	Stop()

	// Write sends raw bytes to the terminal.
	Write(p []byte)

	// WriteString sends a string to the terminal.
	WriteString(s string)

	// Columns returns the current terminal width.
	Columns() int

	// Rows returns the current terminal height.
	Rows() int

	// IsTTY reports whether output goes to an interactive terminal. Cursor
	// movement is only meaningful when it does.
	IsTTY() bool

	// HideCursor hides the hardware cursor.
	HideCursor()

	// ShowCursor shows the hardware cursor.
	ShowCursor()
}

// ProcessTerminal is a Terminal backed by process output, usually
// os.Stdout. Terminal dimensions are cached and refreshed on SIGWINCH to
// avoid repeated ioctl syscalls during rendering. Colors are downsampled to
// what the terminal supports, and stripped entirely when output is not a
// terminal.
type ProcessTerminal struct {
	fd  int
	tty bool

	writeMu sync.Mutex
	w       *colorprofile.Writer

	onResize   func()
	sigCh      chan os.Signal
	stopCancel context.CancelFunc

	sizeMu sync.RWMutex
	cols   int
	rows   int
}

// NewProcessTerminal creates a terminal writing to out. A nil out means
// os.Stdout. Writers that are not files are never treated as a TTY.
func NewProcessTerminal(out io.Writer) *ProcessTerminal {
	if out == nil {
		out = os.Stdout
	}
	t := &ProcessTerminal{
		fd: -1,
		w:  colorprofile.NewWriter(out, os.Environ()),
	}
	if f, ok := out.(interface{ Fd() uintptr }); ok {
		fd := f.Fd()
		t.fd = int(fd)
		t.tty = isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
	t.refreshSize()
	return t
}

// Profile returns the color profile output is rendered with.
func (t *ProcessTerminal) Profile() colorprofile.Profile {
	return t.w.Profile
}

// SetProfile overrides the detected color profile.
func (t *ProcessTerminal) SetProfile(p colorprofile.Profile) {
	t.writeMu.Lock()
	t.w.Profile = p
	t.writeMu.Unlock()
}

func (t *ProcessTerminal) Start(onResize func()) error {
	t.onResize = onResize
	var ctx context.Context
	ctx, t.stopCancel = context.WithCancel(context.Background())

	t.refreshSize()
	if !t.tty {
		return nil
	}

	t.sigCh = make(chan os.Signal, 1)
	signal.Notify(t.sigCh, syscall.SIGWINCH)
	go func() {
		for {
			select {
			case <-t.sigCh:
				t.refreshSize()
				if t.onResize != nil {
					t.onResize()
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}

func (t *ProcessTerminal) Stop() {
	if t.stopCancel != nil {
		t.stopCancel()
	}
	if t.sigCh != nil {
		signal.Stop(t.sigCh)
	}
}

func (t *ProcessTerminal) Write(p []byte) {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()
	_, _ = t.w.Write(p)
}

func (t *ProcessTerminal) WriteString(s string) {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()
	_, _ = io.WriteString(t.w, s)
}

func (t *ProcessTerminal) IsTTY() bool {
	return t.tty
}

func (t *ProcessTerminal) Columns() int {
	t.sizeMu.RLock()
	c := t.cols
	t.sizeMu.RUnlock()
	if c == 0 {
		return 80
	}
	return c
}

func (t *ProcessTerminal) Rows() int {
	t.sizeMu.RLock()
	r := t.rows
	t.sizeMu.RUnlock()
	if r == 0 {
		return 24
	}
	return r
}

// refreshSize queries the kernel for current terminal dimensions and caches
// them. Called on creation, at Start and on every SIGWINCH.
func (t *ProcessTerminal) refreshSize() {
	if !t.tty {
		return
	}
	ws, err := unix.IoctlGetWinsize(t.fd, unix.TIOCGWINSZ)
	if err != nil {
		return
	}
	t.sizeMu.Lock()
	if ws.Col > 0 {
		t.cols = int(ws.Col)
	}
	if ws.Row > 0 {
		t.rows = int(ws.Row)
	}
	t.sizeMu.Unlock()
}

func (t *ProcessTerminal) HideCursor() {
	if t.tty {
		t.WriteString(ansi.HideCursor)
	}
}

func (t *ProcessTerminal) ShowCursor() {
	if t.tty {
		t.WriteString(ansi.ShowCursor)
	}
}
