package infrastructure

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"sysmon/internal/metrics/domain"
)

const (
	kib = 1024
	mib = 1024 * 1024

	ellipsis = "..."
)

// FormatLine lays out one status line. Disk rates are in MiB/s, network rates in KiB/s;
// ↑ is transmitted, ↓ is received.
func FormatLine(m domain.Metrics) string {
	return fmt.Sprintf(
		"CPU:%5.1f%% RAM:%5.1f%% DISK:%5.1f%% I/O R:%5.2fMB/s W:%5.2fMB/s NET ↑%6.2fKB/s ↓%6.2fKB/s",
		m.CPUPercent,
		m.MemPercent,
		m.DiskPercent,
		m.DiskReadPerSec/mib,
		m.DiskWritePerSec/mib,
		m.NetTxPerSec/kib,
		m.NetRxPerSec/kib,
	)
}

// Truncate cuts line to exactly width runes, the last three being "...".
// A non-positive width means unknown and leaves line untouched.
func Truncate(line string, width int) string {
	if width <= 0 || utf8.RuneCountInString(line) <= width {
		return line
	}
	if width <= len(ellipsis) {
		return ellipsis[:width]
	}

	runes := []rune(line)
	return string(runes[:width-len(ellipsis)]) + ellipsis
}

// WidthFunc reports the current column count of the output
type WidthFunc func() (int, error)

// FileWidth queries the terminal size of f
func FileWidth(f *os.File) WidthFunc {
	return func() (int, error) {
		fd := f.Fd()
		if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
			return 0, domain.ErrTerminalSizeUnavailable
		}
		width, _, err := term.GetSize(int(fd))
		if err != nil {
			return 0, fmt.Errorf("%w: %v", domain.ErrTerminalSizeUnavailable, err)
		}
		if width <= 0 {
			return 0, domain.ErrTerminalSizeUnavailable
		}
		return width, nil
	}
}

// TerminalSink implements domain.Sink by redrawing a single line in place
type TerminalSink struct {
	w     io.Writer
	width WidthFunc

	mu       sync.Mutex
	lastLen  int
	finished bool
}

// NewTerminalSink creates a sink writing to w; width may be nil for never truncating
func NewTerminalSink(w io.Writer, width WidthFunc) *TerminalSink {
	return &TerminalSink{w: w, width: width}
}

var _ domain.Sink = (*TerminalSink)(nil)

// Emit returns to the start of the line and overwrites it, padding over
// whatever remains of a longer previous line.
func (s *TerminalSink) Emit(ctx context.Context, m domain.Metrics) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	line := FormatLine(m)
	width := 0
	if s.width != nil {
		// ErrTerminalSizeUnavailable: keep the line whole
		if w, err := s.width(); err == nil {
			width = w
		}
	}
	line = Truncate(line, width)

	s.mu.Lock()
	defer s.mu.Unlock()

	n := utf8.RuneCountInString(line)
	pad := 0
	if s.lastLen > n {
		pad = s.lastLen - n
	}
	if width > 0 && n+pad > width {
		pad = width - n
	}

	if _, err := io.WriteString(s.w, "\r"+line+strings.Repeat(" ", pad)); err != nil {
		return fmt.Errorf("failed to write status line: %w", err)
	}
	s.lastLen = n
	return nil
}

// Finish moves past the status line. Only the first call writes.
func (s *TerminalSink) Finish() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finished {
		return nil
	}
	s.finished = true
	_, err := io.WriteString(s.w, "\n")
	return err
}
