package pitui

import (
	"encoding/json"
	"io"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/x/ansi"
)

// RenderStats captures metrics for a single Rewrite.
type RenderStats struct {
	// TotalTime is the wall-clock duration of the Rewrite call.
	TotalTime time.Duration

	// WriteTime is how long it took to write the escape sequences to the
	// terminal.
	WriteTime time.Duration

	// TotalLines is the number of lines in the new frame.
	TotalLines int

	// PreviousLines is the number of lines that were rewritten in place.
	PreviousLines int

	// PreviousRows is how many terminal rows the previous lines occupied at
	// the current width, i.e. how far the cursor moved back up plus one.
	PreviousRows int

	// WidthChanged is true when the terminal width differs from the width
	// the previous frame was written at.
	WidthChanged bool

	// BytesWritten is the number of bytes sent to the terminal (escape
	// sequences + content).
	BytesWritten int

	// Skipped is true when the frame matched the previous one and nothing
	// was written.
	Skipped bool
}

// renderStatsJSON is the JSONL record written by the debug writer.
type renderStatsJSON struct {
	Ts            int64 `json:"ts"`
	TotalUs       int64 `json:"total_us"`
	WriteUs       int64 `json:"write_us"`
	TotalLines    int   `json:"total_lines"`
	PreviousLines int   `json:"previous_lines"`
	PreviousRows  int   `json:"previous_rows"`
	WidthChanged  bool  `json:"width_changed"`
	BytesWritten  int   `json:"bytes_written"`
	Skipped       bool  `json:"skipped"`
}

// Region is a block of lines at the bottom of the scrollback that can be
// rewritten in place. The cursor is left at the end of the last line after
// every write, which is where the next Rewrite starts from.
type Region struct {
	terminal Terminal

	mu sync.Mutex // protects all mutable state below

	previousLines []string
	previousCols  int
	height        int // rows occupied by the last write; 0 before the first
	writes        int

	debugWriter io.Writer // if non-nil, render stats are logged here
}

// NewRegion creates a region that writes to term.
func NewRegion(term Terminal) *Region {
	return &Region{terminal: term}
}

// SetDebugWriter enables logging of per-frame stats as JSONL.
func (r *Region) SetDebugWriter(w io.Writer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.debugWriter = w
}

// Writes returns how many frames have actually been written.
func (r *Region) Writes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writes
}

// Height returns how many rows the region occupied when it was last
// written.
func (r *Region) Height() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.height
}

// Rewrite replaces the region's content with lines. The first call prints
// the lines where the cursor is; later calls move back to the start of the
// region, clear it and print the new lines. It reports whether anything was
// written: a frame identical to the previous one at the same width is
// skipped.
//
// Lines wider than the terminal wrap onto extra rows, and a terminal that
// was resized since the last write reflows what was printed. Either way the
// region moves back over every row the previous lines occupy at the current
// width.
func (r *Region) Rewrite(lines []string) bool {
	start := time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	cols := r.terminal.Columns()
	stats := RenderStats{
		TotalLines:    len(lines),
		PreviousLines: len(r.previousLines),
	}
	if r.height > 0 {
		stats.PreviousRows = rowsAt(r.previousLines, cols)
		stats.WidthChanged = cols != r.previousCols
	}

	if r.height > 0 && !stats.WidthChanged && slices.Equal(lines, r.previousLines) {
		stats.Skipped = true
		r.emitStats(stats, start)
		return false
	}

	var buf strings.Builder
	buf.WriteString(ansi.SetModeSynchronizedOutput)
	if r.height > 0 {
		buf.WriteByte('\r')
		if stats.PreviousRows > 1 {
			buf.WriteString(ansi.CursorUp(stats.PreviousRows - 1))
		}
		buf.WriteString(ansi.EraseScreenBelow)
	}
	buf.WriteString(strings.Join(lines, "\n"))
	buf.WriteString(ansi.ResetModeSynchronizedOutput)
	stats.BytesWritten = buf.Len()

	writeStart := time.Now()
	r.terminal.WriteString(buf.String())
	stats.WriteTime = time.Since(writeStart)

	r.previousLines = slices.Clone(lines)
	r.previousCols = cols
	r.height = rowsAt(lines, cols)
	r.writes++

	r.emitStats(stats, start)
	return true
}

// rowsAt returns how many terminal rows lines occupy when the terminal is
// cols wide. Even an empty frame leaves the cursor on a row of its own.
func rowsAt(lines []string, cols int) int {
	if len(lines) == 0 {
		return 1
	}
	if cols <= 0 {
		return len(lines)
	}
	rows := 0
	for _, line := range lines {
		rows += max(1, (VisibleWidth(line)+cols-1)/cols)
	}
	return rows
}

// Finish moves the cursor below the region and forgets it, so output that
// follows is not overwritten by a later Rewrite.
func (r *Region) Finish() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.height == 0 {
		return
	}
	r.terminal.WriteString("\n")
	r.previousLines = nil
	r.previousCols = 0
	r.height = 0
}

// emitStats writes the debug stats as JSONL if a debug writer is configured.
func (r *Region) emitStats(stats RenderStats, start time.Time) {
	if r.debugWriter == nil {
		return
	}
	stats.TotalTime = time.Since(start)
	rec := renderStatsJSON{
		Ts:            time.Now().UnixMilli(),
		TotalUs:       stats.TotalTime.Microseconds(),
		WriteUs:       stats.WriteTime.Microseconds(),
		TotalLines:    stats.TotalLines,
		PreviousLines: stats.PreviousLines,
		PreviousRows:  stats.PreviousRows,
		WidthChanged:  stats.WidthChanged,
		BytesWritten:  stats.BytesWritten,
		Skipped:       stats.Skipped,
	}
	data, _ := json.Marshal(rec)
	data = append(data, '\n')
	r.debugWriter.Write(data) //nolint:errcheck
}
