// ABOUTME: Progress sinks for terminal text, JSON lines and channels
// ABOUTME: Text sink rewrites one status line; channel sink never blocks the reporter

package progress

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/dustin/go-humanize"

	"github.com/hikmaai-io/hikmaai-dictcrack/internal/types"
)

var spinnerFrames = []string{"|", "/", "-", `\`}

// TextSink renders a single status line rewritten with a carriage return.
// The final snapshot terminates the line with a newline.
type TextSink struct {
	mu    sync.Mutex
	w     io.Writer
	frame int
}

// NewTextSink creates a text sink writing to w.
func NewTextSink(w io.Writer) *TextSink {
	return &TextSink{w: w}
}

// Emit writes the status line for s.
func (t *TextSink) Emit(s types.Snapshot) {
	t.mu.Lock()
	defer t.mu.Unlock()

	spinner := spinnerFrames[t.frame%len(spinnerFrames)]
	t.frame++
	if s.Final {
		spinner = "*"
	}

	line := fmt.Sprintf("\r%s attempts: %s | rate: %s/s | elapsed: %.1fs",
		spinner, FormatCount(s.Attempts), FormatCount(int64(s.Rate)), s.Elapsed.Seconds())
	if s.CPUPercent > 0 || s.MemoryUsedPercent > 0 {
		line += fmt.Sprintf(" | cpu: %.0f%% | mem: %.0f%%", s.CPUPercent, s.MemoryUsedPercent)
	}
	if s.Final {
		line += "\n"
	}

	_, _ = io.WriteString(t.w, line)
}

// JSONSink writes one JSON object per snapshot.
type JSONSink struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewJSONSink creates a JSON lines sink writing to w.
func NewJSONSink(w io.Writer) *JSONSink {
	return &JSONSink{enc: json.NewEncoder(w)}
}

// Emit encodes s as a JSON line.
func (j *JSONSink) Emit(s types.Snapshot) {
	j.mu.Lock()
	defer j.mu.Unlock()
	_ = j.enc.Encode(s)
}

// ChannelSink delivers snapshots on a buffered channel. When the buffer is
// full the snapshot is dropped and counted.
type ChannelSink struct {
	C       chan types.Snapshot
	dropped atomic.Int64
}

// NewChannelSink creates a channel sink with the given buffer size.
func NewChannelSink(buffer int) *ChannelSink {
	if buffer < 1 {
		buffer = 1
	}
	return &ChannelSink{C: make(chan types.Snapshot, buffer)}
}

// Emit sends s without blocking.
func (c *ChannelSink) Emit(s types.Snapshot) {
	select {
	case c.C <- s:
	default:
		c.dropped.Add(1)
	}
}

// Dropped returns how many snapshots were discarded.
func (c *ChannelSink) Dropped() int64 {
	return c.dropped.Load()
}

// FormatCount renders n with comma thousands separators.
func FormatCount(n int64) string {
	return humanize.Comma(n)
}
