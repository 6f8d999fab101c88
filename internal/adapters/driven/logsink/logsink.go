package logsink

import (
	"fmt"
	"io"
	"sync"

	"github.com/packmule-labs/packmule-cli/internal/core/domain"
	"github.com/packmule-labs/packmule-cli/internal/core/ports/driven"
)

// Ensure the sinks implement the interface.
var (
	_ driven.LogSink = (*Writer)(nil)
	_ driven.LogSink = (*Dispatcher)(nil)
)

// Writer prints each log entry to an io.Writer as one line. The CLI
// installs one on stderr so tool progress shows up live.
type Writer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriter creates a sink writing to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Accept writes the entry's message followed by a newline. Write
// errors are discarded: a broken display must never reach the run.
//
//nolint:errcheck // best-effort display
func (s *Writer) Accept(entry domain.LogEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.w, entry.Message)
}

// Dispatcher forwards entries to a replaceable target sink. The
// services hold the dispatcher for the lifetime of the process while
// surfaces swap the target underneath it: the CLI's stderr writer by
// default, the TUI's program sink while it owns the terminal.
type Dispatcher struct {
	mu     sync.RWMutex
	target driven.LogSink
}

// NewDispatcher creates a dispatcher forwarding to target. A nil
// target discards entries.
func NewDispatcher(target driven.LogSink) *Dispatcher {
	return &Dispatcher{target: target}
}

// Accept forwards the entry to the current target.
func (d *Dispatcher) Accept(entry domain.LogEntry) {
	d.mu.RLock()
	target := d.target
	d.mu.RUnlock()

	if target != nil {
		target.Accept(entry)
	}
}

// Swap installs a new target and returns the previous one so the
// caller can restore it.
func (d *Dispatcher) Swap(target driven.LogSink) driven.LogSink {
	d.mu.Lock()
	defer d.mu.Unlock()

	previous := d.target
	d.target = target
	return previous
}
