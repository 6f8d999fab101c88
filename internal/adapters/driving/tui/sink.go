package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/packmule-labs/packmule-cli/internal/adapters/driving/tui/messages"
	"github.com/packmule-labs/packmule-cli/internal/core/domain"
	"github.com/packmule-labs/packmule-cli/internal/core/ports/driven"
)

// Ensure ProgramSink implements the interface.
var _ driven.LogSink = (*ProgramSink)(nil)

// sinkQueueSize bounds how many entries may wait for the render loop.
// Overflow drops the oldest entry first.
const sinkQueueSize = 256

// sender is the part of tea.Program the sink needs. A seam for tests.
type sender interface {
	Send(tea.Msg)
}

// ProgramSink adapts the LogSink port onto a running bubbletea
// program. Accept queues entries and a forwarding goroutine delivers
// them as messages.LogLine, so a busy render loop can never stall the
// stream aggregator.
type ProgramSink struct {
	entries chan domain.LogEntry
	done    chan struct{}
	once    sync.Once
	wg      sync.WaitGroup
}

// NewProgramSink creates a sink delivering entries to p. Call Close
// when the program exits to stop the forwarding goroutine.
func NewProgramSink(p *tea.Program) *ProgramSink {
	return newProgramSink(p)
}

func newProgramSink(target sender) *ProgramSink {
	s := &ProgramSink{
		entries: make(chan domain.LogEntry, sinkQueueSize),
		done:    make(chan struct{}),
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			select {
			case entry := <-s.entries:
				target.Send(messages.LogLine{Entry: entry})
			case <-s.done:
				return
			}
		}
	}()

	return s
}

// Accept queues one entry without ever blocking. When the queue is
// full the oldest entry is dropped to make room; when the sink is
// closed the entry is discarded.
func (s *ProgramSink) Accept(entry domain.LogEntry) {
	select {
	case <-s.done:
		return
	default:
	}

	select {
	case s.entries <- entry:
	default:
		// Full: evict the oldest entry, then try once more. Another
		// eviction racing us means this entry is dropped instead,
		// which the fire-and-forget contract allows.
		select {
		case <-s.entries:
		default:
		}
		select {
		case s.entries <- entry:
		default:
		}
	}
}

// Close stops the forwarding goroutine. Safe to call more than once;
// entries accepted after Close are discarded.
func (s *ProgramSink) Close() {
	s.once.Do(func() {
		close(s.done)
	})
	s.wg.Wait()
}
