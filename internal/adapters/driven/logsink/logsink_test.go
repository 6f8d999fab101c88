package logsink

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/packmule-labs/packmule-cli/internal/core/domain"
)

// recordingSink captures entries for assertions.
type recordingSink struct {
	entries []domain.LogEntry
}

func (s *recordingSink) Accept(entry domain.LogEntry) {
	s.entries = append(s.entries, entry)
}

func TestWriter_WritesOneLinePerEntry(t *testing.T) {
	buf := new(bytes.Buffer)
	sink := NewWriter(buf)

	sink.Accept(domain.LogEntry{Kind: domain.LogInfo, Message: "Syncing fab dependencies..."})
	sink.Accept(domain.LogEntry{Kind: domain.LogStderr, Message: "Downloading asset 1/3"})

	assert.Equal(t, "Syncing fab dependencies...\nDownloading asset 1/3\n", buf.String())
}

func TestDispatcher_ForwardsToTarget(t *testing.T) {
	target := &recordingSink{}
	dispatcher := NewDispatcher(target)

	dispatcher.Accept(domain.LogEntry{Kind: domain.LogStderr, Message: "line"})

	assert.Len(t, target.entries, 1)
	assert.Equal(t, "line", target.entries[0].Message)
}

func TestDispatcher_NilTargetDiscards(t *testing.T) {
	dispatcher := NewDispatcher(nil)

	assert.NotPanics(t, func() {
		dispatcher.Accept(domain.LogEntry{Kind: domain.LogInfo, Message: "dropped"})
	})
}

func TestDispatcher_SwapReturnsPrevious(t *testing.T) {
	first := &recordingSink{}
	second := &recordingSink{}
	dispatcher := NewDispatcher(first)

	previous := dispatcher.Swap(second)
	dispatcher.Accept(domain.LogEntry{Kind: domain.LogStderr, Message: "after swap"})

	assert.Same(t, first, previous.(*recordingSink))
	assert.Empty(t, first.entries)
	assert.Len(t, second.entries, 1)
}

func TestDispatcher_SwapRestores(t *testing.T) {
	writer := &recordingSink{}
	dispatcher := NewDispatcher(writer)

	replacement := &recordingSink{}
	previous := dispatcher.Swap(replacement)
	dispatcher.Swap(previous)

	dispatcher.Accept(domain.LogEntry{Kind: domain.LogStderr, Message: "restored"})

	assert.Len(t, writer.entries, 1)
	assert.Empty(t, replacement.entries)
}
