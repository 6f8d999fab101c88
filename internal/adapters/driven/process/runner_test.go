package process

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packmule-labs/packmule-cli/internal/core/domain"
)

// requireShell skips the test when no POSIX shell is on PATH.
func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

// collect drains an event stream to closure, failing the test if the
// runner never finishes.
func collect(t *testing.T, events <-chan domain.ProcessEvent) []domain.ProcessEvent {
	t.Helper()

	var all []domain.ProcessEvent
	deadline := time.After(10 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return all
			}
			all = append(all, ev)
		case <-deadline:
			t.Fatal("timed out waiting for process events")
		}
	}
}

func shellSpec(script string) domain.CommandSpec {
	return domain.CommandSpec{Args: []string{"-c", script}}
}

func streamText(events []domain.ProcessEvent, stream domain.OutputStream) string {
	var b strings.Builder
	for _, ev := range events {
		if ev.Kind == domain.EventOutput && ev.Stream == stream {
			b.WriteString(ev.Text)
		}
	}
	return b.String()
}

func TestRunner_Spawn_CapturesStdout(t *testing.T) {
	requireShell(t)
	runner := NewRunner()

	events := collect(t, runner.Spawn("sh", shellSpec(`printf 'line one\nline two\n'`)))

	assert.Equal(t, "line one\nline two\n", streamText(events, domain.StreamStdout))

	last := events[len(events)-1]
	assert.Equal(t, domain.EventTerminated, last.Kind)
	require.NotNil(t, last.ExitCode)
	assert.Equal(t, 0, *last.ExitCode)
}

func TestRunner_Spawn_CapturesStderrInOrder(t *testing.T) {
	requireShell(t)
	runner := NewRunner()

	events := collect(t, runner.Spawn("sh", shellSpec(`printf 'a\nb\nc\n' >&2`)))

	var lines []string
	for _, ev := range events {
		if ev.Kind == domain.EventOutput && ev.Stream == domain.StreamStderr {
			lines = append(lines, ev.Text)
		}
	}
	assert.Equal(t, []string{"a\n", "b\n", "c\n"}, lines)
}

func TestRunner_Spawn_ReportsNonZeroExit(t *testing.T) {
	requireShell(t)
	runner := NewRunner()

	events := collect(t, runner.Spawn("sh", shellSpec(`printf 'broken\n' >&2; exit 3`)))

	last := events[len(events)-1]
	require.Equal(t, domain.EventTerminated, last.Kind)
	require.NotNil(t, last.ExitCode)
	assert.Equal(t, 3, *last.ExitCode)
	assert.Equal(t, "broken\n", streamText(events, domain.StreamStderr))
}

func TestRunner_Spawn_FlushesUnterminatedTail(t *testing.T) {
	requireShell(t)
	runner := NewRunner()

	events := collect(t, runner.Spawn("sh", shellSpec(`printf 'no newline'`)))

	assert.Equal(t, "no newline", streamText(events, domain.StreamStdout))
}

func TestRunner_Spawn_ExactlyOneTerminalEvent(t *testing.T) {
	requireShell(t)
	runner := NewRunner()

	events := collect(t, runner.Spawn("sh", shellSpec(`printf 'out\n'; printf 'err\n' >&2`)))

	var terminals int
	for _, ev := range events {
		if ev.Kind == domain.EventTerminated {
			terminals++
		}
	}
	assert.Equal(t, 1, terminals)
	assert.Equal(t, domain.EventTerminated, events[len(events)-1].Kind)
}

func TestRunner_Spawn_HonoursWorkingDirectory(t *testing.T) {
	requireShell(t)
	runner := NewRunner()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "marker"), []byte("x"), 0o600))

	spec := domain.CommandSpec{
		Args: []string{"-c", `test -f marker && printf 'found\n'`},
		Dir:  dir,
	}
	events := collect(t, runner.Spawn("sh", spec))

	assert.Equal(t, "found\n", streamText(events, domain.StreamStdout))
}

func TestRunner_Spawn_MissingExecutable(t *testing.T) {
	runner := NewRunner()

	events := collect(t, runner.Spawn("packmule-no-such-binary", domain.CommandSpec{}))

	require.Len(t, events, 1)
	assert.Equal(t, domain.EventSpawnError, events[0].Kind)
	assert.Contains(t, events[0].Text, "not found")
}

func TestRunner_Spawn_SignalDeathHasNoExitCode(t *testing.T) {
	requireShell(t)
	runner := NewRunner()

	events := collect(t, runner.Spawn("sh", shellSpec(`kill -KILL $$`)))

	last := events[len(events)-1]
	require.Equal(t, domain.EventTerminated, last.Kind)
	assert.Nil(t, last.ExitCode)
}
