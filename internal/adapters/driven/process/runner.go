package process

import (
	"bufio"
	"errors"
	"io"
	"os/exec"
	"strings"
	"sync"

	"github.com/packmule-labs/packmule-cli/internal/core/domain"
	"github.com/packmule-labs/packmule-cli/internal/core/ports/driven"
	"github.com/packmule-labs/packmule-cli/internal/logger"
)

// Ensure Runner implements the interface.
var _ driven.ProcessRunner = (*Runner)(nil)

// Runner supervises external tool processes via os/exec.
type Runner struct{}

// NewRunner creates a new process runner.
func NewRunner() *Runner {
	return &Runner{}
}

// Spawn starts command with the given spec and streams its lifecycle.
// The returned channel delivers output chunks in per-stream order,
// then exactly one terminal event, then closes. Once started the
// process runs to completion; there is no kill path.
func (r *Runner) Spawn(command string, spec domain.CommandSpec) <-chan domain.ProcessEvent {
	events := make(chan domain.ProcessEvent)

	go func() {
		defer close(events)
		run(command, spec, events)
	}()

	return events
}

func run(command string, spec domain.CommandSpec, events chan<- domain.ProcessEvent) {
	cmd := exec.Command(command, spec.Args...)
	cmd.Dir = spec.Dir

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		events <- spawnError(err)
		return
	}

	stderr, err := cmd.StderrPipe()
	if err != nil {
		stdout.Close()
		events <- spawnError(err)
		return
	}

	if err := cmd.Start(); err != nil {
		stdout.Close()
		stderr.Close()
		events <- spawnError(err)
		return
	}

	logger.Debug("Spawned %s (pid %d)", command, cmd.Process.Pid)

	// Wait must not run until both pipes are fully read.
	var readers sync.WaitGroup
	readers.Add(2)
	go func() {
		defer readers.Done()
		relay(stdout, domain.StreamStdout, events)
	}()
	go func() {
		defer readers.Done()
		relay(stderr, domain.StreamStderr, events)
	}()
	readers.Wait()

	events <- terminated(cmd.Wait())
}

// relay forwards one pipe line by line, keeping the terminator on
// each chunk and flushing any unterminated tail at EOF.
func relay(pipe io.Reader, stream domain.OutputStream, events chan<- domain.ProcessEvent) {
	reader := bufio.NewReader(pipe)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			events <- domain.ProcessEvent{
				Kind:   domain.EventOutput,
				Stream: stream,
				Text:   strings.ToValidUTF8(line, "�"),
			}
		}
		if err != nil {
			return
		}
	}
}

func spawnError(err error) domain.ProcessEvent {
	return domain.ProcessEvent{Kind: domain.EventSpawnError, Text: err.Error()}
}

// terminated turns cmd.Wait's verdict into the terminal event. A
// process killed by a signal reports no exit code; ExitCode stays
// nil.
func terminated(waitErr error) domain.ProcessEvent {
	event := domain.ProcessEvent{Kind: domain.EventTerminated}

	if waitErr == nil {
		code := 0
		event.ExitCode = &code
		return event
	}

	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		if code := exitErr.ExitCode(); code >= 0 {
			event.ExitCode = &code
		}
	}

	return event
}
