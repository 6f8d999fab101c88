package services

import (
	"fmt"
	"strings"

	"github.com/packmule-labs/packmule-cli/internal/core/domain"
	"github.com/packmule-labs/packmule-cli/internal/core/ports/driven"
)

// streamOutcome carries the drained buffers and exit status of one
// supervised process.
type streamOutcome struct {
	stdout   string
	stderr   string
	exitCode *int
}

// drainEvents consumes a process event stream to exhaustion. Stdout
// chunks accumulate verbatim; stderr chunks accumulate one line per
// chunk and are forwarded to sink as they arrive. The drain never
// returns before the runner closes the channel, so a slow consumer
// can stall the child on a full pipe but never leak it.
//
// Both buffers grow without bound for the lifetime of the run.
func drainEvents(events <-chan domain.ProcessEvent, sink driven.LogSink) (streamOutcome, error) {
	var (
		stdout     strings.Builder
		stderr     strings.Builder
		exitCode   *int
		terminated bool
		spawnErr   error
	)

	for event := range events {
		switch event.Kind {
		case domain.EventOutput:
			if event.Stream == domain.StreamStderr {
				stderr.WriteString(event.Text)
				if !strings.HasSuffix(event.Text, "\n") {
					stderr.WriteByte('\n')
				}
				notify(sink, domain.LogEntry{
					Kind:    domain.LogStderr,
					Message: chunkLine(event.Text),
				})
				continue
			}
			stdout.WriteString(event.Text)

		case domain.EventTerminated:
			exitCode = event.ExitCode
			terminated = true

		case domain.EventSpawnError:
			if spawnErr == nil {
				spawnErr = fmt.Errorf("%w: %s", domain.ErrSpawn, event.Text)
			}
		}
	}

	if spawnErr != nil {
		return streamOutcome{}, spawnErr
	}
	if !terminated {
		return streamOutcome{}, domain.ErrStreamEnded
	}

	return streamOutcome{
		stdout:   stdout.String(),
		stderr:   stderr.String(),
		exitCode: exitCode,
	}, nil
}

// chunkLine strips the line terminator a chunk may carry so log
// entries stay single-line.
func chunkLine(text string) string {
	text = strings.TrimSuffix(text, "\n")
	return strings.TrimSuffix(text, "\r")
}

// notify pushes an entry to the sink when one is attached.
func notify(sink driven.LogSink, entry domain.LogEntry) {
	if sink == nil {
		return
	}
	sink.Accept(entry)
}
