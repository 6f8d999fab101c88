package domain

// ProcessEventKind discriminates ProcessEvent variants.
type ProcessEventKind int

const (
	// EventOutput carries one decoded chunk from stdout or stderr.
	EventOutput ProcessEventKind = iota

	// EventTerminated reports the exit status of a process that
	// spawned successfully. Always the final event of its stream.
	EventTerminated

	// EventSpawnError reports that the process never started.
	// Always the only event of its stream.
	EventSpawnError
)

// OutputStream tags which pipe an output chunk came from.
type OutputStream int

const (
	// StreamStdout is the process's standard output.
	StreamStdout OutputStream = iota

	// StreamStderr is the process's standard error.
	StreamStderr
)

func (s OutputStream) String() string {
	if s == StreamStderr {
		return "stderr"
	}
	return "stdout"
}

// ProcessEvent is one item of a supervised process's event stream.
//
// Stream contract: chunks preserve per-pipe arrival order, stdout and
// stderr interleave in arrival order only, and exactly one terminal
// event (EventTerminated or EventSpawnError) ends the stream before
// the channel closes. Each event is owned solely by the consumer that
// receives it.
type ProcessEvent struct {
	Kind ProcessEventKind

	// Stream is the pipe Text came from. Valid for EventOutput.
	Stream OutputStream

	// Text is the decoded chunk for EventOutput, or the spawn
	// diagnostic for EventSpawnError. Invalid UTF-8 has been
	// replaced, never rejected.
	Text string

	// ExitCode is the exit status for EventTerminated. Nil means the
	// process was killed by a signal and produced no code; that is a
	// failure, never a success.
	ExitCode *int
}
