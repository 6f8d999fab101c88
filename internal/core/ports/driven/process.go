package driven

import (
	"github.com/packmule-labs/packmule-cli/internal/core/domain"
)

// ProcessRunner spawns and supervises one external process per call,
// exposing its lifecycle as an event stream.
type ProcessRunner interface {
	// Spawn starts command with the spec's argument vector and
	// working directory, with no interactive stdin. The executable is
	// resolved through the host's standard search path.
	//
	// The returned channel yields output chunks in per-pipe arrival
	// order, then exactly one terminal event (EventTerminated, or
	// EventSpawnError when the process never started), then closes.
	// Each call returns a fresh stream that is consumed exactly once.
	//
	// There is no kill or cancellation path: a spawned process runs
	// to natural termination. Timeout policy, if any, belongs to the
	// caller.
	Spawn(command string, spec domain.CommandSpec) <-chan domain.ProcessEvent
}
