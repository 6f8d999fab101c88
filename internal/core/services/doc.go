// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The ingestion service is the centre of the package: it builds the
// tool invocation, supervises the spawned process through a driven
// ProcessRunner, aggregates its output streams, and classifies the
// outcome by exit status alone.
package services
