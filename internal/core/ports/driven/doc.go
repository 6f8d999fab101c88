// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - ProcessRunner: Spawns and supervises the ingestion tool
//   - Workspace: Validates the tool directory and source availability
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - LogSink: Live progress observer. Without it, runs execute
//     silently and only the final result is reported.
//   - RunStore: Run history persistence. Without it, history commands
//     are disabled but ingestion still works.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
