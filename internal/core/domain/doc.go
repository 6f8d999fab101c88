// Package domain defines the core business entities for Packmule.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - SourceKind: The closed set of ingestion source discriminants
//   - IngestionConfig: Caller-supplied description of one ingestion run
//   - CommandSpec: A built ingestion-tool invocation
//   - ProcessEvent: One item of a supervised process's event stream
//   - IngestionResult: The terminal outcome returned to the caller
//   - IngestionRun: The persisted history record of an invocation
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
