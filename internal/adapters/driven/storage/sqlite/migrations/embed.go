// Package migrations carries the run-history schema, applied in
// lexical order by the store on open.
package migrations

import "embed"

// FS holds the .sql migration files compiled into the binary.
//
//go:embed *.sql
var FS embed.FS
