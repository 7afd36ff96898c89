// Package migrations carries the SQL files that golang-migrate applies to
// the tournament store on startup.
package migrations

import "embed"

// FS exposes the migration files to the iofs migration source.
//
//go:embed *.sql
var FS embed.FS
