// Package migrations carries the SQL schema migrations embedded into the
// binary so a fresh deployment needs no external migration tooling.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
