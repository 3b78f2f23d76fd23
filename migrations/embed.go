// Package migrations embeds the goose SQL migrations so they can be run
// from any working directory.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
