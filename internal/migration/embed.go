// Package migration embeds the goose SQL migrations applied at startup.
package migration

import "embed"

//go:embed *.sql
var FS embed.FS
