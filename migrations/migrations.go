// Package migrations embeds the goose SQL migrations so they can be applied
// programmatically (cmd/migrate, test helpers).
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
