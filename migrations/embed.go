// Package migrations embeds the goose SQL migrations so the server and the
// integration tests apply exactly the same schema without a filesystem path.
package migrations

import "embed"

// FS holds all *.sql migration files embedded at compile time.
//
//go:embed *.sql
var FS embed.FS
