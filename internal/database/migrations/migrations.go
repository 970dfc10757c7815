package migrations

import "embed"

// FS contains the embedded schema migrations, one directory per SQL dialect.
//
//go:embed mysql/*.sql sqlite/*.sql
var FS embed.FS
