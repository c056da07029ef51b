// Package migrations provides embedded SQL migration files.
package migrations

import (
	"embed"
	"io/fs"
)

//go:embed sql/*.sql
var embedded embed.FS

// FS returns the migration files rooted at the directory holding them,
// in the layout goose expects.
func FS() fs.FS {
	sub, err := fs.Sub(embedded, "sql")
	if err != nil {
		// sql/ is embedded at compile time; Sub only fails on an invalid path.
		panic(err)
	}
	return sub
}
