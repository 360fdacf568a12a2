package uploads

import (
	"embed"

	"github.com/JaimeStill/web-quickstart/pkg/database"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Migrations returns the schema migrations for the uploads ledger.
func Migrations() database.Source {
	return database.Source{FS: migrationFS, Dir: "migrations"}
}
