// Package dialect names the SQL dialects supported by blueprint.
//
// A dialect is an opaque selector resolving to one concrete grammar
// (type mapping, identifier quoting and command compilation rules).
// The set of dialects is fixed at build time.
package dialect

// Supported dialect names.
const (
	// MySQL covers the MySQL/MariaDB family.
	MySQL = "mysql"

	// SQLite is the SQLite database.
	SQLite = "sqlite"

	// Postgres is the PostgreSQL database.
	Postgres = "postgres"

	// SQLServer is Microsoft SQL Server.
	SQLServer = "sqlserver"
)

// All returns the supported dialect names in stable order.
func All() []string {
	return []string{MySQL, Postgres, SQLite, SQLServer}
}

// Valid reports whether name is a supported dialect name.
func Valid(name string) bool {
	switch name {
	case MySQL, SQLite, Postgres, SQLServer:
		return true
	}
	return false
}
