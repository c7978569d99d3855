package archive

import (
	"fmt"
	"strings"
)

// PostgresDialect implements Dialect for PostgreSQL archives.
type PostgresDialect struct{}

// DriverName returns "postgres" for the lib/pq driver.
func (d *PostgresDialect) DriverName() string {
	return "postgres"
}

// Placeholder returns "$N" for the given position.
func (d *PostgresDialect) Placeholder(position int) string {
	return fmt.Sprintf("$%d", position)
}

// BlobType returns PostgreSQL's BYTEA column type.
func (d *PostgresDialect) BlobType() string {
	return "BYTEA"
}

// InitStatements returns nothing; PostgreSQL needs no per-open setup.
func (d *PostgresDialect) InitStatements() []string {
	return nil
}

// IsDuplicateKeyError reports PostgreSQL unique violations (code 23505).
func (d *PostgresDialect) IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "duplicate key") ||
		strings.Contains(errStr, "23505") ||
		strings.Contains(errStr, "unique constraint")
}
