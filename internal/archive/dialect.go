package archive

// Dialect abstracts the SQL syntax differences between the SQLite and
// PostgreSQL backends of the map archive.
type Dialect interface {
	// DriverName returns the driver name for sql.Open().
	DriverName() string

	// Placeholder returns the parameter placeholder for the given
	// position (1-indexed). SQLite: "?", PostgreSQL: "$1", "$2", ...
	Placeholder(position int) string

	// BlobType returns the column type used for binary payloads.
	BlobType() string

	// InitStatements returns statements run once after opening.
	InitStatements() []string

	// IsDuplicateKeyError reports whether err is a unique constraint
	// violation.
	IsDuplicateKeyError(err error) bool
}

// DialectType identifies the archive database dialect.
type DialectType string

const (
	DialectSQLite   DialectType = "sqlite"
	DialectPostgres DialectType = "postgres"
)

// NewDialect creates the Dialect for the given type, defaulting to SQLite.
func NewDialect(dialectType DialectType) Dialect {
	switch dialectType {
	case DialectPostgres:
		return &PostgresDialect{}
	default:
		return &SQLiteDialect{}
	}
}
