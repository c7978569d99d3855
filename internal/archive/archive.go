// Package archive persists generated heightmaps so a run can be looked up
// later by id and re-rendered or compared by content fingerprint.
package archive

import (
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"golang.org/x/crypto/blake2b"
	_ "modernc.org/sqlite"

	"github.com/fieldworks/heightmap/internal/heightfield"
)

var (
	ErrNotFound  = errors.New("archive: record not found")
	ErrDuplicate = errors.New("archive: identical map already archived")
)

// Record is one archived generation run: its parameters, a fingerprint of
// the raw buffer, and the grayscale PNG render.
type Record struct {
	ID          string
	Seed        uint64
	Width       int
	Height      int
	MinHeight   float64
	MaxHeight   float64
	Octaves     int
	Backend     string
	Fingerprint string
	PNG         []byte
	CreatedAt   time.Time
}

// NewRecord builds a Record for a generated field, assigning a fresh id and
// fingerprinting the field's raw buffer.
func NewRecord(f *heightfield.Field, backend string, seed uint64, pngData []byte) Record {
	return Record{
		ID:          uuid.NewString(),
		Seed:        seed,
		Width:       f.Width(),
		Height:      f.Height(),
		MinHeight:   f.MinHeight(),
		MaxHeight:   f.MaxHeight(),
		Octaves:     f.Octaves(),
		Backend:     backend,
		Fingerprint: Fingerprint(f.Values()),
		PNG:         pngData,
		CreatedAt:   time.Now().UTC(),
	}
}

// Fingerprint returns the hex BLAKE2b-256 digest of a raw value buffer.
// Fields generated from the same seed and parameters fingerprint
// identically across runs.
func Fingerprint(values []float64) string {
	h, _ := blake2b.New256(nil)
	var b [8]byte
	for _, v := range values {
		binary.LittleEndian.PutUint64(b[:], math.Float64bits(v))
		h.Write(b[:])
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Store is a map archive backed by SQLite or PostgreSQL.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

// Open connects to the archive database, runs init statements, and creates
// the schema if needed. For SQLite the dsn is a file path; for PostgreSQL a
// connection string.
func Open(dialectType DialectType, dsn string) (*Store, error) {
	dialect := NewDialect(dialectType)

	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("archive: failed to open database: %w", err)
	}

	for _, stmt := range dialect.InitStatements() {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("archive: init statement failed: %w", err)
		}
	}

	s := &Store{db: db, dialect: dialect}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("archive: migration failed: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS maps (
		id TEXT PRIMARY KEY,
		seed BIGINT NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		min_height DOUBLE PRECISION NOT NULL,
		max_height DOUBLE PRECISION NOT NULL,
		octaves INTEGER NOT NULL,
		backend TEXT NOT NULL,
		fingerprint TEXT UNIQUE NOT NULL,
		png %s NOT NULL,
		created_at BIGINT NOT NULL
	)`, s.dialect.BlobType())
	_, err := s.db.Exec(stmt)
	return err
}

// placeholders returns "p1, p2, ..., pn" in the dialect's placeholder style.
func (s *Store) placeholders(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = s.dialect.Placeholder(i + 1)
	}
	return strings.Join(parts, ", ")
}

// Save inserts a record. A record whose fingerprint is already archived is
// rejected with ErrDuplicate.
func (s *Store) Save(rec Record) error {
	query := fmt.Sprintf(`INSERT INTO maps
		(id, seed, width, height, min_height, max_height, octaves, backend, fingerprint, png, created_at)
		VALUES (%s)`, s.placeholders(11))

	_, err := s.db.Exec(query,
		rec.ID, int64(rec.Seed), rec.Width, rec.Height,
		rec.MinHeight, rec.MaxHeight, rec.Octaves, rec.Backend,
		rec.Fingerprint, rec.PNG, rec.CreatedAt.Unix())
	if err != nil {
		if s.dialect.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("archive: failed to save record: %w", err)
	}
	return nil
}

// Get loads a record by id, returning ErrNotFound if it does not exist.
func (s *Store) Get(id string) (Record, error) {
	query := fmt.Sprintf(`SELECT id, seed, width, height, min_height, max_height,
		octaves, backend, fingerprint, png, created_at
		FROM maps WHERE id = %s`, s.dialect.Placeholder(1))

	rec, err := s.scanRecord(s.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, fmt.Errorf("archive: failed to load record: %w", err)
	}
	return rec, nil
}

// List returns up to limit records, newest first.
func (s *Store) List(limit int) ([]Record, error) {
	query := fmt.Sprintf(`SELECT id, seed, width, height, min_height, max_height,
		octaves, backend, fingerprint, png, created_at
		FROM maps ORDER BY created_at DESC, id LIMIT %s`, s.dialect.Placeholder(1))

	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("archive: failed to list records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := s.scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("archive: failed to scan record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func (s *Store) scanRecord(row scanner) (Record, error) {
	var rec Record
	var seed, createdAt int64
	err := row.Scan(&rec.ID, &seed, &rec.Width, &rec.Height,
		&rec.MinHeight, &rec.MaxHeight, &rec.Octaves, &rec.Backend,
		&rec.Fingerprint, &rec.PNG, &createdAt)
	if err != nil {
		return Record{}, err
	}
	rec.Seed = uint64(seed)
	rec.CreatedAt = time.Unix(createdAt, 0).UTC()
	return rec, nil
}
