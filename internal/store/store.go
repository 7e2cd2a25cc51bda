package store

import (
	"bytes"
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	"github.com/argand-io/argand/internal/cplx"
)

//go:embed schema.sql
var schemaSQL string

// Store is a SQLite database holding complex values under the type's own
// collation. It exists to exercise the extension against a real engine's
// B-tree; it is not a general-purpose storage layer.
type Store struct {
	db *sql.DB
}

// Point is one stored row.
type Point struct {
	Label string
	Value cplx.Value
}

// Open creates or opens the database at path with the extension driver.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode
//   - 5-second busy timeout for lock contention
//
// Idempotent: safe to call on an existing database.
func Open(path string) (*Store, error) {
	ensureDriver()

	db, err := sql.Open(DriverName, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite supports one writer at a time; a single connection avoids
	// SQLITE_BUSY and guarantees the connect hook ran for every statement.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Insert stores one value under a unique label. The row carries both the
// canonical text form (what the index orders) and the wire image (what
// Lookup verifies).
func (s *Store) Insert(ctx context.Context, label string, v cplx.Value) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO points (label, value, wire) VALUES (?, ?, ?)
	`, label, cplx.Format(v), cplx.Encode(v))
	if err != nil {
		return fmt.Errorf("insert %s: %w", label, err)
	}
	return nil
}

// Lookup returns the value stored under label, decoding the wire image and
// cross-checking it against the text column. A mismatch means the row was
// corrupted outside this package and is reported, not repaired.
func (s *Store) Lookup(ctx context.Context, label string) (cplx.Value, error) {
	var text string
	var wire []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT value, wire FROM points WHERE label = ?
	`, label).Scan(&text, &wire)
	if err != nil {
		return cplx.Value{}, fmt.Errorf("lookup %s: %w", label, err)
	}

	v, err := cplx.Decode(wire)
	if err != nil {
		return cplx.Value{}, fmt.Errorf("lookup %s: %w", label, err)
	}
	if !bytes.Equal(wire, cplx.Encode(v)) || cplx.Format(v) != text {
		return cplx.Value{}, fmt.Errorf("lookup %s: text and wire images disagree", label)
	}
	return v, nil
}

// RangeScan returns every stored value v with lo <= v <= hi in the
// magnitude order, ascending. The comparison and the ordering both run
// inside SQLite under the COMPLEX_MAG collation, through the index
// declared in the schema.
func (s *Store) RangeScan(ctx context.Context, lo, hi cplx.Value) ([]Point, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT label, wire FROM points
		WHERE value >= ? AND value <= ?
		ORDER BY value COLLATE COMPLEX_MAG ASC, label ASC
	`, cplx.Format(lo), cplx.Format(hi))
	if err != nil {
		return nil, fmt.Errorf("range scan: %w", err)
	}
	defer rows.Close()

	var out []Point
	for rows.Next() {
		var p Point
		var wire []byte
		if err := rows.Scan(&p.Label, &wire); err != nil {
			return nil, fmt.Errorf("range scan: %w", err)
		}
		if p.Value, err = cplx.Decode(wire); err != nil {
			return nil, fmt.Errorf("range scan: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// SumAll folds every stored value with the sum aggregate and returns the
// total.
func (s *Store) SumAll(ctx context.Context) (cplx.Value, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT wire FROM points`)
	if err != nil {
		return cplx.Value{}, fmt.Errorf("sum: %w", err)
	}
	defer rows.Close()

	sum := cplx.NewSum()
	for rows.Next() {
		var wire []byte
		if err := rows.Scan(&wire); err != nil {
			return cplx.Value{}, fmt.Errorf("sum: %w", err)
		}
		v, err := cplx.Decode(wire)
		if err != nil {
			return cplx.Value{}, fmt.Errorf("sum: %w", err)
		}
		sum.Step(v)
	}
	return sum.Result(), rows.Err()
}

// Count returns the number of stored rows.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM points`).Scan(&n)
	return n, err
}

// DB returns the underlying sql.DB for direct queries. Used by tests to
// exercise the registered SQL functions; prefer the typed methods
// elsewhere.
func (s *Store) DB() *sql.DB {
	return s.db
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}
