package sqlite

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/mnemo-labs/mnemo-cli/internal/core/domain"
	"github.com/mnemo-labs/mnemo-cli/internal/core/ports/driven"
)

// Ensure Engine implements the interface.
var _ driven.SQLEngine = (*Engine)(nil)

// sqliteMagic is the 16-byte header every SQLite 3 file starts with.
var sqliteMagic = []byte("SQLite format 3\x00")

// Engine opens byte buffers as SQLite databases.
type Engine struct {
	dir string
}

// NewEngine creates an engine staging scratch files in dir.
// An empty dir uses the system temp directory.
func NewEngine(dir string) *Engine {
	return &Engine{dir: dir}
}

// Open stages the buffer in a scratch file and opens it. A non-empty
// buffer without the SQLite header is rejected up front; an empty buffer
// opens as a fresh database.
func (e *Engine) Open(ctx context.Context, data []byte) (driven.Database, error) {
	if len(data) > 0 && !bytes.HasPrefix(data, sqliteMagic) {
		return nil, fmt.Errorf("not a SQLite file: %w", domain.ErrOpen)
	}

	f, err := os.CreateTemp(e.dir, "mnemo-*.db")
	if err != nil {
		return nil, fmt.Errorf("staging database: %v: %w", err, domain.ErrOpen)
	}
	path := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(path)
		return nil, fmt.Errorf("staging database: %v: %w", err, domain.ErrOpen)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("staging database: %v: %w", err, domain.ErrOpen)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("opening database: %v: %w", err, domain.ErrOpen)
	}

	// Force a real read so corrupt payloads fail here, not mid-projection.
	var version int
	if err := db.QueryRowContext(ctx, "PRAGMA schema_version;").Scan(&version); err != nil {
		db.Close()
		os.Remove(path)
		return nil, fmt.Errorf("validating database: %v: %w", err, domain.ErrOpen)
	}

	return &Database{db: db, path: path}, nil
}

// Database is one open SQLite handle backed by a scratch file.
type Database struct {
	db   *sql.DB
	path string
}

// Ensure Database implements the interface.
var _ driven.Database = (*Database)(nil)

// Query executes SQL text and returns every row with column order
// preserved. Byte slices are copied out of the driver's buffers.
func (d *Database) Query(ctx context.Context, sqlText string) ([]domain.Row, error) {
	rows, err := d.db.QueryContext(ctx, sqlText)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrQuery)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrQuery)
	}

	var result []domain.Row
	for rows.Next() {
		raw := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("%v: %w", err, domain.ErrQuery)
		}

		values := make(map[string]any, len(columns))
		for i, column := range columns {
			if b, ok := raw[i].([]byte); ok {
				values[column] = append([]byte(nil), b...)
				continue
			}
			values[column] = raw[i]
		}
		result = append(result, domain.Row{Columns: columns, Values: values})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrQuery)
	}
	return result, nil
}

// Export checkpoints the WAL and reads the scratch file back to bytes.
func (d *Database) Export(ctx context.Context) ([]byte, error) {
	if _, err := d.db.ExecContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE);"); err != nil {
		return nil, fmt.Errorf("checkpoint: %v: %w", err, domain.ErrQuery)
	}
	data, err := os.ReadFile(d.path)
	if err != nil {
		return nil, fmt.Errorf("reading database: %v: %w", err, domain.ErrQuery)
	}
	return data, nil
}

// Path returns the scratch file path.
func (d *Database) Path() string {
	return d.path
}

// Close closes the handle and removes the scratch file.
func (d *Database) Close() error {
	err := d.db.Close()
	if removeErr := os.Remove(d.path); err == nil {
		err = removeErr
	}
	return err
}
