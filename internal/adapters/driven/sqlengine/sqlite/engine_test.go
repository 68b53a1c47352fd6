package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnemo-labs/mnemo-cli/internal/core/domain"
)

// fixtureBytes builds a real SQLite file by opening an empty database,
// executing DDL/DML through the engine itself, and exporting it.
func fixtureBytes(t *testing.T, statements ...string) []byte {
	t.Helper()
	engine := NewEngine(t.TempDir())
	db, err := engine.Open(context.Background(), nil)
	require.NoError(t, err)
	defer db.Close()

	for _, statement := range statements {
		_, err := db.Query(context.Background(), statement)
		require.NoError(t, err, statement)
	}

	data, err := db.Export(context.Background())
	require.NoError(t, err)
	return data
}

func TestEngine_OpenRejectsGarbage(t *testing.T) {
	engine := NewEngine(t.TempDir())

	_, err := engine.Open(context.Background(), []byte("definitely not sqlite"))
	assert.ErrorIs(t, err, domain.ErrOpen)
}

func TestEngine_RoundTrip(t *testing.T) {
	data := fixtureBytes(t,
		`CREATE TABLE cards (id INTEGER PRIMARY KEY, nid INTEGER, did INTEGER, ord INTEGER);`,
		`INSERT INTO cards VALUES (1, 10, 1, 0);`,
		`INSERT INTO cards VALUES (2, 11, 1, 0);`,
	)

	engine := NewEngine(t.TempDir())
	db, err := engine.Open(context.Background(), data)
	require.NoError(t, err)
	defer db.Close()

	rows, err := db.Query(context.Background(), `SELECT * from cards;`)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, []string{"id", "nid", "did", "ord"}, rows[0].Columns)
	id, ok := rows[0].Int64("id")
	require.True(t, ok)
	assert.Equal(t, int64(1), id)
	nid, _ := rows[0].Int64("nid")
	assert.Equal(t, int64(10), nid)
}

func TestEngine_QueryError(t *testing.T) {
	engine := NewEngine(t.TempDir())
	db, err := engine.Open(context.Background(), nil)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Query(context.Background(), `SELECT * from no_such_table;`)
	assert.ErrorIs(t, err, domain.ErrQuery)
}

func TestEngine_TextAndNullValues(t *testing.T) {
	data := fixtureBytes(t,
		`CREATE TABLE notes (id INTEGER PRIMARY KEY, flds TEXT, extra TEXT);`,
		"INSERT INTO notes VALUES (10, 'front'||char(31)||'back', NULL);",
	)

	engine := NewEngine(t.TempDir())
	db, err := engine.Open(context.Background(), data)
	require.NoError(t, err)
	defer db.Close()

	rows, err := db.Query(context.Background(), `SELECT * from notes;`)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "front\x1fback", rows[0].String("flds"))
	assert.Equal(t, "", rows[0].String("extra"))
}

func TestEngine_ExportRoundTrips(t *testing.T) {
	data := fixtureBytes(t,
		`CREATE TABLE t (id INTEGER PRIMARY KEY, v TEXT);`,
		`INSERT INTO t VALUES (1, 'x');`,
	)

	engine := NewEngine(t.TempDir())
	db, err := engine.Open(context.Background(), data)
	require.NoError(t, err)
	exported, err := db.Export(context.Background())
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Exported bytes open again and serve the same rows.
	db2, err := engine.Open(context.Background(), exported)
	require.NoError(t, err)
	defer db2.Close()
	rows, err := db2.Query(context.Background(), `SELECT * from t;`)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "x", rows[0].String("v"))
}

func TestDatabase_CloseRemovesScratchFile(t *testing.T) {
	engine := NewEngine(t.TempDir())
	db, err := engine.Open(context.Background(), nil)
	require.NoError(t, err)

	handle, ok := db.(*Database)
	require.True(t, ok)
	path := handle.Path()
	require.FileExists(t, path)

	require.NoError(t, db.Close())
	assert.NoFileExists(t, path)
}
