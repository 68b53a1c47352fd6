package cli

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mnemo-labs/mnemo-cli/internal/adapters/driven/sqlengine/sqlite"
)

// collectionBytes builds a real collection database by executing DDL/DML
// through the SQLite engine and exporting the result.
func collectionBytes(t *testing.T) []byte {
	t.Helper()
	engine := sqlite.NewEngine(t.TempDir())
	db, err := engine.Open(context.Background(), nil)
	require.NoError(t, err)
	defer db.Close()

	statements := []string{
		`CREATE TABLE cards (id INTEGER PRIMARY KEY, nid INTEGER, did INTEGER, ord INTEGER);`,
		`CREATE TABLE notes (id INTEGER PRIMARY KEY, mid INTEGER, tags TEXT, flds TEXT);`,
		`CREATE TABLE revlog (id INTEGER PRIMARY KEY, cid INTEGER);`,
		`CREATE TABLE col (id INTEGER PRIMARY KEY, decks TEXT, models TEXT);`,
		`INSERT INTO cards VALUES (1, 100, 10, 0);`,
		`INSERT INTO cards VALUES (2, 101, 20, 0);`,
		"INSERT INTO notes VALUES (100, 1000, ' geo ', 'Capital of France'||char(31)||'Paris');",
		"INSERT INTO notes VALUES (101, 1000, '', 'Largest ocean'||char(31)||'Pacific');",
		`INSERT INTO revlog VALUES (1, 1);`,
		`INSERT INTO col VALUES (1,
			'{"10": {"id": 10, "name": "Geography"}, "20": {"id": 20, "name": "Oceans"}}',
			'{"1000": {"id": 1000, "name": "Basic",
				"flds": [{"name": "Front", "ord": 0}, {"name": "Back", "ord": 1}],
				"tmpls": [{"name": "Card 1", "ord": 0, "qfmt": "{{Front}}", "afmt": "{{FrontSide}}<hr>{{Back}}"}],
				"css": ".card { color: black; }"}}');`,
	}
	for _, statement := range statements {
		_, err := db.Query(context.Background(), statement)
		require.NoError(t, err, statement)
	}

	data, err := db.Export(context.Background())
	require.NoError(t, err)
	return data
}

// writeCollection writes a bare collection database file and returns its path.
func writeCollection(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "collection.anki2")
	require.NoError(t, os.WriteFile(path, collectionBytes(t), 0o644))
	return path
}

// writePackage writes a zip package wrapping the database plus one media
// entry and returns its path.
func writePackage(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	f, err := w.Create("collection.anki21")
	require.NoError(t, err)
	_, err = f.Write(collectionBytes(t))
	require.NoError(t, err)

	f, err = w.Create("media")
	require.NoError(t, err)
	_, err = f.Write([]byte(`{"0": "map.png"}`))
	require.NoError(t, err)

	f, err = w.Create("0")
	require.NoError(t, err)
	_, err = f.Write([]byte("png bytes"))
	require.NoError(t, err)

	require.NoError(t, w.Close())

	path := filepath.Join(t.TempDir(), "deck.apkg")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

// execute runs the root command with args and returns combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(append([]string{"--config-dir", t.TempDir()}, args...))
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}
