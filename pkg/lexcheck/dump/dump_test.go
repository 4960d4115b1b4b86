package dump

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gregpoulos/panlex-error-correction/pkg/lexcheck/internalerr"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		line string
		want Entry
	}{
		{"17,café,3", Entry{"17", "café", 3}},
		{"18,one, two, three,12", Entry{"18", "one, two, three", 12}},
		{"19,,0", Entry{"19", "", 0}},
		{"20, padded ,4", Entry{"20", " padded ", 4}},
	}
	for _, tt := range tests {
		got, err := ParseLine(tt.line)
		require.NoError(t, err, tt.line)
		assert.Equal(t, tt.want, got, tt.line)
	}
}

func TestParseLineMalformed(t *testing.T) {
	for _, line := range []string{"", "17", "17,3", "17,text,many"} {
		_, err := ParseLine(line)
		assert.ErrorIs(t, err, internalerr.ErrMalformedRow, line)
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCSVSource(t *testing.T) {
	path := writeFile(t, "dump.csv", "1,naïve,10\r\n2,naive,2\n3,a,b,c,1\n")

	entries, err := CSVSource{Path: path}.Entries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{"1", "naïve", 10},
		{"2", "naive", 2},
		{"3", "a,b,c", 1},
	}, entries)
}

func TestCSVSourceReportsLine(t *testing.T) {
	path := writeFile(t, "dump.csv", "1,ok,1\nbroken\n")

	_, err := CSVSource{Path: path}.Entries(context.Background())
	require.ErrorIs(t, err, internalerr.ErrMalformedRow)
	assert.Contains(t, err.Error(), ":2:")
}

func TestCSVSourceMissing(t *testing.T) {
	_, err := CSVSource{Path: filepath.Join(t.TempDir(), "nope.csv")}.Entries(context.Background())
	require.ErrorIs(t, err, internalerr.ErrUnreadable)
}

func TestCSVSourceCancelled(t *testing.T) {
	path := writeFile(t, "dump.csv", "1,a,1\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := CSVSource{Path: path}.Entries(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestOpenByExtension(t *testing.T) {
	assert.Equal(t, SQLiteSource{Path: "x.db", Query: "q"}, Open("x.db", "q"))
	assert.Equal(t, SQLiteSource{Path: "x.SQLITE3", Query: "q"}, Open("x.SQLITE3", "q"))
	assert.Equal(t, CSVSource{Path: "x.csv"}, Open("x.csv", "q"))
	assert.Equal(t, CSVSource{Path: "dump"}, Open("dump", "q"))
}

func createDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dump.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE expressions (id INTEGER PRIMARY KEY, text TEXT NOT NULL, count INTEGER)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO expressions (id, text, count) VALUES (1, 'naïve', 10), (2, 'naive', 2), (3, 'a,b', NULL)`)
	require.NoError(t, err)
	return path
}

func TestSQLiteSource(t *testing.T) {
	path := createDB(t)

	entries, err := SQLiteSource{Path: path}.Entries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{"1", "naïve", 10},
		{"2", "naive", 2},
		{"3", "a,b", 0},
	}, entries)
}

func TestSQLiteSourceCustomQuery(t *testing.T) {
	path := createDB(t)

	entries, err := SQLiteSource{
		Path:  path,
		Query: "SELECT id, text, count FROM expressions WHERE count > 5",
	}.Entries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Entry{{"1", "naïve", 10}}, entries)
}

func TestSQLiteSourceIsReadOnly(t *testing.T) {
	path := createDB(t)

	_, err := SQLiteSource{Path: path, Query: "DELETE FROM expressions RETURNING id, text, count"}.Entries(context.Background())
	require.Error(t, err)

	entries, err := SQLiteSource{Path: path}.Entries(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestSQLiteSourceErrors(t *testing.T) {
	_, err := SQLiteSource{Path: filepath.Join(t.TempDir(), "missing.db")}.Entries(context.Background())
	require.ErrorIs(t, err, internalerr.ErrUnreadable)

	path := createDB(t)
	_, err = SQLiteSource{Path: path, Query: "SELECT id FROM nowhere"}.Entries(context.Background())
	require.ErrorIs(t, err, internalerr.ErrSourceUnusable)

	_, err = SQLiteSource{Path: path, Query: "SELECT id, text FROM expressions"}.Entries(context.Background())
	require.ErrorIs(t, err, internalerr.ErrMalformedRow)
}
