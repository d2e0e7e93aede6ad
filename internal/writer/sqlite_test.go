package writer

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rowkit/internal/record"
)

func TestWriteSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.db")
	tbl := record.NewTable("name", "age")
	tbl.Rows = []record.Record{
		{"name": "ada", "age": 36.0},
		{"name": "grace", "age": "41"},
	}

	require.NoError(t, WriteSQLite(tbl, path, ""))

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	rows, err := db.Query(`SELECT "name", "age" FROM "records" ORDER BY rowid`)
	require.NoError(t, err)
	defer rows.Close()

	var got [][2]string
	for rows.Next() {
		var name, age string
		require.NoError(t, rows.Scan(&name, &age))
		got = append(got, [2]string{name, age})
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, [][2]string{{"ada", "36"}, {"grace", "41"}}, got)
}

func TestWriteSQLiteReplacesExistingTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.db")
	tbl := record.NewTable("name")
	tbl.Rows = []record.Record{{"name": "ada"}, {"name": "grace"}}
	require.NoError(t, WriteSQLite(tbl, path, "people"))

	tbl2 := record.NewTable("name")
	tbl2.Rows = []record.Record{{"name": "solo"}}
	require.NoError(t, WriteSQLite(tbl2, path, "people"))

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM "people"`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestWriteSQLiteNoColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.db")
	err := WriteSQLite(record.NewTable(), path, "")
	assert.Error(t, err)
}
