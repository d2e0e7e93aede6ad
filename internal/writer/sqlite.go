package writer

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"rowkit/internal/record"
)

// DefaultSQLiteTable is the table name used when the caller passes "".
const DefaultSQLiteTable = "records"

// WriteSQLite writes the table to a SQLite database file. All columns are
// TEXT; values go through record.Render. An existing table of the same name
// is dropped first, and all inserts run in one transaction so a failed run
// leaves no partial table behind.
func WriteSQLite(t *record.Table, path, table string) (err error) {
	if table == "" {
		table = DefaultSQLiteTable
	}
	if len(t.Columns) == 0 {
		return fmt.Errorf("sqlite: table has no columns")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("sqlite: open %s: %w", path, err)
	}
	defer db.Close()

	quoted := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		quoted[i] = quoteIdent(col)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("sqlite: begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.Exec("DROP TABLE IF EXISTS " + quoteIdent(table)); err != nil {
		return fmt.Errorf("sqlite: drop table: %w", err)
	}
	create := fmt.Sprintf("CREATE TABLE %s (%s TEXT)", quoteIdent(table), strings.Join(quoted, " TEXT, "))
	if _, err = tx.Exec(create); err != nil {
		return fmt.Errorf("sqlite: create table: %w", err)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(t.Columns)), ", ")
	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(table), strings.Join(quoted, ", "), placeholders)
	stmt, err := tx.Prepare(insert)
	if err != nil {
		return fmt.Errorf("sqlite: prepare insert: %w", err)
	}
	defer stmt.Close()

	args := make([]any, len(t.Columns))
	for _, row := range t.Rows {
		for i, col := range t.Columns {
			args[i] = record.Render(row[col])
		}
		if _, err = stmt.Exec(args...); err != nil {
			return fmt.Errorf("sqlite: insert: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit: %w", err)
	}
	return nil
}

// quoteIdent double-quotes an identifier, escaping embedded quotes.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
