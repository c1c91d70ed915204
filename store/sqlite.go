// Package store persists normalized frames to the SQLite relational
// store and the multi-sheet Excel artifact, and reads them back for
// analysis.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"benchlens/normalize"
)

// DB wraps one SQLite store. Connections are scoped per operation:
// open, use, close.
type DB struct {
	db *sql.DB
}

// Open opens (or creates) the store at path, creating parent
// directories as needed.
func Open(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("store: create dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	return &DB{db: db}, nil
}

func (s *DB) Close() error {
	return s.db.Close()
}

// TableNames lists the user tables in the store, sorted.
func (s *DB) TableNames() ([]string, error) {
	rows, err := s.db.Query(`SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

// DropAll drops every user table in the store.
func (s *DB) DropAll() error {
	names, err := s.TableNames()
	if err != nil {
		return err
	}
	for _, name := range names {
		if _, err := s.db.Exec(fmt.Sprintf(`DROP TABLE IF EXISTS %s`, quoteIdent(name))); err != nil {
			return fmt.Errorf("store: drop table %s: %w", name, err)
		}
	}
	return nil
}

// WriteFrame writes a frame as a table. When appendRows is false the
// table is replaced; when true, rows are added to the existing
// contents. Column types are inferred from the first non-missing cell
// of each column.
func (s *DB) WriteFrame(name string, f *normalize.Frame, appendRows bool) error {
	if !appendRows {
		if _, err := s.db.Exec(fmt.Sprintf(`DROP TABLE IF EXISTS %s`, quoteIdent(name))); err != nil {
			return fmt.Errorf("store: replace table %s: %w", name, err)
		}
	}

	defs := make([]string, len(f.Cols))
	for i, col := range f.Cols {
		defs[i] = fmt.Sprintf("%s %s", quoteIdent(col), columnType(f, i))
	}
	create := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (%s)`, quoteIdent(name), strings.Join(defs, ", "))
	if _, err := s.db.Exec(create); err != nil {
		return fmt.Errorf("store: create table %s: %w", name, err)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(f.Cols)), ", ")
	insert := fmt.Sprintf(`INSERT INTO %s VALUES (%s)`, quoteIdent(name), placeholders)

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(insert)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, row := range f.Rows {
		args := make([]any, len(row))
		for i, c := range row {
			args[i] = cellValue(c)
		}
		if _, err := stmt.Exec(args...); err != nil {
			tx.Rollback()
			return fmt.Errorf("store: insert into %s: %w", name, err)
		}
	}
	return tx.Commit()
}

// ReadFrame reads a full table back into a frame.
func (s *DB) ReadFrame(name string) (*normalize.Frame, error) {
	rows, err := s.db.Query(fmt.Sprintf(`SELECT * FROM %s`, quoteIdent(name)))
	if err != nil {
		return nil, fmt.Errorf("store: read table %s: %w", name, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	f := normalize.New(cols...)
	for rows.Next() {
		raw := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		cells := make([]normalize.Cell, len(cols))
		for i, v := range raw {
			cells[i] = scanCell(v)
		}
		if err := f.Append(cells...); err != nil {
			return nil, err
		}
	}
	return f, rows.Err()
}

// FramesToDB writes each named frame to its own table in the store at
// path. dropAll removes every pre-existing table first. There is no
// partial-failure rollback across tables.
func FramesToDB(frames map[string]*normalize.Frame, path string, dropAll, appendRows bool) error {
	s, err := Open(path)
	if err != nil {
		return err
	}
	defer s.Close()

	if dropAll {
		if err := s.DropAll(); err != nil {
			return err
		}
	}

	for _, name := range sortedKeys(frames) {
		if err := s.WriteFrame(name, frames[name], appendRows); err != nil {
			return err
		}
	}
	return nil
}

// TableNames lists the user tables of the store at path.
func TableNames(path string) ([]string, error) {
	s, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	return s.TableNames()
}

func sortedKeys(frames map[string]*normalize.Frame) []string {
	keys := make([]string, 0, len(frames))
	for k := range frames {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func columnType(f *normalize.Frame, col int) string {
	for _, row := range f.Rows {
		switch row[col].Kind {
		case normalize.Number:
			return "REAL"
		case normalize.Timestamp:
			return "TIMESTAMP"
		case normalize.Text:
			return "TEXT"
		}
	}
	return "TEXT"
}

func cellValue(c normalize.Cell) any {
	switch c.Kind {
	case normalize.Number:
		return c.Num
	case normalize.Timestamp:
		return c.When
	case normalize.Text:
		return c.Str
	}
	return nil
}

func scanCell(v any) normalize.Cell {
	switch x := v.(type) {
	case nil:
		return normalize.Cell{}
	case float64:
		return normalize.NumberCell(x)
	case int64:
		return normalize.NumberCell(float64(x))
	case time.Time:
		return normalize.TimeCell(x)
	case string:
		return normalize.TextCell(x)
	case []byte:
		return normalize.TextCell(string(x))
	}
	return normalize.TextCell(fmt.Sprint(v))
}
