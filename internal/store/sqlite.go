// Package store persists the consolidated record set to SQLite with
// full-table replace semantics: every run drops and rewrites the
// output table, there is no upsert path. The database is opened and
// closed per write so no lock outlives a pipeline phase.
package store

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/yokomichi/chintaiscan/internal/model"
)

// Store writes and reads the output table named in config.
type Store struct {
	path  string
	table string
}

// New creates a store for the configured database path and table.
func New(cfg model.StoreConfig) *Store {
	return &Store{path: cfg.Path, table: cfg.Table}
}

// Replace drops the table and rewrites it with the given records, in
// order. Row position is the implicit downstream identity, so insert
// order must match slice order.
func (s *Store) Replace(records []model.Record) (err error) {
	db, err := sql.Open("sqlite3", s.path)
	if err != nil {
		return fmt.Errorf("open %s: %w", s.path, err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close database: %w", closeErr)
		}
	}()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.Exec(fmt.Sprintf(`DROP TABLE IF EXISTS %s`, quote(s.table))); err != nil {
		return fmt.Errorf("drop table: %w", err)
	}
	if _, err = tx.Exec(createTableSQL(s.table)); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	stmt, err := tx.Prepare(insertSQL(s.table))
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i := range records {
		if _, err = stmt.Exec(records[i].RowValues()...); err != nil {
			return fmt.Errorf("insert row %d: %w", i, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Load reads the table back in row order. Used between the two write
// phases: the enricher works from what phase one persisted.
func (s *Store) Load() (records []model.Record, err error) {
	db, err := sql.Open("sqlite3", s.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close database: %w", closeErr)
		}
	}()

	rows, err := db.Query(selectSQL(s.table))
	if err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var rec model.Record
		if err := rows.Scan(rec.ScanDests()...); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate: %w", err)
	}
	return records, nil
}

func quote(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

func createTableSQL(table string) string {
	cols := make([]string, len(model.Columns))
	for i, c := range model.Columns {
		cols[i] = quote(c.Name) + " " + c.SQLType
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", quote(table), strings.Join(cols, ", "))
}

func insertSQL(table string) string {
	names := make([]string, len(model.Columns))
	marks := make([]string, len(model.Columns))
	for i, c := range model.Columns {
		names[i] = quote(c.Name)
		marks[i] = "?"
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quote(table), strings.Join(names, ", "), strings.Join(marks, ", "))
}

func selectSQL(table string) string {
	names := make([]string, len(model.Columns))
	for i, c := range model.Columns {
		names[i] = quote(c.Name)
	}
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(names, ", "), quote(table))
}
