// Package sqliteload writes a tabular file into a SQLite table. The whole
// source is materialized once; every column is stored as TEXT.
package sqliteload

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/tabular-tools/chunkctl/pkg/tabular"
)

// Options control the load destination. Zero values are derived from the
// source path: <stem>.db next to the source, table named after the stem.
type Options struct {
	DBPath    string
	TableName string
}

// Result describes a completed load.
type Result struct {
	DBPath    string
	TableName string
	Rows      int
}

var invalidIdentChars = regexp.MustCompile(`[^A-Za-z0-9_]`)

// Load reads sourcePath and writes its rows into a SQLite table. An
// existing table of the same name is dropped and recreated.
func Load(sourcePath string, opts Options) (*Result, error) {
	table, err := tabular.Read(sourcePath)
	if err != nil {
		return nil, err
	}

	base := filepath.Base(sourcePath)
	sourceStem := strings.TrimSuffix(base, filepath.Ext(base))
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = filepath.Join(filepath.Dir(sourcePath), sourceStem+".db")
	}
	tableName := opts.TableName
	if tableName == "" {
		tableName = sanitizeIdentifier(sourceStem)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", dbPath, err)
	}
	defer db.Close()

	columns := columnNames(table.Header)
	if err := createTable(db, tableName, columns); err != nil {
		return nil, err
	}
	if err := insertRows(db, tableName, columns, table.Rows); err != nil {
		return nil, err
	}

	return &Result{DBPath: dbPath, TableName: tableName, Rows: table.RowCount()}, nil
}

func createTable(db *sql.DB, tableName string, columns []string) error {
	if _, err := db.Exec(fmt.Sprintf(`DROP TABLE IF EXISTS "%s"`, tableName)); err != nil {
		return fmt.Errorf("drop table %s: %w", tableName, err)
	}
	defs := make([]string, len(columns))
	for i, col := range columns {
		defs[i] = fmt.Sprintf(`"%s" TEXT`, col)
	}
	stmt := fmt.Sprintf(`CREATE TABLE "%s" (%s)`, tableName, strings.Join(defs, ", "))
	if _, err := db.Exec(stmt); err != nil {
		return fmt.Errorf("create table %s: %w", tableName, err)
	}
	return nil
}

func insertRows(db *sql.DB, tableName string, columns []string, rows [][]string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(columns)), ",")
	stmt, err := tx.Prepare(fmt.Sprintf(`INSERT INTO "%s" VALUES (%s)`, tableName, placeholders))
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, row := range rows {
		values := make([]interface{}, len(columns))
		for i := range columns {
			if i < len(row) {
				values[i] = row[i]
			} else {
				// Short rows pad with NULL.
				values[i] = nil
			}
		}
		if _, err := stmt.Exec(values...); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert into %s: %w", tableName, err)
		}
	}
	return tx.Commit()
}

// columnNames sanitizes header cells into unique SQLite identifiers.
func columnNames(header []string) []string {
	names := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, cell := range header {
		name := sanitizeIdentifier(cell)
		if name == "" {
			name = fmt.Sprintf("col_%d", i+1)
		}
		if n := seen[name]; n > 0 {
			seen[name]++
			name = fmt.Sprintf("%s_%d", name, n+1)
		} else {
			seen[name] = 1
		}
		names[i] = name
	}
	return names
}

func sanitizeIdentifier(s string) string {
	s = invalidIdentChars.ReplaceAllString(strings.TrimSpace(s), "_")
	s = strings.Trim(s, "_")
	if s == "" {
		return ""
	}
	if s[0] >= '0' && s[0] <= '9' {
		s = "t_" + s
	}
	return s
}
