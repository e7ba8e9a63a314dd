package db

import (
	"database/sql"
	_ "embed"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schema string

// DB wraps the database connection
type DB struct {
	*sql.DB
}

// Open opens (or creates) the database at path and initializes the schema.
func Open(path string) (*DB, error) {
	sqldb, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, err
	}

	if _, err := sqldb.Exec(schema); err != nil {
		sqldb.Close()
		return nil, err
	}

	return &DB{sqldb}, nil
}

// DefaultPath returns the default database file path, creating the data
// directory if needed.
func DefaultPath() (string, error) {
	// Use XDG data directory or fallback to home directory
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataDir = filepath.Join(home, ".local", "share")
	}

	appDir := filepath.Join(dataDir, "tudo")
	if err := os.MkdirAll(appDir, 0755); err != nil {
		return "", err
	}

	return filepath.Join(appDir, "tudo.db"), nil
}

// siblingIDs returns the ids of one sibling set in rank order, within tx.
func siblingIDs(tx *sql.Tx, query string, args ...interface{}) ([]int64, error) {
	rows, err := tx.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// applyRanks applies a renumbering plan inside tx. Existing ranks are first
// shifted past every old and new rank so the unique rank index never sees an
// intermediate collision. After a deletion the survivors' old ranks run up
// to len(plan), not len(plan)-1, so the shift must clear one extra slot:
// SQLite checks the index per updated row, and a shift by only len(plan)
// would land the lowest-ranked survivor on the not-yet-shifted highest one.
func applyRanks(tx *sql.Tx, shiftStmt, updateStmt string, plan []RankUpdate, shiftArgs ...interface{}) error {
	if len(plan) == 0 {
		return nil
	}
	args := append([]interface{}{len(plan) + 1}, shiftArgs...)
	if _, err := tx.Exec(shiftStmt, args...); err != nil {
		return err
	}
	for _, u := range plan {
		if _, err := tx.Exec(updateStmt, u.Rank, u.ID); err != nil {
			return err
		}
	}
	return nil
}
