package db

import (
	"database/sql"
	"strings"

	"tudo/internal/models"
)

const listColumns = "id, name, rank, created_at, updated_at"

// CreateList creates a new list appended after the existing ones.
func (db *DB) CreateList(name string) (*models.TodoList, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	ranks, err := siblingRanks(tx, "SELECT rank FROM lists ORDER BY rank")
	if err != nil {
		return nil, err
	}

	result, err := tx.Exec(`
		INSERT INTO lists (name, rank) VALUES (?, ?)
	`, name, NextRank(ranks))
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return db.GetList(id)
}

// GetList retrieves a list by ID
func (db *DB) GetList(id int64) (*models.TodoList, error) {
	l := &models.TodoList{}
	err := db.QueryRow(`
		SELECT `+listColumns+` FROM lists WHERE id = ?
	`, id).Scan(&l.ID, &l.Name, &l.Rank, &l.CreatedAt, &l.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

// ListsOrdered returns all lists by ascending rank. This is the only read
// path used to discover list order.
func (db *DB) ListsOrdered() ([]models.TodoList, error) {
	rows, err := db.Query(`
		SELECT ` + listColumns + ` FROM lists ORDER BY rank
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lists []models.TodoList
	for rows.Next() {
		var l models.TodoList
		if err := rows.Scan(&l.ID, &l.Name, &l.Rank, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		lists = append(lists, l)
	}
	return lists, rows.Err()
}

// RenameList updates a list's name
func (db *DB) RenameList(id int64, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameRequired
	}

	result, err := db.Exec(`
		UPDATE lists SET name = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, name, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// DeleteList deletes a list and all its items, then renumbers the surviving
// lists so ranks stay contiguous. All of it commits or none of it does.
func (db *DB) DeleteList(id int64) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.Exec("DELETE FROM lists WHERE id = ?", id)
	if err != nil {
		return err
	}
	if err := requireRow(result); err != nil {
		return err
	}

	ids, err := siblingIDs(tx, "SELECT id FROM lists ORDER BY rank")
	if err != nil {
		return err
	}
	if err := applyRanks(tx,
		"UPDATE lists SET rank = rank + ?",
		"UPDATE lists SET rank = ? WHERE id = ?",
		RenumberPlan(ids),
	); err != nil {
		return err
	}

	return tx.Commit()
}

// MoveList moves a list one position up (delta -1) or down (delta +1).
// Moving past either end is a successful no-op.
func (db *DB) MoveList(id int64, delta int) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	ids, err := siblingIDs(tx, "SELECT id FROM lists ORDER BY rank")
	if err != nil {
		return err
	}

	plan, err := movePlanFor(ids, id, delta)
	if err != nil {
		return err
	}
	if err := applyRanks(tx,
		"UPDATE lists SET rank = rank + ?",
		"UPDATE lists SET rank = ? WHERE id = ?",
		plan,
	); err != nil {
		return err
	}
	if len(plan) > 0 {
		if _, err := tx.Exec("UPDATE lists SET updated_at = CURRENT_TIMESTAMP WHERE id = ?", id); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// movePlanFor locates id in the rank-ordered sibling ids and plans a move by
// delta positions, clamped to the set's bounds.
func movePlanFor(orderedIDs []int64, id int64, delta int) ([]RankUpdate, error) {
	from := -1
	for i, sid := range orderedIDs {
		if sid == id {
			from = i
			break
		}
	}
	if from < 0 {
		return nil, ErrNotFound
	}

	to := from + delta
	if to < 0 {
		to = 0
	}
	if to > len(orderedIDs)-1 {
		to = len(orderedIDs) - 1
	}
	return MovePlan(orderedIDs, from, to)
}

// siblingRanks returns the ranks of one sibling set in order, within tx.
func siblingRanks(tx *sql.Tx, query string, args ...interface{}) ([]int, error) {
	rows, err := tx.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ranks []int
	for rows.Next() {
		var r int
		if err := rows.Scan(&r); err != nil {
			return nil, err
		}
		ranks = append(ranks, r)
	}
	return ranks, rows.Err()
}

// requireRow maps a zero-row update to ErrNotFound.
func requireRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
