package db

import (
	"database/sql"
	"strings"

	"tudo/internal/models"
)

const itemColumns = "id, list_id, name, is_done, priority, due_date, rank, created_at, updated_at"

func scanItem(row interface{ Scan(...interface{}) error }, it *models.TodoItem) error {
	return row.Scan(&it.ID, &it.ListID, &it.Name, &it.IsDone, &it.Priority, &it.DueDate, &it.Rank, &it.CreatedAt, &it.UpdatedAt)
}

// CreateItem creates a new item at the end of the given list. The list must
// exist.
func (db *DB) CreateItem(listID int64, name string) (*models.TodoItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRow("SELECT 1 FROM lists WHERE id = ?", listID).Scan(&exists)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	ranks, err := siblingRanks(tx, "SELECT rank FROM items WHERE list_id = ? ORDER BY rank", listID)
	if err != nil {
		return nil, err
	}

	result, err := tx.Exec(`
		INSERT INTO items (list_id, name, rank) VALUES (?, ?, ?)
	`, listID, name, NextRank(ranks))
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

	return db.GetItem(id)
}

// GetItem retrieves an item by ID
func (db *DB) GetItem(id int64) (*models.TodoItem, error) {
	it := &models.TodoItem{}
	err := scanItem(db.QueryRow(`
		SELECT `+itemColumns+` FROM items WHERE id = ?
	`, id), it)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return it, nil
}

// ItemsOrdered returns all items of one list by ascending rank. This is the
// only read path used to discover item order.
func (db *DB) ItemsOrdered(listID int64) ([]models.TodoItem, error) {
	rows, err := db.Query(`
		SELECT `+itemColumns+` FROM items WHERE list_id = ? ORDER BY rank
	`, listID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.TodoItem
	for rows.Next() {
		var it models.TodoItem
		if err := scanItem(rows, &it); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// RenameItem updates an item's name
func (db *DB) RenameItem(id int64, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameRequired
	}

	result, err := db.Exec(`
		UPDATE items SET name = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, name, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// ToggleItem flips an item's done flag
func (db *DB) ToggleItem(id int64) error {
	result, err := db.Exec(`
		UPDATE items SET is_done = NOT is_done, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// SetItemPriority sets or clears (nil) an item's priority
func (db *DB) SetItemPriority(id int64, priority *string) error {
	result, err := db.Exec(`
		UPDATE items SET priority = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, priority, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// SetItemDueDate sets or clears (nil) an item's due date. The value is kept
// as typed, no parsing.
func (db *DB) SetItemDueDate(id int64, dueDate *string) error {
	result, err := db.Exec(`
		UPDATE items SET due_date = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, dueDate, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// DeleteItem deletes an item and renumbers its surviving siblings in the
// same transaction.
func (db *DB) DeleteItem(id int64) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var listID int64
	err = tx.QueryRow("SELECT list_id FROM items WHERE id = ?", id).Scan(&listID)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if _, err := tx.Exec("DELETE FROM items WHERE id = ?", id); err != nil {
		return err
	}

	ids, err := siblingIDs(tx, "SELECT id FROM items WHERE list_id = ? ORDER BY rank", listID)
	if err != nil {
		return err
	}
	if err := applyRanks(tx,
		"UPDATE items SET rank = rank + ? WHERE list_id = ?",
		"UPDATE items SET rank = ? WHERE id = ?",
		RenumberPlan(ids),
		listID,
	); err != nil {
		return err
	}

	return tx.Commit()
}

// MoveItem moves an item one position up (delta -1) or down (delta +1)
// within its list. Moving past either end is a successful no-op.
func (db *DB) MoveItem(id int64, delta int) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var listID int64
	err = tx.QueryRow("SELECT list_id FROM items WHERE id = ?", id).Scan(&listID)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	ids, err := siblingIDs(tx, "SELECT id FROM items WHERE list_id = ? ORDER BY rank", listID)
	if err != nil {
		return err
	}

	plan, err := movePlanFor(ids, id, delta)
	if err != nil {
		return err
	}
	if err := applyRanks(tx,
		"UPDATE items SET rank = rank + ? WHERE list_id = ?",
		"UPDATE items SET rank = ? WHERE id = ?",
		plan,
		listID,
	); err != nil {
		return err
	}
	if len(plan) > 0 {
		if _, err := tx.Exec("UPDATE items SET updated_at = CURRENT_TIMESTAMP WHERE id = ?", id); err != nil {
			return err
		}
	}

	return tx.Commit()
}
