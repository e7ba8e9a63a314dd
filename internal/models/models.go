package models

import "time"

// Priority levels an item can carry. An item with no priority set is
// represented as a nil pointer, matching the nullable column.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// TodoList is an ordered collection of items. Rank is unique across all
// lists and defines display order.
type TodoList struct {
	ID        int64
	Name      string
	Rank      int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TodoItem is a single entry in a list. Rank is unique within the owning
// list. DueDate is stored as the text the user typed, no parsing.
type TodoItem struct {
	ID        int64
	ListID    int64
	Name      string
	IsDone    bool
	Priority  *string // nil if not set
	DueDate   *string // nil if not set
	Rank      int
	CreatedAt time.Time
	UpdatedAt time.Time
}
