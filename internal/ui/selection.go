package ui

import "tudo/internal/models"

// Selection tracks the highlighted list and item by identity, with the last
// known positions kept so a deleted selection can fall back to whatever now
// occupies the same spot. Zero ids mean nothing is selected.
type Selection struct {
	ListID int64
	ItemID int64

	listPos int
	itemPos int
}

// SyncLists re-resolves the list selection against a fresh rank-ordered
// fetch. A surviving selection keeps its identity; a vanished one falls to
// the list at the same position, clamped to the new bounds. Whenever any
// list exists, one is selected.
func (s *Selection) SyncLists(lists []models.TodoList) {
	if len(lists) == 0 {
		*s = Selection{}
		return
	}

	if s.ListID != 0 {
		for i, l := range lists {
			if l.ID == s.ListID {
				s.listPos = i
				return
			}
		}
	}

	if s.listPos > len(lists)-1 {
		s.listPos = len(lists) - 1
	}
	s.ListID = lists[s.listPos].ID
	// The highlighted list changed, so the item selection is stale.
	s.ItemID = 0
	s.itemPos = 0
}

// SyncItems re-resolves the item selection against a fresh rank-ordered
// fetch of the selected list's items, with the same position fallback as
// SyncLists. A selection of "no item" is preserved.
func (s *Selection) SyncItems(items []models.TodoItem) {
	if s.ListID == 0 || len(items) == 0 || s.ItemID == 0 {
		s.ItemID = 0
		s.itemPos = 0
		return
	}

	for i, it := range items {
		if it.ID == s.ItemID {
			s.itemPos = i
			return
		}
	}

	if s.itemPos > len(items)-1 {
		s.itemPos = len(items) - 1
	}
	s.ItemID = items[s.itemPos].ID
}

// MoveList moves the list selection by delta positions, clamped to the
// bounds of the ordered sequence. Changing lists clears the item selection.
func (s *Selection) MoveList(delta int, lists []models.TodoList) {
	if len(lists) == 0 {
		return
	}
	pos := clamp(s.listPos+delta, 0, len(lists)-1)
	if pos == s.listPos && s.ListID != 0 {
		return
	}
	s.listPos = pos
	s.ListID = lists[pos].ID
	s.ItemID = 0
	s.itemPos = 0
}

// MoveItem moves the item selection by delta positions, clamped. With no
// current item selection it selects the first item.
func (s *Selection) MoveItem(delta int, items []models.TodoItem) {
	if s.ListID == 0 || len(items) == 0 {
		return
	}
	if s.ItemID == 0 {
		s.SelectFirstItem(items)
		return
	}
	pos := clamp(s.itemPos+delta, 0, len(items)-1)
	s.itemPos = pos
	s.ItemID = items[pos].ID
}

// SelectFirstItem selects the first item by rank, or leaves the selection
// empty when the list has no items.
func (s *Selection) SelectFirstItem(items []models.TodoItem) {
	if s.ListID == 0 || len(items) == 0 {
		s.ItemID = 0
		s.itemPos = 0
		return
	}
	s.itemPos = 0
	s.ItemID = items[0].ID
}

// ClearItem drops the item selection.
func (s *Selection) ClearItem() {
	s.ItemID = 0
	s.itemPos = 0
}

// clamp returns val clamped between minVal and maxVal
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}
