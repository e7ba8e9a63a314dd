package ui

import (
	"testing"

	"tudo/internal/models"
)

func makeLists(ids ...int64) []models.TodoList {
	lists := make([]models.TodoList, len(ids))
	for i, id := range ids {
		lists[i] = models.TodoList{ID: id, Rank: i}
	}
	return lists
}

func makeItems(ids ...int64) []models.TodoItem {
	items := make([]models.TodoItem, len(ids))
	for i, id := range ids {
		items[i] = models.TodoItem{ID: id, Rank: i}
	}
	return items
}

func TestSyncLists_SelectsFirstWhenNoneSelected(t *testing.T) {
	var s Selection
	s.SyncLists(makeLists(10, 20))
	if s.ListID != 10 {
		t.Fatalf("expected first list selected, got %d", s.ListID)
	}
}

func TestSyncLists_KeepsSurvivingSelection(t *testing.T) {
	var s Selection
	lists := makeLists(10, 20, 30)
	s.SyncLists(lists)
	s.MoveList(2, lists)

	// The selected list moved to the front
	s.SyncLists(makeLists(30, 10, 20))
	if s.ListID != 30 {
		t.Fatalf("expected selection to follow identity, got %d", s.ListID)
	}
}

func TestSyncLists_FallsBackToSamePosition(t *testing.T) {
	var s Selection
	lists := makeLists(10, 20, 30)
	s.SyncLists(lists)
	s.MoveList(1, lists) // select 20 at position 1

	// 20 was deleted; position 1 now holds 30
	s.SyncLists(makeLists(10, 30))
	if s.ListID != 30 {
		t.Fatalf("expected fallback to position 1, got %d", s.ListID)
	}
}

func TestSyncLists_ClampsWhenLastDeleted(t *testing.T) {
	var s Selection
	lists := makeLists(10, 20)
	s.SyncLists(lists)
	s.MoveList(1, lists) // select 20 at the end

	s.SyncLists(makeLists(10))
	if s.ListID != 10 {
		t.Fatalf("expected clamp to last remaining list, got %d", s.ListID)
	}

	s.SyncLists(nil)
	if s.ListID != 0 {
		t.Fatalf("expected no selection with no lists, got %d", s.ListID)
	}
}

func TestSyncItems_FallbackAfterDeletion(t *testing.T) {
	var s Selection
	s.SyncLists(makeLists(1))

	items := makeItems(100, 101, 102, 103, 104)
	s.SelectFirstItem(items)
	s.MoveItem(2, items) // select 102 at index 2

	// 102 deleted: the item formerly at index 3 now occupies index 2
	s.SyncItems(makeItems(100, 101, 103, 104))
	if s.ItemID != 103 {
		t.Fatalf("expected new index-2 item selected, got %d", s.ItemID)
	}
}

func TestSyncItems_PreservesNoSelection(t *testing.T) {
	var s Selection
	s.SyncLists(makeLists(1))

	s.SyncItems(makeItems(100, 101))
	if s.ItemID != 0 {
		t.Fatalf("expected no item selected, got %d", s.ItemID)
	}
}

func TestMoveItem_ClampsAtBounds(t *testing.T) {
	var s Selection
	s.SyncLists(makeLists(1))
	items := makeItems(100, 101, 102)
	s.SelectFirstItem(items)

	s.MoveItem(-1, items)
	if s.ItemID != 100 {
		t.Fatalf("expected clamp at top, got %d", s.ItemID)
	}
	s.MoveItem(5, items)
	if s.ItemID != 102 {
		t.Fatalf("expected clamp at bottom, got %d", s.ItemID)
	}
}

func TestMoveList_ClearsItemSelection(t *testing.T) {
	var s Selection
	lists := makeLists(1, 2)
	s.SyncLists(lists)
	s.SelectFirstItem(makeItems(100))
	if s.ItemID != 100 {
		t.Fatalf("setup: expected item selected, got %d", s.ItemID)
	}

	s.MoveList(1, lists)
	if s.ItemID != 0 {
		t.Fatalf("expected item selection cleared on list change, got %d", s.ItemID)
	}
}

func TestSelectFirstItem_EmptyListLeavesNone(t *testing.T) {
	var s Selection
	s.SyncLists(makeLists(1))
	s.SelectFirstItem(nil)
	if s.ItemID != 0 {
		t.Fatalf("expected no selection for empty list, got %d", s.ItemID)
	}
}
