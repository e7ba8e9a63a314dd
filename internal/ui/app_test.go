package ui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"tudo/internal/db"
)

func newTestApp(t *testing.T) (*App, *db.DB) {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	a := NewApp(database)
	a.Update(initMsg{})
	return a, database
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func pressKeys(a *App, s string) {
	for _, r := range s {
		a.Update(keyRunes(string(r)))
	}
}

func press(a *App, k tea.KeyType) {
	a.Update(tea.KeyMsg{Type: k})
}

func TestBeginAddItemWithoutListsIsNoOp(t *testing.T) {
	a, _ := newTestApp(t)

	pressKeys(a, "a")

	if _, ok := a.mode.(browsing); !ok {
		t.Fatalf("expected to stay in browsing, got %T", a.mode)
	}
}

func TestAddListFlow(t *testing.T) {
	a, database := newTestApp(t)

	pressKeys(a, "n")
	if _, ok := a.mode.(addingList); !ok {
		t.Fatalf("expected addingList mode, got %T", a.mode)
	}

	pressKeys(a, "Groceries")
	press(a, tea.KeyEnter)

	if _, ok := a.mode.(browsing); !ok {
		t.Fatalf("expected browsing after confirm, got %T", a.mode)
	}
	lists, err := database.ListsOrdered()
	if err != nil {
		t.Fatalf("ListsOrdered: %v", err)
	}
	if len(lists) != 1 || lists[0].Name != "Groceries" {
		t.Fatalf("expected created list, got %+v", lists)
	}
	if a.sel.ListID != lists[0].ID {
		t.Fatalf("expected new list selected, got %d", a.sel.ListID)
	}
}

func TestAddListEmptyBufferRejected(t *testing.T) {
	a, database := newTestApp(t)

	pressKeys(a, "n")
	press(a, tea.KeyEnter)

	if _, ok := a.mode.(addingList); !ok {
		t.Fatalf("expected to stay in addingList, got %T", a.mode)
	}
	lists, err := database.ListsOrdered()
	if err != nil {
		t.Fatalf("ListsOrdered: %v", err)
	}
	if len(lists) != 0 {
		t.Fatalf("expected no list created, got %d", len(lists))
	}
}

func TestAddListCancelDiscardsBuffer(t *testing.T) {
	a, database := newTestApp(t)

	pressKeys(a, "n")
	pressKeys(a, "Half-typed")
	press(a, tea.KeyEsc)

	if _, ok := a.mode.(browsing); !ok {
		t.Fatalf("expected browsing after cancel, got %T", a.mode)
	}
	lists, err := database.ListsOrdered()
	if err != nil {
		t.Fatalf("ListsOrdered: %v", err)
	}
	if len(lists) != 0 {
		t.Fatalf("expected no list created, got %d", len(lists))
	}
}

func TestAddItemFlowSelectsNewItem(t *testing.T) {
	a, database := newTestApp(t)

	pressKeys(a, "n")
	pressKeys(a, "Groceries")
	press(a, tea.KeyEnter)

	pressKeys(a, "a")
	if _, ok := a.mode.(addingItem); !ok {
		t.Fatalf("expected addingItem mode, got %T", a.mode)
	}
	pressKeys(a, "Milk")
	press(a, tea.KeyEnter)

	items, err := database.ItemsOrdered(a.sel.ListID)
	if err != nil {
		t.Fatalf("ItemsOrdered: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Milk" {
		t.Fatalf("expected created item, got %+v", items)
	}
	if a.sel.ItemID != items[0].ID {
		t.Fatalf("expected new item selected, got %d", a.sel.ItemID)
	}
	if a.focus != focusItems {
		t.Fatal("expected focus on items panel after creating an item")
	}
}

func TestDeleteListConfirmFlow(t *testing.T) {
	a, database := newTestApp(t)

	for _, name := range []string{"First", "Second"} {
		pressKeys(a, "n")
		pressKeys(a, name)
		press(a, tea.KeyEnter)
	}
	// Selection is on "Second" (most recently created); move to "First"
	pressKeys(a, "k")

	pressKeys(a, "d")
	if _, ok := a.mode.(confirmingListDelete); !ok {
		t.Fatalf("expected confirmingListDelete, got %T", a.mode)
	}

	pressKeys(a, "y")
	if _, ok := a.mode.(browsing); !ok {
		t.Fatalf("expected browsing after confirm, got %T", a.mode)
	}

	lists, err := database.ListsOrdered()
	if err != nil {
		t.Fatalf("ListsOrdered: %v", err)
	}
	if len(lists) != 1 || lists[0].Name != "Second" {
		t.Fatalf("expected only Second to remain, got %+v", lists)
	}
	if a.sel.ListID != lists[0].ID {
		t.Fatalf("expected selection to fall to the survivor, got %d", a.sel.ListID)
	}
}

func TestDeleteCancelLeavesStateUntouched(t *testing.T) {
	a, database := newTestApp(t)

	pressKeys(a, "n")
	pressKeys(a, "Groceries")
	press(a, tea.KeyEnter)

	pressKeys(a, "d")
	pressKeys(a, "n") // cancel

	if _, ok := a.mode.(browsing); !ok {
		t.Fatalf("expected browsing after cancel, got %T", a.mode)
	}
	lists, err := database.ListsOrdered()
	if err != nil {
		t.Fatalf("ListsOrdered: %v", err)
	}
	if len(lists) != 1 {
		t.Fatalf("expected list to survive cancel, got %d", len(lists))
	}
}

func TestDeleteItemFallbackSelection(t *testing.T) {
	a, database := newTestApp(t)

	pressKeys(a, "n")
	pressKeys(a, "Groceries")
	press(a, tea.KeyEnter)
	for _, name := range []string{"A", "B", "C", "D", "E"} {
		pressKeys(a, "a")
		pressKeys(a, name)
		press(a, tea.KeyEnter)
	}

	// Select the item at index 2
	items, err := database.ItemsOrdered(a.sel.ListID)
	if err != nil {
		t.Fatalf("ItemsOrdered: %v", err)
	}
	a.sel.SelectFirstItem(items)
	a.sel.MoveItem(2, items)
	deleted := a.sel.ItemID

	pressKeys(a, "d")
	pressKeys(a, "y")

	items, err = database.ItemsOrdered(a.sel.ListID)
	if err != nil {
		t.Fatalf("ItemsOrdered: %v", err)
	}
	if len(items) != 4 {
		t.Fatalf("expected 4 items, got %d", len(items))
	}
	if a.sel.ItemID == deleted {
		t.Fatal("deleted item still selected")
	}
	if a.sel.ItemID != items[2].ID {
		t.Fatalf("expected new index-2 item selected, got %d", a.sel.ItemID)
	}
}

func TestStaleSelectionMutationIsSilentNoOp(t *testing.T) {
	a, database := newTestApp(t)

	pressKeys(a, "n")
	pressKeys(a, "Groceries")
	press(a, tea.KeyEnter)
	pressKeys(a, "a")
	pressKeys(a, "Milk")
	press(a, tea.KeyEnter)

	// The item disappears underneath the selection
	if err := database.DeleteItem(a.sel.ItemID); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}

	pressKeys(a, " ") // toggle the now-gone item

	if a.status != "" {
		t.Fatalf("expected silent recovery, got status %q", a.status)
	}
	if a.sel.ItemID != 0 {
		t.Fatalf("expected selection re-resolved to none, got %d", a.sel.ItemID)
	}
}

func TestMoveSelectedItemReordersAndFollows(t *testing.T) {
	a, database := newTestApp(t)

	pressKeys(a, "n")
	pressKeys(a, "Groceries")
	press(a, tea.KeyEnter)
	for _, name := range []string{"Milk", "Eggs", "Bread"} {
		pressKeys(a, "a")
		pressKeys(a, name)
		press(a, tea.KeyEnter)
	}

	// "Bread" is selected (last created); move it up once
	pressKeys(a, "K")

	items, err := database.ItemsOrdered(a.sel.ListID)
	if err != nil {
		t.Fatalf("ItemsOrdered: %v", err)
	}
	want := []string{"Milk", "Bread", "Eggs"}
	for i := range want {
		if items[i].Name != want[i] {
			t.Fatalf("expected %v, got %+v", want, items)
		}
	}
	// Selection follows the moved item
	if a.sel.ItemID != items[1].ID {
		t.Fatalf("expected moved item to stay selected, got %d", a.sel.ItemID)
	}
}

func TestTogglePersistsDoneFlag(t *testing.T) {
	a, database := newTestApp(t)

	pressKeys(a, "n")
	pressKeys(a, "Groceries")
	press(a, tea.KeyEnter)
	pressKeys(a, "a")
	pressKeys(a, "Milk")
	press(a, tea.KeyEnter)

	pressKeys(a, " ")

	it, err := database.GetItem(a.sel.ItemID)
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if !it.IsDone {
		t.Fatal("expected item toggled done")
	}
	if _, ok := a.mode.(browsing); !ok {
		t.Fatalf("expected to stay in browsing, got %T", a.mode)
	}
}

func TestHelpPopupOpensAndAnyKeyCloses(t *testing.T) {
	a, _ := newTestApp(t)
	a.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	pressKeys(a, "?")
	if !a.showHelp {
		t.Fatal("expected help popup open")
	}
	if view := a.View(); !strings.Contains(view, "Keyboard Shortcuts") {
		t.Fatalf("expected shortcut listing in view, got %q", view)
	}

	pressKeys(a, "x")
	if a.showHelp {
		t.Fatal("expected help popup closed by any key")
	}
}

func TestPriorityCycling(t *testing.T) {
	a, database := newTestApp(t)

	pressKeys(a, "n")
	pressKeys(a, "Groceries")
	press(a, tea.KeyEnter)
	pressKeys(a, "a")
	pressKeys(a, "Milk")
	press(a, tea.KeyEnter)

	want := []string{"high", "medium", "low"}
	for _, expect := range want {
		pressKeys(a, "p")
		it, err := database.GetItem(a.sel.ItemID)
		if err != nil {
			t.Fatalf("GetItem: %v", err)
		}
		if it.Priority == nil || *it.Priority != expect {
			t.Fatalf("expected priority %q, got %v", expect, it.Priority)
		}
	}

	// One more press clears it
	pressKeys(a, "p")
	it, err := database.GetItem(a.sel.ItemID)
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if it.Priority != nil {
		t.Fatalf("expected priority cleared, got %q", *it.Priority)
	}
}
