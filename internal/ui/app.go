package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"tudo/internal/db"
	"tudo/internal/models"
	"tudo/internal/ui/keys"
	"tudo/internal/ui/styles"
)

// panelFocus marks which panel the browsing cursor lives in
type panelFocus int

const (
	focusLists panelFocus = iota
	focusItems
)

// App is the root model: two panels over one database, a selection, and the
// current interaction mode.
type App struct {
	db     *db.DB
	keys   keys.KeyMap
	styles *styles.Styles

	mode  mode
	sel   Selection
	focus panelFocus

	// cached rank-ordered rows, re-fetched after every mutation
	lists []models.TodoList
	items []models.TodoItem

	status   string // last storage failure, shown until the next successful op
	showHelp bool
	loaded   bool

	width  int
	height int
}

// NewApp creates a new application
func NewApp(database *db.DB) *App {
	return &App{
		db:     database,
		keys:   keys.DefaultKeyMap(),
		styles: styles.NewStyles(),
		mode:   browsing{},
	}
}

type initMsg struct{}

func (a *App) Init() tea.Cmd {
	return func() tea.Msg { return initMsg{} }
}

// reload re-fetches both ordered sequences and re-resolves the selection
// against them. Every mutation goes through this before the next key is
// processed.
func (a *App) reload() error {
	lists, err := a.db.ListsOrdered()
	if err != nil {
		return err
	}
	a.lists = lists
	a.sel.SyncLists(lists)

	a.items = nil
	if a.sel.ListID != 0 {
		items, err := a.db.ItemsOrdered(a.sel.ListID)
		if err != nil {
			return err
		}
		a.items = items
	}
	a.sel.SyncItems(a.items)

	if len(a.lists) == 0 {
		a.focus = focusLists
	}
	if a.focus == focusItems && a.sel.ItemID == 0 {
		a.sel.SelectFirstItem(a.items)
	}
	a.loaded = true
	return nil
}

// mutate runs a gateway call and re-resolves state afterwards. A not-found
// error means the target vanished underneath a stale selection; the mutation
// is silently dropped and the reload re-resolves the selection. Anything
// else is a storage failure, surfaced without touching the last-known-good
// rows.
func (a *App) mutate(err error) {
	if err != nil && !errors.Is(err, db.ErrNotFound) {
		a.status = err.Error()
		return
	}
	a.status = ""
	if rerr := a.reload(); rerr != nil {
		a.status = rerr.Error()
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case initMsg:
		a.mutate(nil)
		return a, nil

	case tea.KeyMsg:
		// Any key closes the help popup
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		switch m := a.mode.(type) {
		case browsing:
			return a.updateBrowsing(msg)
		case addingList:
			return a.updateAddingList(m, msg)
		case addingItem:
			return a.updateAddingItem(m, msg)
		case editingList:
			return a.updateEditingList(m, msg)
		case editingItem:
			return a.updateEditingItem(m, msg)
		case editingDueDate:
			return a.updateEditingDueDate(m, msg)
		case confirmingListDelete:
			return a.updateConfirmListDelete(m, msg)
		case confirmingItemDelete:
			return a.updateConfirmItemDelete(m, msg)
		}
	}

	return a, nil
}

func (a *App) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.showHelp = true

	case key.Matches(msg, a.keys.Left):
		a.focus = focusLists

	case key.Matches(msg, a.keys.Right):
		if a.sel.ListID != 0 {
			a.focus = focusItems
			if a.sel.ItemID == 0 {
				a.sel.SelectFirstItem(a.items)
			}
		}

	case key.Matches(msg, a.keys.Up):
		a.moveSelection(-1)

	case key.Matches(msg, a.keys.Down):
		a.moveSelection(1)

	case key.Matches(msg, a.keys.MoveUp):
		a.moveEntity(-1)

	case key.Matches(msg, a.keys.MoveDown):
		a.moveEntity(1)

	case key.Matches(msg, a.keys.NewList):
		a.mode = addingList{input: newModeInput("List name", "")}

	case key.Matches(msg, a.keys.NewItem):
		// No-op without a selected list
		if a.sel.ListID != 0 {
			a.mode = addingItem{listID: a.sel.ListID, input: newModeInput("Item name", "")}
		}

	case key.Matches(msg, a.keys.Rename):
		if a.focus == focusLists {
			if l := a.selectedList(); l != nil {
				a.mode = editingList{id: l.ID, input: newModeInput("List name", l.Name)}
			}
		} else if it := a.selectedItem(); it != nil {
			a.mode = editingItem{id: it.ID, input: newModeInput("Item name", it.Name)}
		}

	case key.Matches(msg, a.keys.Delete):
		if a.focus == focusLists {
			if l := a.selectedList(); l != nil {
				a.mode = confirmingListDelete{id: l.ID, name: l.Name}
			}
		} else if it := a.selectedItem(); it != nil {
			a.mode = confirmingItemDelete{id: it.ID, name: it.Name}
		}

	case key.Matches(msg, a.keys.Toggle):
		if a.focus == focusItems {
			if it := a.selectedItem(); it != nil {
				a.mutate(a.db.ToggleItem(it.ID))
			}
		}

	case key.Matches(msg, a.keys.Priority):
		if a.focus == focusItems {
			if it := a.selectedItem(); it != nil {
				a.mutate(a.db.SetItemPriority(it.ID, nextPriority(it.Priority)))
			}
		}

	case key.Matches(msg, a.keys.DueDate):
		if a.focus == focusItems {
			if it := a.selectedItem(); it != nil {
				due := ""
				if it.DueDate != nil {
					due = *it.DueDate
				}
				a.mode = editingDueDate{id: it.ID, input: newModeInput("Due date", due)}
			}
		}
	}

	return a, nil
}

// moveSelection moves the cursor in the focused panel; the list cursor pulls
// the items panel along with it.
func (a *App) moveSelection(delta int) {
	switch a.focus {
	case focusLists:
		before := a.sel.ListID
		a.sel.MoveList(delta, a.lists)
		if a.sel.ListID != before {
			a.mutate(nil)
		}
	case focusItems:
		a.sel.MoveItem(delta, a.items)
	}
}

// moveEntity reorders the selected entity one position up or down.
func (a *App) moveEntity(delta int) {
	switch a.focus {
	case focusLists:
		if a.sel.ListID != 0 {
			a.mutate(a.db.MoveList(a.sel.ListID, delta))
		}
	case focusItems:
		if a.sel.ItemID != 0 {
			a.mutate(a.db.MoveItem(a.sel.ItemID, delta))
		}
	}
}

func (a *App) updateAddingList(m addingList, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Back):
		a.mode = browsing{}
		return a, nil

	case key.Matches(msg, a.keys.Enter):
		name := strings.TrimSpace(m.input.Value())
		if name == "" {
			// Rejected; stay in the adding mode
			return a, nil
		}
		list, err := a.db.CreateList(name)
		if err != nil {
			a.status = err.Error()
			return a, nil
		}
		a.mode = browsing{}
		a.focus = focusLists
		a.sel.ListID = list.ID
		a.mutate(nil)
		return a, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	a.mode = m
	return a, cmd
}

func (a *App) updateAddingItem(m addingItem, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Back):
		a.mode = browsing{}
		return a, nil

	case key.Matches(msg, a.keys.Enter):
		name := strings.TrimSpace(m.input.Value())
		if name == "" {
			return a, nil
		}
		item, err := a.db.CreateItem(m.listID, name)
		if errors.Is(err, db.ErrNotFound) {
			// The list vanished while typing; drop the input quietly.
			a.mode = browsing{}
			a.mutate(nil)
			return a, nil
		}
		if err != nil {
			a.status = err.Error()
			return a, nil
		}
		a.mode = browsing{}
		a.focus = focusItems
		a.sel.ItemID = item.ID
		a.mutate(nil)
		return a, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	a.mode = m
	return a, cmd
}

func (a *App) updateEditingList(m editingList, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Back):
		a.mode = browsing{}
		return a, nil

	case key.Matches(msg, a.keys.Enter):
		name := strings.TrimSpace(m.input.Value())
		if name == "" {
			return a, nil
		}
		a.mode = browsing{}
		a.mutate(a.db.RenameList(m.id, name))
		return a, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	a.mode = m
	return a, cmd
}

func (a *App) updateEditingItem(m editingItem, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Back):
		a.mode = browsing{}
		return a, nil

	case key.Matches(msg, a.keys.Enter):
		name := strings.TrimSpace(m.input.Value())
		if name == "" {
			return a, nil
		}
		a.mode = browsing{}
		a.mutate(a.db.RenameItem(m.id, name))
		return a, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	a.mode = m
	return a, cmd
}

func (a *App) updateEditingDueDate(m editingDueDate, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Back):
		a.mode = browsing{}
		return a, nil

	case key.Matches(msg, a.keys.Enter):
		a.mode = browsing{}
		due := strings.TrimSpace(m.input.Value())
		if due == "" {
			a.mutate(a.db.SetItemDueDate(m.id, nil))
		} else {
			a.mutate(a.db.SetItemDueDate(m.id, &due))
		}
		return a, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	a.mode = m
	return a, cmd
}

func (a *App) updateConfirmListDelete(m confirmingListDelete, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		a.mode = browsing{}
		a.mutate(a.db.DeleteList(m.id))
	case "n", "N", "esc":
		a.mode = browsing{}
	}
	return a, nil
}

func (a *App) updateConfirmItemDelete(m confirmingItemDelete, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		a.mode = browsing{}
		a.mutate(a.db.DeleteItem(m.id))
	case "n", "N", "esc":
		a.mode = browsing{}
	}
	return a, nil
}

func (a *App) selectedList() *models.TodoList {
	for i := range a.lists {
		if a.lists[i].ID == a.sel.ListID {
			return &a.lists[i]
		}
	}
	return nil
}

func (a *App) selectedItem() *models.TodoItem {
	for i := range a.items {
		if a.items[i].ID == a.sel.ItemID {
			return &a.items[i]
		}
	}
	return nil
}

// nextPriority cycles none → high → medium → low → none.
func nextPriority(p *string) *string {
	var next string
	if p == nil {
		next = models.PriorityHigh
		return &next
	}
	switch *p {
	case models.PriorityHigh:
		next = models.PriorityMedium
	case models.PriorityMedium:
		next = models.PriorityLow
	default:
		return nil
	}
	return &next
}
