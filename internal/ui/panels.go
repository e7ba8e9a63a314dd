package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"tudo/internal/models"
	"tudo/internal/ui/styles"
)

const minListPanelWidth = 24

func (a *App) View() string {
	if !a.loaded {
		return a.styles.TitleMuted.Render("Loading...")
	}

	if a.showHelp {
		return a.renderHelpPopup()
	}

	switch m := a.mode.(type) {
	case addingList:
		return a.renderInputModal("New List", m.input, "")
	case addingItem:
		return a.renderInputModal("New Item", m.input, "")
	case editingList:
		return a.renderInputModal("Rename List", m.input, "")
	case editingItem:
		return a.renderInputModal("Rename Item", m.input, "")
	case editingDueDate:
		return a.renderInputModal("Due Date", m.input, "empty clears the date")
	case confirmingListDelete:
		return a.renderConfirm("Delete List?", m.name, "All of its items go with it.")
	case confirmingItemDelete:
		return a.renderConfirm("Delete Item?", m.name, "")
	}

	return a.renderBrowsing()
}

func (a *App) renderBrowsing() string {
	listsWidth := a.width / 3
	if listsWidth < minListPanelWidth {
		listsWidth = minListPanelWidth
	}
	itemsWidth := a.width - listsWidth
	panelHeight := a.height - 2

	panels := lipgloss.JoinHorizontal(lipgloss.Top,
		a.renderListsPanel(listsWidth, panelHeight),
		a.renderItemsPanel(itemsWidth, panelHeight),
	)

	return lipgloss.JoinVertical(lipgloss.Left, panels, a.renderStatusBar())
}

func (a *App) renderListsPanel(width, height int) string {
	s := a.styles
	inner := width - 4 // border + padding

	var rows []string
	if len(a.lists) == 0 {
		rows = append(rows, s.TitleMuted.Render("n: new list"))
	} else {
		start := visibleStart(len(a.lists), a.listIndex(), height-3)
		for i := start; i < len(a.lists) && i-start < height-3; i++ {
			l := a.lists[i]
			row := runewidth.Truncate(l.Name, inner-2, "…")
			if l.ID == a.sel.ListID {
				rows = append(rows, s.RowSelected.Width(inner).Render(row))
			} else {
				rows = append(rows, s.Row.Width(inner).Render(row))
			}
		}
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		append([]string{s.PanelTitle.Render("Lists"), ""}, rows...)...,
	)

	panel := s.Panel
	if a.focus == focusLists {
		panel = s.PanelFocused
	}
	return panel.Width(width - 2).Height(height).Render(body)
}

func (a *App) renderItemsPanel(width, height int) string {
	s := a.styles
	inner := width - 4

	title := "Items"
	if l := a.selectedList(); l != nil {
		title = l.Name
	}

	var rows []string
	switch {
	case a.sel.ListID == 0:
		rows = append(rows, s.TitleMuted.Render("no list selected"))
	case len(a.items) == 0:
		rows = append(rows, s.TitleMuted.Render("a: new item"))
	default:
		start := visibleStart(len(a.items), a.itemIndex(), height-3)
		for i := start; i < len(a.items) && i-start < height-3; i++ {
			rows = append(rows, a.renderItemRow(a.items[i], inner))
		}
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		append([]string{s.PanelTitle.Render(runewidth.Truncate(title, inner, "…")), ""}, rows...)...,
	)

	panel := s.Panel
	if a.focus == focusItems {
		panel = s.PanelFocused
	}
	return panel.Width(width - 2).Height(height).Render(body)
}

func (a *App) renderItemRow(it models.TodoItem, inner int) string {
	s := a.styles

	check := "[ ]"
	if it.IsDone {
		check = "[x]"
	}

	meta := ""
	if it.Priority != nil {
		meta += " " + a.priorityMarker(*it.Priority)
	}
	if it.DueDate != nil {
		meta += " " + s.DueDate.Render(*it.DueDate)
	}

	nameWidth := inner - 2 - runewidth.StringWidth(check) - lipgloss.Width(meta) - 1
	if nameWidth < 4 {
		nameWidth = 4
	}
	name := runewidth.Truncate(it.Name, nameWidth, "…")

	row := check + " " + name + meta
	switch {
	case it.ID == a.sel.ItemID:
		return s.RowSelected.Width(inner).Render(row)
	case it.IsDone:
		return s.RowDone.Width(inner).Render(row)
	default:
		return s.Row.Width(inner).Render(row)
	}
}

func (a *App) priorityMarker(priority string) string {
	s := a.styles
	switch priority {
	case models.PriorityHigh:
		return s.PriorityHigh.Render("!!!")
	case models.PriorityMedium:
		return s.PriorityMedium.Render("!!")
	default:
		return s.PriorityLow.Render("!")
	}
}

func (a *App) renderStatusBar() string {
	s := a.styles
	if a.status != "" {
		return s.StatusError.Render(a.status)
	}

	hints := fmt.Sprintf("%s move • %s reorder • %s new list • %s new item • %s del • %s help • %s quit",
		s.HelpKey.Render("j/k"),
		s.HelpKey.Render("J/K"),
		s.HelpKey.Render("n"),
		s.HelpKey.Render("a"),
		s.HelpKey.Render("d"),
		s.HelpKey.Render("?"),
		s.HelpKey.Render("q"),
	)
	if a.focus == focusItems {
		hints = fmt.Sprintf("%s move • %s reorder • %s toggle • %s priority • %s due • %s rename • %s del • %s quit",
			s.HelpKey.Render("j/k"),
			s.HelpKey.Render("J/K"),
			s.HelpKey.Render("space"),
			s.HelpKey.Render("p"),
			s.HelpKey.Render("u"),
			s.HelpKey.Render("r"),
			s.HelpKey.Render("d"),
			s.HelpKey.Render("q"),
		)
	}
	return s.StatusBar.Render(hints)
}

func (a *App) renderInputModal(title string, input textinput.Model, hint string) string {
	s := a.styles

	inputWidth := clamp(a.width-10, 20, 50)
	parts := []string{
		s.Title.Render(title),
		"",
		s.InputFocused.Width(inputWidth).Render(input.View()),
		"",
	}
	if hint != "" {
		parts = append(parts, s.TitleMuted.Render(hint), "")
	}
	parts = append(parts, s.TitleMuted.Render("↵ save • esc cancel"))

	form := lipgloss.JoinVertical(lipgloss.Left, parts...)
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, form)
}

func (a *App) renderConfirm(title, name, note string) string {
	s := a.styles

	parts := []string{
		s.Title.Foreground(styles.Current.Error).Render(title),
		"",
		s.TitleMuted.Render(fmt.Sprintf("%q", name)),
	}
	if note != "" {
		parts = append(parts, s.TitleMuted.Render(note))
	}
	parts = append(parts, "",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonPrimary.Render(" Y - Yes "),
			"  ",
			s.Button.Render(" N - No "),
		),
	)

	content := lipgloss.JoinVertical(lipgloss.Center, parts...)
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, content)
}

func (a *App) renderHelpPopup() string {
	s := a.styles

	lines := []string{
		s.Title.Render("Keyboard Shortcuts"),
		"",
		s.HelpKey.Render("j/k") + "    " + s.Help.Render("move selection"),
		s.HelpKey.Render("h/l") + "    " + s.Help.Render("switch panel"),
		s.HelpKey.Render("J/K") + "    " + s.Help.Render("move list/item up or down"),
		s.HelpKey.Render("n") + "      " + s.Help.Render("new list"),
		s.HelpKey.Render("a") + "      " + s.Help.Render("new item"),
		s.HelpKey.Render("r") + "      " + s.Help.Render("rename"),
		s.HelpKey.Render("d") + "      " + s.Help.Render("delete"),
		s.HelpKey.Render("space") + "  " + s.Help.Render("toggle done"),
		s.HelpKey.Render("p") + "      " + s.Help.Render("cycle priority"),
		s.HelpKey.Render("u") + "      " + s.Help.Render("edit due date"),
		s.HelpKey.Render("q") + "      " + s.Help.Render("quit"),
		"",
		s.TitleMuted.Render("Press any key to close"),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
		a.styles.Panel.Render(content))
}

// listIndex returns the position of the selected list, 0 when none.
func (a *App) listIndex() int {
	for i := range a.lists {
		if a.lists[i].ID == a.sel.ListID {
			return i
		}
	}
	return 0
}

// itemIndex returns the position of the selected item, 0 when none.
func (a *App) itemIndex() int {
	for i := range a.items {
		if a.items[i].ID == a.sel.ItemID {
			return i
		}
	}
	return 0
}

// visibleStart returns the first row to draw so the selected row stays
// inside a window of the given height.
func visibleStart(n, selected, height int) int {
	if height <= 0 || n <= height {
		return 0
	}
	start := selected - height + 1
	if start < 0 {
		start = 0
	}
	if start > n-height {
		start = n - height
	}
	return start
}
