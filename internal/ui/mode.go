package ui

import "github.com/charmbracelet/bubbles/textinput"

// The interaction modes. Browsing is the initial mode; every other mode is
// a modal overlay carrying only its own transient state, discarded on exit.
type mode interface{ isMode() }

type browsing struct{}

type addingList struct {
	input textinput.Model
}

type addingItem struct {
	listID int64
	input  textinput.Model
}

type editingList struct {
	id    int64
	input textinput.Model
}

type editingItem struct {
	id    int64
	input textinput.Model
}

type editingDueDate struct {
	id    int64
	input textinput.Model
}

type confirmingListDelete struct {
	id   int64
	name string
}

type confirmingItemDelete struct {
	id   int64
	name string
}

func (browsing) isMode()             {}
func (addingList) isMode()           {}
func (addingItem) isMode()           {}
func (editingList) isMode()          {}
func (editingItem) isMode()          {}
func (editingDueDate) isMode()       {}
func (confirmingListDelete) isMode() {}
func (confirmingItemDelete) isMode() {}

// newModeInput returns a focused text input prefilled with value.
func newModeInput(placeholder, value string) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 100
	in.SetValue(value)
	in.CursorEnd()
	in.Focus()
	return in
}
