// Package documents provides the collection selector and document list
// view for the TUI, including in-place editing of one document.
package documents

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docview/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/docview/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/docview/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docview/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docview/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docview/internal/core/domain"
)

// View shows the collection selector and the selected collection's
// documents. It works on a copy of the view state; the app reads it back
// with State after each update.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	state  domain.ViewState
	list   *list.DocumentList

	// cells hold the edit session's text, one per entry.
	cells     []*input.Cell
	editingID string
	focus     int

	width  int
	height int
}

// NewView creates a new documents view.
func NewView(s *styles.Styles, km *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		styles: s,
		keymap: km,
		state:  domain.NewViewState(),
		list:   list.NewDocumentList(s),
	}
}

// SetState replaces the view state and refreshes what is shown.
func (v *View) SetState(state domain.ViewState) {
	selectedBefore := v.state.Selected
	v.state = state

	c, _ := state.SelectedCollection()
	if c.Name != selectedBefore {
		v.list.Reset()
	}
	v.list.SetDocuments(c.Documents)
	v.syncCells()
}

// State returns the view state, including changes made by key presses.
func (v *View) State() domain.ViewState {
	return v.state
}

// Editing reports whether an edit session is open.
func (v *View) Editing() bool {
	return v.state.Edit != nil
}

// Update handles messages for the documents view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		if v.Editing() {
			return v.handleEditKey(msg)
		}
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	switch {
	case keymap.Matches(k, v.keymap.PrevCollection):
		v.SetState(v.state.SelectOffset(-1))
	case keymap.Matches(k, v.keymap.NextCollection):
		v.SetState(v.state.SelectOffset(1))
	case keymap.Matches(k, v.keymap.Up):
		v.list.MoveUp()
	case keymap.Matches(k, v.keymap.Down):
		v.list.MoveDown()
	case keymap.Matches(k, v.keymap.Edit):
		if doc, ok := v.list.Selected(); ok {
			v.SetState(v.state.BeginEdit(doc.ID))
			return v, v.focusCell(0)
		}
	case keymap.Matches(k, v.keymap.Delete):
		if doc, ok := v.list.Selected(); ok {
			req := messages.DeleteRequested{Collection: v.state.Selected, DocumentID: doc.ID}
			return v, func() tea.Msg { return req }
		}
	case keymap.Matches(k, v.keymap.NewDraft):
		if v.state.Selected != "" {
			return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewDraft} }
		}
	case keymap.Matches(k, v.keymap.Reload):
		return v, func() tea.Msg { return messages.ReloadRequested{} }
	case keymap.Matches(k, v.keymap.Help):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewHelp} }
	case keymap.Matches(k, v.keymap.Quit):
		return v, func() tea.Msg { return messages.Quit{} }
	}
	return v, nil
}

func (v *View) handleEditKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	switch {
	case keymap.Matches(k, v.keymap.Cancel):
		v.SetState(v.state.CancelEdit())
		return v, nil
	case keymap.Matches(k, v.keymap.Save):
		v.commitCell()
		session := *v.state.Edit
		req := messages.EditSaveRequested{
			Collection: session.Collection,
			DocumentID: session.DocumentID,
			Fields:     session.Fields(),
		}
		return v, func() tea.Msg { return req }
	case keymap.Matches(k, v.keymap.NextCell), k == "down":
		v.commitCell()
		return v, v.focusCell(v.focus + 1)
	case keymap.Matches(k, v.keymap.PrevCell), k == "up":
		v.commitCell()
		return v, v.focusCell(v.focus - 1)
	}

	if v.focus < len(v.cells) {
		var cmd tea.Cmd
		v.cells[v.focus], cmd = v.cells[v.focus].Update(msg)
		return v, cmd
	}
	return v, nil
}

// commitCell writes the focused cell's text into the edit session.
func (v *View) commitCell() {
	if v.state.Edit == nil || v.focus >= len(v.cells) {
		return
	}
	name := v.state.Edit.Entries[v.focus].Name
	v.state = v.state.SetEditText(name, v.cells[v.focus].Value())
}

// focusCell moves focus to cell i, wrapping around.
func (v *View) focusCell(i int) tea.Cmd {
	n := len(v.cells)
	if n == 0 {
		return nil
	}
	v.focus = ((i % n) + n) % n
	for j, c := range v.cells {
		if j != v.focus {
			c.Blur()
		}
	}
	return v.cells[v.focus].Focus()
}

// syncCells rebuilds the edit cells when a different session opens and
// drops them when the session closes.
func (v *View) syncCells() {
	session := v.state.Edit
	if session == nil {
		v.cells = nil
		v.editingID = ""
		v.focus = 0
		return
	}
	if session.DocumentID == v.editingID && len(v.cells) == len(session.Entries) {
		return
	}

	v.editingID = session.DocumentID
	v.focus = 0
	v.cells = make([]*input.Cell, 0, len(session.Entries))
	for _, e := range session.Entries {
		c := input.NewCell(v.styles, e.Kind.String(), e.Text)
		c.SetWidth(v.cellWidth())
		v.cells = append(v.cells, c)
	}
}

func (v *View) cellWidth() int {
	return v.width/2 - 4
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.list.SetDimensions(width, height-4)
	for _, c := range v.cells {
		c.SetWidth(v.cellWidth())
	}
}

// View renders the selector and the document list.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.renderSelector())
	b.WriteString("\n\n")

	if _, ok := v.state.SelectedCollection(); !ok {
		b.WriteString(v.styles.Muted.Render("No collections could be loaded. Press r to retry."))
		return b.String()
	}

	b.WriteString(v.list.View(v.renderEditCard))
	return b.String()
}

// renderSelector renders one tab per loaded collection with its document
// count, followed by any collections that failed to load.
func (v *View) renderSelector() string {
	tabs := make([]string, 0, len(v.state.Collections)+1)
	for _, c := range v.state.Collections {
		label := fmt.Sprintf("%s (%d)", c.Name, c.Count())
		if c.Name == v.state.Selected {
			tabs = append(tabs, v.styles.ActiveTab.Render(label))
		} else {
			tabs = append(tabs, v.styles.Tab.Render(label))
		}
	}
	if len(v.state.Unavailable) > 0 {
		tabs = append(tabs, v.styles.Error.Render("unavailable: "+strings.Join(v.state.Unavailable, ", ")))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderEditCard renders the document under the cursor as an edit form
// when it holds the edit session. Other documents use the plain card.
func (v *View) renderEditCard(doc domain.Document) (string, bool) {
	if !v.state.IsEditing(doc.ID) || len(v.cells) != len(v.state.Edit.Entries) {
		return "", false
	}

	lines := []string{v.styles.Subtitle.Render("editing " + doc.ID)}
	for i, e := range v.state.Edit.Entries {
		name := v.styles.FieldName.Render(e.Name)
		kind := v.styles.Muted.Render(e.Kind.String())
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Center, name, " ", v.cells[i].View(), " ", kind))
	}
	if len(v.cells) == 0 {
		lines = append(lines, v.styles.Muted.Render("(no fields)"))
	}
	return v.styles.SelectedCard.Render(strings.Join(lines, "\n")), true
}

// SelectedDocument returns the document under the cursor.
func (v *View) SelectedDocument() (domain.Document, bool) {
	return v.list.Selected()
}

// FocusedCell returns the index of the focused edit cell.
func (v *View) FocusedCell() int {
	return v.focus
}
