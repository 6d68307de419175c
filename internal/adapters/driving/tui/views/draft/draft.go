// Package draft provides the new-document form for the TUI.
package draft

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docview/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/docview/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docview/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docview/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docview/internal/core/domain"
)

// Column is one side of a draft row.
type Column int

const (
	ColumnName Column = iota
	ColumnValue
)

// row is the pair of cells editing one draft field.
type row struct {
	name  *input.Cell
	value *input.Cell
}

// View is the draft form: one row of name and value cells per field.
// Cell text is committed to the draft when focus leaves the cell.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	state  domain.ViewState

	rows   []row
	row    int
	column Column

	width  int
	height int
}

// NewView creates a new draft view.
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
	}
}

// SetState replaces the view state. The rows are rebuilt only when the
// draft changed, so text typed into a cell survives unrelated updates.
func (v *View) SetState(state domain.ViewState) {
	changed := !slices.Equal(v.state.Draft.Fields, state.Draft.Fields)
	v.state = state
	if changed || len(v.rows) != state.Draft.Len() {
		v.rebuild()
	}
}

// State returns the view state, including draft changes.
func (v *View) State() domain.ViewState {
	return v.state
}

// Focus focuses the current cell, if any.
func (v *View) Focus() tea.Cmd {
	return v.focus(v.row, v.column)
}

// Update handles messages for the draft view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil
	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	switch {
	case keymap.Matches(k, v.keymap.Back):
		v.commit()
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewDocuments} }

	case keymap.Matches(k, v.keymap.Save):
		v.commit()
		if v.state.Draft.IsEmpty() || v.state.Selected == "" {
			return v, nil
		}
		req := messages.DraftSubmitRequested{Collection: v.state.Selected, Draft: v.state.Draft}
		return v, func() tea.Msg { return req }

	case keymap.Matches(k, v.keymap.AddField):
		v.commit()
		v.state = v.state.AddDraftField(v.state.Draft.NextFieldName(), "")
		v.rebuild()
		return v, v.focus(len(v.rows)-1, ColumnName)

	case keymap.Matches(k, v.keymap.RemoveField):
		if v.row < len(v.rows) {
			name := v.state.Draft.Fields[v.row].Name
			v.state = v.state.RemoveDraftField(name)
			v.rebuild()
		}
		return v, v.focus(v.row, v.column)

	case keymap.Matches(k, v.keymap.NextCell):
		v.commit()
		if v.column == ColumnName {
			return v, v.focus(v.row, ColumnValue)
		}
		return v, v.focus(v.row+1, ColumnName)

	case keymap.Matches(k, v.keymap.PrevCell):
		v.commit()
		if v.column == ColumnValue {
			return v, v.focus(v.row, ColumnName)
		}
		return v, v.focus(v.row-1, ColumnValue)

	case k == "up":
		v.commit()
		return v, v.focus(v.row-1, v.column)

	case k == "down":
		v.commit()
		return v, v.focus(v.row+1, v.column)
	}

	if c := v.current(); c != nil {
		_, cmd := c.Update(msg)
		return v, cmd
	}
	return v, nil
}

// commit writes the focused cell into the draft. A blank name leaves the
// field named as before.
func (v *View) commit() {
	if v.row >= len(v.rows) {
		return
	}
	field := v.state.Draft.Fields[v.row]
	r := v.rows[v.row]

	switch v.column {
	case ColumnName:
		name := strings.TrimSpace(r.name.Value())
		if name == "" || name == field.Name {
			r.name.SetValue(field.Name)
			return
		}
		v.state = v.state.RenameDraftField(field.Name, name)
		v.rebuild()
	case ColumnValue:
		v.state = v.state.SetDraftValue(field.Name, r.value.Value())
	}
}

// rebuild recreates the cells from the draft and clamps the focus.
func (v *View) rebuild() {
	hadFocus := v.current() != nil && v.current().Focused()
	fields := v.state.Draft.Fields
	v.rows = make([]row, 0, len(fields))
	for _, f := range fields {
		r := row{
			name:  input.NewCell(v.styles, "name", f.Name),
			value: input.NewCell(v.styles, "value", f.Value),
		}
		r.name.SetWidth(v.cellWidth())
		r.value.SetWidth(v.cellWidth())
		v.rows = append(v.rows, r)
	}
	if v.row >= len(v.rows) {
		v.row = len(v.rows) - 1
	}
	if v.row < 0 {
		v.row = 0
	}
	if c := v.current(); hadFocus && c != nil {
		c.Focus()
	}
}

// focus moves focus to the given cell; rows wrap around.
func (v *View) focus(rowIdx int, column Column) tea.Cmd {
	n := len(v.rows)
	if n == 0 {
		v.row, v.column = 0, ColumnName
		return nil
	}
	v.row = ((rowIdx % n) + n) % n
	v.column = column

	for _, r := range v.rows {
		r.name.Blur()
		r.value.Blur()
	}
	return v.current().Focus()
}

func (v *View) current() *input.Cell {
	if v.row >= len(v.rows) {
		return nil
	}
	if v.column == ColumnName {
		return v.rows[v.row].name
	}
	return v.rows[v.row].value
}

func (v *View) cellWidth() int {
	return v.width/3 - 4
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	for _, r := range v.rows {
		r.name.SetWidth(v.cellWidth())
		r.value.SetWidth(v.cellWidth())
	}
}

// View renders the draft form.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(fmt.Sprintf("New document in %s", v.state.Selected)))
	b.WriteString("\n\n")

	if len(v.rows) == 0 {
		b.WriteString(v.styles.Muted.Render("No fields yet. Press ctrl+n to add one."))
		b.WriteString("\n")
	}
	for _, r := range v.rows {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, r.name.View(), " = ", r.value.View()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	submit := "[ctrl+s] submit"
	if v.state.Draft.IsEmpty() {
		b.WriteString(v.styles.Muted.Render(submit))
	} else {
		b.WriteString(v.styles.Success.Render(submit))
	}
	b.WriteString("  ")
	b.WriteString(v.styles.Help.Render("[ctrl+n] + field  [ctrl+x] remove  [tab] next  [esc] back"))
	return b.String()
}

// FocusedCell returns the focused row and column.
func (v *View) FocusedCell() (int, Column) {
	return v.row, v.column
}
