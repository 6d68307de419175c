// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docview/internal/adapters/driving/tui/styles"
)

// Cell is a single-line text input used for field names and values.
type Cell struct {
	textinput textinput.Model
	styles    *styles.Styles
	width     int
}

// NewCell creates a blurred cell holding value.
func NewCell(s *styles.Styles, placeholder, value string) *Cell {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.CharLimit = 1024
	ti.Width = 24
	ti.SetValue(value)

	return &Cell{
		textinput: ti,
		styles:    s,
		width:     24,
	}
}

// Update handles input messages.
func (c *Cell) Update(msg tea.Msg) (*Cell, tea.Cmd) {
	var cmd tea.Cmd
	c.textinput, cmd = c.textinput.Update(msg)
	return c, cmd
}

// View renders the cell, framed according to focus.
func (c *Cell) View() string {
	if c.textinput.Focused() {
		return c.styles.FocusedCell.Render(c.textinput.View())
	}
	return c.styles.Cell.Render(c.textinput.View())
}

// Value returns the current text.
func (c *Cell) Value() string {
	return c.textinput.Value()
}

// SetValue replaces the text.
func (c *Cell) SetValue(value string) {
	c.textinput.SetValue(value)
}

// Focus sets focus on the cell.
func (c *Cell) Focus() tea.Cmd {
	return c.textinput.Focus()
}

// Blur removes focus from the cell.
func (c *Cell) Blur() {
	c.textinput.Blur()
}

// Focused returns whether the cell is focused.
func (c *Cell) Focused() bool {
	return c.textinput.Focused()
}

// SetWidth sets the visible width of the cell.
func (c *Cell) SetWidth(width int) {
	if width < 8 {
		width = 8
	}
	c.width = width
	c.textinput.Width = width
}

// Width returns the visible width.
func (c *Cell) Width() int {
	return c.width
}
